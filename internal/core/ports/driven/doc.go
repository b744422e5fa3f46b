// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports). The core services depend only on these
// interfaces; concrete CRM connectors, AI clients and stores live under
// internal/adapters/driven.
package driven
