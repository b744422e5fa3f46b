// Package domain contains the core business entities of ConnectAI:
// CRM records and tables, the indexed views the search engine derives from
// them, query analyses and processor results. It has no dependencies on
// other internal packages.
package domain
