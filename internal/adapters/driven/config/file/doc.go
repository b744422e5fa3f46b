// Package file provides the TOML-backed configuration store.
// Table routing metadata, display limits and provider settings live in a
// single config.toml under the user's ConnectAI directory.
package file
