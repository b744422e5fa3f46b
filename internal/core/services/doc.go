// Package services implements the core use cases of ConnectAI: the
// tokenizer and similarity primitives, the in-memory search engine, the
// query analyzer and the query processor that orchestrates them.
// Services receive their collaborators through constructors; there is no
// package-level state.
package services
