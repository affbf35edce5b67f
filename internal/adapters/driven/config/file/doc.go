// Package file provides the TOML-backed configuration store.
//
// Settings live in ~/.ingrecheck/config.toml unless another directory is
// given. Keys are addressed with dot notation ("storage.backend") and written
// back as nested TOML tables.
package file
