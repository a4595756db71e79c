// Package types defines the registrar entity types, the KVStore interface that
// every persistence backend implements, and the standard error values.
// Storage layout: one key per collection, each holding a JSON array of
// entities (see the Key constants).
package types
