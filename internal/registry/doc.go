// Package registry holds the four entity collections and the rules that
// govern them. Every mutation is validated inline, copies the parent names it
// depends on, and rewrites the whole collection in the KVStore.
//
// A State is built once from a KVStore with Open. Each collection is owned by
// one store; downstream stores read upstream ones through lookup interfaces
// and never mutate them. References between collections are soft: a delete
// never touches the records that point at the deleted entity. State.Check
// reports such dangling references.
package registry
