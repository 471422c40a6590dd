// Package store is a triplestore-flavored convenience layer over the
// sparql client: named-graph management, bulk data updates, and counting,
// expressed as methods instead of handwritten update text.
//
// It adds no protocol behavior of its own. Every method assembles SPARQL
// text and delegates to the underlying client, so error semantics and
// retries are exactly those of package sparql.
package store
