// Package pkg provides the core libraries of the sparqlkit SPARQL client.
//
// # Overview
//
// Sparqlkit talks to SPARQL 1.1 Protocol endpoints: it dispatches query and
// update operations over HTTP, negotiates and decodes the standard result
// formats, and layers convenience APIs on top. The pkg directory is organized
// into five main areas:
//
//  1. [sparql] - The protocol client (dispatch, negotiation, decoding, retry)
//  2. [query] - Programmatic query construction
//  3. [store] - Graph-store convenience operations on top of the client
//  4. [sparqltest] - An in-memory endpoint for tests and demos
//  5. [errors] / [httputil] / [observability] - Shared infrastructure
//
// # Architecture
//
// The typical flow of a query through sparqlkit:
//
//	query text (written by hand or built with [query])
//	         ↓
//	    [sparql] client (parameter merging, GET/POST dispatch, retry)
//	         ↓
//	    HTTP endpoint (or a [sparqltest] Endpoint in tests)
//	         ↓
//	    [sparql] decoders (JSON, XML, boolean, RDF graph formats)
//	         ↓
//	    Result (boolean, solution sequence, or []rdf.Triple)
//
// # Quick Start
//
// Build a client and run a query:
//
//	import (
//	    "context"
//	    "github.com/graphbound/sparqlkit/pkg/sparql"
//	)
//
//	client, _ := sparql.New(sparql.Config{URL: "http://localhost:3030/ds/sparql"})
//	res, _ := client.Query(context.Background(), "SELECT * WHERE { ?s ?p ?o } LIMIT 10")
//	for _, sol := range res.Solutions {
//	    fmt.Println(sol["s"], sol["p"], sol["o"])
//	}
//
// # Main Packages
//
// [sparql] - The protocol client. Validates endpoint configuration, merges
// operation parameters with endpoint URL parameters, selects GET or POST,
// classifies response statuses into error codes, retries transient connection
// resets, and decodes every standard result format. Blank node identity is
// preserved across responses through a per-client registry.
//
// [query] - A fluent builder for SELECT, ASK, CONSTRUCT, and DESCRIBE text
// with prefix handling, group patterns (OPTIONAL, UNION, GRAPH), and Go value
// promotion into RDF literals.
//
// [store] - Graph-store operations (insert, delete, drop, clear, exists,
// count) expressed as generated update and query text against a client.
//
// [sparqltest] - A miniature in-memory endpoint with canned query answers
// and update recording, servable over HTTP for client tests and local demos.
//
// [errors] - Coded errors shared by every package ([errors.Wrap],
// [errors.GetCode]), including the HTTP status carrier type.
//
// [httputil] - Transient failure classification and the bounded retry loop.
//
// [observability] - Pluggable request/decode hooks with a Prometheus
// implementation in [observability/prom].
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...             # All tests
//	go test ./pkg/sparql/...      # Specific package
//
// [sparql]: https://pkg.go.dev/github.com/graphbound/sparqlkit/pkg/sparql
// [query]: https://pkg.go.dev/github.com/graphbound/sparqlkit/pkg/query
// [store]: https://pkg.go.dev/github.com/graphbound/sparqlkit/pkg/store
// [sparqltest]: https://pkg.go.dev/github.com/graphbound/sparqlkit/pkg/sparqltest
// [errors]: https://pkg.go.dev/github.com/graphbound/sparqlkit/pkg/errors
// [errors.Wrap]: https://pkg.go.dev/github.com/graphbound/sparqlkit/pkg/errors#Wrap
// [errors.GetCode]: https://pkg.go.dev/github.com/graphbound/sparqlkit/pkg/errors#GetCode
// [httputil]: https://pkg.go.dev/github.com/graphbound/sparqlkit/pkg/httputil
// [observability]: https://pkg.go.dev/github.com/graphbound/sparqlkit/pkg/observability
// [observability/prom]: https://pkg.go.dev/github.com/graphbound/sparqlkit/pkg/observability/prom
package pkg
