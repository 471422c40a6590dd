// Package sparql implements a client for the SPARQL 1.1 Protocol.
//
// # Overview
//
// A [Client] sends query or update text to a remote endpoint over HTTP and
// reconstructs structured results from the response:
//
//	client, err := sparql.New(sparql.Config{URL: "https://dbpedia.org/sparql"})
//	res, err := client.Query(ctx, "SELECT ?s WHERE { ?s ?p ?o } LIMIT 10")
//	for _, sol := range res.Solutions {
//	    fmt.Println(sol["s"])
//	}
//
// The client handles:
//   - GET vs POST request construction per the protocol, including the
//     separate update endpoint and parameter name
//   - Content negotiation across the result encodings
//   - Basic auth from URL userinfo and proxy selection
//   - Bounded retry of transient connection resets
//
// # Results
//
// Responses decode into a [Result] holding exactly one variant: Boolean for
// ASK, Solutions for SELECT, or Graph for CONSTRUCT/DESCRIBE. Graph bodies
// are parsed by github.com/geoknoesis/rdf-go, which also supplies the term
// types bound in solutions.
//
// # Blank Nodes
//
// Blank-node labels resolve through a per-client [NodeRegistry], so a label
// seen twice, within one response or across responses on the same client,
// yields the identical node. The registry is never cleared automatically;
// call [Client.Reset] to start a fresh blank-node scope, or use one client
// per scope. Endpoints only guarantee label uniqueness within a single
// result set, so long-lived clients mixing unrelated queries may want to
// reset between them.
//
// # Concurrency
//
// A Client is not safe for unsynchronized concurrent use: the registry
// mutates during decoding. Give each concurrent worker its own Client or
// add external locking.
package sparql
