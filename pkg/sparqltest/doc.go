// Package sparqltest provides an in-memory SPARQL endpoint for tests and
// local development.
//
// The endpoint speaks the protocol surface — GET and POST dispatch, form
// parameters, content negotiation across the result formats, status
// codes — over a fixed dataset of triples. It is not a query engine:
// operation text is never parsed beyond its leading keyword and a LIMIT
// clause, and responses are canned projections of the dataset. That is
// enough to exercise a client end to end without a real triplestore.
//
//	endpoint := sparqltest.NewEndpoint(sparqltest.DefaultTriples()...)
//	server := httptest.NewServer(endpoint.Handler())
//	defer server.Close()
//
//	client, err := sparql.New(sparql.Config{URL: server.URL})
package sparqltest
