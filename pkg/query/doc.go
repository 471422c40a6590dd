// Package query assembles SPARQL query text from symbolic patterns.
//
// A Builder is created by one of the form entry points — [Select], [Ask],
// [Construct], [Describe] — and grows by chained modifier calls:
//
//	q, err := query.Select("name").
//		Prefix("foaf", "http://xmlns.com/foaf/0.1/").
//		Where(query.Pattern{S: query.Var("x"), P: query.Prefixed("foaf:name"), O: query.Var("name")}).
//		OrderBy(query.Asc("name")).
//		Limit(10).
//		Build()
//
// Triple positions accept variables ([Var]), RDF terms (rdf.IRI,
// rdf.BlankNode, rdf.Literal), prefixed names ([Prefixed]), or plain Go
// values, which are promoted to literals. The output is deterministic:
// clauses appear in SPARQL grammar order and patterns in insertion order,
// so generated text is stable across runs.
//
// The builder assembles text only. It does not validate the query against
// the SPARQL grammar; the endpoint remains the authority on validity.
package query
