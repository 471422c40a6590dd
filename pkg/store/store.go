package store

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/geoknoesis/rdf-go/rdf"

	kiterrors "github.com/graphbound/sparqlkit/pkg/errors"
	"github.com/graphbound/sparqlkit/pkg/query"
	"github.com/graphbound/sparqlkit/pkg/sparql"
)

// Store wraps a sparql client with triplestore-style operations.
//
// A non-empty base resolves relative graph names: Graph "demo" with base
// "http://example.org/graphs/" addresses <http://example.org/graphs/demo>.
// Absolute graph names pass through untouched.
type Store struct {
	client *sparql.Client
	base   string
}

// New builds a Store over client. base may be empty.
func New(client *sparql.Client, base string) *Store {
	return &Store{client: client, base: base}
}

// Ask runs an ASK query.
func (s *Store) Ask(ctx context.Context, q string) (bool, error) {
	return s.client.Ask(ctx, q)
}

// Select runs a SELECT query.
func (s *Store) Select(ctx context.Context, q string) ([]sparql.Solution, error) {
	return s.client.Select(ctx, q)
}

// Construct runs a CONSTRUCT or DESCRIBE query.
func (s *Store) Construct(ctx context.Context, q string) ([]rdf.Triple, error) {
	return s.client.Construct(ctx, q)
}

// InsertData adds triples to the given graph, or to the default graph
// when graph is empty.
func (s *Store) InsertData(ctx context.Context, triples []rdf.Triple, graph string) error {
	return s.client.Update(ctx, s.dataUpdate("INSERT DATA", triples, graph))
}

// DeleteData removes triples from the given graph, or from the default
// graph when graph is empty.
func (s *Store) DeleteData(ctx context.Context, triples []rdf.Triple, graph string) error {
	return s.client.Update(ctx, s.dataUpdate("DELETE DATA", triples, graph))
}

// DropGraph removes a named graph and all its triples.
func (s *Store) DropGraph(ctx context.Context, graph string) error {
	return s.client.Update(ctx, fmt.Sprintf("DROP GRAPH <%s>", s.resolveGraph(graph)))
}

// ClearAll removes all triples from all graphs.
func (s *Store) ClearAll(ctx context.Context) error {
	return s.client.Update(ctx, "CLEAR ALL")
}

// GraphExists reports whether the named graph holds at least one triple.
func (s *Store) GraphExists(ctx context.Context, graph string) (bool, error) {
	q := query.Ask().
		Graph(rdf.IRI{Value: s.resolveGraph(graph)},
			query.Pattern{S: query.Var("s"), P: query.Var("p"), O: query.Var("o")}).
		String()
	return s.client.Ask(ctx, q)
}

// Count returns the number of triples in the named graph, or in the
// whole store when graph is empty.
func (s *Store) Count(ctx context.Context, graph string) (int64, error) {
	q := "SELECT (COUNT(*) AS ?count) WHERE { ?s ?p ?o }"
	if graph != "" {
		q = fmt.Sprintf("SELECT (COUNT(*) AS ?count) WHERE { GRAPH <%s> { ?s ?p ?o } }", s.resolveGraph(graph))
	}

	solutions, err := s.client.Select(ctx, q)
	if err != nil {
		return 0, err
	}
	if len(solutions) == 0 {
		return 0, kiterrors.New(kiterrors.ErrCodeDecode, "count query returned no solutions")
	}
	lit, ok := solutions[0]["count"].(rdf.Literal)
	if !ok {
		return 0, kiterrors.New(kiterrors.ErrCodeDecode, "count binding is missing or not a literal")
	}
	n, err := strconv.ParseInt(lit.Lexical, 10, 64)
	if err != nil {
		return 0, kiterrors.Wrap(kiterrors.ErrCodeDecode, err, "unparsable count %q", lit.Lexical)
	}
	return n, nil
}

// dataUpdate assembles an INSERT DATA or DELETE DATA block, wrapping the
// triples in a GRAPH group when a graph is named.
func (s *Store) dataUpdate(verb string, triples []rdf.Triple, graph string) string {
	indent := "  "
	var buf bytes.Buffer
	buf.WriteString(verb + " {\n")
	if graph != "" {
		fmt.Fprintf(&buf, "  GRAPH <%s> {\n", s.resolveGraph(graph))
		indent = "    "
	}
	for _, t := range triples {
		buf.WriteString(indent + query.Pattern{S: t.S, P: t.P, O: t.O}.String() + "\n")
	}
	if graph != "" {
		buf.WriteString("  }\n")
	}
	buf.WriteString("}")
	return buf.String()
}

// resolveGraph joins a relative graph name onto the base. Names that
// already carry a scheme pass through.
func (s *Store) resolveGraph(graph string) string {
	if s.base == "" || strings.Contains(graph, "://") {
		return graph
	}
	return s.base + graph
}
