package sparql

import (
	"slices"

	"github.com/geoknoesis/rdf-go/rdf"
)

// ResultKind identifies which variant of a Result is populated.
type ResultKind int

const (
	// BooleanResult is the outcome of an ASK query.
	BooleanResult ResultKind = iota
	// BindingsResult is the outcome of a SELECT query.
	BindingsResult
	// GraphResult is the outcome of a CONSTRUCT or DESCRIBE query.
	GraphResult
)

// String returns the result kind name.
func (k ResultKind) String() string {
	switch k {
	case BooleanResult:
		return "boolean"
	case BindingsResult:
		return "solutions"
	case GraphResult:
		return "graph"
	default:
		return "unknown"
	}
}

// Solution maps variable names to the terms bound in one result row.
// Variables the endpoint left unbound (or bound to an unrecognized term
// type) are absent from the map.
type Solution map[string]rdf.Term

// Result is the decoded outcome of a query. Exactly one variant is
// populated, identified by Kind.
type Result struct {
	Kind ResultKind

	// Boolean holds the ASK outcome when Kind is BooleanResult.
	Boolean bool

	// Solutions holds the binding rows, in response order, when Kind is
	// BindingsResult. Empty result sets decode to an empty non-nil slice.
	Solutions []Solution

	// Graph holds the parsed statements when Kind is GraphResult.
	Graph []rdf.Triple

	// Vars lists the variables the response head declared, in declaration
	// order. Only set for BindingsResult, and only when the response
	// carried a head; use it for stable presentation column order.
	Vars []string
}

// Columns returns the variable names for presenting a bindings result:
// the declared head variables when present, otherwise the union of bound
// variables across all solutions, sorted.
func (r *Result) Columns() []string {
	if len(r.Vars) > 0 {
		return r.Vars
	}
	seen := map[string]bool{}
	for _, sol := range r.Solutions {
		for name := range sol {
			seen[name] = true
		}
	}
	cols := make([]string, 0, len(seen))
	for name := range seen {
		cols = append(cols, name)
	}
	slices.Sort(cols)
	return cols
}
