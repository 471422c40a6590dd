package cli

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/geoknoesis/rdf-go/rdf"

	"github.com/graphbound/sparqlkit/pkg/sparql"
)

// Solutions output formats for the query command.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatCSV   = "csv"
)

const xsdStringIRI = "http://www.w3.org/2001/XMLSchema#string"

// =============================================================================
// Result Dispatch
// =============================================================================

// writeResult renders a decoded query result to w in the requested format.
// Solution sequences honor format (table, json, csv); graphs serialize in
// graphFormat; booleans render as a styled true/false line.
func writeResult(ctx context.Context, w io.Writer, res *sparql.Result, format, graphFormat string) error {
	switch res.Kind {
	case sparql.BooleanResult:
		fmt.Fprintln(w, renderBoolean(res.Boolean))
		return nil
	case sparql.BindingsResult:
		return writeSolutions(w, format, res.Columns(), res.Solutions)
	case sparql.GraphResult:
		return writeGraph(ctx, w, graphFormat, res.Graph)
	default:
		return fmt.Errorf("unknown result kind %d", res.Kind)
	}
}

// =============================================================================
// Boolean Results
// =============================================================================

// renderBoolean formats an ASK outcome.
func renderBoolean(value bool) string {
	if value {
		return StyleSuccess.Render("true")
	}
	return StyleWarning.Render("false")
}

// =============================================================================
// Solution Sequences
// =============================================================================

// writeSolutions renders a solution sequence in the requested format.
func writeSolutions(w io.Writer, format string, vars []string, solutions []sparql.Solution) error {
	switch format {
	case formatTable, "":
		fmt.Fprintln(w, renderSolutionsTable(vars, solutions))
		return nil
	case formatJSON:
		return writeSolutionsJSON(w, solutions)
	case formatCSV:
		return writeSolutionsCSV(w, vars, solutions)
	default:
		return fmt.Errorf("unknown output format %q (want table, json, or csv)", format)
	}
}

// renderSolutionsTable renders solutions as a bordered terminal table with
// one column per variable.
func renderSolutionsTable(vars []string, solutions []sparql.Solution) string {
	headers := make([]string, len(vars))
	for i, name := range vars {
		headers[i] = "?" + name
	}

	rows := make([][]string, 0, len(solutions))
	for _, sol := range solutions {
		row := make([]string, len(vars))
		for i, name := range vars {
			if term, ok := sol[name]; ok {
				row[i] = termDisplay(term)
			}
		}
		rows = append(rows, row)
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return StyleValue
		})

	return t.Render()
}

// writeSolutionsJSON emits solutions as a JSON array of objects mapping
// variable names to display-formatted terms.
func writeSolutionsJSON(w io.Writer, solutions []sparql.Solution) error {
	rows := make([]map[string]string, 0, len(solutions))
	for _, sol := range solutions {
		row := make(map[string]string, len(sol))
		for name, term := range sol {
			row[name] = termDisplay(term)
		}
		rows = append(rows, row)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

// writeSolutionsCSV emits solutions as CSV with a header row of variable names.
func writeSolutionsCSV(w io.Writer, vars []string, solutions []sparql.Solution) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(vars); err != nil {
		return err
	}
	for _, sol := range solutions {
		row := make([]string, len(vars))
		for i, name := range vars {
			if term, ok := sol[name]; ok {
				row[i] = termDisplay(term)
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// =============================================================================
// Graphs
// =============================================================================

// writeGraph serializes triples to w in the named format (turtle, ntriples,
// rdfxml, jsonld, trig, nquads).
func writeGraph(ctx context.Context, w io.Writer, format string, triples []rdf.Triple) error {
	quads := make([]rdf.Quad, len(triples))
	for i, t := range triples {
		quads[i] = t.ToQuad()
	}
	if err := rdf.SerializeAny(ctx, w, format, quads, rdf.AnyFormatOptions{}); err != nil {
		return fmt.Errorf("failed to serialize graph as %s: %w", format, err)
	}
	return nil
}

// =============================================================================
// Term Display
// =============================================================================

// termDisplay formats an RDF term for human-readable output. IRIs drop their
// angle brackets, language tags keep their @ suffix, and datatypes shorten
// to their local name ("42^^integer").
func termDisplay(t rdf.Term) string {
	switch term := t.(type) {
	case rdf.IRI:
		return term.Value
	case rdf.BlankNode:
		return "_:" + term.ID
	case rdf.Literal:
		if term.Lang != "" {
			return term.Lexical + "@" + term.Lang
		}
		if dt := term.Datatype.Value; dt != "" && dt != xsdStringIRI {
			return term.Lexical + "^^" + localName(dt)
		}
		return term.Lexical
	default:
		return fmt.Sprint(t)
	}
}

// localName returns the fragment of an IRI after the last # or /.
func localName(iri string) string {
	if i := strings.LastIndexAny(iri, "#/"); i >= 0 && i+1 < len(iri) {
		return iri[i+1:]
	}
	return iri
}
