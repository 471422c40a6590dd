package query

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// form selects the query form a Builder produces.
type form int

const (
	formSelect form = iota
	formAsk
	formConstruct
	formDescribe
)

// elemKind distinguishes the element types of a where block.
type elemKind int

const (
	elemPatterns elemKind = iota
	elemOptional
	elemFilter
	elemUnion
	elemGraph
)

// element is one entry of a where block, kept in insertion order.
type element struct {
	kind     elemKind
	patterns []Pattern
	expr     string      // elemFilter
	alts     [][]Pattern // elemUnion
	graph    any         // elemGraph name: Var, Prefixed, or rdf.IRI
}

// Builder accumulates the parts of one SPARQL query. Modifier calls
// mutate the receiver and return it for chaining.
//
// The zero value is not usable — use [Select], [Ask], [Construct], or
// [Describe]. A Builder is not safe for concurrent use.
type Builder struct {
	form       form
	projection []string
	template   []Pattern
	described  []any
	distinct   bool
	reduced    bool
	prefixes   [][2]string
	from       []string
	where      []element
	groupBy    []string
	orderBy    []string
	limit      int
	offset     int
}

func newBuilder(f form) *Builder {
	return &Builder{form: f, limit: -1, offset: -1}
}

// Select starts a SELECT query projecting the given variables. Leading
// "?" or "$" markers are optional. With no variables the projection is
// "*".
func Select(vars ...string) *Builder {
	b := newBuilder(formSelect)
	b.projection = vars
	return b
}

// Ask starts an ASK query.
func Ask() *Builder {
	return newBuilder(formAsk)
}

// Construct starts a CONSTRUCT query with the given template patterns.
func Construct(patterns ...Pattern) *Builder {
	b := newBuilder(formConstruct)
	b.template = patterns
	return b
}

// Describe starts a DESCRIBE query over the given terms. Terms must be
// variables, IRIs, or prefixed names; literals cannot be described.
func Describe(terms ...any) *Builder {
	b := newBuilder(formDescribe)
	b.described = terms
	return b
}

// Distinct requests duplicate elimination. It clears an earlier Reduced.
func (b *Builder) Distinct() *Builder {
	b.distinct, b.reduced = true, false
	return b
}

// Reduced permits duplicate elimination. It clears an earlier Distinct.
func (b *Builder) Reduced() *Builder {
	b.distinct, b.reduced = false, true
	return b
}

// Prefix declares a namespace prefix. Redeclaring a label replaces its
// IRI but keeps the original declaration position.
func (b *Builder) Prefix(label, iri string) *Builder {
	for i, p := range b.prefixes {
		if p[0] == label {
			b.prefixes[i][1] = iri
			return b
		}
	}
	b.prefixes = append(b.prefixes, [2]string{label, iri})
	return b
}

// From adds a FROM dataset clause naming a graph IRI.
func (b *Builder) From(graph string) *Builder {
	b.from = append(b.from, graph)
	return b
}

// Where appends basic graph patterns to the where block.
func (b *Builder) Where(patterns ...Pattern) *Builder {
	if len(patterns) > 0 {
		b.where = append(b.where, element{kind: elemPatterns, patterns: patterns})
	}
	return b
}

// Optional appends an OPTIONAL group containing the given patterns.
func (b *Builder) Optional(patterns ...Pattern) *Builder {
	if len(patterns) > 0 {
		b.where = append(b.where, element{kind: elemOptional, patterns: patterns})
	}
	return b
}

// Filter appends a FILTER constraint. The expression is emitted verbatim
// inside the FILTER parentheses.
func (b *Builder) Filter(expr string) *Builder {
	b.where = append(b.where, element{kind: elemFilter, expr: expr})
	return b
}

// Union appends the given alternatives joined by UNION. A single
// alternative becomes a plain group.
func (b *Builder) Union(alts ...[]Pattern) *Builder {
	if len(alts) > 0 {
		b.where = append(b.where, element{kind: elemUnion, alts: alts})
	}
	return b
}

// Graph appends a GRAPH group. The name may be a [Var], a [Prefixed]
// name, or an rdf.IRI.
func (b *Builder) Graph(name any, patterns ...Pattern) *Builder {
	b.where = append(b.where, element{kind: elemGraph, graph: name, patterns: patterns})
	return b
}

// GroupBy adds a GROUP BY clause over the given variables.
func (b *Builder) GroupBy(vars ...string) *Builder {
	b.groupBy = append(b.groupBy, vars...)
	return b
}

// OrderBy adds ORDER BY conditions. Bare names order ascending; wrap
// them with [Asc] or [Desc] for an explicit direction.
func (b *Builder) OrderBy(exprs ...string) *Builder {
	b.orderBy = append(b.orderBy, exprs...)
	return b
}

// Asc wraps a variable name in an ascending order condition.
func Asc(name string) string { return "ASC(" + varToken(name) + ")" }

// Desc wraps a variable name in a descending order condition.
func Desc(name string) string { return "DESC(" + varToken(name) + ")" }

// Limit caps the number of solutions. Negative values clear the limit.
func (b *Builder) Limit(n int) *Builder {
	b.limit = n
	return b
}

// Offset skips the first n solutions. Negative values clear the offset.
func (b *Builder) Offset(n int) *Builder {
	b.offset = n
	return b
}

// Build serializes the query. It fails if any term has an unsupported
// type or a DESCRIBE term is not a variable or IRI.
func (b *Builder) Build() (string, error) {
	w := &termWriter{}
	var buf bytes.Buffer

	for _, p := range b.prefixes {
		fmt.Fprintf(&buf, "PREFIX %s: <%s>\n", p[0], p[1])
	}

	b.writeForm(&buf, w)

	for _, g := range b.from {
		fmt.Fprintf(&buf, "FROM <%s>\n", g)
	}

	if b.form != formDescribe || len(b.where) > 0 {
		b.writeWhere(&buf, w)
	}

	if len(b.groupBy) > 0 {
		buf.WriteString("GROUP BY")
		for _, v := range b.groupBy {
			buf.WriteString(" " + varToken(v))
		}
		buf.WriteString("\n")
	}
	if len(b.orderBy) > 0 {
		buf.WriteString("ORDER BY")
		for _, expr := range b.orderBy {
			buf.WriteString(" " + orderToken(expr))
		}
		buf.WriteString("\n")
	}
	if b.limit >= 0 {
		buf.WriteString("LIMIT " + strconv.Itoa(b.limit) + "\n")
	}
	if b.offset >= 0 {
		buf.WriteString("OFFSET " + strconv.Itoa(b.offset) + "\n")
	}

	return strings.TrimSuffix(buf.String(), "\n"), w.err
}

// String serializes the query, substituting a marker for any invalid
// term. Use Build to surface those as errors instead.
func (b *Builder) String() string {
	s, _ := b.Build()
	return s
}

func (b *Builder) writeForm(buf *bytes.Buffer, w *termWriter) {
	switch b.form {
	case formAsk:
		buf.WriteString("ASK\n")

	case formConstruct:
		buf.WriteString("CONSTRUCT {\n")
		for _, p := range b.template {
			buf.WriteString("  " + w.pattern(p) + "\n")
		}
		buf.WriteString("}\n")

	case formDescribe:
		buf.WriteString("DESCRIBE")
		for _, term := range b.described {
			buf.WriteString(" " + w.describeTerm(term))
		}
		buf.WriteString("\n")

	default:
		buf.WriteString("SELECT")
		if b.distinct {
			buf.WriteString(" DISTINCT")
		} else if b.reduced {
			buf.WriteString(" REDUCED")
		}
		if len(b.projection) == 0 {
			buf.WriteString(" *")
		}
		for _, v := range b.projection {
			buf.WriteString(" " + varToken(v))
		}
		buf.WriteString("\n")
	}
}

func (b *Builder) writeWhere(buf *bytes.Buffer, w *termWriter) {
	if len(b.where) == 0 {
		buf.WriteString("WHERE { }\n")
		return
	}

	buf.WriteString("WHERE {\n")
	for _, el := range b.where {
		switch el.kind {
		case elemOptional:
			writeGroup(buf, w, "  OPTIONAL ", el.patterns)

		case elemFilter:
			fmt.Fprintf(buf, "  FILTER (%s)\n", el.expr)

		case elemUnion:
			for i, alt := range el.alts {
				prefix := "  "
				if i > 0 {
					prefix = " UNION "
					buf.Truncate(buf.Len() - 1) // join with the previous closing brace
				}
				writeGroup(buf, w, prefix, alt)
			}

		case elemGraph:
			writeGroup(buf, w, "  GRAPH "+w.describeTerm(el.graph)+" ", el.patterns)

		default:
			for _, p := range el.patterns {
				buf.WriteString("  " + w.pattern(p) + "\n")
			}
		}
	}
	buf.WriteString("}\n")
}

// writeGroup writes a braced pattern group opened by prefix, with the
// patterns indented one level deeper.
func writeGroup(buf *bytes.Buffer, w *termWriter, prefix string, patterns []Pattern) {
	buf.WriteString(prefix + "{\n")
	for _, p := range patterns {
		buf.WriteString("    " + w.pattern(p) + "\n")
	}
	buf.WriteString("  }\n")
}

// orderToken passes ASC(...)/DESC(...) conditions through and promotes
// bare names to variables.
func orderToken(expr string) string {
	if strings.HasPrefix(expr, "ASC(") || strings.HasPrefix(expr, "DESC(") {
		return expr
	}
	return varToken(expr)
}
