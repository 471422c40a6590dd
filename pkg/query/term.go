package query

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/geoknoesis/rdf-go/rdf"
)

// Var names a query variable. The leading "?" or "$" marker is optional.
type Var string

// Prefixed is a prefixed name written verbatim, e.g. "foaf:name". The
// matching [Builder.Prefix] declaration is the caller's responsibility.
type Prefixed string

// IRI wraps a string into an rdf.IRI term.
func IRI(value string) rdf.IRI { return rdf.IRI{Value: value} }

// Pattern is one triple pattern. Each position holds a [Var], an RDF
// term (rdf.IRI, rdf.BlankNode, rdf.Literal), a [Prefixed] name, or a
// plain Go value promoted to a literal: strings quote, bool and numeric
// values use their bare SPARQL forms, and time.Time becomes an
// xsd:dateTime literal.
type Pattern struct {
	S, P, O any
}

// String renders the pattern as a SPARQL triple. Unsupported term types
// render as a %!(...) marker; [Builder.Build] reports them as errors.
func (p Pattern) String() string {
	w := &termWriter{}
	return w.pattern(p)
}

const (
	xsdString   = "http://www.w3.org/2001/XMLSchema#string"
	xsdDateTime = "http://www.w3.org/2001/XMLSchema#dateTime"
)

// termWriter serializes terms, retaining the first error for Build.
type termWriter struct {
	err error
}

func (w *termWriter) pattern(p Pattern) string {
	return w.term(p.S) + " " + w.term(p.P) + " " + w.term(p.O) + " ."
}

func (w *termWriter) term(v any) string {
	s, err := formatTerm(v)
	if err != nil {
		if w.err == nil {
			w.err = err
		}
		return fmt.Sprintf("%%!(%T)", v)
	}
	return s
}

// describeTerm is term restricted to variables, IRIs, and prefixed
// names. DESCRIBE targets and GRAPH names cannot be literals.
func (w *termWriter) describeTerm(v any) string {
	switch v.(type) {
	case Var, Prefixed, rdf.IRI:
		return w.term(v)
	}
	if w.err == nil {
		w.err = fmt.Errorf("term must be a variable or IRI, got %T", v)
	}
	return fmt.Sprintf("%%!(%T)", v)
}

func formatTerm(v any) (string, error) {
	switch t := v.(type) {
	case Var:
		return varToken(string(t)), nil
	case Prefixed:
		return string(t), nil
	case rdf.IRI:
		return "<" + t.Value + ">", nil
	case rdf.BlankNode:
		return "_:" + t.ID, nil
	case rdf.Literal:
		return formatLiteral(t), nil
	case string:
		return quote(t), nil
	case bool:
		return strconv.FormatBool(t), nil
	case int:
		return strconv.Itoa(t), nil
	case int32:
		return strconv.FormatInt(int64(t), 10), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case float32:
		return formatFloat(float64(t)), nil
	case float64:
		return formatFloat(t), nil
	case time.Time:
		return quote(t.UTC().Format(time.RFC3339)) + "^^<" + xsdDateTime + ">", nil
	default:
		return "", fmt.Errorf("unsupported term type %T", v)
	}
}

func formatLiteral(l rdf.Literal) string {
	s := quote(l.Lexical)
	if l.Lang != "" {
		return s + "@" + l.Lang
	}
	// xsd:string is the default literal type; writing it out is noise.
	if dt := l.Datatype.Value; dt != "" && dt != xsdString {
		return s + "^^<" + dt + ">"
	}
	return s
}

// formatFloat keeps promoted floats in the decimal value space: a bare
// "100" would parse as an integer literal.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// varToken normalizes a variable name to its "?" form, accepting bare
// names and either SPARQL marker.
func varToken(name string) string {
	name = strings.TrimPrefix(name, "?")
	name = strings.TrimPrefix(name, "$")
	return "?" + name
}

// quote renders a string literal with N-Triples style escaping.
func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
