package sparql

import (
	"encoding/xml"

	"github.com/geoknoesis/rdf-go/rdf"

	kiterrors "github.com/graphbound/sparqlkit/pkg/errors"
)

// xmlEnvelope matches the SPARQL Query Results XML Format by local
// element names, so documents without the results namespace still decode.
// Pointer fields distinguish present-but-empty from absent.
type xmlEnvelope struct {
	XMLName xml.Name `xml:"sparql"`
	Head    struct {
		Variables []struct {
			Name string `xml:"name,attr"`
		} `xml:"variable"`
	} `xml:"head"`
	Boolean *string `xml:"boolean"`
	Results *struct {
		Rows []xmlRow `xml:"result"`
	} `xml:"results"`
}

type xmlRow struct {
	Bindings []xmlBinding `xml:"binding"`
}

// xmlBinding holds at most one of the three term elements; which one is
// non-nil decides the term kind. A binding carrying none of them (an
// unrecognized element) binds nothing.
type xmlBinding struct {
	Name    string      `xml:"name,attr"`
	BNode   *string     `xml:"bnode"`
	URI     *string     `xml:"uri"`
	Literal *xmlLiteral `xml:"literal"`
}

type xmlLiteral struct {
	Value    string `xml:",chardata"`
	Lang     string `xml:"lang,attr"`
	Datatype string `xml:"datatype,attr"`
}

// decodeXML parses an XML results document. The body must be UTF-8; other
// declared encodings fail the parse. A boolean child wins over results; a
// root with neither is malformed.
func decodeXML(body []byte, reg *NodeRegistry) (*Result, error) {
	var env xmlEnvelope
	if err := xml.Unmarshal(body, &env); err != nil {
		return nil, kiterrors.Wrap(kiterrors.ErrCodeDecode, err, "invalid results XML")
	}

	if env.Boolean != nil {
		return &Result{Kind: BooleanResult, Boolean: *env.Boolean == "true"}, nil
	}
	if env.Results == nil {
		return nil, kiterrors.New(kiterrors.ErrCodeDecode, "results XML has neither boolean nor results")
	}

	var vars []string
	for _, v := range env.Head.Variables {
		vars = append(vars, v.Name)
	}

	solutions := make([]Solution, 0, len(env.Results.Rows))
	for _, row := range env.Results.Rows {
		sol := make(Solution, len(row.Bindings))
		for _, b := range row.Bindings {
			if value, ok := xmlTermValue(b, reg); ok {
				sol[b.Name] = value
			}
		}
		solutions = append(solutions, sol)
	}
	return &Result{Kind: BindingsResult, Solutions: solutions, Vars: vars}, nil
}

func xmlTermValue(b xmlBinding, reg *NodeRegistry) (rdf.Term, bool) {
	switch {
	case b.BNode != nil:
		return reg.Node(*b.BNode), true
	case b.URI != nil:
		return rdf.IRI{Value: *b.URI}, true
	case b.Literal != nil:
		return rdf.Literal{
			Lexical:  b.Literal.Value,
			Lang:     b.Literal.Lang,
			Datatype: rdf.IRI{Value: b.Literal.Datatype},
		}, true
	default:
		return nil, false
	}
}
