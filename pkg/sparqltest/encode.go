package sparqltest

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/geoknoesis/rdf-go/rdf"
)

const (
	contentTypeJSON    = "application/sparql-results+json"
	contentTypeXML     = "application/sparql-results+xml"
	contentTypeBoolean = "text/boolean"

	resultsNS = "http://www.w3.org/2005/sparql-results#"
	xsdString = "http://www.w3.org/2001/XMLSchema#string"
)

// formatContentType maps rdf-go format names to the content type served
// for them.
var formatContentType = map[string]string{
	"turtle":   "text/turtle",
	"ntriples": "application/n-triples",
	"rdfxml":   "application/rdf+xml",
	"jsonld":   "application/ld+json",
	"trig":     "application/trig",
	"nquads":   "application/n-quads",
}

type jsonHead struct {
	Vars []string `json:"vars,omitempty"`
}

func jsonBooleanBody(value bool) []byte {
	body, _ := json.Marshal(struct {
		Head    jsonHead `json:"head"`
		Boolean bool     `json:"boolean"`
	}{Boolean: value})
	return body
}

func jsonSolutionsBody(vars []string, rows []rdf.Triple) []byte {
	bindings := make([]map[string]map[string]string, 0, len(rows))
	for _, t := range rows {
		bindings = append(bindings, map[string]map[string]string{
			"s": jsonTerm(t.S),
			"p": jsonTerm(t.P),
			"o": jsonTerm(t.O),
		})
	}

	envelope := struct {
		Head    jsonHead `json:"head"`
		Results struct {
			Bindings []map[string]map[string]string `json:"bindings"`
		} `json:"results"`
	}{Head: jsonHead{Vars: vars}}
	envelope.Results.Bindings = bindings

	body, _ := json.Marshal(envelope)
	return body
}

func jsonTerm(t rdf.Term) map[string]string {
	switch term := t.(type) {
	case rdf.IRI:
		return map[string]string{"type": "uri", "value": term.Value}
	case rdf.BlankNode:
		return map[string]string{"type": "bnode", "value": term.ID}
	case rdf.Literal:
		switch {
		case term.Lang != "":
			return map[string]string{"type": "literal", "value": term.Lexical, "xml:lang": term.Lang}
		case term.Datatype.Value != "" && term.Datatype.Value != xsdString:
			return map[string]string{"type": "typed-literal", "value": term.Lexical, "datatype": term.Datatype.Value}
		default:
			return map[string]string{"type": "literal", "value": term.Lexical}
		}
	default:
		return map[string]string{"type": "literal", "value": fmt.Sprint(t)}
	}
}

func xmlBooleanBody(value bool) []byte {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	fmt.Fprintf(&buf, "<sparql xmlns=%q><head/><boolean>%t</boolean></sparql>\n", resultsNS, value)
	return buf.Bytes()
}

func xmlSolutionsBody(vars []string, rows []rdf.Triple) []byte {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	fmt.Fprintf(&buf, "<sparql xmlns=%q>\n  <head>\n", resultsNS)
	for _, v := range vars {
		fmt.Fprintf(&buf, "    <variable name=%q/>\n", v)
	}
	buf.WriteString("  </head>\n  <results>\n")
	for _, t := range rows {
		buf.WriteString("    <result>\n")
		writeXMLBinding(&buf, "s", t.S)
		writeXMLBinding(&buf, "p", t.P)
		writeXMLBinding(&buf, "o", t.O)
		buf.WriteString("    </result>\n")
	}
	buf.WriteString("  </results>\n</sparql>\n")
	return buf.Bytes()
}

func writeXMLBinding(buf *bytes.Buffer, name string, t rdf.Term) {
	fmt.Fprintf(buf, "      <binding name=%q>", name)
	switch term := t.(type) {
	case rdf.IRI:
		fmt.Fprintf(buf, "<uri>%s</uri>", xmlEscape(term.Value))
	case rdf.BlankNode:
		fmt.Fprintf(buf, "<bnode>%s</bnode>", xmlEscape(term.ID))
	case rdf.Literal:
		switch {
		case term.Lang != "":
			fmt.Fprintf(buf, `<literal xml:lang="%s">%s</literal>`, xmlEscape(term.Lang), xmlEscape(term.Lexical))
		case term.Datatype.Value != "" && term.Datatype.Value != xsdString:
			fmt.Fprintf(buf, `<literal datatype="%s">%s</literal>`, xmlEscape(term.Datatype.Value), xmlEscape(term.Lexical))
		default:
			fmt.Fprintf(buf, "<literal>%s</literal>", xmlEscape(term.Lexical))
		}
	}
	buf.WriteString("</binding>\n")
}

func xmlEscape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// pickGraphFormat selects the first Accept entry the RDF serializer
// understands, falling back to turtle.
func pickGraphFormat(accept string) rdf.AnyFormat {
	for _, item := range strings.Split(accept, ",") {
		item = strings.TrimSpace(item)
		if i := strings.Index(item, ";"); i >= 0 {
			item = strings.TrimSpace(item[:i])
		}
		if f, err := rdf.ResolveAnyFormatFromContentType(item); err == nil {
			return f
		}
	}
	f, _ := rdf.ResolveAnyFormat("turtle")
	return f
}

func graphBody(ctx context.Context, format rdf.AnyFormat, triples []rdf.Triple) ([]byte, error) {
	quads := make([]rdf.Quad, 0, len(triples))
	for _, t := range triples {
		quads = append(quads, t.ToQuad())
	}

	var buf bytes.Buffer
	if err := rdf.SerializeAny(ctx, &buf, format.Name, quads, rdf.AnyFormatOptions{}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
