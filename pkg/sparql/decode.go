package sparql

import (
	"bytes"
	"context"
	"errors"
	"mime"

	"github.com/geoknoesis/rdf-go/rdf"

	kiterrors "github.com/graphbound/sparqlkit/pkg/errors"
)

// Result content types with dedicated decoders. Anything else is treated
// as an RDF graph serialization and handed to the graph parser.
const (
	contentTypeBoolean = "text/boolean"
	contentTypeJSON    = "application/sparql-results+json"
	contentTypeXML     = "application/sparql-results+xml"
)

// decodeResult turns a success response body into a Result, dispatching
// on the declared content type. Media type parameters (charset and the
// like) are ignored.
func decodeResult(ctx context.Context, body []byte, contentType string, reg *NodeRegistry) (*Result, error) {
	if contentType == "" {
		return nil, kiterrors.New(kiterrors.ErrCodeUnsupportedFormat, "response declared no content type")
	}
	// Broken parameters (a bare charset, say) don't matter as long as the
	// media type itself parsed.
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil && !errors.Is(err, mime.ErrInvalidMediaParameter) {
		return nil, kiterrors.Wrap(kiterrors.ErrCodeUnsupportedFormat, err, "unparsable content type %q", contentType)
	}

	switch mediaType {
	case contentTypeBoolean:
		// A literal token comparison, not a boolean parse: this is the
		// Sesame-style convention, and only the exact text "true" is true.
		return &Result{Kind: BooleanResult, Boolean: string(body) == "true"}, nil
	case contentTypeJSON:
		return decodeJSON(body, reg)
	case contentTypeXML:
		return decodeXML(body, reg)
	default:
		return decodeGraph(ctx, body, mediaType)
	}
}

// decodeGraph hands the body to the RDF parser keyed by media type.
// Statements in named graphs keep only their triple component.
func decodeGraph(ctx context.Context, body []byte, mediaType string) (*Result, error) {
	format, err := rdf.ResolveAnyFormatFromContentType(mediaType)
	if err != nil {
		return nil, kiterrors.Wrap(kiterrors.ErrCodeUnsupportedFormat, err, "no decoder for content type %q", mediaType)
	}
	quads, err := rdf.ParseAny(ctx, bytes.NewReader(body), format.Name, rdf.AnyFormatOptions{})
	if err != nil {
		return nil, kiterrors.Wrap(kiterrors.ErrCodeDecode, err, "parsing %s response", format.Name)
	}
	triples := make([]rdf.Triple, 0, len(quads))
	for _, q := range quads {
		triples = append(triples, q.ToTriple())
	}
	return &Result{Kind: GraphResult, Graph: triples}, nil
}
