package sparql

import (
	"encoding/json"

	"github.com/geoknoesis/rdf-go/rdf"

	kiterrors "github.com/graphbound/sparqlkit/pkg/errors"
)

// jsonEnvelope is the SPARQL 1.1 Query Results JSON Format. Boolean is a
// pointer so an ASK answer of false is distinguishable from a missing
// field; Results likewise so a bindings table is distinguishable from its
// absence.
type jsonEnvelope struct {
	Head struct {
		Vars []string `json:"vars"`
	} `json:"head"`
	Boolean *bool `json:"boolean"`
	Results *struct {
		Bindings []map[string]jsonTerm `json:"bindings"`
	} `json:"results"`
}

type jsonTerm struct {
	Type     string `json:"type"`
	Value    string `json:"value"`
	Lang     string `json:"xml:lang"`
	Datatype string `json:"datatype"`
}

// decodeJSON parses a JSON results document. A boolean field wins over
// bindings; a document with neither is malformed.
func decodeJSON(body []byte, reg *NodeRegistry) (*Result, error) {
	var env jsonEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, kiterrors.Wrap(kiterrors.ErrCodeDecode, err, "invalid results JSON")
	}

	if env.Boolean != nil {
		return &Result{Kind: BooleanResult, Boolean: *env.Boolean}, nil
	}
	if env.Results == nil || env.Results.Bindings == nil {
		return nil, kiterrors.New(kiterrors.ErrCodeDecode, "results JSON has neither boolean nor bindings")
	}

	solutions := make([]Solution, 0, len(env.Results.Bindings))
	for _, row := range env.Results.Bindings {
		sol := make(Solution, len(row))
		for name, term := range row {
			if value, ok := jsonTermValue(term, reg); ok {
				sol[name] = value
			}
		}
		solutions = append(solutions, sol)
	}
	return &Result{Kind: BindingsResult, Solutions: solutions, Vars: env.Head.Vars}, nil
}

// jsonTermValue converts one value descriptor. Unrecognized type tags
// bind nothing rather than failing, preserving whatever the endpoint did
// manage to say.
func jsonTermValue(t jsonTerm, reg *NodeRegistry) (rdf.Term, bool) {
	switch t.Type {
	case "bnode":
		return reg.Node(t.Value), true
	case "uri":
		return rdf.IRI{Value: t.Value}, true
	case "literal":
		return rdf.Literal{Lexical: t.Value, Lang: t.Lang}, true
	case "typed-literal":
		return rdf.Literal{Lexical: t.Value, Datatype: rdf.IRI{Value: t.Datatype}}, true
	default:
		return nil, false
	}
}
