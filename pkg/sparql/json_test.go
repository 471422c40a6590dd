package sparql

import (
	"reflect"
	"testing"

	"github.com/geoknoesis/rdf-go/rdf"

	kiterrors "github.com/graphbound/sparqlkit/pkg/errors"
)

func TestDecodeJSONBoolean(t *testing.T) {
	tests := []struct {
		name string
		body string
		want bool
	}{
		{
			name: "true",
			body: `{"head":{},"boolean":true}`,
			want: true,
		},
		{
			name: "false",
			body: `{"head":{},"boolean":false}`,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := decodeJSON([]byte(tt.body), NewNodeRegistry())
			if err != nil {
				t.Fatalf("decodeJSON failed: %v", err)
			}
			if res.Kind != BooleanResult {
				t.Fatalf("Kind = %v, want BooleanResult", res.Kind)
			}
			if res.Boolean != tt.want {
				t.Errorf("Boolean = %v, want %v", res.Boolean, tt.want)
			}
			if len(res.Vars) != 0 {
				t.Errorf("Vars = %v, want empty", res.Vars)
			}
		})
	}
}

// TestDecodeJSONBindings covers the uri/literal round trip: an IRI
// binding followed by a language-tagged literal, in response order.
func TestDecodeJSONBindings(t *testing.T) {
	body := `{"results":{"bindings":[{"x":{"type":"uri","value":"http://ex/1"}},{"x":{"type":"literal","value":"hi","xml:lang":"en"}}]}}`

	res, err := decodeJSON([]byte(body), NewNodeRegistry())
	if err != nil {
		t.Fatalf("decodeJSON failed: %v", err)
	}
	if res.Kind != BindingsResult {
		t.Fatalf("Kind = %v, want BindingsResult", res.Kind)
	}

	want := []Solution{
		{"x": rdf.IRI{Value: "http://ex/1"}},
		{"x": rdf.Literal{Lexical: "hi", Lang: "en"}},
	}
	if !reflect.DeepEqual(res.Solutions, want) {
		t.Errorf("Solutions = %v, want %v", res.Solutions, want)
	}
}

func TestDecodeJSONTermKinds(t *testing.T) {
	body := `{
		"head": {"vars": ["a", "b", "c", "d"]},
		"results": {"bindings": [{
			"a": {"type": "bnode", "value": "b0"},
			"b": {"type": "uri", "value": "http://example.org/x"},
			"c": {"type": "literal", "value": "plain"},
			"d": {"type": "typed-literal", "value": "42", "datatype": "http://www.w3.org/2001/XMLSchema#integer"}
		}]}
	}`

	res, err := decodeJSON([]byte(body), NewNodeRegistry())
	if err != nil {
		t.Fatalf("decodeJSON failed: %v", err)
	}

	want := Solution{
		"a": rdf.BlankNode{ID: "b0"},
		"b": rdf.IRI{Value: "http://example.org/x"},
		"c": rdf.Literal{Lexical: "plain"},
		"d": rdf.Literal{Lexical: "42", Datatype: rdf.IRI{Value: "http://www.w3.org/2001/XMLSchema#integer"}},
	}
	if len(res.Solutions) != 1 {
		t.Fatalf("expected 1 solution, got %d", len(res.Solutions))
	}
	if !reflect.DeepEqual(res.Solutions[0], want) {
		t.Errorf("Solution = %v, want %v", res.Solutions[0], want)
	}
	if !reflect.DeepEqual(res.Vars, []string{"a", "b", "c", "d"}) {
		t.Errorf("Vars = %v, want [a b c d]", res.Vars)
	}
}

// TestDecodeJSONUnknownTypeOmitted checks the leniency rule: an
// unrecognized type tag drops that variable, it does not fail the row.
func TestDecodeJSONUnknownTypeOmitted(t *testing.T) {
	body := `{"results":{"bindings":[{
		"x": {"type": "uri", "value": "http://example.org/x"},
		"y": {"type": "mystery", "value": "whatever"}
	}]}}`

	res, err := decodeJSON([]byte(body), NewNodeRegistry())
	if err != nil {
		t.Fatalf("decodeJSON failed: %v", err)
	}
	sol := res.Solutions[0]
	if _, ok := sol["y"]; ok {
		t.Error("unrecognized term type should not bind the variable")
	}
	if sol["x"] != (rdf.IRI{Value: "http://example.org/x"}) {
		t.Errorf("x = %v, want the IRI binding", sol["x"])
	}
}

func TestDecodeJSONBlankNodeIdentity(t *testing.T) {
	reg := NewNodeRegistry()
	body := `{"results":{"bindings":[
		{"x": {"type": "bnode", "value": "b0"}},
		{"x": {"type": "bnode", "value": "b0"}},
		{"x": {"type": "bnode", "value": "b1"}}
	]}}`

	res, err := decodeJSON([]byte(body), reg)
	if err != nil {
		t.Fatalf("decodeJSON failed: %v", err)
	}

	if res.Solutions[0]["x"] != res.Solutions[1]["x"] {
		t.Error("repeated label should yield the identical node")
	}
	if res.Solutions[0]["x"] == res.Solutions[2]["x"] {
		t.Error("distinct labels should yield distinct nodes")
	}

	// A later response decoded against the same registry resolves the
	// same label to the same node.
	again, err := decodeJSON([]byte(`{"results":{"bindings":[{"x":{"type":"bnode","value":"b0"}}]}}`), reg)
	if err != nil {
		t.Fatalf("decodeJSON failed: %v", err)
	}
	if again.Solutions[0]["x"] != res.Solutions[0]["x"] {
		t.Error("blank-node identity should persist across responses on one registry")
	}
	if reg.Len() != 2 {
		t.Errorf("registry Len() = %d, want 2", reg.Len())
	}
}

func TestDecodeJSONEmptyBindings(t *testing.T) {
	res, err := decodeJSON([]byte(`{"head":{"vars":["x"]},"results":{"bindings":[]}}`), NewNodeRegistry())
	if err != nil {
		t.Fatalf("decodeJSON failed: %v", err)
	}
	if res.Kind != BindingsResult {
		t.Fatalf("Kind = %v, want BindingsResult", res.Kind)
	}
	if res.Solutions == nil {
		t.Error("empty result set should decode to a non-nil slice")
	}
	if len(res.Solutions) != 0 {
		t.Errorf("expected no solutions, got %d", len(res.Solutions))
	}
}

func TestDecodeJSONMalformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unparsable", `{"results":`},
		{"neither boolean nor bindings", `{"head":{"vars":["x"]}}`},
		{"results without bindings", `{"results":{}}`},
		{"top-level array", `[1,2,3]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeJSON([]byte(tt.body), NewNodeRegistry())
			if err == nil {
				t.Fatal("expected a decode error")
			}
			if !kiterrors.Is(err, kiterrors.ErrCodeDecode) {
				t.Errorf("error code = %v, want DECODE", kiterrors.GetCode(err))
			}
		})
	}
}
