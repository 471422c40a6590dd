package query

import (
	"strings"
	"testing"
	"time"

	"github.com/geoknoesis/rdf-go/rdf"
)

func TestSelect(t *testing.T) {
	tests := []struct {
		name  string
		build func() *Builder
		want  string
	}{
		{
			name:  "Star",
			build: func() *Builder { return Select() },
			want:  "SELECT *\nWHERE { }",
		},
		{
			name:  "Projection",
			build: func() *Builder { return Select("s", "?p") },
			want:  "SELECT ?s ?p\nWHERE { }",
		},
		{
			name: "Full",
			build: func() *Builder {
				return Select("name").
					Distinct().
					Prefix("foaf", "http://xmlns.com/foaf/0.1/").
					From("http://example.org/g").
					Where(Pattern{S: Var("x"), P: Prefixed("foaf:name"), O: Var("name")}).
					OrderBy(Asc("name")).
					Limit(10).
					Offset(5)
			},
			want: `PREFIX foaf: <http://xmlns.com/foaf/0.1/>
SELECT DISTINCT ?name
FROM <http://example.org/g>
WHERE {
  ?x foaf:name ?name .
}
ORDER BY ASC(?name)
LIMIT 10
OFFSET 5`,
		},
		{
			name: "DistinctThenReduced",
			build: func() *Builder {
				return Select("s").Distinct().Reduced()
			},
			want: "SELECT REDUCED ?s\nWHERE { }",
		},
		{
			name: "GroupBy",
			build: func() *Builder {
				return Select("type").
					Where(Pattern{S: Var("s"), P: Prefixed("a"), O: Var("type")}).
					GroupBy("type")
			},
			want: `SELECT ?type
WHERE {
  ?s a ?type .
}
GROUP BY ?type`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.build().Build()
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if got != tt.want {
				t.Errorf("query mismatch\ngot:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestAsk(t *testing.T) {
	got, err := Ask().
		Where(Pattern{S: IRI("http://example.org/s"), P: Var("p"), O: Var("o")}).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	want := `ASK
WHERE {
  <http://example.org/s> ?p ?o .
}`
	if got != want {
		t.Errorf("query mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestConstruct(t *testing.T) {
	got, err := Construct(Pattern{S: Var("s"), P: IRI("http://example.org/knows"), O: Var("o")}).
		Where(
			Pattern{S: Var("s"), P: IRI("http://example.org/met"), O: Var("o")},
		).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	want := `CONSTRUCT {
  ?s <http://example.org/knows> ?o .
}
WHERE {
  ?s <http://example.org/met> ?o .
}`
	if got != want {
		t.Errorf("query mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestDescribe(t *testing.T) {
	got, err := Describe(IRI("http://example.org/x"), Var("v")).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if want := "DESCRIBE <http://example.org/x> ?v"; got != want {
		t.Errorf("query = %q, want %q", got, want)
	}

	// A where block is added only when patterns exist.
	got, err = Describe(Var("v")).
		Where(Pattern{S: Var("v"), P: Prefixed("a"), O: IRI("http://example.org/T")}).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	want := `DESCRIBE ?v
WHERE {
  ?v a <http://example.org/T> .
}`
	if got != want {
		t.Errorf("query mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestDescribeRejectsLiterals(t *testing.T) {
	if _, err := Describe("not a term").Build(); err == nil {
		t.Error("expected an error for a literal describe target")
	}
}

func TestWhereComposition(t *testing.T) {
	got, err := Select().
		Where(Pattern{S: Var("s"), P: Var("p"), O: Var("o")}).
		Optional(Pattern{S: Var("s"), P: IRI("http://example.org/mbox"), O: Var("m")}).
		Filter(`lang(?o) = "en"`).
		Union(
			[]Pattern{{S: Var("s"), P: Prefixed("a"), O: IRI("http://example.org/A")}},
			[]Pattern{{S: Var("s"), P: Prefixed("a"), O: IRI("http://example.org/B")}},
		).
		Graph(Var("g"), Pattern{S: Var("s"), P: Var("p"), O: Var("o")}).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	want := `SELECT *
WHERE {
  ?s ?p ?o .
  OPTIONAL {
    ?s <http://example.org/mbox> ?m .
  }
  FILTER (lang(?o) = "en")
  {
    ?s a <http://example.org/A> .
  } UNION {
    ?s a <http://example.org/B> .
  }
  GRAPH ?g {
    ?s ?p ?o .
  }
}`
	if got != want {
		t.Errorf("query mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestUnionSingleAlternative(t *testing.T) {
	got, err := Select().
		Union([]Pattern{{S: Var("s"), P: Var("p"), O: Var("o")}}).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if strings.Contains(got, "UNION") {
		t.Errorf("single alternative should not emit UNION:\n%s", got)
	}
}

func TestPrefixRedeclaration(t *testing.T) {
	got := Select().
		Prefix("ex", "http://example.org/old#").
		Prefix("ex", "http://example.org/new#").
		String()

	if strings.Contains(got, "old") {
		t.Errorf("redeclared prefix should replace the IRI:\n%s", got)
	}
	if !strings.Contains(got, "PREFIX ex: <http://example.org/new#>") {
		t.Errorf("missing redeclared prefix:\n%s", got)
	}
	if strings.Count(got, "PREFIX") != 1 {
		t.Errorf("prefix should be declared once:\n%s", got)
	}
}

func TestOrderByBareName(t *testing.T) {
	got := Select("name", "age").OrderBy("name", Desc("age")).String()
	if !strings.Contains(got, "ORDER BY ?name DESC(?age)") {
		t.Errorf("order clause mismatch:\n%s", got)
	}
}

func TestLimitNegativeClears(t *testing.T) {
	got := Select().Limit(10).Limit(-1).String()
	if strings.Contains(got, "LIMIT") {
		t.Errorf("negative limit should clear the clause:\n%s", got)
	}
}

func TestTermPromotion(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"String", "hi", `"hi"`},
		{"StringEscaped", "he said \"hi\"\n", `"he said \"hi\"\n"`},
		{"Bool", true, "true"},
		{"Int", 42, "42"},
		{"Int64", int64(-7), "-7"},
		{"Float", 1.5, "1.5"},
		{"FloatWhole", 100.0, "100.0"},
		{"Time", time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), `"2024-03-01T12:00:00Z"^^<http://www.w3.org/2001/XMLSchema#dateTime>`},
		{"LangLiteral", rdf.Literal{Lexical: "hallo", Lang: "de"}, `"hallo"@de`},
		{"TypedLiteral", rdf.Literal{Lexical: "5", Datatype: rdf.IRI{Value: "http://www.w3.org/2001/XMLSchema#integer"}}, `"5"^^<http://www.w3.org/2001/XMLSchema#integer>`},
		{"StringTypedLiteral", rdf.Literal{Lexical: "plain", Datatype: rdf.IRI{Value: "http://www.w3.org/2001/XMLSchema#string"}}, `"plain"`},
		{"BlankNode", rdf.BlankNode{ID: "b0"}, "_:b0"},
		{"VarDollarMarker", Var("$x"), "?x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Pattern{S: Var("s"), P: Var("p"), O: tt.value}.String()
			want := "?s ?p " + tt.want + " ."
			if got != want {
				t.Errorf("pattern = %q, want %q", got, want)
			}
		})
	}
}

func TestUnsupportedTermType(t *testing.T) {
	type opaque struct{}

	_, err := Select().Where(Pattern{S: Var("s"), P: Var("p"), O: opaque{}}).Build()
	if err == nil {
		t.Fatal("expected an error for an unsupported term type")
	}
	if !strings.Contains(err.Error(), "unsupported term type") {
		t.Errorf("error = %v, want unsupported term type", err)
	}

	// String still renders, with a marker standing in for the bad term.
	got := Pattern{S: Var("s"), P: Var("p"), O: opaque{}}.String()
	if !strings.Contains(got, "%!(") {
		t.Errorf("pattern = %q, want a %%!(...) marker", got)
	}
}
