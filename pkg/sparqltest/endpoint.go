package sparqltest

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/geoknoesis/rdf-go/rdf"
	"github.com/go-chi/chi/v5"
)

// Endpoint is a miniature SPARQL endpoint over an in-memory dataset.
//
// Canned behaviors, keyed on the operation's leading keyword:
//   - ASK answers true iff the dataset is non-empty.
//   - SELECT binds ?s ?p ?o once per triple, honoring a LIMIT clause.
//   - CONSTRUCT and DESCRIBE return the whole dataset as a graph.
//   - Update forms are recorded and acknowledged with 204; CLEAR ALL
//     additionally empties the dataset. Nothing else mutates it.
//   - Anything else is rejected with 400.
//
// Safe for concurrent use.
type Endpoint struct {
	// Logf, when set, receives one line per handled operation.
	Logf func(format string, args ...any)

	mu      sync.Mutex
	triples []rdf.Triple
	updates []string
}

// NewEndpoint builds an endpoint serving the given dataset.
func NewEndpoint(triples ...rdf.Triple) *Endpoint {
	return &Endpoint{triples: triples}
}

// DefaultTriples is a small demo dataset with one of each term shape: an
// IRI link, a language-tagged literal, a plain literal, a typed literal,
// and a blank-node subject.
func DefaultTriples() []rdf.Triple {
	ex := func(local string) rdf.IRI { return rdf.IRI{Value: "http://example.org/" + local} }
	foaf := func(local string) rdf.IRI { return rdf.IRI{Value: "http://xmlns.com/foaf/0.1/" + local} }
	return []rdf.Triple{
		{S: ex("alice"), P: foaf("name"), O: rdf.Literal{Lexical: "Alice", Lang: "en"}},
		{S: ex("alice"), P: foaf("knows"), O: ex("bob")},
		{S: ex("bob"), P: foaf("name"), O: rdf.Literal{Lexical: "Bob"}},
		{S: ex("bob"), P: foaf("age"), O: rdf.Literal{Lexical: "42", Datatype: rdf.IRI{Value: "http://www.w3.org/2001/XMLSchema#integer"}}},
		{S: rdf.BlankNode{ID: "club"}, P: foaf("member"), O: ex("alice")},
	}
}

// Handler returns the endpoint's router. Operations are accepted on any
// path, via GET query parameters or POST form parameters named "query"
// or "update".
func (e *Endpoint) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/*", e.handleGet)
	r.Post("/*", e.handlePost)
	return r
}

// Triples returns a copy of the current dataset.
func (e *Endpoint) Triples() []rdf.Triple {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]rdf.Triple(nil), e.triples...)
}

// Updates returns a copy of the update texts received so far.
func (e *Endpoint) Updates() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.updates...)
}

func (e *Endpoint) handleGet(w http.ResponseWriter, r *http.Request) {
	e.serve(w, r, r.URL.Query().Get("query"))
}

func (e *Endpoint) handlePost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "unreadable form body", http.StatusBadRequest)
		return
	}
	text := r.PostForm.Get("query")
	if text == "" {
		text = r.PostForm.Get("update")
	}
	e.serve(w, r, text)
}

func (e *Endpoint) serve(w http.ResponseWriter, r *http.Request, text string) {
	kind := operationKind(text)
	e.logf("%s %s %s", r.Method, r.URL.Path, strings.ToLower(kind))

	switch kind {
	case "ASK":
		e.serveBoolean(w, r)
	case "SELECT":
		e.serveSolutions(w, r, text)
	case "CONSTRUCT", "DESCRIBE":
		e.serveGraph(w, r)
	case "INSERT", "DELETE", "CLEAR", "DROP", "CREATE", "LOAD", "COPY", "MOVE", "ADD", "WITH":
		e.serveUpdate(w, text)
	default:
		http.Error(w, "malformed operation", http.StatusBadRequest)
	}
}

func (e *Endpoint) serveBoolean(w http.ResponseWriter, r *http.Request) {
	value := len(e.Triples()) > 0

	switch negotiate(r.Header.Get("Accept"), contentTypeJSON, contentTypeXML, contentTypeBoolean) {
	case contentTypeBoolean:
		w.Header().Set("Content-Type", contentTypeBoolean)
		w.Write([]byte(strconv.FormatBool(value)))
	case contentTypeXML:
		w.Header().Set("Content-Type", contentTypeXML)
		w.Write(xmlBooleanBody(value))
	default:
		w.Header().Set("Content-Type", contentTypeJSON)
		w.Write(jsonBooleanBody(value))
	}
}

func (e *Endpoint) serveSolutions(w http.ResponseWriter, r *http.Request, text string) {
	rows := e.Triples()
	if limit := limitOf(text); limit >= 0 && limit < len(rows) {
		rows = rows[:limit]
	}

	vars := []string{"s", "p", "o"}
	if negotiate(r.Header.Get("Accept"), contentTypeJSON, contentTypeXML) == contentTypeXML {
		w.Header().Set("Content-Type", contentTypeXML)
		w.Write(xmlSolutionsBody(vars, rows))
		return
	}
	w.Header().Set("Content-Type", contentTypeJSON)
	w.Write(jsonSolutionsBody(vars, rows))
}

func (e *Endpoint) serveGraph(w http.ResponseWriter, r *http.Request) {
	format := pickGraphFormat(r.Header.Get("Accept"))
	body, err := graphBody(r.Context(), format, e.Triples())
	if err != nil {
		http.Error(w, "serialization failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", formatContentType[format.Name])
	w.Write(body)
}

func (e *Endpoint) serveUpdate(w http.ResponseWriter, text string) {
	e.mu.Lock()
	e.updates = append(e.updates, text)
	if strings.Contains(strings.ToUpper(text), "CLEAR ALL") {
		e.triples = nil
	}
	e.mu.Unlock()

	w.WriteHeader(http.StatusNoContent)
}

func (e *Endpoint) logf(format string, args ...any) {
	if e.Logf != nil {
		e.Logf(format, args...)
	}
}

// operationKind extracts the leading keyword of an operation, skipping
// PREFIX and BASE declarations. It returns "" when none is found.
func operationKind(text string) string {
	s := strings.TrimSpace(text)
	for {
		upper := strings.ToUpper(s)
		if strings.HasPrefix(upper, "PREFIX") || strings.HasPrefix(upper, "BASE") {
			i := strings.Index(s, ">")
			if i < 0 {
				return ""
			}
			s = strings.TrimSpace(s[i+1:])
			continue
		}
		i := 0
		for i < len(upper) && upper[i] >= 'A' && upper[i] <= 'Z' {
			i++
		}
		return upper[:i]
	}
}

var limitRe = regexp.MustCompile(`(?i)\bLIMIT\s+(\d+)`)

// limitOf extracts a LIMIT clause value, or -1 when there is none.
func limitOf(text string) int {
	m := limitRe.FindStringSubmatch(text)
	if m == nil {
		return -1
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return -1
	}
	return n
}

// negotiate returns whichever of the given media types appears first in
// the Accept header, defaulting to the first type.
func negotiate(accept string, types ...string) string {
	best, bestIdx := types[0], -1
	for _, t := range types {
		if i := strings.Index(accept, t); i >= 0 && (bestIdx < 0 || i < bestIdx) {
			best, bestIdx = t, i
		}
	}
	return best
}
