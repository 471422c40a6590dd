package sparql

import (
	"net/http"
	"strings"

	kiterrors "github.com/graphbound/sparqlkit/pkg/errors"
)

// StatusClass is the protocol outcome derived from an HTTP status code.
type StatusClass int

const (
	// StatusSuccess covers 2xx responses.
	StatusSuccess StatusClass = iota
	// StatusMalformedQuery is the endpoint rejecting the query text (400).
	StatusMalformedQuery
	// StatusClientError covers other 4xx, plus 1xx and 3xx.
	StatusClientError
	// StatusServerError covers 5xx.
	StatusServerError
)

// String returns the status class name.
func (s StatusClass) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusMalformedQuery:
		return "malformed query"
	case StatusClientError:
		return "client error"
	case StatusServerError:
		return "server error"
	default:
		return "unknown"
	}
}

// ClassifyStatus maps an HTTP status code to its protocol outcome. Every
// code classifies: 400 is a malformed query, other 4xx are client errors,
// 5xx are server errors, 2xx succeed, and anything left (1xx, 3xx) counts
// as a client error. Redirects land here too: the transport follows them
// transparently, so one surfacing as a final status is a client problem.
func ClassifyStatus(code int) StatusClass {
	switch {
	case code == http.StatusBadRequest:
		return StatusMalformedQuery
	case code >= 200 && code <= 299:
		return StatusSuccess
	case code >= 500 && code <= 599:
		return StatusServerError
	default:
		return StatusClientError
	}
}

// checkStatus converts a non-success response into a typed error carrying
// the response body as detail. Protocol failures are never retried.
func checkStatus(code int, body []byte) error {
	class := ClassifyStatus(code)
	if class == StatusSuccess {
		return nil
	}
	cause := &kiterrors.HTTPError{StatusCode: code, Body: strings.TrimSpace(string(body))}
	switch class {
	case StatusMalformedQuery:
		return kiterrors.Wrap(kiterrors.ErrCodeMalformedQuery, cause, "endpoint rejected the operation text")
	case StatusServerError:
		return kiterrors.Wrap(kiterrors.ErrCodeServerError, cause, "endpoint failed to process the operation")
	default:
		return kiterrors.Wrap(kiterrors.ErrCodeClientError, cause, "endpoint refused the request")
	}
}
