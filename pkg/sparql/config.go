package sparql

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/graphbound/sparqlkit/pkg/buildinfo"
	kiterrors "github.com/graphbound/sparqlkit/pkg/errors"
)

const defaultTimeout = 30 * time.Second

// defaultAcceptTypes lists the result encodings negotiated by default:
// the two structured result formats first, then every RDF serialization
// the graph parser accepts.
var defaultAcceptTypes = []string{
	"application/sparql-results+json",
	"application/sparql-results+xml",
	"text/turtle",
	"application/n-triples",
	"application/rdf+xml",
	"application/ld+json",
	"application/trig",
	"application/n-quads",
}

// Config describes an endpoint. It is consumed by [New]; the resulting
// Client is immutable, so later changes to a Config have no effect.
type Config struct {
	// URL is the query endpoint. Required; must be absolute http or https.
	// Userinfo, if present, becomes HTTP basic auth and is stripped from
	// outgoing request URLs.
	URL string

	// UpdateURL is a separate endpoint for update operations.
	// Defaults to URL.
	UpdateURL string

	// QueryParam is the query-string parameter carrying query text.
	// Defaults to "query".
	QueryParam string

	// UpdateParam is the parameter carrying update text.
	// Defaults to QueryParam.
	UpdateParam string

	// Method is the preferred HTTP method, "GET" or "POST".
	// Defaults to "POST". Overridable per call via RequestOptions.
	Method string

	// Headers are sent with every request, merged over the built-in
	// defaults (Accept, User-Agent) key by key.
	Headers map[string]string

	// Proxy forces all requests through the given proxy URL. When empty,
	// the standard proxy environment variables apply, selected by the
	// endpoint's scheme.
	Proxy string

	// Timeout bounds each HTTP exchange, including retries of a single
	// dispatch. Defaults to 30s. Ignored when HTTPClient is set.
	Timeout time.Duration

	// HTTPClient replaces the internally constructed client. It is used
	// as-is: Timeout and Proxy are then the caller's responsibility.
	HTTPClient *http.Client

	// Logger receives sparse diagnostic messages (retries, transport
	// failures). Defaults to discarding them.
	Logger func(format string, args ...any)
}

// parseEndpoint validates an endpoint URL: it must parse, be absolute,
// and use http or https.
func parseEndpoint(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, kiterrors.Wrap(kiterrors.ErrCodeConfigInvalid, err, "invalid endpoint URL %q", raw)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, kiterrors.New(kiterrors.ErrCodeConfigInvalid, "endpoint URL %q must be absolute http or https", raw)
	}
	return u, nil
}

// newHTTPClient builds the transport for a client: a keep-alive pool
// cloned from the default transport, with proxy selection and an overall
// exchange timeout.
func newHTTPClient(proxy string, timeout time.Duration) (*http.Client, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if proxy != "" {
		proxyURL, err := url.Parse(proxy)
		if err != nil || !proxyURL.IsAbs() {
			return nil, kiterrors.New(kiterrors.ErrCodeConfigInvalid, "invalid proxy URL %q", proxy)
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &http.Client{Timeout: timeout, Transport: transport}, nil
}

// defaultHeaders returns the built-in headers sent when a Config does not
// override them.
func defaultHeaders() map[string]string {
	return map[string]string{
		"Accept":     strings.Join(defaultAcceptTypes, ", "),
		"User-Agent": "sparqlkit/" + buildinfo.Version,
	}
}
