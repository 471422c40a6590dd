package sparql

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/geoknoesis/rdf-go/rdf"

	kiterrors "github.com/graphbound/sparqlkit/pkg/errors"
	"github.com/graphbound/sparqlkit/pkg/httputil"
	"github.com/graphbound/sparqlkit/pkg/observability"
)

// maxAttempts bounds dispatch attempts for one call: the first try plus
// up to two immediate retries of transient connection resets. Keep-alive
// pools intermittently surface stale-connection resets that succeed on a
// fresh connection; this is not a generic reliability mechanism and never
// applies to protocol-level failures.
const maxAttempts = 3

// opKind selects the endpoint URL and parameter name for a dispatch.
type opKind int

const (
	opQuery opKind = iota
	opUpdate
)

func (k opKind) String() string {
	if k == opUpdate {
		return "update"
	}
	return "query"
}

// RequestOptions override per call what Config fixed at construction.
type RequestOptions struct {
	// Headers merge over the client's headers, key by key.
	Headers map[string]string

	// ContentType replaces the Accept header, pinning the response
	// encoding instead of negotiating.
	ContentType string

	// Method replaces the configured HTTP method for this call.
	Method string
}

// Client issues queries and updates against one endpoint. It owns a
// keep-alive connection pool and the blank-node registry; both live as
// long as the Client. Calls are strictly request/response — the caller
// controls ordering by sequencing them.
//
// Not safe for unsynchronized concurrent use.
type Client struct {
	queryURL    *url.URL
	updateURL   *url.URL
	queryParam  string
	updateParam string
	method      string
	headers     map[string]string
	http        *http.Client
	logf        func(format string, args ...any)
	registry    *NodeRegistry
}

// New validates cfg and builds a Client. Malformed URLs (endpoint, update
// endpoint, proxy) and unsupported methods fail here with a
// CONFIG_INVALID error; nothing is validated later.
func New(cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, kiterrors.New(kiterrors.ErrCodeConfigInvalid, "endpoint URL is required")
	}
	queryURL, err := parseEndpoint(cfg.URL)
	if err != nil {
		return nil, err
	}
	updateURL := queryURL
	if cfg.UpdateURL != "" {
		if updateURL, err = parseEndpoint(cfg.UpdateURL); err != nil {
			return nil, err
		}
	}

	method := strings.ToUpper(cfg.Method)
	if method == "" {
		method = http.MethodPost
	}
	if method != http.MethodGet && method != http.MethodPost {
		return nil, kiterrors.New(kiterrors.ErrCodeConfigInvalid, "unsupported method %q: use GET or POST", cfg.Method)
	}

	queryParam := cfg.QueryParam
	if queryParam == "" {
		queryParam = "query"
	}
	updateParam := cfg.UpdateParam
	if updateParam == "" {
		updateParam = queryParam
	}

	headers := defaultHeaders()
	for k, v := range cfg.Headers {
		headers[k] = v
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		if httpClient, err = newHTTPClient(cfg.Proxy, cfg.Timeout); err != nil {
			return nil, err
		}
	}

	logf := cfg.Logger
	if logf == nil {
		logf = func(string, ...any) {}
	}

	return &Client{
		queryURL:    queryURL,
		updateURL:   updateURL,
		queryParam:  queryParam,
		updateParam: updateParam,
		method:      method,
		headers:     headers,
		http:        httpClient,
		logf:        logf,
		registry:    NewNodeRegistry(),
	}, nil
}

// Query sends query text to the endpoint and decodes the response.
func (c *Client) Query(ctx context.Context, query string) (*Result, error) {
	return c.QueryWithOptions(ctx, query, RequestOptions{})
}

// QueryWithOptions is Query with per-call overrides.
func (c *Client) QueryWithOptions(ctx context.Context, query string, opts RequestOptions) (*Result, error) {
	resp, body, err := c.execute(ctx, query, opQuery, opts)
	if err != nil {
		return nil, err
	}
	if err := checkStatus(resp.StatusCode, body); err != nil {
		return nil, err
	}

	contentType := resp.Header.Get("Content-Type")
	start := time.Now()
	res, err := decodeResult(ctx, body, contentType, c.registry)
	if err != nil {
		observability.Decode().OnDecodeError(ctx, contentType, err)
		return nil, err
	}
	observability.Decode().OnDecode(ctx, contentType, res.Kind.String(), time.Since(start))
	return res, nil
}

// Update sends update text to the update endpoint. The response body is
// discarded; only the status outcome is reported.
func (c *Client) Update(ctx context.Context, update string) error {
	return c.UpdateWithOptions(ctx, update, RequestOptions{})
}

// UpdateWithOptions is Update with per-call overrides.
func (c *Client) UpdateWithOptions(ctx context.Context, update string, opts RequestOptions) error {
	resp, body, err := c.execute(ctx, update, opUpdate, opts)
	if err != nil {
		return err
	}
	return checkStatus(resp.StatusCode, body)
}

// Ask runs an ASK query and returns its boolean outcome.
func (c *Client) Ask(ctx context.Context, query string) (bool, error) {
	res, err := c.Query(ctx, query)
	if err != nil {
		return false, err
	}
	if res.Kind != BooleanResult {
		return false, kiterrors.New(kiterrors.ErrCodeDecode, "expected a boolean result, got %s", res.Kind)
	}
	return res.Boolean, nil
}

// Select runs a SELECT query and returns its solutions.
func (c *Client) Select(ctx context.Context, query string) ([]Solution, error) {
	res, err := c.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	if res.Kind != BindingsResult {
		return nil, kiterrors.New(kiterrors.ErrCodeDecode, "expected a solutions result, got %s", res.Kind)
	}
	return res.Solutions, nil
}

// Construct runs a CONSTRUCT or DESCRIBE query and returns the parsed
// statements.
func (c *Client) Construct(ctx context.Context, query string) ([]rdf.Triple, error) {
	res, err := c.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	if res.Kind != GraphResult {
		return nil, kiterrors.New(kiterrors.ErrCodeDecode, "expected a graph result, got %s", res.Kind)
	}
	return res.Graph, nil
}

// Reset clears the blank-node registry, starting a fresh scope. Terms
// already returned to callers keep their labels.
func (c *Client) Reset() {
	c.registry.Reset()
}

// execute dispatches one operation: it builds the request per the
// protocol, sends it, and reads the full body. Transient connection
// resets retry immediately up to maxAttempts total; any other transport
// failure, or exhaustion, surfaces as a TRANSPORT error. Status handling
// belongs to the caller.
func (c *Client) execute(ctx context.Context, text string, kind opKind, opts RequestOptions) (*http.Response, []byte, error) {
	target, param := c.queryURL, c.queryParam
	if kind == opUpdate {
		target, param = c.updateURL, c.updateParam
	}

	method := c.method
	if opts.Method != "" {
		method = strings.ToUpper(opts.Method)
	}
	if method != http.MethodGet && method != http.MethodPost {
		return nil, nil, kiterrors.New(kiterrors.ErrCodeConfigInvalid, "unsupported method %q: use GET or POST", opts.Method)
	}

	operation := kind.String()
	observability.HTTP().OnRequest(ctx, method, target.Host, operation)

	var (
		resp    *http.Response
		body    []byte
		attempt int
	)
	start := time.Now()
	err := httputil.Retry(ctx, maxAttempts, 0, func() error {
		attempt++
		req, err := c.buildRequest(ctx, method, target, param, text, opts)
		if err != nil {
			return err
		}

		r, err := c.http.Do(req)
		if err != nil {
			return c.transportErr(ctx, method, target.Host, operation, attempt, err)
		}
		b, err := io.ReadAll(r.Body)
		r.Body.Close()
		if err != nil {
			return c.transportErr(ctx, method, target.Host, operation, attempt, err)
		}

		resp, body = r, b
		return nil
	})
	if err != nil {
		observability.HTTP().OnError(ctx, method, target.Host, operation, err)
		return nil, nil, kiterrors.Wrap(kiterrors.ErrCodeTransport, err, "%s %s failed", operation, target.Host)
	}

	observability.HTTP().OnResponse(ctx, method, target.Host, operation, resp.StatusCode, time.Since(start))
	return resp, body, nil
}

// transportErr classifies a transport failure: connection-reset class
// errors become retryable, everything else aborts the dispatch.
func (c *Client) transportErr(ctx context.Context, method, host, operation string, attempt int, err error) error {
	if !httputil.IsTransient(err) {
		return err
	}
	if attempt < maxAttempts {
		c.logf("transient transport failure on %s %s (attempt %d/%d): %v", method, host, attempt, maxAttempts, err)
		observability.HTTP().OnRetry(ctx, method, host, operation, attempt, err)
	}
	return &httputil.RetryableError{Err: err}
}

// buildRequest constructs the outgoing request for one attempt. Requests
// are rebuilt per attempt so POST bodies can be re-read.
//
// GET merges the operation parameter into the URL's existing query
// parameters. POST moves the existing parameters plus the operation
// parameter into a form-encoded body and strips the URL's query
// component. Userinfo never leaves the client: it becomes basic auth.
func (c *Client) buildRequest(ctx context.Context, method string, target *url.URL, param, text string, opts RequestOptions) (*http.Request, error) {
	u := *target
	var body io.Reader
	if method == http.MethodGet {
		values := u.Query()
		values.Set(param, text)
		u.RawQuery = values.Encode()
	} else {
		form := u.Query()
		form.Set(param, text)
		u.RawQuery = ""
		body = strings.NewReader(form.Encode())
	}

	user := u.User
	u.User = nil

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, err
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}
	if opts.ContentType != "" {
		req.Header.Set("Accept", opts.ContentType)
	}
	if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if user != nil {
		pass, _ := user.Password()
		req.SetBasicAuth(user.Username(), pass)
	}
	return req, nil
}
