// Package httputil provides HTTP utilities for the sparqlkit client.
//
// # Retry
//
// [Retry] wraps an operation with bounded retry. Only errors wrapped in
// [RetryableError] are retried; everything else fails immediately:
//
//	err := httputil.Retry(ctx, 3, 0, func() error {
//	    resp, err := client.Do(req)
//	    if err != nil && httputil.IsTransient(err) {
//	        return &httputil.RetryableError{Err: err}
//	    }
//	    // ...
//	})
//
// [IsTransient] classifies the connection-reset family of transport
// failures (ECONNRESET, truncated responses, closed idle connections)
// that are worth retrying on a fresh connection. A zero delay retries
// immediately, which suits these errors: the connection is already gone,
// waiting buys nothing.
package httputil
