// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about protocol exchanges and result decoding.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetHTTPHooks(&myHTTPHooks{})
//	    observability.SetDecodeHooks(&myDecodeHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.HTTP().OnRequest(ctx, method, host, operation)
//	// ... perform exchange ...
//	observability.HTTP().OnResponse(ctx, method, host, operation, status, duration)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from protocol exchanges with an endpoint.
// The operation label is "query" or "update".
type HTTPHooks interface {
	// OnRequest records an outgoing request.
	OnRequest(ctx context.Context, method, host, operation string)

	// OnResponse records a response from the endpoint.
	OnResponse(ctx context.Context, method, host, operation string, statusCode int, duration time.Duration)

	// OnRetry records a retry after a transient transport failure.
	// attempt is the number of the attempt that just failed, starting at 1.
	OnRetry(ctx context.Context, method, host, operation string, attempt int, err error)

	// OnError records an exchange that never produced a usable response.
	OnError(ctx context.Context, method, host, operation string, err error)
}

// =============================================================================
// Decode Hooks
// =============================================================================

// DecodeHooks receives events from result decoding.
type DecodeHooks interface {
	// OnDecode records a successfully decoded response body.
	// kind is the result kind produced ("boolean", "solutions", "graph").
	OnDecode(ctx context.Context, contentType, kind string, duration time.Duration)

	// OnDecodeError records a response body that could not be decoded.
	OnDecodeError(ctx context.Context, contentType string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnRetry(context.Context, string, string, string, int, error)            {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// NoopDecodeHooks is a no-op implementation of DecodeHooks.
type NoopDecodeHooks struct{}

func (NoopDecodeHooks) OnDecode(context.Context, string, string, time.Duration) {}
func (NoopDecodeHooks) OnDecodeError(context.Context, string, error)            {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	httpHooks   HTTPHooks   = NoopHTTPHooks{}
	decodeHooks DecodeHooks = NoopDecodeHooks{}
	hooksMu     sync.RWMutex
)

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before any requests.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// SetDecodeHooks registers custom decode hooks.
// This should be called once at application startup before any requests.
func SetDecodeHooks(h DecodeHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		decodeHooks = h
	}
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Decode returns the registered decode hooks.
func Decode() DecodeHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return decodeHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	httpHooks = NoopHTTPHooks{}
	decodeHooks = NoopDecodeHooks{}
}
