// Package observability provides hooks for metrics and tracing.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks
// at startup to receive events about validation calls and cache operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This keeps the library free of observability-framework imports while
// letting deployments plug in OpenTelemetry, Prometheus, or anything else.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetValidationHooks(&myValidationHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Validation().OnValidateStart(ctx, nodeCount, edgeCount)
//	// ... validate ...
//	observability.Validation().OnValidateComplete(ctx, isDAG, duration)
package observability

import (
	"context"
	"sync"
	"time"
)

// ValidationHooks receives events from pipeline validation.
type ValidationHooks interface {
	// OnValidateStart records an incoming validation with raw input sizes.
	OnValidateStart(ctx context.Context, nodeCount, edgeCount int)

	// OnValidateComplete records the verdict and elapsed time.
	OnValidateComplete(ctx context.Context, isDAG bool, duration time.Duration)
}

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// NoopValidationHooks is a no-op implementation of ValidationHooks.
type NoopValidationHooks struct{}

func (NoopValidationHooks) OnValidateStart(context.Context, int, int)            {}
func (NoopValidationHooks) OnValidateComplete(context.Context, bool, time.Duration) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

var (
	validationHooks ValidationHooks = NoopValidationHooks{}
	cacheHooks      CacheHooks      = NoopCacheHooks{}
	hooksMu         sync.RWMutex
)

// SetValidationHooks registers custom validation hooks.
// This should be called once at application startup before serving requests.
func SetValidationHooks(h ValidationHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		validationHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Validation returns the registered validation hooks.
func Validation() ValidationHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return validationHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	validationHooks = NoopValidationHooks{}
	cacheHooks = NoopCacheHooks{}
}
