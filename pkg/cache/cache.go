// Package cache provides verdict caching for pipeline validation.
//
// Validation is cheap, but editors tend to re-submit the same graph on every
// keystroke. The cache stores the computed summary keyed by a canonical hash
// of the graph structure, so permuted but structurally identical payloads
// share an entry.
//
// Backends:
//   - FileCache: hash-sharded JSON files for CLI and single-instance use
//   - RedisCache: shared cache for multi-instance deployments
//   - NullCache: caching disabled
//
// The cache stores derived results only. Pipelines themselves are never
// persisted.
package cache

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/pipecheck/pipecheck/pkg/pipeline"
)

// Cache is the interface all cache backends implement.
// Get returns (data, hit, error); a miss is not an error.
type Cache interface {
	// Get retrieves a value from the cache.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value from the cache.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer generates cache keys for validation verdicts.
type Keyer interface {
	// VerdictKey returns a key that is stable under permutation of the
	// node and edge lists but distinguishes every other difference,
	// including duplicate entries (raw counts are part of the summary).
	VerdictKey(p pipeline.Pipeline) string
}

// DefaultKeyer hashes a canonical form of the graph structure.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// VerdictKey implements Keyer. The canonical form is the sorted node-ID list
// plus the sorted (source, target) pair list, duplicates preserved. Only
// fields the summary depends on participate - editor metadata does not.
func (k *DefaultKeyer) VerdictKey(p pipeline.Pipeline) string {
	nodes := slices.Sorted(slices.Values(p.NodeIDs()))

	pairs := make([]string, len(p.Edges))
	for i, e := range p.Edges {
		pairs[i] = e.Source + "\x00" + e.Target
	}
	slices.Sort(pairs)

	var b strings.Builder
	for _, id := range nodes {
		b.WriteString(id)
		b.WriteByte('\x01')
	}
	b.WriteByte('\x02')
	for _, pair := range pairs {
		b.WriteString(pair)
		b.WriteByte('\x01')
	}

	return "verdict:" + Hash([]byte(b.String()))
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
