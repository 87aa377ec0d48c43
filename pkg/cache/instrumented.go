package cache

import (
	"context"
	"strings"
	"time"

	"github.com/matzehuels/fabmenu/pkg/observability"
)

// Instrumented reports every lookup and store to the observability cache
// hooks. The reported key type is the segment before the key hash.
type Instrumented struct {
	Cache
}

// NewInstrumented wraps c.
func NewInstrumented(c Cache) *Instrumented {
	return &Instrumented{Cache: c}
}

// Get forwards to the wrapped cache and reports a hit or miss.
func (c *Instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, hit, err := c.Cache.Get(ctx, key)
	if err == nil {
		if hit {
			observability.Cache().OnCacheHit(ctx, keyType(key))
		} else {
			observability.Cache().OnCacheMiss(ctx, keyType(key))
		}
	}
	return data, hit, err
}

// Set forwards to the wrapped cache and reports the stored size.
func (c *Instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := c.Cache.Set(ctx, key, data, ttl); err != nil {
		return err
	}
	observability.Cache().OnCacheSet(ctx, keyType(key), len(data))
	return nil
}

func keyType(key string) string {
	if i := strings.LastIndex(key, ":"); i > 0 {
		key = key[:i]
	}
	if i := strings.LastIndex(key, ":"); i >= 0 {
		key = key[i+1:]
	}
	return key
}
