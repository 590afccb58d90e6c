package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"golang.org/x/sync/singleflight"
)

var _ port.CatalogProvider = (*Cache)(nil)

// A Cache memoizes the first successful catalog fetch and shares it
// with all callers. It is an explicitly owned object injected through
// the app wiring, with Invalidate as the refresh hook; concurrent
// fills are deduplicated.
type Cache struct {
	mu       sync.RWMutex
	origin   port.CatalogProvider
	sfg      singleflight.Group
	products []domain.Product
	filled   bool
}

func NewCache(origin port.CatalogProvider) *Cache {
	return &Cache{origin: origin}
}

func (c *Cache) ListProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "Cache.ListProducts"

	c.mu.RLock()
	if c.filled {
		ps := c.products
		c.mu.RUnlock()
		return ps, nil
	}
	c.mu.RUnlock()

	v, err, _ := c.sfg.Do("catalog", func() (any, error) {
		ps, err := c.origin.ListProducts(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.products = ps
		c.filled = true
		c.mu.Unlock()
		return ps, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return v.([]domain.Product), nil
}

// Invalidate drops the memoized catalog so the next read refetches.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.products = nil
	c.filled = false
	c.mu.Unlock()
}
