package viacep

import (
	"context"
	"strings"

	domain "github.com/caiobtc/velocompra-backend/internal/entity"
	"github.com/caiobtc/velocompra-backend/internal/usecase"
)

// CEPCache is implemented by the Redis adapter.
type CEPCache interface {
	Get(ctx context.Context, cep string) (*domain.Address, bool, error)
	Set(ctx context.Context, cep string, a *domain.Address) error
}

// Cached wraps a lookup with a read-through cache. Cache failures degrade to
// the upstream call.
type Cached struct {
	next  usecase.CEPLookup
	cache CEPCache
}

func NewCached(next usecase.CEPLookup, cache CEPCache) *Cached {
	return &Cached{next: next, cache: cache}
}

func (c *Cached) Lookup(ctx context.Context, cep string) (*domain.Address, error) {
	key := strings.ReplaceAll(cep, "-", "")
	if a, ok, err := c.cache.Get(ctx, key); err == nil && ok {
		return a, nil
	}
	a, err := c.next.Lookup(ctx, cep)
	if err != nil {
		return nil, err
	}
	_ = c.cache.Set(ctx, key, a)
	return a, nil
}

var _ usecase.CEPLookup = (*Cached)(nil)
