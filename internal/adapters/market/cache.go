package market

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

type cachedPrice struct {
	price     decimal.Decimal
	fetchedAt time.Time
}

// CachingSource decorates a Source with a per-ticker cache of quoted prices.
// Each cached value carries the time it was fetched; a value older than the
// refresh interval is refetched on the next lookup. Invalidate provides the
// manual-refresh override. Concurrency safe.
type CachingSource struct {
	next            Source
	refreshInterval time.Duration

	mu    sync.RWMutex
	cache map[string]cachedPrice

	// now is swapped out in tests.
	now func() time.Time
}

// NewCachingSource returns a Source that caches quotes for refreshInterval.
func NewCachingSource(refreshInterval time.Duration, next Source) *CachingSource {
	return &CachingSource{
		next:            next,
		refreshInterval: refreshInterval,
		cache:           map[string]cachedPrice{},
		now:             time.Now,
	}
}

var _ Source = (*CachingSource)(nil)

// LastPrice returns the cached quote when fresh, otherwise refetches.
func (s *CachingSource) LastPrice(ctx context.Context, ticker string) (decimal.Decimal, error) {
	s.mu.RLock()
	entry, ok := s.cache[ticker]
	s.mu.RUnlock()

	if ok && s.now().Sub(entry.fetchedAt) < s.refreshInterval {
		return entry.price, nil
	}

	// Concurrent lookups of a stale ticker may refetch more than once; the
	// last writer wins, which is harmless for quote data.
	price, err := s.next.LastPrice(ctx, ticker)
	if err != nil {
		return decimal.Zero, fmt.Errorf("refreshing rate cache [%s]: %w", ticker, err)
	}

	s.mu.Lock()
	s.cache[ticker] = cachedPrice{price: price, fetchedAt: s.now()}
	s.mu.Unlock()

	return price, nil
}

// Invalidate drops the cached quote for a ticker so the next lookup hits the
// upstream.
func (s *CachingSource) Invalidate(ticker string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cache, ticker)
}

// InvalidateAll drops every cached quote.
func (s *CachingSource) InvalidateAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = map[string]cachedPrice{}
}
