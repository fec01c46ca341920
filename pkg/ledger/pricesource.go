package ledger

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// PriceSource supplies the latest market price for an instrument. Absence
// (ok == false) is a degraded-mode signal, not an error: the valuator falls
// back to average cost.
type PriceSource interface {
	LatestPrice(symbol string) (price float64, ok bool, err error)
}

// StaticPriceSource is an in-memory PriceSource. It backs tests and manual
// price entry; production deployments inject a real market-data client.
type StaticPriceSource struct {
	mu     sync.RWMutex
	quotes map[string]float64
}

// NewStaticPriceSource creates an empty static source.
func NewStaticPriceSource() *StaticPriceSource {
	return &StaticPriceSource{quotes: map[string]float64{}}
}

// Set installs a quote for a symbol.
func (s *StaticPriceSource) Set(symbol string, price float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quotes[normalizeSymbol(symbol)] = price
}

// LatestPrice implements PriceSource.
func (s *StaticPriceSource) LatestPrice(symbol string) (float64, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	price, ok := s.quotes[normalizeSymbol(symbol)]
	return price, ok, nil
}

// CachedPriceSource decorates a PriceSource with a TTL cache so repeated
// lookups within the TTL hit memory instead of the upstream source. Expired
// entries are evicted by the cache itself.
type CachedPriceSource struct {
	src   PriceSource
	cache *gocache.Cache
}

// NewCachedPriceSource wraps src with the given TTL.
func NewCachedPriceSource(src PriceSource, ttl time.Duration) *CachedPriceSource {
	return &CachedPriceSource{
		src:   src,
		cache: gocache.New(ttl, 2*ttl),
	}
}

// LatestPrice implements PriceSource. Only successful lookups are cached;
// absences and errors always go back to the upstream source.
func (c *CachedPriceSource) LatestPrice(symbol string) (float64, bool, error) {
	key := normalizeSymbol(symbol)
	if cached, found := c.cache.Get(key); found {
		return cached.(float64), true, nil
	}
	price, ok, err := c.src.LatestPrice(key)
	if err != nil || !ok {
		return 0, false, err
	}
	c.cache.Set(key, price, gocache.DefaultExpiration)
	return price, true, nil
}
