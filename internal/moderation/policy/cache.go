package policy

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/verdantsocial/verdant/internal/metrics"
)

// TTL is how long a cached policy list remains valid.
const TTL = 5 * time.Minute

// ObjectStore is the narrow slice of the object-store collaborator the
// cache needs: fetch one document by location.
type ObjectStore interface {
	GetObject(ctx context.Context, bucket, key string) ([]byte, error)
}

// Cache serves the current policy list, refreshing it from the object
// store at most once per TTL. It is safe for concurrent use. Concurrent
// callers that all observe a stale cache may all refresh; the refreshes
// converge to the same document, so this is tolerated rather than
// de-duplicated.
type Cache struct {
	store  ObjectStore
	bucket string
	key    string

	// now is injectable so tests control freshness without timers.
	now func() time.Time

	mu      sync.RWMutex
	current *List
}

// NewCache creates a cache reading the policy document at bucket/key.
func NewCache(store ObjectStore, bucket, key string) *Cache {
	return &Cache{
		store:  store,
		bucket: bucket,
		key:    key,
		now:    time.Now,
	}
}

// Get returns the current policy list. It never returns nil and never
// fails: on any fetch or parse error it falls back to the compiled-in
// list and stamps the cache fresh for a full TTL, so a remote outage
// costs one failed fetch per TTL window instead of one per request.
func (c *Cache) Get(ctx context.Context) *List {
	c.mu.RLock()
	current := c.current
	c.mu.RUnlock()

	if current != nil && c.now().Sub(current.FetchedAt) < TTL {
		metrics.PolicyRefreshTotal.WithLabelValues("hit").Inc()
		return current
	}

	list := c.refresh(ctx)

	c.mu.Lock()
	c.current = list
	c.mu.Unlock()

	return list
}

func (c *Cache) refresh(ctx context.Context) *List {
	data, err := c.store.GetObject(ctx, c.bucket, c.key)
	if err != nil {
		log.Warn().Err(err).Str("bucket", c.bucket).Str("key", c.key).
			Msg("policy: fetch failed, using fallback list")
		return c.fallback()
	}

	list, err := Parse(data)
	if err != nil {
		log.Warn().Err(err).Str("key", c.key).
			Msg("policy: malformed document, using fallback list")
		return c.fallback()
	}

	list.FetchedAt = c.now()
	metrics.PolicyRefreshTotal.WithLabelValues("refreshed").Inc()
	log.Debug().
		Int("critical", len(list.Critical)).
		Int("profanity", len(list.Profanity)).
		Int("harassment", len(list.Harassment)).
		Msg("policy: list refreshed")
	return list
}

// fallback stamps the compiled-in list as fresh so the next TTL window
// serves it without re-attempting the fetch.
func (c *Cache) fallback() *List {
	metrics.PolicyRefreshTotal.WithLabelValues("fallback").Inc()
	list := Fallback()
	list.FetchedAt = c.now()
	return list
}
