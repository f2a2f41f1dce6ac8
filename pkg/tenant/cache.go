package tenant

import (
	"context"
	"strconv"
	"sync"
	"time"
)

// Cache is the interface for tenant lookup caching implementations.
type Cache interface {
	Get(ctx context.Context, key string) (*Tenant, bool)
	Set(ctx context.Context, key string, tenant *Tenant, ttl time.Duration)
	Delete(ctx context.Context, key string)
	Close() error
}

// DefaultCacheTTL bounds how long a stale tenant row can be served after a
// tenant-management write on another node.
const DefaultCacheTTL = 5 * time.Minute

// DefaultCacheSize is the default maximum number of items in the in-memory cache.
const DefaultCacheSize = 1000

const (
	idKeyPrefix   = "tenant:id:"
	codeKeyPrefix = "tenant:code:"
)

// CachedProvider decorates a Provider with read-through caching. Only
// successful lookups are cached; misses and failures always hit the store,
// so a newly created tenant is visible immediately.
type CachedProvider struct {
	provider Provider
	cache    Cache
	ttl      time.Duration
}

// NewCachedProvider wraps provider with the given cache. A zero ttl falls
// back to DefaultCacheTTL.
func NewCachedProvider(provider Provider, cache Cache, ttl time.Duration) *CachedProvider {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedProvider{provider: provider, cache: cache, ttl: ttl}
}

func (p *CachedProvider) GetByID(ctx context.Context, id int64) (*Tenant, error) {
	key := idKeyPrefix + strconv.FormatInt(id, 10)
	if t, ok := p.cache.Get(ctx, key); ok {
		return t, nil
	}

	t, err := p.provider.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.store(ctx, t)
	return t, nil
}

func (p *CachedProvider) GetByCode(ctx context.Context, code string) (*Tenant, error) {
	if t, ok := p.cache.Get(ctx, codeKeyPrefix+code); ok {
		return t, nil
	}

	t, err := p.provider.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	p.store(ctx, t)
	return t, nil
}

// Invalidate evicts both cache entries of a tenant. Tenant-management
// operations call it after every write.
func (p *CachedProvider) Invalidate(ctx context.Context, t *Tenant) {
	if t == nil {
		return
	}
	p.cache.Delete(ctx, idKeyPrefix+strconv.FormatInt(t.ID, 10))
	p.cache.Delete(ctx, codeKeyPrefix+t.Code)
}

func (p *CachedProvider) store(ctx context.Context, t *Tenant) {
	p.cache.Set(ctx, idKeyPrefix+strconv.FormatInt(t.ID, 10), t, p.ttl)
	p.cache.Set(ctx, codeKeyPrefix+t.Code, t, p.ttl)
}

// inMemoryCache is the default in-process cache with TTL expiry and LRU
// eviction.
type inMemoryCache struct {
	mu      sync.Mutex
	items   map[string]cacheItem
	lru     []string
	maxSize int
	stop    chan struct{}
	done    chan struct{}
	closed  bool
}

type cacheItem struct {
	tenant    *Tenant
	expiresAt time.Time
}

// NewInMemoryCache creates an in-memory cache with automatic cleanup.
func NewInMemoryCache() Cache {
	return NewInMemoryCacheWithSize(DefaultCacheSize)
}

// NewInMemoryCacheWithSize creates an in-memory cache with the given size limit.
func NewInMemoryCacheWithSize(maxSize int) Cache {
	if maxSize <= 0 {
		maxSize = DefaultCacheSize
	}

	c := &inMemoryCache{
		items:   make(map[string]cacheItem),
		lru:     make([]string, 0, maxSize),
		maxSize: maxSize,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go c.cleanup()
	return c
}

func (c *inMemoryCache) Get(ctx context.Context, key string) (*Tenant, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, exists := c.items[key]
	if !exists {
		return nil, false
	}
	if time.Now().After(item.expiresAt) {
		delete(c.items, key)
		c.removeLRU(key)
		return nil, false
	}

	c.touchLRU(key)
	return item.tenant, true
}

func (c *inMemoryCache) Set(ctx context.Context, key string, tenant *Tenant, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.items[key]; !exists && len(c.items) >= c.maxSize {
		if len(c.lru) > 0 {
			evict := c.lru[0]
			delete(c.items, evict)
			c.lru = c.lru[1:]
		}
	}

	c.items[key] = cacheItem{tenant: tenant, expiresAt: time.Now().Add(ttl)}
	c.touchLRU(key)
}

func (c *inMemoryCache) Delete(ctx context.Context, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
	c.removeLRU(key)
}

func (c *inMemoryCache) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	close(c.stop)
	c.mu.Unlock()

	<-c.done
	return nil
}

func (c *inMemoryCache) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	defer close(c.done)

	for {
		select {
		case <-ticker.C:
			c.removeExpired()
		case <-c.stop:
			return
		}
	}
}

func (c *inMemoryCache) removeExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, item := range c.items {
		if now.After(item.expiresAt) {
			delete(c.items, key)
			c.removeLRU(key)
		}
	}
}

func (c *inMemoryCache) touchLRU(key string) {
	c.removeLRU(key)
	c.lru = append(c.lru, key)
}

func (c *inMemoryCache) removeLRU(key string) {
	for i, k := range c.lru {
		if k == key {
			c.lru = append(c.lru[:i], c.lru[i+1:]...)
			return
		}
	}
}
