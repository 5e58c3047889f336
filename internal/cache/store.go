package cache

import (
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
	gocache "github.com/patrickmn/go-cache"
)

const (
	BackendLRU = "lru"
	BackendTTL = "ttl"
)

type Store interface {
	Get(key string) (any, bool)
	Set(key string, value any)
	Purge()
}

type lruStore struct {
	c *lru.LRU[string, any]
}

// NewLRU bounds the store by entry count; entries also expire after ttl.
func NewLRU(size int, ttl time.Duration) Store {
	return &lruStore{c: lru.NewLRU[string, any](size, nil, ttl)}
}

func (s *lruStore) Get(key string) (any, bool) { return s.c.Get(key) }
func (s *lruStore) Set(key string, value any)  { s.c.Add(key, value) }
func (s *lruStore) Purge()                     { s.c.Purge() }

type ttlStore struct {
	c *gocache.Cache
}

func NewTTL(ttl time.Duration) Store {
	return &ttlStore{c: gocache.New(ttl, 2*ttl)}
}

func (s *ttlStore) Get(key string) (any, bool) { return s.c.Get(key) }
func (s *ttlStore) Set(key string, value any)  { s.c.SetDefault(key, value) }
func (s *ttlStore) Purge()                     { s.c.Flush() }

func NewStore(backend string, size int, ttl time.Duration) (Store, error) {
	switch backend {
	case BackendLRU, "":
		if size <= 0 {
			return nil, fmt.Errorf("cache size must be positive, got %d", size)
		}
		return NewLRU(size, ttl), nil
	case BackendTTL:
		return NewTTL(ttl), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", backend)
	}
}
