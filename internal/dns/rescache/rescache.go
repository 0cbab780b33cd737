// Package rescache is the resolver's TTL-aware result cache: typed
// positive entries keyed by (name, type) and a negative cache keyed by
// name alone, both on LRU backing stores.
package rescache

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/haukened/sr-dns/internal/dns/domain"
)

// Key derives the positive cache key for a name and query type. Names
// are compared byte-exactly at the key level; callers normalize case if
// they care.
func Key(name string, t domain.RRType) string {
	return name + "|" + t.String()
}

type entry[V any] struct {
	created time.Time
	expires time.Time
	values  []V
}

// Cache stores typed resolution results with lazy TTL expiry: expired
// entries are skipped on read and overwritten by the next Set, never
// removed eagerly. Safe for concurrent use.
type Cache[V any] struct {
	lru *lru.Cache[string, entry[V]]
}

// New returns a Cache of the given capacity.
func New[V any](size int) (*Cache[V], error) {
	backing, err := lru.New[string, entry[V]](size)
	if err != nil {
		return nil, err
	}
	return &Cache[V]{lru: backing}, nil
}

// Get returns the cached values for key if the entry has not expired.
// The empty slice is a valid payload (a cached NODATA answer).
func (c *Cache[V]) Get(key string, now time.Time) ([]V, bool) {
	e, found := c.lru.Get(key)
	if !found || !now.Before(e.expires) {
		return nil, false
	}
	return e.values, true
}

// Set overwrites the entry for key unconditionally.
func (c *Cache[V]) Set(key string, values []V, expires, now time.Time) {
	c.lru.Add(key, entry[V]{created: now, expires: expires, values: values})
}

// Len returns the number of entries currently stored, expired included.
func (c *Cache[V]) Len() int {
	return c.lru.Len()
}

// Negative records names that an upstream declared nonexistent
// (NXDOMAIN): one expiry instant per name, regardless of query type.
type Negative struct {
	lru *lru.Cache[string, time.Time]
}

// NewNegative returns a Negative cache of the given capacity.
func NewNegative(size int) (*Negative, error) {
	backing, err := lru.New[string, time.Time](size)
	if err != nil {
		return nil, err
	}
	return &Negative{lru: backing}, nil
}

// Nonexistent reports whether name is still covered by a cached NXDOMAIN.
func (n *Negative) Nonexistent(name string, now time.Time) bool {
	expires, found := n.lru.Get(name)
	return found && now.Before(expires)
}

// Set overwrites the negative entry for name.
func (n *Negative) Set(name string, expires time.Time) {
	n.lru.Add(name, expires)
}
