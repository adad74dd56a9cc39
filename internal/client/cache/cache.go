// Package cache is the query cache of the remote resource client.
//
// Results are keyed by operation and canonical arguments and carry tags.
// A tag index maps every tag to the keys that hold it, so a successful
// mutation can find what it made stale. Stale keys that somebody is
// watching are refetched right away; the rest are dropped and fetched again
// on the next read.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/locator/internal/client/client"
	"github.com/dmitrijs2005/locator/internal/logging"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Key identifies one cached query.
type Key string

// NewKey builds the key of op called with args. Arguments are encoded as
// JSON, which sorts map keys, so equal arguments give equal keys.
func NewKey(op client.Operation, args any) Key {
	b, err := json.Marshal(args)
	if err != nil {
		return Key(fmt.Sprintf("%s(%v)", op, args))
	}
	return Key(fmt.Sprintf("%s(%s)", op, b))
}

// Fetcher loads the value of a key.
type Fetcher func(ctx context.Context) (any, error)

// Listener receives the outcome of every refetch of a watched key.
type Listener func(value any, err error)

type entry struct {
	value     any
	tags      []client.Tag
	fetch     Fetcher
	stale     bool
	fetchedAt time.Time
}

// Cache is safe for concurrent use.
type Cache struct {
	mu       sync.Mutex
	entries  map[Key]*entry
	index    map[client.TagType]map[string]map[Key]struct{}
	watchers map[Key]map[int]Listener
	nextID   int

	// gens counts invalidations per key and epoch counts resets. A fetch
	// stores its result only if neither moved while it ran.
	gens     map[Key]uint64
	epoch    uint64
	inflight map[Key]*pending

	flight      singleflight.Group
	concurrency int
	log         logging.Logger
}

// Option configures a Cache.
type Option func(*Cache)

// WithLogger sets the diagnostics logger.
func WithLogger(l logging.Logger) Option {
	return func(c *Cache) { c.log = l }
}

// WithRefetchConcurrency bounds how many refetches run at once after an
// invalidation. Zero or less means unbounded.
func WithRefetchConcurrency(n int) Option {
	return func(c *Cache) { c.concurrency = n }
}

// New returns an empty cache.
func New(opts ...Option) *Cache {
	c := &Cache{
		entries:  make(map[Key]*entry),
		index:    make(map[client.TagType]map[string]map[Key]struct{}),
		watchers: make(map[Key]map[int]Listener),
		gens:     make(map[Key]uint64),
		inflight: make(map[Key]*pending),
		log:      logging.Nop{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Query returns the cached value of key, calling fetch when there is none,
// when it is stale, or when refetch is set. A failed fetch leaves the cache
// as it was. Concurrent misses on one key share a single fetch.
func (c *Cache) Query(ctx context.Context, key Key, tags []client.Tag, fetch Fetcher, refetch bool) (any, error) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok && !e.stale && !refetch {
		v := e.value
		c.mu.Unlock()
		c.log.Debug(ctx, "cache hit", "key", string(key))
		return v, nil
	}
	c.mu.Unlock()

	return c.load(ctx, key, tags, fetch)
}

// pending tracks fetches in flight for a key, so an invalidation can reach
// keys that are not cached yet.
type pending struct {
	n    int
	tags []client.Tag
}

type stamp struct {
	epoch, gen uint64
}

func (c *Cache) stampLocked(key Key) stamp {
	return stamp{epoch: c.epoch, gen: c.gens[key]}
}

// load fetches key. A result that was overtaken by an invalidation or a
// reset is handed to its callers but not cached.
func (c *Cache) load(ctx context.Context, key Key, tags []client.Tag, fetch Fetcher) (any, error) {
	v, err, _ := c.flight.Do(string(key), func() (any, error) {
		c.mu.Lock()
		started := c.stampLocked(key)
		p, ok := c.inflight[key]
		if !ok {
			p = &pending{tags: tags}
			c.inflight[key] = p
		}
		p.n++
		c.mu.Unlock()

		c.log.Debug(ctx, "cache fetch", "key", string(key))
		v, err := fetch(ctx)

		c.mu.Lock()
		defer c.mu.Unlock()
		if p, ok := c.inflight[key]; ok && c.epoch == started.epoch {
			if p.n--; p.n <= 0 {
				delete(c.inflight, key)
			}
		}
		if err != nil {
			return nil, err
		}
		if c.stampLocked(key) != started {
			c.log.Debug(ctx, "cache fetch overtaken", "key", string(key))
			return v, nil
		}
		c.storeLocked(key, tags, fetch, v)
		return v, nil
	})
	return v, err
}

// storeLocked caches v under key. c.mu must be held.
func (c *Cache) storeLocked(key Key, tags []client.Tag, fetch Fetcher, v any) {
	if old, ok := c.entries[key]; ok {
		c.unindex(key, old.tags)
	}
	c.entries[key] = &entry{value: v, tags: tags, fetch: fetch, fetchedAt: time.Now()}
	for _, t := range tags {
		byID, ok := c.index[t.Type]
		if !ok {
			byID = make(map[string]map[Key]struct{})
			c.index[t.Type] = byID
		}
		keys, ok := byID[t.ID]
		if !ok {
			keys = make(map[Key]struct{})
			byID[t.ID] = keys
		}
		keys[key] = struct{}{}
	}
}

func (c *Cache) unindex(key Key, tags []client.Tag) {
	for _, t := range tags {
		byID := c.index[t.Type]
		delete(byID[t.ID], key)
		if len(byID[t.ID]) == 0 {
			delete(byID, t.ID)
		}
		if len(byID) == 0 {
			delete(c.index, t.Type)
		}
	}
}

// Watch marks key as in use. While at least one listener is registered,
// invalidating one of the key's tags refetches it and hands the outcome to
// the listeners. The returned function unregisters l.
func (c *Cache) Watch(key Key, l Listener) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++
	if c.watchers[key] == nil {
		c.watchers[key] = make(map[int]Listener)
	}
	c.watchers[key][id] = l

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.watchers[key], id)
		if len(c.watchers[key]) == 0 {
			delete(c.watchers, key)
		}
	}
}

// matching returns the keys affected by tag. A type-wide tag matches every
// key of that type; a narrowed tag matches its own id and the type-wide
// holders, such as list queries.
func (c *Cache) matching(tag client.Tag, into map[Key]struct{}) {
	byID := c.index[tag.Type]
	if tag.ID == "" {
		for _, keys := range byID {
			for k := range keys {
				into[k] = struct{}{}
			}
		}
		return
	}
	for k := range byID[tag.ID] {
		into[k] = struct{}{}
	}
	for k := range byID[""] {
		into[k] = struct{}{}
	}
}

// anyMatch reports whether one of invalidated hits one of held, by the
// same rule as matching.
func anyMatch(invalidated, held []client.Tag) bool {
	for _, inv := range invalidated {
		for _, h := range held {
			if inv.Type == h.Type && (inv.ID == "" || h.ID == "" || inv.ID == h.ID) {
				return true
			}
		}
	}
	return false
}

// Invalidate marks every key carrying one of tags as stale. Watched keys are
// refetched concurrently, in no particular order, before Invalidate returns;
// unwatched ones are evicted. The first refetch error is returned after all
// refetches finished; listeners see each outcome.
func (c *Cache) Invalidate(ctx context.Context, tags []client.Tag) error {
	if len(tags) == 0 {
		return nil
	}

	affected := make(map[Key]struct{})
	type job struct {
		key   Key
		tags  []client.Tag
		fetch Fetcher
	}
	var jobs []job

	c.mu.Lock()
	for _, t := range tags {
		c.matching(t, affected)
	}
	for k, p := range c.inflight {
		if _, ok := affected[k]; !ok && anyMatch(tags, p.tags) {
			c.gens[k]++
			c.flight.Forget(string(k))
		}
	}
	for k := range affected {
		c.gens[k]++
		c.flight.Forget(string(k))
		e := c.entries[k]
		if len(c.watchers[k]) > 0 && e.fetch != nil {
			e.stale = true
			jobs = append(jobs, job{key: k, tags: e.tags, fetch: e.fetch})
			continue
		}
		c.unindex(k, e.tags)
		delete(c.entries, k)
	}
	c.mu.Unlock()

	c.log.Debug(ctx, "cache invalidated", "tags", fmt.Sprint(tags), "affected", len(affected), "refetch", len(jobs))

	var g errgroup.Group
	if c.concurrency > 0 {
		g.SetLimit(c.concurrency)
	}
	for _, j := range jobs {
		g.Go(func() error {
			v, err := c.load(ctx, j.key, j.tags, j.fetch)
			c.notify(j.key, v, err)
			if err != nil {
				return fmt.Errorf("refetch %s: %w", j.key, err)
			}
			return nil
		})
	}
	return g.Wait()
}

func (c *Cache) notify(key Key, v any, err error) {
	c.mu.Lock()
	listeners := make([]Listener, 0, len(c.watchers[key]))
	for _, l := range c.watchers[key] {
		listeners = append(listeners, l)
	}
	c.mu.Unlock()

	for _, l := range listeners {
		l(v, err)
	}
}

// Peek returns the cached value of key without fetching. ok is false when
// the key is absent; stale reports a pending refetch.
func (c *Cache) Peek(key Key) (value any, stale bool, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false, false
	}
	return e.value, e.stale, true
}

// Len returns the number of cached keys.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Reset drops every cached value. Fetches in flight are not cached when
// they complete. Watchers stay registered.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.epoch++
	for k := range c.inflight {
		c.flight.Forget(string(k))
	}
	c.inflight = make(map[Key]*pending)
	c.gens = make(map[Key]uint64)
	c.entries = make(map[Key]*entry)
	c.index = make(map[client.TagType]map[string]map[Key]struct{})
}
