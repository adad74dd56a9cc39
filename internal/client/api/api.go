// Package api exposes the remote resource operations as typed methods.
//
// Queries go through the cache and are tagged by the endpoint registry;
// mutations go straight to the transport and, on success only, invalidate
// the tags the registry lists for them.
package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/locator/internal/client/cache"
	"github.com/dmitrijs2005/locator/internal/client/client"
	"github.com/dmitrijs2005/locator/internal/client/models"
	"github.com/dmitrijs2005/locator/internal/logging"
)

// QueryOptions tune a single read.
type QueryOptions struct {
	// Refetch bypasses a fresh cached value.
	Refetch bool
}

// Client is the remote resource client.
type Client struct {
	doer  client.Doer
	cache *cache.Cache
	log   logging.Logger
}

// New wires a transport and a cache together.
func New(doer client.Doer, c *cache.Cache, log logging.Logger) *Client {
	if log == nil {
		log = logging.Nop{}
	}
	return &Client{doer: doer, cache: c, log: log}
}

// Cache returns the underlying query cache.
func (c *Client) Cache() *cache.Cache {
	return c.cache
}

// Watch keeps the query under key refetched after invalidations for as long
// as the returned function has not been called.
func (c *Client) Watch(key cache.Key, l cache.Listener) func() {
	return c.cache.Watch(key, l)
}

func query[T any](ctx context.Context, c *Client, op client.Operation, req client.Request, opts QueryOptions) (T, error) {
	ep, _ := client.Lookup(op)
	fetch := func(ctx context.Context) (T, error) {
		var out T
		err := c.doer.Do(ctx, op, req, &out)
		return out, err
	}
	if !ep.Cacheable {
		return fetch(ctx)
	}
	return cache.Get(ctx, c.cache, cache.NewKey(op, req), ep.ProvidedTags(req), fetch, opts.Refetch)
}

func mutate[T any](ctx context.Context, c *Client, op client.Operation, req client.Request) (T, error) {
	var out T
	if err := c.doer.Do(ctx, op, req, &out); err != nil {
		return out, err
	}

	ep, _ := client.Lookup(op)
	if err := c.cache.Invalidate(ctx, ep.InvalidatedTags(req)); err != nil {
		c.log.Warn(ctx, "refetch after mutation failed", "op", string(op), "error", err)
	}
	return out, nil
}

func pageQuery(p models.Page) url.Values {
	return url.Values{
		"skip":  {strconv.Itoa(p.Skip)},
		"limit": {strconv.Itoa(p.Limit)},
	}
}
