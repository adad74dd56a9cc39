package cache

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/locator/internal/client/client"
)

// Get is Query with a typed fetch function.
func Get[T any](ctx context.Context, c *Cache, key Key, tags []client.Tag, fetch func(context.Context) (T, error), refetch bool) (T, error) {
	v, err := c.Query(ctx, key, tags, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	}, refetch)
	if err != nil {
		var zero T
		return zero, err
	}
	out, ok := v.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("cache: value of %s is %T", key, v)
	}
	return out, nil
}
