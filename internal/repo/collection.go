package repo

import (
	"context"

	"medical-records-api/internal/store"
)

// Collection 某个实体集合的类型化读写，每次都从存储重新读取
type Collection[T any] struct {
	s    *store.Store
	name store.Name
}

func (c *Collection[T]) All(ctx context.Context) []T { return store.Load[T](ctx, c.s, c.name) }

func (c *Collection[T]) SaveAll(ctx context.Context, items []T) bool {
	return store.Save(ctx, c.s, c.name, items)
}

func find[T any](items []T, match func(*T) bool) (*T, bool) {
	for i := range items {
		if match(&items[i]) {
			return &items[i], true
		}
	}
	return nil, false
}
