package db

import (
	"context"
	"sync"

	"github.com/go-gorm/caches/v4"
)

type memoryCacher struct {
	store map[string][]byte
	mu    sync.RWMutex
}

func (c *memoryCacher) Get(ctx context.Context, key string, q *caches.Query[any]) (*caches.Query[any], error) {
	c.mu.RLock()
	val, ok := c.store[key]
	c.mu.RUnlock()

	if !ok {
		return nil, nil
	}

	if err := q.Unmarshal(val); err != nil {
		return nil, err
	}

	return q, nil
}

func (c *memoryCacher) Store(ctx context.Context, key string, val *caches.Query[any]) error {
	res, err := val.Marshal()
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.store == nil {
		c.store = make(map[string][]byte)
	}
	c.store[key] = res

	return nil
}

func (c *memoryCacher) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store = make(map[string][]byte)

	return nil
}
