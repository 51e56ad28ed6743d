package cachewrap

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/xxxsen/ncbackup/cacheapi"
)

type lruCacheAdaptor[K comparable, V any] struct {
	c *lru.Cache[K, V]
}

func (l *lruCacheAdaptor[K, V]) Get(ctx context.Context, k K) (V, error) {
	v, ok := l.c.Get(k)
	if !ok {
		return v, cacheapi.ErrCacheKeyNotExist
	}
	return v, nil
}

func (l *lruCacheAdaptor[K, V]) Set(ctx context.Context, k K, v V) error {
	_ = l.c.Add(k, v)
	return nil
}

func (l *lruCacheAdaptor[K, V]) Del(ctx context.Context, k K) error {
	_ = l.c.Remove(k)
	return nil
}

func WrapLruCache[K comparable, V any](in *lru.Cache[K, V]) cacheapi.ICache[K, V] {
	return &lruCacheAdaptor[K, V]{
		c: in,
	}
}

// NewLruCache builds an LRU backed cache holding at most size keys.
func NewLruCache[K comparable, V any](size int) (cacheapi.ICache[K, V], error) {
	c, err := lru.New[K, V](size)
	if err != nil {
		return nil, err
	}
	return WrapLruCache(c), nil
}
