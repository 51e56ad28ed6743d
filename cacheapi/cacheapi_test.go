package cacheapi

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type simpleCache[K comparable, V any] struct {
	m map[K]V
}

func (s *simpleCache[K, V]) Get(ctx context.Context, k K) (V, error) {
	v, ok := s.m[k]
	if !ok {
		return v, ErrCacheKeyNotExist
	}
	return v, nil
}

func (s *simpleCache[K, V]) Set(ctx context.Context, k K, v V) error {
	s.m[k] = v
	return nil
}

func newSimpleCache[K comparable, V any]() ICacheLoader[K, V] {
	return &simpleCache[K, V]{m: map[K]V{}}
}

func TestLoad(t *testing.T) {
	c := newSimpleCache[string, bool]()
	ctx := context.Background()
	calls := 0
	cb := func(ctx context.Context, k string) (bool, error) {
		calls++
		return true, nil
	}
	for i := 0; i < 3; i++ {
		v, err := Load(ctx, c, "/cashier", cb)
		assert.NoError(t, err)
		assert.True(t, v)
	}
	assert.Equal(t, 1, calls)
}

func TestLoadFailedNotCached(t *testing.T) {
	c := newSimpleCache[string, bool]()
	ctx := context.Background()
	_, err := Load(ctx, c, "/cashier", func(ctx context.Context, k string) (bool, error) {
		return false, fmt.Errorf("mkcol failed")
	})
	assert.Error(t, err)
	_, err = c.Get(ctx, "/cashier")
	assert.ErrorIs(t, err, ErrCacheKeyNotExist)
}
