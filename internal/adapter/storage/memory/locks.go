package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/MikeRez0/quotapay/internal/core/domain"
)

// keyedLocks hands out one exclusive lock per key. Waiting honours ctx.
type keyedLocks struct {
	mu    sync.Mutex
	locks map[string]chan struct{}
}

func newKeyedLocks() *keyedLocks {
	return &keyedLocks{locks: make(map[string]chan struct{})}
}

func (k *keyedLocks) get(key string) chan struct{} {
	k.mu.Lock()
	defer k.mu.Unlock()

	l, ok := k.locks[key]
	if !ok {
		l = make(chan struct{}, 1)
		k.locks[key] = l
	}
	return l
}

// acquire blocks until the key is free or ctx is done.
func (k *keyedLocks) acquire(ctx context.Context, key string) (func(), error) {
	l := k.get(key)
	select {
	case l <- struct{}{}:
		return func() { <-l }, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: lock %s: %w", domain.ErrTransientStore, key, ctx.Err())
	}
}
