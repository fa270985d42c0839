package cache

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrNoLoader = errors.New("lazy value has no loader")

// Loader constructs the cached instance.
type Loader[T any] func(ctx context.Context) (T, error)

// Lazy holds one process-wide instance and the time it was loaded. Get
// returns the instance while it is younger than the TTL and reconstructs it
// afterwards. The TTL is advisory: a stale instance stays in memory until the
// next Get replaces it.
type Lazy[T any] struct {
	mu       sync.Mutex
	load     Loader[T]
	ttl      time.Duration
	now      func() time.Time
	value    T
	loadedAt time.Time
	loaded   bool
	loads    int
}

func NewLazy[T any](ttl time.Duration, load func(ctx context.Context) (T, error)) *Lazy[T] {
	return &Lazy[T]{
		load: load,
		ttl:  ttl,
		now:  time.Now,
	}
}

// Get returns the cached instance or loads a fresh one. Concurrent callers
// wait for a single in-flight load. A failed load leaves any previous
// instance in place but does not return it.
func (l *Lazy[T]) Get(ctx context.Context) (T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.loaded && l.now().Sub(l.loadedAt) < l.ttl {
		return l.value, nil
	}

	var zero T
	if l.load == nil {
		return zero, ErrNoLoader
	}

	value, err := l.load(ctx)
	if err != nil {
		return zero, err
	}

	l.value = value
	l.loadedAt = l.now()
	l.loaded = true
	l.loads++
	return value, nil
}

// LoadedAt reports when the current instance was constructed.
func (l *Lazy[T]) LoadedAt() (time.Time, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loadedAt, l.loaded
}

// Loads counts successful constructions.
func (l *Lazy[T]) Loads() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loads
}

// Invalidate forces the next Get to reconstruct.
func (l *Lazy[T]) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.loaded = false
}
