package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
)

// LocalLocker serializes walks inside one process.
type LocalLocker struct {
	mu      sync.Mutex
	slots   map[string]chan struct{}
	timeout time.Duration
}

// NewLocalLocker returns a locker that gives up after timeout; zero waits for ctx only.
func NewLocalLocker(timeout time.Duration) *LocalLocker {
	return &LocalLocker{
		slots:   make(map[string]chan struct{}),
		timeout: timeout,
	}
}

func (l *LocalLocker) slot(key string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.slots[key]
	if !ok {
		s = make(chan struct{}, 1)
		l.slots[key] = s
	}
	return s
}

func (l *LocalLocker) Lock(ctx context.Context, key string) (func(), error) {
	s := l.slot(key)

	var expired <-chan time.Time
	if l.timeout > 0 {
		timer := time.NewTimer(l.timeout)
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case s <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-expired:
		return nil, fmt.Errorf("lock %s held for over %s: %w", key, l.timeout, domain.ErrLockTimeout)
	}

	var once sync.Once
	return func() {
		once.Do(func() { <-s })
	}, nil
}
