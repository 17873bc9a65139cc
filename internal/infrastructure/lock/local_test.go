package lock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
)

func TestLocalLockerTimeout(t *testing.T) {
	l := NewLocalLocker(20 * time.Millisecond)

	unlock, err := l.Lock(context.Background(), "tree")
	if err != nil {
		t.Fatalf("Lock() error = %v", err)
	}

	if _, err := l.Lock(context.Background(), "tree"); !errors.Is(err, domain.ErrLockTimeout) {
		t.Fatalf("second Lock() error = %v, want ErrLockTimeout", err)
	}

	// other keys are independent
	other, err := l.Lock(context.Background(), "other")
	if err != nil {
		t.Fatalf("Lock(other) error = %v", err)
	}
	other()

	unlock()
	unlock()

	again, err := l.Lock(context.Background(), "tree")
	if err != nil {
		t.Fatalf("Lock() after release error = %v", err)
	}
	again()
}

func TestLocalLockerContextCancel(t *testing.T) {
	l := NewLocalLocker(0)
	unlock, err := l.Lock(context.Background(), "tree")
	if err != nil {
		t.Fatal(err)
	}
	defer unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := l.Lock(ctx, "tree"); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Lock() error = %v, want context.DeadlineExceeded", err)
	}
}

func TestLocalLockerHandsOver(t *testing.T) {
	l := NewLocalLocker(time.Second)
	unlock, err := l.Lock(context.Background(), "tree")
	if err != nil {
		t.Fatal(err)
	}

	acquired := make(chan error, 1)
	go func() {
		next, err := l.Lock(context.Background(), "tree")
		if err == nil {
			next()
		}
		acquired <- err
	}()

	select {
	case <-acquired:
		t.Fatal("lock acquired while held")
	case <-time.After(20 * time.Millisecond):
	}

	unlock()
	if err := <-acquired; err != nil {
		t.Fatalf("waiting Lock() error = %v", err)
	}
}
