package resilience

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestModelLock_TryAcquire(t *testing.T) {
	l := NewModelLock()

	token, ok := l.TryAcquire()
	if !ok {
		t.Fatal("expected acquire to succeed on a fresh lock")
	}
	if !l.Held() {
		t.Error("expected lock to report held")
	}

	if _, ok := l.TryAcquire(); ok {
		t.Error("expected second acquire to fail while held")
	}

	l.Release(token)
	if l.Held() {
		t.Error("expected lock to be free after release")
	}

	if _, ok := l.TryAcquire(); !ok {
		t.Error("expected acquire to succeed after release")
	}
}

func TestModelLock_MutualExclusion(t *testing.T) {
	l := NewModelLock()

	var active, maxActive int32
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			token, err := l.Acquire(context.Background())
			if err != nil {
				t.Errorf("unexpected acquire error: %v", err)
				return
			}
			defer l.Release(token)

			cur := atomic.AddInt32(&active, 1)
			if cur > atomic.LoadInt32(&maxActive) {
				atomic.StoreInt32(&maxActive, cur)
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&active, -1)
		}()
	}

	wg.Wait()

	if maxActive != 1 {
		t.Errorf("expected at most 1 concurrent holder, observed %d", maxActive)
	}
}

func TestModelLock_AcquireTimeout(t *testing.T) {
	l := NewModelLock()

	token, ok := l.TryAcquire()
	if !ok {
		t.Fatal("setup acquire failed")
	}
	defer l.Release(token)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := l.Acquire(ctx)
	if !errors.Is(err, ErrLockTimeout) {
		t.Errorf("expected ErrLockTimeout, got %v", err)
	}
}

func TestModelLock_AcquireCancelled(t *testing.T) {
	l := NewModelLock()

	token, ok := l.TryAcquire()
	if !ok {
		t.Fatal("setup acquire failed")
	}
	defer l.Release(token)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := l.Acquire(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestModelLock_ZeroTokenReleaseIsNoop(t *testing.T) {
	l := NewModelLock()

	// Releasing a token that was never acquired must not free someone
	// else's hold.
	token, _ := l.TryAcquire()
	l.Release(Token{})
	if !l.Held() {
		t.Error("zero token release freed a held lock")
	}
	l.Release(token)
}
