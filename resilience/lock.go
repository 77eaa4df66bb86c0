package resilience

import (
	"context"
	"errors"
)

// ErrLockTimeout is returned by Acquire when the deadline elapses first.
var ErrLockTimeout = errors.New("resilience: lock wait timeout")

// Token represents exclusive ownership of the resident model. At most one
// token is outstanding at any instant; Release consumes it.
type Token struct {
	lock *ModelLock
}

// ModelLock is the single-holder exclusivity primitive guarding the hot
// path. It is a weight-1 semaphore, not a fair queue: the first successful
// acquire wins and no ordering is promised between waiters.
type ModelLock struct {
	sem chan struct{}
}

// NewModelLock creates an unheld ModelLock.
func NewModelLock() *ModelLock {
	return &ModelLock{sem: make(chan struct{}, 1)}
}

// TryAcquire attempts a non-blocking acquire. It returns the token and true
// on success, or a zero token and false when the lock is held.
func (l *ModelLock) TryAcquire() (Token, bool) {
	select {
	case l.sem <- struct{}{}:
		return Token{lock: l}, true
	default:
		return Token{}, false
	}
}

// Acquire blocks until the lock is free, the context is done, or its
// deadline elapses.
func (l *ModelLock) Acquire(ctx context.Context) (Token, error) {
	select {
	case l.sem <- struct{}{}:
		return Token{lock: l}, nil
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return Token{}, ErrLockTimeout
		}
		return Token{}, ctx.Err()
	}
}

// Release returns the lock. Releasing a zero token is a no-op, so a held
// token can be released unconditionally in a defer.
func (l *ModelLock) Release(t Token) {
	if t.lock != l {
		return
	}
	<-l.sem
}

// Held reports whether the lock currently has a holder.
func (l *ModelLock) Held() bool {
	return len(l.sem) == 1
}
