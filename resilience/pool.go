package resilience

import (
	"context"
	"errors"
)

// Common pool errors.
var (
	// ErrPoolFull is returned when the pool is full and the caller allows no wait.
	ErrPoolFull = errors.New("resilience: pool is full")
	// ErrPoolTimeout is returned when the deadline elapses while waiting for a slot.
	ErrPoolTimeout = errors.New("resilience: slot wait timeout")
)

// Slot is one unit of permitted concurrent cold-path execution. Release
// consumes it.
type Slot struct {
	pool *SlotPool
}

// SlotPoolConfig configures a SlotPool.
type SlotPoolConfig struct {
	// Name identifies this pool for metrics/logging.
	Name string
	// Capacity is the maximum number of concurrently held slots
	// (max_cold_workers). Defaults to 2.
	Capacity int
	// OnReject is called when an acquisition is rejected.
	OnReject func(name string)
	// OnAcquire is called when a slot is acquired.
	OnAcquire func(name string)
	// OnRelease is called when a slot is released.
	OnRelease func(name string)
}

// SlotPool bounds concurrent cold worker processes. Acquisition beyond
// capacity blocks until a slot frees or the context deadline elapses; the
// capacity is never exceeded.
type SlotPool struct {
	config SlotPoolConfig
	sem    chan struct{}
}

// NewSlotPool creates a new SlotPool.
func NewSlotPool(config SlotPoolConfig) *SlotPool {
	if config.Capacity <= 0 {
		config.Capacity = 2
	}
	return &SlotPool{
		config: config,
		sem:    make(chan struct{}, config.Capacity),
	}
}

// AcquireSlot acquires a slot, waiting until the context is done if the pool
// is saturated. A context with no deadline waits until cancellation.
func (p *SlotPool) AcquireSlot(ctx context.Context) (Slot, error) {
	// Try immediate acquire
	select {
	case p.sem <- struct{}{}:
		p.acquired()
		return Slot{pool: p}, nil
	default:
	}

	select {
	case p.sem <- struct{}{}:
		p.acquired()
		return Slot{pool: p}, nil
	case <-ctx.Done():
		if p.config.OnReject != nil {
			p.config.OnReject(p.config.Name)
		}
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return Slot{}, ErrPoolTimeout
		}
		return Slot{}, ctx.Err()
	}
}

// TryAcquireSlot acquires a slot without waiting, returning ErrPoolFull when
// the pool is saturated.
func (p *SlotPool) TryAcquireSlot() (Slot, error) {
	select {
	case p.sem <- struct{}{}:
		p.acquired()
		return Slot{pool: p}, nil
	default:
		if p.config.OnReject != nil {
			p.config.OnReject(p.config.Name)
		}
		return Slot{}, ErrPoolFull
	}
}

// Release returns a slot to the pool. Releasing a zero slot is a no-op, so a
// held slot can be released unconditionally in a defer.
func (p *SlotPool) Release(s Slot) {
	if s.pool != p {
		return
	}
	<-p.sem
	if p.config.OnRelease != nil {
		p.config.OnRelease(p.config.Name)
	}
}

// InUse returns the number of slots currently held.
func (p *SlotPool) InUse() int {
	return len(p.sem)
}

// Available returns the number of free slots.
func (p *SlotPool) Available() int {
	return p.config.Capacity - len(p.sem)
}

// Capacity returns the configured slot bound.
func (p *SlotPool) Capacity() int {
	return p.config.Capacity
}

func (p *SlotPool) acquired() {
	if p.config.OnAcquire != nil {
		p.config.OnAcquire(p.config.Name)
	}
}
