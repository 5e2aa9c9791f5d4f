// Package lock provides an exclusive lock that spins a configurable number
// of times before blocking. The spin support is selected once per process
// from the platform capabilities and degrades to a plain blocking lock when
// the platform can't spin usefully.
//
// A Lock is not reentrant: a goroutine that already holds it and calls Lock
// again deadlocks, TryLock from the holder returns false. This matches
// [sync.Mutex] on every platform instead of depending on how the native
// primitive treats recursion.
package lock

import (
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
)

// Lock is a spinning mutual-exclusion lock. It must not be copied after
// first use. The zero value is an unlocked lock without spinning and without
// a tracked handle.
//
// Usage example:
//
//	l := lock.New(4000)
//	defer l.Close()
//	l.Lock()
//	defer l.Unlock()
//	...
type Lock struct {
	mu        sync.Mutex
	handle    *handle
	cleanup   runtime.Cleanup
	stats     *contention // debug info, nil when suppressed
	requested uint
	spin      uint32
	tier      Tier
}

var _ sync.Locker = (*Lock)(nil)

// New creates a lock that retries up to spinCount times before blocking.
// The spin count is applied as far as the platform tier allows (see
// [PlatformTier]); construction never fails.
func New(spinCount uint) *Lock {
	return newLock(spinCount, PlatformTier(), BUILD_DEBUG)
}

func newLock(spinCount uint, tier Tier, debugInfo bool) *Lock {
	l := &Lock{
		handle:    openHandle(),
		requested: spinCount,
		spin:      effectiveSpin(tier, spinCount),
		tier:      tier,
	}
	if debugInfo {
		l.stats = &contention{}
	}
	// A lock dropped without Close still gives its handle back.
	l.cleanup = runtime.AddCleanup(l, func(h *handle) { h.release() }, l.handle)
	return l
}

// Lock acquires the lock, spinning up to the effective spin count while it
// is held by someone else and blocking afterwards.
func (l *Lock) Lock() {
	if l.mu.TryLock() {
		l.stats.acquired(0, false)
		return
	}
	for i := uint32(1); i <= l.spin; i++ {
		runtime.Gosched()
		if l.mu.TryLock() {
			l.stats.acquired(i, false)
			return
		}
	}
	l.mu.Lock()
	l.stats.acquired(l.spin, true)
}

// TryLock acquires the lock if it is free, without spinning or blocking.
func (l *Lock) TryLock() bool {
	if l.mu.TryLock() {
		l.stats.acquired(0, false)
		return true
	}
	return false
}

// Unlock releases the lock. Like [sync.Mutex] it may be called from any
// goroutine, unlocking a free lock is a fatal error.
func (l *Lock) Unlock() {
	l.mu.Unlock()
}

// Close releases the lock handle. The handle is released exactly once:
// subsequent calls return an error and change nothing. The lock must not be
// used after Close.
func (l *Lock) Close() error {
	if l.handle == nil {
		return nil
	}
	if !l.handle.release() {
		return errors.New(_ERROR_MESSAGE_LOCK_CLOSED)
	}
	l.cleanup.Stop()
	return nil
}

// SpinCount returns the spin count actually applied (zero when the tier
// ignores spinning).
func (l *Lock) SpinCount() uint {
	return uint(l.spin)
}

// RequestedSpinCount returns the spin count passed to New.
func (l *Lock) RequestedSpinCount() uint {
	return l.requested
}

// Tier returns the capability tier the lock was built with.
func (l *Lock) Tier() Tier {
	return l.tier
}

// Stats returns acquisition statistics. They are collected only in builds
// with the `ovrdebug` tag, release builds always report zeros.
func (l *Lock) Stats() Stats {
	return l.stats.snapshot()
}

/////////////////////////////////////////////////////////////////////////////////////////

// Stats are the debug counters of a lock.
type Stats struct {
	Acquisitions uint64 // successful Lock/TryLock calls
	Spins        uint64 // retries spent before acquiring
	Contentions  uint64 // acquisitions that had to block after spinning
}

type contention struct {
	acquisitions atomic.Uint64
	spins        atomic.Uint64
	contentions  atomic.Uint64
}

func (c *contention) acquired(spins uint32, blocked bool) {
	if c == nil {
		return
	}
	c.acquisitions.Add(1)
	c.spins.Add(uint64(spins))
	if blocked {
		c.contentions.Add(1)
	}
}

func (c *contention) snapshot() Stats {
	if c == nil {
		return Stats{}
	}
	return Stats{
		Acquisitions: c.acquisitions.Load(),
		Spins:        c.spins.Load(),
		Contentions:  c.contentions.Load(),
	}
}
