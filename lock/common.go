package lock

/*
Defines the lock capability tiers and the process-wide pieces shared by all
locks:
  - Tier: which kind of spin support the platform offers
  - resolver: a memoized one-time dynamic capability lookup
  - handle: the tracked native resource owned by a Lock
*/

import (
	"math"
	"sync"
	"sync/atomic"
)

type Tier uint8 // Spin capability tier selected for a lock at construction

const (
	TIER_UNKNOWN     Tier = iota
	TIER_MODERN           // spin-capable primitive available directly
	TIER_LEGACY_SPIN      // spin-capable initializer resolved at runtime
	TIER_LEGACY           // resolution failed, lock without spinning
	TIER_ADVISORY         // no spin notion on this platform, spin count ignored
	_TIER_MAX_for_checks_only
)

var tierNames = [_TIER_MAX_for_checks_only]string{
	"unknown",
	"modern",
	"legacy-spin",
	"legacy",
	"advisory",
}

func (t Tier) String() string {
	if t < _TIER_MAX_for_checks_only {
		return tierNames[t]
	}
	return tierNames[TIER_UNKNOWN]
}

// Reports whether locks of this tier honor the requested spin count.
func (t Tier) Spins() bool {
	return t == TIER_MODERN || t == TIER_LEGACY_SPIN
}

const (
	_ERROR_MESSAGE_LOCK_CLOSED = "lock is already closed"
)

/////////////////////////////////////////////////////////////////////////////////////////

// resolver memoizes one dynamic lookup. find runs at most once per resolver
// no matter how many goroutines ask concurrently; its result is kept for the
// process lifetime.
type resolver struct {
	once sync.Once
	find func() error
	ok   bool
}

func (r *resolver) available() bool {
	r.once.Do(func() {
		r.ok = r.find != nil && r.find() == nil
	})
	return r.ok
}

// Tier of a platform that has to look its spin-capable initializer up at
// runtime.
func legacyTier(r *resolver) Tier {
	if r.available() {
		return TIER_LEGACY_SPIN
	}
	return TIER_LEGACY
}

// Spin count actually applied by a lock of the given tier.
func effectiveSpin(t Tier, requested uint) uint32 {
	if !t.Spins() {
		return 0
	}
	if uint64(requested) > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(requested)
}

/////////////////////////////////////////////////////////////////////////////////////////

var openHandles atomic.Int64

// handle is the resource a Lock owns. It is counted while open and can be
// released only once.
type handle struct {
	released atomic.Bool
}

func openHandle() *handle {
	openHandles.Add(1)
	return &handle{}
}

func (h *handle) release() bool {
	if !h.released.CompareAndSwap(false, true) {
		return false
	}
	openHandles.Add(-1)
	return true
}

// OpenHandles returns the number of lock handles currently held by the
// process (constructed and not yet closed or collected).
func OpenHandles() int64 {
	return openHandles.Load()
}
