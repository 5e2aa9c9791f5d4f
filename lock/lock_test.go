package lock

import (
	"math"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var spinCounts = []uint{0, 1, 2, 100, 4000, math.MaxUint32, math.MaxUint}

func Test_New_Close_NoLeak(t *testing.T) {
	for _, spin := range spinCounts {
		before := OpenHandles()
		for range 1000 {
			l := New(spin)
			l.Lock()
			l.Unlock()
			assert.NoError(t, l.Close())
		}
		assert.Equal(t, before, OpenHandles(), "handles leaked for spin %d", spin)
	}
	t.Run("held_open", func(t *testing.T) {
		before := OpenHandles()
		locks := make([]*Lock, 16)
		for i := range locks {
			locks[i] = New(uint(i))
		}
		assert.Equal(t, before+16, OpenHandles())
		for _, l := range locks {
			assert.NoError(t, l.Close())
		}
		assert.Equal(t, before, OpenHandles())
	})
}

func TestLock_Close(t *testing.T) {
	t.Run("twice", func(t *testing.T) {
		before := OpenHandles()
		l := New(10)
		assert.NoError(t, l.Close())
		assert.EqualError(t, l.Close(), _ERROR_MESSAGE_LOCK_CLOSED)
		assert.Equal(t, before, OpenHandles(), "second close released again")
	})
	t.Run("after_many_acquisitions", func(t *testing.T) {
		before := OpenHandles()
		l := New(10)
		for range 10000 {
			l.Lock()
			l.Unlock()
		}
		assert.NoError(t, l.Close())
		assert.Equal(t, before, OpenHandles())
	})
	t.Run("zero_value", func(t *testing.T) {
		var l Lock
		l.Lock()
		l.Unlock()
		assert.NoError(t, l.Close())
		assert.Zero(t, l.SpinCount())
	})
	t.Run("dropped_without_close", func(t *testing.T) {
		before := OpenHandles()
		func() {
			l := New(1)
			l.Lock()
			l.Unlock()
		}()
		assert.Eventually(t, func() bool {
			runtime.GC()
			return OpenHandles() == before
		}, 5*time.Second, 10*time.Millisecond, "collected lock kept its handle")
	})
}

func TestLock_MutualExclusion(t *testing.T) {
	const (
		_GOROUTINES_ = 32
		_INCREMENTS_ = 2000
	)
	for _, tier := range []Tier{TIER_MODERN, TIER_LEGACY_SPIN, TIER_LEGACY, TIER_ADVISORY} {
		t.Run(tier.String(), func(t *testing.T) {
			l := newLock(64, tier, true)
			defer l.Close()
			counter := 0
			var inside atomic.Int32
			var wg sync.WaitGroup
			for range _GOROUTINES_ {
				wg.Go(func() {
					for range _INCREMENTS_ {
						l.Lock()
						if inside.Add(1) != 1 {
							t.Error("two holders at once")
						}
						counter++
						inside.Add(-1)
						l.Unlock()
					}
				})
			}
			wg.Wait()
			assert.Equal(t, _GOROUTINES_*_INCREMENTS_, counter)
			assert.Equal(t, uint64(_GOROUTINES_*_INCREMENTS_), l.Stats().Acquisitions)
		})
	}
}

func TestLock_TryLock(t *testing.T) {
	l := New(100)
	defer l.Close()
	assert.True(t, l.TryLock())
	assert.False(t, l.TryLock(), "lock is not reentrant")
	done := make(chan bool)
	go func() { done <- l.TryLock() }()
	assert.False(t, <-done)
	l.Unlock()
	assert.True(t, l.TryLock())
	l.Unlock()
}

func TestLock_SpinCount(t *testing.T) {
	tests := []struct {
		tier      Tier
		requested uint
		wants     uint
	}{
		{TIER_MODERN, 0, 0},
		{TIER_MODERN, 4000, 4000},
		{TIER_MODERN, math.MaxUint, math.MaxUint32},
		{TIER_LEGACY_SPIN, 4000, 4000},
		{TIER_LEGACY, 4000, 0},
		{TIER_ADVISORY, 4000, 0},
		{TIER_UNKNOWN, 4000, 0},
		{Tier(200), 4000, 0},
	}
	for _, tt := range tests {
		t.Run(tt.tier.String(), func(t *testing.T) {
			l := newLock(tt.requested, tt.tier, false)
			defer l.Close()
			assert.Equal(t, tt.wants, l.SpinCount())
			assert.Equal(t, tt.requested, l.RequestedSpinCount())
			assert.Equal(t, tt.tier, l.Tier())
		})
	}
}

func TestLock_Stats(t *testing.T) {
	t.Run("suppressed", func(t *testing.T) {
		l := newLock(10, TIER_MODERN, false)
		defer l.Close()
		l.Lock()
		l.Unlock()
		assert.Equal(t, Stats{}, l.Stats())
	})
	t.Run("contended", func(t *testing.T) {
		l := newLock(3, TIER_MODERN, true)
		defer l.Close()
		l.Lock()
		acquired := make(chan struct{})
		go func() {
			l.Lock()
			close(acquired)
			l.Unlock()
		}()
		time.Sleep(50 * time.Millisecond) // let the waiter spin out and block
		l.Unlock()
		<-acquired
		s := l.Stats()
		assert.Equal(t, uint64(2), s.Acquisitions)
		assert.Equal(t, uint64(3), s.Spins)
		assert.Equal(t, uint64(1), s.Contentions)
	})
}

func Test_resolver(t *testing.T) {
	t.Run("once_under_concurrency", func(t *testing.T) {
		var calls atomic.Int32
		r := &resolver{find: func() error {
			calls.Add(1)
			time.Sleep(10 * time.Millisecond)
			return nil
		}}
		var wg sync.WaitGroup
		locks := make([]*Lock, 64)
		for i := range locks {
			wg.Go(func() {
				locks[i] = newLock(50, legacyTier(r), false)
			})
		}
		wg.Wait()
		assert.Equal(t, int32(1), calls.Load())
		for _, l := range locks {
			assert.Equal(t, TIER_LEGACY_SPIN, l.Tier())
			assert.Equal(t, uint(50), l.SpinCount())
			assert.NoError(t, l.Close())
		}
	})
	t.Run("symbol_missing", func(t *testing.T) {
		calls := 0
		r := &resolver{find: func() error {
			calls++
			return assert.AnError
		}}
		for range 10 {
			assert.Equal(t, TIER_LEGACY, legacyTier(r))
		}
		assert.Equal(t, 1, calls)
		l := newLock(50, legacyTier(r), false)
		defer l.Close()
		assert.Zero(t, l.SpinCount())
	})
	t.Run("no_finder", func(t *testing.T) {
		assert.Equal(t, TIER_LEGACY, legacyTier(&resolver{}))
	})
}

func Test_PlatformTier(t *testing.T) {
	tier := PlatformTier()
	assert.NotEqual(t, TIER_UNKNOWN, tier)
	assert.Equal(t, tier, PlatformTier())
	l := New(7)
	defer l.Close()
	assert.Equal(t, tier, l.Tier())
	assert.Equal(t, BUILD_DEBUG, l.stats != nil)
}

func Test_Tier_String(t *testing.T) {
	assert.Equal(t, "modern", TIER_MODERN.String())
	assert.Equal(t, "legacy-spin", TIER_LEGACY_SPIN.String())
	assert.Equal(t, "unknown", Tier(99).String())
	assert.True(t, TIER_MODERN.Spins())
	assert.False(t, TIER_ADVISORY.Spins())
}
