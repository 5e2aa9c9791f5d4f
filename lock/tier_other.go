//go:build !windows

package lock

import "runtime"

// Spinning only helps when the holder can run at the same time.
func probeTier() Tier {
	if runtime.NumCPU() > 1 {
		return TIER_MODERN
	}
	return TIER_ADVISORY
}
