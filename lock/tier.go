package lock

import "sync"

var platformTier = sync.OnceValue(probeTier)

// PlatformTier returns the spin capability tier of this process. The probe
// runs once, on first use.
func PlatformTier() Tier {
	return platformTier()
}
