//go:build windows

package lock

import "golang.org/x/sys/windows"

// Windows 8 (6.2) is the first version with a spin-aware initializer that
// needs no runtime lookup.
const (
	_MODERN_MAJOR = 6
	_MODERN_MINOR = 2
)

// The spin-count initializer is only looked up, never called: locks are built
// on sync.Mutex because goroutines move between OS threads and a critical
// section belongs to the thread that entered it. Its presence is what tells a
// spinning legacy system from one without spin support.
var spinInitResolver = resolver{
	find: windows.NewLazySystemDLL("kernel32.dll").NewProc("InitializeCriticalSectionAndSpinCount").Find,
}

func probeTier() Tier {
	v := windows.RtlGetVersion()
	if v.MajorVersion > _MODERN_MAJOR || (v.MajorVersion == _MODERN_MAJOR && v.MinorVersion >= _MODERN_MINOR) {
		return TIER_MODERN
	}
	return legacyTier(&spinInitResolver)
}
