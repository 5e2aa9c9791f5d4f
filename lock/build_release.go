//go:build !ovrdebug

package lock

// BUILD_DEBUG is false in release builds: lock debug info is suppressed.
const BUILD_DEBUG = false
