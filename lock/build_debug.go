//go:build ovrdebug

package lock

// BUILD_DEBUG keeps lock debug info (acquisition statistics).
const BUILD_DEBUG = true
