//go:build !ovrdebug

package lgr

// BUILD_DEBUG is false in release builds: debug-only message types are
// dropped even when the mask enables them.
const BUILD_DEBUG = false
