//go:build ovrdebug

package lgr

// BUILD_DEBUG is true when built with the `ovrdebug` tag: debug-only message
// types (LOG_DEBUG, LOG_DEBUGTEXT, LOG_ASSERT) pass to the output.
const BUILD_DEBUG = true
