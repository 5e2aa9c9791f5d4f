package lgr

import (
	"sync"
	"sync/atomic"
)

/*
Process-wide active log

The active log is a single swappable slot. Installation does not transfer
ownership: the caller keeps the Log alive and *Logger.Close clears the slot
if that logger is still the installed one, so a closed logger is never used
by the package-level functions.

The package-level LogText/LogError/LogDebug/LogDebugText/LogAssert exist in
every build. Whether debug-only types reach the output is decided by the
installed logger, not by leaving the functions out.
*/

// Registry holds one nullable active log. The zero value is empty and ready
// to use. The package functions work on a process-wide Registry.
type Registry struct {
	active atomic.Pointer[logHolder]
}

// Interface values can't be stored in atomic.Pointer directly.
type logHolder struct {
	log Log
}

var global Registry

// Set replaces the active log, nil empties the slot.
func (r *Registry) Set(log Log) {
	if log == nil {
		r.active.Store(nil)
		return
	}
	r.active.Store(&logHolder{log: log})
}

// Get returns the active log or nil.
func (r *Registry) Get() Log {
	if h := r.active.Load(); h != nil {
		return h.log
	}
	return nil
}

// Empties the slot only if log is the one installed.
func (r *Registry) uninstall(log Log) bool {
	h := r.active.Load()
	if h == nil || h.log != log {
		return false
	}
	return r.active.CompareAndSwap(h, nil)
}

// Forwards a message to the active log, no-op when the slot is empty.
func (r *Registry) logf(msgtype MessageType, format string, args []any) {
	if log := r.Get(); log != nil {
		log.LogMessageVarg(msgtype, format, args)
	}
}

/////////////////////////////////////////////////////////////////////////////////////////

// SetGlobalLog installs log as the process-wide active log (nil uninstalls).
func SetGlobalLog(log Log) {
	global.Set(log)
}

// GetGlobalLog returns the process-wide active log or nil if none is
// installed. It never creates one.
func GetGlobalLog() Log {
	return global.Get()
}

var defaultLog = sync.OnceValue(func() *Logger { return Init() })

// GetDefaultLog returns the process-lifetime default logger, created on first
// use. It is independent of the active log and is not installed
// automatically:
//
//	lgr.SetGlobalLog(lgr.GetDefaultLog())
func GetDefaultLog() *Logger {
	return defaultLog()
}

// Logs plain text (no prefix, no newline added).
func LogText(format string, args ...any) {
	global.logf(LOG_TEXT, format, args)
}

// Logs an error message ("Error: " prefix, newline added).
func LogError(format string, args ...any) {
	global.logf(LOG_ERROR, format, args)
}

// Logs a debug message ("Debug: " prefix, newline added). Dropped by
// release-built loggers.
func LogDebug(format string, args ...any) {
	global.logf(LOG_DEBUG, format, args)
}

// Logs debug text (no prefix, no newline added). Dropped by release-built
// loggers.
func LogDebugText(format string, args ...any) {
	global.logf(LOG_DEBUGTEXT, format, args)
}

// Logs an assertion report ("Assert: " prefix, newline added). Dropped by
// release-built loggers.
func LogAssert(format string, args ...any) {
	global.logf(LOG_ASSERT, format, args)
}
