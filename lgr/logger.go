// A small leveled logging facility with a process-wide active log. Messages
// are filtered by a category mask, formatted into a fixed-size buffer with a
// severity prefix and written synchronously to the platform sink (console,
// debugger channel, OS log facility or standard output).
package lgr

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Formatting buffers are reused between messages (and goroutines).
var msgBufPool = sync.Pool{
	New: func() any { return NewMessageBuffer(MAX_LOG_BUFFER_SIZE) },
}

// Short form of InitWithParams: all categories enabled, platform default
// output and [os.Stderr] as fallback for output failures.
//
// Usage example:
//
//	func main() {
//	    logger := lgr.Init()
//	    defer logger.Close()
//	    lgr.SetGlobalLog(logger)
//	    lgr.LogText("started %d workers\n", n)
//	    ...
//	}
func Init() *Logger {
	return InitWithParams(DEFAULT_LOG_MASK, DefaultOutput{}, os.Stderr)
}

// InitWithParams constructs a logger with explicit initial settings. A nil
// output selects [DefaultOutput], a nil fallback discards failure reports.
//
// The returned logger is not installed globally, use [SetGlobalLog] for that.
func InitWithParams(mask MessageType, output Output, fallback io.Writer) *Logger {
	l := new(Logger)
	l.debug = BUILD_DEBUG
	l.SetMask(mask)
	l.SetOutput(output)
	l.SetFormatter(nil)
	l.SetFallback(fallback)
	return l
}

// Close detaches the logger from the global slot if it is still installed
// there, so later package-level calls become no-ops instead of using a
// logger the owner considers gone. The logger itself stays usable.
func (l *Logger) Close() {
	global.uninstall(l)
}

// Sets the logging mask. Messages whose type has no common bit with the mask
// are dropped before formatting.
//
// The operation is protected by mutex for thread safety.
func (l *Logger) SetMask(mask MessageType) *Logger {
	l.sync.chngMtx.Lock()
	defer l.sync.chngMtx.Unlock()
	l.mask = mask
	return l
}

// Returns the current logging mask.
func (l *Logger) Mask() MessageType {
	l.sync.chngMtx.RLock()
	defer l.sync.chngMtx.RUnlock()
	return l.mask
}

// Sets the output used for formatted messages, [DefaultOutput] is used
// instead of nil.
func (l *Logger) SetOutput(o Output) *Logger {
	l.sync.chngMtx.Lock()
	defer l.sync.chngMtx.Unlock()
	if o != nil {
		l.output = o
	} else {
		l.output = DefaultOutput{}
	}
	return l
}

// Sets the message formatter, [DefaultFormatter] is used instead of nil.
func (l *Logger) SetFormatter(f Formatter) *Logger {
	l.sync.chngMtx.Lock()
	defer l.sync.chngMtx.Unlock()
	if f != nil {
		l.formatter = f
	} else {
		l.formatter = DefaultFormatter{}
	}
	return l
}

// Sets the fallback writer used to report output failures, io.Discard is used
// instead of nil to silently drop them.
func (l *Logger) SetFallback(f io.Writer) *Logger {
	l.sync.chngMtx.Lock()
	defer l.sync.chngMtx.Unlock()
	if f != nil {
		l.fallbck = f
	} else {
		l.fallbck = io.Discard
	}
	return l
}

// Reports whether a message of this type would reach the output.
func (l *Logger) Enabled(msgtype MessageType) bool {
	l.sync.chngMtx.RLock()
	defer l.sync.chngMtx.RUnlock()
	return l.enabled(msgtype)
}

func (l *Logger) enabled(msgtype MessageType) bool {
	if msgtype&l.mask == 0 {
		return false
	}
	// build-mode override on top of the mask
	return l.debug || !IsDebugMessage(msgtype)
}

// LogMessage formats a message with fmt verbs and writes it to the output.
// Nothing is formatted when the type is filtered out.
func (l *Logger) LogMessage(msgtype MessageType, format string, args ...any) {
	l.LogMessageVarg(msgtype, format, args)
}

// LogMessageVarg is LogMessage with an already collected argument list. It
// implements [Log].
func (l *Logger) LogMessageVarg(msgtype MessageType, format string, args []any) {
	l.sync.chngMtx.RLock()
	enabled := l.enabled(msgtype)
	formatter, output := l.formatter, l.output
	l.sync.chngMtx.RUnlock()
	if !enabled {
		return
	}
	buf := msgBufPool.Get().(*MessageBuffer)
	defer msgBufPool.Put(buf)
	buf.Reset()
	if l.formatMessage(formatter, buf, msgtype, format, args) {
		l.writeMessage(output, msgtype, buf.Bytes())
	}
}

// Runs the formatter, a panicking formatter drops the message.
func (l *Logger) formatMessage(f Formatter, buf *MessageBuffer, msgtype MessageType, format string, args []any) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			l.handleLogWriteError(_ERROR_MESSAGE_FORMAT_PANIC + panicDesc(r))
			ok = false
		}
	}()
	f.FormatLog(buf, msgtype, format, args)
	return true
}

// Hands the text to the output. Errors and panics go to the fallback.
func (l *Logger) writeMessage(o Output, msgtype MessageType, text []byte) {
	defer func() {
		if r := recover(); r != nil {
			l.handleLogWriteError(_ERROR_MESSAGE_OUTPUT_PANIC + panicDesc(r))
		}
	}()
	if err := o.LogOutput(msgtype, text); err != nil {
		l.handleLogWriteError(_ERROR_MESSAGE_OUTPUT_FAILED + ": " + err.Error())
	}
}

// Writes a single-line report to the fallback writer. A panicking fallback
// is not recovered here.
func (l *Logger) handleLogWriteError(errormsg string) {
	l.sync.chngMtx.RLock()
	fallbck := l.fallbck
	l.sync.chngMtx.RUnlock()
	l.sync.fbckMtx.Lock()
	defer l.sync.fbckMtx.Unlock()
	fallbck.Write([]byte(errormsg + "\n"))
}

/////////////////////////////////////////////////////////////////////////////////////////

// DefaultFormatter produces "<prefix><text>[\n]" where prefix and newline
// depend on the message type:
//
//	LOG_ERROR      "Error: " ... "\n"
//	LOG_DEBUG      "Debug: " ... "\n"
//	LOG_ASSERT     "Assert: " ... "\n"
//	anything else  text as is, no newline
//
// When the message does not fit, the text is cut so that the newline (if any)
// is still the last byte.
type DefaultFormatter struct{}

func (DefaultFormatter) FormatLog(buf *MessageBuffer, msgtype MessageType, format string, args []any) {
	FormatLog(buf, msgtype, format, args...)
}

// FormatLog appends the formatted message to buf, see [DefaultFormatter].
func FormatLog(buf *MessageBuffer, msgtype MessageType, format string, args ...any) {
	prefix, newline := messagePrefix(msgtype)
	buf.WriteString(prefix)
	if newline && buf.Reserve(1) {
		fmt.Fprintf(buf, format, args...)
		buf.Release("\n")
		return
	}
	fmt.Fprintf(buf, format, args...)
}

func messagePrefix(msgtype MessageType) (prefix string, newline bool) {
	switch msgtype {
	case LOG_ERROR:
		return PREFIX_ERROR, true
	case LOG_DEBUG:
		return PREFIX_DEBUG, true
	case LOG_ASSERT:
		return PREFIX_ASSERT, true
	case LOG_TEXT, LOG_DEBUGTEXT:
		return "", false
	default:
		return "", false
	}
}
