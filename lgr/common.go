package lgr

/*
Defines the core data types used by the log facility:
  - MessageType: severity/category bits of a log message
  - Log: the contract of the process-wide active log slot
  - Formatter and Output: pluggable format/emit strategies of Logger
  - Logger: the default Log implementation

Also defines package-wide constants and small helpers:
  - mask bits and message types (values match the wire layout used by the
    rest of the runtime, so masks can be combined with plain bit operations)
  - buffer capacity and output tag
  - panic description helper
*/

import (
	"io"
	"strconv"
	"sync"
)

type MessageType uint32 // Severity/category of a log message (bit combination)

// Log is anything that can receive log messages from the package-level
// functions. *Logger is the default implementation; test doubles capturing
// output satisfy it as well.
type Log interface {
	LogMessageVarg(msgtype MessageType, format string, args []any)
}

// Formatter writes the textual form of a message into buf. buf never grows
// past its capacity so implementations may write freely.
type Formatter interface {
	FormatLog(buf *MessageBuffer, msgtype MessageType, format string, args []any)
}

// Output delivers a formatted message to its sink synchronously. text is
// only valid during the call (the buffer is reused afterwards).
type Output interface {
	LogOutput(msgtype MessageType, text []byte) error
}

// Logger is the default Log. Mask filtering and build-mode suppression are
// applied before any formatting happens.
type Logger struct {
	sync struct {
		chngMtx sync.RWMutex // guards configuration below
		fbckMtx sync.Mutex   // serializes fallback writes
	}
	formatter Formatter
	output    Output
	fallbck   io.Writer // receives output failures, never nil
	mask      MessageType
	debug     bool // debug build behaviour (debug-only messages allowed)
}

/////////////////////////////////////////////////////////////////////////////////////////

const (
	LOGMASK_NONE    MessageType = 0
	LOGMASK_REGULAR MessageType = 0x100
	LOGMASK_DEBUG   MessageType = 0x200
	LOGMASK_ALL     MessageType = LOGMASK_REGULAR | LOGMASK_DEBUG
)

const (
	// Message types. Low byte tells types of the same category apart.
	LOG_TEXT      MessageType = LOGMASK_REGULAR | 0
	LOG_ERROR     MessageType = LOGMASK_REGULAR | 1
	LOG_DEBUGTEXT MessageType = LOGMASK_DEBUG | 0
	LOG_DEBUG     MessageType = LOGMASK_DEBUG | 1
	LOG_ASSERT    MessageType = LOGMASK_DEBUG | 2
)

const (
	MAX_LOG_BUFFER_SIZE = 4096  // fixed capacity of a formatted message, in bytes
	DEFAULT_LOG_MASK    = LOGMASK_ALL
	LOG_OUTPUT_TAG      = "OVR" // component identifier for structured OS log facilities
)

const (
	PREFIX_ERROR  = "Error: "
	PREFIX_DEBUG  = "Debug: "
	PREFIX_ASSERT = "Assert: "
)

const (
	_ERROR_MESSAGE_OUTPUT_FAILED = "log output failed"
	_ERROR_MESSAGE_OUTPUT_PANIC  = "panic writing log to output"
	_ERROR_MESSAGE_FORMAT_PANIC  = "panic formatting log message"
	_ERROR_UNKNOWN_PANIC_TEXT    = "[no panic description]"
)

/////////////////////////////////////////////////////////////////////////////////////////

// IsDebugMessage reports whether msgtype is a debug-only category, i.e.
// one that is dropped in release builds regardless of the mask.
func IsDebugMessage(msgtype MessageType) bool {
	return msgtype&LOGMASK_DEBUG != 0
}

var messageTypeNames = map[MessageType]string{
	LOG_TEXT:      "Text",
	LOG_ERROR:     "Error",
	LOG_DEBUGTEXT: "DebugText",
	LOG_DEBUG:     "Debug",
	LOG_ASSERT:    "Assert",
}

func (t MessageType) String() string {
	if name, ok := messageTypeNames[t]; ok {
		return name
	}
	return "MessageType(0x" + strconv.FormatUint(uint64(t), 16) + ")"
}

// Converts a panic value into a compact readable string
func panicDesc(panic any) (errtext string) {
	switch v := panic.(type) {
	case string:
		errtext = ": `" + v + "`"
	case error:
		errtext = ": (error) `" + v.Error() + "`"
	default:
		errtext = " " + _ERROR_UNKNOWN_PANIC_TEXT
	}
	return errtext
}
