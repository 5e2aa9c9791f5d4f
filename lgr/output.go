package lgr

import (
	"bytes"
	"io"
	"os"
)

// DefaultOutput routes messages to the platform sink:
//   - windows: the console when one is attached to standard output, the
//     debugger channel (OutputDebugStringW) otherwise and always for
//     debug-only types;
//   - android: the log daemon (logd) tagged LOG_OUTPUT_TAG with a priority
//     taken from the message type, standard output if logd can't be reached;
//   - anything else: standard output.
//
// Stdout replaces [os.Stdout] as the console stream; a non-nil Stdout counts
// as an attached console. Every message is written at once, unbuffered.
type DefaultOutput struct {
	Stdout io.Writer
}

func (o DefaultOutput) LogOutput(msgtype MessageType, text []byte) error {
	return platformLogOutput(o.Stdout, msgtype, text)
}

// DefaultLogOutput writes an already formatted message through the platform
// sink with the process standard output as console.
func DefaultLogOutput(msgtype MessageType, text []byte) error {
	return platformLogOutput(nil, msgtype, text)
}

func writeStdout(stdout io.Writer, text []byte) error {
	if stdout == nil {
		stdout = os.Stdout
	}
	_, err := stdout.Write(text)
	return err
}

/////////////////////////////////////////////////////////////////////////////////////////

// Severity class of a message as seen by OS log facilities.
type severity int

const (
	_SEVERITY_INFO severity = iota
	_SEVERITY_DEBUG
	_SEVERITY_ERROR
)

// debug types -> debug, assert and error -> error, anything else -> info.
func messageSeverity(msgtype MessageType) severity {
	switch msgtype {
	case LOG_DEBUGTEXT, LOG_DEBUG:
		return _SEVERITY_DEBUG
	case LOG_ASSERT, LOG_ERROR:
		return _SEVERITY_ERROR
	default:
		return _SEVERITY_INFO
	}
}

// Reports whether a message goes to the debugger channel instead of the
// console. Debug-only types never reach the console.
func debugChannel(console bool, msgtype MessageType) bool {
	return !console || IsDebugMessage(msgtype)
}

// Sends a message to the system log if it can be reached, to console
// otherwise. Only an unreachable log falls back; write errors are returned.
func routeSystemLog(dial func() (Output, error), console io.Writer, msgtype MessageType, text []byte) error {
	if sys, err := dial(); err == nil {
		return sys.LogOutput(msgtype, text)
	}
	_, err := console.Write(text)
	return err
}

// Native sinks take NUL-terminated strings.
func cutAtNUL(text []byte) []byte {
	if i := bytes.IndexByte(text, 0); i >= 0 {
		return text[:i]
	}
	return text
}
