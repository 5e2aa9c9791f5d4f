//go:build !windows && !plan9

package lgr

import (
	"errors"
	"log/syslog"
	"sync"
)

const _ERROR_MESSAGE_SYSLOG_CLOSED = "syslog output is closed"

// Subset of *syslog.Writer used for prioritized writes.
type priorityWriter interface {
	Debug(m string) error
	Err(m string) error
	Info(m string) error
}

// Maps a message type to the syslog priority, same classes as on logd.
func logPriority(msgtype MessageType) syslog.Priority {
	switch messageSeverity(msgtype) {
	case _SEVERITY_DEBUG:
		return syslog.LOG_DEBUG
	case _SEVERITY_ERROR:
		return syslog.LOG_ERR
	default:
		return syslog.LOG_INFO
	}
}

func writePriority(w priorityWriter, msgtype MessageType, text string) error {
	switch logPriority(msgtype) {
	case syslog.LOG_DEBUG:
		return w.Debug(text)
	case syslog.LOG_ERR:
		return w.Err(text)
	default:
		return w.Info(text)
	}
}

// SyslogOutput sends messages to the system log daemon with the same
// priority classes the android default output uses. Handy on servers where
// standard output is not collected. It is safe for concurrent use, Close
// included.
type SyslogOutput struct {
	mu     sync.RWMutex // guards w and closer
	w      priorityWriter
	closer func() error
}

// NewSyslogOutput connects to the local system log daemon. An empty tag
// selects LOG_OUTPUT_TAG.
func NewSyslogOutput(tag string) (*SyslogOutput, error) {
	if tag == "" {
		tag = LOG_OUTPUT_TAG
	}
	w, err := syslog.New(syslog.LOG_USER|syslog.LOG_INFO, tag)
	if err != nil {
		return nil, err
	}
	return &SyslogOutput{w: w, closer: w.Close}, nil
}

func (o *SyslogOutput) LogOutput(msgtype MessageType, text []byte) error {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.w == nil {
		return errors.New(_ERROR_MESSAGE_SYSLOG_CLOSED)
	}
	return writePriority(o.w, msgtype, string(text))
}

// Close drops the daemon connection. Later writes return an error.
func (o *SyslogOutput) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.w = nil
	if o.closer == nil {
		return nil
	}
	closer := o.closer
	o.closer = nil
	return closer()
}
