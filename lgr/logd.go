package lgr

import (
	"encoding/binary"
	"errors"
	"io"
	"net"
	"sync"
	"time"
)

/*
Android log daemon client

logd reads one datagram per message from LOGD_SOCKET_PATH:

	id:u8 tid:u16le sec:u32le nsec:u32le | prio:u8 tag NUL text NUL

The part after the header is the payload, logd keeps at most
_LOGD_MAX_PAYLOAD bytes of it. Longer text is cut here and stays
NUL-terminated.
*/

const LOGD_SOCKET_PATH = "/dev/socket/logdw"

const (
	_LOGD_LOG_ID_MAIN = 0
	_LOGD_HEADER_SIZE = 11
	_LOGD_MAX_PAYLOAD = 4068

	_ANDROID_LOG_DEBUG = 3
	_ANDROID_LOG_INFO  = 4
	_ANDROID_LOG_ERROR = 6
)

const _ERROR_MESSAGE_LOGD_CLOSED = "logd output is closed"

func androidPriority(msgtype MessageType) byte {
	switch messageSeverity(msgtype) {
	case _SEVERITY_DEBUG:
		return _ANDROID_LOG_DEBUG
	case _SEVERITY_ERROR:
		return _ANDROID_LOG_ERROR
	default:
		return _ANDROID_LOG_INFO
	}
}

// LogdWriter is an Output sending every message to the Android log daemon
// under one tag. It is safe for concurrent use.
type LogdWriter struct {
	mu   sync.Mutex
	conn io.WriteCloser // one Write is one datagram
	tag  string
	pkt  []byte
	now  func() time.Time
	tid  func() int
}

// DialLogd connects to the local log daemon. An empty tag selects
// LOG_OUTPUT_TAG.
func DialLogd(tag string) (*LogdWriter, error) {
	return dialLogd(LOGD_SOCKET_PATH, tag)
}

func dialLogd(path, tag string) (*LogdWriter, error) {
	conn, err := net.Dial("unixgram", path)
	if err != nil {
		return nil, err
	}
	return newLogdWriter(conn, tag), nil
}

func newLogdWriter(conn io.WriteCloser, tag string) *LogdWriter {
	if tag == "" {
		tag = LOG_OUTPUT_TAG
	}
	return &LogdWriter{conn: conn, tag: tag, now: time.Now, tid: threadID}
}

func (w *LogdWriter) LogOutput(msgtype MessageType, text []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.conn == nil {
		return errors.New(_ERROR_MESSAGE_LOGD_CLOSED)
	}
	w.pkt = appendLogdPacket(w.pkt[:0], w.now(), w.tid(), androidPriority(msgtype), w.tag, text)
	_, err := w.conn.Write(w.pkt)
	return err
}

// Close drops the daemon connection. Later writes return an error, repeated
// Close is a no-op.
func (w *LogdWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.conn == nil {
		return nil
	}
	conn := w.conn
	w.conn = nil
	return conn.Close()
}

func appendLogdPacket(pkt []byte, ts time.Time, tid int, prio byte, tag string, text []byte) []byte {
	pkt = append(pkt, _LOGD_LOG_ID_MAIN)
	pkt = binary.LittleEndian.AppendUint16(pkt, uint16(tid))
	pkt = binary.LittleEndian.AppendUint32(pkt, uint32(ts.Unix()))
	pkt = binary.LittleEndian.AppendUint32(pkt, uint32(ts.Nanosecond()))
	pkt = append(pkt, prio)
	pkt = append(pkt, tag...)
	pkt = append(pkt, 0)
	text = cutAtNUL(text)
	// prio, tag NUL and text NUL must fit the payload
	if room := max(_LOGD_MAX_PAYLOAD-len(tag)-3, 0); len(text) > room {
		text = text[:room]
	}
	pkt = append(pkt, text...)
	return append(pkt, 0)
}
