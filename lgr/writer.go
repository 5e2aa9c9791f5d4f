package lgr

/*********************************************************************************
Bounded message buffer

MessageBuffer is a fixed-capacity io.Writer. Writes past the capacity are
silently cut, so a formatter can use fmt.Fprintf directly without any risk of
growing the message beyond MAX_LOG_BUFFER_SIZE:

	fmt.Fprintf(buf, format, args...)

Truncation is reported through Truncated(), never as a write error, because
fmt stops at the first error and the caller would lose the remaining bytes
that still fit.
*/

// MessageBuffer accumulates one formatted message up to a fixed capacity.
// The backing array is allocated once; appends never reallocate it.
type MessageBuffer struct {
	data      []byte
	limit     int // current writable bound, lowered by Reserve
	truncated bool
}

// NewMessageBuffer allocates a buffer holding at most capacity bytes
// (negative capacity is treated as zero).
func NewMessageBuffer(capacity int) *MessageBuffer {
	if capacity < 0 {
		capacity = 0
	}
	return &MessageBuffer{data: make([]byte, 0, capacity), limit: capacity}
}

// Write implements io.Writer. It always reports len(p) bytes consumed and a
// nil error; bytes that do not fit are dropped.
func (b *MessageBuffer) Write(p []byte) (n int, err error) {
	free := b.limit - len(b.data)
	if len(p) > free {
		b.data = append(b.data, p[:free]...)
		b.truncated = true
	} else {
		b.data = append(b.data, p...)
	}
	return len(p), nil
}

// WriteString is the string variant of Write.
func (b *MessageBuffer) WriteString(s string) (n int, err error) {
	free := b.limit - len(b.data)
	if len(s) > free {
		b.data = append(b.data, s[:free]...)
		b.truncated = true
	} else {
		b.data = append(b.data, s...)
	}
	return len(s), nil
}

// Reserve takes n bytes of the remaining room so that a suffix of that size
// always fits when appended later with Release. Returns false if fewer than n
// bytes are free.
func (b *MessageBuffer) Reserve(n int) bool {
	if n < 0 || b.limit-len(b.data) < n {
		return false
	}
	b.limit -= n
	return true
}

// Release gives the reserved room back and appends suffix into it. The
// suffix is cut to capacity like any other write.
func (b *MessageBuffer) Release(suffix string) {
	b.limit = cap(b.data)
	b.WriteString(suffix)
}

func (b *MessageBuffer) Bytes() []byte   { return b.data }
func (b *MessageBuffer) String() string  { return string(b.data) }
func (b *MessageBuffer) Len() int        { return len(b.data) }
func (b *MessageBuffer) Cap() int        { return cap(b.data) }
func (b *MessageBuffer) Truncated() bool { return b.truncated }

// Reset empties the buffer keeping its capacity.
func (b *MessageBuffer) Reset() {
	b.data = b.data[:0]
	b.limit = cap(b.data)
	b.truncated = false
}
