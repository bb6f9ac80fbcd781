package protocol

// LineReader assembles newline-terminated lines from received bytes.
// A line that outgrows the ring is dropped up to its terminator and
// reported once as ErrOverflow; complete lines queued before it survive.
type LineReader struct {
	fifo       *FifoBuffer
	discarding bool // dropping the rest of an overflowed line
	overflowed bool // an overflow is waiting to be reported
}

// NewLineReader creates a reader backed by a ring of the given size
func NewLineReader(size int) *LineReader {
	return &LineReader{fifo: NewFifoBuffer(size)}
}

// Write queues received bytes. It always consumes all of data.
func (r *LineReader) Write(data []byte) int {
	for _, b := range data {
		if r.discarding {
			if b == LineTerminator {
				r.discarding = false
				r.overflowed = true
			}
			continue
		}
		if r.fifo.PushByte(b) {
			continue
		}

		// Ring full: drop the partial line, keep complete ones
		partial := r.fifo.Available() - (r.fifo.LastIndexByte(LineTerminator) + 1)
		r.fifo.Unwrite(partial)
		if b == LineTerminator {
			r.overflowed = true
		} else {
			r.discarding = true
		}
	}
	return len(data)
}

// ReadLine returns the next complete line without its terminator or a
// trailing carriage return. ok is false when no line is complete yet.
func (r *LineReader) ReadLine() (line string, ok bool, err error) {
	idx := r.fifo.IndexByte(LineTerminator)
	if idx < 0 {
		if r.overflowed {
			r.overflowed = false
			return "", false, ErrOverflow
		}
		return "", false, nil
	}

	buf := make([]byte, idx+1)
	r.fifo.Read(buf)
	buf = buf[:idx]
	if n := len(buf); n > 0 && buf[n-1] == CarriageReturn {
		buf = buf[:n-1]
	}
	return string(buf), true, nil
}

// Pending returns the number of buffered bytes
func (r *LineReader) Pending() int {
	return r.fifo.Available()
}

// Reset drops everything buffered and any pending overflow
func (r *LineReader) Reset() {
	r.fifo.Reset()
	r.discarding = false
	r.overflowed = false
}
