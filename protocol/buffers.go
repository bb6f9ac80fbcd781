package protocol

// FifoBuffer is a circular buffer for serial I/O.
// One slot is kept free to tell a full ring from an empty one.
type FifoBuffer struct {
	buf   []byte
	read  int
	write int
	size  int
}

// NewFifoBuffer creates a new FifoBuffer with the specified capacity
func NewFifoBuffer(capacity int) *FifoBuffer {
	if capacity < 2 {
		capacity = 2
	}
	return &FifoBuffer{
		buf:  make([]byte, capacity),
		size: capacity,
	}
}

// Write appends data to the FIFO buffer
func (f *FifoBuffer) Write(data []byte) int {
	written := 0
	for _, b := range data {
		nextWrite := (f.write + 1) % f.size
		if nextWrite == f.read {
			// Buffer full
			break
		}
		f.buf[f.write] = b
		f.write = nextWrite
		written++
	}
	return written
}

// PushByte appends a single byte, returning false when the ring is full
func (f *FifoBuffer) PushByte(b byte) bool {
	nextWrite := (f.write + 1) % f.size
	if nextWrite == f.read {
		return false
	}
	f.buf[f.write] = b
	f.write = nextWrite
	return true
}

// Read reads up to len(data) bytes from the FIFO buffer
func (f *FifoBuffer) Read(data []byte) int {
	read := 0
	for i := range data {
		if f.read == f.write {
			// Buffer empty
			break
		}
		data[i] = f.buf[f.read]
		f.read = (f.read + 1) % f.size
		read++
	}
	return read
}

// Available returns the number of bytes available for reading
func (f *FifoBuffer) Available() int {
	if f.write >= f.read {
		return f.write - f.read
	}
	return f.size - f.read + f.write
}

// Free returns the number of bytes available for writing
func (f *FifoBuffer) Free() int {
	return f.size - f.Available() - 1
}

// IndexByte returns the offset of the first c from the read position, or -1
func (f *FifoBuffer) IndexByte(c byte) int {
	n := f.Available()
	for i := 0; i < n; i++ {
		if f.buf[(f.read+i)%f.size] == c {
			return i
		}
	}
	return -1
}

// LastIndexByte returns the offset of the last c from the read position, or -1
func (f *FifoBuffer) LastIndexByte(c byte) int {
	for i := f.Available() - 1; i >= 0; i-- {
		if f.buf[(f.read+i)%f.size] == c {
			return i
		}
	}
	return -1
}

// Pop removes n bytes from the front
func (f *FifoBuffer) Pop(n int) {
	for i := 0; i < n && f.read != f.write; i++ {
		f.read = (f.read + 1) % f.size
	}
}

// Unwrite drops the n most recently written bytes
func (f *FifoBuffer) Unwrite(n int) {
	if avail := f.Available(); n > avail {
		n = avail
	}
	f.write = (f.write - n + f.size) % f.size
}

// IsEmpty returns true if the buffer is empty
func (f *FifoBuffer) IsEmpty() bool {
	return f.read == f.write
}

// Reset clears the buffer
func (f *FifoBuffer) Reset() {
	f.read = 0
	f.write = 0
}
