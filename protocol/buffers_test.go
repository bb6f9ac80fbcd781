package protocol

import "testing"

func TestFifoBuffer(t *testing.T) {
	fifo := NewFifoBuffer(10)

	if !fifo.IsEmpty() {
		t.Error("New FIFO should be empty")
	}

	if fifo.Available() != 0 {
		t.Errorf("Empty FIFO should have 0 available, got %d", fifo.Available())
	}

	// Write some data
	data := []byte{1, 2, 3, 4, 5}
	written := fifo.Write(data)

	if written != 5 {
		t.Errorf("Expected to write 5 bytes, wrote %d", written)
	}

	if fifo.Available() != 5 {
		t.Errorf("Expected 5 bytes available, got %d", fifo.Available())
	}

	// Read some data
	readBuf := make([]byte, 3)
	read := fifo.Read(readBuf)

	if read != 3 {
		t.Errorf("Expected to read 3 bytes, read %d", read)
	}

	if readBuf[0] != 1 || readBuf[1] != 2 || readBuf[2] != 3 {
		t.Errorf("Read data mismatch: got %v", readBuf)
	}

	if fifo.Available() != 2 {
		t.Errorf("After reading 3, expected 2 available, got %d", fifo.Available())
	}

	// Test Pop
	fifo.Pop(1)
	if fifo.Available() != 1 {
		t.Errorf("After popping 1, expected 1 available, got %d", fifo.Available())
	}

	// A console-sized ring holds one byte less than its size
	fifo = NewFifoBuffer(LineMax)
	long := make([]byte, LineMax+8)
	for i := range long {
		long[i] = 'a'
	}
	if written = fifo.Write(long); written != LineMax-1 {
		t.Errorf("Expected to write %d bytes, wrote %d", LineMax-1, written)
	}
	if fifo.Free() != 0 {
		t.Errorf("Full FIFO should have no free space, got %d", fifo.Free())
	}
	if fifo.PushByte('\n') {
		t.Error("PushByte succeeded on a full FIFO")
	}

	fifo.Pop(1)
	if !fifo.PushByte('\n') {
		t.Error("PushByte failed after freeing a slot")
	}
	if idx := fifo.IndexByte('\n'); idx != LineMax-2 {
		t.Errorf("Expected terminator at %d, got %d", LineMax-2, idx)
	}
}

func TestFifoBufferWrapAround(t *testing.T) {
	fifo := NewFifoBuffer(5)

	// Fill buffer
	fifo.Write([]byte{1, 2, 3, 4})

	// Read some
	readBuf := make([]byte, 2)
	fifo.Read(readBuf)

	// Write more (will wrap around)
	written := fifo.Write([]byte{5, 6})
	if written != 2 {
		t.Errorf("Expected to write 2 bytes, wrote %d", written)
	}

	// Verify order
	allData := make([]byte, 4)
	read := fifo.Read(allData)
	if read != 4 {
		t.Errorf("Expected to read 4 bytes, read %d", read)
	}
	if allData[0] != 3 || allData[1] != 4 || allData[2] != 5 || allData[3] != 6 {
		t.Errorf("Wrap-around data mismatch: got %v", allData)
	}
}

func TestFifoBufferIndexByte(t *testing.T) {
	fifo := NewFifoBuffer(8)

	// Move the read position so the search has to wrap
	fifo.Write([]byte("abcde"))
	fifo.Pop(5)
	fifo.Write([]byte("x\ny\n"))

	if idx := fifo.IndexByte('\n'); idx != 1 {
		t.Errorf("IndexByte: expected 1, got %d", idx)
	}
	if idx := fifo.LastIndexByte('\n'); idx != 3 {
		t.Errorf("LastIndexByte: expected 3, got %d", idx)
	}
	if idx := fifo.IndexByte('z'); idx != -1 {
		t.Errorf("IndexByte of missing byte: expected -1, got %d", idx)
	}
}

func TestFifoBufferUnwrite(t *testing.T) {
	fifo := NewFifoBuffer(5)
	fifo.Write([]byte{1, 2, 3})
	fifo.Pop(2)
	fifo.Write([]byte{4, 5, 6}) // wraps

	fifo.Unwrite(2)
	if fifo.Available() != 2 {
		t.Fatalf("After Unwrite(2), expected 2 available, got %d", fifo.Available())
	}

	out := make([]byte, 2)
	fifo.Read(out)
	if out[0] != 3 || out[1] != 4 {
		t.Errorf("Unwrite kept wrong bytes: got %v", out)
	}

	fifo.Unwrite(10)
	if !fifo.IsEmpty() {
		t.Error("Unwrite past the read position should leave the FIFO empty")
	}
}
