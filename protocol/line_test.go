package protocol

import "testing"

func TestLineReaderSplitsLines(t *testing.T) {
	r := NewLineReader(LineMax)
	r.Write([]byte("ledblink\r\nledramptime 1000\npartial"))

	want := []string{"ledblink", "ledramptime 1000"}
	for _, w := range want {
		line, ok, err := r.ReadLine()
		if err != nil || !ok {
			t.Fatalf("ReadLine: ok=%v err=%v, want %q", ok, err, w)
		}
		if line != w {
			t.Errorf("Expected %q, got %q", w, line)
		}
	}

	if _, ok, _ := r.ReadLine(); ok {
		t.Error("Partial line should not be returned")
	}
	if r.Pending() != len("partial") {
		t.Errorf("Expected %d pending bytes, got %d", len("partial"), r.Pending())
	}

	r.Write([]byte(" line\n"))
	line, ok, _ := r.ReadLine()
	if !ok || line != "partial line" {
		t.Errorf("Expected completed line, got %q (ok=%v)", line, ok)
	}
}

func TestLineReaderOverflow(t *testing.T) {
	r := NewLineReader(16)
	r.Write([]byte("button\n"))

	long := make([]byte, 40)
	for i := range long {
		long[i] = 'a'
	}
	r.Write(long)
	r.Write([]byte("\nreset\n"))

	line, ok, err := r.ReadLine()
	if !ok || err != nil || line != "button" {
		t.Fatalf("Complete line before overflow lost: %q ok=%v err=%v", line, ok, err)
	}

	line, ok, err = r.ReadLine()
	if !ok || line != "reset" {
		t.Fatalf("Expected line after overflow, got %q ok=%v err=%v", line, ok, err)
	}

	_, ok, err = r.ReadLine()
	if ok || err != ErrOverflow {
		t.Errorf("Expected ErrOverflow, got ok=%v err=%v", ok, err)
	}

	// Reported once
	if _, _, err = r.ReadLine(); err != nil {
		t.Errorf("Overflow reported twice: %v", err)
	}
}

func TestLineReaderOverflowEndingAtTerminator(t *testing.T) {
	r := NewLineReader(8)
	r.Write([]byte("1234567\n"))

	_, ok, err := r.ReadLine()
	if ok || err != ErrOverflow {
		t.Errorf("Expected ErrOverflow, got ok=%v err=%v", ok, err)
	}
	if r.Pending() != 0 {
		t.Errorf("Overflowed line should be dropped, %d bytes pending", r.Pending())
	}
}

func TestValidBaud(t *testing.T) {
	for _, rate := range []uint32{9600, 19200, 38400, 57600, 115200} {
		if !ValidBaud(rate) {
			t.Errorf("ValidBaud(%d) = false", rate)
		}
	}
	for _, rate := range []uint32{0, 300, 250000} {
		if ValidBaud(rate) {
			t.Errorf("ValidBaud(%d) = true", rate)
		}
	}
}
