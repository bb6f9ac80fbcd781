package sim

import (
	"strings"
	"testing"
	"time"

	"avrkit/config"
	"avrkit/core"
)

type capture struct {
	lines []string
}

func (c *capture) write(s string) {
	c.lines = append(c.lines, s)
}

func (c *capture) contains(sub string) bool {
	for _, l := range c.lines {
		if strings.Contains(l, sub) {
			return true
		}
	}
	return false
}

func newRunner(t *testing.T) (*Runner, *capture) {
	t.Helper()
	out := &capture{}
	r, err := NewRunner(config.Default(), out.write)
	if err != nil {
		t.Fatalf("NewRunner failed: %v", err)
	}
	t.Cleanup(r.Close)
	return r, out
}

func TestRunnerConfiguresTick(t *testing.T) {
	r, out := newRunner(t)

	if !out.contains("Timer 2 configured (prescaler 128, OCR 124, divisor 1)") {
		t.Errorf("Missing configure report, got %v", out.lines)
	}

	r.Step(100 * time.Millisecond)
	// Each poll drains the ticks it saw, so the count is back at zero
	if n := r.App.Timer().Elapsed(); n != 0 {
		t.Errorf("Expected drained elapsed count, got %d", n)
	}
}

func TestRunnerBlink(t *testing.T) {
	r, out := newRunner(t)
	led := core.GPIOPin(config.Default().LEDPin)

	r.Send("ledblink")
	r.Step(10 * time.Millisecond)
	if r.App.Mode() != core.LEDBlink {
		t.Fatalf("Expected blink mode, got %v (output %v)", r.App.Mode(), out.lines)
	}

	var duties []core.PWMValue
	r.Board.OnOutput = func(pin core.GPIOPin, level bool, duty core.PWMValue) {
		if pin == led {
			duties = append(duties, duty)
		}
	}

	r.Step(time.Second)
	if len(duties) != 2 || duties[0] != 0 || duties[1] != core.PWMMax {
		t.Errorf("Expected off then on within one second, got %v", duties)
	}
}

func TestRunnerADCBlink(t *testing.T) {
	r, out := newRunner(t)
	board := config.Default()

	r.Board.SetMillivolts(core.ADCChannel(board.ADCChannel), 2500)
	r.Send("ledadc")
	r.Step(10 * time.Millisecond)

	if !out.contains("Blink interval: 499 ticks") {
		t.Errorf("Missing blink interval report, got %v", out.lines)
	}

	r.Board.SetMillivolts(core.ADCChannel(board.ADCChannel), 0)
	r.Step(100 * time.Millisecond)

	if !out.contains("Blink off. LED set to fixed light.") {
		t.Errorf("Missing fixed light report, got %v", out.lines)
	}
	if d := r.Board.Duty(core.GPIOPin(board.LEDPin)); d != core.PWMMax {
		t.Errorf("Expected steady LED at full power, got duty %d", d)
	}
}

func TestRunnerButton(t *testing.T) {
	r, out := newRunner(t)
	board := config.Default()

	r.Send("button")
	r.Step(10 * time.Millisecond)

	r.Board.Press(core.GPIOPin(board.ButtonPin), true)
	r.Step(50 * time.Millisecond)
	if !out.contains("Button pressed") {
		t.Errorf("Press not reported, got %v", out.lines)
	}
	if d := r.Board.Duty(core.GPIOPin(board.LEDPin)); d == 0 {
		t.Error("LED should follow the button")
	}

	r.Board.Press(core.GPIOPin(board.ButtonPin), false)
	r.Step(50 * time.Millisecond)
	if !out.contains("Button released") {
		t.Errorf("Release not reported, got %v", out.lines)
	}
}

func TestRunnerInvalidCommand(t *testing.T) {
	r, out := newRunner(t)

	r.Send("ledpowerfreq 300 1000")
	r.Step(5 * time.Millisecond)

	if !out.contains("invalid command") {
		t.Errorf("Expected invalid command, got %v", out.lines)
	}
	if r.App.Mode() != core.LEDIdle {
		t.Errorf("Invalid command changed mode to %v", r.App.Mode())
	}
}

func TestRunnerOverflow(t *testing.T) {
	r, out := newRunner(t)

	r.Send(strings.Repeat("x", 100))
	r.Send("ledblink")
	r.Step(5 * time.Millisecond)

	if r.App.Mode() != core.LEDBlink {
		t.Errorf("Line after an overflow was lost, mode %v", r.App.Mode())
	}
	r.Step(5 * time.Millisecond)
	if !out.contains("Buffer overflowed") {
		t.Errorf("Overflow not reported, got %v", out.lines)
	}
}
