package core

import "testing"

func TestRegisterCounterRoundTrip(t *testing.T) {
	mcu := NewSimulatedMCU()

	for unit := CounterUnit(0); unit < NumCounters; unit++ {
		c := NewRegisterCounter(unit, mcu)
		spec := c.Spec()

		for _, d := range spec.Dividers {
			c.SetDivider(d)
			if got := c.Divider(); got != d {
				t.Errorf("unit %d: divider %d read back as %d", unit, d, got)
			}
		}

		for _, m := range []CountMode{ModeNormal, ModeCTC} {
			c.SetMode(m)
			if got := c.Mode(); got != m {
				t.Errorf("unit %d: mode %v read back as %v", unit, m, got)
			}
		}

		c.SetThreshold(0xABCD)
		want := uint16(0xABCD & spec.Max())
		if got := c.Threshold(); got != want {
			t.Errorf("unit %d: threshold read back as %#x, want %#x", unit, got, want)
		}
	}
}

func TestRegisterCounterIllegalDividerIgnored(t *testing.T) {
	mcu := NewSimulatedMCU()
	c := NewRegisterCounter(Counter0, mcu)

	c.SetDivider(64)
	c.SetDivider(32) // only Counter2 has /32
	if got := c.Divider(); got != 64 {
		t.Errorf("illegal divider changed the clock select: %d", got)
	}
}

func TestRegisterCounterExternalClock(t *testing.T) {
	mcu := NewSimulatedMCU()

	c0 := NewRegisterCounter(Counter0, mcu)
	if c0.SupportsMode(ModeExternalClock) {
		t.Error("8-bit counter claims external clock support")
	}
	c0.SetMode(ModeCTC)
	c0.SetMode(ModeExternalClock)
	if c0.Mode() != ModeCTC {
		t.Error("unsupported mode was programmed")
	}

	c1 := NewRegisterCounter(Counter1, mcu)
	c1.SetMode(ModeExternalClock)
	if c1.Mode() != ModeExternalClock {
		t.Errorf("mode read back as %v", c1.Mode())
	}
	if c1.Divider() != 0 {
		t.Errorf("external clock decoded as divider %d", c1.Divider())
	}
	if mcu.Read(Counter1, RegTCCRB)&wgmCTC16 == 0 {
		t.Error("external clock mode should reset on compare match")
	}
}

func TestRegisterCounterStartStop(t *testing.T) {
	mcu := NewSimulatedMCU()
	c := NewRegisterCounter(Counter2, mcu)

	c.Start()
	if !c.Enabled() {
		t.Error("Start did not enable the compare interrupt")
	}
	c.Stop()
	if c.Enabled() {
		t.Error("Stop did not disable the compare interrupt")
	}

	c.SetDivider(8)
	c.SetMode(ModeCTC)
	c.Clear()
	if c.Divider() != 0 || c.Mode() != ModeNormal {
		t.Error("Clear left the clock running")
	}
}

func TestSimulatedMCUCountsCompareMatches(t *testing.T) {
	mcu := NewSimulatedMCU()
	c := NewRegisterCounter(Counter0, mcu)
	c.SetMode(ModeCTC)
	c.SetThreshold(249)
	c.SetDivider(64)

	// Interrupt source disabled: the flag latches but nothing is dispatched
	mcu.Advance(16000)
	if !mcu.Pending(Counter0) {
		t.Fatal("compare match flag not set after 1 ms")
	}

	// Write one to clear
	mcu.Write(Counter0, RegTIFR, ocfA)
	if mcu.Pending(Counter0) {
		t.Error("TIFR write did not clear the flag")
	}

	// Normal mode wraps at the full width
	c.SetMode(ModeNormal)
	mcu.Advance(64 * 255)
	if mcu.Pending(Counter0) {
		t.Error("normal mode matched before the wrap")
	}
	mcu.Advance(64)
	if !mcu.Pending(Counter0) {
		t.Error("normal mode did not match at the wrap")
	}
}
