package core

// CounterUnit identifies one of the hardware timer/counter peripherals
type CounterUnit uint8

const (
	Counter0 CounterUnit = iota // 8-bit
	Counter1                    // 16-bit, the only unit with an external clock input
	Counter2                    // 8-bit, extended prescaler set
	NumCounters
)

// CountMode selects how the counter advances and when it wraps
type CountMode uint8

const (
	ModeNormal        CountMode = iota // free-run, compare match once per wrap
	ModeCTC                            // clear timer on compare match
	ModeExternalClock                  // count edges on the T1 pin, compare-reset
)

func (m CountMode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeCTC:
		return "ctc"
	case ModeExternalClock:
		return "ext"
	}
	return "unknown"
}

// ParseCountMode parses the console and config spelling of a mode
func ParseCountMode(s string) (CountMode, bool) {
	switch s {
	case "normal":
		return ModeNormal, true
	case "ctc":
		return ModeCTC, true
	case "ext":
		return ModeExternalClock, true
	}
	return 0, false
}

// CounterSpec describes the fixed capabilities of a counter unit
type CounterSpec struct {
	Unit     CounterUnit
	Bits     uint8
	Dividers []uint16 // legal prescaler values, ascending
}

// Max returns the largest value the compare register can hold
func (s CounterSpec) Max() uint32 {
	return 1<<s.Bits - 1
}

// HasDivider reports whether d is one of the unit's prescaler values
func (s CounterSpec) HasDivider(d uint16) bool {
	for _, v := range s.Dividers {
		if v == d {
			return true
		}
	}
	return false
}

var counterSpecs = [NumCounters]CounterSpec{
	{Unit: Counter0, Bits: 8, Dividers: []uint16{1, 8, 64, 256, 1024}},
	{Unit: Counter1, Bits: 16, Dividers: []uint16{1, 8, 64, 256, 1024}},
	{Unit: Counter2, Bits: 8, Dividers: []uint16{1, 8, 32, 64, 128, 256, 1024}},
}

// SpecFor returns the capabilities of a counter unit
func SpecFor(unit CounterUnit) CounterSpec {
	if unit >= NumCounters {
		return CounterSpec{Unit: unit}
	}
	return counterSpecs[unit]
}

// HardwareCounter is the register-level interface the timer controller
// drives. Writes are not atomic with respect to interrupt delivery; the
// caller brackets multi-register sequences with a critical section.
type HardwareCounter interface {
	// Spec returns the unit's width and legal dividers
	Spec() CounterSpec

	// SupportsMode reports whether the unit can count in mode m
	SupportsMode(m CountMode) bool

	// SetMode programs the waveform generation bits.
	// External clock mode also selects the T1 rising edge as clock source.
	SetMode(m CountMode)
	Mode() CountMode

	// SetDivider programs the clock-select bits. Values outside the
	// unit's legal set are ignored.
	SetDivider(d uint16)
	Divider() uint16

	// SetThreshold programs the compare register, masked to the unit width
	SetThreshold(v uint16)
	Threshold() uint16

	// Clear zeroes both control registers, which also stops the clock
	Clear()

	// Start and Stop toggle the compare-match interrupt source only.
	// Stop does not clear a pending compare-match flag.
	Start()
	Stop()
	Enabled() bool
}
