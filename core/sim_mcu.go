//go:build !tinygo

package core

// SimulatedMCU is an in-memory model of the ATmega328p timer block for
// host builds. It implements RegisterFile, counts prescaled clock ticks and
// raises compare matches through the same vector table the hardware uses.
type SimulatedMCU struct {
	regs     [NumCounters][numRegisters]uint16
	phase    [NumCounters]uint64 // counter ticks since the last compare match
	prescale [NumCounters]uint64 // CPU cycles not yet forming a counter tick

	// OnWrite runs after every register write. Tests raise compare matches
	// from it to preempt a register sequence between any two writes.
	OnWrite func(unit CounterUnit, reg Register)

	// OnVector runs right before a compare-match vector is dispatched
	OnVector func(unit CounterUnit)

	delivering bool
}

// vectorPriority lists units in AVR vector order (lowest address first)
var vectorPriority = [NumCounters]CounterUnit{Counter2, Counter1, Counter0}

var activeMCU *SimulatedMCU

// NewSimulatedMCU creates a simulated timer block and makes it the one the
// host interrupt model delivers from. The global interrupt flag starts set.
func NewSimulatedMCU() *SimulatedMCU {
	m := &SimulatedMCU{}
	activeMCU = m
	interruptsEnabled = true
	return m
}

func (m *SimulatedMCU) Read(unit CounterUnit, reg Register) uint16 {
	if unit >= NumCounters || reg >= numRegisters {
		return 0
	}
	return m.regs[unit][reg]
}

func (m *SimulatedMCU) Write(unit CounterUnit, reg Register, value uint16) {
	if unit >= NumCounters || reg >= numRegisters {
		return
	}
	if reg != RegOCRA || SpecFor(unit).Bits == 8 {
		value &= 0xFF
	}

	switch reg {
	case RegTIFR:
		// write one to clear
		m.regs[unit][reg] &^= value
	case RegTCCRB:
		m.regs[unit][reg] = value
		if value&csMask == 0 {
			m.prescale[unit] = 0
		}
	default:
		m.regs[unit][reg] = value
	}

	if m.OnWrite != nil {
		m.OnWrite(unit, reg)
	}
	if reg == RegTIMSK {
		m.deliverPending()
	}
}

// RaiseCompareMatch sets the unit's compare-match flag the way the
// hardware does and dispatches the vector if the interrupt source and the
// global flag allow it. Matches raised while the flag is already set merge.
func (m *SimulatedMCU) RaiseCompareMatch(unit CounterUnit) {
	if unit >= NumCounters {
		return
	}
	m.regs[unit][RegTIFR] |= ocfA
	m.deliverPending()
}

// Pending reports whether the unit's compare-match flag is set
func (m *SimulatedMCU) Pending(unit CounterUnit) bool {
	return m.Read(unit, RegTIFR)&ocfA != 0
}

// Advance runs the CPU clock for the given number of cycles, counting
// every unit that has an internal clock source selected.
func (m *SimulatedMCU) Advance(cycles uint64) {
	for unit := CounterUnit(0); unit < NumCounters; unit++ {
		c := RegisterCounter{spec: SpecFor(unit), regs: m}
		div := uint64(c.Divider())
		if div == 0 {
			continue
		}
		total := m.prescale[unit] + cycles
		m.prescale[unit] = total % div
		m.count(&c, total/div)
	}
}

// Pulse feeds edges to a unit's external clock pin
func (m *SimulatedMCU) Pulse(unit CounterUnit, edges uint64) {
	c := RegisterCounter{spec: SpecFor(unit), regs: m}
	if c.Mode() != ModeExternalClock {
		return
	}
	m.count(&c, edges)
}

func (m *SimulatedMCU) count(c *RegisterCounter, ticks uint64) {
	unit := c.spec.Unit
	period := uint64(c.Threshold()) + 1
	if c.Mode() == ModeNormal {
		period = uint64(c.spec.Max()) + 1
	}

	total := m.phase[unit] + ticks
	m.phase[unit] = total % period
	for n := total / period; n > 0; n-- {
		m.RaiseCompareMatch(unit)
	}
}

func (m *SimulatedMCU) deliverPending() {
	if m.delivering || !interruptsEnabled {
		return
	}
	m.delivering = true
	defer func() { m.delivering = false }()

	for {
		unit, ok := m.nextVector()
		if !ok {
			return
		}
		m.regs[unit][RegTIFR] &^= ocfA

		// The CPU clears the I bit for the duration of the handler
		interruptsEnabled = false
		if m.OnVector != nil {
			m.OnVector(unit)
		}
		HandleCompareMatch(unit)
		interruptsEnabled = true
	}
}

func (m *SimulatedMCU) nextVector() (CounterUnit, bool) {
	for _, unit := range vectorPriority {
		if m.regs[unit][RegTIFR]&ocfA != 0 && m.regs[unit][RegTIMSK]&ocieA != 0 {
			return unit, true
		}
	}
	return 0, false
}
