package core

// Register names one of the per-unit timer registers
type Register uint8

const (
	RegTCCRA Register = iota // waveform generation (low bits)
	RegTCCRB                 // clock select, waveform generation (high bits)
	RegOCRA                  // output compare A, 16 bits wide on Counter1
	RegTIMSK                 // interrupt mask
	RegTIFR                  // interrupt flags
	numRegisters
)

// RegisterFile gives byte- or word-wide access to the timer registers.
// Targets implement it over device registers, the host over memory.
type RegisterFile interface {
	Read(unit CounterUnit, reg Register) uint16
	Write(unit CounterUnit, reg Register, value uint16)
}

// Register bits shared by all three units (ATmega328p layout)
const (
	csMask   = 0x07   // CSn2:0 in TCCRnB
	wgmCTC8  = 1 << 1 // WGMn1 in TCCR0A/TCCR2A
	wgmCTC16 = 1 << 3 // WGM12 in TCCR1B
	ocieA    = 1 << 1 // OCIEnA in TIMSKn
	ocfA     = 1 << 1 // OCFnA in TIFRn

	csExtFalling = 0x06
	csExtRising  = 0x07
)

type clockSelect struct {
	divider uint16
	bits    uint8
}

var clockSelects = [NumCounters][]clockSelect{
	{{1, 1}, {8, 2}, {64, 3}, {256, 4}, {1024, 5}},
	{{1, 1}, {8, 2}, {64, 3}, {256, 4}, {1024, 5}},
	{{1, 1}, {8, 2}, {32, 3}, {64, 4}, {128, 5}, {256, 6}, {1024, 7}},
}

// RegisterCounter implements HardwareCounter over a RegisterFile
type RegisterCounter struct {
	spec CounterSpec
	regs RegisterFile
}

// NewRegisterCounter binds a counter unit to its registers
func NewRegisterCounter(unit CounterUnit, regs RegisterFile) *RegisterCounter {
	return &RegisterCounter{
		spec: SpecFor(unit),
		regs: regs,
	}
}

func (c *RegisterCounter) Spec() CounterSpec {
	return c.spec
}

func (c *RegisterCounter) SupportsMode(m CountMode) bool {
	switch m {
	case ModeNormal, ModeCTC:
		return true
	case ModeExternalClock:
		return c.spec.Bits == 16
	}
	return false
}

func (c *RegisterCounter) SetMode(m CountMode) {
	if !c.SupportsMode(m) {
		return
	}
	unit := c.spec.Unit
	ctc := m == ModeCTC || m == ModeExternalClock

	if c.spec.Bits == 16 {
		b := c.regs.Read(unit, RegTCCRB) &^ wgmCTC16
		if ctc {
			b |= wgmCTC16
		}
		if m == ModeExternalClock {
			b = b&^csMask | csExtRising
		}
		c.regs.Write(unit, RegTCCRB, b)
		return
	}

	a := c.regs.Read(unit, RegTCCRA) &^ wgmCTC8
	if ctc {
		a |= wgmCTC8
	}
	c.regs.Write(unit, RegTCCRA, a)
}

func (c *RegisterCounter) Mode() CountMode {
	unit := c.spec.Unit
	if c.spec.Bits == 16 {
		b := c.regs.Read(unit, RegTCCRB)
		cs := b & csMask
		if cs == csExtRising || cs == csExtFalling {
			return ModeExternalClock
		}
		if b&wgmCTC16 != 0 {
			return ModeCTC
		}
		return ModeNormal
	}
	if c.regs.Read(unit, RegTCCRA)&wgmCTC8 != 0 {
		return ModeCTC
	}
	return ModeNormal
}

func (c *RegisterCounter) SetDivider(d uint16) {
	bits, ok := c.clockBits(d)
	if !ok {
		return
	}
	unit := c.spec.Unit
	b := c.regs.Read(unit, RegTCCRB)&^csMask | uint16(bits)
	c.regs.Write(unit, RegTCCRB, b)
}

// Divider decodes the clock-select bits. It returns 0 when the clock is
// stopped or sourced from the external pin.
func (c *RegisterCounter) Divider() uint16 {
	cs := uint8(c.regs.Read(c.spec.Unit, RegTCCRB) & csMask)
	for _, s := range clockSelects[c.spec.Unit] {
		if s.bits == cs {
			return s.divider
		}
	}
	return 0
}

func (c *RegisterCounter) SetThreshold(v uint16) {
	c.regs.Write(c.spec.Unit, RegOCRA, uint16(uint32(v)&c.spec.Max()))
}

func (c *RegisterCounter) Threshold() uint16 {
	return c.regs.Read(c.spec.Unit, RegOCRA)
}

func (c *RegisterCounter) Clear() {
	c.regs.Write(c.spec.Unit, RegTCCRA, 0)
	c.regs.Write(c.spec.Unit, RegTCCRB, 0)
}

func (c *RegisterCounter) Start() {
	unit := c.spec.Unit
	c.regs.Write(unit, RegTIMSK, c.regs.Read(unit, RegTIMSK)|ocieA)
}

func (c *RegisterCounter) Stop() {
	unit := c.spec.Unit
	c.regs.Write(unit, RegTIMSK, c.regs.Read(unit, RegTIMSK)&^ocieA)
}

func (c *RegisterCounter) Enabled() bool {
	return c.regs.Read(c.spec.Unit, RegTIMSK)&ocieA != 0
}

func (c *RegisterCounter) clockBits(d uint16) (uint8, bool) {
	if c.spec.Unit >= NumCounters {
		return 0, false
	}
	for _, s := range clockSelects[c.spec.Unit] {
		if s.divider == d {
			return s.bits, true
		}
	}
	return 0, false
}
