//go:build avr

package main

import (
	"runtime/volatile"

	"device/avr"

	"avrkit/core"
)

// timerRegisters implements core.RegisterFile over the ATmega328p timer
// block. Counter1's OCR1A is written high byte first and read low byte
// first, so the TEMP latch pairs the two halves.
type timerRegisters struct{}

var byteRegisters = [core.NumCounters][5]*volatile.Register8{
	core.Counter0: {avr.TCCR0A, avr.TCCR0B, avr.OCR0A, avr.TIMSK0, avr.TIFR0},
	core.Counter1: {avr.TCCR1A, avr.TCCR1B, nil, avr.TIMSK1, avr.TIFR1},
	core.Counter2: {avr.TCCR2A, avr.TCCR2B, avr.OCR2A, avr.TIMSK2, avr.TIFR2},
}

func (timerRegisters) Read(unit core.CounterUnit, reg core.Register) uint16 {
	if unit >= core.NumCounters || int(reg) >= len(byteRegisters[unit]) {
		return 0
	}
	if unit == core.Counter1 && reg == core.RegOCRA {
		lo := uint16(avr.OCR1AL.Get())
		hi := uint16(avr.OCR1AH.Get())
		return hi<<8 | lo
	}
	if r := byteRegisters[unit][reg]; r != nil {
		return uint16(r.Get())
	}
	return 0
}

func (timerRegisters) Write(unit core.CounterUnit, reg core.Register, value uint16) {
	if unit >= core.NumCounters || int(reg) >= len(byteRegisters[unit]) {
		return
	}
	if unit == core.Counter1 && reg == core.RegOCRA {
		avr.OCR1AH.Set(uint8(value >> 8))
		avr.OCR1AL.Set(uint8(value))
		return
	}
	if r := byteRegisters[unit][reg]; r != nil {
		r.Set(uint8(value))
	}
}
