//go:build avr

package main

import (
	"runtime/interrupt"

	"device/avr"

	"avrkit/core"
)

// The compare-match vectors are bound at compile time. Each forwards to
// whichever controller currently owns its unit.
func initVectors() {
	interrupt.New(avr.IRQ_TIMER0_COMPA, func(interrupt.Interrupt) {
		core.HandleCompareMatch(core.Counter0)
	})
	interrupt.New(avr.IRQ_TIMER1_COMPA, func(interrupt.Interrupt) {
		core.HandleCompareMatch(core.Counter1)
	})
	interrupt.New(avr.IRQ_TIMER2_COMPA, func(interrupt.Interrupt) {
		core.HandleCompareMatch(core.Counter2)
	})
}
