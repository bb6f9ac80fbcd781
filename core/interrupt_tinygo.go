//go:build tinygo

package core

import "runtime/interrupt"

// disableInterrupts clears the I bit in SREG and returns the previous SREG.
// Compare matches raised meanwhile stay pending in TIFRn.
func disableInterrupts() interrupt.State {
	return interrupt.Disable()
}

// restoreInterrupts writes back SREG; pending vectors fire right after
func restoreInterrupts(state interrupt.State) {
	interrupt.Restore(state)
}
