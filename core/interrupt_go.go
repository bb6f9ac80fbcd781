//go:build !tinygo

package core

// State is the saved global interrupt flag on regular Go
type State uintptr

// interruptsEnabled models the CPU's global interrupt flag. Simulated
// compare matches are only delivered while it is set.
var interruptsEnabled = true

// disableInterrupts clears the simulated global flag and returns the previous state
func disableInterrupts() State {
	var prev State
	if interruptsEnabled {
		prev = 1
	}
	interruptsEnabled = false
	return prev
}

// restoreInterrupts restores the flag and delivers whatever became pending
// while it was clear
func restoreInterrupts(state State) {
	interruptsEnabled = state != 0
	if interruptsEnabled && activeMCU != nil {
		activeMCU.deliverPending()
	}
}
