//go:build !tinygo

package core

// getSystemTicks returns the current event count (regular Go implementation)
func getSystemTicks() uint32 {
	return systemTicks
}

// setSystemTicks sets the event count (regular Go implementation)
func setSystemTicks(ticks uint32) {
	systemTicks = ticks
}

// countSystemTick is called from the compare-match vector
func countSystemTick() {
	systemTicks++
}
