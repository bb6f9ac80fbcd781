package core

// DefaultClockHz is the ATmega328p crystal frequency on Uno-class boards
const DefaultClockHz = 16000000

var (
	systemTicks uint32 // compare matches delivered, all units
	bootTicks   uint32
)

// GetTime returns the number of compare-match events seen since boot.
// It stamps diagnostics; it is not a wall clock.
func GetTime() uint32 {
	return getSystemTicks()
}

// SetTime sets the event count (for testing/hardware integration)
func SetTime(ticks uint32) {
	setSystemTicks(ticks)
}

// CyclesFromUS converts microseconds to CPU cycles at clockHz
func CyclesFromUS(us uint32, clockHz uint32) uint64 {
	return uint64(us) * uint64(clockOrDefault(clockHz)) / 1000000
}

// USFromCycles converts CPU cycles at clockHz to microseconds
func USFromCycles(cycles uint64, clockHz uint32) uint64 {
	return cycles * 1000000 / uint64(clockOrDefault(clockHz))
}

// TimerInit records the boot stamp
func TimerInit() {
	bootTicks = GetTime()
}

// TicksSinceBoot returns the events delivered since TimerInit
func TicksSinceBoot() uint32 {
	return GetTime() - bootTicks
}
