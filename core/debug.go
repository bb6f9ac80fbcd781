package core

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

// TimingEvent captures a timer event for post-mortem analysis
type TimingEvent struct {
	EventType uint8  // Event type code
	Unit      uint8  // Counter unit
	Clock     uint32 // Compare matches since boot
	Value1    uint32 // Context-dependent value
	Value2    uint32 // Context-dependent value
}

// Event type codes
const (
	EvtConfigure   = 1 // Counter reprogrammed (divider, threshold)
	EvtElapsed     = 2 // Interval elapsed (elapsed count, divisor)
	EvtReset       = 3 // Elapsed count reset
	EvtUnsupported = 4 // Configure rejected (mode, interval)
)

const (
	TimingRingSize = 16 // Keep the last 16 events
)

var (
	// debugPrintln is the global output function (set by platform code)
	debugPrintln DebugWriter = func(s string) {} // No-op by default

	// debugEnabled gates DebugPrintln; diagnostics are always written
	debugEnabled bool = false

	timingRing     [TimingRingSize]TimingEvent
	timingRingHead uint8
	timingEnabled  bool = true
)

// SetDebugWriter sets the platform-specific output function.
// Firmware points it at the UART, host tools at stdout.
func SetDebugWriter(writer DebugWriter) {
	debugPrintln = writer
}

// SetDebugEnabled enables or disables debug output
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// IsDebugEnabled returns whether debug output is enabled
func IsDebugEnabled() bool {
	return debugEnabled
}

// DebugPrintln writes a debug message if debug output is enabled
func DebugPrintln(msg string) {
	if debugEnabled && debugPrintln != nil {
		debugPrintln(msg)
	}
}

// Diagnostic writes a message unconditionally. Fire-and-forget: there is
// no acknowledgment and nothing to return from interrupt-driven code.
func Diagnostic(msg string) {
	if debugPrintln != nil {
		debugPrintln(msg)
	}
}

// RecordTiming captures a timing event in the ring buffer. It is called
// from the compare-match vector as well as the main loop, so the head
// update runs with interrupts disabled.
func RecordTiming(eventType, unit uint8, clock, value1, value2 uint32) {
	if !timingEnabled {
		return
	}
	state := disableInterrupts()
	defer restoreInterrupts(state)

	idx := timingRingHead
	timingRing[idx] = TimingEvent{
		EventType: eventType,
		Unit:      unit,
		Clock:     clock,
		Value1:    value1,
		Value2:    value2,
	}
	timingRingHead = (idx + 1) % TimingRingSize
}

// TimingEvents returns the recorded events, oldest first
func TimingEvents() []TimingEvent {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	events := make([]TimingEvent, 0, TimingRingSize)
	start := timingRingHead
	for i := uint8(0); i < TimingRingSize; i++ {
		evt := timingRing[(start+i)%TimingRingSize]
		if evt.EventType == 0 {
			continue // Empty slot
		}
		events = append(events, evt)
	}
	return events
}

// DumpTimingRing writes the ring buffer through the debug writer
func DumpTimingRing() {
	if debugPrintln == nil {
		return
	}

	debugPrintln("[TIMING] === Timing Ring Dump ===")
	debugPrintln("[TIMING] Compare matches: " + utoa(TicksSinceBoot()))

	for _, evt := range TimingEvents() {
		var name string
		switch evt.EventType {
		case EvtConfigure:
			name = "CONFIGURE"
		case EvtElapsed:
			name = "ELAPSED"
		case EvtReset:
			name = "RESET"
		case EvtUnsupported:
			name = "UNSUPPORTED!"
		default:
			name = "UNKNOWN"
		}

		debugPrintln("[TIMING] " + name +
			" unit=" + itoa(int(evt.Unit)) +
			" clock=" + utoa(evt.Clock) +
			" v1=" + utoa(evt.Value1) +
			" v2=" + utoa(evt.Value2))
	}
	debugPrintln("[TIMING] === End Dump ===")
}

// ClearTimingRing clears the timing buffer
func ClearTimingRing() {
	state := disableInterrupts()
	for i := range timingRing {
		timingRing[i] = TimingEvent{}
	}
	timingRingHead = 0
	restoreInterrupts(state)
}
