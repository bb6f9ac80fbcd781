package core

// TimerState is the controller's position in its configure/run cycle
type TimerState uint8

const (
	StateStopped TimerState = iota
	StateConfiguring
	StateRunning
)

func (s TimerState) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateConfiguring:
		return "configuring"
	case StateRunning:
		return "running"
	}
	return "unknown"
}

// TimerController owns one hardware counter for the life of the program.
// It plans and programs intervals and counts elapsed intervals from the
// compare-match vector for the main loop to poll.
type TimerController struct {
	counter HardwareCounter
	clockHz uint32
	unit    CounterUnit

	state      TimerState
	configured bool
	plan       TimerPlan
	mode       CountMode
	timeUnit   TimeUnit

	// Shared with the compare-match vector, which runs with interrupts
	// disabled. Main-loop code only touches these in a critical section.
	divisorReload    uint32
	divisorCountdown uint32
	elapsed          uint32
	completed        bool
}

// NewTimerController takes ownership of counter and binds it to its
// compare-match vector. A zero clockHz selects DefaultClockHz. It panics if
// another controller already owns the unit.
func NewTimerController(counter HardwareCounter, clockHz uint32) *TimerController {
	t := &TimerController{
		counter:          counter,
		clockHz:          clockOrDefault(clockHz),
		unit:             counter.Spec().Unit,
		divisorReload:    1,
		divisorCountdown: 1,
	}
	registerVector(t.unit, t)
	return t
}

// Configure plans interval on the owned counter and reprograms it. The
// counter is stopped and interrupts are disabled while registers change, so
// the vector never sees a half-written divider/threshold pair. The elapsed
// count is kept. Unsupported mode/counter pairs are a no-op with a
// diagnostic.
func (t *TimerController) Configure(mode CountMode, interval uint32, unit TimeUnit) {
	spec := t.counter.Spec()
	plan, ok := PlanInterval(t.clockHz, IntervalRequest{Interval: interval, Unit: unit, Mode: mode}, spec)
	if !ok || !t.counter.SupportsMode(mode) {
		RecordTiming(EvtUnsupported, uint8(t.unit), GetTime(), uint32(mode), interval)
		Diagnostic("Timer " + utoa(uint32(t.unit)) + ": " + mode.String() +
			" mode not supported on " + utoa(uint32(spec.Bits)) + "-bit counter")
		return
	}

	t.counter.Stop()
	state := disableInterrupts()
	t.state = StateConfiguring

	t.counter.Clear()
	t.counter.SetMode(mode)
	t.counter.SetThreshold(plan.Threshold)
	if mode != ModeExternalClock {
		t.counter.SetDivider(plan.Divider)
	}
	t.divisorReload = plan.SoftwareDivisor
	t.divisorCountdown = plan.SoftwareDivisor

	t.plan = plan
	t.mode = mode
	t.timeUnit = unit
	t.configured = true
	t.state = StateRunning
	RecordTiming(EvtConfigure, uint8(t.unit), GetTime(), uint32(plan.Divider), uint32(plan.Threshold))

	restoreInterrupts(state)
	t.counter.Start()

	t.report()
}

// Start enables the compare-match interrupt source
func (t *TimerController) Start() {
	t.counter.Start()
	if t.configured {
		t.state = StateRunning
	}
}

// Stop disables the compare-match interrupt source. The plan and the
// elapsed count are kept.
func (t *TimerController) Stop() {
	t.counter.Stop()
	t.state = StateStopped
}

// Reset zeroes the elapsed count and the completion flag
func (t *TimerController) Reset() {
	state := disableInterrupts()
	t.elapsed = 0
	t.completed = false
	RecordTiming(EvtReset, uint8(t.unit), GetTime(), 0, 0)
	restoreInterrupts(state)
}

// Elapsed returns the number of intervals completed since the last reset
func (t *TimerController) Elapsed() uint32 {
	state := disableInterrupts()
	defer restoreInterrupts(state)
	return t.elapsed
}

// Completed reports whether an interval completed since the last reset
func (t *TimerController) Completed() bool {
	state := disableInterrupts()
	defer restoreInterrupts(state)
	return t.completed
}

// TakeElapsed returns the elapsed count and resets it in one critical
// section, so no interval is lost between the read and the reset.
func (t *TimerController) TakeElapsed() uint32 {
	state := disableInterrupts()
	n := t.elapsed
	t.elapsed = 0
	t.completed = false
	restoreInterrupts(state)
	return n
}

// Plan returns the plan programmed by the last successful Configure
func (t *TimerController) Plan() TimerPlan {
	return t.plan
}

func (t *TimerController) Mode() CountMode {
	return t.mode
}

func (t *TimerController) TimeUnit() TimeUnit {
	return t.timeUnit
}

func (t *TimerController) State() TimerState {
	return t.state
}

func (t *TimerController) Unit() CounterUnit {
	return t.unit
}

// Counter returns the owned hardware counter
func (t *TimerController) Counter() HardwareCounter {
	return t.counter
}

// Close stops the counter and gives the unit's vector back
func (t *TimerController) Close() {
	t.Stop()
	releaseVector(t.unit, t)
}

// compareMatch runs in the vector. The software divisor counts down and
// one interval elapses when it reaches 1.
func (t *TimerController) compareMatch() {
	if t.divisorCountdown > 1 {
		t.divisorCountdown--
		return
	}
	t.divisorCountdown = t.divisorReload
	t.elapsed++
	t.completed = true
	RecordTiming(EvtElapsed, uint8(t.unit), GetTime(), t.elapsed, t.divisorReload)
}

func (t *TimerController) report() {
	p := t.plan
	msg := "Timer " + utoa(uint32(t.unit)) + " configured (" +
		"prescaler " + utoa(uint32(p.Divider)) +
		", OCR " + utoa(uint32(p.Threshold)) +
		", divisor " + utoa(p.SoftwareDivisor) + ")"
	if p.TruncatedCycles != 0 {
		msg += " drift " + utoa(p.TruncatedCycles) + " cycles/" + p.DriftUnit(t.mode)
	}
	Diagnostic(msg)

	switch {
	case p.Saturated && t.mode == ModeNormal:
		Diagnostic("Timer " + utoa(uint32(t.unit)) + ": " + utoa(p.Interval) + t.timeUnit.String() +
			" shorter than one counter wrap, runs one wrap per interval")
	case p.Saturated:
		Diagnostic("Timer " + utoa(uint32(t.unit)) + ": " + utoa(p.Interval) + t.timeUnit.String() +
			" beyond counter range, saturated at full width")
	}
}
