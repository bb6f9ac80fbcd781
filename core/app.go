package core

import (
	"errors"

	"tinygo.org/x/drivers"

	"avrkit/config"
)

// LEDMode is the behaviour selected by the last console command
type LEDMode uint8

const (
	LEDIdle LEDMode = iota
	LEDBlink
	LEDFollowADC
	LEDPowerFreq
	LEDFollowButton
	LEDRamp
)

func (m LEDMode) String() string {
	switch m {
	case LEDIdle:
		return "idle"
	case LEDBlink:
		return "ledblink"
	case LEDFollowADC:
		return "ledadc"
	case LEDPowerFreq:
		return "ledpowerfreq"
	case LEDFollowButton:
		return "button"
	case LEDRamp:
		return "ledramptime"
	}
	return "unknown"
}

// Console command limits
const (
	MaxPower      = 255
	MinBlinkTime  = 200  // ms
	MaxBlinkTime  = 5000 // ms
	MaxRampTime   = 5000 // ms
	MaxTimerUnits = uint32(NumCounters)

	// MaxTimerInterval bounds the timer command's interval
	MaxTimerInterval = config.MaxTickInterval
)

// App is the command-driven main loop. It owns the application timer and
// the LED, button and potentiometer, and is polled from one goroutine
// (the firmware main loop or the simulator's loop).
type App struct {
	board   *config.Board
	timer   *TimerController
	led     *LED
	button  *Button
	sensor  *ADCSensor
	console *Console
	out     DebugWriter

	sched       Scheduler
	sampleAlarm Alarm
	buttonAlarm Alarm

	mode          LEDMode
	blinkInterval uint32 // ticks
	rampTime      uint32 // ticks per full ramp cycle
	adcInterval   uint32 // last interval derived from the potentiometer
	tickMicros    uint32 // 0 when the tick counts external edges
}

// NewApp builds the application on counter and starts the tick timer.
// Peripheral drivers must be registered before it is called. Output and
// command replies go to out, or to the diagnostic writer when out is nil.
func NewApp(board *config.Board, counter HardwareCounter, out DebugWriter) (*App, error) {
	if out == nil {
		out = Diagnostic
	}
	mode, ok := ParseCountMode(board.TickMode)
	if !ok {
		return nil, errors.New("app: unknown tick mode " + board.TickMode)
	}
	unit, ok := ParseTimeUnit(board.TickUnit)
	if !ok {
		return nil, errors.New("app: unknown tick unit " + board.TickUnit)
	}

	led, err := NewLED(GPIOPin(board.LEDPin), board.LEDPWM)
	if err != nil {
		return nil, errors.New("app: LED on pin " + utoa(uint32(board.LEDPin)) + ": " + err.Error())
	}
	button, err := NewButton(GPIOPin(board.ButtonPin))
	if err != nil {
		return nil, errors.New("app: button on pin " + utoa(uint32(board.ButtonPin)) + ": " + err.Error())
	}

	a := &App{
		board:  board,
		led:    led,
		button: button,
		sensor: NewADCSensor(ADCChannel(board.ADCChannel)),
		out:    out,
	}
	a.console = NewConsole(NewCommandRegistry(), board.RxBuffer, out)
	a.registerCommands()

	a.sampleAlarm.Handler = a.sampleADC
	a.buttonAlarm.Handler = a.pollButton

	a.timer = NewTimerController(counter, board.ClockHz)
	a.setTick(mode, board.TickInterval, unit)

	a.blinkInterval = board.BlinkInterval
	return a, nil
}

// Poll runs one main-loop iteration: it drains the intervals elapsed since
// the last call, advances the LED mode and alarms by that many ticks and
// runs at most one console line.
func (a *App) Poll() {
	if n := a.timer.TakeElapsed(); n > 0 {
		a.sched.Advance(n)
		a.step(n)
	}
	a.console.Poll()
}

// Receive feeds bytes from the serial port to the console
func (a *App) Receive(data []byte) {
	a.console.Receive(data)
}

// Execute runs one console line immediately
func (a *App) Execute(line string) error {
	return a.console.Execute(line)
}

func (a *App) Mode() LEDMode {
	return a.mode
}

func (a *App) Timer() *TimerController {
	return a.timer
}

func (a *App) LED() *LED {
	return a.led
}

func (a *App) Console() *Console {
	return a.console
}

// Close releases the application timer
func (a *App) Close() {
	a.timer.Close()
}

func (a *App) step(elapsed uint32) {
	switch a.mode {
	case LEDBlink, LEDPowerFreq:
		a.led.Blink(a.blinkInterval, elapsed)
	case LEDFollowADC:
		if a.adcInterval == 0 {
			if !a.led.IsOn() {
				a.led.On()
			}
			return
		}
		a.led.Blink(a.adcInterval, elapsed)
	case LEDRamp:
		a.led.Ramp(a.rampTime, elapsed)
	}
}

func (a *App) setMode(m LEDMode) {
	a.sched.Cancel(&a.sampleAlarm)
	a.sched.Cancel(&a.buttonAlarm)
	a.led.ResetTiming()
	a.mode = m

	switch m {
	case LEDFollowADC:
		a.adcInterval = a.board.ADCMaxInterval + 1 // force a report on the first sample
		a.sampleADC(&a.sampleAlarm)
		a.sched.After(&a.sampleAlarm, a.board.ADCSampleTicks)
	case LEDFollowButton:
		if pressed, _ := a.button.Changed(); pressed {
			a.led.On()
		} else {
			a.led.Off()
		}
		a.sched.After(&a.buttonAlarm, a.board.ButtonPollTicks)
	}
	a.out("Mode: " + m.String())
}

// setTick reprograms the application timer and derives the tick length
// used to convert console times to ticks. A rejected request leaves the
// previous tick in place.
func (a *App) setTick(mode CountMode, interval uint32, unit TimeUnit) {
	a.timer.Configure(mode, interval, unit)

	p := a.timer.Plan()
	micros := uint64(p.Interval)
	switch {
	case a.timer.Mode() == ModeExternalClock:
		micros = 0
	case a.timer.TimeUnit() == Millis:
		micros *= 1000
	}
	if micros > 0xFFFFFFFF {
		micros = 0xFFFFFFFF
	}
	a.tickMicros = uint32(micros)
}

// msToTicks converts a console time to ticks, at least one
func (a *App) msToTicks(ms uint32) uint32 {
	if a.tickMicros == 0 {
		return ms
	}
	ticks := uint32(uint64(ms) * 1000 / uint64(a.tickMicros))
	if ticks == 0 {
		ticks = 1
	}
	return ticks
}

func (a *App) sampleADC(al *Alarm) uint8 {
	if a.mode != LEDFollowADC {
		return SF_DONE
	}
	if err := a.sensor.Update(drivers.Voltage); err != nil {
		a.out("ADC channel " + utoa(uint32(a.sensor.Channel)) + ": " + err.Error())
	} else {
		a.applyADC()
	}
	al.WakeTime += a.board.ADCSampleTicks
	return SF_RESCHEDULE
}

func (a *App) applyADC() {
	mv := a.sensor.Millivolts()
	interval := BlinkIntervalFor(mv, a.board.ADCMaxInterval)
	if interval == a.adcInterval {
		return
	}
	a.adcInterval = interval

	if interval == 0 {
		a.out("Blink off. LED set to fixed light.")
		return
	}
	a.out("Blink interval: " + utoa(interval) + " ticks (ADC value: " +
		utoa(uint32(a.sensor.Raw())) + ", Voltage: " + utoa(uint32(mv)) + "mV)")
}

func (a *App) pollButton(al *Alarm) uint8 {
	if a.mode != LEDFollowButton {
		return SF_DONE
	}
	if pressed, changed := a.button.Changed(); changed {
		if pressed {
			a.led.On()
			a.out("Button pressed")
		} else {
			a.led.Off()
			a.out("Button released")
		}
	}
	al.WakeTime += a.board.ButtonPollTicks
	return SF_RESCHEDULE
}

func (a *App) registerCommands() {
	r := a.console.Registry()
	r.Register("ledblink", "", a.cmdBlink)
	r.Register("ledadc", "", a.cmdADC)
	r.Register("ledpowerfreq", "P T", a.cmdPowerFreq)
	r.Register("button", "", a.cmdButton)
	r.Register("ledramptime", "T", a.cmdRamp)
	r.Register("timer", "U I [ms|us] [ctc|normal|ext] | U stop | U start", a.cmdTimer)
	r.Register("reset", "", a.cmdReset)
	r.Register("status", "", a.cmdStatus)
	r.Register("trace", "", a.cmdTrace)
	r.Register("help", "", a.cmdHelp)
}

func (a *App) cmdBlink(args []string) error {
	if len(args) != 0 {
		return ErrInvalidArgs
	}
	a.blinkInterval = a.board.BlinkInterval
	a.led.SetPower(PWMMax)
	a.setMode(LEDBlink)
	return nil
}

func (a *App) cmdADC(args []string) error {
	if len(args) != 0 {
		return ErrInvalidArgs
	}
	a.setMode(LEDFollowADC)
	return nil
}

func (a *App) cmdPowerFreq(args []string) error {
	if len(args) != 2 {
		return ErrInvalidArgs
	}
	power, ok1 := parseUint(args[0])
	period, ok2 := parseUint(args[1])
	if !ok1 || !ok2 || power > MaxPower || period < MinBlinkTime || period > MaxBlinkTime {
		return ErrInvalidArgs
	}

	a.led.SetPower(PWMValue(power))
	a.blinkInterval = a.msToTicks(period)
	a.setMode(LEDPowerFreq)
	return nil
}

func (a *App) cmdButton(args []string) error {
	if len(args) != 0 {
		return ErrInvalidArgs
	}
	a.setMode(LEDFollowButton)
	return nil
}

func (a *App) cmdRamp(args []string) error {
	if len(args) != 1 {
		return ErrInvalidArgs
	}
	cycle, ok := parseUint(args[0])
	if !ok || cycle > MaxRampTime {
		return ErrInvalidArgs
	}
	a.led.SetPower(0)
	a.rampTime = a.msToTicks(cycle)
	a.setMode(LEDRamp)
	return nil
}

func (a *App) cmdTimer(args []string) error {
	if len(args) < 2 || len(args) > 4 {
		return ErrInvalidArgs
	}
	u, ok := parseUint(args[0])
	if !ok || u >= MaxTimerUnits {
		return ErrInvalidArgs
	}
	t := ControllerFor(CounterUnit(u))
	if t == nil {
		return errors.New("counter " + utoa(u) + " not owned")
	}

	switch args[1] {
	case "stop":
		if len(args) != 2 {
			return ErrInvalidArgs
		}
		t.Stop()
		a.out("Timer " + utoa(u) + " stopped")
		return nil
	case "start":
		if len(args) != 2 {
			return ErrInvalidArgs
		}
		t.Start()
		a.out("Timer " + utoa(u) + " started")
		return nil
	}

	interval, ok := parseUint(args[1])
	if !ok || interval > MaxTimerInterval {
		return ErrInvalidArgs
	}
	unit, mode := Millis, ModeCTC
	if len(args) > 2 {
		if unit, ok = ParseTimeUnit(args[2]); !ok {
			return ErrInvalidArgs
		}
	}
	if len(args) > 3 {
		if mode, ok = ParseCountMode(args[3]); !ok {
			return ErrInvalidArgs
		}
	}

	if t == a.timer {
		a.setTick(mode, interval, unit)
	} else {
		t.Configure(mode, interval, unit)
	}
	return nil
}

func (a *App) cmdReset(args []string) error {
	if len(args) != 0 {
		return ErrInvalidArgs
	}
	a.timer.Reset()
	a.led.ResetTiming()
	a.out("Elapsed count reset")
	return nil
}

func (a *App) cmdStatus(args []string) error {
	if len(args) != 0 {
		return ErrInvalidArgs
	}
	t := a.timer
	p := t.Plan()
	a.out("Mode: " + a.mode.String())
	a.out("Timer " + utoa(uint32(t.Unit())) + " " + t.State().String() + " " + t.Mode().String() +
		" " + utoa(p.Interval) + t.TimeUnit().String() +
		" (prescaler " + utoa(uint32(p.Divider)) +
		", OCR " + utoa(uint32(p.Threshold)) +
		", divisor " + utoa(p.SoftwareDivisor) + ")")
	if p.TruncatedCycles != 0 {
		a.out("Drift: " + utoa(p.TruncatedCycles) + " cycles/" + p.DriftUnit(t.Mode()))
	}
	a.out("Elapsed: " + utoa(t.Elapsed()) + ", scheduler ticks: " + utoa(a.sched.Now()))
	return nil
}

func (a *App) cmdTrace(args []string) error {
	if len(args) != 0 {
		return ErrInvalidArgs
	}
	DumpTimingRing()
	return nil
}

func (a *App) cmdHelp(args []string) error {
	help := a.console.Registry().Help()
	start := 0
	for i := 0; i < len(help); i++ {
		if help[i] == '\n' {
			a.out(help[start:i])
			start = i + 1
		}
	}
	return nil
}
