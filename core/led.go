package core

import "errors"

var ErrNoPWMOutput = errors.New("pin has no PWM output")

// LED drives an indicator on a digital pin, optionally through the pin's
// PWM compare output for brightness control. Timing methods take the
// number of timer intervals elapsed since the previous call.
type LED struct {
	pin GPIOPin
	pwm bool

	on     bool
	duty   PWMValue
	power  PWMValue // brightness restored when a PWM blink turns back on
	ticks  uint32
	rampUp bool
}

// NewLED configures pin as an output. With pwm set, the pin must have a
// compare output; it starts at full brightness.
func NewLED(pin GPIOPin, pwm bool) (*LED, error) {
	if err := MustGPIO().ConfigureOutput(pin); err != nil {
		return nil, err
	}
	l := &LED{pin: pin, power: PWMMax, rampUp: true}
	if !pwm {
		return l, nil
	}

	if !ValidPWMPin(pin) {
		return nil, ErrNoPWMOutput
	}
	if err := MustPWM().ConfigurePWM(pin); err != nil {
		return nil, err
	}
	l.pwm = true
	l.setDuty(PWMMax)
	return l, nil
}

// On lights the LED (at the remembered power when PWM is used)
func (l *LED) On() {
	if l.pwm {
		l.setDuty(l.power)
		return
	}
	l.setLevel(true)
}

// Off turns the LED off
func (l *LED) Off() {
	if l.pwm {
		l.setDuty(0)
		return
	}
	l.setLevel(false)
}

// Toggle flips the LED between off and on
func (l *LED) Toggle() {
	if l.IsOn() {
		l.Off()
	} else {
		l.On()
	}
}

// IsOn reports whether the LED is lit
func (l *LED) IsOn() bool {
	if l.pwm {
		return l.duty != 0
	}
	return l.on
}

// SetPower sets the brightness. A non-zero value is remembered for On and Blink.
func (l *LED) SetPower(duty PWMValue) {
	if duty != 0 {
		l.power = duty
	}
	if l.pwm {
		l.setDuty(duty)
		return
	}
	l.setLevel(duty != 0)
}

// Power returns the remembered brightness
func (l *LED) Power() PWMValue {
	return l.power
}

// Duty returns the current PWM duty cycle
func (l *LED) Duty() PWMValue {
	return l.duty
}

// Blink toggles the LED once interval timer intervals have accumulated.
// It returns true when it toggled.
func (l *LED) Blink(interval uint32, elapsed uint32) bool {
	l.ticks += elapsed
	if l.ticks < interval {
		return false
	}
	l.Toggle()
	l.ticks = 0
	return true
}

// Ramp sweeps the duty cycle 0 to 255 and back once per cycleTime
// intervals, one step every cycleTime/510 intervals.
func (l *LED) Ramp(cycleTime uint32, elapsed uint32) {
	if elapsed == 0 {
		return
	}
	l.ticks += elapsed
	if l.ticks < cycleTime/(PWMMax*2) {
		return
	}
	l.ticks = 0

	if l.rampUp {
		if l.duty < PWMMax {
			l.setDuty(l.duty + 1)
		}
		l.rampUp = l.duty < PWMMax
		return
	}
	if l.duty > 0 {
		l.setDuty(l.duty - 1)
	}
	l.rampUp = l.duty == 0
}

// BlinkIntervalFor maps a voltage to a blink interval: full scale gives
// maxInterval, 0 V gives 0 (steady on).
func BlinkIntervalFor(mv uint16, maxInterval uint32) uint32 {
	if maxInterval == 0 {
		return 0
	}
	step := ADCReferenceMillivolts / maxInterval
	if step == 0 {
		step = 1
	}
	return uint32(mv) / step
}

// ResetTiming drops intervals accumulated by Blink and Ramp
func (l *LED) ResetTiming() {
	l.ticks = 0
	l.rampUp = true
}

func (l *LED) setDuty(duty PWMValue) {
	l.duty = duty
	if err := MustPWM().SetDutyCycle(l.pin, duty); err != nil {
		DebugPrintln("LED: duty cycle not applied: " + err.Error())
	}
}

func (l *LED) setLevel(on bool) {
	l.on = on
	if err := MustGPIO().SetPin(l.pin, on); err != nil {
		DebugPrintln("LED: pin not driven: " + err.Error())
	}
}
