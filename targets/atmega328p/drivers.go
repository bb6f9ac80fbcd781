//go:build avr

package main

import (
	"errors"
	"machine"

	"avrkit/core"
)

var errNoPin = errors.New("no such pin")

// Arduino Uno digital header
var digitalPins = [...]machine.Pin{
	machine.D0, machine.D1, machine.D2, machine.D3, machine.D4, machine.D5, machine.D6,
	machine.D7, machine.D8, machine.D9, machine.D10, machine.D11, machine.D12, machine.D13,
}

var analogPins = [...]machine.Pin{
	machine.ADC0, machine.ADC1, machine.ADC2, machine.ADC3, machine.ADC4, machine.ADC5,
}

func digitalPin(pin core.GPIOPin) (machine.Pin, error) {
	if int(pin) >= len(digitalPins) {
		return 0, errNoPin
	}
	return digitalPins[pin], nil
}

// avrGPIODriver implements core.GPIODriver with machine.Pin
type avrGPIODriver struct{}

func (avrGPIODriver) ConfigureOutput(pin core.GPIOPin) error {
	p, err := digitalPin(pin)
	if err != nil {
		return err
	}
	p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	return nil
}

func (avrGPIODriver) ConfigureInputPullUp(pin core.GPIOPin) error {
	p, err := digitalPin(pin)
	if err != nil {
		return err
	}
	p.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	return nil
}

func (avrGPIODriver) SetPin(pin core.GPIOPin, value bool) error {
	p, err := digitalPin(pin)
	if err != nil {
		return err
	}
	p.Set(value)
	return nil
}

func (avrGPIODriver) GetPin(pin core.GPIOPin) (bool, error) {
	p, err := digitalPin(pin)
	if err != nil {
		return false, err
	}
	return p.Get(), nil
}

// pwmPeripheral abstracts over machine's per-timer PWM values
type pwmPeripheral interface {
	Configure(config machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	Top() uint32
	Set(channel uint8, value uint32)
}

// avrPWMDriver drives the OCnA/OCnB outputs. Configuring a pin claims its
// timer for PWM, so the application tick must run on another unit.
type avrPWMDriver struct {
	timers   [core.NumCounters]pwmPeripheral
	channels map[core.GPIOPin]uint8
}

func newAVRPWMDriver() *avrPWMDriver {
	return &avrPWMDriver{
		timers:   [core.NumCounters]pwmPeripheral{machine.Timer0, machine.Timer1, machine.Timer2},
		channels: make(map[core.GPIOPin]uint8),
	}
}

func (d *avrPWMDriver) timerFor(pin core.GPIOPin) (pwmPeripheral, error) {
	switch pin {
	case 5, 6:
		return d.timers[core.Counter0], nil
	case 9, 10:
		return d.timers[core.Counter1], nil
	case 3, 11:
		return d.timers[core.Counter2], nil
	}
	return nil, core.ErrNoPWMOutput
}

func (d *avrPWMDriver) ConfigurePWM(pin core.GPIOPin) error {
	t, err := d.timerFor(pin)
	if err != nil {
		return err
	}
	p, err := digitalPin(pin)
	if err != nil {
		return err
	}
	if err := t.Configure(machine.PWMConfig{}); err != nil {
		return err
	}
	ch, err := t.Channel(p)
	if err != nil {
		return err
	}
	d.channels[pin] = ch
	return nil
}

func (d *avrPWMDriver) SetDutyCycle(pin core.GPIOPin, duty core.PWMValue) error {
	ch, ok := d.channels[pin]
	if !ok {
		return core.ErrNoPWMOutput
	}
	t, err := d.timerFor(pin)
	if err != nil {
		return err
	}
	t.Set(ch, uint32(duty)*t.Top()/core.PWMMax)
	return nil
}

// avrADCDriver samples the analog header. machine.ADC scales results to
// 16 bits; the converter itself resolves 10.
type avrADCDriver struct {
	adcs [len(analogPins)]*machine.ADC
}

func newAVRADCDriver() *avrADCDriver {
	machine.InitADC()
	return &avrADCDriver{}
}

func (d *avrADCDriver) ReadChannel(ch core.ADCChannel) (uint16, error) {
	if int(ch) >= len(analogPins) {
		return 0, errNoPin
	}
	adc := d.adcs[ch]
	if adc == nil {
		adc = &machine.ADC{Pin: analogPins[ch]}
		adc.Configure(machine.ADCConfig{})
		d.adcs[ch] = adc
	}
	return adc.Get() >> 6, nil
}
