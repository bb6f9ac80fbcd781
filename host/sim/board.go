// Package sim provides in-memory peripherals for running avrkit on a host
package sim

import (
	"errors"
	"sync"

	"avrkit/core"
)

var (
	ErrUnconfigured = errors.New("pin not configured")
	ErrNoChannel    = errors.New("no such ADC channel")
)

const numChannels = 8

// Board simulates the Uno's digital pins, PWM outputs and analog inputs.
// It implements core.GPIODriver, core.PWMDriver and core.ADCDriver. Inputs
// may be driven from another goroutine than the one running the app.
type Board struct {
	mu sync.Mutex

	outputs map[core.GPIOPin]bool
	pullups map[core.GPIOPin]bool
	levels  map[core.GPIOPin]bool
	duty    map[core.GPIOPin]core.PWMValue
	adc     [numChannels]uint16

	// OnOutput runs when the app drives a pin or changes a duty cycle
	OnOutput func(pin core.GPIOPin, level bool, duty core.PWMValue)
}

// NewBoard creates a board with every input floating high
func NewBoard() *Board {
	return &Board{
		outputs: make(map[core.GPIOPin]bool),
		pullups: make(map[core.GPIOPin]bool),
		levels:  make(map[core.GPIOPin]bool),
		duty:    make(map[core.GPIOPin]core.PWMValue),
	}
}

// Install registers the board as the core's GPIO, PWM and ADC driver
func (b *Board) Install() {
	core.SetGPIODriver(b)
	core.SetPWMDriver(b)
	core.SetADCDriver(b)
}

func (b *Board) ConfigureOutput(pin core.GPIOPin) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.outputs[pin] = true
	delete(b.pullups, pin)
	return nil
}

func (b *Board) ConfigureInputPullUp(pin core.GPIOPin) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.outputs, pin)
	b.pullups[pin] = true
	if _, driven := b.levels[pin]; !driven {
		b.levels[pin] = true
	}
	return nil
}

func (b *Board) SetPin(pin core.GPIOPin, value bool) error {
	b.mu.Lock()
	if !b.outputs[pin] {
		b.mu.Unlock()
		return ErrUnconfigured
	}
	b.levels[pin] = value
	hook, duty := b.OnOutput, b.duty[pin]
	b.mu.Unlock()

	if hook != nil {
		hook(pin, value, duty)
	}
	return nil
}

func (b *Board) GetPin(pin core.GPIOPin) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.outputs[pin] && !b.pullups[pin] {
		return false, ErrUnconfigured
	}
	return b.levels[pin], nil
}

func (b *Board) ConfigurePWM(pin core.GPIOPin) error {
	if !core.ValidPWMPin(pin) {
		return core.ErrNoPWMOutput
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.outputs[pin] = true
	b.duty[pin] = 0
	return nil
}

func (b *Board) SetDutyCycle(pin core.GPIOPin, duty core.PWMValue) error {
	b.mu.Lock()
	if _, ok := b.duty[pin]; !ok {
		b.mu.Unlock()
		return ErrUnconfigured
	}
	b.duty[pin] = duty
	b.levels[pin] = duty != 0
	hook := b.OnOutput
	b.mu.Unlock()

	if hook != nil {
		hook(pin, duty != 0, duty)
	}
	return nil
}

func (b *Board) ReadChannel(ch core.ADCChannel) (uint16, error) {
	if ch >= numChannels {
		return 0, ErrNoChannel
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.adc[ch], nil
}

// Press drives a pulled-up input low (pressed) or lets it float high
func (b *Board) Press(pin core.GPIOPin, pressed bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.levels[pin] = !pressed
}

// SetMillivolts sets an analog input to the code mv converts to
func (b *Board) SetMillivolts(ch core.ADCChannel, mv uint32) error {
	if ch >= numChannels {
		return ErrNoChannel
	}
	if mv > core.ADCReferenceMillivolts {
		mv = core.ADCReferenceMillivolts
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.adc[ch] = uint16(mv * core.ADCMax / core.ADCReferenceMillivolts)
	return nil
}

// Level returns the last level driven or seen on pin
func (b *Board) Level(pin core.GPIOPin) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.levels[pin]
}

// Duty returns pin's PWM duty cycle
func (b *Board) Duty(pin core.GPIOPin) core.PWMValue {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.duty[pin]
}
