//go:build !tinygo

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"avrkit/protocol"
)

// Load parses a JSON board description. Fields it leaves out keep their
// Default values.
func Load(data []byte) (*Board, error) {
	b := Default()
	if err := json.Unmarshal(data, b); err != nil {
		return nil, fmt.Errorf("parse board config: %w", err)
	}
	ApplyDefaults(b)

	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// LoadFile reads and parses a JSON board description
func LoadFile(path string) (*Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read board config: %w", err)
	}
	return Load(data)
}

// Validate checks that the pins and timers do not collide
func (b *Board) Validate() error {
	if b.TimerUnit > 2 {
		return fmt.Errorf("timer_unit %d: the ATmega328p has counters 0 to 2", b.TimerUnit)
	}
	if !protocol.ValidBaud(b.BaudRate) {
		return fmt.Errorf("baud_rate %d not supported", b.BaudRate)
	}
	if b.RxBuffer < 2 || b.RxBuffer > 255 {
		return fmt.Errorf("rx_buffer %d out of range 2..255", b.RxBuffer)
	}

	if b.TickInterval > MaxTickInterval {
		return fmt.Errorf("tick_interval %d above the maximum of %d", b.TickInterval, MaxTickInterval)
	}

	switch b.TickUnit {
	case "ms", "us":
	default:
		return fmt.Errorf("tick_unit %q: want ms or us", b.TickUnit)
	}
	switch b.TickMode {
	case "ctc", "normal":
	case "ext":
		if b.TimerUnit != 1 {
			return errors.New("tick_mode ext needs the 16-bit timer_unit 1")
		}
	default:
		return fmt.Errorf("tick_mode %q: want ctc, normal or ext", b.TickMode)
	}

	if b.LEDPWM {
		unit, ok := PWMTimer(b.LEDPin)
		if !ok {
			return fmt.Errorf("led_pin %d has no PWM output", b.LEDPin)
		}
		if unit == b.TimerUnit {
			return fmt.Errorf("led_pin %d PWM runs on timer %d, which drives the application tick", b.LEDPin, unit)
		}
	}
	if b.LEDPin == b.ButtonPin {
		return fmt.Errorf("led_pin and button_pin both use pin %d", b.LEDPin)
	}
	if b.ADCChannel > 7 {
		return fmt.Errorf("adc_channel %d out of range 0..7", b.ADCChannel)
	}
	return nil
}
