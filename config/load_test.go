package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default board invalid: %v", err)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	b, err := Load([]byte(`{"name": "nano", "baud_rate": 115200, "led_pin": 10}`))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if b.Name != "nano" || b.BaudRate != 115200 || b.LEDPin != 10 {
		t.Errorf("Fields not loaded: %+v", b)
	}
	if b.ClockHz != 16000000 || b.TimerUnit != 2 || b.TickUnit != "ms" {
		t.Errorf("Defaults not kept: %+v", b)
	}
	if !b.LEDPWM {
		t.Error("led_pwm default lost")
	}
}

func TestLoadExplicitZeroFallsBackToDefault(t *testing.T) {
	b, err := Load([]byte(`{"clock_hz": 0, "blink_interval": 0}`))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if b.ClockHz != 16000000 || b.BlinkInterval != 500 {
		t.Errorf("Zero values not defaulted: clock=%d blink=%d", b.ClockHz, b.BlinkInterval)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name  string
		json  string
		errIn string
	}{
		{"bad unit", `{"timer_unit": 3}`, "timer_unit"},
		{"bad baud", `{"baud_rate": 300}`, "baud_rate"},
		{"pwm collides with tick timer", `{"timer_unit": 1, "led_pin": 9}`, "application tick"},
		{"pin without pwm", `{"led_pin": 13}`, "no PWM"},
		{"ext on 8-bit", `{"tick_mode": "ext"}`, "16-bit"},
		{"bad tick unit", `{"tick_unit": "s"}`, "tick_unit"},
		{"tick too long", `{"tick_interval": 60001}`, "tick_interval"},
		{"shared pin", `{"led_pwm": false, "led_pin": 2}`, "button_pin"},
		{"syntax", `{"name":`, "parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.json))
			if err == nil {
				t.Fatal("Expected an error")
			}
			if !strings.Contains(err.Error(), tt.errIn) {
				t.Errorf("Error %q does not mention %q", err, tt.errIn)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.json")
	if err := os.WriteFile(path, []byte(`{"timer_unit": 1, "led_pin": 3, "tick_mode": "ext"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	b, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if b.TimerUnit != 1 || b.TickMode != "ext" {
		t.Errorf("Unexpected board: %+v", b)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestPWMTimer(t *testing.T) {
	for pin, want := range map[uint8]uint8{3: 2, 5: 0, 6: 0, 9: 1, 10: 1, 11: 2} {
		got, ok := PWMTimer(pin)
		if !ok || got != want {
			t.Errorf("PWMTimer(%d) = %d, %v; want %d", pin, got, ok, want)
		}
	}
	if _, ok := PWMTimer(13); ok {
		t.Error("Pin 13 has no PWM output")
	}
}
