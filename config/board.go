// Package config describes the board an avrkit firmware or simulator runs on
package config

// MaxTickInterval bounds every timer interval a board or the console may
// request, in either time unit or in external clock edges
const MaxTickInterval = 60000

// Board is the pin map and timer setup of one board
type Board struct {
	Name     string `json:"name"`
	ClockHz  uint32 `json:"clock_hz"`
	BaudRate uint32 `json:"baud_rate"`
	RxBuffer int    `json:"rx_buffer"`

	// Application timer: the counter unit the controller owns and the
	// interval one elapsed tick stands for
	TimerUnit    uint8  `json:"timer_unit"`
	TickInterval uint32 `json:"tick_interval"`
	TickUnit     string `json:"tick_unit"` // "ms" or "us"
	TickMode     string `json:"tick_mode"` // "ctc", "normal" or "ext"

	LEDPin     uint8 `json:"led_pin"`
	LEDPWM     bool  `json:"led_pwm"`
	ButtonPin  uint8 `json:"button_pin"`
	ADCChannel uint8 `json:"adc_channel"`

	// Application timing, in ticks
	BlinkInterval   uint32 `json:"blink_interval"`
	ADCMaxInterval  uint32 `json:"adc_max_interval"`
	ADCSampleTicks  uint32 `json:"adc_sample_ticks"`
	ButtonPollTicks uint32 `json:"button_poll_ticks"`
}

// Default returns the Arduino Uno setup: 16 MHz, LED on D9 (OC1A),
// button on D2, potentiometer on A0 and a 1 ms tick from Timer2.
func Default() *Board {
	return &Board{
		Name:     "arduino-uno",
		ClockHz:  16000000,
		BaudRate: 9600,
		RxBuffer: 64,

		TimerUnit:    2,
		TickInterval: 1,
		TickUnit:     "ms",
		TickMode:     "ctc",

		LEDPin:     9,
		LEDPWM:     true,
		ButtonPin:  2,
		ADCChannel: 0,

		BlinkInterval:   500,
		ADCMaxInterval:  1000,
		ADCSampleTicks:  50,
		ButtonPollTicks: 20,
	}
}

// ApplyDefaults fills in values left at zero
func ApplyDefaults(b *Board) {
	def := Default()

	if b.Name == "" {
		b.Name = def.Name
	}
	if b.ClockHz == 0 {
		b.ClockHz = def.ClockHz
	}
	if b.BaudRate == 0 {
		b.BaudRate = def.BaudRate
	}
	if b.RxBuffer == 0 {
		b.RxBuffer = def.RxBuffer
	}
	if b.TickInterval == 0 {
		b.TickInterval = def.TickInterval
	}
	if b.TickUnit == "" {
		b.TickUnit = def.TickUnit
	}
	if b.TickMode == "" {
		b.TickMode = def.TickMode
	}
	if b.BlinkInterval == 0 {
		b.BlinkInterval = def.BlinkInterval
	}
	if b.ADCMaxInterval == 0 {
		b.ADCMaxInterval = def.ADCMaxInterval
	}
	if b.ADCSampleTicks == 0 {
		b.ADCSampleTicks = def.ADCSampleTicks
	}
	if b.ButtonPollTicks == 0 {
		b.ButtonPollTicks = def.ButtonPollTicks
	}
}

// PWMTimer returns the counter unit driving pin's compare output
func PWMTimer(pin uint8) (uint8, bool) {
	switch pin {
	case 5, 6:
		return 0, true
	case 9, 10:
		return 1, true
	case 3, 11:
		return 2, true
	}
	return 0, false
}
