package core

// PWMValue is an 8-bit duty cycle, 0 (off) to PWMMax (fully on)
type PWMValue uint8

// PWMMax is the full-scale duty cycle
const PWMMax = 255

// PWMDriver is the abstract PWM interface that core code uses.
// On the ATmega328p only D3, D5, D6, D9, D10 and D11 have compare outputs.
type PWMDriver interface {
	// ConfigurePWM sets up the pin's compare output for fast PWM
	ConfigurePWM(pin GPIOPin) error

	// SetDutyCycle sets the duty cycle for a configured pin
	SetDutyCycle(pin GPIOPin, value PWMValue) error
}

// Global singleton used by core code.
var pwmDriver PWMDriver

// SetPWMDriver is called by target-specific code to register its driver.
func SetPWMDriver(d PWMDriver) {
	pwmDriver = d
}

// MustPWM returns the configured driver or panics if missing.
func MustPWM() PWMDriver {
	if pwmDriver == nil {
		panic("PWM driver not configured")
	}
	return pwmDriver
}

// ValidPWMPin reports whether pin has a hardware compare output
func ValidPWMPin(pin GPIOPin) bool {
	switch pin {
	case 3, 5, 6, 9, 10, 11:
		return true
	}
	return false
}
