package core

// Button reads a push button wired from the pin to ground, using the
// internal pull-up. A low level means pressed.
type Button struct {
	pin     GPIOPin
	pressed bool
}

// NewButton configures pin as an input with the pull-up enabled
func NewButton(pin GPIOPin) (*Button, error) {
	if err := MustGPIO().ConfigureInputPullUp(pin); err != nil {
		return nil, err
	}
	return &Button{pin: pin}, nil
}

// IsPressed samples the pin. A read error counts as released.
func (b *Button) IsPressed() bool {
	level, err := MustGPIO().GetPin(b.pin)
	if err != nil {
		return false
	}
	return !level
}

// Changed samples the pin and reports whether the state differs from the
// previous call. Sampling it at a fixed slow rate debounces the contact.
func (b *Button) Changed() (pressed bool, changed bool) {
	pressed = b.IsPressed()
	changed = pressed != b.pressed
	b.pressed = pressed
	return pressed, changed
}
