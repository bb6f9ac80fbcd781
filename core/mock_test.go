package core

import "errors"

var errMockPin = errors.New("mock: pin not configured")

// mockPins implements GPIODriver, PWMDriver and ADCDriver in memory
type mockPins struct {
	outputs map[GPIOPin]bool
	inputs  map[GPIOPin]bool
	levels  map[GPIOPin]bool
	duty    map[GPIOPin]PWMValue
	adc     map[ADCChannel]uint16
	adcErr  error

	dutyWrites int
}

func newMockPins() *mockPins {
	return &mockPins{
		outputs: make(map[GPIOPin]bool),
		inputs:  make(map[GPIOPin]bool),
		levels:  make(map[GPIOPin]bool),
		duty:    make(map[GPIOPin]PWMValue),
		adc:     make(map[ADCChannel]uint16),
	}
}

// installMockPins registers fresh mocks as the core drivers
func installMockPins() *mockPins {
	m := newMockPins()
	SetGPIODriver(m)
	SetPWMDriver(m)
	SetADCDriver(m)
	return m
}

func (m *mockPins) ConfigureOutput(pin GPIOPin) error {
	m.outputs[pin] = true
	return nil
}

func (m *mockPins) ConfigureInputPullUp(pin GPIOPin) error {
	m.inputs[pin] = true
	m.levels[pin] = true
	return nil
}

func (m *mockPins) SetPin(pin GPIOPin, value bool) error {
	if !m.outputs[pin] {
		return errMockPin
	}
	m.levels[pin] = value
	return nil
}

func (m *mockPins) GetPin(pin GPIOPin) (bool, error) {
	if !m.outputs[pin] && !m.inputs[pin] {
		return false, errMockPin
	}
	return m.levels[pin], nil
}

func (m *mockPins) ConfigurePWM(pin GPIOPin) error {
	m.duty[pin] = 0
	return nil
}

func (m *mockPins) SetDutyCycle(pin GPIOPin, duty PWMValue) error {
	if _, ok := m.duty[pin]; !ok {
		return errMockPin
	}
	m.duty[pin] = duty
	m.dutyWrites++
	return nil
}

func (m *mockPins) ReadChannel(ch ADCChannel) (uint16, error) {
	if m.adcErr != nil {
		return 0, m.adcErr
	}
	return m.adc[ch], nil
}
