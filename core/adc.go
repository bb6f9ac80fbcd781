package core

import "tinygo.org/x/drivers"

// ADCSensor samples one analog channel. It implements drivers.Sensor so
// it can sit next to other tinygo drivers; only drivers.Voltage is measured.
type ADCSensor struct {
	Channel ADCChannel

	raw uint16
	mv  uint16
}

var _ drivers.Sensor = (*ADCSensor)(nil)

// NewADCSensor creates a sensor for ch. No conversion is started.
func NewADCSensor(ch ADCChannel) *ADCSensor {
	return &ADCSensor{Channel: ch}
}

// Update performs a conversion if which includes drivers.Voltage
func (s *ADCSensor) Update(which drivers.Measurement) error {
	if which&drivers.Voltage == 0 {
		return nil
	}
	raw, err := MustADC().ReadChannel(s.Channel)
	if err != nil {
		return err
	}
	s.raw = raw
	s.mv = ToMillivolts(raw)
	return nil
}

// Raw returns the last 10-bit conversion result
func (s *ADCSensor) Raw() uint16 {
	return s.raw
}

// Millivolts returns the last sample in millivolts
func (s *ADCSensor) Millivolts() uint16 {
	return s.mv
}

// Voltage returns the last sample in microvolts, the unit tinygo drivers use
func (s *ADCSensor) Voltage() int32 {
	return int32(s.mv) * 1000
}
