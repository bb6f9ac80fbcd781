package core

// ADCChannel selects one of the multiplexed analog inputs (A0-A7)
type ADCChannel uint8

// ADCMax is the largest 10-bit conversion result
const ADCMax = 1023

// ADCReferenceMillivolts is the AVCC reference the converter is run from
const ADCReferenceMillivolts = 5000

// ADCDriver is the abstract ADC interface that core code uses.
type ADCDriver interface {
	// ReadChannel performs a blocking conversion and returns the 10-bit result
	ReadChannel(ch ADCChannel) (uint16, error)
}

// Global singleton used by core code.
var adcDriver ADCDriver

// SetADCDriver is called by target-specific code to register its driver.
func SetADCDriver(d ADCDriver) {
	adcDriver = d
}

// MustADC returns the configured driver or panics if missing.
func MustADC() ADCDriver {
	if adcDriver == nil {
		panic("ADC driver not configured")
	}
	return adcDriver
}

// ToMillivolts converts a 10-bit conversion result to millivolts
func ToMillivolts(raw uint16) uint16 {
	if raw > ADCMax {
		raw = ADCMax
	}
	return uint16(uint32(raw) * ADCReferenceMillivolts / ADCMax)
}
