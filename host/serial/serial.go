package serial

import (
	"io"

	"avrkit/protocol"
)

// Port represents a serial port interface
// This abstraction allows for different implementations:
// - Native serial (using github.com/tarm/serial)
// - In-memory pipes (for testing)
type Port interface {
	io.ReadWriteCloser

	// Flush flushes any buffered data
	Flush() error
}

// Config holds serial port configuration
type Config struct {
	// Device path (e.g., "/dev/ttyUSB0", "COM3")
	Device string

	// Baud rate; the firmware UART runs at 9600 unless rebuilt
	Baud int

	// Read timeout in milliseconds (0 = blocking)
	ReadTimeout int
}

// DefaultConfig returns the configuration matching the firmware console
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        protocol.DefaultBaud,
		ReadTimeout: 100,
	}
}
