// Package protocol implements the framing of the text console spoken over
// the board's UART: newline-terminated command lines in a fixed-size ring.
package protocol

import "errors"

// Version represents the avrkit firmware version
const Version = "0.1.0"

// Console framing constants
const (
	LineMax        = 64   // RX ring size; one slot stays free, so 63 bytes per line
	LineTerminator = '\n' // ends a command line
	CarriageReturn = '\r' // stripped from the end of a line
	DefaultBaud    = 9600
)

// ErrOverflow reports a line that did not fit the receive ring and was dropped
var ErrOverflow = errors.New("buffer overflowed")

// OverflowMessage is what the console prints for ErrOverflow
const OverflowMessage = "Buffer overflowed, make sure your command is within buffer range!"

// ValidBaud reports whether rate is one the UART is configured for
func ValidBaud(rate uint32) bool {
	switch rate {
	case 9600, 19200, 38400, 57600, 115200:
		return true
	}
	return false
}
