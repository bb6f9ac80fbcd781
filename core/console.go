package core

import (
	"errors"

	"github.com/google/shlex"

	"avrkit/protocol"
)

// Console assembles received bytes into lines and runs them as commands.
// Receive may be called from the UART receive path; Poll and Execute run
// in the main loop.
type Console struct {
	lines    *protocol.LineReader
	registry *CommandRegistry
	out      DebugWriter
}

// NewConsole creates a console with a size-byte receive ring. Replies go
// to out, or to the diagnostic writer when out is nil.
func NewConsole(registry *CommandRegistry, size int, out DebugWriter) *Console {
	if out == nil {
		out = Diagnostic
	}
	return &Console{
		lines:    protocol.NewLineReader(size),
		registry: registry,
		out:      out,
	}
}

// Receive queues bytes from the serial port
func (c *Console) Receive(data []byte) {
	state := disableInterrupts()
	c.lines.Write(data)
	restoreInterrupts(state)
}

// Poll runs at most one complete line. It returns true when a line (or an
// overflow report) was handled.
func (c *Console) Poll() bool {
	state := disableInterrupts()
	line, ok, err := c.lines.ReadLine()
	restoreInterrupts(state)

	if err != nil {
		c.out(protocol.OverflowMessage)
		return true
	}
	if !ok {
		return false
	}
	c.Execute(line)
	return true
}

// Execute tokenises line and dispatches it. Bad input is reported on the
// console and returned.
func (c *Console) Execute(line string) error {
	tokens, err := shlex.Split(line)
	if err != nil {
		c.out(ErrInvalidArgs.Error())
		return ErrInvalidArgs
	}
	if len(tokens) == 0 {
		return nil
	}

	err = c.registry.Dispatch(tokens[0], tokens[1:])
	switch {
	case err == nil:
	case errors.Is(err, ErrUnknownCommand), errors.Is(err, ErrInvalidArgs):
		c.out(ErrInvalidArgs.Error())
	default:
		c.out(tokens[0] + ": " + err.Error())
	}
	return err
}

// Registry returns the commands the console dispatches to
func (c *Console) Registry() *CommandRegistry {
	return c.registry
}
