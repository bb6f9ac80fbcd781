//go:build avr

// Command atmega328p is the avrkit firmware for Arduino Uno-class boards
package main

import (
	"machine"

	"avrkit/config"
	"avrkit/core"
)

var (
	uart = machine.Serial
	crlf = []byte("\r\n")
)

func main() {
	board := config.Default()

	uart.Configure(machine.UARTConfig{BaudRate: board.BaudRate})
	core.SetDebugWriter(func(s string) {
		uart.Write([]byte(s))
		uart.Write(crlf)
	})

	core.SetGPIODriver(avrGPIODriver{})
	core.SetPWMDriver(newAVRPWMDriver())
	core.SetADCDriver(newAVRADCDriver())

	initVectors()
	core.TimerInit()

	counter := core.NewRegisterCounter(core.CounterUnit(board.TimerUnit), timerRegisters{})
	app, err := core.NewApp(board, counter, nil)
	if err != nil {
		core.Diagnostic(err.Error())
		for {
		}
	}

	var rx [16]byte
	for {
		n := 0
		for n < len(rx) && uart.Buffered() > 0 {
			b, err := uart.ReadByte()
			if err != nil {
				break
			}
			rx[n] = b
			n++
		}
		if n > 0 {
			app.Receive(rx[:n])
		}
		app.Poll()
	}
}
