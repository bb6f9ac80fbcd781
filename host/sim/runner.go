package sim

import (
	"time"

	"avrkit/config"
	"avrkit/core"
)

// pollEvery is how much simulated time passes between main-loop polls
const pollEvery = time.Millisecond

// Runner couples a simulated timer block, a simulated board and the
// application. It is driven from a single goroutine.
type Runner struct {
	MCU   *core.SimulatedMCU
	Board *Board
	App   *core.App

	clockHz uint32
	carry   time.Duration // time stepped but not yet advanced
}

// NewRunner builds the application for cfg on simulated hardware. out
// receives console output and diagnostics.
func NewRunner(cfg *config.Board, out core.DebugWriter) (*Runner, error) {
	core.SetDebugWriter(out)

	mcu := core.NewSimulatedMCU()
	board := NewBoard()
	board.Install()

	counter := core.NewRegisterCounter(core.CounterUnit(cfg.TimerUnit), mcu)
	app, err := core.NewApp(cfg, counter, out)
	if err != nil {
		return nil, err
	}
	core.TimerInit()

	return &Runner{
		MCU:     mcu,
		Board:   board,
		App:     app,
		clockHz: cfg.ClockHz,
	}, nil
}

// Send queues a console line as if it arrived on the UART
func (r *Runner) Send(line string) {
	r.App.Receive([]byte(line + "\n"))
}

// Step runs the CPU clock for d of simulated time, polling the main loop
// once per millisecond.
func (r *Runner) Step(d time.Duration) {
	r.carry += d
	for r.carry >= pollEvery {
		r.carry -= pollEvery
		r.MCU.Advance(r.cycles(pollEvery))
		r.App.Poll()
	}
}

// Close releases the application timer
func (r *Runner) Close() {
	r.App.Close()
}

func (r *Runner) cycles(d time.Duration) uint64 {
	return uint64(d) * uint64(r.clockHz) / uint64(time.Second)
}
