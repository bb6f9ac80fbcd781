// Command avrkit-sim runs the avrkit application against a simulated
// ATmega328p timer block and board, with the console on stdin/stdout.
//
// Lines starting with '!' drive the simulated board instead of the console:
//
//	!press / !release       push or let go of the button
//	!pot MV                 set the potentiometer to MV millivolts
//	!pulse N                feed N edges to the counter's external clock pin
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/shlex"

	"avrkit/config"
	"avrkit/core"
	"avrkit/host/sim"
	"avrkit/protocol"
)

var (
	configPath = flag.String("config", "", "Board config JSON (default: Arduino Uno)")
	speed      = flag.Float64("speed", 1.0, "Simulated time per wall-clock time")
	verbose    = flag.Bool("verbose", false, "Print every LED change")
	debug      = flag.Bool("debug", false, "Enable core debug output")
)

func main() {
	flag.Parse()

	board := config.Default()
	if *configPath != "" {
		var err error
		if board, err = config.LoadFile(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	} else if err := board.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *speed <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -speed must be positive")
		os.Exit(1)
	}

	core.SetDebugEnabled(*debug)
	runner, err := sim.NewRunner(board, func(s string) { fmt.Println(s) })
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer runner.Close()

	if *verbose {
		runner.Board.OnOutput = func(pin core.GPIOPin, level bool, duty core.PWMValue) {
			fmt.Printf("[pin D%d] level=%v duty=%d\n", pin, level, duty)
		}
	}

	fmt.Printf("avrkit simulator %s on %s, %d Hz, tick %d%s on timer %d\n",
		protocol.Version, board.Name, board.ClockHz, board.TickInterval, board.TickUnit, board.TimerUnit)
	fmt.Println("Type 'help' for console commands, 'quit' to exit.")

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case line, ok := <-lines:
			if !ok {
				return
			}
			line = strings.TrimSpace(line)
			switch {
			case line == "quit" || line == "exit":
				return
			case strings.HasPrefix(line, "!"):
				if err := drive(runner, board, line[1:]); err != nil {
					fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				}
			case line != "":
				runner.Send(line)
			}

		case now := <-ticker.C:
			runner.Step(time.Duration(float64(now.Sub(last)) * *speed))
			last = now
		}
	}
}

// drive applies one '!' command to the simulated board
func drive(r *sim.Runner, board *config.Board, line string) error {
	args, err := shlex.Split(line)
	if err != nil {
		return fmt.Errorf("parse %q: %w", line, err)
	}
	if len(args) == 0 {
		return fmt.Errorf("empty board command")
	}

	switch args[0] {
	case "press", "release":
		r.Board.Press(core.GPIOPin(board.ButtonPin), args[0] == "press")
	case "pot":
		if len(args) != 2 {
			return fmt.Errorf("usage: !pot MV")
		}
		mv, err := strconv.ParseUint(args[1], 10, 32)
		if err != nil {
			return fmt.Errorf("pot: %w", err)
		}
		return r.Board.SetMillivolts(core.ADCChannel(board.ADCChannel), uint32(mv))
	case "pulse":
		if len(args) != 2 {
			return fmt.Errorf("usage: !pulse N")
		}
		n, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("pulse: %w", err)
		}
		r.MCU.Pulse(r.App.Timer().Unit(), n)
	default:
		return fmt.Errorf("unknown board command %q", args[0])
	}
	return nil
}
