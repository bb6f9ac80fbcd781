// Command avrkit-monitor is an interactive serial console for avrkit boards
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"avrkit/config"
	"avrkit/host/mcu"
	"avrkit/protocol"
)

var (
	device     = flag.String("device", "/dev/ttyUSB0", "Serial device path")
	baud       = flag.Int("baud", 0, "Baud rate (default from -config, else 9600)")
	configPath = flag.String("config", "", "Board config JSON")
)

func main() {
	flag.Parse()

	rate := protocol.DefaultBaud
	if *configPath != "" {
		board, err := config.LoadFile(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		rate = int(board.BaudRate)
	}
	if *baud != 0 {
		rate = *baud
	}

	fmt.Printf("avrkit monitor %s\n", protocol.Version)
	fmt.Printf("Connecting to %s at %d baud...\n", *device, rate)

	conn := mcu.NewMCU()
	if err := conn.Connect(*device, rate); err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close()

	fmt.Println("Connected. Type board commands ('help' lists them), 'quit' to exit.")

	go func() {
		for line := range conn.Lines() {
			fmt.Println(line)
		}
		if err := conn.Err(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: serial read: %v\n", err)
		}
	}()

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch line {
		case "quit", "exit", "q":
			fmt.Println("Goodbye!")
			return
		}

		if err := conn.SendLine(line); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}

	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}
}
