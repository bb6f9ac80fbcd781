package mcu

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"avrkit/host/serial"
	"avrkit/protocol"
)

// ErrNotConnected is returned when sending on a closed connection
var ErrNotConnected = errors.New("not connected to MCU")

// replyLineMax bounds one reply line; status output runs longer than the
// firmware's own receive ring.
const replyLineMax = 256

// MCU is a console connection to an avrkit board. Lines the board prints
// are delivered on Lines until the connection closes.
type MCU struct {
	port serial.Port

	mu        sync.Mutex
	connected bool

	lines chan string
	errs  chan error
	done  chan struct{}
	wg    sync.WaitGroup
}

// NewMCU creates a new MCU instance (not yet connected)
func NewMCU() *MCU {
	return &MCU{}
}

// Connect connects to an MCU via serial port
func (m *MCU) Connect(device string, baud int) error {
	cfg := serial.DefaultConfig(device)
	if baud != 0 {
		cfg.Baud = baud
	}
	return m.ConnectWithConfig(cfg)
}

// ConnectWithConfig connects to an MCU with a custom serial config
func (m *MCU) ConnectWithConfig(cfg *serial.Config) error {
	port, err := serial.Open(cfg)
	if err != nil {
		return fmt.Errorf("failed to open serial port: %w", err)
	}
	m.ConnectPort(port)

	// Opening the port resets an Uno; give the bootloader time to hand over
	time.Sleep(2 * time.Second)
	return nil
}

// ConnectPort starts reading from an already open port
func (m *MCU) ConnectPort(port serial.Port) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.port = port
	m.lines = make(chan string, 64)
	m.errs = make(chan error, 1)
	m.done = make(chan struct{})
	m.connected = true

	m.wg.Add(1)
	go m.readLoop(port, m.lines, m.errs, m.done)
}

// Lines returns the channel of lines received from the board. It is
// closed when the connection ends.
func (m *MCU) Lines() <-chan string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lines
}

// Err returns the error that ended the read loop, if any
func (m *MCU) Err() error {
	select {
	case err := <-m.errs:
		return err
	default:
		return nil
	}
}

// SendLine writes one console command. Lines that would overflow the
// board's receive ring are refused.
func (m *MCU) SendLine(line string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.connected {
		return ErrNotConnected
	}
	if len(line)+1 > protocol.LineMax-1 {
		return fmt.Errorf("command is %d bytes, the board accepts %d", len(line), protocol.LineMax-2)
	}

	buf := make([]byte, 0, len(line)+1)
	buf = append(buf, line...)
	buf = append(buf, protocol.LineTerminator)
	if _, err := m.port.Write(buf); err != nil {
		return fmt.Errorf("failed to send %q: %w", line, err)
	}
	return nil
}

// Close closes the connection to the MCU
func (m *MCU) Close() error {
	m.mu.Lock()
	if !m.connected {
		m.mu.Unlock()
		return nil
	}
	m.connected = false
	close(m.done)
	err := m.port.Close()
	m.mu.Unlock()

	m.wg.Wait()
	return err
}

// IsConnected returns whether the MCU is connected
func (m *MCU) IsConnected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connected
}

func (m *MCU) readLoop(port serial.Port, lines chan<- string, errs chan<- error, done <-chan struct{}) {
	defer m.wg.Done()
	defer close(lines)

	reader := protocol.NewLineReader(replyLineMax)
	buf := make([]byte, 64)
	for {
		n, err := port.Read(buf)
		if n > 0 {
			reader.Write(buf[:n])
			for {
				line, ok, lerr := reader.ReadLine()
				if lerr != nil {
					continue
				}
				if !ok {
					break
				}
				select {
				case lines <- line:
				case <-done:
					return
				}
			}
		}
		if err != nil {
			select {
			case <-done:
				return
			default:
			}
			// A read timeout with no data comes back as io.EOF
			if err == io.EOF {
				continue
			}
			errs <- err
			return
		}
	}
}
