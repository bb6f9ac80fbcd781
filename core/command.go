package core

import (
	"errors"
	"sync"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrInvalidArgs    = errors.New("invalid command")
)

// CommandHandler handles one console command. args holds the tokens after
// the command name.
type CommandHandler func(args []string) error

// Command is one console command
type Command struct {
	ID      uint16
	Name    string
	Usage   string // argument summary shown by help (e.g., "P T")
	Handler CommandHandler
}

// CommandRegistry holds the console commands in registration order
type CommandRegistry struct {
	mu       sync.RWMutex
	commands map[uint16]*Command
	nameToID map[string]uint16
	nextID   uint16
	help     string
}

// NewCommandRegistry creates a new command registry
func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{
		commands: make(map[uint16]*Command),
		nameToID: make(map[string]uint16),
	}
}

// Register adds a command. Registering a name twice keeps the first handler.
func (r *CommandRegistry) Register(name string, usage string, handler CommandHandler) uint16 {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id, exists := r.nameToID[name]; exists {
		return id
	}

	id := r.nextID
	r.nextID++

	r.commands[id] = &Command{
		ID:      id,
		Name:    name,
		Usage:   usage,
		Handler: handler,
	}
	r.nameToID[name] = id

	r.rebuildHelp()
	return id
}

// GetCommand retrieves a command by ID
func (r *CommandRegistry) GetCommand(id uint16) (*Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.commands[id]
	return cmd, ok
}

// GetCommandByName retrieves a command by name
func (r *CommandRegistry) GetCommandByName(name string) (*Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.nameToID[name]
	if !ok {
		return nil, false
	}
	return r.commands[id], true
}

// Count returns the number of registered commands
func (r *CommandRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.commands)
}

// Dispatch runs the named command's handler
func (r *CommandRegistry) Dispatch(name string, args []string) error {
	cmd, ok := r.GetCommandByName(name)
	if !ok {
		return ErrUnknownCommand
	}
	return cmd.Handler(args)
}

// Help returns one line per command, in registration order
func (r *CommandRegistry) Help() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.help
}

// rebuildHelp must be called with the lock held
func (r *CommandRegistry) rebuildHelp() {
	help := ""
	for i := uint16(0); i < r.nextID; i++ {
		cmd, ok := r.commands[i]
		if !ok {
			continue
		}
		if cmd.Usage != "" {
			help += cmd.Name + " " + cmd.Usage + "\n"
		} else {
			help += cmd.Name + "\n"
		}
	}
	r.help = help
}
