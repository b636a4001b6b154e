package command

import (
	"errors"
	"fmt"
	"sync"
)

// ErrUnknownCommand is returned by Resolve for keys nobody registered.
var ErrUnknownCommand = errors.New("command: unknown key")

// Registry keeps menu commands in the order they were registered.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]Command
	order    []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{commands: map[string]Command{}}
}

// DefaultRegistry returns the standard menu: book, check, exit.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister(Book{})
	r.MustRegister(Check{})
	r.MustRegister(Exit{})
	return r
}

// Register installs a command. Returns an error if the key already exists.
func (r *Registry) Register(cmd Command) error {
	if cmd == nil {
		return fmt.Errorf("command: command is required")
	}
	info := cmd.Info()
	if err := info.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.commands[info.Key]; exists {
		return fmt.Errorf("command: %s already registered", info.Key)
	}
	r.commands[info.Key] = cmd
	r.order = append(r.order, info.Key)
	return nil
}

// MustRegister panics if registration fails.
func (r *Registry) MustRegister(cmd Command) {
	if err := r.Register(cmd); err != nil {
		panic(err)
	}
}

// Resolve returns the command bound to key.
func (r *Registry) Resolve(key string) (Command, error) {
	r.mu.RLock()
	cmd, ok := r.commands[key]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownCommand, key)
	}
	return cmd, nil
}

// Commands returns the registered commands in menu order.
func (r *Registry) Commands() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Command, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.commands[key])
	}
	return out
}

// Keys returns the registered keys in menu order.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}
