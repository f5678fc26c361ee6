package mode

import (
	"fmt"
	"sync"
)

// Manager registers editor modes and coordinates mode transitions,
// calling Exit on the outgoing mode and Enter on the incoming one.
type Manager struct {
	mu      sync.RWMutex
	modes   map[string]Mode
	current Mode
}

// NewManager creates an empty mode manager.
func NewManager() *Manager {
	return &Manager{modes: make(map[string]Mode)}
}

// Register adds a mode, replacing any mode with the same name.
func (m *Manager) Register(mode Mode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.modes[mode.Name()] = mode
}

// Get returns a registered mode by name, or nil.
func (m *Manager) Get(name string) Mode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.modes[name]
}

// Current returns the active mode, or nil before initialization.
func (m *Manager) Current() Mode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// CurrentName returns the active mode's name, or "".
func (m *Manager) CurrentName() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return ""
	}
	return m.current.Name()
}

// IsMode returns true if the active mode has the given name.
func (m *Manager) IsMode(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current != nil && m.current.Name() == name
}

// SetInitialMode sets the starting mode, calling only its Enter hook.
func (m *Manager) SetInitialMode(name string, ctx *Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	mode, ok := m.modes[name]
	if !ok {
		return fmt.Errorf("unknown mode: %s", name)
	}
	m.current = mode
	mode.Enter(ctx)
	return nil
}

// Switch transitions to the named mode, running Exit on the current
// mode and Enter on the new one. Switching to the active mode re-runs
// its hooks.
func (m *Manager) Switch(name string, ctx *Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next, ok := m.modes[name]
	if !ok {
		return fmt.Errorf("unknown mode: %s", name)
	}

	if m.current != nil {
		m.current.Exit(ctx)
	}
	m.current = next
	next.Enter(ctx)
	return nil
}
