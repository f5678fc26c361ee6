package mode

import (
	"github.com/dshills/keylite/internal/input/key"
)

// CommandMode accumulates colon-command input. The command line is a
// dedicated buffer owned by this mode, separate from the status notice
// shown outside command mode.
type CommandMode struct {
	// line holds the command being typed.
	line []rune
}

// NewCommandMode creates a command mode instance.
func NewCommandMode() *CommandMode {
	return &CommandMode{line: make([]rune, 0, 64)}
}

// Name returns the mode identifier.
func (m *CommandMode) Name() string { return ModeCommand }

// DisplayName returns the status-line name.
func (m *CommandMode) DisplayName() string { return "COMMAND" }

// Enter clears any previous command input.
func (m *CommandMode) Enter(ctx *Context) {
	m.line = m.line[:0]
}

// Exit clears the command line.
func (m *CommandMode) Exit(ctx *Context) {
	m.line = m.line[:0]
}

// Line returns the command typed so far.
func (m *CommandMode) Line() string {
	return string(m.line)
}

// HandleKey processes a key in command mode:
//
//	Enter      submit the accumulated command
//	Escape     abandon the command, back to normal mode
//	printable  append to the command line
//	Backspace  remove the last character (no-op when empty)
func (m *CommandMode) HandleKey(ev key.Event, ctx *Context) Result {
	switch {
	case ev.IsEnter():
		return Result{Submit: true, Command: string(m.line)}

	case ev.IsEscape():
		return Result{SwitchTo: ModeNormal}

	case ev.IsBackspace():
		if len(m.line) > 0 {
			m.line = m.line[:len(m.line)-1]
		}

	case ev.IsChar():
		m.line = append(m.line, ev.Rune)
	}

	return Result{}
}
