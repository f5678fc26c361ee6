package mode

import (
	"github.com/dshills/keylite/internal/input/key"
)

// NormalMode is the navigation mode. It is the initial mode.
type NormalMode struct{}

// NewNormalMode creates a normal mode instance.
func NewNormalMode() *NormalMode {
	return &NormalMode{}
}

// Name returns the mode identifier.
func (m *NormalMode) Name() string { return ModeNormal }

// DisplayName returns the status-line name.
func (m *NormalMode) DisplayName() string { return "NORMAL" }

// Enter is called when entering normal mode.
func (m *NormalMode) Enter(ctx *Context) {}

// Exit is called when leaving normal mode.
func (m *NormalMode) Exit(ctx *Context) {}

// HandleKey processes a key in normal mode:
//
//	q      end the session
//	i      enter insert mode
//	:      enter command mode
//	arrows move the cursor
func (m *NormalMode) HandleKey(ev key.Event, ctx *Context) Result {
	if moveCursor(ev, ctx) {
		return Result{}
	}

	if !ev.IsChar() {
		return Result{}
	}

	switch ev.Rune {
	case 'q':
		return Result{Quit: true}
	case 'i':
		return Result{SwitchTo: ModeInsert}
	case ':':
		return Result{SwitchTo: ModeCommand}
	default:
		return Result{}
	}
}
