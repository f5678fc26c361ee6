// Package mode implements the modal input state machine. Exactly one
// mode is active at a time and decides how each key event is
// interpreted. Keys without a meaning in the active mode are ignored.
package mode

import (
	"github.com/dshills/keylite/internal/engine/buffer"
	"github.com/dshills/keylite/internal/engine/cursor"
	"github.com/dshills/keylite/internal/input/key"
)

// Standard mode names.
const (
	ModeNormal  = "normal"
	ModeInsert  = "insert"
	ModeCommand = "command"
)

// Mode defines the interface for editor modes.
type Mode interface {
	// Name returns the unique mode identifier (e.g., "normal").
	Name() string

	// DisplayName returns the status-line name (e.g., "NORMAL").
	DisplayName() string

	// Enter is called when entering this mode.
	Enter(ctx *Context)

	// Exit is called when leaving this mode.
	Exit(ctx *Context)

	// HandleKey processes a key event. It may mutate the buffer and
	// cursor through the context and returns the resulting transition
	// request, if any. It never blocks and never fails: keys with no
	// meaning in this mode produce a zero Result.
	HandleKey(ev key.Event, ctx *Context) Result
}

// Context carries the editor state a mode operates on.
type Context struct {
	// Buffer is the document being edited.
	Buffer *buffer.Buffer

	// Cursor is the edit position and viewport offset.
	Cursor *cursor.Cursor

	// ViewRows is the number of buffer rows visible this frame.
	ViewRows int
}

// Result describes what should happen after a key was handled.
// The zero value means: stay in the current mode, nothing to run.
type Result struct {
	// SwitchTo names the mode to transition to, or "".
	SwitchTo string

	// Submit is true when command-mode input was submitted with Enter.
	// Command holds the submitted text (may be empty).
	Submit  bool
	Command string

	// Quit signals the end of the session.
	Quit bool
}

// moveCursor applies an arrow key to the cursor. Returns true if the
// event was an arrow key.
func moveCursor(ev key.Event, ctx *Context) bool {
	switch ev.Key {
	case key.KeyUp:
		ctx.Cursor.MoveUp(ctx.Buffer)
	case key.KeyDown:
		ctx.Cursor.MoveDown(ctx.Buffer, ctx.ViewRows)
	case key.KeyLeft:
		ctx.Cursor.MoveLeft(ctx.Buffer)
	case key.KeyRight:
		ctx.Cursor.MoveRight(ctx.Buffer, ctx.ViewRows)
	default:
		return false
	}
	return true
}
