package mode

import (
	"github.com/dshills/keylite/internal/input/key"
)

// InsertMode is the text-entry mode.
type InsertMode struct{}

// NewInsertMode creates an insert mode instance.
func NewInsertMode() *InsertMode {
	return &InsertMode{}
}

// Name returns the mode identifier.
func (m *InsertMode) Name() string { return ModeInsert }

// DisplayName returns the status-line name.
func (m *InsertMode) DisplayName() string { return "INSERT" }

// Enter is called when entering insert mode.
func (m *InsertMode) Enter(ctx *Context) {}

// Exit is called when leaving insert mode.
func (m *InsertMode) Exit(ctx *Context) {}

// HandleKey processes a key in insert mode:
//
//	Escape     back to normal mode
//	Enter      split the current line at the cursor
//	printable  insert at the cursor
//	Backspace  delete before the cursor, joining lines at column zero
//	arrows     move the cursor
func (m *InsertMode) HandleKey(ev key.Event, ctx *Context) Result {
	if moveCursor(ev, ctx) {
		return Result{}
	}

	switch {
	case ev.IsEscape():
		return Result{SwitchTo: ModeNormal}

	case ev.IsEnter():
		row, col := ctx.Cursor.Position()
		if err := ctx.Buffer.SplitLine(row, col); err == nil {
			ctx.Cursor.Apply(row+1, 0, ctx.ViewRows)
		}

	case ev.IsBackspace():
		row, col := ctx.Cursor.Position()
		newRow, newCol, err := ctx.Buffer.DeleteRune(row, col)
		if err == nil {
			ctx.Cursor.Apply(newRow, newCol, ctx.ViewRows)
		}

	case ev.IsChar():
		row, col := ctx.Cursor.Position()
		newCol, err := ctx.Buffer.InsertRune(row, col, ev.Rune)
		if err == nil {
			ctx.Cursor.Apply(row, newCol, ctx.ViewRows)
		}
	}

	return Result{}
}
