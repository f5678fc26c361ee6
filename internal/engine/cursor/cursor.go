// Package cursor tracks the edit position and the viewport scroll
// offset, and implements the movement operations over a line buffer.
// Every operation clamps at buffer boundaries instead of failing.
package cursor

import (
	"sync"
	"unicode/utf8"

	"github.com/dshills/keylite/internal/engine/buffer"
)

// Cursor is a (row, column) position plus the viewport scroll offset.
// Row is a zero-based line index. Column is a zero-based byte offset
// and may equal the line length (the end-of-line position). Scroll is
// the row drawn at the top of the text area and is kept within
// [row-visibleRows+1, row] so the cursor is always on screen.
type Cursor struct {
	mu     sync.RWMutex
	row    int
	col    int
	scroll int
}

// New creates a cursor at the origin with no scroll.
func New() *Cursor {
	return &Cursor{}
}

// Position returns the current (row, column).
func (c *Cursor) Position() (row, col int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.row, c.col
}

// Row returns the current row.
func (c *Cursor) Row() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.row
}

// Col returns the current column.
func (c *Cursor) Col() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.col
}

// Scroll returns the first visible row.
func (c *Cursor) Scroll() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.scroll
}

// Set places the cursor, clamping to valid buffer positions.
func (c *Cursor) Set(row, col int, buf *buffer.Buffer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if row < 0 {
		row = 0
	}
	if max := buf.LineCount() - 1; row > max {
		row = max
	}
	if col < 0 {
		col = 0
	}
	if max := buf.LineLen(row); col > max {
		col = max
	}
	c.row = row
	c.col = col
}

// MoveUp moves one row up, clamping the column to the new line length.
// Scrolls up when the cursor would leave the top of the viewport.
func (c *Cursor) MoveUp(buf *buffer.Buffer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.row == 0 {
		return
	}
	c.row--
	c.clampCol(buf)
	if c.row < c.scroll {
		c.scroll = c.row
	}
}

// MoveDown moves one row down, clamping the column to the new line
// length. Scrolls down to keep the cursor on the bottom edge of a
// viewport of visibleRows rows.
func (c *Cursor) MoveDown(buf *buffer.Buffer, visibleRows int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.row >= buf.LineCount()-1 {
		return
	}
	c.row++
	c.clampCol(buf)
	c.follow(visibleRows)
}

// MoveLeft moves one character left, wrapping to the end of the
// previous line at column zero.
func (c *Cursor) MoveLeft(buf *buffer.Buffer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.col > 0 {
		_, size := utf8.DecodeLastRuneInString(buf.Line(c.row)[:c.col])
		c.col -= size
		return
	}
	if c.row > 0 {
		c.row--
		c.col = buf.LineLen(c.row)
		if c.row < c.scroll {
			c.scroll = c.row
		}
	}
}

// MoveRight moves one character right, wrapping to the start of the
// next line at the end of a line.
func (c *Cursor) MoveRight(buf *buffer.Buffer, visibleRows int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if line := buf.Line(c.row); c.col < len(line) {
		_, size := utf8.DecodeRuneInString(line[c.col:])
		c.col += size
		return
	}
	if c.row < buf.LineCount()-1 {
		c.row++
		c.col = 0
		c.follow(visibleRows)
	}
}

// Apply places the cursor at an exact position produced by a buffer
// mutation, then re-follows the viewport.
func (c *Cursor) Apply(row, col, visibleRows int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.row = row
	c.col = col
	if c.row < c.scroll {
		c.scroll = c.row
	}
	c.follow(visibleRows)
}

// Follow recomputes the scroll offset so the cursor row lies within
// [scroll, scroll+visibleRows). Idempotent: repeated calls with an
// unchanged cursor leave the offset unchanged.
func (c *Cursor) Follow(visibleRows int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.row < c.scroll {
		c.scroll = c.row
	}
	c.follow(visibleRows)
}

// follow scrolls down if needed (must hold lock).
func (c *Cursor) follow(visibleRows int) {
	if visibleRows < 1 {
		visibleRows = 1
	}
	if c.row >= c.scroll+visibleRows {
		c.scroll = c.row - visibleRows + 1
	}
}

// clampCol limits the column to the current line length (must hold lock).
func (c *Cursor) clampCol(buf *buffer.Buffer) {
	if max := buf.LineLen(c.row); c.col > max {
		c.col = max
	}
}
