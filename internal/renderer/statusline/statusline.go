// Package statusline renders the two-row status area at the bottom of
// the screen: a colored band and a text row with the mode name, the
// 1-based cursor position, and either the status notice or the command
// line being typed.
package statusline

import (
	"fmt"

	"github.com/dshills/keylite/internal/renderer/backend"
	"github.com/dshills/keylite/internal/renderer/core"
)

// StatusLine renders the bottom status rows.
type StatusLine struct {
	mode   string // display name, e.g. "NORMAL"
	line   int    // 1-based
	col    int    // 1-based
	notice string

	// Command line state. While active the text row shows the prompt
	// and the command being typed instead of the notice.
	commandActive bool
	command       string

	style core.Style
}

// New creates a status line drawn with the given style.
func New(style core.Style) *StatusLine {
	return &StatusLine{mode: "NORMAL", line: 1, col: 1, style: style}
}

// SetMode updates the displayed mode name.
func (s *StatusLine) SetMode(mode string) {
	s.mode = mode
}

// SetPosition updates the displayed cursor position (1-based).
func (s *StatusLine) SetPosition(line, col int) {
	s.line = line
	s.col = col
}

// SetNotice updates the transient status notice.
func (s *StatusLine) SetNotice(notice string) {
	s.notice = notice
}

// SetCommand switches the text row between notice display and command
// line display.
func (s *StatusLine) SetCommand(active bool, command string) {
	s.commandActive = active
	s.command = command
}

// Height returns the number of rows the status area occupies.
func (s *StatusLine) Height() int {
	return 2
}

// Render draws the status band and text row onto the bottom two rows.
// Returns the screen column where the terminal cursor belongs when the
// command line is active, or -1 otherwise.
func (s *StatusLine) Render(b backend.Backend, width, height int) int {
	if height < 2 {
		return -1
	}
	bandRow := height - 2
	textRow := height - 1

	blank := core.Cell{Rune: ' ', Width: 1, Style: s.style}
	b.Fill(core.ScreenRect{Left: 0, Top: bandRow, Right: width, Bottom: textRow}, blank)
	b.Fill(core.ScreenRect{Left: 0, Top: textRow, Right: width, Bottom: height}, blank)

	text := s.text()
	x := 0
	for _, r := range text {
		w := core.RuneWidth(r)
		if x+w > width {
			break
		}
		b.SetCell(x, textRow, core.Cell{Rune: r, Width: w, Style: s.style})
		x += w
	}

	if s.commandActive {
		return x
	}
	return -1
}

// text returns the content of the text row.
func (s *StatusLine) text() string {
	if s.commandActive {
		return ":" + s.command
	}
	out := fmt.Sprintf("-- %s -- %d:%d --", s.mode, s.line, s.col)
	if s.notice != "" {
		out += " " + s.notice
	}
	return out
}
