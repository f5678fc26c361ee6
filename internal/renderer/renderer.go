// Package renderer draws the editor screen: numbered text lines in the
// top region and a two-row status area at the bottom. One call to
// Render produces one complete frame.
package renderer

import (
	"github.com/dshills/keylite/internal/engine/buffer"
	"github.com/dshills/keylite/internal/engine/cursor"
	"github.com/dshills/keylite/internal/renderer/backend"
	"github.com/dshills/keylite/internal/renderer/core"
	"github.com/dshills/keylite/internal/renderer/gutter"
	"github.com/dshills/keylite/internal/renderer/statusline"
)

// truncationMarker is drawn in place of text that does not fit.
const truncationMarker = "..."

// statusRows is the height of the status area.
const statusRows = 2

// Styles groups the styles used to draw a frame.
type Styles struct {
	Text   core.Style
	Gutter core.Style
	Status core.Style
}

// DefaultStyles returns the built-in color scheme.
func DefaultStyles() Styles {
	return Styles{
		Text:   core.DefaultStyle(),
		Gutter: core.DefaultStyle().WithForeground(core.ColorLightBlue),
		Status: core.DefaultStyle().WithForeground(core.ColorWhite).WithBackground(core.ColorBlue),
	}
}

// View is everything the renderer needs for one frame.
type View struct {
	Buffer *buffer.Buffer
	Cursor *cursor.Cursor

	// Mode is the display name shown in the status line.
	Mode   string
	Notice string

	// Command line state. While active the status text row shows the
	// command being typed and owns the terminal cursor.
	CommandActive bool
	Command       string
}

// Renderer draws frames onto a backend.
type Renderer struct {
	backend backend.Backend
	gutter  *gutter.Gutter
	status  *statusline.StatusLine
	styles  Styles
}

// New creates a renderer. gutterWidth is the width of the line-number
// column; values below 1 use the default.
func New(b backend.Backend, styles Styles, gutterWidth int) *Renderer {
	return &Renderer{
		backend: b,
		gutter:  gutter.New(gutterWidth, styles.Gutter),
		status:  statusline.New(styles.Status),
		styles:  styles,
	}
}

// VisibleRows returns how many buffer lines fit above the status area.
// Never less than 1.
func (r *Renderer) VisibleRows() int {
	_, height := r.backend.Size()
	rows := height - statusRows
	if rows < 1 {
		rows = 1
	}
	return rows
}

// Render draws one complete frame and flushes it.
func (r *Renderer) Render(v View) {
	width, height := r.backend.Size()
	r.backend.Clear()

	scroll := v.Cursor.Scroll()
	visible := height - statusRows
	for y := 0; y < visible; y++ {
		row := scroll + y
		if row >= v.Buffer.LineCount() {
			break
		}
		r.renderLine(y, row, v.Buffer.Line(row), width)
	}

	r.status.SetMode(v.Mode)
	r.status.SetPosition(v.Cursor.Row()+1, v.Cursor.Col()+1)
	r.status.SetNotice(v.Notice)
	r.status.SetCommand(v.CommandActive, v.Command)
	cmdCursor := r.status.Render(r.backend, width, height)

	if cmdCursor >= 0 {
		r.backend.ShowCursor(cmdCursor, height-1)
	} else {
		r.backend.ShowCursor(r.cursorScreen(v))
	}

	r.backend.Show()
}

// renderLine draws one buffer line with its gutter at screen row y,
// truncating with a marker when the text is wider than the screen.
func (r *Renderer) renderLine(y, row int, line string, width int) {
	x := 0
	for _, cell := range r.gutter.RenderLine(row) {
		r.backend.SetCell(x, y, cell)
		x += cell.Width
	}

	contentWidth := width - x
	if contentWidth <= 0 {
		return
	}

	if core.StringWidth(line) <= contentWidth {
		for _, rn := range line {
			w := core.RuneWidth(rn)
			r.backend.SetCell(x, y, core.Cell{Rune: rn, Width: w, Style: r.styles.Text})
			x += w
		}
		return
	}

	markerWidth := core.StringWidth(truncationMarker)
	limit := contentWidth - markerWidth
	for _, rn := range line {
		w := core.RuneWidth(rn)
		if x-r.gutter.Width()+w > limit {
			break
		}
		r.backend.SetCell(x, y, core.Cell{Rune: rn, Width: w, Style: r.styles.Text})
		x += w
	}
	for _, rn := range truncationMarker {
		if x >= width {
			break
		}
		r.backend.SetCell(x, y, core.Cell{Rune: rn, Width: 1, Style: r.styles.Text})
		x++
	}
}

// cursorScreen maps the buffer cursor to screen coordinates. The column
// accounts for the display width of the text left of the cursor.
func (r *Renderer) cursorScreen(v View) (int, int) {
	row, col := v.Cursor.Position()

	line := v.Buffer.Line(row)
	if col > len(line) {
		col = len(line)
	}
	x := r.gutter.Width() + core.StringWidth(line[:col])
	y := row - v.Cursor.Scroll()
	return x, y
}
