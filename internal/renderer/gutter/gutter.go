// Package gutter renders the line-number column drawn to the left of
// each text line.
package gutter

import (
	"github.com/dshills/keylite/internal/renderer/core"
)

// separator drawn between the line number and the text.
const separator = " │ "

// Gutter renders right-aligned 1-based line numbers followed by a
// separator.
type Gutter struct {
	numWidth int
	style    core.Style
}

// New creates a gutter. numWidth is the fixed width of the number
// column; values below 1 fall back to the default of 4.
func New(numWidth int, style core.Style) *Gutter {
	if numWidth < 1 {
		numWidth = 4
	}
	return &Gutter{numWidth: numWidth, style: style}
}

// Width returns the total gutter width in cells, separator included.
func (g *Gutter) Width() int {
	return g.numWidth + core.StringWidth(separator)
}

// RenderLine returns the gutter cells for the given buffer row.
func (g *Gutter) RenderLine(row int) []core.Cell {
	cells := make([]core.Cell, 0, g.Width())

	num := formatNumber(row + 1)
	if len(num) > g.numWidth {
		num = num[len(num)-g.numWidth:]
	}
	for i := 0; i < g.numWidth-len(num); i++ {
		cells = append(cells, core.Cell{Rune: ' ', Width: 1, Style: g.style})
	}
	for _, r := range num {
		cells = append(cells, core.Cell{Rune: r, Width: 1, Style: g.style})
	}
	for _, r := range separator {
		cells = append(cells, core.Cell{Rune: r, Width: 1, Style: g.style})
	}
	return cells
}

// formatNumber converts a non-negative number to a string without fmt.
func formatNumber(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}
