package gutter

import (
	"testing"

	"github.com/dshills/keylite/internal/renderer/core"
)

func cellsToString(cells []core.Cell) string {
	runes := make([]rune, 0, len(cells))
	for _, c := range cells {
		runes = append(runes, c.Rune)
	}
	return string(runes)
}

func TestWidth(t *testing.T) {
	g := New(4, core.DefaultStyle())
	if got := g.Width(); got != 7 {
		t.Errorf("Width() = %d, want 7", got)
	}
}

func TestRenderLineRightAligned(t *testing.T) {
	g := New(4, core.DefaultStyle())

	tests := []struct {
		row  int
		want string
	}{
		{0, "   1 │ "},
		{9, "  10 │ "},
		{99, " 100 │ "},
		{999, "1000 │ "},
	}

	for _, tt := range tests {
		if got := cellsToString(g.RenderLine(tt.row)); got != tt.want {
			t.Errorf("RenderLine(%d) = %q, want %q", tt.row, got, tt.want)
		}
	}
}

func TestRenderLineOverflowKeepsLowDigits(t *testing.T) {
	g := New(2, core.DefaultStyle())

	if got := cellsToString(g.RenderLine(999)); got != "00 │ " {
		t.Errorf("RenderLine(999) = %q, want %q", got, "00 │ ")
	}
}

func TestDefaultWidthFallback(t *testing.T) {
	g := New(0, core.DefaultStyle())
	if got := g.Width(); got != 7 {
		t.Errorf("Width() = %d, want 7", got)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0"},
		{7, "7"},
		{42, "42"},
		{1234, "1234"},
	}

	for _, tt := range tests {
		if got := formatNumber(tt.n); got != tt.want {
			t.Errorf("formatNumber(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
