// Package core provides shared types for the renderer subsystem.
// This package breaks import cycles between the renderer and its
// backends.
package core

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// Attribute represents text attributes.
type Attribute uint8

// Text attribute flags.
const (
	AttrNone    Attribute = 0
	AttrBold    Attribute = 1 << iota
	AttrReverse           // Reverse video (swap fg/bg)
)

// Has returns true if the attribute set contains the given attribute.
func (a Attribute) Has(attr Attribute) bool {
	return a&attr != 0
}

// Color represents a true (RGB) color or the terminal default.
type Color struct {
	R, G, B uint8
	// Default indicates the terminal's default color.
	Default bool
}

// ColorDefault is the terminal's default color.
var ColorDefault = Color{Default: true}

// Common colors.
var (
	ColorBlack     = Color{R: 0, G: 0, B: 0}
	ColorWhite     = Color{R: 255, G: 255, B: 255}
	ColorBlue      = Color{R: 0, G: 0, B: 255}
	ColorLightBlue = Color{R: 128, G: 160, B: 255}
)

// ColorFromHex parses a hex color string such as "#1e90ff".
func ColorFromHex(hex string) (Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b}, nil
}

// IsDefault returns true if this is the terminal default color.
func (c Color) IsDefault() bool {
	return c.Default
}

// Hex returns the color as "#RRGGBB", or "" for the default color.
func (c Color) Hex() string {
	if c.Default {
		return ""
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Style describes how a cell is drawn.
type Style struct {
	Foreground Color
	Background Color
	Attributes Attribute
}

// DefaultStyle returns a style using the terminal's default colors.
func DefaultStyle() Style {
	return Style{Foreground: ColorDefault, Background: ColorDefault}
}

// WithForeground returns a copy with the foreground set.
func (s Style) WithForeground(c Color) Style {
	s.Foreground = c
	return s
}

// WithBackground returns a copy with the background set.
func (s Style) WithBackground(c Color) Style {
	s.Background = c
	return s
}

// Bold returns a copy with the bold attribute set.
func (s Style) Bold() Style {
	s.Attributes |= AttrBold
	return s
}

// Cell is a single screen cell.
type Cell struct {
	Rune  rune
	Width int
	Style Style
}

// EmptyCell returns a blank cell in the default style.
func EmptyCell() Cell {
	return Cell{Rune: ' ', Width: 1, Style: DefaultStyle()}
}

// ScreenRect is a half-open rectangle of screen cells.
type ScreenRect struct {
	Left, Top     int
	Right, Bottom int
}

// StringWidth returns the display width of s in terminal cells,
// counting grapheme clusters.
func StringWidth(s string) int {
	return uniseg.StringWidth(s)
}

// RuneWidth returns the display width of a single rune.
func RuneWidth(r rune) int {
	return uniseg.StringWidth(string(r))
}
