package key

import (
	"fmt"
	"unicode"
)

// Event represents a single key press.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier
}

// NewRuneEvent creates an event for a character key.
func NewRuneEvent(r rune) Event {
	return Event{Key: KeyRune, Rune: r}
}

// NewSpecialEvent creates an event for a non-character key.
func NewSpecialEvent(k Key) Event {
	return Event{Key: k}
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsChar returns true if this is an unmodified printable character.
// Shift alone does not count as a modifier for character keys since it
// changes the character itself.
func (e Event) IsChar() bool {
	if !e.IsRune() || !unicode.IsPrint(e.Rune) {
		return false
	}
	return e.Modifiers&(ModCtrl|ModAlt|ModMeta) == 0
}

// IsEscape returns true if this is the Escape key with no modifiers.
func (e Event) IsEscape() bool {
	return e.Key == KeyEscape && e.Modifiers == ModNone
}

// IsEnter returns true if this is the Enter key with no modifiers.
func (e Event) IsEnter() bool {
	return e.Key == KeyEnter && e.Modifiers == ModNone
}

// IsBackspace returns true if this is Backspace with no modifiers.
func (e Event) IsBackspace() bool {
	return e.Key == KeyBackspace && e.Modifiers == ModNone
}

// String returns a canonical representation, e.g. "a", "C-s", "Enter".
func (e Event) String() string {
	var prefix string
	if e.Modifiers.Has(ModCtrl) {
		prefix += "C-"
	}
	if e.Modifiers.Has(ModAlt) {
		prefix += "A-"
	}
	if e.Modifiers.Has(ModMeta) {
		prefix += "M-"
	}
	if e.Modifiers.Has(ModShift) && e.Key != KeyRune {
		prefix += "S-"
	}

	if e.Key == KeyRune {
		if e.Rune == ' ' {
			return prefix + "Space"
		}
		return prefix + string(e.Rune)
	}
	return prefix + e.Key.String()
}

// GoString implements fmt.GoStringer for debugging.
func (e Event) GoString() string {
	return fmt.Sprintf("Event{Key: %s, Rune: %q, Modifiers: %d}", e.Key, e.Rune, e.Modifiers)
}
