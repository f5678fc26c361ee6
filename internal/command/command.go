// Package command parses the colon-command vocabulary. Commands are
// exact-match tokens; anything unrecognized is OpInvalid. Parsing is a
// total function and never fails.
package command

// Op identifies a parsed command.
type Op int

const (
	// OpInvalid is any input outside the fixed vocabulary.
	OpInvalid Op = iota

	// OpSave writes the buffer to the session's file path ("w").
	OpSave

	// OpQuit ends the session ("q").
	OpQuit

	// OpSaveQuit saves, then ends the session ("wq").
	OpSaveQuit
)

// String returns the command token, or "invalid".
func (op Op) String() string {
	switch op {
	case OpSave:
		return "w"
	case OpQuit:
		return "q"
	case OpSaveQuit:
		return "wq"
	default:
		return "invalid"
	}
}

// Parse maps command-line text to an Op by exact match.
func Parse(text string) Op {
	switch text {
	case "w":
		return OpSave
	case "q":
		return OpQuit
	case "wq":
		return OpSaveQuit
	default:
		return OpInvalid
	}
}
