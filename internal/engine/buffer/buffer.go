package buffer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"unicode/utf8"
)

// Errors returned by buffer operations.
var (
	ErrRowOutOfRange = errors.New("row out of range")
	ErrColOutOfRange = errors.New("column out of range")
)

// Buffer holds the ordered sequence of text lines being edited.
// Rows are zero-based line indices. Columns are zero-based byte offsets
// within a line; a column equal to the line length addresses the
// end-of-line position.
type Buffer struct {
	mu       sync.RWMutex
	lines    []string
	modified bool
}

// New creates a buffer containing a single empty line.
func New() *Buffer {
	return &Buffer{lines: []string{""}}
}

// FromReader creates a buffer from newline-delimited text.
// A trailing newline on the final record does not produce an extra
// empty line; a source ending in a blank line does.
func FromReader(r io.Reader) (*Buffer, error) {
	var lines []string

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(lines) == 0 {
		lines = []string{""}
	}
	return &Buffer{lines: lines}, nil
}

// Load creates a buffer from the named file. A missing file yields a
// buffer with a single empty line; any other open or read failure is
// returned to the caller.
func Load(path string) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return New(), nil
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	b, err := FromReader(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return b, nil
}

// LineCount returns the number of lines. Always at least 1.
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lines)
}

// Line returns the text of a line, without a newline.
// Returns the empty string for out-of-range rows.
func (b *Buffer) Line(row int) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if row < 0 || row >= len(b.lines) {
		return ""
	}
	return b.lines[row]
}

// LineLen returns the byte length of a line, or 0 for out-of-range rows.
func (b *Buffer) LineLen(row int) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if row < 0 || row >= len(b.lines) {
		return 0
	}
	return len(b.lines[row])
}

// Lines returns a copy of all lines.
func (b *Buffer) Lines() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

// Text returns the full buffer content joined by newlines, with a
// trailing newline per line (the on-disk representation).
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var sb strings.Builder
	for _, line := range b.lines {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Modified reports whether the buffer has unsaved changes.
func (b *Buffer) Modified() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.modified
}

// InsertRune inserts r at byte offset col in line row and returns the
// column immediately after the inserted character.
func (b *Buffer) InsertRune(row, col int, r rune) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if row < 0 || row >= len(b.lines) {
		return col, ErrRowOutOfRange
	}
	line := b.lines[row]
	if col < 0 || col > len(line) {
		return col, ErrColOutOfRange
	}

	b.lines[row] = line[:col] + string(r) + line[col:]
	b.modified = true
	return col + utf8.RuneLen(r), nil
}

// SplitLine truncates line row at col and inserts a new line at row+1
// holding the remainder.
func (b *Buffer) SplitLine(row, col int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if row < 0 || row >= len(b.lines) {
		return ErrRowOutOfRange
	}
	line := b.lines[row]
	if col < 0 || col > len(line) {
		return ErrColOutOfRange
	}

	rest := line[col:]
	b.lines[row] = line[:col]
	b.lines = append(b.lines, "")
	copy(b.lines[row+2:], b.lines[row+1:])
	b.lines[row+1] = rest
	b.modified = true
	return nil
}

// DeleteRune removes the character ending at byte offset col in line
// row and returns the cursor position after the deletion:
//
//   - col > 0: the preceding character is removed and the returned
//     column points at its former start.
//   - col == 0 and row > 0: line row is joined onto the end of line
//     row-1; the returned position is the join point.
//   - row == 0 and col == 0: no-op.
func (b *Buffer) DeleteRune(row, col int) (newRow, newCol int, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if row < 0 || row >= len(b.lines) {
		return row, col, ErrRowOutOfRange
	}
	line := b.lines[row]
	if col < 0 || col > len(line) {
		return row, col, ErrColOutOfRange
	}

	if col > 0 {
		_, size := utf8.DecodeLastRuneInString(line[:col])
		b.lines[row] = line[:col-size] + line[col:]
		b.modified = true
		return row, col - size, nil
	}

	if row > 0 {
		prev := b.lines[row-1]
		b.lines[row-1] = prev + line
		b.lines = append(b.lines[:row], b.lines[row+1:]...)
		b.modified = true
		return row - 1, len(prev), nil
	}

	return 0, 0, nil
}

// Save writes every line, each terminated by a single newline, to the
// named file, creating or truncating it. A successful save clears the
// modified flag.
func (b *Buffer) Save(path string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}

	w := bufio.NewWriter(f)
	for _, line := range b.lines {
		if _, err := w.WriteString(line); err != nil {
			f.Close()
			return fmt.Errorf("save %s: %w", path, err)
		}
		if err := w.WriteByte('\n'); err != nil {
			f.Close()
			return fmt.Errorf("save %s: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}

	b.modified = false
	return nil
}
