// Package buffer implements the in-memory line buffer that holds the
// document being edited. The buffer owns the ordered sequence of text
// lines and performs all content mutation: character insert and delete,
// line split and join, and file load/save.
//
// A buffer is never empty. A freshly created buffer holds exactly one
// empty line, and deleting the last line joins instead of removing.
// Columns are byte offsets into a line; a column equal to the line
// length is the valid end-of-line position.
//
// All methods are safe for concurrent use, matching the rest of the
// engine packages.
package buffer
