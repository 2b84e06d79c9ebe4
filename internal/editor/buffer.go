// Package editor holds the in-memory text buffer used while a file is open
// for editing.
package editor

import (
	"strings"

	"filescout/pkg/types"
)

// Buffer is a line-oriented edit buffer with a (row, col) cursor. Columns
// count runes, not bytes. A Buffer is owned by the interactive loop and is
// not safe for concurrent use.
type Buffer struct {
	lines [][]rune
	row   int
	col   int
}

// New returns a buffer holding content with the cursor at the origin.
func New(content string) *Buffer {
	b := &Buffer{}
	b.Load(content)
	return b
}

// Load replaces the buffer's content and moves the cursor to the origin.
func (b *Buffer) Load(content string) {
	parts := strings.Split(content, "\n")
	b.lines = make([][]rune, len(parts))
	for i, p := range parts {
		b.lines[i] = []rune(p)
	}
	b.row, b.col = 0, 0
}

// Reset empties the buffer.
func (b *Buffer) Reset() {
	b.Load("")
}

// Content joins the lines back together with newlines.
func (b *Buffer) Content() string {
	var sb strings.Builder
	for i, l := range b.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(l))
	}
	return sb.String()
}

// Lines returns the buffer's lines.
func (b *Buffer) Lines() []string {
	out := make([]string, len(b.lines))
	for i, l := range b.lines {
		out[i] = string(l)
	}
	return out
}

// LineCount is the number of lines, which is at least one.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// Cursor returns the cursor position.
func (b *Buffer) Cursor() (row, col int) {
	return b.row, b.col
}

// Insert puts r at the cursor and advances the cursor past it. A cursor
// beyond the last line appends to the buffer.
func (b *Buffer) Insert(r rune) {
	if b.row >= len(b.lines) {
		for len(b.lines) <= b.row {
			b.lines = append(b.lines, nil)
		}
		b.col = len(b.lines[b.row])
	}
	line := b.lines[b.row]
	if b.col > len(line) {
		b.col = len(line)
	}

	next := make([]rune, 0, len(line)+1)
	next = append(next, line[:b.col]...)
	next = append(next, r)
	next = append(next, line[b.col:]...)
	b.lines[b.row] = next
	b.col++
}

// InsertNewline splits the current line at the cursor and moves the cursor
// to the start of the new line.
func (b *Buffer) InsertNewline() {
	if b.row >= len(b.lines) {
		for len(b.lines) <= b.row {
			b.lines = append(b.lines, nil)
		}
		b.col = len(b.lines[b.row])
	}
	line := b.lines[b.row]
	if b.col > len(line) {
		b.col = len(line)
	}

	head := append([]rune(nil), line[:b.col]...)
	tail := append([]rune(nil), line[b.col:]...)

	lines := make([][]rune, 0, len(b.lines)+1)
	lines = append(lines, b.lines[:b.row]...)
	lines = append(lines, head, tail)
	lines = append(lines, b.lines[b.row+1:]...)
	b.lines = lines
	b.row++
	b.col = 0
}

// DeleteBeforeCursor removes the rune left of the cursor. At the start of a
// line other than the first, the line is joined onto the previous one.
func (b *Buffer) DeleteBeforeCursor() {
	if b.row >= len(b.lines) {
		return
	}
	line := b.lines[b.row]
	if b.col > len(line) {
		b.col = len(line)
	}

	if b.col > 0 {
		next := make([]rune, 0, len(line)-1)
		next = append(next, line[:b.col-1]...)
		next = append(next, line[b.col:]...)
		b.lines[b.row] = next
		b.col--
		return
	}
	if b.row == 0 {
		return
	}

	prev := b.lines[b.row-1]
	joined := make([]rune, 0, len(prev)+len(line))
	joined = append(joined, prev...)
	joined = append(joined, line...)

	b.lines[b.row-1] = joined
	b.lines = append(b.lines[:b.row], b.lines[b.row+1:]...)
	b.row--
	b.col = len(prev)
}

// Move shifts the cursor one step. Horizontal moves wrap across line
// boundaries; vertical moves clamp the column to the destination line.
func (b *Buffer) Move(dir types.Direction) {
	if len(b.lines) == 0 {
		return
	}
	switch dir {
	case types.Up:
		if b.row > 0 {
			b.row--
		}
		b.clampCol()
	case types.Down:
		if b.row < len(b.lines)-1 {
			b.row++
		}
		b.clampCol()
	case types.Left:
		if b.col > 0 {
			b.col--
		} else if b.row > 0 {
			b.row--
			b.col = len(b.lines[b.row])
		}
	case types.Right:
		if b.col < len(b.lines[b.row]) {
			b.col++
		} else if b.row < len(b.lines)-1 {
			b.row++
			b.col = 0
		}
	}
}

func (b *Buffer) clampCol() {
	if n := len(b.lines[b.row]); b.col > n {
		b.col = n
	}
}
