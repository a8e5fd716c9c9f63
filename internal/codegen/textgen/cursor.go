// Package textgen is a small hierarchical text emitter used by the schema
// generators.
//
// A [Cursor] assembles text and tracks indentation and line state. A [Block]
// is a tree of cursors tagged with a [Kind] so that previously written regions
// can be located again, and a [Generator] is the push/pop builder over that
// tree. Rendering collapses blank lines according to each block's
// [NewLineKind].
package textgen

import (
	"fmt"
	"strings"
)

// DefaultIndentation is the number of columns added by a bare Indent call.
const DefaultIndentation = 4

// Cursor assembles text into a buffer while tracking the current indentation
// and whether the next write begins a line.
type Cursor struct {
	sb strings.Builder

	indentation  int
	startOfLine  bool
	needsNewLine bool
}

// NewCursor returns an empty cursor positioned at the start of a line.
func NewCursor() *Cursor {
	return &Cursor{startOfLine: true}
}

// Clone returns a copy of the cursor, buffer included.
func (c *Cursor) Clone() *Cursor {
	out := &Cursor{
		indentation:  c.indentation,
		startOfLine:  c.startOfLine,
		needsNewLine: c.needsNewLine,
	}
	out.sb.WriteString(c.sb.String())
	return out
}

// Write appends text. With args, format is passed through fmt.Sprintf first.
// Indentation is emitted in front of every non-blank line that starts at
// the beginning of a line.
func (c *Cursor) Write(format string, args ...any) {
	if format == "" {
		return
	}
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}

	for _, line := range strings.SplitAfter(msg, "\n") {
		if line == "" {
			continue
		}
		if c.startOfLine && strings.TrimSpace(line) != "" {
			c.sb.WriteString(strings.Repeat(" ", c.indentation))
		}
		c.startOfLine = strings.HasSuffix(line, "\n")
		c.sb.WriteString(line)
	}
}

// WriteLine writes the text followed by a newline.
func (c *Cursor) WriteLine(format string, args ...any) {
	c.Write(format, args...)
	c.NewLine()
}

// WriteLineIndent writes a single line one indentation level deeper.
func (c *Cursor) WriteLineIndent(format string, args ...any) {
	c.Indent(DefaultIndentation)
	c.WriteLine(format, args...)
	c.Unindent()
}

func (c *Cursor) NewLine() {
	c.sb.WriteByte('\n')
	c.startOfLine = true
}

// NewLineIfNeeded emits a newline if one was requested with NeedNewLine.
func (c *Cursor) NewLineIfNeeded() {
	if !c.needsNewLine {
		return
	}
	c.NewLine()
	c.needsNewLine = false
}

func (c *Cursor) NeedNewLine()  { c.needsNewLine = true }
func (c *Cursor) ResetNewLine() { c.needsNewLine = false }

func (c *Cursor) NeedsNewLine() bool  { return c.needsNewLine }
func (c *Cursor) IsStartOfLine() bool { return c.startOfLine }
func (c *Cursor) Indentation() int    { return c.indentation }

func (c *Cursor) Indent(columns int) {
	c.indentation += columns
}

// Unindent removes one default indentation level. It never goes below zero.
func (c *Cursor) Unindent() {
	c.indentation = max(c.indentation-DefaultIndentation, 0)
}

func (c *Cursor) WriteOpenBraceAndIndent() {
	c.WriteLine("{")
	c.Indent(DefaultIndentation)
}

func (c *Cursor) UnindentAndWriteCloseBrace() {
	c.Unindent()
	c.WriteLine("}")
}

// Len reports the number of buffered bytes.
func (c *Cursor) Len() int { return c.sb.Len() }

// Reset clears the buffer. Indentation and line state are kept.
func (c *Cursor) Reset() { c.sb.Reset() }

func (c *Cursor) String() string { return c.sb.String() }
