package htmlfmt

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrEndOfInput is returned when a Cursor is read at or past the end of its input.
var ErrEndOfInput = errors.New("unexpected end of input")

// Position is a location in the input.
type Position struct {
	// Line is 1-based.
	Line int
	// Column is 0-based and resets after every newline.
	Column int
	// Offset is the byte offset into the input.
	Offset int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Cursor is a sequential, position-tracking reader over decoded characters.
type Cursor struct {
	input string
	pos   Position
	// last is the byte length of the most recently consumed character.
	last int
}

// NewCursor returns a Cursor at line 1, column 0 of input.
func NewCursor(input string) *Cursor {
	return &Cursor{input: input, pos: Position{Line: 1}}
}

func (c *Cursor) AtEnd() bool {
	return c.pos.Offset >= len(c.input)
}

func (c *Cursor) Position() Position {
	return c.pos
}

func (c *Cursor) Peek() (rune, error) {
	if c.AtEnd() {
		return 0, ErrEndOfInput
	}
	r, _ := utf8.DecodeRuneInString(c.input[c.pos.Offset:])
	return r, nil
}

func (c *Cursor) Consume() (rune, error) {
	if c.AtEnd() {
		return 0, ErrEndOfInput
	}
	r, size := utf8.DecodeRuneInString(c.input[c.pos.Offset:])
	c.pos.Offset += size
	c.last = size
	if r == '\n' {
		c.pos.Line++
		c.pos.Column = 0
	} else {
		c.pos.Column++
	}
	return r, nil
}

// Consumed returns the source bytes of the character returned by the last
// Consume, undecoded, so invalid UTF-8 survives a copy.
func (c *Cursor) Consumed() string {
	return c.input[c.pos.Offset-c.last : c.pos.Offset]
}
