package htmlfmt

import (
	"iter"
	"slices"
)

type Kind string

const (
	KindStartTag Kind = "START_TAG"
	KindEndTag   Kind = "END_TAG"
	KindText     Kind = "TEXT"
)

type Token interface {
	Kind() Kind
	Location() Span
}

// Span is the half-open source range a token occupied while it was built.
type Span struct {
	Start Position
	End   Position
}

type StartTag struct {
	Name string
	// Attributes keep source order. Duplicate names are preserved.
	Attributes  []Attribute
	SelfClosing bool
	Span
}

func (t *StartTag) Kind() Kind {
	return KindStartTag
}

func (t *StartTag) Location() Span {
	return t.Span
}

type EndTag struct {
	Name string
	Span
}

func (t *EndTag) Kind() Kind {
	return KindEndTag
}

func (t *EndTag) Location() Span {
	return t.Span
}

// Text is a run of character data between tags.
type Text struct {
	Value string
	Span
}

func (t *Text) Kind() Kind {
	return KindText
}

func (t *Text) Location() Span {
	return t.Span
}

type Attribute struct {
	Name  string
	Value string
}

// Tokens is a finalized token sequence in document order.
type Tokens []Token

func (ts Tokens) All() iter.Seq[Token] {
	return slices.Values(ts)
}
