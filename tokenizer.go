package htmlfmt

import (
	"fmt"
	"strings"
	"unicode"
)

// Tokenize runs a fresh Tokenizer over template. Diagnostics describe
// malformed input that was recovered from; err is only set when
// tokenization could not continue.
func Tokenize(template string) (Tokens, []Diagnostic, error) {
	t := NewTokenizer(template)
	if err := t.Run(); err != nil {
		return nil, t.Diagnostics(), err
	}
	return t.Tokens(), t.Diagnostics(), nil
}

// NewTokenizer returns a Tokenizer in the BeforeData state; call Run to
// tokenize template.
func NewTokenizer(template string) *Tokenizer {
	return &Tokenizer{cursor: NewCursor(template), state: beforeData}
}

type Tokenizer struct {
	cursor *Cursor
	state  state

	// current is the token under construction, nil between tokens.
	current   *tokenBuilder
	attribute *attributeBuilder
	// tagStart is the position of the last '<' seen.
	tagStart Position

	tokens      Tokens
	diagnostics []Diagnostic
}

type attributeBuilder struct {
	name  strings.Builder
	value strings.Builder
}

type tokenBuilder struct {
	kind        Kind
	start       Position
	name        strings.Builder
	text        strings.Builder
	attributes  []Attribute
	selfClosing bool
}

// Run steps the state machine until the input is exhausted.
func (t *Tokenizer) Run() error {
	for !t.cursor.AtEnd() {
		if err := t.step(); err != nil {
			return fmt.Errorf("tokenizer in %s state at %s: %w", t.state, t.cursor.Position(), err)
		}
	}
	t.flush()
	return nil
}

func (t *Tokenizer) Tokens() Tokens {
	return t.tokens
}

func (t *Tokenizer) Diagnostics() []Diagnostic {
	return t.diagnostics
}

// flush settles the token left open by the end of input. Text is kept,
// an unterminated tag is reported and dropped.
func (t *Tokenizer) flush() {
	switch t.state {
	case tagOpen:
		t.notATag("<", EOFBeforeTagName)
	case endTagOpen:
		t.notATag("</", EOFBeforeTagName)
	}
	if t.current == nil {
		return
	}
	if t.current.kind == KindText {
		t.finishText()
		return
	}
	t.report(EOFInTag)
	t.current = nil
	t.attribute = nil
}

func (t *Tokenizer) report(kind DiagnosticKind) {
	t.diagnostics = append(t.diagnostics, Diagnostic{Kind: kind, Position: t.cursor.Position()})
}

func (t *Tokenizer) transition(s state) {
	t.state = s
}

func (t *Tokenizer) beginText(start Position, prefix string) {
	t.current = &tokenBuilder{kind: KindText, start: start}
	t.current.text.WriteString(prefix)
}

func (t *Tokenizer) finishText() {
	if t.current == nil || t.current.kind != KindText {
		return
	}
	t.tokens = append(t.tokens, &Text{
		Value: t.current.text.String(),
		Span:  Span{Start: t.current.start, End: t.cursor.Position()},
	})
	t.current = nil
}

func (t *Tokenizer) beginTag(kind Kind) {
	t.current = &tokenBuilder{kind: kind, start: t.tagStart}
}

func (t *Tokenizer) finishTag() {
	if t.attribute != nil {
		t.finishAttribute()
	}
	if t.current == nil {
		return
	}
	span := Span{Start: t.current.start, End: t.cursor.Position()}
	switch t.current.kind {
	case KindStartTag:
		t.tokens = append(t.tokens, &StartTag{
			Name:        t.current.name.String(),
			Attributes:  t.current.attributes,
			SelfClosing: t.current.selfClosing,
			Span:        span,
		})
	case KindEndTag:
		t.tokens = append(t.tokens, &EndTag{
			Name: t.current.name.String(),
			Span: span,
		})
	}
	t.current = nil
}

func (t *Tokenizer) beginAttribute() {
	t.attribute = &attributeBuilder{}
}

func (t *Tokenizer) finishAttribute() {
	if t.attribute == nil || t.current == nil {
		return
	}
	if t.current.kind == KindEndTag {
		t.report(EndTagWithAttributes)
	} else {
		t.current.attributes = append(t.current.attributes, Attribute{
			Name:  t.attribute.name.String(),
			Value: t.attribute.value.String(),
		})
	}
	t.attribute = nil
}

// The append helpers copy the source bytes of the character just consumed,
// so invalid UTF-8 passes through unchanged.
func (t *Tokenizer) appendToAttributeName() {
	if t.attribute != nil {
		t.attribute.name.WriteString(t.cursor.Consumed())
	}
}

func (t *Tokenizer) appendToAttributeValue() {
	if t.attribute != nil {
		t.attribute.value.WriteString(t.cursor.Consumed())
	}
}

func (t *Tokenizer) appendToTagName() {
	t.current.name.WriteString(t.cursor.Consumed())
}

func (t *Tokenizer) markSelfClosing() {
	if t.current == nil {
		return
	}
	if t.current.kind == KindEndTag {
		t.report(EndTagWithTrailingSolidus)
		return
	}
	t.current.selfClosing = true
}

// openTag consumes the '<' that starts a tag and remembers where it was.
func (t *Tokenizer) openTag() error {
	t.tagStart = t.cursor.Position()
	if _, err := t.cursor.Consume(); err != nil {
		return err
	}
	t.transition(tagOpen)
	return nil
}

func (t *Tokenizer) beforeData() error {
	c, err := t.cursor.Peek()
	if err != nil {
		return err
	}
	if c == '<' {
		return t.openTag()
	}
	t.beginText(t.cursor.Position(), "")
	t.transition(characterData)
	return nil
}

func (t *Tokenizer) characterData() error {
	c, err := t.cursor.Peek()
	if err != nil {
		return err
	}
	if c == '<' {
		t.finishText()
		return t.openTag()
	}
	if _, err := t.cursor.Consume(); err != nil {
		return err
	}
	t.current.text.WriteString(t.cursor.Consumed())
	return nil
}

// notATag turns the already consumed markup prefix back into character
// data; the current character is re-read in the CharacterData state.
func (t *Tokenizer) notATag(prefix string, kind DiagnosticKind) {
	t.report(kind)
	t.beginText(t.tagStart, prefix)
	t.transition(characterData)
}

func (t *Tokenizer) tagOpen() error {
	c, err := t.cursor.Peek()
	if err != nil {
		return err
	}
	switch {
	case c == '/':
		_, err = t.cursor.Consume()
		t.transition(endTagOpen)
	case isLetter(c):
		_, err = t.cursor.Consume()
		t.beginTag(KindStartTag)
		t.appendToTagName()
		t.transition(tagName)
	default:
		t.notATag("<", InvalidFirstCharacterOfTagName)
	}
	return err
}

func (t *Tokenizer) endTagOpen() error {
	c, err := t.cursor.Peek()
	if err != nil {
		return err
	}
	if !isLetter(c) {
		t.notATag("</", InvalidFirstCharacterOfTagName)
		return nil
	}
	if _, err := t.cursor.Consume(); err != nil {
		return err
	}
	t.beginTag(KindEndTag)
	t.appendToTagName()
	t.transition(endTagName)
	return nil
}

// tagName serves both TagName and EndTagName; the builder knows which tag
// it is filling.
func (t *Tokenizer) tagName() error {
	c, err := t.cursor.Consume()
	if err != nil {
		return err
	}
	switch {
	case isWhitespace(c):
		t.transition(beforeAttributeName)
	case c == '/':
		t.transition(selfClosingStartTag)
	case c == '>':
		t.finishTag()
		t.transition(beforeData)
	default:
		t.appendToTagName()
	}
	return nil
}

func (t *Tokenizer) beforeAttributeName() error {
	c, err := t.cursor.Peek()
	if err != nil {
		return err
	}
	switch {
	case isWhitespace(c):
		_, err = t.cursor.Consume()
	case c == '/':
		// Consumed: SelfClosingStartTag hands anything but '>' back here.
		_, err = t.cursor.Consume()
		t.transition(selfClosingStartTag)
	case c == '>':
		_, err = t.cursor.Consume()
		t.finishTag()
		t.transition(beforeData)
	case c == '=':
		t.report(UnexpectedEqualsSignBeforeAttributeName)
		t.beginAttribute()
		_, err = t.cursor.Consume()
		t.appendToAttributeName()
		t.transition(attributeName)
	default:
		t.beginAttribute()
		t.transition(attributeName)
	}
	return err
}

func (t *Tokenizer) attributeName() error {
	c, err := t.cursor.Peek()
	if err != nil {
		return err
	}
	if c == '"' || c == '\'' || c == '<' {
		t.report(UnexpectedCharacterInAttributeName)
	}
	if _, err := t.cursor.Consume(); err != nil {
		return err
	}
	switch {
	case isWhitespace(c):
		t.transition(afterAttributeName)
	case c == '/':
		t.finishAttribute()
		t.transition(selfClosingStartTag)
	case c == '=':
		t.transition(beforeAttributeValue)
	case c == '>':
		t.finishAttribute()
		t.finishTag()
		t.transition(beforeData)
	default:
		t.appendToAttributeName()
	}
	return nil
}

func (t *Tokenizer) afterAttributeName() error {
	c, err := t.cursor.Peek()
	if err != nil {
		return err
	}
	switch {
	case isWhitespace(c):
		_, err = t.cursor.Consume()
	case c == '/':
		t.finishAttribute()
		_, err = t.cursor.Consume()
		t.transition(selfClosingStartTag)
	case c == '=':
		_, err = t.cursor.Consume()
		t.transition(beforeAttributeValue)
	case c == '>':
		t.finishAttribute()
		_, err = t.cursor.Consume()
		t.finishTag()
		t.transition(beforeData)
	default:
		// e.g. <input disabled name="q">
		t.finishAttribute()
		t.beginAttribute()
		_, err = t.cursor.Consume()
		t.appendToAttributeName()
		t.transition(attributeName)
	}
	return err
}

func (t *Tokenizer) beforeAttributeValue() error {
	c, err := t.cursor.Peek()
	if err != nil {
		return err
	}
	switch {
	case isWhitespace(c):
		_, err = t.cursor.Consume()
	case c == '"':
		_, err = t.cursor.Consume()
		t.transition(attrValueDoubleQuoted)
	case c == '\'':
		_, err = t.cursor.Consume()
		t.transition(attrValueSingleQuoted)
	case c == '>':
		t.finishAttribute()
		_, err = t.cursor.Consume()
		t.finishTag()
		t.transition(beforeData)
	default:
		_, err = t.cursor.Consume()
		t.appendToAttributeValue()
		t.transition(attrValueUnquoted)
	}
	return err
}

func (t *Tokenizer) attrValueQuoted(quote rune) error {
	c, err := t.cursor.Consume()
	if err != nil {
		return err
	}
	if c == quote {
		t.finishAttribute()
		t.transition(afterAttrValueQuoted)
		return nil
	}
	t.appendToAttributeValue()
	return nil
}

func (t *Tokenizer) attrValueUnquoted() error {
	c, err := t.cursor.Peek()
	if err != nil {
		return err
	}
	switch {
	case isWhitespace(c):
		t.finishAttribute()
		_, err = t.cursor.Consume()
		t.transition(beforeAttributeName)
	case c == '/':
		if _, err := t.cursor.Consume(); err != nil {
			return err
		}
		if next, err := t.cursor.Peek(); err == nil && next == '>' {
			t.finishAttribute()
			t.transition(selfClosingStartTag)
			return nil
		}
		// e.g. <a href=https://example.com>
		t.appendToAttributeValue()
	case c == '>':
		t.finishAttribute()
		_, err = t.cursor.Consume()
		t.finishTag()
		t.transition(beforeData)
	default:
		_, err = t.cursor.Consume()
		t.appendToAttributeValue()
	}
	return err
}

func (t *Tokenizer) afterAttrValueQuoted() error {
	c, err := t.cursor.Peek()
	if err != nil {
		return err
	}
	switch {
	case isWhitespace(c):
		_, err = t.cursor.Consume()
		t.transition(beforeAttributeName)
	case c == '/':
		_, err = t.cursor.Consume()
		t.transition(selfClosingStartTag)
	case c == '>':
		_, err = t.cursor.Consume()
		t.finishTag()
		t.transition(beforeData)
	default:
		t.transition(beforeAttributeName)
	}
	return err
}

func (t *Tokenizer) selfClosingStartTag() error {
	c, err := t.cursor.Peek()
	if err != nil {
		return err
	}
	if c != '>' {
		t.transition(beforeAttributeName)
		return nil
	}
	if _, err := t.cursor.Consume(); err != nil {
		return err
	}
	t.markSelfClosing()
	t.finishTag()
	t.transition(beforeData)
	return nil
}

func isLetter(r rune) bool {
	return unicode.IsLetter(r) && r < 128
}

// Whitespace is defined to be U+0009 TAB, U+000A LF, U+000C FF, U+000D CR, or U+0020 SPACE
func isWhitespace(r rune) bool {
	return r == '\u0009' || r == '\u000A' || r == '\u000C' || r == '\u000D' || r == ' '
}
