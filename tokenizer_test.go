package htmlfmt

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	template := `<div id="con" data-count='data1-23' a13="abc" aaa="" data-13='true'> 5 < 5 </div>`

	tokens, diagnostics, err := Tokenize(template)
	require.NoError(t, err)
	require.Len(t, tokens, 4)

	for token := range tokens.All() {
		switch token := token.(type) {
		case *StartTag:
			assert.Equal(t, "div", token.Name)
			assert.Equal(t, []Attribute{
				{"id", "con"},
				{"data-count", "data1-23"},
				{"a13", "abc"},
				{"aaa", ""},
				{"data-13", "true"},
			}, token.Attributes)
		case *EndTag:
			assert.Equal(t, "div", token.Name)
		}
	}

	assert.Equal(t, " 5 ", tokens[1].(*Text).Value)
	assert.Equal(t, "< 5 ", tokens[2].(*Text).Value)
	require.Len(t, diagnostics, 1)
	assert.Equal(t, InvalidFirstCharacterOfTagName, diagnostics[0].Kind)
}

func TestTokenizeUnquotedValue(t *testing.T) {
	tokens, diagnostics, err := Tokenize(`<a href=https://example.com>text</a>`)
	require.NoError(t, err)
	assert.Empty(t, diagnostics)
	require.Len(t, tokens, 3)

	tag := tokens[0].(*StartTag)
	assert.Equal(t, "a", tag.Name)
	assert.Equal(t, []Attribute{{Name: "href", Value: "https://example.com"}}, tag.Attributes)
	assert.False(t, tag.SelfClosing)
	assert.Equal(t, "text", tokens[1].(*Text).Value)
	assert.Equal(t, "a", tokens[2].(*EndTag).Name)
}

func TestTokenizeSpans(t *testing.T) {
	tokens, _, err := Tokenize("<p>hi</p>\n<br>")
	require.NoError(t, err)
	require.Len(t, tokens, 5)

	assert.Equal(t, Span{Position{1, 0, 0}, Position{1, 3, 3}}, tokens[0].Location())
	assert.Equal(t, Span{Position{1, 3, 3}, Position{1, 5, 5}}, tokens[1].Location())
	assert.Equal(t, Span{Position{1, 5, 5}, Position{1, 9, 9}}, tokens[2].Location())
	assert.Equal(t, Span{Position{1, 9, 9}, Position{2, 0, 10}}, tokens[3].Location())
	assert.Equal(t, Span{Position{2, 0, 10}, Position{2, 4, 14}}, tokens[4].Location())
}

func TestTokenizeDiagnostics(t *testing.T) {
	for _, test := range []struct {
		input      string
		attributes []Attribute
		kind       DiagnosticKind
		position   Position
	}{
		{`<div =foo>`, []Attribute{{"=foo", ""}}, UnexpectedEqualsSignBeforeAttributeName, Position{1, 5, 5}},
		{`<div a"b=1>`, []Attribute{{`a"b`, "1"}}, UnexpectedCharacterInAttributeName, Position{1, 6, 6}},
		{`<div a<b>`, []Attribute{{"a<b", ""}}, UnexpectedCharacterInAttributeName, Position{1, 6, 6}},
	} {
		t.Run(test.input, func(t *testing.T) {
			tokens, diagnostics, err := Tokenize(test.input)
			require.NoError(t, err)
			require.Len(t, tokens, 1)

			tag := tokens[0].(*StartTag)
			assert.Equal(t, "div", tag.Name)
			assert.Equal(t, test.attributes, tag.Attributes)

			require.Len(t, diagnostics, 1)
			assert.Equal(t, test.kind, diagnostics[0].Kind)
			assert.Equal(t, test.position, diagnostics[0].Position)
		})
	}
}

func TestTokenizeSelfClosing(t *testing.T) {
	for input, want := range map[string]StartTag{
		`<br/>`:          {Name: "br", SelfClosing: true},
		`<br />`:         {Name: "br", SelfClosing: true},
		`<img src=x/>`:   {Name: "img", Attributes: []Attribute{{"src", "x"}}, SelfClosing: true},
		`<img src=a/b>`:  {Name: "img", Attributes: []Attribute{{"src", "a/b"}}},
		`<img alt="" />`: {Name: "img", Attributes: []Attribute{{"alt", ""}}, SelfClosing: true},
		`<input hidden/>`: {Name: "input", Attributes: []Attribute{{"hidden", ""}}, SelfClosing: true},
	} {
		t.Run(input, func(t *testing.T) {
			tokens, diagnostics, err := Tokenize(input)
			require.NoError(t, err)
			assert.Empty(t, diagnostics)
			require.Len(t, tokens, 1)

			tag := tokens[0].(*StartTag)
			assert.Equal(t, want.Name, tag.Name)
			assert.Equal(t, want.Attributes, tag.Attributes)
			assert.Equal(t, want.SelfClosing, tag.SelfClosing)
		})
	}
}

func TestTokenizeAttributes(t *testing.T) {
	tokens, _, err := Tokenize(`<input disabled name="q" a=1 a=2 data-x='say "hi"' value = 'v'>`)
	require.NoError(t, err)
	require.Len(t, tokens, 1)

	assert.Equal(t, []Attribute{
		{"disabled", ""},
		{"name", "q"},
		{"a", "1"},
		{"a", "2"},
		{"data-x", `say "hi"`},
		{"value", "v"},
	}, tokens[0].(*StartTag).Attributes)
}

func TestTokenizeEndTag(t *testing.T) {
	tokens, diagnostics, err := Tokenize(`</div class="x"></span/>`)
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, "div", tokens[0].(*EndTag).Name)
	assert.Equal(t, "span", tokens[1].(*EndTag).Name)

	require.Len(t, diagnostics, 2)
	assert.Equal(t, EndTagWithAttributes, diagnostics[0].Kind)
	assert.Equal(t, EndTagWithTrailingSolidus, diagnostics[1].Kind)
}

func TestTokenizeEndOfInput(t *testing.T) {
	tokens, diagnostics, err := Tokenize("<p>x</p>\ntail")
	require.NoError(t, err)
	require.Len(t, tokens, 4)
	assert.Equal(t, "\ntail", tokens[3].(*Text).Value)
	assert.Empty(t, diagnostics)

	tokens, diagnostics, err = Tokenize(`<p>x</p><div class="x`)
	require.NoError(t, err)
	assert.Len(t, tokens, 3)
	require.Len(t, diagnostics, 1)
	assert.Equal(t, EOFInTag, diagnostics[0].Kind)

	tokens, diagnostics, err = Tokenize("")
	require.NoError(t, err)
	assert.Empty(t, tokens)
	assert.Empty(t, diagnostics)
}

func TestTokenizeEndOfInputAfterOpenBracket(t *testing.T) {
	for input, want := range map[string]string{
		"<p>a</p>b<":  "<",
		"<p>a</p></":  "</",
		"<p>a</p>b <": "<",
	} {
		t.Run(input, func(t *testing.T) {
			tokens, diagnostics, err := Tokenize(input)
			require.NoError(t, err)
			require.Len(t, diagnostics, 1)
			assert.Equal(t, EOFBeforeTagName, diagnostics[0].Kind)

			last := tokens[len(tokens)-1].(*Text)
			assert.Equal(t, want, last.Value)
			assert.Equal(t, len(input)-len(want), last.Span.Start.Offset)
			assert.Equal(t, len(input), last.Span.End.Offset)
		})
	}
}

func TestTokenizeInvalidUTF8(t *testing.T) {
	tokens, _, err := Tokenize("<p title=\"caf\xe9\" x\xff=\xfe>caf\xe9</p\xe9>")
	require.NoError(t, err)
	require.Len(t, tokens, 3)

	assert.Equal(t, []Attribute{
		{"title", "caf\xe9"},
		{"x\xff", "\xfe"},
	}, tokens[0].(*StartTag).Attributes)
	assert.Equal(t, "caf\xe9", tokens[1].(*Text).Value)
	assert.Equal(t, "p\xe9", tokens[2].(*EndTag).Name)
}

func TestTokenizeLongAttributeAllocations(t *testing.T) {
	value := strings.Repeat("x", 100_000)
	input := `<img src="data:` + value + `" alt=` + value + `>`

	allocs := testing.AllocsPerRun(2, func() {
		tokens, _, err := Tokenize(input)
		if err != nil || len(tokens) != 1 {
			t.Fatalf("got %v, %v", tokens, err)
		}
	})
	// Amortized growth keeps this logarithmic in the value length.
	assert.Less(t, allocs, float64(200))
}

func BenchmarkTokenizeAttribute(b *testing.B) {
	input := `<img src="` + strings.Repeat("x", 100_000) + `">`
	b.SetBytes(int64(len(input)))
	for b.Loop() {
		if _, _, err := Tokenize(input); err != nil {
			b.Fatal(err)
		}
	}
}

func TestTokenizeNotATag(t *testing.T) {
	tokens, diagnostics, err := Tokenize("a < b</ c")
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	assert.Equal(t, "a ", tokens[0].(*Text).Value)
	assert.Equal(t, "< b", tokens[1].(*Text).Value)
	assert.Equal(t, "</ c", tokens[2].(*Text).Value)
	assert.Equal(t, Position{1, 2, 2}, tokens[1].Location().Start)
	assert.Len(t, diagnostics, 2)
}

func TestDiagnosticError(t *testing.T) {
	d := Diagnostic{Kind: UnexpectedEqualsSignBeforeAttributeName, Position: Position{Line: 3, Column: 4}}
	assert.Equal(t, "3:4: syntax error: attribute name can't start with equals sign", d.Error())
	assert.Equal(t, "DiagnosticKind(42)", DiagnosticKind(42).String())
}

func TestStateNames(t *testing.T) {
	assert.Equal(t, "SelfClosingStartTag", selfClosingStartTag.String())
	assert.Equal(t, "state(99)", fmt.Sprint(state(99)))
}
