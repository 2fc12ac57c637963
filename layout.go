package htmlfmt

import (
	"strings"
	"unicode/utf8"
)

// Format renders tokens one per line, indented by nesting depth.
func Format(tokens Tokens, config LayoutConfig) string {
	l := layout{config: config, unit: config.indent()}
	for _, token := range tokens {
		l.token(token)
	}
	return l.out.String()
}

type layout struct {
	config LayoutConfig
	unit   string
	out    strings.Builder
	// depth may go negative on unbalanced input; it is clamped only when
	// rendered.
	depth int
}

func (l *layout) token(token Token) {
	switch token := token.(type) {
	case *StartTag:
		l.startTag(token)
		l.depth++
	case *EndTag:
		l.depth--
		l.line(l.depth, "</"+token.Name+">")
	case *Text:
		if text := strings.TrimFunc(token.Value, isWhitespace); text != "" {
			l.line(l.depth, text)
		}
	}
}

func (l *layout) startTag(tag *StartTag) {
	l.indent(l.depth)
	l.out.WriteString("<")
	l.out.WriteString(tag.Name)

	if len(tag.Attributes) > 0 {
		attributes := make([]string, len(tag.Attributes))
		for i, attribute := range tag.Attributes {
			attributes[i] = formatAttribute(attribute)
		}

		if oneLine := strings.Join(attributes, " "); utf8.RuneCountInString(oneLine) <= l.config.MaxLineLength {
			l.out.WriteString(" ")
			l.out.WriteString(oneLine)
		} else {
			for _, attribute := range attributes {
				l.out.WriteString("\n")
				l.indent(l.depth + 1)
				l.out.WriteString(attribute)
			}
		}
	}

	if tag.SelfClosing {
		l.out.WriteString("/")
	} else if n := len(tag.Attributes); n > 0 && strings.HasSuffix(formatAttribute(tag.Attributes[n-1]), "/") {
		// An unquoted value ending in '/' would otherwise read back as "/>".
		l.out.WriteString(" ")
	}
	l.out.WriteString(">\n")
}

func (l *layout) line(depth int, content string) {
	l.indent(depth)
	l.out.WriteString(content)
	l.out.WriteString("\n")
}

func (l *layout) indent(depth int) {
	for range max(depth, 0) {
		l.out.WriteString(l.unit)
	}
}

// formatAttribute quotes with '"' unless the value holds a '"'. Values
// holding both quote characters can only come from unquoted source values
// and are written back unquoted.
func formatAttribute(attribute Attribute) string {
	value := attribute.Value
	switch {
	case !strings.Contains(value, `"`):
		return attribute.Name + `="` + value + `"`
	case !strings.Contains(value, `'`):
		return attribute.Name + `='` + value + `'`
	case unquotable(value):
		return attribute.Name + "=" + value
	}
	// Not representable without character references; kept double quoted.
	return attribute.Name + `="` + value + `"`
}

// unquotable reports whether the tokenizer reads value back unchanged as an
// unquoted attribute value.
func unquotable(value string) bool {
	if value == "" || value[0] == '"' || value[0] == '\'' {
		return false
	}
	return !strings.ContainsFunc(value, func(r rune) bool {
		return isWhitespace(r) || r == '>'
	})
}
