package htmlfmt

import (
	"fmt"
	"strings"
)

type IndentStyle int

const (
	Tab IndentStyle = iota
	Space
)

// IndentStyles lists the accepted textual names in declaration order.
var IndentStyles = []string{"tab", "space"}

func ParseIndentStyle(s string) (IndentStyle, error) {
	switch s {
	case "tab":
		return Tab, nil
	case "space":
		return Space, nil
	}
	return Tab, fmt.Errorf("invalid indent style %q, expected one of %s", s, strings.Join(IndentStyles, ", "))
}

func (s IndentStyle) String() string {
	if s == Space {
		return "space"
	}
	return "tab"
}

func (s IndentStyle) unit() string {
	if s == Space {
		return " "
	}
	return "\t"
}

func (s IndentStyle) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *IndentStyle) UnmarshalText(text []byte) error {
	style, err := ParseIndentStyle(string(text))
	if err != nil {
		return err
	}
	*s = style
	return nil
}

const DefaultMaxLineLength = 80

type LayoutConfig struct {
	IndentStyle IndentStyle
	// IndentSize is the number of indent units per nesting level.
	IndentSize int
	// MaxLineLength only decides whether a tag's attributes are wrapped.
	MaxLineLength int
}

func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		IndentStyle:   Tab,
		IndentSize:    1,
		MaxLineLength: DefaultMaxLineLength,
	}
}

func (c LayoutConfig) indent() string {
	size := c.IndentSize
	if size < 1 {
		size = 1
	}
	return strings.Repeat(c.IndentStyle.unit(), size)
}
