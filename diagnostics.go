package htmlfmt

import "fmt"

type DiagnosticKind int

const (
	UnexpectedEqualsSignBeforeAttributeName DiagnosticKind = iota
	UnexpectedCharacterInAttributeName
	InvalidFirstCharacterOfTagName
	EndTagWithAttributes
	EndTagWithTrailingSolidus
	EOFInTag
	EOFBeforeTagName
)

var diagnosticMessages = [...]string{
	UnexpectedEqualsSignBeforeAttributeName: "attribute name can't start with equals sign",
	UnexpectedCharacterInAttributeName:      "invalid char in attribute name",
	InvalidFirstCharacterOfTagName:          "invalid first character of tag name, treated as text",
	EndTagWithAttributes:                    "end tag with attributes, attributes dropped",
	EndTagWithTrailingSolidus:               "end tag can't be self-closing",
	EOFInTag:                                "unexpected end of input inside tag, tag dropped",
	EOFBeforeTagName:                        "unexpected end of input before tag name, treated as text",
}

func (k DiagnosticKind) String() string {
	if k < 0 || int(k) >= len(diagnosticMessages) {
		return fmt.Sprintf("DiagnosticKind(%d)", int(k))
	}
	return diagnosticMessages[k]
}

// Diagnostic reports malformed input the tokenizer recovered from.
type Diagnostic struct {
	Kind     DiagnosticKind
	Position Position
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s: syntax error: %s", d.Position, d.Kind)
}
