package htmlfmt

import "fmt"

type state uint8

const (
	beforeData state = iota
	characterData
	tagOpen
	tagName
	endTagOpen
	endTagName
	beforeAttributeName
	attributeName
	afterAttributeName
	beforeAttributeValue
	attrValueDoubleQuoted
	attrValueSingleQuoted
	attrValueUnquoted
	afterAttrValueQuoted
	selfClosingStartTag
)

var stateNames = [...]string{
	beforeData:            "BeforeData",
	characterData:         "CharacterData",
	tagOpen:               "TagOpen",
	tagName:               "TagName",
	endTagOpen:            "EndTagOpen",
	endTagName:            "EndTagName",
	beforeAttributeName:   "BeforeAttributeName",
	attributeName:         "AttributeName",
	afterAttributeName:    "AfterAttributeName",
	beforeAttributeValue:  "BeforeAttributeValue",
	attrValueDoubleQuoted: "AttrValueDoubleQuoted",
	attrValueSingleQuoted: "AttrValueSingleQuoted",
	attrValueUnquoted:     "AttrValueUnquoted",
	afterAttrValueQuoted:  "AfterAttrValueQuoted",
	selfClosingStartTag:   "SelfClosingStartTag",
}

func (s state) String() string {
	if int(s) >= len(stateNames) {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

// step performs exactly one transition of the state machine.
func (t *Tokenizer) step() error {
	switch t.state {
	case beforeData:
		return t.beforeData()
	case characterData:
		return t.characterData()
	case tagOpen:
		return t.tagOpen()
	case tagName, endTagName:
		return t.tagName()
	case endTagOpen:
		return t.endTagOpen()
	case beforeAttributeName:
		return t.beforeAttributeName()
	case attributeName:
		return t.attributeName()
	case afterAttributeName:
		return t.afterAttributeName()
	case beforeAttributeValue:
		return t.beforeAttributeValue()
	case attrValueDoubleQuoted:
		return t.attrValueQuoted('"')
	case attrValueSingleQuoted:
		return t.attrValueQuoted('\'')
	case attrValueUnquoted:
		return t.attrValueUnquoted()
	case afterAttrValueQuoted:
		return t.afterAttrValueQuoted()
	case selfClosingStartTag:
		return t.selfClosingStartTag()
	}
	return fmt.Errorf("unknown tokenizer state %s", t.state)
}
