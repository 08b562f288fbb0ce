package token

import (
	"esparse/internal/source"
)

// Token is one lexed token. Tokens are values; the lexer overwrites its
// current token on every advance.
type Token struct {
	Kind  Kind
	Value any
	Start int
	End   int
	Loc   source.Location
}

// RegExpValue is the value of a Regexp token.
type RegExpValue struct {
	Pattern string
	Flags   string
}

// TemplateValue is the value of a template chunk token. Cooked is nil when
// the chunk contains an invalid escape sequence.
type TemplateValue struct {
	Cooked *string
	Raw    string
}

// Text returns the token value as a string when it is one.
func (t Token) Text() string {
	if s, ok := t.Value.(string); ok {
		return s
	}
	return ""
}

// Is reports whether t is a Name token with the given value.
func (t Token) Is(name string) bool {
	return t.Kind == Name && t.Text() == name
}

func (t Token) String() string {
	switch t.Kind {
	case Name, String, BigInt, PrivateName:
		return t.Kind.String() + "(" + t.Text() + ")"
	default:
		return t.Kind.String()
	}
}
