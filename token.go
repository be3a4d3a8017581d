package pegtree

import (
	"fmt"
	"strings"
)

// Token is the closed sum of shapes a successful match can produce.
// It mirrors the teacher's Value interface (go/value.go), renamed to
// spec.md's vocabulary: Lexeme, Children, InRule, Custom.
type Token interface {
	// Span returns where in the input this token was produced.
	Span() Span

	// Text renders the token back into the substring of input it
	// represents, recursing into children. Custom values render as
	// their fmt.Stringer/%v form, since they carry no span of their
	// own beyond what the wrapping operator recorded.
	Text() string

	// String returns a debugging representation, not the matched text.
	String() string
}

// Lexeme is a literal matched substring.
type Lexeme struct {
	span  Span
	Value string
}

func NewLexeme(text string, span Span) Lexeme {
	return Lexeme{span: span, Value: text}
}

func (t Lexeme) Span() Span     { return t.span }
func (t Lexeme) Text() string   { return t.Value }
func (t Lexeme) String() string { return fmt.Sprintf("Lexeme(%q) @ %s", t.Value, t.span) }

// Children is an ordered list of sub-matches, produced by Sequence,
// Star and Plus.
type Children struct {
	span  Span
	Items []Token
}

func NewChildren(items []Token, span Span) Children {
	return Children{span: span, Items: items}
}

func (t Children) Span() Span { return t.span }

func (t Children) Text() string {
	var b strings.Builder
	for _, item := range t.Items {
		b.WriteString(item.Text())
	}
	return b.String()
}

func (t Children) String() string {
	var b strings.Builder
	b.WriteString("Children(")
	for i, item := range t.Items {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(item.String())
	}
	fmt.Fprintf(&b, ") @ %s", t.span)
	return b.String()
}

// InRule wraps the token produced by one invocation of a named rule,
// tagging it with the rule's name (or its CallAs alias).
type InRule struct {
	span  Span
	Name  string
	Inner Token
}

func NewInRule(name string, inner Token, span Span) InRule {
	return InRule{span: span, Name: name, Inner: inner}
}

func (t InRule) Span() Span   { return t.span }
func (t InRule) Text() string { return t.Inner.Text() }

func (t InRule) String() string {
	return fmt.Sprintf("InRule[%s](%s) @ %s", t.Name, t.Inner, t.span)
}

// Custom wraps an arbitrary user-domain value produced by a
// successful Do (Action) callback returning Pass(v).
type Custom struct {
	span  Span
	Value any
}

func NewCustom(value any, span Span) Custom {
	return Custom{span: span, Value: value}
}

func (t Custom) Span() Span   { return t.span }
func (t Custom) Text() string { return fmt.Sprintf("%v", t.Value) }
func (t Custom) String() string {
	return fmt.Sprintf("Custom(%v) @ %s", t.Value, t.span)
}

// Adapter projects a raw Token into the caller's preferred result
// type U. It is applied at the boundary of every atomic
// match-producing step; Custom(v) projects trivially to v when U
// is `any`, but a typed adapter is free to type-assert or otherwise
// transform any of the four shapes.
type Adapter[U any] func(Token) U

// IdentityAdapter is the zero-effort Adapter for callers who just
// want the raw Token tree as their result type.
func IdentityAdapter() Adapter[Token] {
	return func(t Token) Token { return t }
}
