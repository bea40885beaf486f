package ast

import (
	"testing"

	"github.com/tmaxwell/go-cscript/pkg/token"
)

func tok(kind token.Kind, text string, offset int) token.Token {
	return token.Token{Kind: kind, Text: text, Offset: offset}
}

func TestNodeSpans(t *testing.T) {
	// a + b
	expr := &Operation{
		OperatorTok: tok(token.Plus, "+", 2),
		Arg1:        &SimpleIdentifier{Tok: tok(token.Identifier, "a", 0)},
		Arg2:        &SimpleIdentifier{Tok: tok(token.Identifier, "b", 4)},
	}
	if expr.Pos() != 0 || expr.End() != 5 {
		t.Errorf("span [%d,%d), want [0,5)", expr.Pos(), expr.End())
	}
	if expr.TokenLiteral() != "+" {
		t.Errorf("base token %q", expr.TokenLiteral())
	}

	prefix := &Operation{
		OperatorTok: tok(token.Minus, "-", 0),
		Arg1:        &SimpleIdentifier{Tok: tok(token.Identifier, "x", 1)},
	}
	if prefix.Pos() != 0 || prefix.End() != 2 {
		t.Errorf("prefix span [%d,%d)", prefix.Pos(), prefix.End())
	}

	postfix := &Operation{
		OperatorTok: tok(token.PlusPlus, "++", 1),
		Arg1:        &SimpleIdentifier{Tok: tok(token.Identifier, "x", 0)},
		Postfix:     true,
	}
	if postfix.Pos() != 0 || postfix.End() != 3 {
		t.Errorf("postfix span [%d,%d)", postfix.Pos(), postfix.End())
	}
}

func TestUserDefinedLiteralSuffix(t *testing.T) {
	tests := []struct {
		text   string
		suffix string
		value  string
	}{
		{"3.0km", "km", "3.0"},
		{"42nd", "nd", "42"},
		{"0xFFu", "u", "0xFF"},
		{"0b01z", "z", "0b01"},
		{"1.5e3q", "q", "1.5e3"},
		{`"abc"w`, "w", `"abc"`},
		{`""km`, "km", `""`},
	}
	for _, tt := range tests {
		l := &UserDefinedLiteral{Tok: tok(token.UserDefinedLiteral, tt.text, 0)}
		if got := l.SuffixName(); got != tt.suffix {
			t.Errorf("%q: suffix %q, want %q", tt.text, got, tt.suffix)
		}
		if got := l.LiteralValue(); got != tt.value {
			t.Errorf("%q: value %q, want %q", tt.text, got, tt.value)
		}
	}
}

func TestTemplateDeclClassification(t *testing.T) {
	classDecl := func(name Identifier) *ClassDecl {
		return &ClassDecl{Name: name}
	}
	simple := &SimpleIdentifier{Tok: tok(token.Identifier, "pair", 0)}
	templated := &TemplateIdentifier{NameTok: tok(token.Identifier, "pair", 0)}

	primary := &TemplateDecl{
		Params: []TemplateParameter{{Name: tok(token.Identifier, "T", 0)}},
		Decl:   classDecl(simple),
	}
	if primary.IsFullSpecialization() || primary.IsPartialSpecialization() {
		t.Error("a primary template is neither full nor partial")
	}

	partial := &TemplateDecl{
		Params: []TemplateParameter{{Name: tok(token.Identifier, "T", 0)}},
		Decl:   classDecl(templated),
	}
	if !partial.IsPartialSpecialization() {
		t.Error("a templated class name with parameters is a partial specialization")
	}

	full := &TemplateDecl{Decl: classDecl(templated)}
	if !full.IsFullSpecialization() {
		t.Error("an empty parameter list is a full specialization")
	}
}

func TestInspectVisitsChildren(t *testing.T) {
	// f(a, b)
	call := &FunctionCall{
		Callee: &SimpleIdentifier{Tok: tok(token.Identifier, "f", 0)},
		Args: []Expression{
			&SimpleIdentifier{Tok: tok(token.Identifier, "a", 2)},
			&SimpleIdentifier{Tok: tok(token.Identifier, "b", 5)},
		},
	}

	var names []string
	Inspect(call, func(n Node) bool {
		if id, ok := n.(*SimpleIdentifier); ok {
			names = append(names, id.Name())
		}
		return true
	})

	if len(names) != 3 || names[0] != "f" || names[1] != "a" || names[2] != "b" {
		t.Errorf("visited %v", names)
	}
}
