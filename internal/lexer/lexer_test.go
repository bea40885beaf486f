package lexer

import (
	"testing"

	"github.com/tmaxwell/go-cscript/pkg/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestBasicTokens(t *testing.T) {
	input := `int n = 42; n += 1;`
	toks, err := Tokenize(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []token.Kind{
		token.Int, token.Identifier, token.Eq, token.IntegerLiteral, token.Semicolon,
		token.Identifier, token.AddEq, token.IntegerLiteral, token.Semicolon,
	}
	got := kinds(toks)
	if len(got) != len(expected) {
		t.Fatalf("token count: got %d, want %d (%v)", len(got), len(expected), got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("token %d: got kind %d, want %d", i, got[i], expected[i])
		}
	}
}

func TestZeroCopyText(t *testing.T) {
	input := "foo bar"
	toks, err := Tokenize(input)
	if err != nil {
		t.Fatal(err)
	}
	if toks[0].Text != "foo" || toks[0].Offset != 0 {
		t.Errorf("got %q at %d", toks[0].Text, toks[0].Offset)
	}
	if toks[1].Text != "bar" || toks[1].Offset != 4 {
		t.Errorf("got %q at %d", toks[1].Text, toks[1].Offset)
	}
}

func TestNumericLiterals(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{"123", token.IntegerLiteral},
		{"0", token.IntegerLiteral},
		{"0x1F", token.HexadecimalLiteral},
		{"0b1010", token.BinaryLiteral},
		{"0755", token.OctalLiteral},
		{"1.5", token.DecimalLiteral},
		{"1.5e10", token.DecimalLiteral},
		{"2e3", token.DecimalLiteral},
		{"1.5f", token.DecimalLiteral},
		{"3.0km", token.UserDefinedLiteral},
		{"42nd", token.UserDefinedLiteral},
		{"0xFFu", token.UserDefinedLiteral},
	}

	for _, tt := range tests {
		toks, err := Tokenize(tt.input)
		if err != nil {
			t.Errorf("%q: unexpected error %v", tt.input, err)
			continue
		}
		if len(toks) != 1 {
			t.Errorf("%q: got %d tokens, want 1", tt.input, len(toks))
			continue
		}
		if toks[0].Kind != tt.kind {
			t.Errorf("%q: got kind %d, want %d", tt.input, toks[0].Kind, tt.kind)
		}
		if toks[0].Text != tt.input {
			t.Errorf("%q: text %q", tt.input, toks[0].Text)
		}
	}
}

func TestStringLiterals(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{`"hello"`, token.StringLiteral},
		{`"a\nb"`, token.StringLiteral},
		{`"say \"hi\""`, token.StringLiteral},
		{`'c'`, token.StringLiteral},
		{`"125"km`, token.UserDefinedLiteral},
		{`""`, token.StringLiteral},
	}

	for _, tt := range tests {
		toks, err := Tokenize(tt.input)
		if err != nil {
			t.Errorf("%q: unexpected error %v", tt.input, err)
			continue
		}
		if len(toks) != 1 || toks[0].Kind != tt.kind {
			t.Errorf("%q: got %v", tt.input, toks)
		}
	}
}

func TestUnterminatedString(t *testing.T) {
	_, err := Tokenize(`"abc`)
	if err == nil {
		t.Fatal("expected an error for an unterminated string")
	}
}

func TestCommentsAreDropped(t *testing.T) {
	input := "a // line comment\nb /* block\ncomment */ c"
	toks, err := Tokenize(input)
	if err != nil {
		t.Fatal(err)
	}
	if len(toks) != 3 {
		t.Fatalf("got %d tokens, want 3: %v", len(toks), toks)
	}
	for i, want := range []string{"a", "b", "c"} {
		if toks[i].Text != want {
			t.Errorf("token %d: %q", i, toks[i].Text)
		}
	}
}

func TestOperators(t *testing.T) {
	input := ":: ++ -- << >> <<= >>= <= >= == != && || -> < >"
	want := []token.Kind{
		token.ScopeResolution, token.PlusPlus, token.MinusMinus,
		token.LeftShift, token.RightRightAngle, token.LeftShiftEq, token.RightShiftEq,
		token.LessEqual, token.GreaterEqual, token.EqEq, token.Neq,
		token.LogicalAnd, token.LogicalOr, token.Arrow,
		token.LeftAngle, token.RightAngle,
	}
	toks, err := Tokenize(input)
	if err != nil {
		t.Fatal(err)
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %d, want %d", i, got[i], want[i])
		}
	}
}

func TestRightRightAngleIsOneToken(t *testing.T) {
	toks, err := Tokenize("A<B<C>>")
	if err != nil {
		t.Fatal(err)
	}
	want := []token.Kind{
		token.Identifier, token.LeftAngle, token.Identifier,
		token.LeftAngle, token.Identifier, token.RightRightAngle,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %d, want %d", i, got[i], want[i])
		}
	}
}

func TestKeywords(t *testing.T) {
	toks, err := Tokenize("class virtual operator template typename this")
	if err != nil {
		t.Fatal(err)
	}
	want := []token.Kind{
		token.Class, token.Virtual, token.Operator,
		token.Template, token.Typename, token.This,
	}
	for i := range want {
		if toks[i].Kind != want[i] {
			t.Errorf("token %d: got %d, want %d", i, toks[i].Kind, want[i])
		}
	}
}

func TestBOMIsStripped(t *testing.T) {
	toks, err := Tokenize("\xEF\xBB\xBFint")
	if err != nil {
		t.Fatal(err)
	}
	if len(toks) != 1 || toks[0].Kind != token.Int {
		t.Fatalf("got %v", toks)
	}
}
