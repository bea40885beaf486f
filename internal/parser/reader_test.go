package parser

import (
	"testing"

	"github.com/tmaxwell/go-cscript/internal/lexer"
	"github.com/tmaxwell/go-cscript/pkg/token"
)

func mustTokens(t *testing.T, source string) ([]token.Token, string) {
	t.Helper()
	toks, err := lexer.Tokenize(source)
	if err != nil {
		t.Fatalf("lex %q: %v", source, err)
	}
	return toks, source
}

func TestDelimitersCounter(t *testing.T) {
	var c DelimitersCounter
	toks, _ := mustTokens(t, "( [ { } ] )")
	for _, tok := range toks {
		c.Feed(tok)
		if c.Invalid() {
			t.Fatalf("unexpected invalid state at %q", tok.Text)
		}
	}
	if !c.Balanced() {
		t.Error("expected balanced counters")
	}

	c.Reset()
	toks, _ = mustTokens(t, ") [ ] )")
	c.Feed(toks[0])
	if !c.Invalid() {
		t.Error("a closing delimiter before its opener must be invalid")
	}
}

func TestSubfragmentDelimiterPair(t *testing.T) {
	toks, src := mustTokens(t, "f ( a , b ) ;")
	r := NewTokenReader(src, toks)
	r.Seek(1) // at '('

	sub, err := r.SubfragmentDelimiterPair()
	if err != nil {
		t.Fatal(err)
	}
	if sub.Fragment().Begin != 2 || sub.Fragment().End != 5 {
		t.Errorf("fragment [%d,%d), want [2,5)", sub.Fragment().Begin, sub.Fragment().End)
	}
}

func TestSubfragmentStatement(t *testing.T) {
	toks, src := mustTokens(t, "a = f ( 1 ; 2 ) ; b ;")
	// The ';' inside parens is not a top-level statement end.
	r := NewTokenReader(src, toks)
	sub, err := r.SubfragmentStatement()
	if err != nil {
		t.Fatal(err)
	}
	if toks[sub.Fragment().End].Kind != token.Semicolon || sub.Fragment().End != 8 {
		t.Errorf("statement ends at %d", sub.Fragment().End)
	}
}

func TestSubfragmentListElement(t *testing.T) {
	toks, src := mustTokens(t, "g ( x , y ) , z")
	r := NewTokenReader(src, toks)
	sub, err := r.SubfragmentListElement()
	if err != nil {
		t.Fatal(err)
	}
	// The comma inside the call does not split the element.
	if sub.Fragment().End != 6 {
		t.Errorf("element ends at %d, want 6", sub.Fragment().End)
	}
}

func TestTemplateFragmentSimple(t *testing.T) {
	toks, src := mustTokens(t, "v < int >")
	r := NewTokenReader(src, toks)
	r.Seek(1)
	sub := r.SubfragmentTemplate()
	if !sub.Valid() {
		t.Fatal("expected a valid template fragment")
	}
	if sub.Fragment().Begin != 2 || sub.Fragment().End != 3 {
		t.Errorf("fragment [%d,%d)", sub.Fragment().Begin, sub.Fragment().End)
	}
}

// A '>>' at depth 1 closes two template argument lists at once: the inner
// carve half-consumes it and the enclosing context sees the other half.
func TestTemplateFragmentSplitsRightRightAngle(t *testing.T) {
	toks, src := mustTokens(t, "A < B < C >>")
	r := NewTokenReader(src, toks)
	r.Seek(1) // at the outer '<'

	outer := r.SubfragmentTemplate()
	if !outer.Valid() {
		t.Fatal("outer carve failed")
	}
	// outer content is "B < C"
	if outer.Fragment().Begin != 2 || outer.Fragment().End != 5 {
		t.Fatalf("outer fragment [%d,%d), want [2,5)", outer.Fragment().Begin, outer.Fragment().End)
	}
	if !outer.rightRightAngle {
		t.Fatal("outer fragment should record the half-consumed '>>'")
	}

	outer.Seek(3) // at the inner '<'
	inner := outer.SubfragmentTemplate()
	if !inner.Valid() {
		t.Fatal("inner carve failed: the '>>' must offer its other half")
	}
	if inner.Fragment().Begin != 4 || inner.Fragment().End != 5 {
		t.Errorf("inner fragment [%d,%d), want [4,5)", inner.Fragment().Begin, inner.Fragment().End)
	}
	if inner.rightRightAngle {
		t.Error("the inner fragment must not half-consume the '>>' again")
	}
}

// Inside parentheses '>' is an ordinary comparison; the template carve only
// accepts a '>' at its own nesting depth.
func TestTemplateFragmentIgnoresNestedComparison(t *testing.T) {
	toks, src := mustTokens(t, "A < ( B > C ) >")
	r := NewTokenReader(src, toks)
	r.Seek(1)
	sub := r.SubfragmentTemplate()
	if !sub.Valid() {
		t.Fatal("carve failed")
	}
	// content is "( B > C )": the final '>' closes the template
	if sub.Fragment().Begin != 2 || sub.Fragment().End != 7 {
		t.Errorf("fragment [%d,%d), want [2,7)", sub.Fragment().Begin, sub.Fragment().End)
	}
}

func TestTemplateFragmentInvalidWithoutClose(t *testing.T) {
	toks, src := mustTokens(t, "a < b")
	r := NewTokenReader(src, toks)
	r.Seek(1)
	if sub := r.SubfragmentTemplate(); sub.Valid() {
		t.Error("an unclosed '<' must not carve a template fragment")
	}
}

func TestReadKind(t *testing.T) {
	toks, src := mustTokens(t, "( )")
	r := NewTokenReader(src, toks)
	if _, err := r.ReadKind(token.LeftPar); err != nil {
		t.Fatal(err)
	}
	if _, err := r.ReadKind(token.LeftPar); err == nil {
		t.Fatal("expected UnexpectedToken")
	}
	// a failed ReadKind must not advance
	if tok := r.Peek(); !tok.Is(token.RightPar) {
		t.Errorf("cursor moved to %q", tok.Text)
	}
}
