package parser

import "github.com/tmaxwell/go-cscript/pkg/token"

// Fragment is a half-open range [Begin, End) of indices into a token list.
type Fragment struct {
	Begin int
	End   int
}

// Size returns the number of tokens in the fragment.
func (f Fragment) Size() int { return f.End - f.Begin }

// DelimitersCounter verifies proper nesting of the delimiter pairs
// (), {} and [].
type DelimitersCounter struct {
	ParDepth     int
	BraceDepth   int
	BracketDepth int
}

// Reset sets all counters to zero.
func (c *DelimitersCounter) Reset() {
	c.ParDepth, c.BraceDepth, c.BracketDepth = 0, 0, 0
}

// Feed updates the counters with one token.
func (c *DelimitersCounter) Feed(tok token.Token) {
	switch tok.Kind {
	case token.LeftPar:
		c.ParDepth++
	case token.RightPar:
		c.ParDepth--
	case token.LeftBrace:
		c.BraceDepth++
	case token.RightBrace:
		c.BraceDepth--
	case token.LeftBracket:
		c.BracketDepth++
	case token.RightBracket:
		c.BracketDepth--
	}
}

// Balanced reports whether all delimiters seen so far are matched.
func (c *DelimitersCounter) Balanced() bool {
	return c.ParDepth == 0 && c.BraceDepth == 0 && c.BracketDepth == 0
}

// Invalid reports a closing delimiter seen before its opener, a state from
// which balancing is impossible.
func (c *DelimitersCounter) Invalid() bool {
	return c.ParDepth < 0 || c.BraceDepth < 0 || c.BracketDepth < 0
}
