package parser

import "github.com/tmaxwell/go-cscript/pkg/token"

// TokenReader is a cursor over a fragment of the token list.
//
// The rightRightAngle flag records that the fragment's end sits at a '>>'
// token of which the enclosing template consumed only the first half; the
// enclosing context must still see the remaining half.
type TokenReader struct {
	source          string
	tokens          []token.Token
	frag            Fragment
	pos             int
	rightRightAngle bool
	invalid         bool
}

// NewTokenReader constructs a reader over the full token list.
func NewTokenReader(source string, tokens []token.Token) TokenReader {
	return TokenReader{
		source: source,
		tokens: tokens,
		frag:   Fragment{Begin: 0, End: len(tokens)},
	}
}

func newSubReader(parent *TokenReader, frag Fragment, rrAngle bool) TokenReader {
	return TokenReader{
		source:          parent.source,
		tokens:          parent.tokens,
		frag:            frag,
		pos:             frag.Begin,
		rightRightAngle: rrAngle,
	}
}

// Valid reports whether the reader denotes an existing fragment; template
// carving yields an invalid reader when no balanced '<...>' range exists.
func (r *TokenReader) Valid() bool { return !r.invalid }

// Fragment returns the reader's fragment.
func (r *TokenReader) Fragment() Fragment { return r.frag }

// Pos returns the cursor index into the token list.
func (r *TokenReader) Pos() int { return r.pos }

// AtEnd reports whether all tokens of the fragment have been read.
func (r *TokenReader) AtEnd() bool { return r.pos >= r.frag.End }

// Seek positions the cursor at an absolute token index.
func (r *TokenReader) Seek(i int) { r.pos = i }

// Peek returns the token at the cursor, or the zero token at end.
func (r *TokenReader) Peek() token.Token {
	if r.AtEnd() {
		return token.Token{}
	}
	return r.tokens[r.pos]
}

// PeekAt returns the token n positions past the cursor.
func (r *TokenReader) PeekAt(n int) token.Token {
	if r.pos+n >= r.frag.End {
		return token.Token{}
	}
	return r.tokens[r.pos+n]
}

// Read consumes and returns the token at the cursor.
func (r *TokenReader) Read() (token.Token, error) {
	if r.AtEnd() {
		return token.Token{}, r.Err(UnexpectedFragmentEnd)
	}
	t := r.tokens[r.pos]
	r.pos++
	return t, nil
}

// ReadKind consumes the token at the cursor, requiring the given kind.
func (r *TokenReader) ReadKind(k token.Kind) (token.Token, error) {
	t, err := r.Read()
	if err != nil {
		return t, err
	}
	if t.Kind != k {
		r.pos--
		return token.Token{}, r.ErrToken(UnexpectedToken, t)
	}
	return t, nil
}

// Err builds a SyntaxError located at the cursor.
func (r *TokenReader) Err(code ErrorCode) error {
	offset := len(r.source)
	if r.pos < len(r.tokens) {
		offset = r.tokens[r.pos].Offset
	}
	return &SyntaxError{Code: code, Offset: offset}
}

// ErrToken builds a SyntaxError carrying the offending token.
func (r *TokenReader) ErrToken(code ErrorCode, tok token.Token) error {
	return &SyntaxError{Code: code, Offset: tok.Offset, Actual: tok}
}

// Subfragment returns a reader over the unread remainder of the fragment.
func (r *TokenReader) Subfragment() TokenReader {
	return newSubReader(r, Fragment{Begin: r.pos, End: r.frag.End}, r.rightRightAngle)
}

// SubfragmentDelimiterPair returns a reader over the content of the balanced
// delimiter pair opening at the cursor.
func (r *TokenReader) SubfragmentDelimiterPair() (TokenReader, error) {
	var counter DelimitersCounter
	counter.Feed(r.Peek())
	if counter.Balanced() || counter.Invalid() {
		return TokenReader{}, r.Err(UnexpectedFragmentEnd)
	}
	begin := r.pos + 1
	for it := begin; it < r.frag.End; it++ {
		counter.Feed(r.tokens[it])
		if counter.Invalid() {
			return TokenReader{}, r.Err(UnexpectedFragmentEnd)
		}
		if counter.Balanced() {
			return newSubReader(r, Fragment{Begin: begin, End: it}, false), nil
		}
	}
	return TokenReader{}, r.Err(UnexpectedFragmentEnd)
}

// SubfragmentStatement returns a reader over the tokens up to the next
// top-level semicolon.
func (r *TokenReader) SubfragmentStatement() (TokenReader, error) {
	var counter DelimitersCounter
	for it := r.pos; it < r.frag.End; it++ {
		tok := r.tokens[it]
		counter.Feed(tok)
		if counter.Invalid() {
			return TokenReader{}, r.Err(UnexpectedFragmentEnd)
		}
		if tok.Is(token.Semicolon) && counter.Balanced() {
			return newSubReader(r, Fragment{Begin: r.pos, End: it}, false), nil
		}
	}
	return TokenReader{}, r.Err(UnexpectedFragmentEnd)
}

// SubfragmentListElement returns a reader over the tokens up to the next
// top-level comma, or to the end of the fragment.
func (r *TokenReader) SubfragmentListElement() (TokenReader, error) {
	var counter DelimitersCounter
	for it := r.pos; it < r.frag.End; it++ {
		tok := r.tokens[it]
		counter.Feed(tok)
		if counter.Invalid() {
			return TokenReader{}, r.Err(UnexpectedFragmentEnd)
		}
		if tok.Is(token.Comma) && counter.Balanced() {
			return newSubReader(r, Fragment{Begin: r.pos, End: it}, false), nil
		}
	}
	if !counter.Balanced() {
		return TokenReader{}, r.Err(UnexpectedFragmentEnd)
	}
	return newSubReader(r, Fragment{Begin: r.pos, End: r.frag.End}, r.rightRightAngle), nil
}

// tryBuildTemplateFragment carves the content of a '<...>' range starting at
// begin, accounting for nesting and for '>>' closing two templates at once.
func tryBuildTemplateFragment(tokens []token.Token, begin, end int) (frag Fragment, halfConsumed, ok bool) {
	if begin >= end || !tokens[begin].Is(token.LeftAngle) {
		return Fragment{}, false, false
	}

	var counter DelimitersCounter
	angleCounter := 0

	for it := begin; it < end; it++ {
		tok := tokens[it]
		counter.Feed(tok)
		if counter.Invalid() {
			return Fragment{}, false, false
		}

		switch tok.Kind {
		case token.RightAngle:
			if counter.Balanced() {
				angleCounter--
				if angleCounter == 0 {
					return Fragment{Begin: begin + 1, End: it}, false, true
				}
			}
		case token.RightRightAngle:
			if counter.Balanced() {
				if angleCounter == 1 || angleCounter == 2 {
					return Fragment{Begin: begin + 1, End: it}, true, true
				}
				angleCounter -= 2
			}
		case token.LeftAngle:
			if counter.Balanced() {
				angleCounter++
			}
		}
	}
	return Fragment{}, false, false
}

// SubfragmentTemplate returns a reader over the content of the template
// argument list opening at the cursor. The returned reader is invalid when
// no balanced range exists; this is not an error, the '<' then simply is a
// comparison operator.
func (r *TokenReader) SubfragmentTemplate() TokenReader {
	end := r.frag.End
	// A half-consumed '>>' at the fragment end still offers one '>' to the
	// templates nested inside this fragment.
	if r.rightRightAngle && end < len(r.tokens) && r.tokens[end].Is(token.RightRightAngle) {
		end++
	}
	frag, half, ok := tryBuildTemplateFragment(r.tokens, r.pos, end)
	if !ok {
		return TokenReader{invalid: true}
	}
	return newSubReader(r, frag, half && !r.rightRightAngle)
}

// SeekPast positions the cursor one past the end of a carved subfragment,
// or exactly at its end when the subfragment extends to this reader's end.
func (r *TokenReader) SeekPast(sub *TokenReader) {
	if sub.frag.End != r.frag.End {
		r.Seek(sub.frag.End + 1)
	} else {
		r.Seek(sub.frag.End)
	}
}
