package parser

import (
	"github.com/tmaxwell/go-cscript/internal/lexer"
	"github.com/tmaxwell/go-cscript/pkg/token"
)

// Context is shared by the family of cooperating sub-parsers: it owns the
// token buffer every TokenReader borrows from.
type Context struct {
	Source string
	Tokens []token.Token
}

// NewContext tokenizes source into a parsing context.
func NewContext(source string) (*Context, error) {
	toks, err := lexer.Tokenize(source)
	if err != nil {
		return nil, err
	}
	return &Context{Source: source, Tokens: toks}, nil
}

// parserBase carries the shared context and the reader of one sub-parser.
// Each sub-parser consumes a prefix of its fragment and leaves the cursor
// positioned after what it consumed.
type parserBase struct {
	ctx    *Context
	reader TokenReader
}

func newParserBase(ctx *Context, reader TokenReader) parserBase {
	return parserBase{ctx: ctx, reader: reader}
}

func (b *parserBase) atEnd() bool         { return b.reader.AtEnd() }
func (b *parserBase) peek() token.Token   { return b.reader.Peek() }
func (b *parserBase) peekAt(n int) token.Token { return b.reader.PeekAt(n) }

func (b *parserBase) read() (token.Token, error) { return b.reader.Read() }

func (b *parserBase) readKind(k token.Kind) (token.Token, error) {
	return b.reader.ReadKind(k)
}

func (b *parserBase) err(code ErrorCode) error { return b.reader.Err(code) }

func (b *parserBase) errToken(code ErrorCode, tok token.Token) error {
	return b.reader.ErrToken(code, tok)
}

// seekReader advances this parser's cursor to a child reader's position.
func (b *parserBase) seekReader(sub *TokenReader) { b.reader.Seek(sub.Pos()) }
