package parser

import (
	"github.com/tmaxwell/go-cscript/internal/ast"
	"github.com/tmaxwell/go-cscript/pkg/token"
)

// Identifier parsing options.
const (
	ParseSimpleId = 1 << iota
	ParseTemplateId
	ParseQualifiedId
	ParseOperatorName

	ParseOnlySimpleId = ParseSimpleId
	ParseAll          = ParseSimpleId | ParseTemplateId | ParseQualifiedId | ParseOperatorName
)

// IdentifierParser reads simple, template, qualified, operator and
// literal-operator names.
type IdentifierParser struct {
	parserBase
	options int
}

// NewIdentifierParser creates an identifier parser over a reader.
func NewIdentifierParser(ctx *Context, reader TokenReader, options int) *IdentifierParser {
	if options == 0 {
		options = ParseAll
	}
	return &IdentifierParser{parserBase: newParserBase(ctx, reader), options: options}
}

func (p *IdentifierParser) testOption(opt int) bool { return p.options&opt != 0 }

// LookAhead reports whether the next token can start an identifier.
func (p *IdentifierParser) LookAhead() bool {
	switch p.peek().Kind {
	case token.Void, token.Bool, token.Char, token.Int, token.Float,
		token.Double, token.Auto, token.This, token.Operator, token.Identifier:
		return true
	}
	return false
}

// Parse reads one identifier.
func (p *IdentifierParser) Parse() (ast.Identifier, error) {
	t := p.peek()
	switch t.Kind {
	case token.Void, token.Bool, token.Char, token.Int, token.Float,
		token.Double, token.Auto, token.This:
		tok, _ := p.read()
		return &ast.SimpleIdentifier{Tok: tok}, nil
	case token.Operator:
		return p.readOperatorName()
	case token.Identifier:
		return p.readUserDefinedName()
	}
	return nil, p.errToken(ExpectedIdentifier, t)
}

func (p *IdentifierParser) readOperatorName() (ast.Identifier, error) {
	if !p.testOption(ParseOperatorName) {
		return nil, p.errToken(UnexpectedToken, p.peek())
	}

	opkw, _ := p.read()
	if p.atEnd() {
		return nil, p.err(UnexpectedEndOfInput)
	}

	op := p.peek()
	switch {
	case op.IsOperator():
		sym, _ := p.read()
		return &ast.OperatorName{Keyword: opkw, Symbol: sym}, nil

	case op.Is(token.LeftPar):
		lp, _ := p.read()
		if p.atEnd() {
			return nil, p.err(UnexpectedEndOfInput)
		}
		rp, err := p.readKind(token.RightPar)
		if err != nil {
			return nil, err
		}
		if lp.End() != rp.Offset {
			return nil, p.errToken(UnexpectedToken, rp)
		}
		sym := token.Token{Kind: token.LeftPar, Text: p.ctx.Source[lp.Offset : lp.Offset+2], Offset: lp.Offset}
		return &ast.OperatorName{Keyword: opkw, Symbol: sym}, nil

	case op.Is(token.LeftBracket):
		lb, _ := p.read()
		rb, err := p.readKind(token.RightBracket)
		if err != nil {
			return nil, err
		}
		if lb.End() != rb.Offset {
			return nil, p.errToken(UnexpectedToken, rb)
		}
		sym := token.Token{Kind: token.LeftBracket, Text: p.ctx.Source[lb.Offset : lb.Offset+2], Offset: lb.Offset}
		return &ast.OperatorName{Keyword: opkw, Symbol: sym}, nil

	case op.Is(token.StringLiteral):
		// operator"" suffix
		if len(op.Text) != 2 {
			return nil, p.errToken(ExpectedEmptyStringLiteral, op)
		}
		quotes, _ := p.read()
		sub := p.reader.Subfragment()
		idp := NewIdentifierParser(p.ctx, sub, ParseOnlySimpleId)
		name, err := idp.Parse()
		if err != nil {
			return nil, err
		}
		p.seekReader(&idp.reader)
		return &ast.LiteralOperatorName{Keyword: opkw, Quotes: quotes, Suffix: name.Base()}, nil

	case op.Is(token.UserDefinedLiteral):
		// operator""suffix written without a space
		udl, _ := p.read()
		if len(udl.Text) < 2 || udl.Text[0] != '"' || udl.Text[1] != '"' {
			return nil, p.errToken(ExpectedEmptyStringLiteral, udl)
		}
		quotes := token.Token{Kind: token.StringLiteral, Text: udl.Text[:2], Offset: udl.Offset}
		suffix := token.Token{Kind: token.Identifier, Text: udl.Text[2:], Offset: udl.Offset + 2}
		return &ast.LiteralOperatorName{Keyword: opkw, Quotes: quotes, Suffix: suffix}, nil
	}

	return nil, p.errToken(ExpectedOperatorSymbol, op)
}

func (p *IdentifierParser) readUserDefinedName() (ast.Identifier, error) {
	base, err := p.read()
	if err != nil {
		return nil, err
	}
	if !base.Is(token.Identifier) {
		return nil, p.errToken(ExpectedUserDefinedName, base)
	}

	var ret ast.Identifier = &ast.SimpleIdentifier{Tok: base}
	if p.atEnd() {
		return ret, nil
	}

	if p.testOption(ParseTemplateId) && p.peek().Is(token.LeftAngle) {
		argReader := p.reader.SubfragmentTemplate()
		if argReader.Valid() {
			tid, err := p.readTemplateArguments(base, &argReader)
			if err == nil {
				ret = tid
				p.reader.SeekPast(&argReader)
			}
			// On error the '<' is a comparison; keep the simple identifier.
		}
	}

	if p.atEnd() {
		return ret, nil
	}

	if p.testOption(ParseQualifiedId) && p.peek().Is(token.ScopeResolution) {
		for p.peek().Is(token.ScopeResolution) {
			cc, _ := p.read()
			sub := p.reader.Subfragment()
			idp := NewIdentifierParser(p.ctx, sub, ParseTemplateId|ParseSimpleId|ParseOperatorName)
			rhs, err := idp.Parse()
			if err != nil {
				return nil, err
			}
			p.seekReader(&idp.reader)
			ret = &ast.ScopedIdentifier{Lhs: ret, ColonColon: cc, Rhs: rhs}
			if p.atEnd() {
				break
			}
		}
	}

	return ret, nil
}

func (p *IdentifierParser) readTemplateArguments(base token.Token, reader *TokenReader) (*ast.TemplateIdentifier, error) {
	leftAngle := p.ctx.Tokens[reader.Fragment().Begin-1]
	var rightAngle token.Token
	if reader.Fragment().End < len(p.ctx.Tokens) {
		rightAngle = p.ctx.Tokens[reader.Fragment().End]
	}

	var args []ast.Node
	for !reader.AtEnd() {
		elem, err := reader.SubfragmentListElement()
		if err != nil {
			return nil, err
		}
		reader.Seek(elem.Fragment().End)
		argparser := &TemplateArgParser{parserBase: newParserBase(p.ctx, elem)}
		arg, err := argparser.Parse()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !reader.AtEnd() {
			if _, err := reader.ReadKind(token.Comma); err != nil {
				return nil, err
			}
		}
	}

	return &ast.TemplateIdentifier{
		NameTok:    base,
		LeftAngle:  leftAngle,
		Args:       args,
		RightAngle: rightAngle,
	}, nil
}

// TemplateArgParser parses one template argument, which is either a type or
// a constant expression.
type TemplateArgParser struct {
	parserBase
}

// Parse reads the argument. A fragment that reads fully as a type is a type
// argument; anything else is parsed as an expression.
func (p *TemplateArgParser) Parse() (ast.Node, error) {
	save := p.reader.Pos()

	{
		sub := p.reader.Subfragment()
		tp := NewTypeParser(p.ctx, sub)
		if tp.Detect(LookAheadDetection) {
			qt, err := tp.Parse()
			if err == nil {
				p.seekReader(&tp.reader)
				if p.atEnd() {
					return &ast.TypeNode{Value: qt}, nil
				}
			}
		}
	}

	p.reader.Seek(save)

	sub := p.reader.Subfragment()
	ep := NewExpressionParser(p.ctx, sub)
	expr, err := ep.Parse()
	if err != nil {
		return nil, err
	}
	p.seekReader(&ep.reader)
	return expr, nil
}
