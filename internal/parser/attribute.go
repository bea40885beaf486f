package parser

import (
	"github.com/tmaxwell/go-cscript/internal/ast"
	"github.com/tmaxwell/go-cscript/pkg/token"
)

// AttributeParser reads a [[ expr ]] attribute specifier. The lexer emits
// two consecutive brackets; the LeftLeftBracket and RightRightBracket tokens
// are synthesized here.
type AttributeParser struct {
	parserBase
}

// Ready reports whether an attribute specifier starts at the cursor.
func (p *AttributeParser) Ready() bool {
	return p.peek().Is(token.LeftBracket) && p.peekAt(1).Is(token.LeftBracket)
}

// Parse reads the attribute.
func (p *AttributeParser) Parse() (*ast.AttributeDeclaration, error) {
	outer, err := p.reader.SubfragmentDelimiterPair()
	if err != nil {
		return nil, err
	}
	inner, err := outer.SubfragmentDelimiterPair()
	if err != nil {
		return nil, err
	}

	lb1, err := p.readKind(token.LeftBracket)
	if err != nil {
		return nil, err
	}
	if _, err := p.readKind(token.LeftBracket); err != nil {
		return nil, err
	}
	dblb := token.Token{Kind: token.LeftLeftBracket, Text: p.ctx.Source[lb1.Offset : lb1.Offset+2], Offset: lb1.Offset}

	ep := NewExpressionParser(p.ctx, inner)
	attr, err := ep.Parse()
	if err != nil {
		return nil, err
	}
	p.reader.Seek(inner.Fragment().End)

	rb1, err := p.readKind(token.RightBracket)
	if err != nil {
		return nil, err
	}
	if _, err := p.readKind(token.RightBracket); err != nil {
		return nil, err
	}
	dbrb := token.Token{Kind: token.RightRightBracket, Text: p.ctx.Source[rb1.Offset : rb1.Offset+2], Offset: rb1.Offset}

	return &ast.AttributeDeclaration{
		DoubleLeftBracket:  dblb,
		Attribute:          attr,
		DoubleRightBracket: dbrb,
	}, nil
}
