package parser

import (
	"github.com/tmaxwell/go-cscript/internal/ast"
	"github.com/tmaxwell/go-cscript/pkg/token"
)

// LambdaParser parses an expression starting with '[': either an array
// literal or a lambda expression, disambiguated by the token following the
// closing bracket.
type LambdaParser struct {
	parserBase
}

// NewLambdaParser creates a lambda/array parser over a reader.
func NewLambdaParser(ctx *Context, reader TokenReader) *LambdaParser {
	return &LambdaParser{parserBase: newParserBase(ctx, reader)}
}

// Parse reads the array or lambda.
func (p *LambdaParser) Parse() (ast.Expression, error) {
	bracketContent, err := p.reader.SubfragmentDelimiterPair()
	if err != nil {
		return nil, err
	}

	if p.detectArray(bracketContent.Fragment()) {
		return p.parseArray(&bracketContent)
	}

	lambda := &ast.LambdaExpression{LeftBracket: p.peek()}
	if err := p.readCaptures(lambda, &bracketContent); err != nil {
		return nil, err
	}
	if err := p.readParams(lambda); err != nil {
		return nil, err
	}
	body, err := p.readBody()
	if err != nil {
		return nil, err
	}
	lambda.Body = body
	return lambda, nil
}

// detectArray reports an array literal: the closing bracket is not followed
// by a parameter list.
func (p *LambdaParser) detectArray(frag Fragment) bool {
	it := frag.End + 1
	return it >= len(p.ctx.Tokens) || !p.ctx.Tokens[it].Is(token.LeftPar)
}

func (p *LambdaParser) parseArray(bracketContent *TokenReader) (ast.Expression, error) {
	lb, err := p.readKind(token.LeftBracket)
	if err != nil {
		return nil, err
	}
	result := &ast.ArrayExpression{LeftBracket: lb}

	for !bracketContent.AtEnd() {
		elem, err := bracketContent.SubfragmentListElement()
		if err != nil {
			return nil, err
		}
		bracketContent.Seek(elem.Fragment().End)
		ep := NewExpressionParser(p.ctx, elem)
		e, err := ep.Parse()
		if err != nil {
			return nil, err
		}
		result.Elements = append(result.Elements, e)
		if !bracketContent.AtEnd() {
			if _, err := bracketContent.ReadKind(token.Comma); err != nil {
				return nil, err
			}
		}
	}

	p.reader.Seek(bracketContent.Fragment().End)
	rb, err := p.read()
	if err != nil {
		return nil, err
	}
	result.RightBracket = rb
	return result, nil
}

func (p *LambdaParser) readCaptures(lambda *ast.LambdaExpression, bracketContent *TokenReader) error {
	if _, err := p.readKind(token.LeftBracket); err != nil {
		return err
	}

	for !bracketContent.AtEnd() {
		elem, err := bracketContent.SubfragmentListElement()
		if err != nil {
			return err
		}
		bracketContent.Seek(elem.Fragment().End)

		capp := &LambdaCaptureParser{parserBase: newParserBase(p.ctx, elem)}
		if !capp.detect() {
			return p.err(CouldNotParseLambdaCapture)
		}
		capture, err := capp.Parse()
		if err != nil {
			return err
		}
		lambda.Captures = append(lambda.Captures, capture)

		if !bracketContent.AtEnd() {
			if _, err := bracketContent.ReadKind(token.Comma); err != nil {
				return err
			}
		}
	}

	p.reader.Seek(bracketContent.Fragment().End)
	rb, err := p.read()
	if err != nil {
		return err
	}
	lambda.RightBracket = rb
	return nil
}

func (p *LambdaParser) readParams(lambda *ast.LambdaExpression) error {
	paramsReader, err := p.reader.SubfragmentDelimiterPair()
	if err != nil {
		return err
	}
	lambda.LeftPar = p.ctx.Tokens[paramsReader.Fragment().Begin-1]

	for !paramsReader.AtEnd() {
		elem, err := paramsReader.SubfragmentListElement()
		if err != nil {
			return err
		}
		paramsReader.Seek(elem.Fragment().End)
		pp := NewFunctionParamParser(p.ctx, elem)
		param, err := pp.Parse()
		if err != nil {
			return err
		}
		lambda.Params = append(lambda.Params, param)
		if !paramsReader.AtEnd() {
			if _, err := paramsReader.ReadKind(token.Comma); err != nil {
				return err
			}
		}
	}

	p.reader.Seek(paramsReader.Fragment().End)
	rp, err := p.read()
	if err != nil {
		return err
	}
	lambda.RightPar = rp
	return nil
}

func (p *LambdaParser) readBody() (*ast.CompoundStatement, error) {
	if p.atEnd() {
		return nil, p.err(UnexpectedEndOfInput)
	}
	if !p.peek().Is(token.LeftBrace) {
		return nil, p.errToken(UnexpectedToken, p.peek())
	}

	pp := NewProgramParser(p.ctx, p.reader.Subfragment())
	stmt, err := pp.ParseStatement()
	if err != nil {
		return nil, err
	}
	p.seekReader(&pp.reader)
	body, ok := stmt.(*ast.CompoundStatement)
	if !ok {
		return nil, p.err(UnexpectedToken)
	}
	return body, nil
}

// LambdaCaptureParser parses one lambda capture.
type LambdaCaptureParser struct {
	parserBase
}

func (p *LambdaCaptureParser) detect() bool {
	t := p.peek()
	return t.Is(token.Eq) || t.Is(token.BitwiseAnd) || t.Is(token.Identifier) || t.Is(token.This)
}

// Parse reads the capture.
func (p *LambdaCaptureParser) Parse() (ast.LambdaCapture, error) {
	var cap ast.LambdaCapture

	if p.atEnd() {
		return cap, p.err(UnexpectedFragmentEnd)
	}

	if p.peek().Is(token.Eq) {
		cap.ByValueSign, _ = p.read()
		if !p.atEnd() {
			return cap, p.errToken(UnexpectedToken, cap.ByValueSign)
		}
		return cap, nil
	}

	if p.peek().Is(token.BitwiseAnd) {
		cap.Reference, _ = p.read()
		if p.atEnd() {
			return cap, nil
		}
	}

	// Capturing 'this' parses here; the compiler rejects it.
	if p.peek().Is(token.This) {
		cap.Name, _ = p.read()
		return cap, nil
	}

	idp := NewIdentifierParser(p.ctx, p.reader.Subfragment(), ParseOnlySimpleId)
	name, err := idp.Parse()
	if err != nil {
		return cap, err
	}
	p.seekReader(&idp.reader)
	cap.Name = name.Base()

	if p.atEnd() {
		return cap, nil
	}
	cap.AssignmentSign, err = p.readKind(token.Eq)
	if err != nil {
		return cap, err
	}
	ep := NewExpressionParser(p.ctx, p.reader.Subfragment())
	value, err := ep.Parse()
	if err != nil {
		return cap, err
	}
	p.seekReader(&ep.reader)
	cap.Value = value
	return cap, nil
}
