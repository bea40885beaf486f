package parser

import (
	"github.com/tmaxwell/go-cscript/internal/ast"
	"github.com/tmaxwell/go-cscript/pkg/token"
)

// ProgramParser reads top-level statements and declarations, dispatching on
// the leading keyword.
type ProgramParser struct {
	parserBase
}

// NewProgramParser creates a program parser over a reader.
func NewProgramParser(ctx *Context, reader TokenReader) *ProgramParser {
	return &ProgramParser{parserBase: newParserBase(ctx, reader)}
}

// ParseProgram reads statements until the fragment is exhausted.
func (p *ProgramParser) ParseProgram() ([]ast.Statement, error) {
	var ret []ast.Statement
	for !p.atEnd() {
		stmt, err := p.ParseStatement()
		if err != nil {
			return nil, err
		}
		ret = append(ret, stmt)
	}
	return ret, nil
}

// ParseStatement reads one statement.
func (p *ProgramParser) ParseStatement() (ast.Statement, error) {
	t := p.peek()
	switch t.Kind {
	case token.Semicolon:
		tok, _ := p.read()
		return &ast.NullStatement{Semicolon: tok}, nil
	case token.Break:
		return p.parseBreak()
	case token.Class:
		cp := NewClassParser(p.ctx, p.reader.Subfragment())
		decl, err := cp.Parse()
		if err != nil {
			return nil, err
		}
		p.seekReader(&cp.reader)
		return decl, nil
	case token.Continue:
		return p.parseContinue()
	case token.Enum:
		ep := NewEnumParser(p.ctx, p.reader.Subfragment())
		decl, err := ep.Parse()
		if err != nil {
			return nil, err
		}
		p.seekReader(&ep.reader)
		return decl, nil
	case token.If:
		return p.parseIf()
	case token.Return:
		return p.parseReturn()
	case token.Using:
		up := &UsingParser{parserBase: newParserBase(p.ctx, p.reader.Subfragment())}
		decl, err := up.Parse()
		if err != nil {
			return nil, err
		}
		p.seekReader(&up.reader)
		return decl, nil
	case token.While:
		return p.parseWhile()
	case token.For:
		return p.parseFor()
	case token.LeftBrace:
		return p.parseCompound()
	case token.Template:
		tp := NewTemplateParser(p.ctx, p.reader.Subfragment())
		decl, err := tp.Parse()
		if err != nil {
			return nil, err
		}
		p.seekReader(&tp.reader)
		return decl, nil
	case token.Typedef:
		tp := &TypedefParser{parserBase: newParserBase(p.ctx, p.reader.Subfragment())}
		decl, err := tp.Parse()
		if err != nil {
			return nil, err
		}
		p.seekReader(&tp.reader)
		return decl, nil
	case token.Namespace:
		np := NewNamespaceParser(p.ctx, p.reader.Subfragment())
		decl, err := np.Parse()
		if err != nil {
			return nil, err
		}
		p.seekReader(&np.reader)
		return decl, nil
	case token.Friend:
		return nil, p.errToken(IllegalUseOfKeyword, t)
	case token.Export, token.Import:
		ip := &ImportParser{parserBase: newParserBase(p.ctx, p.reader.Subfragment())}
		decl, err := ip.Parse()
		if err != nil {
			return nil, err
		}
		p.seekReader(&ip.reader)
		return decl, nil
	}

	return p.parseAmbiguous()
}

// parseAmbiguous decides between a declaration and an expression statement.
func (p *ProgramParser) parseAmbiguous() (ast.Statement, error) {
	savePoint := p.reader.Pos()

	dp := NewDeclParser(p.ctx, p.reader.Subfragment(), nil)
	ok, err := dp.DetectDecl()
	if err != nil {
		return nil, err
	}
	if ok {
		decl, err := dp.Parse()
		if err != nil {
			return nil, err
		}
		p.seekReader(&dp.reader)
		return decl, nil
	}

	p.reader.Seek(savePoint)

	stmt, err := p.reader.SubfragmentStatement()
	if err != nil {
		return nil, err
	}
	p.reader.Seek(stmt.Fragment().End)
	ep := NewExpressionParser(p.ctx, stmt)
	expr, err := ep.Parse()
	if err != nil {
		return nil, err
	}
	semicolon, err := p.readKind(token.Semicolon)
	if err != nil {
		return nil, err
	}
	return &ast.ExpressionStatement{Expr: expr, Semicolon: semicolon}, nil
}

func (p *ProgramParser) parseBreak() (ast.Statement, error) {
	kw, _ := p.read()
	semicolon, err := p.readKind(token.Semicolon)
	if err != nil {
		return nil, err
	}
	return &ast.BreakStatement{Keyword: kw, Semicolon: semicolon}, nil
}

func (p *ProgramParser) parseContinue() (ast.Statement, error) {
	kw, _ := p.read()
	semicolon, err := p.readKind(token.Semicolon)
	if err != nil {
		return nil, err
	}
	return &ast.ContinueStatement{Keyword: kw, Semicolon: semicolon}, nil
}

func (p *ProgramParser) parseReturn() (ast.Statement, error) {
	kw, _ := p.read()
	if p.peek().Is(token.Semicolon) {
		semicolon, _ := p.read()
		return &ast.ReturnStatement{Keyword: kw, Semicolon: semicolon}, nil
	}

	stmt, err := p.reader.SubfragmentStatement()
	if err != nil {
		return nil, err
	}
	p.reader.Seek(stmt.Fragment().End)
	ep := NewExpressionParser(p.ctx, stmt)
	value, err := ep.Parse()
	if err != nil {
		return nil, err
	}
	semicolon, err := p.readKind(token.Semicolon)
	if err != nil {
		return nil, err
	}
	return &ast.ReturnStatement{Keyword: kw, Expr: value, Semicolon: semicolon}, nil
}

func (p *ProgramParser) parseCompound() (ast.Statement, error) {
	compound, err := p.reader.SubfragmentDelimiterPair()
	if err != nil {
		return nil, err
	}
	leftBrace, _ := p.read()
	p.reader.Seek(compound.Fragment().End)

	pp := NewProgramParser(p.ctx, compound)
	statements, err := pp.ParseProgram()
	if err != nil {
		return nil, err
	}

	rightBrace, err := p.readKind(token.RightBrace)
	if err != nil {
		return nil, err
	}
	return &ast.CompoundStatement{
		OpeningBrace: leftBrace,
		Statements:   statements,
		ClosingBrace: rightBrace,
	}, nil
}

func (p *ProgramParser) parseIf() (ast.Statement, error) {
	ifkw, _ := p.read()
	stmt := &ast.IfStatement{Keyword: ifkw}

	cond, err := p.parseParenthesizedExpression()
	if err != nil {
		return nil, err
	}
	stmt.Condition = cond

	stmt.Body, err = p.ParseStatement()
	if err != nil {
		return nil, err
	}

	if p.atEnd() || !p.peek().Is(token.Else) {
		return stmt, nil
	}

	stmt.ElseKeyword, _ = p.read()
	stmt.ElseClause, err = p.ParseStatement()
	if err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *ProgramParser) parseWhile() (ast.Statement, error) {
	kw, _ := p.read()
	loop := &ast.WhileLoop{Keyword: kw}

	cond, err := p.parseParenthesizedExpression()
	if err != nil {
		return nil, err
	}
	loop.Condition = cond

	loop.Body, err = p.ParseStatement()
	if err != nil {
		return nil, err
	}
	return loop, nil
}

func (p *ProgramParser) parseParenthesizedExpression() (ast.Expression, error) {
	inner, err := p.reader.SubfragmentDelimiterPair()
	if err != nil {
		return nil, err
	}
	if _, err := p.readKind(token.LeftPar); err != nil {
		return nil, err
	}
	ep := NewExpressionParser(p.ctx, inner)
	expr, err := ep.Parse()
	if err != nil {
		return nil, err
	}
	p.reader.Seek(inner.Fragment().End)
	if _, err := p.readKind(token.RightPar); err != nil {
		return nil, err
	}
	return expr, nil
}

func (p *ProgramParser) parseFor() (ast.Statement, error) {
	forkw, _ := p.read()
	loop := &ast.ForLoop{Keyword: forkw}

	header, err := p.reader.SubfragmentDelimiterPair()
	if err != nil {
		return nil, err
	}

	// init statement: declaration or expression
	{
		dp := NewDeclParser(p.ctx, header.Subfragment(), nil)
		ok, derr := dp.DetectDecl()
		if derr != nil {
			return nil, derr
		}
		if !ok {
			stmtReader, serr := header.SubfragmentStatement()
			if serr != nil {
				return nil, serr
			}
			header.Seek(stmtReader.Fragment().End)
			if stmtReader.Fragment().Size() > 0 {
				ep := NewExpressionParser(p.ctx, stmtReader)
				initExpr, eerr := ep.Parse()
				if eerr != nil {
					return nil, eerr
				}
				semicolon, serr2 := header.ReadKind(token.Semicolon)
				if serr2 != nil {
					return nil, serr2
				}
				loop.Init = &ast.ExpressionStatement{Expr: initExpr, Semicolon: semicolon}
			} else {
				if _, serr2 := header.ReadKind(token.Semicolon); serr2 != nil {
					return nil, serr2
				}
			}
		} else {
			dp.SetDecision(ParsingVariable)
			init, perr := dp.Parse()
			if perr != nil {
				return nil, perr
			}
			header.Seek(dp.reader.Pos())
			loop.Init = init
		}
	}

	// condition
	{
		condReader, serr := header.SubfragmentStatement()
		if serr != nil {
			return nil, serr
		}
		header.Seek(condReader.Fragment().End)
		if condReader.Fragment().Size() > 0 {
			ep := NewExpressionParser(p.ctx, condReader)
			cond, eerr := ep.Parse()
			if eerr != nil {
				return nil, eerr
			}
			loop.Condition = cond
		}
		if _, serr := header.ReadKind(token.Semicolon); serr != nil {
			return nil, serr
		}
	}

	// increment
	{
		incrReader := header.Subfragment()
		if !incrReader.AtEnd() {
			ep := NewExpressionParser(p.ctx, incrReader)
			incr, eerr := ep.Parse()
			if eerr != nil {
				return nil, eerr
			}
			loop.Increment = incr
		}
	}

	p.reader.Seek(header.Fragment().End + 1)

	body, err := p.ParseStatement()
	if err != nil {
		return nil, err
	}
	loop.Body = body
	return loop, nil
}
