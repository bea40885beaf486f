package parser

import (
	"github.com/tmaxwell/go-cscript/internal/ast"
	"github.com/tmaxwell/go-cscript/pkg/token"
)

// LiteralParser reads a single literal token into a literal node.
type LiteralParser struct {
	parserBase
}

// Parse reads the literal.
func (p *LiteralParser) Parse() (ast.Expression, error) {
	t, err := p.read()
	if err != nil {
		return nil, err
	}
	switch t.Kind {
	case token.True, token.False:
		return &ast.BoolLiteral{Tok: t}, nil
	case token.IntegerLiteral, token.BinaryLiteral, token.OctalLiteral, token.HexadecimalLiteral:
		return &ast.IntegerLiteral{Tok: t}, nil
	case token.DecimalLiteral:
		return &ast.FloatLiteral{Tok: t}, nil
	case token.StringLiteral:
		return &ast.StringLiteral{Tok: t}, nil
	case token.UserDefinedLiteral:
		return &ast.UserDefinedLiteral{Tok: t}, nil
	}
	return nil, p.errToken(ExpectedLiteral, t)
}

// ExpressionParser reads a full expression from its fragment. Operands and
// operators are collected in a single pass, then the tree is built by
// repeatedly splitting around the weakest-binding operator.
type ExpressionParser struct {
	parserBase
}

// NewExpressionParser creates an expression parser over a reader.
func NewExpressionParser(ctx *Context, reader TokenReader) *ExpressionParser {
	return &ExpressionParser{parserBase: newParserBase(ctx, reader)}
}

// Parse reads the expression.
func (p *ExpressionParser) Parse() (ast.Expression, error) {
	var operators []token.Token
	var operands []ast.Expression

	operand, err := p.readOperand()
	if err != nil {
		return nil, err
	}
	operands = append(operands, operand)

	for !p.atEnd() {
		op, err := p.readBinaryOperator()
		if err != nil {
			return nil, err
		}
		operators = append(operators, op)

		operand, err := p.readOperand()
		if err != nil {
			return nil, err
		}
		operands = append(operands, operand)
	}

	return p.buildExpression(operands, operators)
}

func (p *ExpressionParser) readOperand() (ast.Expression, error) {
	if p.atEnd() {
		return nil, p.err(UnexpectedFragmentEnd)
	}

	posBackup := p.reader.Pos()
	t := p.peek()

	var operand ast.Expression

	switch {
	case t.IsOperator():
		if !isPrefixOperator(t) {
			return nil, p.errToken(ExpectedPrefixOperator, t)
		}
		op, _ := p.read()
		inner, err := p.readOperand()
		if err != nil {
			return nil, err
		}
		operand = &ast.Operation{OperatorTok: op, Arg1: inner}

	case t.Is(token.LeftPar):
		if p.peekAt(1).Is(token.RightPar) {
			return nil, p.err(InvalidEmptyOperand)
		}
		inner, err := p.reader.SubfragmentDelimiterPair()
		if err != nil {
			return nil, err
		}
		p.reader.Seek(inner.Fragment().End)
		ep := NewExpressionParser(p.ctx, inner)
		expr, err := ep.Parse()
		if err != nil {
			return nil, err
		}
		if _, err := p.readKind(token.RightPar); err != nil {
			return nil, err
		}
		operand = expr

	case t.Is(token.LeftBracket):
		// array literal or lambda
		lp := NewLambdaParser(p.ctx, p.reader.Subfragment())
		expr, err := lp.Parse()
		if err != nil {
			return nil, err
		}
		p.seekReader(&lp.reader)
		operand = expr

	case t.Is(token.LeftBrace):
		lb, _ := p.read()
		p.reader.Seek(posBackup)
		listReader, err := p.reader.SubfragmentDelimiterPair()
		if err != nil {
			return nil, err
		}
		p.reader.Seek(listReader.Fragment().End)
		list := &ast.ListExpression{LeftBrace: lb}
		for !listReader.AtEnd() {
			elem, err := listReader.SubfragmentListElement()
			if err != nil {
				return nil, err
			}
			listReader.Seek(elem.Fragment().End)
			ep := NewExpressionParser(p.ctx, elem)
			e, err := ep.Parse()
			if err != nil {
				return nil, err
			}
			list.Elements = append(list.Elements, e)
			if !listReader.AtEnd() {
				if _, err := listReader.ReadKind(token.Comma); err != nil {
					return nil, err
				}
			}
		}
		rb, err := p.readKind(token.RightBrace)
		if err != nil {
			return nil, err
		}
		list.RightBrace = rb
		operand = list

	case t.IsLiteral():
		lp := &LiteralParser{parserBase: newParserBase(p.ctx, p.reader.Subfragment())}
		expr, err := lp.Parse()
		if err != nil {
			return nil, err
		}
		p.seekReader(&lp.reader)
		operand = expr

	default:
		idp := NewIdentifierParser(p.ctx, p.reader.Subfragment(), ParseAll)
		id, err := idp.Parse()
		if err != nil {
			return nil, err
		}
		p.seekReader(&idp.reader)
		operand = id
	}

	for !p.atEnd() {
		t = p.peek()
		switch {
		case t.Is(token.PlusPlus) || t.Is(token.MinusMinus):
			op, _ := p.read()
			operand = &ast.Operation{OperatorTok: op, Arg1: operand, Postfix: true}

		case t.Is(token.Dot):
			dot, _ := p.read()
			idp := NewIdentifierParser(p.ctx, p.reader.Subfragment(), ParseSimpleId|ParseTemplateId)
			member, err := idp.Parse()
			if err != nil {
				return nil, err
			}
			p.seekReader(&idp.reader)
			operand = &ast.MemberAccess{Object: operand, Dot: dot, Member: member}

		case t.Is(token.LeftPar):
			leftpar := t
			argsReader, err := p.reader.SubfragmentDelimiterPair()
			if err != nil {
				return nil, err
			}
			p.reader.Seek(argsReader.Fragment().End)
			alp := &ExpressionListParser{parserBase: newParserBase(p.ctx, argsReader)}
			args, err := alp.Parse()
			if err != nil {
				return nil, err
			}
			rightpar, err := p.readKind(token.RightPar)
			if err != nil {
				return nil, err
			}
			operand = &ast.FunctionCall{Callee: operand, LeftPar: leftpar, Args: args, RightPar: rightpar}

		case t.Is(token.LeftBracket):
			subscriptReader, err := p.reader.SubfragmentDelimiterPair()
			if err != nil {
				return nil, err
			}
			leftBracket, _ := p.read()
			if subscriptReader.Fragment().Size() == 0 {
				return nil, p.err(InvalidEmptyBrackets)
			}
			ep := NewExpressionParser(p.ctx, subscriptReader)
			arg, err := ep.Parse()
			if err != nil {
				return nil, err
			}
			p.seekReader(&ep.reader)
			rightBracket, err := p.readKind(token.RightBracket)
			if err != nil {
				return nil, err
			}
			operand = &ast.ArraySubscript{Array: operand, LeftBracket: leftBracket, Index: arg, RightBracket: rightBracket}

		case t.Is(token.LeftBrace):
			typeName, ok := operand.(ast.Identifier)
			if !ok {
				return nil, p.errToken(UnexpectedToken, t)
			}
			braceReader, err := p.reader.SubfragmentDelimiterPair()
			if err != nil {
				return nil, err
			}
			leftBrace, _ := p.read()
			alp := &ExpressionListParser{parserBase: newParserBase(p.ctx, braceReader)}
			args, err := alp.Parse()
			if err != nil {
				return nil, err
			}
			p.reader.Seek(braceReader.Fragment().End)
			rightBrace, err := p.readKind(token.RightBrace)
			if err != nil {
				return nil, err
			}
			operand = &ast.BraceConstruction{Temporary: typeName, LeftBrace: leftBrace, Args: args, RightBrace: rightBrace}

		case isInfixOperator(t) || t.Is(token.QuestionMark) || t.Is(token.Colon):
			return operand, nil

		default:
			if _, isTemplate := operand.(*ast.TemplateIdentifier); isTemplate {
				// Template identifiers cannot be used as operands; re-read
				// the name with '<' as a comparison operator.
				p.reader.Seek(posBackup)
				idp := NewIdentifierParser(p.ctx, p.reader.Subfragment(), ParseSimpleId|ParseOperatorName|ParseQualifiedId)
				id, err := idp.Parse()
				if err != nil {
					return nil, err
				}
				p.seekReader(&idp.reader)
				operand = id
				continue
			}
			return nil, p.errToken(UnexpectedToken, t)
		}
	}

	return operand, nil
}

func (p *ExpressionParser) readBinaryOperator() (token.Token, error) {
	t := p.peek()

	if t.Is(token.QuestionMark) || t.Is(token.Colon) {
		return p.read()
	}
	if !t.IsOperator() && !t.Is(token.Comma) {
		return token.Token{}, p.errToken(ExpectedOperator, t)
	}
	if !isInfixOperator(t) {
		return token.Token{}, p.errToken(ExpectedBinaryOperator, t)
	}
	return p.read()
}

func (p *ExpressionParser) buildExpression(operands []ast.Expression, operators []token.Token) (ast.Expression, error) {
	if len(operands) == 1 {
		return operands[0], nil
	}
	return p.build(operands, operators)
}

func operatorPrecedence(tok token.Token) int {
	if tok.Is(token.Colon) {
		return -66
	}
	if tok.Is(token.QuestionMark) {
		return conditionalPrecedence
	}
	return infixPrecedences[tok.Kind]
}

// build splits operands around the weakest-binding operator and recurses on
// both sides; the conditional operator pairs each '?' with its matching ':'.
func (p *ExpressionParser) build(operands []ast.Expression, operators []token.Token) (ast.Expression, error) {
	if len(operators) == 0 {
		return operands[0], nil
	}

	index := 0
	preced := operatorPrecedence(operators[0])
	for i := 1; i < len(operators); i++ {
		pr := operatorPrecedence(operators[i])
		if pr > preced {
			index = i
			preced = pr
		} else if pr == preced && associativity(preced) == LeftToRight {
			index = i
		}
	}

	if operators[index].Is(token.QuestionMark) {
		cond, err := p.build(operands[:index+1], operators[:index])
		if err != nil {
			return nil, err
		}

		colonIndex := -1
		depth := 0
		for j := index + 1; j < len(operators); j++ {
			if operators[j].Is(token.QuestionMark) {
				depth++
			} else if operators[j].Is(token.Colon) {
				if depth == 0 {
					colonIndex = j
					break
				}
				depth--
			}
		}
		if colonIndex < 0 {
			return nil, p.err(MissingConditionalColon)
		}

		onTrue, err := p.build(operands[index+1:colonIndex+1], operators[index+1:colonIndex])
		if err != nil {
			return nil, err
		}
		onFalse, err := p.build(operands[colonIndex+1:], operators[colonIndex+1:])
		if err != nil {
			return nil, err
		}
		return &ast.ConditionalExpression{
			Condition:    cond,
			QuestionMark: operators[index],
			OnTrue:       onTrue,
			Colon:        operators[colonIndex],
			OnFalse:      onFalse,
		}, nil
	}

	lhs, err := p.build(operands[:index+1], operators[:index])
	if err != nil {
		return nil, err
	}
	rhs, err := p.build(operands[index+1:], operators[index+1:])
	if err != nil {
		return nil, err
	}
	return &ast.Operation{OperatorTok: operators[index], Arg1: lhs, Arg2: rhs}, nil
}

// ExpressionListParser reads a comma-separated expression list.
type ExpressionListParser struct {
	parserBase
}

// NewExpressionListParser creates a list parser over a reader.
func NewExpressionListParser(ctx *Context, reader TokenReader) *ExpressionListParser {
	return &ExpressionListParser{parserBase: newParserBase(ctx, reader)}
}

// Parse reads the list.
func (p *ExpressionListParser) Parse() ([]ast.Expression, error) {
	var result []ast.Expression
	for !p.atEnd() {
		elem, err := p.reader.SubfragmentListElement()
		if err != nil {
			return nil, err
		}
		p.reader.Seek(elem.Fragment().End)
		ep := NewExpressionParser(p.ctx, elem)
		e, err := ep.Parse()
		if err != nil {
			return nil, err
		}
		result = append(result, e)
		if !p.atEnd() {
			if _, err := p.read(); err != nil { // the comma
				return nil, err
			}
		}
	}
	return result, nil
}
