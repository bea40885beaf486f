package parser

import (
	"github.com/tmaxwell/go-cscript/internal/ast"
	"github.com/tmaxwell/go-cscript/pkg/token"
)

// Detection selects how much work TypeParser.Detect performs.
type Detection int

const (
	// LookAheadDetection inspects only the next token.
	LookAheadDetection Detection = iota
	// FullFragmentDetection checks that the whole fragment has the shape of
	// a type.
	FullFragmentDetection
)

// TypeParser reads a qualified type: const-qualifier, identifier, reference
// sigil, optional trailing function signature.
type TypeParser struct {
	parserBase
	readFunctionSignature bool
}

// NewTypeParser creates a type parser over a reader.
func NewTypeParser(ctx *Context, reader TokenReader) *TypeParser {
	return &TypeParser{parserBase: newParserBase(ctx, reader), readFunctionSignature: true}
}

// SetReadFunctionSignature controls whether a trailing '(paramlist)' is
// interpreted as a function type.
func (p *TypeParser) SetReadFunctionSignature(on bool) { p.readFunctionSignature = on }

// Parse reads a qualified type.
func (p *TypeParser) Parse() (ast.QualifiedType, error) {
	var ret ast.QualifiedType

	if p.peek().Is(token.Const) {
		ret.ConstQualifier, _ = p.read()
	}

	sub := p.reader.Subfragment()
	idp := NewIdentifierParser(p.ctx, sub, ParseSimpleId|ParseTemplateId|ParseQualifiedId)
	name, err := idp.Parse()
	if err != nil {
		return ast.QualifiedType{}, err
	}
	p.seekReader(&idp.reader)
	ret.Name = name

	if p.atEnd() {
		return ret, nil
	}

	switch p.peek().Kind {
	case token.Const:
		ret.ConstQualifier, _ = p.read()
		if p.atEnd() {
			return ret, nil
		}
		if p.peek().Is(token.BitwiseAnd) || p.peek().Is(token.LogicalAnd) {
			ret.Reference, _ = p.read()
		}
	case token.BitwiseAnd, token.LogicalAnd:
		ret.Reference, _ = p.read()
		if p.atEnd() {
			return ret, nil
		}
		if p.peek().Is(token.Const) {
			ret.ConstQualifier, _ = p.read()
		}
	}

	if p.atEnd() {
		return ret, nil
	}

	if p.readFunctionSignature && p.lookAheadFunctionSignature() {
		save := p.reader.Pos()
		fsig, err := p.tryReadFunctionSignature(ret)
		if err == nil {
			return fsig, nil
		}
		p.reader.Seek(save)
	}
	return ret, nil
}

// Detect reports whether the upcoming tokens can be a type, without
// committing the cursor.
func (p *TypeParser) Detect(opt Detection) bool {
	if opt == LookAheadDetection {
		t := p.peek()
		if t.Is(token.Const) {
			return true
		}
		return isTypeStart(t)
	}

	if !p.Detect(LookAheadDetection) {
		return false
	}

	// 1. No two consecutive identifiers, as in 'int v' ('const T' is fine).
	// 2. After an identifier: only '<', '::', '&' or '&&'.
	// 3. '&' and '&&' only at the very end.
	// 4. Proper nesting of '<' and '>'.
	prevWasIdentifier := false
	var counter DelimitersCounter
	templateDelimiters := 0
	n := p.reader.Fragment().End - p.reader.Pos()

	for i := 0; i < n; i++ {
		t := p.peekAt(i)

		if t.Is(token.Const) {
			prevWasIdentifier = false
			continue
		}

		if prevWasIdentifier && !t.Is(token.LeftAngle) && !t.Is(token.ScopeResolution) &&
			!t.Is(token.BitwiseAnd) && !t.Is(token.LogicalAnd) {
			return false
		}

		if t.Is(token.BitwiseAnd) || t.Is(token.LogicalAnd) {
			if i != n-1 {
				return false
			}
		}

		counter.Feed(t)
		if counter.Balanced() {
			switch t.Kind {
			case token.LeftAngle:
				templateDelimiters++
			case token.RightAngle:
				templateDelimiters--
			case token.RightRightAngle:
				templateDelimiters -= 2
			}
		}

		if isTypeStart(t) {
			if prevWasIdentifier {
				return false
			}
			prevWasIdentifier = true
		} else {
			prevWasIdentifier = false
		}
	}

	return templateDelimiters == 0
}

func isTypeStart(t token.Token) bool {
	switch t.Kind {
	case token.Void, token.Bool, token.Char, token.Int, token.Float,
		token.Double, token.Auto, token.Identifier:
		return true
	}
	return false
}

func (p *TypeParser) lookAheadFunctionSignature() bool {
	if !p.peek().Is(token.LeftPar) {
		return false
	}

	params, err := p.reader.SubfragmentDelimiterPair()
	if err != nil {
		return false
	}

	for !params.AtEnd() {
		elem, err := params.SubfragmentListElement()
		if err != nil {
			return false
		}
		tp := NewTypeParser(p.ctx, elem)
		if !tp.Detect(FullFragmentDetection) {
			return false
		}
		params.Seek(elem.Fragment().End)
		if !params.AtEnd() {
			if _, err := params.ReadKind(token.Comma); err != nil {
				return false
			}
		}
	}
	return true
}

func (p *TypeParser) tryReadFunctionSignature(rt ast.QualifiedType) (ast.QualifiedType, error) {
	var ret ast.QualifiedType
	ret.FunctionType = &ast.FunctionType{ReturnType: rt}

	params, err := p.reader.SubfragmentDelimiterPair()
	if err != nil {
		return ast.QualifiedType{}, err
	}

	for !params.AtEnd() {
		elem, err := params.SubfragmentListElement()
		if err != nil {
			return ast.QualifiedType{}, err
		}
		params.Seek(elem.Fragment().End)
		tp := NewTypeParser(p.ctx, elem)
		param, err := tp.Parse()
		if err != nil {
			return ast.QualifiedType{}, err
		}
		if !tp.atEnd() {
			return ast.QualifiedType{}, tp.errToken(UnexpectedToken, tp.peek())
		}
		ret.FunctionType.Params = append(ret.FunctionType.Params, param)

		if !params.AtEnd() {
			if _, err := params.ReadKind(token.Comma); err != nil {
				return ast.QualifiedType{}, err
			}
		}
	}

	p.reader.Seek(params.Fragment().End + 1)

	if p.atEnd() {
		return ret, nil
	}
	if p.peek().Is(token.Const) {
		ret.ConstQualifier, _ = p.read()
	}
	if !p.atEnd() && p.peek().Is(token.BitwiseAnd) {
		ret.Reference, _ = p.read()
	}
	return ret, nil
}

// FunctionParamParser reads one function parameter: type, optional name,
// optional default value.
type FunctionParamParser struct {
	parserBase
}

// NewFunctionParamParser creates a parameter parser over a reader.
func NewFunctionParamParser(ctx *Context, reader TokenReader) *FunctionParamParser {
	return &FunctionParamParser{parserBase: newParserBase(ctx, reader)}
}

// Parse reads the parameter.
func (p *FunctionParamParser) Parse() (ast.FunctionParameter, error) {
	var fp ast.FunctionParameter

	sub := p.reader.Subfragment()
	tp := NewTypeParser(p.ctx, sub)
	qt, err := tp.Parse()
	if err != nil {
		return fp, err
	}
	p.seekReader(&tp.reader)
	fp.Type = qt

	if p.atEnd() {
		return fp, nil
	}

	sub = p.reader.Subfragment()
	idp := NewIdentifierParser(p.ctx, sub, ParseOnlySimpleId)
	name, err := idp.Parse()
	if err != nil {
		return fp, err
	}
	p.seekReader(&idp.reader)
	fp.Name = name.Base()

	if p.atEnd() {
		return fp, nil
	}

	if _, err := p.readKind(token.Eq); err != nil {
		return fp, err
	}
	sub = p.reader.Subfragment()
	ep := NewExpressionParser(p.ctx, sub)
	def, err := ep.Parse()
	if err != nil {
		return fp, err
	}
	p.seekReader(&ep.reader)
	fp.DefaultValue = def

	return fp, nil
}
