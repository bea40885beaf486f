package parser

import (
	"github.com/tmaxwell/go-cscript/internal/ast"
	"github.com/tmaxwell/go-cscript/pkg/token"
)

// Decision is the state of the declaration parser's disambiguation machine.
type Decision int

const (
	Undecided Decision = iota
	NotADecl
	ParsingVariable
	ParsingFunction
	ParsingConstructor
	ParsingDestructor
	ParsingCastDecl
)

// DeclParser distinguishes and parses variable, function, constructor,
// destructor, cast and operator-overload declarations.
//
// Disambiguation is driven by the tokens that can only appear in one of the
// forms: '=', '{' after the declarator commits a variable, a parameter list
// followed by 'const' or '{' commits a function, a '~' before the class name
// commits a destructor, and so on. When the parser reaches 'T x(...)' it
// concurrently parses the parenthesized range as call arguments and as a
// parameter list until one of the interpretations fails.
type DeclParser struct {
	parserBase

	decision          Decision
	className         ast.Identifier
	paramsAlreadyRead bool
	declaratorOptions int

	attribute  *ast.AttributeDeclaration
	typ        ast.QualifiedType
	name       ast.Identifier
	virtualKw  token.Token
	staticKw   token.Token
	explicitKw token.Token

	varDecl  *ast.VariableDecl
	funcDecl *ast.FunctionDecl // view into result's embedded FunctionDecl
	result   ast.Declaration   // the concrete function-like declaration
}

// NewDeclParser creates a declaration parser. className is non-nil when
// parsing a class member and enables the constructor/destructor/cast forms.
func NewDeclParser(ctx *Context, reader TokenReader, className ast.Identifier) *DeclParser {
	return &DeclParser{
		parserBase:        newParserBase(ctx, reader),
		className:         className,
		declaratorOptions: ParseSimpleId | ParseOperatorName,
	}
}

// SetDeclaratorOptions overrides the identifier options used for the
// declarator; template parsers allow template-ids there.
func (p *DeclParser) SetDeclaratorOptions(opts int) { p.declaratorOptions = opts }

// Decision returns the current state.
func (p *DeclParser) Decision() Decision { return p.decision }

// SetDecision forces a state; only valid while undecided.
func (p *DeclParser) SetDecision(d Decision) {
	p.decision = d
	if d == ParsingVariable {
		p.funcDecl = nil
		p.result = nil
	} else if p.isParsingFunction() {
		p.varDecl = nil
		if p.funcDecl == nil {
			fd := &ast.FunctionDecl{
				ReturnType: p.typ,
				Name:       p.name,
			}
			fd.Specifiers.Static = p.staticKw
			fd.Specifiers.Virtual = p.virtualKw
			p.funcDecl = fd
			p.result = fd
		}
	}
}

func (p *DeclParser) isParsingFunction() bool { return p.decision >= ParsingFunction }
func (p *DeclParser) isParsingMember() bool   { return p.className != nil }

// DetectDecl reads the prefix of the fragment until the declaration form is
// known. It returns false when the fragment is not a declaration at all; a
// non-nil error reports malformed input on a committed path.
func (p *DeclParser) DetectDecl() (bool, error) {
	if err := p.readOptionalAttribute(); err != nil {
		return false, err
	}
	if err := p.readOptionalDeclSpecifiers(); err != nil {
		return false, err
	}

	if p.isParsingMember() {
		if ok, err := p.detectDtorDecl(); ok || err != nil {
			return ok, err
		}
		if ok, err := p.detectCastDecl(); ok || err != nil {
			return ok, err
		}
		if ok, err := p.detectCtorDecl(); ok || err != nil {
			return ok, err
		}
	}

	if ok, err := p.readTypeSpecifier(); !ok || err != nil {
		return false, err
	}

	if p.detectBeforeReadingDeclarator() {
		return true, nil
	}

	if ok, err := p.readDeclarator(); !ok || err != nil {
		return false, err
	}

	p.detectFromDeclarator()

	if p.peek().Is(token.Semicolon) {
		p.decision = ParsingVariable
	}

	return true, nil
}

func (p *DeclParser) readOptionalAttribute() error {
	ap := &AttributeParser{parserBase: newParserBase(p.ctx, p.reader.Subfragment())}
	if !ap.Ready() {
		return nil
	}
	attr, err := ap.Parse()
	if err != nil {
		return err
	}
	p.seekReader(&ap.reader)
	p.attribute = attr
	return nil
}

func (p *DeclParser) readOptionalDeclSpecifiers() error {
	if p.peek().Is(token.Virtual) {
		p.virtualKw, _ = p.read()
		if !p.isParsingMember() {
			return p.errToken(IllegalUseOfKeyword, p.virtualKw)
		}
	}
	if p.peek().Is(token.Static) {
		p.staticKw, _ = p.read()
	}
	if p.peek().Is(token.Explicit) {
		p.explicitKw, _ = p.read()
		if !p.isParsingMember() {
			return p.errToken(IllegalUseOfKeyword, p.explicitKw)
		}
	}
	return nil
}

func (p *DeclParser) readTypeSpecifier() (bool, error) {
	tp := NewTypeParser(p.ctx, p.reader.Subfragment())
	qt, err := tp.Parse()
	if err != nil {
		if p.decision != Undecided {
			return false, err
		}
		p.decision = NotADecl
		return false, nil
	}
	p.seekReader(&tp.reader)
	p.typ = qt
	return true, nil
}

// detectBeforeReadingDeclarator catches constructor declarations whose name
// was misread as a type, e.g. 'A(int, int) : a(0) { }' where 'A(int, int)'
// parses as a function type.
func (p *DeclParser) detectBeforeReadingDeclarator() bool {
	if !p.isParsingMember() {
		return false
	}

	t := p.peek()
	if p.typ.FunctionType != nil && (t.Is(token.Colon) || t.Is(token.LeftBrace) || t.Is(token.Eq)) {
		rt := p.typ.FunctionType.ReturnType
		if !rt.IsConst() && !rt.IsRef() && rt.FunctionType == nil && rt.Name != nil && p.isClassName(rt.Name) {
			p.decision = ParsingConstructor
			ctor := &ast.ConstructorDecl{}
			ctor.Name = rt.Name
			ctor.Attribute = p.attribute
			ctor.Specifiers.Explicit = p.explicitKw
			for _, pt := range p.typ.FunctionType.Params {
				ctor.Params = append(ctor.Params, ast.FunctionParameter{Type: pt})
			}
			p.funcDecl = &ctor.FunctionDecl
			p.result = ctor
			p.paramsAlreadyRead = true
			p.typ = ast.QualifiedType{}
			return true
		}
	} else if t.Is(token.LeftPar) {
		if p.typ.FunctionType == nil && !p.typ.IsRef() && !p.typ.IsConst() && p.typ.Name != nil && p.isClassName(p.typ.Name) {
			p.decision = ParsingConstructor
			ctor := &ast.ConstructorDecl{}
			ctor.Name = p.typ.Name
			ctor.Attribute = p.attribute
			ctor.Specifiers.Explicit = p.explicitKw
			p.funcDecl = &ctor.FunctionDecl
			p.result = ctor
			p.typ = ast.QualifiedType{}
			return true
		}
	}

	return false
}

func (p *DeclParser) readDeclarator() (bool, error) {
	idp := NewIdentifierParser(p.ctx, p.reader.Subfragment(), p.declaratorOptions)

	if p.decision != Undecided {
		name, err := idp.Parse()
		if err != nil {
			return false, err
		}
		p.seekReader(&idp.reader)
		p.name = name
		return true, nil
	}

	if !idp.LookAhead() {
		p.decision = NotADecl
		return false, nil
	}
	name, err := idp.Parse()
	if err != nil {
		p.decision = NotADecl
		return false, nil
	}
	p.seekReader(&idp.reader)
	p.name = name
	return true, nil
}

func (p *DeclParser) detectFromDeclarator() {
	switch p.name.(type) {
	case *ast.OperatorName, *ast.LiteralOperatorName:
		p.decision = ParsingFunction
		overload := &ast.OperatorOverloadDecl{}
		overload.Name = p.name
		overload.ReturnType = p.typ
		overload.Attribute = p.attribute
		overload.Specifiers.Static = p.staticKw
		p.funcDecl = &overload.FunctionDecl
		p.result = overload
	default:
		if p.virtualKw.IsValid() {
			p.decision = ParsingFunction
			fd := &ast.FunctionDecl{ReturnType: p.typ, Name: p.name, Attribute: p.attribute}
			fd.Specifiers.Virtual = p.virtualKw
			p.funcDecl = fd
			p.result = fd
		}
	}
}

// Parse produces the declaration committed to by DetectDecl.
func (p *DeclParser) Parse() (ast.Declaration, error) {
	switch p.decision {
	case ParsingDestructor:
		return p.parseDestructor()
	case ParsingConstructor:
		return p.parseConstructor()
	case ParsingCastDecl, ParsingFunction:
		return p.parseFunctionDecl()
	case ParsingVariable:
		if p.varDecl == nil {
			p.varDecl = &ast.VariableDecl{VarType: p.typ, Name: p.name.Base(), StaticSpec: p.staticKw, Attribute: p.attribute}
		}
		return p.parseVarDecl()
	}

	// Still undecided: 'T x' read so far.
	switch p.peek().Kind {
	case token.LeftBrace, token.Eq:
		p.decision = ParsingVariable
		p.varDecl = &ast.VariableDecl{VarType: p.typ, Name: p.name.Base(), StaticSpec: p.staticKw, Attribute: p.attribute}
		return p.parseVarDecl()
	case token.LeftPar:
		fd := &ast.FunctionDecl{ReturnType: p.typ, Name: p.name, Attribute: p.attribute}
		fd.Specifiers.Static = p.staticKw
		fd.Specifiers.Virtual = p.virtualKw
		p.funcDecl = fd
		p.result = fd
		p.varDecl = &ast.VariableDecl{VarType: p.typ, Name: p.name.Base(), StaticSpec: p.staticKw, Attribute: p.attribute}
	default:
		return nil, p.errToken(UnexpectedToken, p.peek())
	}

	if err := p.readArgsOrParams(); err != nil {
		return nil, err
	}

	if err := p.readOptionalConst(); err != nil {
		return nil, err
	}

	if done, err := p.readOptionalBodySpecifiers(); done || err != nil {
		if err != nil {
			return nil, err
		}
		return p.result, nil
	}

	switch p.peek().Kind {
	case token.LeftBrace:
		if p.decision == ParsingVariable {
			return nil, p.errToken(UnexpectedToken, p.peek())
		}
		p.decision = ParsingFunction
		p.varDecl = nil
		body, err := p.readFunctionBody()
		if err != nil {
			return nil, err
		}
		p.funcDecl.Body = body
		p.funcDecl.BodyKind = ast.BodyCompound
		return p.result, nil
	case token.Semicolon:
		if p.decision == ParsingFunction {
			return nil, p.errToken(UnexpectedToken, p.peek())
		}
		p.varDecl.Semicolon, _ = p.read()
		return p.varDecl, nil
	}

	return nil, p.errToken(UnexpectedToken, p.peek())
}

func (p *DeclParser) parseVarDecl() (ast.Declaration, error) {
	switch p.peek().Kind {
	case token.Eq:
		eq, _ := p.read()
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
		p.varDecl.Init = &ast.AssignmentInitialization{EqualSign: eq, Value: expr}
	case token.LeftBrace:
		leftBrace := p.peek()
		inner, err := p.reader.SubfragmentDelimiterPair()
		if err != nil {
			return nil, err
		}
		p.reader.Seek(inner.Fragment().End)
		alp := NewExpressionListParser(p.ctx, inner)
		args, err := alp.Parse()
		if err != nil {
			return nil, err
		}
		rb, err := p.readKind(token.RightBrace)
		if err != nil {
			return nil, err
		}
		p.varDecl.Init = &ast.BraceInitialization{LeftBrace: leftBrace, Args: args, RightBrace: rb}
	case token.LeftPar:
		leftPar := p.peek()
		inner, err := p.reader.SubfragmentDelimiterPair()
		if err != nil {
			return nil, err
		}
		p.reader.Seek(inner.Fragment().End)
		alp := NewExpressionListParser(p.ctx, inner)
		args, err := alp.Parse()
		if err != nil {
			return nil, err
		}
		rp, err := p.readKind(token.RightPar)
		if err != nil {
			return nil, err
		}
		p.varDecl.Init = &ast.ConstructorInitialization{LeftPar: leftPar, Args: args, RightPar: rp}
	}

	semicolon, err := p.readKind(token.Semicolon)
	if err != nil {
		return nil, err
	}
	p.varDecl.Semicolon = semicolon
	return p.varDecl, nil
}

func (p *DeclParser) parseFunctionDecl() (ast.Declaration, error) {
	if err := p.readParams(); err != nil {
		return nil, err
	}
	if err := p.readOptionalConst(); err != nil {
		return nil, err
	}
	if done, err := p.readOptionalBodySpecifiers(); done || err != nil {
		if err != nil {
			return nil, err
		}
		return p.result, nil
	}
	body, err := p.readFunctionBody()
	if err != nil {
		return nil, err
	}
	p.funcDecl.Body = body
	p.funcDecl.BodyKind = ast.BodyCompound
	return p.result, nil
}

func (p *DeclParser) parseConstructor() (ast.Declaration, error) {
	if !p.paramsAlreadyRead {
		if err := p.readParams(); err != nil {
			return nil, err
		}
	}

	if err := p.readOptionalMemberInitializers(); err != nil {
		return nil, err
	}

	if done, err := p.readOptionalDeleteOrDefault(); done || err != nil {
		if err != nil {
			return nil, err
		}
		return p.result, nil
	}

	body, err := p.readFunctionBody()
	if err != nil {
		return nil, err
	}
	p.funcDecl.Body = body
	p.funcDecl.BodyKind = ast.BodyCompound
	return p.result, nil
}

func (p *DeclParser) readOptionalMemberInitializers() error {
	if !p.peek().Is(token.Colon) {
		return nil
	}
	ctor := p.result.(*ast.ConstructorDecl)
	p.read()

	for {
		idp := NewIdentifierParser(p.ctx, p.reader.Subfragment(), ParseOnlySimpleId|ParseTemplateId)
		id, err := idp.Parse()
		if err != nil {
			return err
		}
		p.seekReader(&idp.reader)

		switch p.peek().Kind {
		case token.LeftBrace:
			leftBrace := p.peek()
			inner, err := p.reader.SubfragmentDelimiterPair()
			if err != nil {
				return err
			}
			p.reader.Seek(inner.Fragment().End)
			alp := NewExpressionListParser(p.ctx, inner)
			args, err := alp.Parse()
			if err != nil {
				return err
			}
			rb, err := p.readKind(token.RightBrace)
			if err != nil {
				return err
			}
			ctor.MemberInits = append(ctor.MemberInits, ast.MemberInitialization{
				Name: id,
				Init: &ast.BraceInitialization{LeftBrace: leftBrace, Args: args, RightBrace: rb},
			})
		case token.LeftPar:
			leftPar := p.peek()
			inner, err := p.reader.SubfragmentDelimiterPair()
			if err != nil {
				return err
			}
			p.reader.Seek(inner.Fragment().End)
			alp := NewExpressionListParser(p.ctx, inner)
			args, err := alp.Parse()
			if err != nil {
				return err
			}
			rp, err := p.readKind(token.RightPar)
			if err != nil {
				return err
			}
			ctor.MemberInits = append(ctor.MemberInits, ast.MemberInitialization{
				Name: id,
				Init: &ast.ConstructorInitialization{LeftPar: leftPar, Args: args, RightPar: rp},
			})
		}

		if p.peek().Is(token.LeftBrace) {
			return nil
		}
		if _, err := p.readKind(token.Comma); err != nil {
			return err
		}
	}
}

func (p *DeclParser) parseDestructor() (ast.Declaration, error) {
	if _, err := p.readKind(token.LeftPar); err != nil {
		return nil, err
	}
	if _, err := p.readKind(token.RightPar); err != nil {
		return nil, err
	}

	if done, err := p.readOptionalDeleteOrDefault(); done || err != nil {
		if err != nil {
			return nil, err
		}
		return p.result, nil
	}

	body, err := p.readFunctionBody()
	if err != nil {
		return nil, err
	}
	p.funcDecl.Body = body
	p.funcDecl.BodyKind = ast.BodyCompound
	return p.result, nil
}

func (p *DeclParser) readParams() error {
	params, err := p.reader.SubfragmentDelimiterPair()
	if err != nil {
		return err
	}
	p.funcDecl.LeftPar = p.peek()
	p.reader.Seek(params.Fragment().End)

	for !params.AtEnd() {
		elem, err := params.SubfragmentListElement()
		if err != nil {
			return err
		}
		params.Seek(elem.Fragment().End)
		pp := NewFunctionParamParser(p.ctx, elem)
		param, err := pp.Parse()
		if err != nil {
			return err
		}
		p.funcDecl.Params = append(p.funcDecl.Params, param)
		if !params.AtEnd() {
			if _, err := params.ReadKind(token.Comma); err != nil {
				return err
			}
		}
	}

	rp, err := p.readKind(token.RightPar)
	if err != nil {
		return err
	}
	p.funcDecl.RightPar = rp
	return nil
}

// readArgsOrParams concurrently parses the parenthesized range as
// call-argument list and as parameter list until a failure commits one
// interpretation.
func (p *DeclParser) readArgsOrParams() error {
	leftPar := p.peek()

	argsOrParams, err := p.reader.SubfragmentDelimiterPair()
	if err != nil {
		return err
	}
	p.reader.Seek(argsOrParams.Fragment().End)

	if p.decision == Undecided || p.decision == ParsingVariable {
		p.varDecl.Init = &ast.ConstructorInitialization{LeftPar: leftPar}
	}
	p.funcDecl.LeftPar = leftPar

	for !argsOrParams.AtEnd() {
		elem, err := argsOrParams.SubfragmentListElement()
		if err != nil {
			return err
		}
		argsOrParams.Seek(elem.Fragment().End)

		if p.decision == Undecided || p.decision == ParsingVariable {
			ep := NewExpressionParser(p.ctx, elem)
			expr, eerr := ep.Parse()
			if eerr != nil {
				if p.decision == ParsingVariable {
					return eerr
				}
				p.decision = ParsingFunction
				p.varDecl = nil
			} else {
				init := p.varDecl.Init.(*ast.ConstructorInitialization)
				init.Args = append(init.Args, expr)
			}
		}

		if p.decision == Undecided || p.isParsingFunction() {
			pp := NewFunctionParamParser(p.ctx, elem)
			param, perr := pp.Parse()
			if perr != nil {
				if p.isParsingFunction() {
					return perr
				}
				p.decision = ParsingVariable
				p.funcDecl = nil
				p.result = nil
			} else {
				p.funcDecl.Params = append(p.funcDecl.Params, param)
			}
		}

		if !argsOrParams.AtEnd() {
			if _, err := argsOrParams.ReadKind(token.Comma); err != nil {
				return err
			}
		}
	}

	rightPar, err := p.readKind(token.RightPar)
	if err != nil {
		return err
	}
	if p.varDecl != nil {
		p.varDecl.Init.(*ast.ConstructorInitialization).RightPar = rightPar
	}
	if p.funcDecl != nil {
		p.funcDecl.RightPar = rightPar
	}
	return nil
}

func (p *DeclParser) readOptionalConst() error {
	if !p.peek().Is(token.Const) {
		return nil
	}
	if p.decision == ParsingVariable {
		return p.errToken(UnexpectedToken, p.peek())
	}
	p.decision = ParsingFunction
	p.varDecl = nil
	p.funcDecl.ConstQual, _ = p.read()
	return nil
}

// readOptionalSpecifier recognizes '= delete', '= default' and '= 0'.
func (p *DeclParser) readOptionalSpecifier(match func(token.Token) bool, kind ast.FunctionBodyKind) (bool, error) {
	if p.funcDecl == nil || p.decision == ParsingVariable {
		return false, nil
	}
	if !p.peek().Is(token.Eq) {
		return false, nil
	}

	save := p.reader.Pos()
	eq, _ := p.read()
	if p.atEnd() {
		return false, p.err(UnexpectedEndOfInput)
	}
	if !match(p.peek()) {
		p.reader.Seek(save)
		return false, nil
	}
	p.read()

	p.funcDecl.EqualSign = eq
	p.funcDecl.BodyKind = kind
	p.decision = ParsingFunction
	p.varDecl = nil

	if p.atEnd() {
		return false, p.err(UnexpectedEndOfInput)
	}
	semicolon, err := p.readKind(token.Semicolon)
	if err != nil {
		return false, err
	}
	p.funcDecl.Semicolon = semicolon
	return true, nil
}

func (p *DeclParser) readOptionalDeleteOrDefault() (bool, error) {
	if done, err := p.readOptionalSpecifier(func(t token.Token) bool { return t.Is(token.Delete) }, ast.BodyDeleted); done || err != nil {
		return done, err
	}
	return p.readOptionalSpecifier(func(t token.Token) bool { return t.Is(token.Default) }, ast.BodyDefaulted)
}

func (p *DeclParser) readOptionalBodySpecifiers() (bool, error) {
	if done, err := p.readOptionalDeleteOrDefault(); done || err != nil {
		return done, err
	}
	if !p.isParsingMember() {
		return false, nil
	}
	return p.readOptionalSpecifier(func(t token.Token) bool {
		return t.Is(token.IntegerLiteral) && t.Text == "0"
	}, ast.BodyPure)
}

func (p *DeclParser) readFunctionBody() (*ast.CompoundStatement, error) {
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

func (p *DeclParser) detectCtorDecl() (bool, error) {
	if !p.explicitKw.IsValid() {
		return false, nil
	}

	save := p.reader.Pos()
	idp := NewIdentifierParser(p.ctx, p.reader.Subfragment(), ParseAll)
	iden, err := idp.Parse()
	if err != nil || !p.isClassName(iden) {
		p.reader.Seek(save)
		return false, nil
	}
	p.seekReader(&idp.reader)

	if !p.peek().Is(token.LeftPar) {
		p.reader.Seek(save)
		return false, nil
	}

	p.decision = ParsingConstructor
	ctor := &ast.ConstructorDecl{}
	ctor.Name = iden
	ctor.Specifiers.Explicit = p.explicitKw
	ctor.Attribute = p.attribute
	p.funcDecl = &ctor.FunctionDecl
	p.result = ctor
	return true, nil
}

func (p *DeclParser) detectDtorDecl() (bool, error) {
	if !p.peek().Is(token.BitwiseNot) {
		return false, nil
	}

	tilde, _ := p.read()
	if p.atEnd() {
		return false, p.err(UnexpectedEndOfInput)
	}

	idp := NewIdentifierParser(p.ctx, p.reader.Subfragment(), ParseSimpleId|ParseTemplateId)
	iden, err := idp.Parse()
	if err != nil {
		return false, err
	}
	p.seekReader(&idp.reader)

	if !p.isClassName(iden) {
		return false, p.err(ExpectedCurrentClassName)
	}

	p.decision = ParsingDestructor
	dtor := &ast.DestructorDecl{Tilde: tilde}
	dtor.Name = iden
	dtor.Specifiers.Virtual = p.virtualKw
	dtor.Attribute = p.attribute
	p.funcDecl = &dtor.FunctionDecl
	p.result = dtor
	return true, nil
}

func (p *DeclParser) detectCastDecl() (bool, error) {
	if !p.peek().Is(token.Operator) {
		return false, nil
	}

	save := p.reader.Pos()
	opKw, _ := p.read()

	tp := NewTypeParser(p.ctx, p.reader.Subfragment())
	tp.SetReadFunctionSignature(false)
	typ, err := tp.Parse()
	if err != nil {
		if p.explicitKw.IsValid() {
			return false, p.err(CouldNotReadType)
		}
		p.reader.Seek(save)
		return false, nil
	}
	p.seekReader(&tp.reader)

	p.decision = ParsingCastDecl
	cast := &ast.CastDecl{OperatorKw: opKw}
	cast.ReturnType = typ
	cast.Name = &ast.SimpleIdentifier{Tok: opKw}
	cast.Specifiers.Explicit = p.explicitKw
	cast.Attribute = p.attribute
	p.funcDecl = &cast.FunctionDecl
	p.result = cast
	return true, nil
}

func (p *DeclParser) isClassName(name ast.Identifier) bool {
	simple, ok := name.(*ast.SimpleIdentifier)
	if !ok {
		return false
	}
	switch cn := p.className.(type) {
	case *ast.SimpleIdentifier:
		return cn.Name() == simple.Name()
	case *ast.TemplateIdentifier:
		return cn.Name() == simple.Name()
	}
	return false
}
