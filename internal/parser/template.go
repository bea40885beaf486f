package parser

import (
	"github.com/tmaxwell/go-cscript/internal/ast"
	"github.com/tmaxwell/go-cscript/pkg/token"
)

// TemplateParser reads a template declaration: parameter list plus inner
// class or function declaration.
type TemplateParser struct {
	parserBase
}

// NewTemplateParser creates a template parser over a reader.
func NewTemplateParser(ctx *Context, reader TokenReader) *TemplateParser {
	return &TemplateParser{parserBase: newParserBase(ctx, reader)}
}

// Parse reads the template declaration.
func (p *TemplateParser) Parse() (*ast.TemplateDecl, error) {
	templateKw, err := p.read()
	if err != nil {
		return nil, err
	}

	paramsReader := p.reader.SubfragmentTemplate()
	if !paramsReader.Valid() {
		return nil, p.err(UnexpectedFragmentEnd)
	}

	leftAngle, err := p.readKind(token.LeftAngle)
	if err != nil {
		return nil, err
	}

	var params []ast.TemplateParameter
	for !paramsReader.AtEnd() {
		elem, err := paramsReader.SubfragmentListElement()
		if err != nil {
			return nil, err
		}
		paramsReader.Seek(elem.Fragment().End)
		pp := &TemplateParameterParser{parserBase: newParserBase(p.ctx, elem)}
		param, err := pp.Parse()
		if err != nil {
			return nil, err
		}
		params = append(params, param)
		if !paramsReader.AtEnd() {
			if _, err := paramsReader.ReadKind(token.Comma); err != nil {
				return nil, err
			}
		}
	}

	p.reader.Seek(paramsReader.Fragment().End)
	rightAngle, err := p.read()
	if err != nil {
		return nil, err
	}

	decl, err := p.parseDecl()
	if err != nil {
		return nil, err
	}

	return &ast.TemplateDecl{
		TemplateKeyword: templateKw,
		LeftAngle:       leftAngle,
		Params:          params,
		RightAngle:      rightAngle,
		Decl:            decl,
	}, nil
}

func (p *TemplateParser) parseDecl() (ast.Declaration, error) {
	if p.peek().Is(token.Class) {
		cp := NewClassParser(p.ctx, p.reader.Subfragment())
		cp.SetTemplateSpecialization(true)
		decl, err := cp.Parse()
		if err != nil {
			return nil, err
		}
		p.seekReader(&cp.reader)
		return decl, nil
	}

	dp := NewDeclParser(p.ctx, p.reader.Subfragment(), nil)
	dp.SetDeclaratorOptions(ParseSimpleId | ParseOperatorName | ParseTemplateId)
	ok, err := dp.DetectDecl()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, p.err(ExpectedDeclaration)
	}
	decl, err := dp.Parse()
	if err != nil {
		return nil, err
	}
	p.seekReader(&dp.reader)
	return decl, nil
}

// TemplateParameterParser reads one template parameter.
type TemplateParameterParser struct {
	parserBase
}

// Parse reads the parameter: 'typename N', 'int N' or 'bool N', each with an
// optional default.
func (p *TemplateParameterParser) Parse() (ast.TemplateParameter, error) {
	var param ast.TemplateParameter

	kind, err := p.read()
	if err != nil {
		return param, err
	}
	switch kind.Kind {
	case token.Typename, token.Int, token.Bool:
		param.Kind = kind
	default:
		return param, p.errToken(UnexpectedToken, kind)
	}

	name, err := p.read()
	if err != nil {
		return param, err
	}
	if !name.IsIdentifier() {
		return param, p.errToken(ExpectedIdentifier, name)
	}
	param.Name = name

	if p.atEnd() {
		return param, nil
	}

	param.EqualSign, err = p.readKind(token.Eq)
	if err != nil {
		return param, err
	}

	tap := &TemplateArgParser{parserBase: newParserBase(p.ctx, p.reader.Subfragment())}
	def, err := tap.Parse()
	if err != nil {
		return param, err
	}
	p.seekReader(&tap.reader)
	param.DefaultValue = def
	return param, nil
}
