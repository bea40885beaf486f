package parser

import (
	"github.com/tmaxwell/go-cscript/internal/ast"
	"github.com/tmaxwell/go-cscript/pkg/token"
)

// ClassParser reads a class declaration.
type ClassParser struct {
	parserBase
	templateSpecialization bool
	class                  *ast.ClassDecl
}

// NewClassParser creates a class parser over a reader.
func NewClassParser(ctx *Context, reader TokenReader) *ClassParser {
	return &ClassParser{parserBase: newParserBase(ctx, reader)}
}

// SetTemplateSpecialization allows template arguments in the class name,
// used when parsing template specializations.
func (p *ClassParser) SetTemplateSpecialization(on bool) { p.templateSpecialization = on }

// Parse reads the class.
func (p *ClassParser) Parse() (*ast.ClassDecl, error) {
	classKeyword, err := p.read()
	if err != nil {
		return nil, err
	}

	attr, err := p.readOptionalAttribute()
	if err != nil {
		return nil, err
	}

	name, err := p.readClassName()
	if err != nil {
		return nil, err
	}

	p.class = &ast.ClassDecl{ClassKeyword: classKeyword, Name: name, Attribute: attr}

	if err := p.readOptionalParent(); err != nil {
		return nil, err
	}

	p.class.OpeningBrace, err = p.readKind(token.LeftBrace)
	if err != nil {
		return nil, err
	}

	for {
		done, err := p.readClassEnd()
		if err != nil {
			return nil, err
		}
		if done {
			break
		}
		if err := p.readNode(); err != nil {
			return nil, err
		}
	}

	return p.class, nil
}

func (p *ClassParser) readOptionalAttribute() (*ast.AttributeDeclaration, error) {
	ap := &AttributeParser{parserBase: newParserBase(p.ctx, p.reader.Subfragment())}
	if !ap.Ready() {
		return nil, nil
	}
	attr, err := ap.Parse()
	if err != nil {
		return nil, err
	}
	p.seekReader(&ap.reader)
	return attr, nil
}

func (p *ClassParser) readClassName() (ast.Identifier, error) {
	opts := ParseSimpleId
	if p.templateSpecialization {
		opts |= ParseTemplateId
	}
	idp := NewIdentifierParser(p.ctx, p.reader.Subfragment(), opts)
	name, err := idp.Parse()
	if err != nil {
		return nil, err
	}
	p.seekReader(&idp.reader)
	return name, nil
}

func (p *ClassParser) readOptionalParent() error {
	if p.atEnd() {
		return p.err(UnexpectedEndOfInput)
	}
	if !p.peek().Is(token.Colon) {
		return nil
	}
	p.class.Colon, _ = p.read()
	if p.atEnd() {
		return p.err(UnexpectedEndOfInput)
	}

	idp := NewIdentifierParser(p.ctx, p.reader.Subfragment(), ParseSimpleId|ParseTemplateId|ParseQualifiedId)
	parent, err := idp.Parse()
	if err != nil {
		return err
	}
	p.seekReader(&idp.reader)
	p.class.Parent = parent
	return nil
}

func (p *ClassParser) readNode() error {
	switch p.peek().Kind {
	case token.Public, token.Protected, token.Private:
		kw, _ := p.read()
		colon, err := p.readKind(token.Colon)
		if err != nil {
			return err
		}
		p.class.Members = append(p.class.Members, &ast.AccessSpecifier{Keyword: kw, Colon: colon})
		return nil
	case token.Friend:
		fp := &FriendParser{parserBase: newParserBase(p.ctx, p.reader.Subfragment())}
		decl, err := fp.Parse()
		if err != nil {
			return err
		}
		p.seekReader(&fp.reader)
		p.class.Members = append(p.class.Members, decl)
		return nil
	case token.Using:
		up := &UsingParser{parserBase: newParserBase(p.ctx, p.reader.Subfragment())}
		decl, err := up.Parse()
		if err != nil {
			return err
		}
		p.seekReader(&up.reader)
		p.class.Members = append(p.class.Members, decl)
		return nil
	case token.Template:
		tp := NewTemplateParser(p.ctx, p.reader.Subfragment())
		decl, err := tp.Parse()
		if err != nil {
			return err
		}
		p.seekReader(&tp.reader)
		p.class.Members = append(p.class.Members, decl)
		return nil
	case token.Typedef:
		tp := &TypedefParser{parserBase: newParserBase(p.ctx, p.reader.Subfragment())}
		decl, err := tp.Parse()
		if err != nil {
			return err
		}
		p.seekReader(&tp.reader)
		p.class.Members = append(p.class.Members, decl)
		return nil
	}

	return p.readDecl()
}

func (p *ClassParser) readDecl() error {
	if p.atEnd() {
		return p.err(UnexpectedEndOfInput)
	}

	dp := NewDeclParser(p.ctx, p.reader.Subfragment(), p.class.Name)
	ok, err := dp.DetectDecl()
	if err != nil {
		return err
	}
	if !ok {
		return p.err(ExpectedDeclaration)
	}
	decl, err := dp.Parse()
	if err != nil {
		return err
	}
	p.seekReader(&dp.reader)
	p.class.Members = append(p.class.Members, decl)
	return nil
}

func (p *ClassParser) readClassEnd() (bool, error) {
	if !p.peek().Is(token.RightBrace) {
		return false, nil
	}
	p.class.ClosingBrace, _ = p.read()
	semicolon, err := p.readKind(token.Semicolon)
	if err != nil {
		return false, err
	}
	p.class.Semicolon = semicolon
	return true, nil
}

// EnumParser reads an enum declaration.
type EnumParser struct {
	parserBase
}

// NewEnumParser creates an enum parser over a reader.
func NewEnumParser(ctx *Context, reader TokenReader) *EnumParser {
	return &EnumParser{parserBase: newParserBase(ctx, reader)}
}

// Parse reads the enum.
func (p *EnumParser) Parse() (*ast.EnumDecl, error) {
	etok, err := p.read()
	if err != nil {
		return nil, err
	}

	var ctok token.Token
	if p.peek().Is(token.Class) {
		ctok, _ = p.read()
	}

	idp := NewIdentifierParser(p.ctx, p.reader.Subfragment(), ParseOnlySimpleId)
	name, err := idp.Parse()
	if err != nil {
		return nil, err
	}
	p.seekReader(&idp.reader)

	lb := p.peek()
	values, err := p.readValues()
	if err != nil {
		return nil, err
	}

	rb, err := p.readKind(token.RightBrace)
	if err != nil {
		return nil, err
	}
	semicolon, err := p.readKind(token.Semicolon)
	if err != nil {
		return nil, err
	}

	return &ast.EnumDecl{
		EnumKeyword:  etok,
		ClassKeyword: ctok,
		Name:         name,
		OpeningBrace: lb,
		Values:       values,
		ClosingBrace: rb,
		Semicolon:    semicolon,
	}, nil
}

func (p *EnumParser) readValues() ([]ast.EnumValueDecl, error) {
	content, err := p.reader.SubfragmentDelimiterPair()
	if err != nil {
		return nil, err
	}
	p.reader.Seek(content.Fragment().End)

	var values []ast.EnumValueDecl
	for !content.AtEnd() {
		elem, err := content.SubfragmentListElement()
		if err != nil {
			return nil, err
		}
		content.Seek(elem.Fragment().End)

		idp := NewIdentifierParser(p.ctx, elem, ParseOnlySimpleId)
		name, err := idp.Parse()
		if err != nil {
			return nil, err
		}
		elem.Seek(idp.reader.Pos())

		if elem.AtEnd() {
			values = append(values, ast.EnumValueDecl{Name: name.Base()})
		} else {
			if _, err := elem.ReadKind(token.Eq); err != nil {
				return nil, err
			}
			ep := NewExpressionParser(p.ctx, elem)
			expr, err := ep.Parse()
			if err != nil {
				return nil, err
			}
			values = append(values, ast.EnumValueDecl{Name: name.Base(), Value: expr})
		}

		if !content.AtEnd() {
			if _, err := content.ReadKind(token.Comma); err != nil {
				return nil, err
			}
		}
	}
	return values, nil
}

// FriendParser reads a 'friend class N;' declaration.
type FriendParser struct {
	parserBase
}

// Parse reads the friend declaration.
func (p *FriendParser) Parse() (*ast.FriendDeclaration, error) {
	friendTok, err := p.read()
	if err != nil {
		return nil, err
	}
	classTok, err := p.readKind(token.Class)
	if err != nil {
		return nil, err
	}

	idp := NewIdentifierParser(p.ctx, p.reader.Subfragment(), ParseAll)
	name, err := idp.Parse()
	if err != nil {
		return nil, err
	}
	p.seekReader(&idp.reader)

	semicolon, err := p.readKind(token.Semicolon)
	if err != nil {
		return nil, err
	}
	return &ast.FriendDeclaration{
		FriendKeyword: friendTok,
		ClassKeyword:  classTok,
		Name:          name,
		Semicolon:     semicolon,
	}, nil
}
