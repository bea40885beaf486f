package parser

import (
	"github.com/tmaxwell/go-cscript/internal/ast"
	"github.com/tmaxwell/go-cscript/pkg/token"
)

// NamespaceParser reads a namespace declaration or a namespace alias.
type NamespaceParser struct {
	parserBase
}

// NewNamespaceParser creates a namespace parser over a reader.
func NewNamespaceParser(ctx *Context, reader TokenReader) *NamespaceParser {
	return &NamespaceParser{parserBase: newParserBase(ctx, reader)}
}

// Parse reads the declaration.
func (p *NamespaceParser) Parse() (ast.Declaration, error) {
	nsTok, err := p.read()
	if err != nil {
		return nil, err
	}

	idp := NewIdentifierParser(p.ctx, p.reader.Subfragment(), ParseOnlySimpleId)
	name, err := idp.Parse()
	if err != nil {
		return nil, err
	}
	p.seekReader(&idp.reader)

	if p.peek().Is(token.Eq) {
		eqSign, _ := p.read()
		aidp := NewIdentifierParser(p.ctx, p.reader.Subfragment(), ParseSimpleId|ParseQualifiedId)
		aliased, err := aidp.Parse()
		if err != nil {
			return nil, err
		}
		p.seekReader(&aidp.reader)
		semicolon, err := p.readKind(token.Semicolon)
		if err != nil {
			return nil, err
		}
		return &ast.NamespaceAliasDefinition{
			NamespaceKeyword: nsTok,
			Alias:            name.Base(),
			EqualSign:        eqSign,
			Name:             aliased,
			Semicolon:        semicolon,
		}, nil
	}

	lb := p.peek()
	body, err := p.reader.SubfragmentDelimiterPair()
	if err != nil {
		return nil, err
	}
	p.reader.Seek(body.Fragment().End)

	pp := NewProgramParser(p.ctx, body)
	statements, err := pp.ParseProgram()
	if err != nil {
		return nil, err
	}

	rb, err := p.readKind(token.RightBrace)
	if err != nil {
		return nil, err
	}

	return &ast.NamespaceDecl{
		Keyword:      nsTok,
		Name:         name.Base(),
		OpeningBrace: lb,
		Statements:   statements,
		ClosingBrace: rb,
	}, nil
}

// UsingParser reads using-directives, using-declarations and type aliases.
type UsingParser struct {
	parserBase
}

// Parse reads the declaration.
func (p *UsingParser) Parse() (ast.Declaration, error) {
	usingTok, err := p.read()
	if err != nil {
		return nil, err
	}

	if p.peek().Is(token.Namespace) {
		namespaceTok, _ := p.read()
		name, err := p.readName()
		if err != nil {
			return nil, err
		}
		semicolon, err := p.readKind(token.Semicolon)
		if err != nil {
			return nil, err
		}
		return &ast.UsingDirective{
			UsingKeyword:     usingTok,
			NamespaceKeyword: namespaceTok,
			Name:             name,
			Semicolon:        semicolon,
		}, nil
	}

	name, err := p.readName()
	if err != nil {
		return nil, err
	}

	if _, scoped := name.(*ast.ScopedIdentifier); scoped {
		semicolon, err := p.readKind(token.Semicolon)
		if err != nil {
			return nil, err
		}
		return &ast.UsingDeclaration{UsingKeyword: usingTok, Name: name, Semicolon: semicolon}, nil
	}

	simple, ok := name.(*ast.SimpleIdentifier)
	if !ok {
		return nil, p.errToken(ExpectedIdentifier, name.Base())
	}

	eqSign, err := p.readKind(token.Eq)
	if err != nil {
		return nil, err
	}
	aliased, err := p.readName()
	if err != nil {
		return nil, err
	}
	semicolon, err := p.readKind(token.Semicolon)
	if err != nil {
		return nil, err
	}
	return &ast.TypeAliasDeclaration{
		UsingKeyword: usingTok,
		Alias:        simple.Tok,
		EqualSign:    eqSign,
		Name:         aliased,
		Semicolon:    semicolon,
	}, nil
}

func (p *UsingParser) readName() (ast.Identifier, error) {
	idp := NewIdentifierParser(p.ctx, p.reader.Subfragment(), ParseSimpleId|ParseTemplateId|ParseQualifiedId)
	name, err := idp.Parse()
	if err != nil {
		return nil, err
	}
	p.seekReader(&idp.reader)
	return name, nil
}

// TypedefParser reads 'typedef T name;'.
type TypedefParser struct {
	parserBase
}

// Parse reads the typedef.
func (p *TypedefParser) Parse() (*ast.Typedef, error) {
	typedefTok, err := p.read()
	if err != nil {
		return nil, err
	}

	tp := NewTypeParser(p.ctx, p.reader.Subfragment())
	qtype, err := tp.Parse()
	if err != nil {
		return nil, err
	}
	p.seekReader(&tp.reader)

	idp := NewIdentifierParser(p.ctx, p.reader.Subfragment(), ParseOnlySimpleId)
	name, err := idp.Parse()
	if err != nil {
		return nil, err
	}
	p.seekReader(&idp.reader)

	semicolon, err := p.readKind(token.Semicolon)
	if err != nil {
		return nil, err
	}
	return &ast.Typedef{
		TypedefKeyword: typedefTok,
		QualType:       qtype,
		Name:           name.Base(),
		Semicolon:      semicolon,
	}, nil
}

// ImportParser reads '[export] import a.b.c;'.
type ImportParser struct {
	parserBase
}

// Parse reads the directive.
func (p *ImportParser) Parse() (*ast.ImportDirective, error) {
	var exportTok token.Token
	if p.peek().Is(token.Export) {
		exportTok, _ = p.read()
	}

	importTok, err := p.readKind(token.Import)
	if err != nil {
		return nil, err
	}

	var names []token.Token
	tok, err := p.read()
	if err != nil {
		return nil, err
	}
	if !tok.IsIdentifier() {
		return nil, p.errToken(ExpectedIdentifier, tok)
	}
	names = append(names, tok)

	for p.peek().Is(token.Dot) {
		p.read()
		tok, err = p.read()
		if err != nil {
			return nil, err
		}
		if !tok.IsIdentifier() {
			return nil, p.errToken(ExpectedIdentifier, tok)
		}
		names = append(names, tok)
	}

	semicolon, err := p.readKind(token.Semicolon)
	if err != nil {
		return nil, err
	}
	return &ast.ImportDirective{
		ExportKeyword: exportTok,
		ImportKeyword: importTok,
		Names:         names,
		Semicolon:     semicolon,
	}, nil
}
