package token

// keywords maps reserved words to their token kinds.
var keywords = map[string]Kind{
	"auto":      Auto,
	"bool":      Bool,
	"break":     Break,
	"char":      Char,
	"class":     Class,
	"const":     Const,
	"continue":  Continue,
	"default":   Default,
	"delete":    Delete,
	"double":    Double,
	"else":      Else,
	"enum":      Enum,
	"explicit":  Explicit,
	"export":    Export,
	"false":     False,
	"float":     Float,
	"for":       For,
	"friend":    Friend,
	"if":        If,
	"import":    Import,
	"int":       Int,
	"mutable":   Mutable,
	"namespace": Namespace,
	"operator":  Operator,
	"private":   Private,
	"protected": Protected,
	"public":    Public,
	"return":    Return,
	"static":    Static,
	"template":  Template,
	"this":      This,
	"true":      True,
	"typedef":   Typedef,
	"typeid":    Typeid,
	"typename":  Typename,
	"using":     Using,
	"virtual":   Virtual,
	"void":      Void,
	"while":     While,
}

// LookupIdent returns the keyword kind for ident, or Identifier if ident is
// not a reserved word.
func LookupIdent(ident string) Kind {
	if k, ok := keywords[ident]; ok {
		return k
	}
	return Identifier
}
