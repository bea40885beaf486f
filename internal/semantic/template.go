package semantic

import (
	"github.com/tmaxwell/go-cscript/internal/ast"
	"github.com/tmaxwell/go-cscript/internal/types"
)

// TemplateProcessor drives lazy template monomorphization: specialization
// selection, argument deduction and memoized instantiation.
type TemplateProcessor struct {
	cs *compilerSession
}

func (tp *TemplateProcessor) ts() *types.TypeSystem { return tp.cs.engine.TypeSystem }

// InstantiateClassTemplate materializes a class template for an argument
// tuple; repeated requests hit the memoization map.
func (tp *TemplateProcessor) InstantiateClassTemplate(t *types.ClassTemplate, args []types.TemplateArg) (types.Type, error) {
	if c, ok := t.FindInstance(args); ok {
		return c.Type, nil
	}

	tr := tp.ts().BeginTransaction()

	var cls *types.Class
	var err error
	if t.Builtin != nil {
		cls, err = t.Builtin(tp.ts(), args)
	} else {
		cls, err = tp.instantiateScriptedClass(t, args)
	}
	if err != nil {
		tr.Rollback()
		return types.Null, err
	}
	tr.Commit()

	t.RememberInstance(args, cls)
	return cls.Type, nil
}

// instantiateScriptedClass selects the best matching specialization and
// compiles the chosen class body with the arguments substituted into a
// template-parameter scope.
func (tp *TemplateProcessor) instantiateScriptedClass(t *types.ClassTemplate, args []types.TemplateArg) (*types.Class, error) {
	decl, bindings, err := tp.selectSpecialization(t, args)
	if err != nil {
		return nil, err
	}

	classDecl := decl.Decl.(*ast.ClassDecl)

	enclosing := NewNamespaceScope(t.Enclosing, NewRootScope(tp.cs.engine.Root))
	argScope := NewTemplateScope(bindings, enclosing)

	cls, err := tp.cs.sc.buildClassForTemplate(classDecl, argScope, t, args)
	if err != nil {
		return nil, err
	}
	return cls, nil
}

// selectSpecialization picks a full specialization on exact argument match,
// otherwise the most specialized matching partial specialization (concrete
// pattern positions count; ties resolve to declaration order), otherwise
// the primary declaration.
func (tp *TemplateProcessor) selectSpecialization(t *types.ClassTemplate, args []types.TemplateArg) (*ast.TemplateDecl, map[string]types.TemplateArg, error) {
	if t.Decl == nil {
		return nil, nil, fail(CouldNotFindPrimaryClassTemplate, 0)
	}

	bestScore := -1
	var best *ast.TemplateDecl
	var bestBindings map[string]types.TemplateArg

	for _, spec := range t.Specializations {
		classDecl, ok := spec.Decl.(*ast.ClassDecl)
		if !ok {
			continue
		}
		tid, ok := classDecl.Name.(*ast.TemplateIdentifier)
		if !ok {
			continue
		}

		m := newPatternMatcher(tp.cs, spec)
		if !m.matchArgumentList(tid.Args, args) {
			continue
		}
		score := m.concretePositions
		if spec.IsFullSpecialization() {
			score = len(args) + 1
		}
		if score > bestScore {
			bestScore = score
			best = spec
			bestBindings = m.deductions
		}
	}

	if best != nil {
		return best, bestBindings, nil
	}

	// Primary template: bind parameters positionally.
	bindings := map[string]types.TemplateArg{}
	if len(args) < t.NonDefaultedParamCount() || len(args) > len(t.Params) {
		return nil, nil, fail(MissingNonDefaultedTemplateParameter, t.Decl.Pos())
	}
	for i, p := range t.Params {
		bindings[p.Name] = args[i]
	}
	return t.Decl, bindings, nil
}

// patternMatcher unifies template-argument patterns against concrete
// arguments, collecting parameter deductions. Conflicting deductions for
// the same parameter fail; agreeable duplicates collapse.
type patternMatcher struct {
	cs                *compilerSession
	paramNames        map[string]bool
	deductions        map[string]types.TemplateArg
	concretePositions int
}

func newPatternMatcher(cs *compilerSession, decl *ast.TemplateDecl) *patternMatcher {
	names := map[string]bool{}
	for _, p := range decl.Params {
		names[p.Name.Text] = true
	}
	return &patternMatcher{cs: cs, paramNames: names, deductions: map[string]types.TemplateArg{}}
}

func (m *patternMatcher) deduce(name string, arg types.TemplateArg) bool {
	if prev, ok := m.deductions[name]; ok {
		return prev.Equals(arg)
	}
	m.deductions[name] = arg
	return true
}

func (m *patternMatcher) matchArgumentList(patterns []ast.Node, args []types.TemplateArg) bool {
	if len(patterns) != len(args) {
		return false
	}
	for i, p := range patterns {
		if !m.matchNode(p, args[i]) {
			return false
		}
	}
	return true
}

func (m *patternMatcher) matchNode(pattern ast.Node, arg types.TemplateArg) bool {
	switch n := pattern.(type) {
	case *ast.TypeNode:
		if arg.Kind != types.TypeArgument {
			return false
		}
		return m.matchQualType(n.Value, arg.Type)
	case *ast.SimpleIdentifier:
		if m.paramNames[n.Name()] {
			return m.deduce(n.Name(), arg)
		}
		if arg.Kind == types.TypeArgument {
			m.concretePositions++
			return m.resolveConcrete(n) == arg.Type.BaseType()
		}
		return false
	case *ast.IntegerLiteral:
		v, err := ParseIntegerLiteral(n.Tok.Text)
		if err != nil || arg.Kind != types.IntArgument {
			return false
		}
		m.concretePositions++
		return arg.Int == v
	case *ast.BoolLiteral:
		if arg.Kind != types.BoolArgument {
			return false
		}
		m.concretePositions++
		return arg.Bool == n.Value()
	}
	return false
}

// matchQualType walks a pattern type against an input type.
func (m *patternMatcher) matchQualType(pattern ast.QualifiedType, input types.Type) bool {
	if pattern.IsConst() && !input.IsConst() {
		return false
	}
	if pattern.IsRef() && !input.IsReference() {
		return false
	}
	stripped := input.WithoutRef().WithoutConst()

	switch name := pattern.Name.(type) {
	case *ast.SimpleIdentifier:
		if m.paramNames[name.Name()] {
			return m.deduce(name.Name(), types.TypeArg(stripped))
		}
		m.concretePositions++
		return m.resolveConcrete(name) == stripped.BaseType()
	case *ast.TemplateIdentifier:
		cls := m.cs.engine.TypeSystem.GetClass(stripped)
		if cls == nil || cls.Instantiation == nil {
			return false
		}
		if cls.Instantiation.Template.Name != name.Name() {
			return false
		}
		m.concretePositions++
		return m.matchArgumentList(name.Args, cls.Instantiation.Args)
	}
	return false
}

func (m *patternMatcher) resolveConcrete(id *ast.SimpleIdentifier) types.Type {
	if t, ok := fundamentalKeyword(id.Name()); ok {
		return t
	}
	scope := NewRootScope(m.cs.engine.Root)
	if m.cs.script != nil {
		scope = NewScriptScope(m.cs.script, scope)
	}
	result := m.cs.resolver.resolveSimple(id.Name(), scope, true)
	if result.Kind == TypeName {
		return result.Type.BaseType()
	}
	return types.Null
}

// InstantiateFunctionTemplate deduces template arguments by unifying the
// declared parameter-type patterns with the actual argument types, fills
// unfilled positions from defaults, and compiles the instance.
func (tp *TemplateProcessor) InstantiateFunctionTemplate(t *types.FunctionTemplate, argTypes []types.Type) (*types.Function, error) {
	decl, ok := t.Decl.Decl.(*ast.FunctionDecl)
	if !ok {
		return nil, fail(CouldNotFindPrimaryFunctionTemplate, t.Decl.Pos())
	}

	m := newPatternMatcher(tp.cs, t.Decl)
	if len(argTypes) != len(decl.Params) {
		return nil, fail(CouldNotFindPrimaryFunctionTemplate, t.Decl.Pos())
	}
	for i, p := range decl.Params {
		if !m.matchQualType(p.Type, argTypes[i]) {
			return nil, fail(CouldNotFindPrimaryFunctionTemplate, t.Decl.Pos())
		}
	}

	enclosing := NewNamespaceScope(t.Enclosing, NewRootScope(tp.cs.engine.Root))
	if tp.cs.script != nil {
		enclosing = NewScriptScope(tp.cs.script, NewRootScope(tp.cs.engine.Root))
	}

	var args []types.TemplateArg
	bindings := map[string]types.TemplateArg{}
	for _, p := range t.Params {
		arg, ok := m.deductions[p.Name]
		if !ok {
			if !p.HasDefault() {
				return nil, fail(CouldNotFindPrimaryFunctionTemplate, t.Decl.Pos())
			}
			resolved, err := tp.cs.resolver.resolveTemplateArg(p, p.Default, NewTemplateScope(bindings, enclosing))
			if err != nil {
				return nil, err
			}
			arg = resolved
		}
		bindings[p.Name] = arg
		args = append(args, arg)
	}

	if f, ok := t.FindInstance(args); ok {
		return f, nil
	}

	argScope := NewTemplateScope(bindings, enclosing)

	tr := tp.ts().BeginTransaction()
	f, err := tp.cs.sc.instantiateFunction(t, decl, argScope)
	if err != nil {
		tr.Rollback()
		return nil, err
	}
	tr.Commit()

	t.RememberInstance(args, f)
	return f, nil
}
