// Package resolver implements the scope/binding resolver: it builds the
// scope tree, attaches a Binding to every ast.Name reference, and reports
// E0115/E0117/E0118/E0602. Everything else in lang/check depends on its
// Result rather than re-deriving scope structure, keeping ast (pure tree)
// and resolver (the only package allowed to mutate Name.Binding) cleanly
// separated.
//
// Resolution happens in two passes over the tree, since a name may be used
// before its binding is seen lexically but still resolve to it once the
// whole function body is known: collect first builds the complete scope
// tree (every binding site, every global/nonlocal declaration, every direct
// name-load, the final IsGenerator/IsCoroutine flags) before resolve walks
// the same tree again and decides what every load refers to.
package resolver

import (
	"fmt"

	"github.com/cbellis/pyrint/lang/ast"
	"github.com/cbellis/pyrint/lang/builtins"
	"github.com/cbellis/pyrint/lang/diag"
	"github.com/cbellis/pyrint/lang/token"
)

// Result is the output of Resolve: the scope tree plus a lookup from any
// scope-introducing AST node to the Scope it owns.
type Result struct {
	Module      *ast.Module
	ModuleScope *Scope
	ScopeOf     map[ast.Node]*Scope
	Diags       []diag.Diagnostic
}

type resolver struct {
	fset    *token.FileSet
	file    *token.File
	scopeOf map[ast.Node]*Scope
	diags   []diag.Diagnostic
}

// Resolve builds the scope tree for mod and resolves every name reference in
// it, returning the result and any E0115/E0117/E0118/E0602 diagnostics.
func Resolve(fset *token.FileSet, file *token.File, mod *ast.Module) *Result {
	r := &resolver{fset: fset, file: file, scopeOf: make(map[ast.Node]*Scope)}

	modScope := newScope(ScopeModule, nil, mod)
	r.scopeOf[mod] = modScope
	r.collectStmts(mod.Body, modScope)
	r.checkNonlocalAndGlobal(modScope)
	r.resolveStmts(mod.Body, modScope)

	var walk func(*Scope)
	walk = func(s *Scope) {
		r.checkNonlocalAndGlobal(s)
		for _, c := range s.Children {
			walk(c)
		}
	}
	for _, c := range modScope.Children {
		walk(c)
	}

	return &Result{Module: mod, ModuleScope: modScope, ScopeOf: r.scopeOf, Diags: r.diags}
}

func (r *resolver) pos(p token.Pos) token.Position { return r.file.Position(p) }

func (r *resolver) errorf(code, symbol string, pos token.Pos, format string, args ...any) {
	r.diags = append(r.diags, diag.Diagnostic{
		Code: code, Symbol: symbol, Pos: r.pos(pos),
		Message: fmt.Sprintf(format, args...),
	})
}

// checkNonlocalAndGlobal emits E0115 for any name declared both global and
// nonlocal in the same scope, and E0117 for a nonlocal declaration with no
// enclosing function binding.
func (r *resolver) checkNonlocalAndGlobal(s *Scope) {
	for name, pos := range s.Nonlocals {
		if gpos, ok := s.Globals[name]; ok {
			at := pos
			if gpos > at {
				at = gpos
			}
			r.errorf("E0115", "nonlocal-and-global", at, "name '%s' is nonlocal and global", name)
			continue
		}
		if r.nonlocalTarget(s, name) == nil {
			r.errorf("E0117", "nonlocal-without-binding", pos, "no binding for nonlocal '%s' found", name)
		}
	}
}

// reconcileGlobalsNonlocals moves every binding site collected directly in s
// for a name s itself declares global/nonlocal into the scope that name
// actually lives in: the module scope for global, or the nearest enclosing
// function scope that already binds the name for nonlocal. Without this, a
// statement like "global x; x = 1" would incorrectly register x as a new
// local binding of s instead of rebinding the module-level x.
func (r *resolver) reconcileGlobalsNonlocals(s *Scope) {
	for name := range s.Globals {
		list, ok := s.Bindings[name]
		if !ok {
			continue
		}
		delete(s.Bindings, name)
		mod := moduleScope(s)
		for _, b := range list {
			b.Scope = mod
		}
		mod.Bindings[name] = append(mod.Bindings[name], list...)
	}
	for name := range s.Nonlocals {
		list, ok := s.Bindings[name]
		if !ok {
			continue
		}
		target := r.nonlocalTarget(s, name)
		if target == nil {
			continue
		}
		delete(s.Bindings, name)
		for _, b := range list {
			b.Scope = target
		}
		target.Bindings[name] = append(target.Bindings[name], list...)
	}
}

// nonlocalTarget finds the nearest enclosing non-class, non-module function
// scope that binds name.
func (r *resolver) nonlocalTarget(s *Scope, name string) *Scope {
	for c := lookupParent(s); c != nil; c = lookupParent(c) {
		if c.isFunctionLike() && c.binds(name) {
			return c
		}
	}
	return nil
}

// ---------------------------------------------------------------------
// Collect pass: build the scope tree, every binding site, every
// global/nonlocal declaration, every direct-scope name-load, and the final
// IsGenerator flag.
// ---------------------------------------------------------------------

func (r *resolver) collectStmts(stmts []ast.Stmt, s *Scope) {
	for _, stmt := range stmts {
		r.collectStmt(stmt, s)
	}
}

func (r *resolver) collectStmt(stmt ast.Stmt, s *Scope) {
	switch n := stmt.(type) {
	case *ast.FuncDef:
		s.bind(n.Name.Id, BindFuncDef, n.Name.Start, n)
		for _, d := range n.Decorators {
			r.collectExpr(d, s)
		}
		if n.Params != nil {
			for _, p := range allParams(n.Params) {
				if p.Annotation != nil {
					r.collectExpr(p.Annotation, s)
				}
				if p.Default != nil {
					r.collectExpr(p.Default, s)
				}
			}
		}
		if n.Returns != nil {
			r.collectExpr(n.Returns, s)
		}

		fs := newScope(ScopeFunction, s, n)
		fs.IsCoroutine = n.IsAsync
		r.scopeOf[n] = fs
		if n.Params != nil {
			for _, p := range allParams(n.Params) {
				fs.bind(p.Name.Id, BindParam, p.Name.Start, p)
				p.Name.Binding = fs.First(p.Name.Id)
			}
		}
		r.collectStmts(n.Body, fs)
		r.reconcileGlobalsNonlocals(fs)

	case *ast.ClassDef:
		s.bind(n.Name.Id, BindClassDef, n.Name.Start, n)
		for _, d := range n.Decorators {
			r.collectExpr(d, s)
		}
		for _, b := range n.Bases {
			r.collectExpr(b, s)
		}
		for _, kw := range n.Keywords {
			r.collectExpr(kw.Value, s)
		}

		cs := newScope(ScopeClass, s, n)
		r.scopeOf[n] = cs
		r.collectStmts(n.Body, cs)
		r.reconcileGlobalsNonlocals(cs)

	case *ast.Assign:
		if n.Value != nil {
			r.collectExpr(n.Value, s)
		}
		if n.Annotation != nil {
			r.collectExpr(n.Annotation, s)
		}
		for _, t := range n.Targets {
			r.collectTarget(t, s, BindAssign)
		}

	case *ast.ExprStmt:
		r.collectExpr(n.X, s)

	case *ast.For:
		r.collectExpr(n.Iter, s)
		r.collectTarget(n.Target, s, BindFor)
		r.collectStmts(n.Body, s)
		r.collectStmts(n.Orelse, s)

	case *ast.While:
		r.collectExpr(n.Cond, s)
		r.collectStmts(n.Body, s)
		r.collectStmts(n.Orelse, s)

	case *ast.If:
		r.collectExpr(n.Cond, s)
		r.collectStmts(n.Body, s)
		r.collectStmts(n.Orelse, s)

	case *ast.Try:
		r.collectStmts(n.Body, s)
		for _, h := range n.Handlers {
			if h.Type != nil {
				r.collectExpr(h.Type, s)
			}
			if h.Name != nil {
				s.bind(h.Name.Id, BindExcept, h.Name.Start, h)
				h.Name.Binding = s.First(h.Name.Id)
			}
			r.collectStmts(h.Body, s)
		}
		r.collectStmts(n.Orelse, s)
		r.collectStmts(n.Final, s)

	case *ast.With:
		for _, it := range n.Items {
			r.collectExpr(it.Ctx, s)
			if it.Target != nil {
				r.collectTarget(it.Target, s, BindWith)
			}
		}
		r.collectStmts(n.Body, s)

	case *ast.Raise:
		if n.Exc != nil {
			r.collectExpr(n.Exc, s)
		}
		if n.Cause != nil {
			r.collectExpr(n.Cause, s)
		}

	case *ast.Return:
		if n.Value != nil {
			r.collectExpr(n.Value, s)
		}

	case *ast.Global:
		for _, id := range n.Names {
			if _, ok := s.Globals[id.Id]; !ok {
				s.Globals[id.Id] = id.Start
			}
		}

	case *ast.Nonlocal:
		for _, id := range n.Names {
			if _, ok := s.Nonlocals[id.Id]; !ok {
				s.Nonlocals[id.Id] = id.Start
			}
		}

	case *ast.Import:
		for _, a := range n.Names {
			name, pos, node := importBinding(a)
			s.bind(name, BindImport, pos, node)
			if a.AsName != nil {
				a.AsName.Binding = s.First(name)
			}
		}

	case *ast.ImportFrom:
		for _, a := range n.Names {
			if a.Path == "*" {
				s.ResolutionUncertain = true
				continue
			}
			name, pos, node := importBinding(a)
			s.bind(name, BindImport, pos, node)
			if a.AsName != nil {
				a.AsName.Binding = s.First(name)
			}
		}

	case *ast.Delete:
		for _, t := range n.Targets {
			r.collectExpr(t, s)
		}

	case *ast.Assert:
		r.collectExpr(n.Cond, s)
		if n.Msg != nil {
			r.collectExpr(n.Msg, s)
		}

	case *ast.Break, *ast.Continue, *ast.Pass:
		// no bindings, no loads.
	}
}

// importBinding returns the name bound by one import alias, its position,
// and the node to store on the Binding.
func importBinding(a *ast.ImportAlias) (string, token.Pos, ast.Node) {
	if a.AsName != nil {
		return a.AsName.Id, a.AsName.Start, a.AsName
	}
	name := a.Path
	for i, c := range a.Path {
		if c == '.' {
			name = a.Path[:i]
			break
		}
	}
	return name, 0, nil
}

// collectTarget recurses into an assignment/for/with target, binding every
// bare Name it finds directly (Attribute/Subscript targets load their
// receiver expression instead of binding it).
func (r *resolver) collectTarget(target ast.Expr, s *Scope, kind BindingKind) {
	switch n := target.(type) {
	case *ast.Name:
		s.bind(n.Id, kind, n.Start, nil)
		n.Binding = s.First(n.Id)
	case *ast.TupleExpr:
		for _, e := range n.Elts {
			r.collectTarget(e, s, kind)
		}
	case *ast.ListExpr:
		for _, e := range n.Elts {
			r.collectTarget(e, s, kind)
		}
	case *ast.StarredExpr:
		r.collectTarget(n.Value, s, kind)
	case *ast.Attribute:
		r.collectExpr(n.Value, s)
	case *ast.Subscript:
		r.collectExpr(n.Value, s)
		r.collectExpr(n.Index, s)
	default:
		r.collectExpr(target, s)
	}
}

func (r *resolver) collectExpr(expr ast.Expr, s *Scope) {
	switch n := expr.(type) {
	case *ast.Name:
		s.Loads = append(s.Loads, LoadRef{Name: n.Id, Pos: n.Start, Node: n})

	case *ast.Constant:
		// no children.

	case *ast.Attribute:
		r.collectExpr(n.Value, s)

	case *ast.Subscript:
		r.collectExpr(n.Value, s)
		r.collectExpr(n.Index, s)

	case *ast.Call:
		r.collectExpr(n.Fn, s)
		for _, a := range n.Args {
			r.collectExpr(a, s)
		}
		for _, kw := range n.Keywords {
			r.collectExpr(kw.Value, s)
		}
		if name, ok := n.Fn.(*ast.Name); ok && (name.Id == "exec" || name.Id == "locals") {
			s.ResolutionUncertain = true
		}

	case *ast.ListExpr:
		for _, e := range n.Elts {
			r.collectExpr(e, s)
		}
	case *ast.SetExpr:
		for _, e := range n.Elts {
			r.collectExpr(e, s)
		}
	case *ast.TupleExpr:
		for _, e := range n.Elts {
			r.collectExpr(e, s)
		}
	case *ast.DictExpr:
		for i, k := range n.Keys {
			if k != nil {
				r.collectExpr(k, s)
			}
			r.collectExpr(n.Values[i], s)
		}
	case *ast.StarredExpr:
		r.collectExpr(n.Value, s)

	case *ast.Comprehension:
		cs := newScope(ScopeComprehension, s, n)
		r.scopeOf[n] = cs
		for i, g := range n.Generators {
			if i == 0 {
				// the first iterable is evaluated in the enclosing scope.
				r.collectExpr(g.Iter, s)
			} else {
				r.collectExpr(g.Iter, cs)
			}
			r.collectTarget(g.Target, cs, BindComprehension)
			for _, cond := range g.Ifs {
				r.collectExpr(cond, cs)
			}
		}
		if n.Key != nil {
			r.collectExpr(n.Key, cs)
		}
		r.collectExpr(n.Element, cs)

	case *ast.Compare:
		r.collectExpr(n.Left, s)
		for _, c := range n.Comparators {
			r.collectExpr(c, s)
		}

	case *ast.BinOp:
		r.collectExpr(n.Left, s)
		r.collectExpr(n.Right, s)

	case *ast.UnaryOp:
		r.collectExpr(n.Operand, s)

	case *ast.BoolOp:
		for _, v := range n.Values {
			r.collectExpr(v, s)
		}

	case *ast.Lambda:
		if n.Params != nil {
			for _, p := range allParams(n.Params) {
				if p.Default != nil {
					r.collectExpr(p.Default, s)
				}
			}
		}
		ls := newScope(ScopeFunction, s, n)
		r.scopeOf[n] = ls
		if n.Params != nil {
			for _, p := range allParams(n.Params) {
				ls.bind(p.Name.Id, BindParam, p.Name.Start, p)
				p.Name.Binding = ls.First(p.Name.Id)
			}
		}
		r.collectExpr(n.Body, ls)
		r.reconcileGlobalsNonlocals(ls)

	case *ast.IfExp:
		r.collectExpr(n.Cond, s)
		r.collectExpr(n.Body, s)
		r.collectExpr(n.Orelse, s)

	case *ast.Yield:
		s.IsGenerator = true
		if n.Value != nil {
			r.collectExpr(n.Value, s)
		}
	}
}

// ---------------------------------------------------------------------
// Resolve pass: walk the same tree, now that every scope's bindings,
// declarations and loads are known, and decide what every load refers to.
// ---------------------------------------------------------------------

func (r *resolver) resolveStmts(stmts []ast.Stmt, s *Scope) {
	for _, stmt := range stmts {
		r.resolveStmt(stmt, s)
	}
}

func (r *resolver) resolveStmt(stmt ast.Stmt, s *Scope) {
	switch n := stmt.(type) {
	case *ast.FuncDef:
		for _, d := range n.Decorators {
			r.resolveExpr(d, s)
		}
		if n.Params != nil {
			for _, p := range allParams(n.Params) {
				if p.Annotation != nil {
					r.resolveExpr(p.Annotation, s)
				}
				if p.Default != nil {
					r.resolveExpr(p.Default, s)
				}
			}
		}
		if n.Returns != nil {
			r.resolveExpr(n.Returns, s)
		}
		fs := r.scopeOf[n]
		r.resolveStmts(n.Body, fs)

	case *ast.ClassDef:
		for _, d := range n.Decorators {
			r.resolveExpr(d, s)
		}
		for _, b := range n.Bases {
			r.resolveExpr(b, s)
		}
		for _, kw := range n.Keywords {
			r.resolveExpr(kw.Value, s)
		}
		cs := r.scopeOf[n]
		r.resolveStmts(n.Body, cs)

	case *ast.Assign:
		if n.Value != nil {
			r.resolveExpr(n.Value, s)
		}
		if n.Annotation != nil {
			r.resolveExpr(n.Annotation, s)
		}
		for _, t := range n.Targets {
			r.resolveTargetLoads(t, s)
		}

	case *ast.ExprStmt:
		r.resolveExpr(n.X, s)

	case *ast.For:
		r.resolveExpr(n.Iter, s)
		r.resolveTargetLoads(n.Target, s)
		r.resolveStmts(n.Body, s)
		r.resolveStmts(n.Orelse, s)

	case *ast.While:
		r.resolveExpr(n.Cond, s)
		r.resolveStmts(n.Body, s)
		r.resolveStmts(n.Orelse, s)

	case *ast.If:
		r.resolveExpr(n.Cond, s)
		r.resolveStmts(n.Body, s)
		r.resolveStmts(n.Orelse, s)

	case *ast.Try:
		r.resolveStmts(n.Body, s)
		for _, h := range n.Handlers {
			if h.Type != nil {
				r.resolveExpr(h.Type, s)
			}
			r.resolveStmts(h.Body, s)
		}
		r.resolveStmts(n.Orelse, s)
		r.resolveStmts(n.Final, s)

	case *ast.With:
		for _, it := range n.Items {
			r.resolveExpr(it.Ctx, s)
			if it.Target != nil {
				r.resolveTargetLoads(it.Target, s)
			}
		}
		r.resolveStmts(n.Body, s)

	case *ast.Raise:
		if n.Exc != nil {
			r.resolveExpr(n.Exc, s)
		}
		if n.Cause != nil {
			r.resolveExpr(n.Cause, s)
		}

	case *ast.Return:
		if n.Value != nil {
			r.resolveExpr(n.Value, s)
		}

	case *ast.Delete:
		for _, t := range n.Targets {
			r.resolveExpr(t, s)
		}

	case *ast.Assert:
		r.resolveExpr(n.Cond, s)
		if n.Msg != nil {
			r.resolveExpr(n.Msg, s)
		}
	}
}

// resolveTargetLoads resolves the Name uses embedded in an assignment
// target's Attribute/Subscript receivers (the bound Names themselves were
// already given their Binding during collect).
func (r *resolver) resolveTargetLoads(target ast.Expr, s *Scope) {
	switch n := target.(type) {
	case *ast.Name:
		// already bound during collect.
	case *ast.TupleExpr:
		for _, e := range n.Elts {
			r.resolveTargetLoads(e, s)
		}
	case *ast.ListExpr:
		for _, e := range n.Elts {
			r.resolveTargetLoads(e, s)
		}
	case *ast.StarredExpr:
		r.resolveTargetLoads(n.Value, s)
	case *ast.Attribute:
		r.resolveExpr(n.Value, s)
	case *ast.Subscript:
		r.resolveExpr(n.Value, s)
		r.resolveExpr(n.Index, s)
	default:
		r.resolveExpr(target, s)
	}
}

func (r *resolver) resolveExpr(expr ast.Expr, s *Scope) {
	switch n := expr.(type) {
	case *ast.Name:
		r.resolveName(n, s)

	case *ast.Constant:
		// nothing to resolve.

	case *ast.Attribute:
		r.resolveExpr(n.Value, s)

	case *ast.Subscript:
		r.resolveExpr(n.Value, s)
		r.resolveExpr(n.Index, s)

	case *ast.Call:
		r.resolveExpr(n.Fn, s)
		for _, a := range n.Args {
			r.resolveExpr(a, s)
		}
		for _, kw := range n.Keywords {
			r.resolveExpr(kw.Value, s)
		}

	case *ast.ListExpr:
		for _, e := range n.Elts {
			r.resolveExpr(e, s)
		}
	case *ast.SetExpr:
		for _, e := range n.Elts {
			r.resolveExpr(e, s)
		}
	case *ast.TupleExpr:
		for _, e := range n.Elts {
			r.resolveExpr(e, s)
		}
	case *ast.DictExpr:
		for i, k := range n.Keys {
			if k != nil {
				r.resolveExpr(k, s)
			}
			r.resolveExpr(n.Values[i], s)
		}
	case *ast.StarredExpr:
		r.resolveExpr(n.Value, s)

	case *ast.Comprehension:
		cs := r.scopeOf[n]
		for i, g := range n.Generators {
			if i == 0 {
				r.resolveExpr(g.Iter, s)
			} else {
				r.resolveExpr(g.Iter, cs)
			}
			r.resolveTargetLoads(g.Target, cs)
			for _, cond := range g.Ifs {
				r.resolveExpr(cond, cs)
			}
		}
		if n.Key != nil {
			r.resolveExpr(n.Key, cs)
		}
		r.resolveExpr(n.Element, cs)

	case *ast.Compare:
		r.resolveExpr(n.Left, s)
		for _, c := range n.Comparators {
			r.resolveExpr(c, s)
		}

	case *ast.BinOp:
		r.resolveExpr(n.Left, s)
		r.resolveExpr(n.Right, s)

	case *ast.UnaryOp:
		r.resolveExpr(n.Operand, s)

	case *ast.BoolOp:
		for _, v := range n.Values {
			r.resolveExpr(v, s)
		}

	case *ast.Lambda:
		if n.Params != nil {
			for _, p := range allParams(n.Params) {
				if p.Default != nil {
					r.resolveExpr(p.Default, s)
				}
			}
		}
		ls := r.scopeOf[n]
		r.resolveExpr(n.Body, ls)

	case *ast.IfExp:
		r.resolveExpr(n.Cond, s)
		r.resolveExpr(n.Body, s)
		r.resolveExpr(n.Orelse, s)

	case *ast.Yield:
		if n.Value != nil {
			r.resolveExpr(n.Value, s)
		}
	}
}

// resolveName decides what a single name reference n in scope s refers to:
// a declared global, a declared nonlocal, a lexically enclosing binding, a
// builtin, or unresolved.
func (r *resolver) resolveName(n *ast.Name, s *Scope) {
	if _, ok := s.Globals[n.Id]; ok {
		r.checkUsedPriorDeclaration(n, s, s.Globals[n.Id])
		if mod := moduleScope(s); mod.binds(n.Id) {
			n.Binding = mod.First(n.Id)
			return
		}
		if builtins.IsBuiltin(n.Id) {
			n.Binding = Builtin
			return
		}
		r.reportUnresolved(n, s)
		return
	}

	if _, ok := s.Nonlocals[n.Id]; ok {
		r.checkUsedPriorDeclaration(n, s, s.Nonlocals[n.Id])
		if target := r.nonlocalTarget(s, n.Id); target != nil {
			n.Binding = target.First(n.Id)
			return
		}
		// E0117 already reported by checkNonlocalAndGlobal; don't also
		// double-report as unresolved.
		n.Binding = Unresolved
		return
	}

	for c := s; c != nil; c = lookupParent(c) {
		if c.binds(n.Id) {
			n.Binding = c.First(n.Id)
			return
		}
	}

	if builtins.IsBuiltin(n.Id) {
		n.Binding = Builtin
		return
	}

	r.reportUnresolved(n, s)
}

func (r *resolver) reportUnresolved(n *ast.Name, s *Scope) {
	if resolutionUncertain(s) {
		n.Binding = Uncertain
		return
	}
	n.Binding = Unresolved
	r.errorf("E0602", "undefined-variable", n.Start, "undefined variable '%s'", n.Id)
}

// checkUsedPriorDeclaration reports E0118: a name used in s before its
// global/nonlocal declaration in s.
func (r *resolver) checkUsedPriorDeclaration(n *ast.Name, s *Scope, declPos token.Pos) {
	if n.Start >= declPos {
		return
	}
	for _, l := range s.Loads {
		if l.Node == n {
			r.errorf("E0118", "used-prior-global-declaration", n.Start,
				"name '%s' is used prior to a global/nonlocal declaration", n.Id)
			return
		}
	}
}

func moduleScope(s *Scope) *Scope {
	for s.Parent != nil {
		s = s.Parent
	}
	return s
}

// allParams returns every parameter of sig in declaration order.
func allParams(sig *ast.Params) []*ast.Param {
	var out []*ast.Param
	out = append(out, sig.PosOnly...)
	out = append(out, sig.PosOrKw...)
	if sig.VarArg != nil {
		out = append(out, sig.VarArg)
	}
	out = append(out, sig.KwOnly...)
	if sig.KwArg != nil {
		out = append(out, sig.KwArg)
	}
	return out
}
