// Package assign implements a per-function definite-assignment lattice: at
// every name reference inside a function body, is the name bound along
// every path to that point (DEF), bound along some but not all paths
// (MAYBE), or neither. lang/check's E0606 rule walks the Result to decide
// whether a load is possibly-used-before-assignment.
package assign

import (
	"golang.org/x/exp/maps"

	"github.com/cbellis/pyrint/lang/ast"
)

// Status classifies one name load against the lattice state active at that
// point in the function.
type Status int

const (
	// Always means the name is bound on every path reaching the load.
	Always Status = iota
	// Possible means the name is bound on some but not all paths: the E0606
	// case.
	Possible
	// Unseen means the name was never assigned anywhere in the function
	// body tracked by this analysis (a free name, or a name the scope
	// resolver already reports via E0602). assign does not flag these.
	Unseen
)

// Result records the Status of every load of a locally-assigned name
// encountered while walking a function body.
type Result struct {
	StatusOf map[*ast.Name]Status
}

// At returns the recorded Status for n, or Unseen if n was never visited.
func (r *Result) At(n *ast.Name) Status {
	if s, ok := r.StatusOf[n]; ok {
		return s
	}
	return Unseen
}

// set is a name-set over the DEF/MAYBE lattice, implemented as
// map[string]struct{}, with golang.org/x/exp/maps supplying clone and
// union/intersect built on top.
type set map[string]struct{}

func newSet(names ...string) set {
	s := make(set, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

func (s set) clone() set {
	return set(maps.Clone(map[string]struct{}(s)))
}

func (s set) add(name string) {
	s[name] = struct{}{}
}

func (s set) has(name string) bool {
	_, ok := s[name]
	return ok
}

func union(sets ...set) set {
	out := make(set)
	for _, s := range sets {
		for k := range s {
			out[k] = struct{}{}
		}
	}
	return out
}

func intersect(sets ...set) set {
	if len(sets) == 0 {
		return newSet()
	}
	out := sets[0].clone()
	for _, s := range sets[1:] {
		for k := range out {
			if !s.has(k) {
				delete(out, k)
			}
		}
	}
	return out
}

// state is the lattice value threaded through the walk: DEF is a subset of
// MAYBE at all times (every definitely-bound name is trivially
// possibly-bound).
type state struct {
	def   set
	maybe set
}

func (s state) clone() state {
	return state{def: s.def.clone(), maybe: s.maybe.clone()}
}

func (s *state) bind(name string) {
	s.def.add(name)
	s.maybe.add(name)
}

// analyzer walks one function body, threading lattice state and recording a
// Status for every load of a name this function assigns somewhere.
type analyzer struct {
	locals set // every name assigned anywhere in the body; only these are tracked
	out    *Result
}

// Analyze computes the definite-assignment lattice for a function-shaped
// body. params are bound Always from entry (they, and any name resolvable
// through an enclosing scope, start in DEF — assign only ever narrows
// tracking to names this body itself assigns, so enclosing-scope names
// never appear as Possible).
func Analyze(params []string, body []ast.Stmt) *Result {
	locals := collectLocals(body)
	for _, p := range params {
		locals.add(p)
	}
	a := &analyzer{locals: locals, out: &Result{StatusOf: make(map[*ast.Name]Status)}}
	st := state{def: newSet(), maybe: newSet()}
	for _, p := range params {
		st.bind(p)
	}
	a.walkStmts(body, st)
	return a.out
}

// collectLocals finds every simple-name target assigned anywhere in body,
// without descending into nested function/class/lambda bodies (those are
// separate function-shaped scopes with their own Analyze call).
func collectLocals(body []ast.Stmt) set {
	s := newSet()
	declared := newSet() // global/nonlocal names: owned by another scope, never tracked
	var walkStmts func([]ast.Stmt)
	var walkTarget func(ast.Expr)
	walkTarget = func(e ast.Expr) {
		switch t := e.(type) {
		case *ast.Name:
			s.add(t.Id)
		case *ast.TupleExpr:
			for _, el := range t.Elts {
				walkTarget(el)
			}
		case *ast.ListExpr:
			for _, el := range t.Elts {
				walkTarget(el)
			}
		case *ast.StarredExpr:
			walkTarget(t.Value)
		}
	}
	walkStmts = func(stmts []ast.Stmt) {
		for _, stmt := range stmts {
			switch n := stmt.(type) {
			case *ast.Assign:
				for _, tgt := range n.Targets {
					walkTarget(tgt)
				}
			case *ast.For:
				walkTarget(n.Target)
				walkStmts(n.Body)
				walkStmts(n.Orelse)
			case *ast.While:
				walkStmts(n.Body)
				walkStmts(n.Orelse)
			case *ast.If:
				walkStmts(n.Body)
				walkStmts(n.Orelse)
			case *ast.Try:
				walkStmts(n.Body)
				for _, h := range n.Handlers {
					if h.Name != nil {
						s.add(h.Name.Id)
					}
					walkStmts(h.Body)
				}
				walkStmts(n.Orelse)
				walkStmts(n.Final)
			case *ast.With:
				for _, it := range n.Items {
					if it.Target != nil {
						walkTarget(it.Target)
					}
				}
				walkStmts(n.Body)
			case *ast.Import:
				for _, al := range n.Names {
					if al.AsName != nil {
						s.add(al.AsName.Id)
					}
				}
			case *ast.ImportFrom:
				for _, al := range n.Names {
					if al.AsName != nil {
						s.add(al.AsName.Id)
					}
				}
			case *ast.FuncDef:
				s.add(n.Name.Id)
			case *ast.ClassDef:
				s.add(n.Name.Id)
			case *ast.Global:
				for _, id := range n.Names {
					declared.add(id.Id)
				}
			case *ast.Nonlocal:
				for _, id := range n.Names {
					declared.add(id.Id)
				}
			}
		}
	}
	walkStmts(body)
	for name := range declared {
		delete(s, name)
	}
	return s
}

func (a *analyzer) walkStmts(stmts []ast.Stmt, st state) state {
	for _, stmt := range stmts {
		st = a.walkStmt(stmt, st)
	}
	return st
}

func (a *analyzer) walkStmt(stmt ast.Stmt, st state) state {
	switch n := stmt.(type) {
	case *ast.Assign:
		if n.Value != nil {
			a.walkExpr(n.Value, st)
		}
		if n.Annotation != nil {
			a.walkExpr(n.Annotation, st)
		}
		for _, tgt := range n.Targets {
			a.bindTarget(tgt, &st)
		}
		return st

	case *ast.ExprStmt:
		a.walkExpr(n.X, st)
		return st

	case *ast.If:
		a.walkExpr(n.Cond, st)
		thenSt := a.walkStmts(n.Body, st.clone())
		var elseSt state
		if len(n.Orelse) == 0 {
			elseSt = st.clone()
		} else {
			elseSt = a.walkStmts(n.Orelse, st.clone())
		}
		return state{
			def:   intersect(thenSt.def, elseSt.def),
			maybe: union(thenSt.maybe, elseSt.maybe),
		}

	case *ast.For:
		a.walkExpr(n.Iter, st)
		bodySt := st.clone()
		a.bindTarget(n.Target, &bodySt)
		bodySt = a.walkStmts(n.Body, bodySt)
		out := state{def: st.def.clone(), maybe: union(st.maybe, bodySt.maybe)}
		return a.walkStmts(n.Orelse, out)

	case *ast.While:
		a.walkExpr(n.Cond, st)
		bodySt := a.walkStmts(n.Body, st.clone())
		out := state{def: st.def.clone(), maybe: union(st.maybe, bodySt.maybe)}
		return a.walkStmts(n.Orelse, out)

	case *ast.Try:
		tryIn := st.clone()
		tryOut := a.walkStmts(n.Body, tryIn)
		// At handlers, only try's assignments are uncertain: MAYBE, not DEF.
		handlerIn := state{def: st.def.clone(), maybe: union(st.maybe, tryOut.maybe)}
		var handlerOuts []state
		for _, h := range n.Handlers {
			hIn := handlerIn.clone()
			if h.Name != nil {
				hIn.bind(h.Name.Id)
			}
			hOut := a.walkStmts(h.Body, hIn)
			handlerOuts = append(handlerOuts, hOut)
		}
		// else runs only after try succeeds in full, so it sees try's
		// bindings as DEF.
		elseOut := tryOut.clone()
		if len(n.Orelse) > 0 {
			elseOut = a.walkStmts(n.Orelse, tryOut.clone())
		}
		var successPath state
		if len(n.Orelse) > 0 {
			successPath = elseOut
		} else {
			successPath = tryOut
		}
		defs := []set{successPath.def}
		maybes := []set{successPath.maybe}
		for _, hOut := range handlerOuts {
			defs = append(defs, hOut.def)
			maybes = append(maybes, hOut.maybe)
		}
		postDef := intersect(defs...)
		postMaybe := union(maybes...)
		post := state{def: postDef, maybe: postMaybe}
		// finally sees only DEF_in as definite, and its own assignments are
		// then folded into the joined post-construct state.
		finallyIn := state{def: st.def.clone(), maybe: st.maybe.clone()}
		finallyOut := a.walkStmts(n.Final, finallyIn)
		return state{
			def:   union(post.def, finallyOut.def),
			maybe: union(post.maybe, finallyOut.maybe),
		}

	case *ast.With:
		for _, it := range n.Items {
			a.walkExpr(it.Ctx, st)
			if it.Target != nil {
				a.bindTarget(it.Target, &st)
			}
		}
		return a.walkStmts(n.Body, st)

	case *ast.Return:
		if n.Value != nil {
			a.walkExpr(n.Value, st)
		}
		return st
	case *ast.Raise:
		if n.Exc != nil {
			a.walkExpr(n.Exc, st)
		}
		if n.Cause != nil {
			a.walkExpr(n.Cause, st)
		}
		return st
	case *ast.Delete:
		for _, tgt := range n.Targets {
			a.walkExpr(tgt, st)
		}
		return st
	case *ast.Assert:
		a.walkExpr(n.Cond, st)
		if n.Msg != nil {
			a.walkExpr(n.Msg, st)
		}
		return st

	case *ast.Import, *ast.ImportFrom, *ast.Global, *ast.Nonlocal, *ast.Pass, *ast.Break, *ast.Continue:
		a.bindNonExprStmt(n, &st)
		return st

	case *ast.FuncDef:
		for _, d := range n.Decorators {
			a.walkExpr(d, st)
		}
		if n.Params != nil {
			for _, p := range allParams(n.Params) {
				if p.Default != nil {
					a.walkExpr(p.Default, st)
				}
			}
		}
		st.bind(n.Name.Id)
		return st
	case *ast.ClassDef:
		for _, d := range n.Decorators {
			a.walkExpr(d, st)
		}
		for _, b := range n.Bases {
			a.walkExpr(b, st)
		}
		st.bind(n.Name.Id)
		return st
	}
	return st
}

// bindNonExprStmt records the bindings of the statement kinds with no
// sub-expressions of interest to assign (import aliases; global/nonlocal
// declarations are a resolver-level concern and never recorded here, since
// assign only tracks names this function also assigns directly elsewhere).
func (a *analyzer) bindNonExprStmt(stmt ast.Stmt, st *state) {
	switch n := stmt.(type) {
	case *ast.Import:
		for _, al := range n.Names {
			if al.AsName != nil {
				st.bind(al.AsName.Id)
			}
		}
	case *ast.ImportFrom:
		for _, al := range n.Names {
			if al.AsName != nil {
				st.bind(al.AsName.Id)
			}
		}
	}
}

// bindTarget records an assignment target as DEF, recursing through tuple/
// list/starred destructuring.
func (a *analyzer) bindTarget(target ast.Expr, st *state) {
	switch t := target.(type) {
	case *ast.Name:
		st.bind(t.Id)
	case *ast.TupleExpr:
		for _, el := range t.Elts {
			a.bindTarget(el, st)
		}
	case *ast.ListExpr:
		for _, el := range t.Elts {
			a.bindTarget(el, st)
		}
	case *ast.StarredExpr:
		a.bindTarget(t.Value, st)
	default:
		a.walkExpr(target, *st)
	}
}

// walkExpr records the Status of every *ast.Name load it finds (a Name that
// is not itself a binding target — callers never pass a target expression
// to walkExpr) and recurses into sub-expressions. Lambda and Comprehension
// bodies are their own function-shaped/comprehension scopes and are not
// descended into; lang/check never runs Analyze over a Lambda body.
func (a *analyzer) walkExpr(expr ast.Expr, st state) {
	switch n := expr.(type) {
	case *ast.Name:
		if !a.locals.has(n.Id) {
			return
		}
		switch {
		case st.def.has(n.Id):
			a.out.StatusOf[n] = Always
		case st.maybe.has(n.Id):
			a.out.StatusOf[n] = Possible
		}
		// Bound along no path yet (neither DEF nor MAYBE): left to the scope
		// resolver, which never flags it since the name is resolvable
		// somewhere in the function. Not recorded.
	case *ast.Attribute:
		a.walkExpr(n.Value, st)
	case *ast.Subscript:
		a.walkExpr(n.Value, st)
		a.walkExpr(n.Index, st)
	case *ast.Call:
		a.walkExpr(n.Fn, st)
		for _, arg := range n.Args {
			a.walkExpr(arg, st)
		}
		for _, kw := range n.Keywords {
			a.walkExpr(kw.Value, st)
		}
	case *ast.ListExpr:
		for _, e := range n.Elts {
			a.walkExpr(e, st)
		}
	case *ast.SetExpr:
		for _, e := range n.Elts {
			a.walkExpr(e, st)
		}
	case *ast.TupleExpr:
		for _, e := range n.Elts {
			a.walkExpr(e, st)
		}
	case *ast.DictExpr:
		for i, k := range n.Keys {
			if k != nil {
				a.walkExpr(k, st)
			}
			a.walkExpr(n.Values[i], st)
		}
	case *ast.StarredExpr:
		a.walkExpr(n.Value, st)
	case *ast.Compare:
		a.walkExpr(n.Left, st)
		for _, c := range n.Comparators {
			a.walkExpr(c, st)
		}
	case *ast.BinOp:
		a.walkExpr(n.Left, st)
		a.walkExpr(n.Right, st)
	case *ast.UnaryOp:
		a.walkExpr(n.Operand, st)
	case *ast.BoolOp:
		for _, v := range n.Values {
			a.walkExpr(v, st)
		}
	case *ast.IfExp:
		a.walkExpr(n.Cond, st)
		a.walkExpr(n.Body, st)
		a.walkExpr(n.Orelse, st)
	case *ast.Yield:
		if n.Value != nil {
			a.walkExpr(n.Value, st)
		}
	case *ast.Comprehension:
		if len(n.Generators) > 0 {
			a.walkExpr(n.Generators[0].Iter, st)
		}
	case *ast.Lambda:
		// nested function-shaped scope; its own defaults are evaluated in
		// the enclosing scope.
		if n.Params != nil {
			for _, p := range allParams(n.Params) {
				if p.Default != nil {
					a.walkExpr(p.Default, st)
				}
			}
		}
	}
}

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
