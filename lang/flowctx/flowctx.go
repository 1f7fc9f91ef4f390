// Package flowctx implements a control-flow context tracker: a visitor
// utility that, for any node, answers whether it is lexically inside a loop,
// a function, a generator, a coroutine, or an except/finally handler. It is
// a recursive descent over statements and expressions that passes a Frame
// value down by copy, so each nested block sees its own context and nothing
// has to be popped on the way back out.
package flowctx

import (
	"github.com/cbellis/pyrint/lang/ast"
	"github.com/cbellis/pyrint/lang/resolver"
	"github.com/cbellis/pyrint/lang/token"
)

// FunctionKind classifies the function-shaped frame a node is nested in.
type FunctionKind int

const (
	// KindNone means the node is not nested in any function: it sits at
	// module or class-body level.
	KindNone FunctionKind = iota
	KindFunction
	KindGenerator
	KindCoroutine
	KindCoroutineGenerator
)

// IsFunction reports whether k denotes any function-shaped frame at all.
func (k FunctionKind) IsFunction() bool { return k != KindNone }

// IsGenerator reports whether k denotes a (possibly coroutine) generator.
func (k FunctionKind) IsGenerator() bool {
	return k == KindGenerator || k == KindCoroutineGenerator
}

// IsCoroutine reports whether k denotes an "async def" frame.
func (k FunctionKind) IsCoroutine() bool {
	return k == KindCoroutine || k == KindCoroutineGenerator
}

// Frame is a snapshot of the control-flow context at one point in the tree.
type Frame struct {
	InLoopDepth     int
	FuncKind        FunctionKind
	InExceptDepth   int
	InFinallyDepth  int
	InClassBody     bool
	InComprehension bool
}

// Result maps every node flowctx cares about (break, continue, return,
// yield, raise, await) to the Frame active when it was visited. FuncDef and
// Lambda nodes map to the frame their own body starts with (loop depth
// reset, function kind set), not to the enclosing frame.
type Result struct {
	ContextOf map[ast.Node]Frame
}

// At returns the Frame recorded for n, or the zero Frame if n was never
// visited (e.g. it belongs to a different tree).
func (r *Result) At(n ast.Node) Frame {
	return r.ContextOf[n]
}

// Analyze walks mod and records the control-flow Frame active at every node
// that a checker in lang/check needs to reason about. res supplies the
// per-scope IsGenerator/IsCoroutine flags the resolver already computed, so
// flowctx never needs its own lookahead pass over function bodies.
func Analyze(mod *ast.Module, res *resolver.Result) *Result {
	t := &tracker{res: res, out: &Result{ContextOf: make(map[ast.Node]Frame)}}
	t.walkStmts(mod.Body, Frame{})
	return t.out
}

type tracker struct {
	res *resolver.Result
	out *Result
}

func (t *tracker) record(n ast.Node, f Frame) {
	t.out.ContextOf[n] = f
}

func funcKind(isGenerator, isCoroutine bool) FunctionKind {
	switch {
	case isGenerator && isCoroutine:
		return KindCoroutineGenerator
	case isGenerator:
		return KindGenerator
	case isCoroutine:
		return KindCoroutine
	default:
		return KindFunction
	}
}

func (t *tracker) walkStmts(stmts []ast.Stmt, f Frame) {
	for _, s := range stmts {
		t.walkStmt(s, f)
	}
}

func (t *tracker) walkStmt(stmt ast.Stmt, f Frame) {
	switch n := stmt.(type) {
	case *ast.FuncDef:
		for _, d := range n.Decorators {
			t.walkExpr(d, f)
		}
		if n.Params != nil {
			for _, p := range allParams(n.Params) {
				if p.Default != nil {
					t.walkExpr(p.Default, f)
				}
			}
		}
		scope := t.res.ScopeOf[n]
		inner := Frame{FuncKind: funcKind(scope != nil && scope.IsGenerator, n.IsAsync)}
		t.record(n, inner)
		t.walkStmts(n.Body, inner)

	case *ast.ClassDef:
		for _, d := range n.Decorators {
			t.walkExpr(d, f)
		}
		for _, b := range n.Bases {
			t.walkExpr(b, f)
		}
		inner := f
		inner.InClassBody = true
		inner.InLoopDepth = 0
		inner.FuncKind = KindNone
		t.walkStmts(n.Body, inner)

	case *ast.Assign:
		if n.Value != nil {
			t.walkExpr(n.Value, f)
		}
		for _, tgt := range n.Targets {
			t.walkExpr(tgt, f)
		}
	case *ast.ExprStmt:
		t.walkExpr(n.X, f)

	case *ast.For:
		t.walkExpr(n.Iter, f)
		body := f
		body.InLoopDepth++
		t.walkStmts(n.Body, body)
		t.walkStmts(n.Orelse, f)

	case *ast.While:
		t.walkExpr(n.Cond, f)
		body := f
		body.InLoopDepth++
		t.walkStmts(n.Body, body)
		t.walkStmts(n.Orelse, f)

	case *ast.If:
		t.walkExpr(n.Cond, f)
		t.walkStmts(n.Body, f)
		t.walkStmts(n.Orelse, f)

	case *ast.Try:
		t.walkStmts(n.Body, f)
		for _, h := range n.Handlers {
			hf := f
			hf.InExceptDepth++
			t.walkStmts(h.Body, hf)
		}
		t.walkStmts(n.Orelse, f)
		ff := f
		ff.InFinallyDepth++
		t.walkStmts(n.Final, ff)

	case *ast.With:
		for _, it := range n.Items {
			t.walkExpr(it.Ctx, f)
		}
		t.walkStmts(n.Body, f)

	case *ast.Raise:
		t.record(n, f)
		if n.Exc != nil {
			t.walkExpr(n.Exc, f)
		}
		if n.Cause != nil {
			t.walkExpr(n.Cause, f)
		}

	case *ast.Return:
		t.record(n, f)
		if n.Value != nil {
			t.walkExpr(n.Value, f)
		}

	case *ast.Break:
		t.record(n, f)
	case *ast.Continue:
		t.record(n, f)

	case *ast.Delete:
		for _, tgt := range n.Targets {
			t.walkExpr(tgt, f)
		}
	case *ast.Assert:
		t.walkExpr(n.Cond, f)
		if n.Msg != nil {
			t.walkExpr(n.Msg, f)
		}
	}
}

func (t *tracker) walkExpr(expr ast.Expr, f Frame) {
	switch n := expr.(type) {
	case *ast.Attribute:
		t.walkExpr(n.Value, f)
	case *ast.Subscript:
		t.walkExpr(n.Value, f)
		t.walkExpr(n.Index, f)
	case *ast.Call:
		t.walkExpr(n.Fn, f)
		for _, a := range n.Args {
			t.walkExpr(a, f)
		}
		for _, kw := range n.Keywords {
			t.walkExpr(kw.Value, f)
		}
	case *ast.ListExpr:
		for _, e := range n.Elts {
			t.walkExpr(e, f)
		}
	case *ast.SetExpr:
		for _, e := range n.Elts {
			t.walkExpr(e, f)
		}
	case *ast.TupleExpr:
		for _, e := range n.Elts {
			t.walkExpr(e, f)
		}
	case *ast.DictExpr:
		for i, k := range n.Keys {
			if k != nil {
				t.walkExpr(k, f)
			}
			t.walkExpr(n.Values[i], f)
		}
	case *ast.StarredExpr:
		t.walkExpr(n.Value, f)
	case *ast.Comprehension:
		inner := f
		inner.InComprehension = true
		inner.InLoopDepth = 0
		for i, g := range n.Generators {
			if i == 0 {
				t.walkExpr(g.Iter, f)
			} else {
				t.walkExpr(g.Iter, inner)
			}
			for _, cond := range g.Ifs {
				t.walkExpr(cond, inner)
			}
		}
		if n.Key != nil {
			t.walkExpr(n.Key, inner)
		}
		t.walkExpr(n.Element, inner)
	case *ast.Compare:
		t.walkExpr(n.Left, f)
		for _, c := range n.Comparators {
			t.walkExpr(c, f)
		}
	case *ast.BinOp:
		t.walkExpr(n.Left, f)
		t.walkExpr(n.Right, f)
	case *ast.UnaryOp:
		if n.Op == token.AWAIT {
			t.record(n, f)
		}
		t.walkExpr(n.Operand, f)
	case *ast.BoolOp:
		for _, v := range n.Values {
			t.walkExpr(v, f)
		}
	case *ast.Lambda:
		if n.Params != nil {
			for _, p := range allParams(n.Params) {
				if p.Default != nil {
					t.walkExpr(p.Default, f)
				}
			}
		}
		scope := t.res.ScopeOf[n]
		inner := Frame{FuncKind: funcKind(scope != nil && scope.IsGenerator, false)}
		t.record(n, inner)
		t.walkExpr(n.Body, inner)
	case *ast.IfExp:
		t.walkExpr(n.Cond, f)
		t.walkExpr(n.Body, f)
		t.walkExpr(n.Orelse, f)
	case *ast.Yield:
		t.record(n, f)
		if n.Value != nil {
			t.walkExpr(n.Value, f)
		}
	}
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
