package check

import (
	"github.com/cbellis/pyrint/lang/ast"
	"github.com/cbellis/pyrint/lang/diag"
	"github.com/cbellis/pyrint/lang/resolver"
	"github.com/cbellis/pyrint/lang/token"
)

// checkE0107 flags the "<>" comparison operator, carried by the scanner
// only so this rule can report it.
func checkE0107(ctx *Context, mod *ast.Module, c *diag.Collector) {
	var v ast.VisitorFunc
	v = func(n ast.Node, dir ast.VisitDirection) ast.Visitor {
		if dir != ast.VisitEnter {
			return v
		}
		if cmp, ok := n.(*ast.Compare); ok {
			for _, op := range cmp.Ops {
				if op == token.NEQ_OLD {
					s, _ := cmp.Span()
					c.Addf("E0107", "nonexistent-operator", ctx.File.Position(s), "<> is not a valid comparison operator, use != instead")
				}
			}
		}
		return v
	}
	ast.Walk(v, mod)
}

// checkE0109 flags a dict literal with two keys that are equal literals
// (including across int/float/bool, so True and 1 collide). Non-literal
// keys are never compared since their runtime value is unknown statically.
func checkE0109(ctx *Context, mod *ast.Module, c *diag.Collector) {
	var v ast.VisitorFunc
	v = func(n ast.Node, dir ast.VisitDirection) ast.Visitor {
		if dir != ast.VisitEnter {
			return v
		}
		dict, ok := n.(*ast.DictExpr)
		if !ok {
			return v
		}
		for i := 1; i < len(dict.Keys); i++ {
			ki, ok := dict.Keys[i].(*ast.Constant)
			if !ok {
				continue
			}
			for j := 0; j < i; j++ {
				kj, ok := dict.Keys[j].(*ast.Constant)
				if !ok {
					continue
				}
				if constKeyEqual(ki, kj) {
					s, _ := ki.Span()
					c.Addf("E0109", "duplicate-key", ctx.File.Position(s), "duplicate key %s in dictionary", ki.Raw)
					break
				}
			}
		}
		return v
	}
	ast.Walk(v, mod)
}

func constKeyEqual(a, b *ast.Constant) bool {
	if av, ok := normalizeConstNum(a); ok {
		if bv, ok := normalizeConstNum(b); ok {
			return av == bv
		}
		return false
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case ast.ConstString, ast.ConstBytes:
		return a.Str == b.Str
	case ast.ConstNone:
		return true
	}
	return false
}

// normalizeConstNum returns c's numeric value for Int/Float/Bool constants,
// so that True and 1 (and False and 0) compare equal as dict keys, matching
// the target language's own dict-key equality rules.
func normalizeConstNum(c *ast.Constant) (float64, bool) {
	switch c.Kind {
	case ast.ConstInt, ast.ConstBool:
		return float64(c.Int), true
	case ast.ConstFloat:
		return c.Float, true
	}
	return 0, false
}

// checkE0111 flags reversed() called on an argument that is known never to
// be a valid sequence: a non-sequence literal, or a name bound to a
// function defined in scope.
func checkE0111(ctx *Context, mod *ast.Module, c *diag.Collector) {
	var v ast.VisitorFunc
	v = func(n ast.Node, dir ast.VisitDirection) ast.Visitor {
		if dir != ast.VisitEnter {
			return v
		}
		call, ok := n.(*ast.Call)
		if !ok || len(call.Args) != 1 {
			return v
		}
		fn, ok := call.Fn.(*ast.Name)
		if !ok || fn.Id != "reversed" {
			return v
		}
		if bad, desc := badReversedArg(call.Args[0]); bad {
			s, _ := call.Args[0].Span()
			c.Addf("E0111", "bad-reversed-sequence", ctx.File.Position(s), "bad reversed sequence (%s)", desc)
		}
		return v
	}
	ast.Walk(v, mod)
}

func badReversedArg(e ast.Expr) (bool, string) {
	switch a := e.(type) {
	case *ast.Constant:
		switch a.Kind {
		case ast.ConstInt, ast.ConstFloat, ast.ConstBool, ast.ConstNone:
			return true, "a non-sequence literal"
		}
	case *ast.Name:
		if b, ok := a.Binding.(*resolver.Binding); ok && b.Kind == resolver.BindFuncDef {
			return true, "a function"
		}
	}
	return false, ""
}

// checkE0112 flags an assignment, for-loop or comprehension target with
// more than one starred element at the same nesting level.
func checkE0112(ctx *Context, mod *ast.Module, c *diag.Collector) {
	var v ast.VisitorFunc
	v = func(n ast.Node, dir ast.VisitDirection) ast.Visitor {
		if dir != ast.VisitEnter {
			return v
		}
		switch s := n.(type) {
		case *ast.Assign:
			for _, t := range s.Targets {
				checkStarTargets(ctx, t, c)
			}
		case *ast.For:
			checkStarTargets(ctx, s.Target, c)
		case *ast.Comprehension:
			for _, g := range s.Generators {
				checkStarTargets(ctx, g.Target, c)
			}
		}
		return v
	}
	ast.Walk(v, mod)
}

func checkStarTargets(ctx *Context, target ast.Expr, c *diag.Collector) {
	var elts []ast.Expr
	switch t := target.(type) {
	case *ast.TupleExpr:
		elts = t.Elts
	case *ast.ListExpr:
		elts = t.Elts
	default:
		return
	}
	var stars []token.Pos
	for _, el := range elts {
		if se, ok := el.(*ast.StarredExpr); ok {
			stars = append(stars, se.Start)
		}
	}
	for _, p := range stars[minInt(1, len(stars)):] {
		c.Addf("E0112", "too-many-star-expressions", ctx.File.Position(p), "more than one starred expression in assignment")
	}
	for _, el := range elts {
		checkStarTargets(ctx, el, c)
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// checkE0119 flags .format(...) called on a literal known not to be a
// string (int, float, bool, None, list, set, dict, tuple). A name holding a
// string, or a string literal, is never flagged.
func checkE0119(ctx *Context, mod *ast.Module, c *diag.Collector) {
	var v ast.VisitorFunc
	v = func(n ast.Node, dir ast.VisitDirection) ast.Visitor {
		if dir != ast.VisitEnter {
			return v
		}
		call, ok := n.(*ast.Call)
		if !ok {
			return v
		}
		attr, ok := call.Fn.(*ast.Attribute)
		if !ok || attr.Attr != "format" {
			return v
		}
		if bad, kind := nonStringLiteral(attr.Value); bad {
			s, _ := attr.Value.Span()
			c.Addf("E0119", "misplaced-format-function", ctx.File.Position(s), "format function called on a %s, not a string", kind)
		}
		return v
	}
	ast.Walk(v, mod)
}

func nonStringLiteral(e ast.Expr) (bool, string) {
	switch a := e.(type) {
	case *ast.Constant:
		switch a.Kind {
		case ast.ConstInt:
			return true, "int"
		case ast.ConstFloat:
			return true, "float"
		case ast.ConstBool:
			return true, "bool"
		case ast.ConstNone:
			return true, "NoneType"
		}
	case *ast.ListExpr:
		return true, "list"
	case *ast.DictExpr:
		return true, "dict"
	case *ast.SetExpr:
		return true, "set"
	case *ast.TupleExpr:
		return true, "tuple"
	}
	return false, ""
}
