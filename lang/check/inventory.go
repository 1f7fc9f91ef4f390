package check

import "github.com/cbellis/pyrint/lang/ast"

// inventory collects the structural facts several rules need: every
// function/lambda/class definition in the tree, which class (if any)
// directly owns each method, and every statement list ("block") that can
// hold sibling definitions, for E0102's same-scope redefinition check.
// Rules that use it call buildInventory themselves rather than sharing one
// computed at Run's top level, so that disabling a rule never changes the
// traversal another rule performs.
type inventory struct {
	funcDefs    []*ast.FuncDef
	classDefs   []*ast.ClassDef
	lambdas     []*ast.Lambda
	methodOwner map[*ast.FuncDef]*ast.ClassDef
	blocks      [][]ast.Stmt
}

func buildInventory(mod *ast.Module) *inventory {
	inv := &inventory{methodOwner: make(map[*ast.FuncDef]*ast.ClassDef)}

	var walkBlock func(stmts []ast.Stmt, owner *ast.ClassDef)
	walkBlock = func(stmts []ast.Stmt, owner *ast.ClassDef) {
		inv.blocks = append(inv.blocks, stmts)
		for _, stmt := range stmts {
			switch s := stmt.(type) {
			case *ast.FuncDef:
				inv.funcDefs = append(inv.funcDefs, s)
				inv.methodOwner[s] = owner
				walkBlock(s.Body, nil)
			case *ast.ClassDef:
				inv.classDefs = append(inv.classDefs, s)
				walkBlock(s.Body, s)
			case *ast.If:
				walkBlock(s.Body, owner)
				walkBlock(s.Orelse, owner)
			case *ast.For:
				walkBlock(s.Body, owner)
				walkBlock(s.Orelse, owner)
			case *ast.While:
				walkBlock(s.Body, owner)
				walkBlock(s.Orelse, owner)
			case *ast.Try:
				walkBlock(s.Body, owner)
				for _, h := range s.Handlers {
					walkBlock(h.Body, owner)
				}
				walkBlock(s.Orelse, owner)
				walkBlock(s.Final, owner)
			case *ast.With:
				walkBlock(s.Body, owner)
			}
		}
	}
	walkBlock(mod.Body, nil)

	var v ast.VisitorFunc
	v = func(n ast.Node, dir ast.VisitDirection) ast.Visitor {
		if dir != ast.VisitEnter {
			return v
		}
		if lam, ok := n.(*ast.Lambda); ok {
			inv.lambdas = append(inv.lambdas, lam)
		}
		return v
	}
	ast.Walk(v, mod)

	return inv
}

// paramList flattens sig's parameters (across PosOnly/PosOrKw/VarArg/
// KwOnly/KwArg) in declaration order.
func paramList(sig *ast.Params) []*ast.Param {
	if sig == nil {
		return nil
	}
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

// decoratorName returns the simple/attribute name a decorator expression
// refers to, unwrapping a call (e.g. "@foo(1)" yields "foo").
func decoratorName(e ast.Expr) string {
	switch d := e.(type) {
	case *ast.Name:
		return d.Id
	case *ast.Attribute:
		return d.Attr
	case *ast.Call:
		return decoratorName(d.Fn)
	}
	return ""
}

func hasDecorator(decorators []ast.Expr, name string) bool {
	for _, d := range decorators {
		if decoratorName(d) == name {
			return true
		}
	}
	return false
}

// findDirect returns the first node in body matching want, without
// descending into nested function/lambda/class/comprehension scopes (those
// are analyzed by their own, separate rule invocation).
func findDirect(body []ast.Stmt, want func(ast.Node) bool) ast.Node {
	var found ast.Node
	var v ast.VisitorFunc
	v = func(n ast.Node, dir ast.VisitDirection) ast.Visitor {
		if found != nil || dir != ast.VisitEnter {
			return nil
		}
		switch n.(type) {
		case *ast.FuncDef, *ast.ClassDef, *ast.Lambda, *ast.Comprehension:
			return nil
		}
		if want(n) {
			found = n
			return nil
		}
		return v
	}
	for _, s := range body {
		ast.Walk(v, s)
		if found != nil {
			break
		}
	}
	return found
}

func isNoneConst(e ast.Expr) bool {
	c, ok := e.(*ast.Constant)
	return ok && c.Kind == ast.ConstNone
}
