package check

import (
	"github.com/cbellis/pyrint/lang/ast"
	"github.com/cbellis/pyrint/lang/assign"
	"github.com/cbellis/pyrint/lang/diag"
	"github.com/cbellis/pyrint/lang/token"
)

// checkE0100 flags a constructor (__init__) whose body directly contains a
// yield, making instantiation return a generator instead of an instance.
func checkE0100(ctx *Context, mod *ast.Module, c *diag.Collector) {
	inv := buildInventory(mod)
	for _, fd := range inv.funcDefs {
		if inv.methodOwner[fd] == nil || fd.Name.Id != "__init__" {
			continue
		}
		scope := ctx.Res.ScopeOf[fd]
		if scope == nil || !scope.IsGenerator {
			continue
		}
		n := findDirect(fd.Body, func(n ast.Node) bool {
			_, ok := n.(*ast.Yield)
			return ok
		})
		if n == nil {
			continue
		}
		pos := ctx.File.Position(n.(*ast.Yield).Start)
		c.Addf("E0100", "init-is-generator", pos, "__init__ method is a generator")
	}
}

// checkE0101 flags a constructor that explicitly returns a non-None value.
func checkE0101(ctx *Context, mod *ast.Module, c *diag.Collector) {
	inv := buildInventory(mod)
	for _, fd := range inv.funcDefs {
		if inv.methodOwner[fd] == nil || fd.Name.Id != "__init__" {
			continue
		}
		n := findDirect(fd.Body, func(n ast.Node) bool {
			r, ok := n.(*ast.Return)
			return ok && r.Value != nil && !isNoneConst(r.Value)
		})
		if n == nil {
			continue
		}
		pos := ctx.File.Position(n.(*ast.Return).Start)
		c.Addf("E0101", "return-in-init", pos, "explicit return in __init__")
	}
}

// checkE0102 flags a function/method redefined by a later definition with
// the same name directly in the same statement list (module body, function
// body or class body) - two defs placed in different if/else branches live
// in different lists and are not flagged.
func checkE0102(ctx *Context, mod *ast.Module, c *diag.Collector) {
	inv := buildInventory(mod)
	for _, block := range inv.blocks {
		seen := make(map[string]token.Pos)
		for _, stmt := range block {
			fd, ok := stmt.(*ast.FuncDef)
			if !ok {
				continue
			}
			if first, dup := seen[fd.Name.Id]; dup {
				pos := ctx.File.Position(fd.Name.Start)
				line := ctx.File.Position(first).Line
				c.Addf("E0102", "function-redefined", pos, "function already defined line %d", line)
				continue
			}
			seen[fd.Name.Id] = fd.Name.Start
		}
	}
}

// checkE0108 flags a function or lambda signature that binds the same
// parameter name more than once.
func checkE0108(ctx *Context, mod *ast.Module, c *diag.Collector) {
	inv := buildInventory(mod)
	check := func(sig *ast.Params) {
		seen := make(map[string]bool)
		for _, p := range paramList(sig) {
			if seen[p.Name.Id] {
				pos := ctx.File.Position(p.Name.Start)
				c.Addf("E0108", "duplicate-argument-name", pos, "duplicate argument '%s' in function definition", p.Name.Id)
				continue
			}
			seen[p.Name.Id] = true
		}
	}
	for _, fd := range inv.funcDefs {
		check(fd.Params)
	}
	for _, lam := range inv.lambdas {
		check(lam.Params)
	}
}

// checkE0211 flags an instance method (not decorated @staticmethod) with no
// parameters at all, leaving no room for an implicit receiver.
func checkE0211(ctx *Context, mod *ast.Module, c *diag.Collector) {
	inv := buildInventory(mod)
	for _, fd := range inv.funcDefs {
		if inv.methodOwner[fd] == nil {
			continue
		}
		if hasDecorator(fd.Decorators, "staticmethod") {
			continue
		}
		if len(paramList(fd.Params)) == 0 {
			pos := ctx.File.Position(fd.Name.Start)
			c.Addf("E0211", "no-method-argument", pos, "method '%s' has no argument", fd.Name.Id)
		}
	}
}

// checkE0213 flags an instance method whose first parameter is not named
// self. Methods decorated @staticmethod or @classmethod are exempt (the
// latter's conventional first parameter is cls, not self).
func checkE0213(ctx *Context, mod *ast.Module, c *diag.Collector) {
	inv := buildInventory(mod)
	for _, fd := range inv.funcDefs {
		if inv.methodOwner[fd] == nil {
			continue
		}
		if hasDecorator(fd.Decorators, "staticmethod") || hasDecorator(fd.Decorators, "classmethod") {
			continue
		}
		var first *ast.Param
		switch {
		case fd.Params != nil && len(fd.Params.PosOnly) > 0:
			first = fd.Params.PosOnly[0]
		case fd.Params != nil && len(fd.Params.PosOrKw) > 0:
			first = fd.Params.PosOrKw[0]
		}
		if first == nil || first.Name.Id == "self" {
			continue
		}
		pos := ctx.File.Position(first.Name.Start)
		c.Addf("E0213", "no-self-argument", pos, "method '%s' should have 'self' as first argument", fd.Name.Id)
	}
}

// checkE0606 flags a load of a name that is bound along some but not all
// paths reaching it, per the definite-assignment lattice in lang/assign.
func checkE0606(ctx *Context, mod *ast.Module, c *diag.Collector) {
	inv := buildInventory(mod)
	for _, fd := range inv.funcDefs {
		var params []string
		for _, p := range paramList(fd.Params) {
			params = append(params, p.Name.Id)
		}
		res := assign.Analyze(params, fd.Body)
		for n, status := range res.StatusOf {
			if status != assign.Possible {
				continue
			}
			pos := ctx.File.Position(n.Start)
			c.Addf("E0606", "possibly-used-before-assignment", pos, "'%s' may be used before assignment", n.Id)
		}
	}
}
