package check

import (
	"github.com/cbellis/pyrint/lang/ast"
	"github.com/cbellis/pyrint/lang/diag"
	"github.com/cbellis/pyrint/lang/token"
)

// checkE0103 flags break/continue that occurs outside any loop, including
// one nested inside a function or lambda defined within a loop (loop depth
// resets on entering a nested function scope).
func checkE0103(ctx *Context, mod *ast.Module, c *diag.Collector) {
	for n, frame := range ctx.Flow.ContextOf {
		switch node := n.(type) {
		case *ast.Break:
			if frame.InLoopDepth == 0 {
				c.Addf("E0103", "not-in-loop", ctx.File.Position(node.Start), "'break' not properly in loop")
			}
		case *ast.Continue:
			if frame.InLoopDepth == 0 {
				c.Addf("E0103", "not-in-loop", ctx.File.Position(node.Start), "'continue' not properly in loop")
			}
		}
	}
}

// checkE0116 flags continue outside any loop; it commonly fires alongside
// E0103 on the same statement, which the diagnostic collector keeps as two
// distinct entries since they are keyed by (code, position).
func checkE0116(ctx *Context, mod *ast.Module, c *diag.Collector) {
	for n, frame := range ctx.Flow.ContextOf {
		node, ok := n.(*ast.Continue)
		if !ok {
			continue
		}
		if frame.InLoopDepth == 0 {
			c.Addf("E0116", "continue-not-in-loop", ctx.File.Position(node.Start), "'continue' not properly in loop")
		}
	}
}

// checkE0104 flags a return statement outside any function or lambda body.
func checkE0104(ctx *Context, mod *ast.Module, c *diag.Collector) {
	for n, frame := range ctx.Flow.ContextOf {
		node, ok := n.(*ast.Return)
		if !ok {
			continue
		}
		if !frame.FuncKind.IsFunction() {
			c.Addf("E0104", "return-outside-function", ctx.File.Position(node.Start), "'return' outside function")
		}
	}
}

// checkE0105 flags a yield outside any function or lambda body.
func checkE0105(ctx *Context, mod *ast.Module, c *diag.Collector) {
	for n, frame := range ctx.Flow.ContextOf {
		node, ok := n.(*ast.Yield)
		if !ok {
			continue
		}
		if !frame.FuncKind.IsFunction() {
			c.Addf("E0105", "yield-outside-function", ctx.File.Position(node.Start), "'yield' outside function")
		}
	}
}

// checkE0106 flags "return value" (as opposed to a bare return) inside a
// generator function, where the return value can never reach the caller
// through normal iteration.
func checkE0106(ctx *Context, mod *ast.Module, c *diag.Collector) {
	for n, frame := range ctx.Flow.ContextOf {
		node, ok := n.(*ast.Return)
		if !ok {
			continue
		}
		if node.Value != nil && frame.FuncKind.IsGenerator() {
			c.Addf("E0106", "return-arg-in-generator", ctx.File.Position(node.Start), "return with argument inside generator")
		}
	}
}

// checkE0704 flags a bare "raise" (re-raising the current exception)
// outside of an except clause, where there is no current exception to
// re-raise.
func checkE0704(ctx *Context, mod *ast.Module, c *diag.Collector) {
	for n, frame := range ctx.Flow.ContextOf {
		node, ok := n.(*ast.Raise)
		if !ok {
			continue
		}
		if node.Exc == nil && frame.InExceptDepth == 0 {
			c.Addf("E0704", "misplaced-bare-raise", ctx.File.Position(node.Start), "the raise statement is not inside an except clause")
		}
	}
}

// checkE0711 flags "raise NotImplemented", the sentinel value returned by
// operator-overloading methods, as opposed to raising NotImplementedError.
func checkE0711(ctx *Context, mod *ast.Module, c *diag.Collector) {
	for n := range ctx.Flow.ContextOf {
		node, ok := n.(*ast.Raise)
		if !ok || node.Exc == nil {
			continue
		}
		if name, ok := node.Exc.(*ast.Name); ok && name.Id == "NotImplemented" {
			c.Addf("E0711", "notimplemented-raised", ctx.File.Position(node.Start), "NotImplemented raised - should raise NotImplementedError instead")
		}
	}
}

// checkE1142 flags await used outside an async function, lambda (which can
// never be async) or nested non-async function within one.
func checkE1142(ctx *Context, mod *ast.Module, c *diag.Collector) {
	for n, frame := range ctx.Flow.ContextOf {
		node, ok := n.(*ast.UnaryOp)
		if !ok || node.Op != token.AWAIT {
			continue
		}
		if !frame.FuncKind.IsCoroutine() {
			c.Addf("E1142", "await-outside-async", ctx.File.Position(node.Start), "'await' outside async function")
		}
	}
}
