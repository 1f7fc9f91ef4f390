package flowctx_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cbellis/pyrint/lang/ast"
	"github.com/cbellis/pyrint/lang/flowctx"
	"github.com/cbellis/pyrint/lang/parser"
	"github.com/cbellis/pyrint/lang/resolver"
	"github.com/cbellis/pyrint/lang/token"
)

func analyze(t *testing.T, src string) (*ast.Module, *flowctx.Result) {
	t.Helper()
	fset := token.NewFileSet()
	mod, err := parser.ParseFile(fset, "t.py", []byte(src))
	require.NoError(t, err)
	res := resolver.Resolve(fset, fset.File(mod.Start), mod)
	return mod, flowctx.Analyze(mod, res)
}

func firstBreak(body []ast.Stmt) *ast.Break {
	for _, s := range body {
		switch n := s.(type) {
		case *ast.Break:
			return n
		case *ast.While:
			if b := firstBreak(n.Body); b != nil {
				return b
			}
		case *ast.For:
			if b := firstBreak(n.Body); b != nil {
				return b
			}
		case *ast.If:
			if b := firstBreak(n.Body); b != nil {
				return b
			}
		}
	}
	return nil
}

func TestBreakInsideLoop(t *testing.T) {
	mod, res := analyze(t, "while True:\n    break\n")
	b := firstBreak(mod.Body)
	require.NotNil(t, b)
	frame := res.At(b)
	require.Equal(t, 1, frame.InLoopDepth)
}

func TestLoopDepthResetsInsideNestedFunction(t *testing.T) {
	src := "def f():\n    while True:\n        def g():\n            return 1\n"
	mod, res := analyze(t, src)
	outerWhile := mod.Body[0].(*ast.FuncDef).Body[0].(*ast.While)
	innerDef := outerWhile.Body[0].(*ast.FuncDef)
	frame := res.At(innerDef)
	require.Equal(t, 0, frame.InLoopDepth)
}

func TestGeneratorFunctionKind(t *testing.T) {
	src := "def g():\n    yield 1\n"
	mod, res := analyze(t, src)
	def := mod.Body[0].(*ast.FuncDef)
	yieldExpr := def.Body[0].(*ast.ExprStmt).X.(*ast.Yield)
	frame := res.At(yieldExpr)
	require.True(t, frame.FuncKind.IsGenerator())
}

func TestExceptDepthInHandler(t *testing.T) {
	src := "try:\n    pass\nexcept Exception:\n    raise\n"
	mod, res := analyze(t, src)
	tryStmt := mod.Body[0].(*ast.Try)
	raiseStmt := tryStmt.Handlers[0].Body[0].(*ast.Raise)
	frame := res.At(raiseStmt)
	require.Equal(t, 1, frame.InExceptDepth)
}

func TestFinallyDepth(t *testing.T) {
	src := "try:\n    pass\nfinally:\n    raise ValueError()\n"
	mod, res := analyze(t, src)
	tryStmt := mod.Body[0].(*ast.Try)
	frame := res.At(tryStmt.Final[0])
	require.Equal(t, 1, frame.InFinallyDepth)
}

func TestClassBodyIsNotAFunctionFrame(t *testing.T) {
	src := "class C:\n    if True:\n        raise ValueError()\n"
	mod, res := analyze(t, src)
	classDef := mod.Body[0].(*ast.ClassDef)
	ifStmt := classDef.Body[0].(*ast.If)
	raiseStmt := ifStmt.Body[0].(*ast.Raise)
	frame := res.At(raiseStmt)
	require.True(t, frame.InClassBody)
	require.False(t, frame.FuncKind.IsFunction())
}
