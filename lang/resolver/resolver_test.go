package resolver_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cbellis/pyrint/lang/ast"
	"github.com/cbellis/pyrint/lang/parser"
	"github.com/cbellis/pyrint/lang/resolver"
	"github.com/cbellis/pyrint/lang/token"
)

func mustParse(t *testing.T, src string) (*token.FileSet, *token.File, *ast.Module) {
	t.Helper()
	fset := token.NewFileSet()
	mod, err := parser.ParseFile(fset, "t.py", []byte(src))
	require.NoError(t, err)
	return fset, fset.File(mod.Start), mod
}

func diagCodes(t *testing.T, res *resolver.Result) []string {
	t.Helper()
	var out []string
	for _, d := range res.Diags {
		out = append(out, d.Code)
	}
	return out
}

func TestResolveUndefinedVariable(t *testing.T) {
	fset, file, mod := mustParse(t, "def f():\n    return y\n")
	res := resolver.Resolve(fset, file, mod)
	require.Contains(t, diagCodes(t, res), "E0602")
}

func TestResolveForwardReferenceWithinModule(t *testing.T) {
	src := "def f():\n    return g()\n\ndef g():\n    return 1\n"
	fset, file, mod := mustParse(t, src)
	res := resolver.Resolve(fset, file, mod)
	require.Empty(t, res.Diags)
}

func TestResolveForwardReferenceWithinFunction(t *testing.T) {
	src := "def f():\n    return g\n    g = 1\n"
	fset, file, mod := mustParse(t, src)
	res := resolver.Resolve(fset, file, mod)
	require.Empty(t, res.Diags)
}

func TestResolveClassScopeNotEnclosingMethod(t *testing.T) {
	src := "class C:\n    x = 1\n    def m(self):\n        return x\n"
	fset, file, mod := mustParse(t, src)
	res := resolver.Resolve(fset, file, mod)
	require.Contains(t, diagCodes(t, res), "E0602")
}

func TestResolveNonlocalAndGlobalSameName(t *testing.T) {
	src := "def outer():\n    x = 1\n    def inner():\n        global x\n        nonlocal x\n    return inner\n"
	fset, file, mod := mustParse(t, src)
	res := resolver.Resolve(fset, file, mod)
	require.Contains(t, diagCodes(t, res), "E0115")
}

func TestResolveNonlocalWithoutBinding(t *testing.T) {
	src := "def f():\n    def inner():\n        nonlocal missing\n    return inner\n"
	fset, file, mod := mustParse(t, src)
	res := resolver.Resolve(fset, file, mod)
	require.Contains(t, diagCodes(t, res), "E0117")
}

func TestResolveUsedPriorGlobalDeclaration(t *testing.T) {
	src := "def f():\n    print(x)\n    global x\n    x = 1\n"
	fset, file, mod := mustParse(t, src)
	res := resolver.Resolve(fset, file, mod)
	require.Contains(t, diagCodes(t, res), "E0118")
}

func TestResolveComprehensionTargetNotReported(t *testing.T) {
	src := "y = [1, 2]\nresult = [x for x in y]\n"
	fset, file, mod := mustParse(t, src)
	res := resolver.Resolve(fset, file, mod)
	require.Empty(t, res.Diags)
}

func TestResolveComprehensionFreeIterUnresolved(t *testing.T) {
	src := "result = [x for x in y]\n"
	fset, file, mod := mustParse(t, src)
	res := resolver.Resolve(fset, file, mod)
	require.Len(t, res.Diags, 1)
	require.Equal(t, "E0602", res.Diags[0].Code)
}

func TestResolveStarImportSuppressesUndefined(t *testing.T) {
	src := "from os import *\n\ndef f():\n    return path\n"
	fset, file, mod := mustParse(t, src)
	res := resolver.Resolve(fset, file, mod)
	require.Empty(t, res.Diags)
}
