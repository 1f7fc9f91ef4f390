package parser_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cbellis/pyrint/lang/ast"
	"github.com/cbellis/pyrint/lang/parser"
	"github.com/cbellis/pyrint/lang/token"
)

func mustParse(t *testing.T, src string) *ast.Module {
	t.Helper()
	fset := token.NewFileSet()
	mod, err := parser.ParseFile(fset, "t.py", []byte(src))
	require.NoError(t, err)
	return mod
}

func TestParseFuncDefParams(t *testing.T) {
	mod := mustParse(t, "def f(a, b=1, *args, c, **kw):\n    pass\n")
	fd := mod.Body[0].(*ast.FuncDef)
	require.Equal(t, "f", fd.Name.Id)
	require.Len(t, fd.Params.PosOrKw, 2)
	require.Equal(t, "a", fd.Params.PosOrKw[0].Name.Id)
	require.NotNil(t, fd.Params.PosOrKw[1].Default)
	require.NotNil(t, fd.Params.VarArg)
	require.Equal(t, "args", fd.Params.VarArg.Name.Id)
	require.Len(t, fd.Params.KwOnly, 1)
	require.Equal(t, "c", fd.Params.KwOnly[0].Name.Id)
	require.NotNil(t, fd.Params.KwArg)
	require.Equal(t, "kw", fd.Params.KwArg.Name.Id)
}

func TestParsePosOnlyMarker(t *testing.T) {
	mod := mustParse(t, "def f(a, b, /, c):\n    pass\n")
	fd := mod.Body[0].(*ast.FuncDef)
	require.Len(t, fd.Params.PosOnly, 2)
	require.Len(t, fd.Params.PosOrKw, 1)
	require.Equal(t, "c", fd.Params.PosOrKw[0].Name.Id)
}

func TestParseAsyncDef(t *testing.T) {
	mod := mustParse(t, "async def f():\n    await g()\n")
	fd := mod.Body[0].(*ast.FuncDef)
	require.True(t, fd.IsAsync)
	expr := fd.Body[0].(*ast.ExprStmt).X.(*ast.UnaryOp)
	require.Equal(t, token.AWAIT, expr.Op)
}

func TestParseDecorated(t *testing.T) {
	mod := mustParse(t, "@staticmethod\n@wraps(f)\ndef g():\n    pass\n")
	fd := mod.Body[0].(*ast.FuncDef)
	require.Len(t, fd.Decorators, 2)
	require.Equal(t, "staticmethod", fd.Decorators[0].(*ast.Name).Id)
	_, isCall := fd.Decorators[1].(*ast.Call)
	require.True(t, isCall)
}

func TestParseElifNestsAsOrelse(t *testing.T) {
	mod := mustParse(t, "if a:\n    pass\nelif b:\n    pass\nelse:\n    pass\n")
	top := mod.Body[0].(*ast.If)
	require.Len(t, top.Orelse, 1)
	inner := top.Orelse[0].(*ast.If)
	require.Len(t, inner.Orelse, 1)
}

func TestParseTryExceptElseFinally(t *testing.T) {
	src := "try:\n    pass\nexcept ValueError as e:\n    pass\nexcept Exception:\n    pass\nelse:\n    pass\nfinally:\n    pass\n"
	mod := mustParse(t, src)
	tr := mod.Body[0].(*ast.Try)
	require.Len(t, tr.Handlers, 2)
	require.Equal(t, "e", tr.Handlers[0].Name.Id)
	require.Nil(t, tr.Handlers[1].Name)
	require.Len(t, tr.Orelse, 1)
	require.Len(t, tr.Final, 1)
}

func TestParseForElse(t *testing.T) {
	mod := mustParse(t, "for x, y in pairs:\n    pass\nelse:\n    pass\n")
	f := mod.Body[0].(*ast.For)
	tup := f.Target.(*ast.TupleExpr)
	require.Len(t, tup.Elts, 2)
	require.Len(t, f.Orelse, 1)
}

func TestParseWithItems(t *testing.T) {
	mod := mustParse(t, "with open('a') as f, open('b') as g:\n    pass\n")
	w := mod.Body[0].(*ast.With)
	require.Len(t, w.Items, 2)
	require.Equal(t, "g", w.Items[1].Target.(*ast.Name).Id)
}

func TestParseChainedAssignment(t *testing.T) {
	mod := mustParse(t, "a = b = 1\n")
	as := mod.Body[0].(*ast.Assign)
	require.Len(t, as.Targets, 2)
	require.Equal(t, token.ASSIGN, as.Op)
}

func TestParseAugmentedAssignment(t *testing.T) {
	mod := mustParse(t, "x += 1\n")
	as := mod.Body[0].(*ast.Assign)
	require.Equal(t, token.PLUS_EQ, as.Op)
}

func TestParseAnnotatedAssignment(t *testing.T) {
	mod := mustParse(t, "x: int = 1\n")
	as := mod.Body[0].(*ast.Assign)
	require.NotNil(t, as.Annotation)
	require.NotNil(t, as.Value)
}

func TestParseStarredTarget(t *testing.T) {
	mod := mustParse(t, "a, *rest = xs\n")
	as := mod.Body[0].(*ast.Assign)
	tup := as.Targets[0].(*ast.TupleExpr)
	_, isStar := tup.Elts[1].(*ast.StarredExpr)
	require.True(t, isStar)
}

func TestParseComprehensions(t *testing.T) {
	mod := mustParse(t, "a = [x for x in xs if x]\nb = {x for x in xs}\nc = {k: v for k, v in items}\nd = (x for x in xs)\n")
	kinds := []ast.CompKind{ast.ListComp, ast.SetComp, ast.DictComp, ast.GeneratorExp}
	for i, want := range kinds {
		as := mod.Body[i].(*ast.Assign)
		comp := as.Value.(*ast.Comprehension)
		require.Equal(t, want, comp.Kind)
	}
	listComp := mod.Body[0].(*ast.Assign).Value.(*ast.Comprehension)
	require.Len(t, listComp.Generators, 1)
	require.Len(t, listComp.Generators[0].Ifs, 1)
	dictComp := mod.Body[2].(*ast.Assign).Value.(*ast.Comprehension)
	require.NotNil(t, dictComp.Key)
}

func TestParseDictWithUnpacking(t *testing.T) {
	mod := mustParse(t, "d = {'a': 1, **rest}\n")
	dict := mod.Body[0].(*ast.Assign).Value.(*ast.DictExpr)
	require.Len(t, dict.Keys, 2)
	require.Nil(t, dict.Keys[1])
}

func TestParseLambda(t *testing.T) {
	mod := mustParse(t, "f = lambda a, b=2: a + b\n")
	lam := mod.Body[0].(*ast.Assign).Value.(*ast.Lambda)
	require.Len(t, lam.Params.PosOrKw, 2)
	_, isBin := lam.Body.(*ast.BinOp)
	require.True(t, isBin)
}

func TestParseYieldForms(t *testing.T) {
	mod := mustParse(t, "def g():\n    yield\n    yield 1\n    yield from xs\n")
	fd := mod.Body[0].(*ast.FuncDef)
	y0 := fd.Body[0].(*ast.ExprStmt).X.(*ast.Yield)
	require.Nil(t, y0.Value)
	y1 := fd.Body[1].(*ast.ExprStmt).X.(*ast.Yield)
	require.NotNil(t, y1.Value)
	require.False(t, y1.IsFrom)
	y2 := fd.Body[2].(*ast.ExprStmt).X.(*ast.Yield)
	require.True(t, y2.IsFrom)
}

func TestParseRaiseFrom(t *testing.T) {
	mod := mustParse(t, "raise ValueError('x') from err\n")
	r := mod.Body[0].(*ast.Raise)
	require.NotNil(t, r.Exc)
	require.NotNil(t, r.Cause)
}

func TestParseImports(t *testing.T) {
	mod := mustParse(t, "import os.path as p, sys\nfrom collections import OrderedDict as OD\nfrom os import *\n")
	imp := mod.Body[0].(*ast.Import)
	require.Len(t, imp.Names, 2)
	require.Equal(t, "os.path", imp.Names[0].Path)
	require.Equal(t, "p", imp.Names[0].AsName.Id)
	frm := mod.Body[1].(*ast.ImportFrom)
	require.Equal(t, "collections", frm.Module)
	require.Equal(t, "OD", frm.Names[0].AsName.Id)
	star := mod.Body[2].(*ast.ImportFrom)
	require.Equal(t, "*", star.Names[0].Path)
}

func TestParseComparisonChain(t *testing.T) {
	mod := mustParse(t, "x = 1 < a <= 10\n")
	cmp := mod.Body[0].(*ast.Assign).Value.(*ast.Compare)
	require.Equal(t, []token.Token{token.LT, token.LE}, cmp.Ops)
	require.Len(t, cmp.Comparators, 2)
}

func TestParseNotInAndIsNot(t *testing.T) {
	mod := mustParse(t, "a = x not in xs\nb = y is not None\n")
	cmpA := mod.Body[0].(*ast.Assign).Value.(*ast.Compare)
	require.Equal(t, token.NOT_IN, cmpA.Ops[0])
	cmpB := mod.Body[1].(*ast.Assign).Value.(*ast.Compare)
	require.Equal(t, token.IS_NOT, cmpB.Ops[0])
}

func TestParseOldInequalityOperator(t *testing.T) {
	mod := mustParse(t, "x = a <> b\n")
	cmp := mod.Body[0].(*ast.Assign).Value.(*ast.Compare)
	require.Equal(t, token.NEQ_OLD, cmp.Ops[0])
}

func TestParseSemicolonSeparatedStatements(t *testing.T) {
	mod := mustParse(t, "if a:\n    x = 1; y = 2\n")
	ifStmt := mod.Body[0].(*ast.If)
	require.Len(t, ifStmt.Body, 2)
}

func TestParseClassWithBasesAndKeywords(t *testing.T) {
	mod := mustParse(t, "class C(Base, metaclass=Meta):\n    pass\n")
	cd := mod.Body[0].(*ast.ClassDef)
	require.Len(t, cd.Bases, 1)
	require.Len(t, cd.Keywords, 1)
	require.Equal(t, "metaclass", cd.Keywords[0].Name.Id)
}

func TestParseErrorReported(t *testing.T) {
	fset := token.NewFileSet()
	_, err := parser.ParseFile(fset, "t.py", []byte("def f(:\n    pass\n"))
	require.Error(t, err)
}
