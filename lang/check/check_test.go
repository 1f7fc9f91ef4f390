package check_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cbellis/pyrint/lang/check"
	"github.com/cbellis/pyrint/lang/diag"
	"github.com/cbellis/pyrint/lang/flowctx"
	"github.com/cbellis/pyrint/lang/parser"
	"github.com/cbellis/pyrint/lang/resolver"
	"github.com/cbellis/pyrint/lang/token"
)

func analyze(t *testing.T, src string) []diag.Diagnostic {
	t.Helper()
	fset := token.NewFileSet()
	mod, err := parser.ParseFile(fset, "t.py", []byte(src))
	require.NoError(t, err)
	file := fset.File(mod.Start)
	res := resolver.Resolve(fset, file, mod)
	flow := flowctx.Analyze(mod, res)
	coll := check.Run(file, mod, res, flow, nil)
	return coll.Finalize()
}

func codesOf(diags []diag.Diagnostic) []string {
	out := make([]string, len(diags))
	for i, d := range diags {
		out[i] = d.Code
	}
	return out
}

func TestCheckE0100InitIsGenerator(t *testing.T) {
	src := "class C:\n    def __init__(self):\n        yield 1\n"
	require.Contains(t, codesOf(analyze(t, src)), "E0100")
}

func TestCheckE0101ReturnInInit(t *testing.T) {
	src := "class C:\n    def __init__(self):\n        return 5\n"
	require.Contains(t, codesOf(analyze(t, src)), "E0101")
}

func TestCheckE0101AllowsBareReturn(t *testing.T) {
	src := "class C:\n    def __init__(self):\n        if True:\n            return\n"
	require.NotContains(t, codesOf(analyze(t, src)), "E0101")
}

func TestCheckE0102FunctionRedefined(t *testing.T) {
	src := "def f():\n    pass\ndef f():\n    pass\n"
	require.Contains(t, codesOf(analyze(t, src)), "E0102")
}

func TestCheckE0102AllowsDifferentBranches(t *testing.T) {
	src := "if True:\n    def f():\n        pass\nelse:\n    def f():\n        pass\n"
	require.NotContains(t, codesOf(analyze(t, src)), "E0102")
}

func TestCheckE0103BreakOutsideLoop(t *testing.T) {
	src := "def f():\n    break\n"
	require.Contains(t, codesOf(analyze(t, src)), "E0103")
}

func TestCheckE0103AllowsBreakInLoop(t *testing.T) {
	src := "def f():\n    while True:\n        break\n"
	require.NotContains(t, codesOf(analyze(t, src)), "E0103")
}

func TestCheckE0104ReturnOutsideFunction(t *testing.T) {
	require.Contains(t, codesOf(analyze(t, "return 1\n")), "E0104")
}

func TestCheckE0105YieldOutsideFunction(t *testing.T) {
	require.Contains(t, codesOf(analyze(t, "yield 1\n")), "E0105")
}

func TestCheckE0106ReturnArgInGenerator(t *testing.T) {
	src := "def f():\n    yield 1\n    return 2\n"
	require.Contains(t, codesOf(analyze(t, src)), "E0106")
}

func TestCheckE0106AllowsBareReturnInGenerator(t *testing.T) {
	src := "def f():\n    yield 1\n    return\n"
	require.NotContains(t, codesOf(analyze(t, src)), "E0106")
}

func TestCheckE0107NonexistentOperator(t *testing.T) {
	src := "x = 1\nif x <> 1:\n    pass\n"
	require.Contains(t, codesOf(analyze(t, src)), "E0107")
}

func TestCheckE0108DuplicateArgumentName(t *testing.T) {
	src := "def f(a, a):\n    pass\n"
	require.Contains(t, codesOf(analyze(t, src)), "E0108")
}

func TestCheckE0109DuplicateKey(t *testing.T) {
	src := "d = {1: 'a', 1: 'b'}\n"
	require.Contains(t, codesOf(analyze(t, src)), "E0109")
}

func TestCheckE0109BoolIntCollide(t *testing.T) {
	src := "d = {True: 1, 1: 2}\n"
	require.Contains(t, codesOf(analyze(t, src)), "E0109")
}

func TestCheckE0109AllowsDistinctKeys(t *testing.T) {
	src := "d = {1: 'a', 2: 'b'}\n"
	require.NotContains(t, codesOf(analyze(t, src)), "E0109")
}

func TestCheckE0111BadReversedSequence(t *testing.T) {
	src := "def f():\n    return reversed(1)\n"
	require.Contains(t, codesOf(analyze(t, src)), "E0111")
}

func TestCheckE0111AllowsName(t *testing.T) {
	src := "def f(xs):\n    return reversed(xs)\n"
	require.NotContains(t, codesOf(analyze(t, src)), "E0111")
}

func TestCheckE0112TooManyStarExpressions(t *testing.T) {
	src := "a, *b, *c = [1, 2, 3]\n"
	require.Contains(t, codesOf(analyze(t, src)), "E0112")
}

func TestCheckE0112AllowsSingleStar(t *testing.T) {
	src := "a, *b = [1, 2, 3]\n"
	require.NotContains(t, codesOf(analyze(t, src)), "E0112")
}

func TestCheckE0116ContinueOutsideLoop(t *testing.T) {
	diags := codesOf(analyze(t, "def f():\n    continue\n"))
	require.Contains(t, diags, "E0103")
	require.Contains(t, diags, "E0116")
}

func TestCheckE0119MisplacedFormatFunction(t *testing.T) {
	src := "x = (1).format()\n"
	require.Contains(t, codesOf(analyze(t, src)), "E0119")
}

func TestCheckE0211NoMethodArgument(t *testing.T) {
	src := "class C:\n    def m():\n        pass\n"
	require.Contains(t, codesOf(analyze(t, src)), "E0211")
}

func TestCheckE0211AllowsStaticmethod(t *testing.T) {
	src := "class C:\n    @staticmethod\n    def m():\n        pass\n"
	require.NotContains(t, codesOf(analyze(t, src)), "E0211")
}

func TestCheckE0213NoSelfArgument(t *testing.T) {
	src := "class C:\n    def m(x):\n        pass\n"
	require.Contains(t, codesOf(analyze(t, src)), "E0213")
}

func TestCheckE0213AllowsSelf(t *testing.T) {
	src := "class C:\n    def m(self):\n        pass\n"
	require.NotContains(t, codesOf(analyze(t, src)), "E0213")
}

func TestCheckE0606PossiblyUsedBeforeAssignment(t *testing.T) {
	src := "def f(flag):\n    if flag:\n        y = 1\n    return y\n"
	require.Contains(t, codesOf(analyze(t, src)), "E0606")
}

func TestCheckE0606AllowsAssignedOnAllPaths(t *testing.T) {
	src := "def f(flag):\n    if flag:\n        y = 1\n    else:\n        y = 2\n    return y\n"
	require.NotContains(t, codesOf(analyze(t, src)), "E0606")
}

func TestCheckE0704MisplacedBareRaise(t *testing.T) {
	require.Contains(t, codesOf(analyze(t, "def f():\n    raise\n")), "E0704")
}

func TestCheckE0704AllowsRaiseInExcept(t *testing.T) {
	src := "def f():\n    try:\n        pass\n    except Exception:\n        raise\n"
	require.NotContains(t, codesOf(analyze(t, src)), "E0704")
}

func TestCheckE0711NotImplementedRaised(t *testing.T) {
	require.Contains(t, codesOf(analyze(t, "def f():\n    raise NotImplemented\n")), "E0711")
}

func TestCheckE0711AllowsReturnNotImplemented(t *testing.T) {
	require.NotContains(t, codesOf(analyze(t, "def f():\n    return NotImplemented\n")), "E0711")
}

func TestCheckE1142AwaitOutsideAsync(t *testing.T) {
	src := "async def f():\n    def g():\n        y = 1\n        return await y\n    return g\n"
	require.Contains(t, codesOf(analyze(t, src)), "E1142")
}

func TestCheckE1142AllowsAwaitInCoroutine(t *testing.T) {
	src := "async def f():\n    y = 1\n    return await y\n"
	require.NotContains(t, codesOf(analyze(t, src)), "E1142")
}

func TestCheckDisableFiltersBothRegistryAndResolverCodes(t *testing.T) {
	fset := token.NewFileSet()
	mod, err := parser.ParseFile(fset, "t.py", []byte("def f():\n    print(y)\n    break\n"))
	require.NoError(t, err)
	file := fset.File(mod.Start)
	res := resolver.Resolve(fset, file, mod)
	flow := flowctx.Analyze(mod, res)
	diags := check.Run(file, mod, res, flow, map[string]bool{"E0103": true, "E0602": true}).Finalize()
	require.Empty(t, diags)
}
