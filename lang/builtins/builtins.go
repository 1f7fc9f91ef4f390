// Package builtins holds the closed set of built-in names the resolver
// treats as always bound in every scope, backed by a swiss-table map.
package builtins

import "github.com/dolthub/swiss"

var names *swiss.Map[string, struct{}]

func init() {
	list := []string{
		"print", "len", "range", "str", "int", "float", "bool", "bytes",
		"list", "dict", "set", "tuple", "frozenset", "isinstance", "issubclass",
		"callable", "open", "reversed", "enumerate", "zip", "map", "filter",
		"sorted", "abs", "min", "max", "sum", "any", "all", "type", "id",
		"hash", "repr", "format", "vars", "dir", "getattr", "setattr",
		"hasattr", "delattr", "super", "staticmethod", "classmethod",
		"property", "iter", "next", "round", "pow", "divmod", "chr", "ord",
		"hex", "oct", "bin", "input", "exec", "eval", "compile", "globals",
		"locals", "__import__", "slice", "object",

		"Exception", "BaseException", "ValueError", "TypeError", "NameError",
		"KeyError", "IndexError", "AttributeError", "ZeroDivisionError",
		"NotImplementedError", "NotImplemented", "StopIteration",
		"StopAsyncIteration", "RuntimeError", "OSError", "IOError",
		"FileNotFoundError", "ImportError", "ModuleNotFoundError",
		"ArithmeticError", "OverflowError", "RecursionError", "MemoryError",
		"AssertionError", "LookupError", "UnicodeError", "SystemExit",
		"KeyboardInterrupt", "GeneratorExit", "Warning", "DeprecationWarning",

		"None", "True", "False", "Ellipsis", "__name__", "__file__", "__doc__",
	}

	names = swiss.NewMap[string, struct{}](uint32(len(list)))
	for _, n := range list {
		names.Put(n, struct{}{})
	}
}

// IsBuiltin reports whether name is one of the closed set of always-bound
// built-in identifiers.
func IsBuiltin(name string) bool {
	_, ok := names.Get(name)
	return ok
}
