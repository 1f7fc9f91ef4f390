// Package check implements the checker registry: a set of independent
// rules, each consuming the parsed tree plus the resolver, flowctx and
// assign analyses, and reporting diagnostics through a shared
// diag.Collector. Disabling one rule never changes what another reports -
// every Rule.Run is a self-contained pass over the tree (or over the
// flowctx/assign results), built on the same ast.Visitor/ast.Walk
// double-dispatch idiom lang/ast/printer.go uses, rather than one shared
// traversal mutating common state.
//
// E0115, E0117, E0118 and E0602 are not implemented here: lang/resolver
// already emits them as part of its own two-pass walk (it is the only
// package that knows which Name is a binding site versus a load), so Run
// merges resolver.Result.Diags into the collector before applying any rule.
package check

import (
	"github.com/cbellis/pyrint/lang/ast"
	"github.com/cbellis/pyrint/lang/diag"
	"github.com/cbellis/pyrint/lang/flowctx"
	"github.com/cbellis/pyrint/lang/resolver"
	"github.com/cbellis/pyrint/lang/token"
)

// Context bundles the per-file inputs every rule may need.
type Context struct {
	File *token.File
	Res  *resolver.Result
	Flow *flowctx.Result
}

// Rule is one entry of the registry: a diagnostic code, its symbolic name
// (for documentation and --disable matching) and the function that scans
// the tree for violations.
type Rule struct {
	Code   string
	Symbol string
	Run    func(ctx *Context, mod *ast.Module, c *diag.Collector)
}

// Registry lists every rule lang/check implements directly, ordered by
// code (module identity, not severity).
var Registry = []Rule{
	{Code: "E0100", Symbol: "init-is-generator", Run: checkE0100},
	{Code: "E0101", Symbol: "return-in-init", Run: checkE0101},
	{Code: "E0102", Symbol: "function-redefined", Run: checkE0102},
	{Code: "E0103", Symbol: "not-in-loop", Run: checkE0103},
	{Code: "E0104", Symbol: "return-outside-function", Run: checkE0104},
	{Code: "E0105", Symbol: "yield-outside-function", Run: checkE0105},
	{Code: "E0106", Symbol: "return-arg-in-generator", Run: checkE0106},
	{Code: "E0107", Symbol: "nonexistent-operator", Run: checkE0107},
	{Code: "E0108", Symbol: "duplicate-argument-name", Run: checkE0108},
	{Code: "E0109", Symbol: "duplicate-key", Run: checkE0109},
	{Code: "E0111", Symbol: "bad-reversed-sequence", Run: checkE0111},
	{Code: "E0112", Symbol: "too-many-star-expressions", Run: checkE0112},
	{Code: "E0116", Symbol: "continue-not-in-loop", Run: checkE0116},
	{Code: "E0119", Symbol: "misplaced-format-function", Run: checkE0119},
	{Code: "E0211", Symbol: "no-method-argument", Run: checkE0211},
	{Code: "E0213", Symbol: "no-self-argument", Run: checkE0213},
	{Code: "E0606", Symbol: "possibly-used-before-assignment", Run: checkE0606},
	{Code: "E0704", Symbol: "misplaced-bare-raise", Run: checkE0704},
	{Code: "E0711", Symbol: "notimplemented-raised", Run: checkE0711},
	{Code: "E1142", Symbol: "await-outside-async", Run: checkE1142},
}

// ResolverCodes lists the codes lang/resolver emits directly, so a CLI's
// --disable flag can document and honor them alongside Registry's codes
// even though they never appear here as a Rule.
var ResolverCodes = []string{"E0115", "E0117", "E0118", "E0602"}

// Run merges res's own diagnostics with every enabled rule in Registry and
// returns the populated Collector; call Finalize on the result to get the
// final sorted, deduped diagnostic list.
func Run(file *token.File, mod *ast.Module, res *resolver.Result, flow *flowctx.Result, disabled map[string]bool) *diag.Collector {
	c := diag.NewCollector()
	for _, d := range res.Diags {
		if disabled[d.Code] {
			continue
		}
		c.Add(d)
	}
	ctx := &Context{File: file, Res: res, Flow: flow}
	for _, r := range Registry {
		if disabled[r.Code] {
			continue
		}
		r.Run(ctx, mod, c)
	}
	return c
}
