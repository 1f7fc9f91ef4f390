// Package engine orchestrates the full analysis pipeline over a batch of
// source files: read, scan+parse, resolve, track flow context, run the
// checker registry, and collect every diagnostic into one result, a single
// call the CLI and tests can both use.
package engine

import (
	"context"
	"fmt"
	"os"

	"github.com/cbellis/pyrint/lang/check"
	"github.com/cbellis/pyrint/lang/diag"
	"github.com/cbellis/pyrint/lang/flowctx"
	"github.com/cbellis/pyrint/lang/parser"
	"github.com/cbellis/pyrint/lang/resolver"
	"github.com/cbellis/pyrint/lang/token"
)

// CodeParseFailure is the reserved code for a file that could not be read or
// parsed at all: the checker registry never runs over it, so it is emitted
// directly by the engine rather than by lang/check.
const CodeParseFailure = "E0001"

// CodeAnalysisFailure is the reserved code for an analyzer invariant
// violation (unexpected tree shape, scope stack underflow) recovered at the
// per-file boundary: the file's analysis is abandoned, the batch continues.
const CodeAnalysisFailure = "F0002"

// Options configures one AnalyzeFiles call.
type Options struct {
	// Disabled names diagnostic codes (rule codes or resolver codes) that
	// should be suppressed, keyed by code (e.g. "E0602").
	Disabled map[string]bool
}

// AnalyzeFiles reads, parses, resolves and checks each of paths independently
// and returns their merged diagnostics. A file that cannot be read or parsed
// contributes one CodeParseFailure diagnostic and does not block the rest of
// the batch. The returned error is non-nil only when the engine itself could
// not produce a result for any file in the batch (e.g. every path failed to
// read) — per-file parse failures are reported as diagnostics, not errors.
func AnalyzeFiles(ctx context.Context, paths []string, opts Options) (*diag.Collector, error) {
	collector := diag.NewCollector()
	var analyzed int

	for _, path := range paths {
		select {
		case <-ctx.Done():
			return collector, ctx.Err()
		default:
		}

		if ok := analyzeFile(collector, path, opts); ok {
			analyzed++
		}
	}

	if len(paths) > 0 && analyzed == 0 {
		return collector, fmt.Errorf("engine: no file in the batch could be analyzed")
	}
	return collector, nil
}

// analyzeFile runs the full pipeline for one file and reports whether the
// file produced a result of its own. A file that fails to parse still does
// (its CodeParseFailure diagnostic is that result); an unreadable file or an
// abandoned analysis (CodeAnalysisFailure) does not.
func analyzeFile(collector *diag.Collector, path string, opts Options) (ok bool) {
	src, err := os.ReadFile(path)
	if err != nil {
		collector.Addf(CodeParseFailure, "parse-failure", token.Position{Filename: path, Line: 1, Column: 1}, "cannot read file: %s", err)
		return false
	}

	fset := token.NewFileSet()
	mod, err := parser.ParseFile(fset, path, src)
	if err != nil {
		collector.Addf(CodeParseFailure, "parse-failure", parseErrorPosition(path, err), "%s", err)
		return true
	}

	// An analyzer invariant violation is fatal for this file only; the rest
	// of the batch continues.
	defer func() {
		if r := recover(); r != nil {
			collector.Addf(CodeAnalysisFailure, "analysis-failure", token.Position{Filename: path, Line: 1, Column: 1}, "internal analysis error: %v", r)
			ok = false
		}
	}()

	file := fset.File(mod.Start)
	res := resolver.Resolve(fset, file, mod)
	flow := flowctx.Analyze(mod, res)
	fileDiags := check.Run(file, mod, res, flow, opts.Disabled)
	for _, d := range fileDiags.Finalize() {
		collector.Add(d)
	}
	return true
}

// parseErrorPosition recovers a reportable position from a parser.ErrorList,
// falling back to the start of the file when the error carries none.
func parseErrorPosition(path string, err error) token.Position {
	if list, ok := err.(parser.ErrorList); ok && len(list) > 0 {
		p := list[0].Pos
		return token.Position{Filename: p.Filename, Line: p.Line, Column: p.Column}
	}
	return token.Position{Filename: path, Line: 1, Column: 1}
}

// ExitCode maps an AnalyzeFiles result to a process exit code: 2 when the
// engine itself failed, 1 when any diagnostic was reported, 0 otherwise.
func ExitCode(collector *diag.Collector, err error) int {
	if err != nil {
		return 2
	}
	if collector.Len() > 0 {
		return 1
	}
	return 0
}
