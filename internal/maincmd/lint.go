package maincmd

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/mna/mainer"

	"github.com/cbellis/pyrint/lang/diag"
	"github.com/cbellis/pyrint/lang/engine"
)

// fileResult is one path's independent analysis outcome.
type fileResult struct {
	diags []diag.Diagnostic
	err   error
}

// Lint analyzes every path independently, one worker per CPU, and writes the
// merged diagnostics to stdio.Stdout in the requested format. Paths are
// analyzed by separate lang/engine.AnalyzeFiles calls rather than one batched
// call, since module analyses share no mutable state and this keeps the
// fan-out trivially safe.
func (c *Cmd) Lint(ctx context.Context, stdio mainer.Stdio, paths []string) mainer.ExitCode {
	disabled, err := c.resolveDisabled()
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return mainer.ExitCode(2)
	}

	results := analyzeConcurrently(ctx, paths, engine.Options{Disabled: disabled})

	collector := diag.NewCollector()
	var firstErr error
	var failed int
	for _, r := range results {
		for _, d := range r.diags {
			collector.Add(d)
		}
		if r.err != nil {
			failed++
			if firstErr == nil {
				firstErr = r.err
			}
		}
	}
	// The engine only counts as failed when no path could be analyzed; a
	// failed path among successful ones is reported by its own diagnostic.
	if failed < len(results) {
		firstErr = nil
	}

	diags := collector.Finalize()

	var writeErr error
	if c.JSON {
		writeErr = diag.WriteJSON(stdio.Stdout, diags)
	} else {
		writeErr = diag.WriteText(stdio.Stdout, diags)
	}
	if writeErr != nil {
		fmt.Fprintln(stdio.Stderr, writeErr)
		return mainer.ExitCode(2)
	}

	if firstErr != nil {
		fmt.Fprintln(stdio.Stderr, firstErr)
	}
	return mainer.ExitCode(engine.ExitCode(collector, firstErr))
}

// analyzeConcurrently runs one lang/engine.AnalyzeFiles call per path,
// bounded to runtime.NumCPU() concurrent workers, and returns results in
// input order.
func analyzeConcurrently(ctx context.Context, paths []string, opts engine.Options) []fileResult {
	results := make([]fileResult, len(paths))
	sem := make(chan struct{}, runtime.NumCPU())
	var wg sync.WaitGroup

	for i, p := range paths {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, p string) {
			defer wg.Done()
			defer func() { <-sem }()

			c, err := engine.AnalyzeFiles(ctx, []string{p}, opts)
			results[i] = fileResult{diags: c.Finalize(), err: err}
		}(i, p)
	}
	wg.Wait()
	return results
}
