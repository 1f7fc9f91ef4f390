package check_test

import (
	"flag"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cbellis/pyrint/internal/filetest"
	"github.com/cbellis/pyrint/lang/check"
	"github.com/cbellis/pyrint/lang/flowctx"
	"github.com/cbellis/pyrint/lang/parser"
	"github.com/cbellis/pyrint/lang/resolver"
	"github.com/cbellis/pyrint/lang/token"
)

var testUpdateCheckTests = flag.Bool("test.update-check-tests", false, "If set, replace expected checker test results with actual results.")

// TestCorpus runs every fixture in testdata/in through the full pipeline
// (parse, resolve, flowctx, check) and compares the sorted set of reported
// diagnostic codes against the golden testdata/out/<name>.want file via
// internal/filetest. Only codes, not positions, are compared: a corpus
// fixture is meant to pin down which rules fire together on a realistic
// file, not to double as a position-rendering test (lang/diag already has
// one of those).
func TestCorpus(t *testing.T) {
	srcDir, resultDir := filepath.Join("testdata", "in"), filepath.Join("testdata", "out")

	for _, fi := range filetest.SourceFiles(t, srcDir, ".py") {
		t.Run(fi.Name(), func(t *testing.T) {
			src, err := os.ReadFile(filepath.Join(srcDir, fi.Name()))
			require.NoError(t, err)

			fset := token.NewFileSet()
			mod, err := parser.ParseFile(fset, fi.Name(), src)
			require.NoError(t, err)
			file := fset.File(mod.Start)

			res := resolver.Resolve(fset, file, mod)
			flow := flowctx.Analyze(mod, res)
			diags := check.Run(file, mod, res, flow, nil).Finalize()

			codes := make([]string, len(diags))
			for i, d := range diags {
				codes[i] = d.Code
			}
			sort.Strings(codes)
			output := strings.Join(codes, "\n")
			if len(codes) > 0 {
				output += "\n"
			}
			filetest.DiffOutput(t, fi, output, resultDir, testUpdateCheckTests)
		})
	}
}
