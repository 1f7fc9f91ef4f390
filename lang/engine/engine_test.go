package engine_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cbellis/pyrint/lang/engine"
)

func writeTemp(t *testing.T, name, src string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestAnalyzeFilesCleanFile(t *testing.T) {
	path := writeTemp(t, "clean.py", "def f():\n    return 1\n")

	c, err := engine.AnalyzeFiles(context.Background(), []string{path}, engine.Options{})
	require.NoError(t, err)
	require.Empty(t, c.Finalize())
	require.Equal(t, 0, engine.ExitCode(c, err))
}

func TestAnalyzeFilesReportsDiagnostic(t *testing.T) {
	path := writeTemp(t, "bad.py", "def f():\n    break\n")

	c, err := engine.AnalyzeFiles(context.Background(), []string{path}, engine.Options{})
	require.NoError(t, err)
	diags := c.Finalize()
	require.NotEmpty(t, diags)
	require.Equal(t, "E0103", diags[0].Code)
	require.Equal(t, 1, engine.ExitCode(c, err))
}

func TestAnalyzeFilesDisableFilter(t *testing.T) {
	path := writeTemp(t, "bad.py", "def f():\n    break\n")

	c, err := engine.AnalyzeFiles(context.Background(), []string{path}, engine.Options{Disabled: map[string]bool{"E0103": true}})
	require.NoError(t, err)
	require.Empty(t, c.Finalize())
}

func TestAnalyzeFilesUnreadablePathReportsParseFailure(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist.py")

	c, err := engine.AnalyzeFiles(context.Background(), []string{missing}, engine.Options{})
	require.Error(t, err)
	diags := c.Finalize()
	require.Len(t, diags, 1)
	require.Equal(t, engine.CodeParseFailure, diags[0].Code)
	require.Equal(t, 2, engine.ExitCode(c, err))
}

func TestAnalyzeFilesAllUnreadableIsEngineError(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "nope.py")

	c, err := engine.AnalyzeFiles(context.Background(), []string{missing}, engine.Options{})
	require.Error(t, err)
	require.Equal(t, 2, engine.ExitCode(c, err))
}

func TestAnalyzeFilesContinuesBatchAfterOneFailure(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "missing.py")
	good := writeTemp(t, "ok.py", "def f():\n    return 1\n")

	c, err := engine.AnalyzeFiles(context.Background(), []string{bad, good}, engine.Options{})
	require.NoError(t, err)
	diags := c.Finalize()
	require.Len(t, diags, 1)
	require.Equal(t, engine.CodeParseFailure, diags[0].Code)
}

func TestAnalyzeFilesParseErrorReportsParseFailure(t *testing.T) {
	path := writeTemp(t, "broken.py", "def f(:\n    pass\n")

	c, err := engine.AnalyzeFiles(context.Background(), []string{path}, engine.Options{})
	require.NoError(t, err)
	diags := c.Finalize()
	require.Len(t, diags, 1)
	require.Equal(t, engine.CodeParseFailure, diags[0].Code)
}
