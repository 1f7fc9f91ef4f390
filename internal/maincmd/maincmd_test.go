package maincmd_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mna/mainer"
	"github.com/stretchr/testify/require"

	"github.com/cbellis/pyrint/internal/maincmd"
)

func writeTemp(t *testing.T, name, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestValidateRequiresAtLeastOnePath(t *testing.T) {
	var c maincmd.Cmd
	c.SetArgs(nil)
	require.Error(t, c.Validate())
}

func TestValidateAllowsHelpWithoutPaths(t *testing.T) {
	c := maincmd.Cmd{Help: true}
	c.SetArgs(nil)
	require.NoError(t, c.Validate())
}

func TestLintCleanFileExitsZero(t *testing.T) {
	path := writeTemp(t, "clean.py", "def f():\n    return 1\n")

	var out, errOut bytes.Buffer
	c := &maincmd.Cmd{}
	code := c.Lint(context.Background(), mainer.Stdio{Stdout: &out, Stderr: &errOut}, []string{path})

	require.Equal(t, mainer.ExitCode(0), code)
	require.Empty(t, out.String())
}

func TestLintReportsDiagnosticsExitsOne(t *testing.T) {
	path := writeTemp(t, "bad.py", "def f():\n    break\n")

	var out, errOut bytes.Buffer
	c := &maincmd.Cmd{}
	code := c.Lint(context.Background(), mainer.Stdio{Stdout: &out, Stderr: &errOut}, []string{path})

	require.Equal(t, mainer.ExitCode(1), code)
	require.Contains(t, out.String(), "E0103")
}

func TestLintDisableFlagSuppressesCode(t *testing.T) {
	path := writeTemp(t, "bad.py", "def f():\n    break\n")

	var out, errOut bytes.Buffer
	c := &maincmd.Cmd{Disable: "E0103"}
	code := c.Lint(context.Background(), mainer.Stdio{Stdout: &out, Stderr: &errOut}, []string{path})

	require.Equal(t, mainer.ExitCode(0), code)
	require.Empty(t, out.String())
}

func TestLintJSONFlagEmitsJSONReport(t *testing.T) {
	path := writeTemp(t, "bad.py", "def f():\n    break\n")

	var out, errOut bytes.Buffer
	c := &maincmd.Cmd{JSON: true}
	code := c.Lint(context.Background(), mainer.Stdio{Stdout: &out, Stderr: &errOut}, []string{path})

	require.Equal(t, mainer.ExitCode(1), code)
	require.Contains(t, out.String(), `"issues"`)
	require.Contains(t, out.String(), `"E0103"`)
}

func TestLintUnreadablePathExitsTwo(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.py")

	var out, errOut bytes.Buffer
	c := &maincmd.Cmd{}
	code := c.Lint(context.Background(), mainer.Stdio{Stdout: &out, Stderr: &errOut}, []string{missing})

	require.Equal(t, mainer.ExitCode(2), code)
}

func TestLintRulesFileMergesWithFlag(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.py")
	require.NoError(t, os.WriteFile(path, []byte("def f():\n    break\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".pyrint.yaml"), []byte("disable:\n  - E0103\n"), 0o644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(wd)) })

	var out, errOut bytes.Buffer
	c := &maincmd.Cmd{}
	code := c.Lint(context.Background(), mainer.Stdio{Stdout: &out, Stderr: &errOut}, []string{path})

	require.Equal(t, mainer.ExitCode(0), code)
	require.Empty(t, out.String())
}
