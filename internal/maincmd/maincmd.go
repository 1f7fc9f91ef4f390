// Package maincmd wires the pyrint CLI: flag parsing, usage text, and
// dispatch into the lint operation via a Cmd type with SetArgs/SetFlags/
// Validate/Main(args, stdio) mainer.ExitCode methods. pyrint exposes a
// single operation, so a direct call to Cmd.Lint replaces the method-name
// reflection dispatch a multi-command CLI would need.
package maincmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mna/mainer"
)

const binName = "pyrint"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] <path>...
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] <path>...
       %[1]s -h|--help
       %[1]s -v|--version

Static analyzer for the target scripting language. Lints each <path> and
reports diagnostics using pylint-compatible codes (E0100, E0602, ...).

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.
       --json                    Emit diagnostics as a single JSON report
                                 instead of one line per diagnostic.
       --disable CODE[,CODE...]  Suppress the listed diagnostic codes.

Diagnostics can also be disabled via the PYRINT_DISABLE environment
variable or a %s file in the current directory (a YAML document with a
top-level "disable" list); all three sources are merged.

Exit codes: 0 no diagnostics, 1 diagnostics reported, 2 the engine itself
failed (e.g. every path was unreadable).

More information on the %[1]s repository:
       https://github.com/cbellis/pyrint
`, binName, ruleFileName)
)

// Cmd is the pyrint entry point, parsed and dispatched by mainer.Parser.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool   `flag:"h,help"`
	Version bool   `flag:"v,version"`
	JSON    bool   `flag:"json"`
	Disable string `flag:"disable"`

	args  []string
	flags map[string]bool
}

func (c *Cmd) SetArgs(args []string) {
	c.args = args
}

func (c *Cmd) SetFlags(flags map[string]bool) {
	c.flags = flags
}

func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}
	if len(c.args) == 0 {
		return errors.New("at least one path must be provided")
	}
	return nil
}

func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{
		EnvVars:   false,
		EnvPrefix: binName + "_",
	}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success

	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	return c.Lint(ctx, stdio, c.args)
}
