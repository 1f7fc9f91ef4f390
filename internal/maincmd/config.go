package maincmd

import (
	"fmt"
	"os"
	"strings"

	env "github.com/caarlos0/env/v6"
	"gopkg.in/yaml.v3"
)

// ruleFileName is the optional project-level rule-disable file, read from
// the current working directory.
const ruleFileName = ".pyrint.yaml"

// envConfig holds the PYRINT_* environment overrides, loaded once per run
// with caarlos0/env: PYRINT_DISABLE (documented in the CLI's long usage
// text) is merged into the same disabled-code set the --disable flag and
// .pyrint.yaml feed, and PYRINT_JSON turns on JSON output.
type envConfig struct {
	JSON    bool   `env:"PYRINT_JSON"`
	Disable string `env:"PYRINT_DISABLE"`
}

// ruleFile is the shape of an optional .pyrint.yaml: a flat list of codes to
// suppress project-wide.
type ruleFile struct {
	Disable []string `yaml:"disable"`
}

func splitCodes(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// resolveDisabled merges the --disable flag, PYRINT_DISABLE, and an optional
// .pyrint.yaml's disable list into one set. The three sources are additive:
// a code disabled by any of them is disabled, full stop.
func (c *Cmd) resolveDisabled() (map[string]bool, error) {
	disabled := make(map[string]bool)
	for _, code := range splitCodes(c.Disable) {
		disabled[code] = true
	}

	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		return nil, fmt.Errorf("environment config: %w", err)
	}
	for _, code := range splitCodes(ec.Disable) {
		disabled[code] = true
	}
	if ec.JSON {
		c.JSON = true
	}

	data, err := os.ReadFile(ruleFileName)
	switch {
	case err == nil:
		var rf ruleFile
		if err := yaml.Unmarshal(data, &rf); err != nil {
			return nil, fmt.Errorf("%s: %w", ruleFileName, err)
		}
		for _, code := range rf.Disable {
			code = strings.TrimSpace(code)
			if code != "" {
				disabled[code] = true
			}
		}
	case os.IsNotExist(err):
		// no project-level rule file; nothing to merge
	default:
		return nil, fmt.Errorf("%s: %w", ruleFileName, err)
	}

	return disabled, nil
}
