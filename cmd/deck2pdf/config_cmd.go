package main

import (
	"fmt"

	"github.com/alnah/go-deck2pdf/internal/config"
)

// runConfigCmd prints the effective configuration as YAML: config file (if
// named by -c or DECK2PDF_CONFIG), then environment, then defaults. The
// output is accepted by --config as is.
func runConfigCmd(args []string, env *Environment) int {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return ExitUsage
	}
	if len(positional) > 0 {
		fmt.Fprintf(env.Stderr, "error: %v: config takes no arguments\n", ErrUsage)
		return ExitUsage
	}

	cfg, err := resolveConfig(flags, env.Stderr)
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return exitCodeFor(err)
	}

	out, err := config.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return ExitGeneral
	}
	_, _ = env.Stdout.Write(out)
	return ExitSuccess
}
