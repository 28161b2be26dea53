package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: deck2pdf <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert HTML slide decks to PDF (default)")
	fmt.Fprintln(w, "  doctor     Check the browser and environment")
	fmt.Fprintln(w, "  config     Print the effective configuration as YAML")
	fmt.Fprintln(w, "  inspect    Show page count and sizes of a PDF")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'deck2pdf help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: deck2pdf [convert] [name | --all] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render each slide of an HTML deck and bind them into a PDF,")
	fmt.Fprintln(w, "one 1280x720 page per slide.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  name    Deck name, with or without extension (default: all decks)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -i, --input-dir <dir>     Deck directory (default html)")
	fmt.Fprintln(w, "  -o, --output-dir <dir>    PDF directory (default pdf)")
	fmt.Fprintln(w, "      --ext <ext>           Deck extension (default .html)")
	fmt.Fprintln(w, "      --all                 Convert every deck")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "  -s, --scale <f>           Device pixel ratio, 1-4 (default 3)")
	fmt.Fprintln(w, "      --settle <d>          Delay after isolating a slide (default 100ms)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Per-document timeout (default 2m)")
	fmt.Fprintln(w, "      --selector <s>        Slide selector (default .slide-container)")
	fmt.Fprintln(w, "      --hide <s>            Selector hidden during capture (repeatable)")
	fmt.Fprintln(w, "      --format <s>          Image format: png, jpeg")
	fmt.Fprintln(w, "      --quality <n>         JPEG quality, 1-100 (default 90)")
	fmt.Fprintln(w, "      --engine <s>          Browser engine: rod, chromedp")
	fmt.Fprintln(w, "      --no-font-wait        Skip waiting for web fonts")
	fmt.Fprintln(w, "      --verify              Check every PDF after assembly")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Assets and Browser:")
	fmt.Fprintln(w, "      --css <path>          Export stylesheet override")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom asset directory")
	fmt.Fprintln(w, "      --browser-bin <path>  Chrome/Chromium binary")
	fmt.Fprintln(w, "      --no-sandbox          Disable the Chrome sandbox")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show diagnostic logs")
	fmt.Fprintln(w, "      --log-file <path>     Rotated JSON log file")
	fmt.Fprintln(w, "      --log-level <s>       debug, info, warn, error")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  DECK2PDF_CONFIG, DECK2PDF_INPUT_DIR, DECK2PDF_OUTPUT_DIR,")
	fmt.Fprintln(w, "  DECK2PDF_SCALE, DECK2PDF_TIMEOUT, DECK2PDF_ENGINE,")
	fmt.Fprintln(w, "  ROD_BROWSER_BIN, ROD_NO_SANDBOX, CHROME_BIN")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: deck2pdf doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check that a browser can be found and the environment is ready.")
	case "config":
		fmt.Fprintln(env.Stdout, "Usage: deck2pdf config [-c <name>]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Print the effective configuration (file, environment, defaults) as YAML.")
	case "inspect":
		fmt.Fprintln(env.Stdout, "Usage: deck2pdf inspect <file.pdf>...")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show page count and page sizes; flags pages that are not 1280x720.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: deck2pdf version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: deck2pdf help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
