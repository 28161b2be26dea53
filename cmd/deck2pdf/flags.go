package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	config    string
	inputDir  string
	outputDir string
	ext       string
	all       bool

	scale    float64
	settle   string
	timeout  string
	selector string
	hide     []string
	format   string
	quality  int
	engine   string

	noFontWait bool
	verify     bool
	css        string
	assetPath  string
	browserBin string
	noSandbox  bool

	quiet    bool
	verbose  bool
	logFile  string
	logLevel string

	fs *flag.FlagSet
}

// changed reports whether the named flag was set on the command line.
func (f *convertFlags) changed(name string) bool {
	return f.fs != nil && f.fs.Changed(name)
}

// parseConvertFlags parses convert command flags and returns positional args.
// Defaults are left zero: the effective value comes from the config layers
// unless the flag is set explicitly.
func parseConvertFlags(args []string, usage io.Writer) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	f := &convertFlags{fs: fs}

	// Input/Output
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVarP(&f.inputDir, "input-dir", "i", "", "directory holding the decks (default html)")
	fs.StringVarP(&f.outputDir, "output-dir", "o", "", "directory for the PDFs (default pdf)")
	fs.StringVar(&f.ext, "ext", "", "deck file extension (default .html)")
	fs.BoolVar(&f.all, "all", false, "convert every deck in the input directory")

	// Rendering
	fs.Float64VarP(&f.scale, "scale", "s", 0, "device pixel ratio, 1 to 4 (default 3)")
	fs.StringVar(&f.settle, "settle", "", "delay after isolating a slide (default 100ms)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-document timeout (default 2m)")
	fs.StringVar(&f.selector, "selector", "", "CSS selector matching one slide (default .slide-container)")
	fs.StringSliceVar(&f.hide, "hide", nil, "selectors hidden during capture (repeatable)")
	fs.StringVar(&f.format, "format", "", "slide image format: png, jpeg")
	fs.IntVar(&f.quality, "quality", 0, "JPEG quality, 1 to 100")
	fs.StringVar(&f.engine, "engine", "", "browser engine: rod, chromedp")
	fs.BoolVar(&f.noFontWait, "no-font-wait", false, "do not wait for web fonts")
	fs.BoolVar(&f.verify, "verify", false, "check page count and size of every PDF")

	// Assets and browser
	fs.StringVar(&f.css, "css", "", "export stylesheet override file")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.StringVar(&f.browserBin, "browser-bin", "", "Chrome/Chromium binary")
	fs.BoolVar(&f.noSandbox, "no-sandbox", false, "disable the Chrome sandbox")

	// Output control
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show diagnostic logs")
	fs.StringVar(&f.logFile, "log-file", "", "write JSON logs to a rotated file")
	fs.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")

	fs.Usage = func() { printConvertUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
