package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-deck2pdf"
	"github.com/alnah/go-deck2pdf/internal/config"
	"github.com/alnah/go-deck2pdf/internal/hints"
	"github.com/alnah/go-deck2pdf/internal/logging"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage           = errors.New("invalid usage")
	ErrReadCSS         = errors.New("failed to read CSS file")
	ErrDocumentsFailed = errors.New("some documents failed to convert")
)

// runConvertCmd parses flags, runs the conversion and maps the outcome to an
// exit code. Errors are printed with hints where one applies.
func runConvertCmd(ctx context.Context, args []string, env *Environment) int {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		fmt.Fprintln(env.Stderr, "Run 'deck2pdf help convert' for usage.")
		return ExitUsage
	}

	err = runConvert(ctx, positional, flags, env)
	if err != nil && !errors.Is(err, ErrDocumentsFailed) {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
	}
	return exitCodeFor(err)
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positional []string, flags *convertFlags, env *Environment) error {
	name, err := resolveTarget(positional, flags.all)
	if err != nil {
		return err
	}

	cfg, err := resolveConfig(flags, env.Stderr)
	if err != nil {
		return err
	}

	runID, closer := logging.Init(logging.Options{
		Level:   logLevel(flags, cfg),
		File:    cfg.Log.File,
		Console: env.Stderr,
	})
	defer func() { _ = closer.Close() }()
	logging.Debug("starting", "run_id", runID, "version", Version, "gomaxprocs", runtime.GOMAXPROCS(0))

	opts, err := converterOptions(cfg)
	if err != nil {
		return err
	}

	names, err := deck2pdf.ResolveDocuments(cfg.Input.Dir, cfg.Input.Extension, name)
	if err != nil {
		if errors.Is(err, deck2pdf.ErrNoDocuments) {
			return fmt.Errorf("%w%s", err, hints.ForNoDocuments(cfg.Input.Dir, cfg.Input.Extension))
		}
		return err
	}
	docs := deck2pdf.PlanDocuments(names, cfg.Input.Dir, cfg.Output.Dir, cfg.Input.Extension)

	if err := deck2pdf.EnsureOutputDir(cfg.Output.Dir); err != nil {
		return fmt.Errorf("%w%s", err, hints.ForOutputDirectory())
	}

	conv, err := env.NewConverter(opts...)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := conv.Close(); cerr != nil {
			logging.Warn("closing browser", "error", cerr.Error())
		}
	}()

	rep := newConsoleReporter(env.Stdout, env.Stderr, flags.quiet, cfg.Render.Selector)
	rep.Begin(len(docs))
	summary := deck2pdf.RunBatch(ctx, conv, docs, rep)
	rep.End(summary)

	switch {
	case errors.Is(summary.Aborted, deck2pdf.ErrBrowserConnect):
		return fmt.Errorf("%w%s", summary.Aborted, hints.ForBrowserLaunch(cfg.Render.Engine))
	case errors.Is(summary.Aborted, context.Canceled):
		return fmt.Errorf("interrupted: %w", summary.Aborted)
	case summary.Aborted != nil:
		return summary.Aborted
	case summary.Failed() > 0:
		return fmt.Errorf("%w: %d of %d", ErrDocumentsFailed, summary.Failed(), summary.Total)
	}
	return nil
}

// resolveTarget turns the positional arguments and --all into the argument
// ResolveDocuments expects.
func resolveTarget(positional []string, all bool) (string, error) {
	switch {
	case len(positional) > 1:
		return "", fmt.Errorf("%w: expected at most one deck name, got %d", ErrUsage, len(positional))
	case len(positional) == 1 && all:
		return "", fmt.Errorf("%w: a deck name and --all are mutually exclusive", ErrUsage)
	case len(positional) == 1:
		return positional[0], nil
	}
	return deck2pdf.AllDocuments, nil
}

// resolveConfig layers defaults, config file, environment and flags, in
// increasing precedence, and validates the result.
func resolveConfig(flags *convertFlags, warn io.Writer) (*config.Config, error) {
	warnUnknownEnvVars(warn)
	envCfg := loadEnvConfig(warn)

	name := flags.config
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		var err error
		cfg, err = config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return nil, fmt.Errorf("%w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
			}
			return nil, err
		}
	}

	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if !flags.changed("browser-bin") {
		if bin := envCfg.browserBin(cfg.Render.Engine); bin != "" {
			cfg.Browser.Bin = bin
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFlags copies explicitly set flags into cfg.
func mergeFlags(f *convertFlags, cfg *config.Config) {
	if f.changed("input-dir") {
		cfg.Input.Dir = f.inputDir
	}
	if f.changed("output-dir") {
		cfg.Output.Dir = f.outputDir
	}
	if f.changed("ext") {
		cfg.Input.Extension = f.ext
	}
	if f.changed("scale") {
		cfg.Render.Scale = f.scale
	}
	if f.changed("settle") {
		cfg.Render.SettleDelay = f.settle
	}
	if f.changed("timeout") {
		cfg.Render.Timeout = f.timeout
	}
	if f.changed("selector") {
		cfg.Render.Selector = f.selector
	}
	if f.changed("hide") {
		cfg.Render.Hide = f.hide
	}
	if f.changed("format") {
		cfg.Render.Format = f.format
	}
	if f.changed("quality") {
		cfg.Render.Quality = f.quality
	}
	if f.changed("engine") {
		cfg.Render.Engine = f.engine
	}
	if f.noFontWait {
		cfg.Render.SkipFontWait = true
	}
	if f.verify {
		cfg.Render.Verify = true
	}
	if f.changed("asset-path") {
		cfg.Assets.BasePath = f.assetPath
	}
	if f.changed("browser-bin") {
		cfg.Browser.Bin = f.browserBin
	}
	if f.noSandbox {
		cfg.Browser.NoSandbox = true
	}
	if f.changed("log-file") {
		cfg.Log.File = f.logFile
	}
	if f.changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if f.changed("css") {
		cfg.Assets.ExportCSS = f.css
	}
}
