package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/alnah/go-deck2pdf/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string  // DECK2PDF_CONFIG: config file name or path
	InputDir   string  // DECK2PDF_INPUT_DIR
	OutputDir  string  // DECK2PDF_OUTPUT_DIR
	Scale      float64 // DECK2PDF_SCALE
	Timeout    string  // DECK2PDF_TIMEOUT: per-document timeout
	Engine     string  // DECK2PDF_ENGINE: rod or chromedp

	RodBrowserBin string // ROD_BROWSER_BIN: binary for the rod engine
	ChromeBin     string // CHROME_BIN: binary for the chromedp engine
	NoSandbox     bool   // ROD_NO_SANDBOX=1
}

// knownEnvVars lists valid DECK2PDF_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"DECK2PDF_CONFIG":     true,
	"DECK2PDF_INPUT_DIR":  true,
	"DECK2PDF_OUTPUT_DIR": true,
	"DECK2PDF_SCALE":      true,
	"DECK2PDF_TIMEOUT":    true,
	"DECK2PDF_ENGINE":     true,
	"DECK2PDF_CONTAINER":  true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed numbers are reported on w and ignored.
func loadEnvConfig(w io.Writer) *envConfig {
	cfg := &envConfig{
		ConfigPath:    os.Getenv("DECK2PDF_CONFIG"),
		InputDir:      os.Getenv("DECK2PDF_INPUT_DIR"),
		OutputDir:     os.Getenv("DECK2PDF_OUTPUT_DIR"),
		Timeout:       os.Getenv("DECK2PDF_TIMEOUT"),
		Engine:        os.Getenv("DECK2PDF_ENGINE"),
		RodBrowserBin: os.Getenv("ROD_BROWSER_BIN"),
		ChromeBin:     os.Getenv("CHROME_BIN"),
		NoSandbox:     os.Getenv("ROD_NO_SANDBOX") == "1",
	}

	if scale := os.Getenv("DECK2PDF_SCALE"); scale != "" {
		if s, err := strconv.ParseFloat(scale, 64); err == nil {
			cfg.Scale = s
		} else {
			fmt.Fprintf(w, "warning: ignoring DECK2PDF_SCALE=%q: not a number\n", scale)
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized DECK2PDF_* variables.
// Helps catch typos like DECK2PDF_OUTPUT instead of DECK2PDF_OUTPUT_DIR.
func warnUnknownEnvVars(w io.Writer) {
	var unknown []string
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "DECK2PDF_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				unknown = append(unknown, name)
			}
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
	}
}

// applyEnvConfig overlays set environment values on cfg.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.InputDir != "" {
		cfg.Input.Dir = env.InputDir
	}
	if env.OutputDir != "" {
		cfg.Output.Dir = env.OutputDir
	}
	if env.Scale != 0 {
		cfg.Render.Scale = env.Scale
	}
	if env.Timeout != "" {
		cfg.Render.Timeout = env.Timeout
	}
	if env.Engine != "" {
		cfg.Render.Engine = env.Engine
	}
	if env.NoSandbox {
		cfg.Browser.NoSandbox = true
	}
}

// browserBin returns the binary variable that belongs to engine. The engine
// is only final after flags are merged, so this is applied last.
func (e *envConfig) browserBin(engine string) string {
	if engine == "chromedp" {
		return e.ChromeBin
	}
	return e.RodBrowserBin
}
