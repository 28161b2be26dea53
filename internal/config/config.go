package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-deck2pdf/internal/fileutil"
	"github.com/alnah/go-deck2pdf/internal/logging"
	"github.com/alnah/go-deck2pdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// AppDir is the directory under the user config dir searched for named configs.
const AppDir = "go-deck2pdf"

// Field length limits.
const (
	MaxPathLength     = 4096
	MaxSelectorLength = 200
	MaxHiddenEntries  = 32
)

// Render bounds shared with the CLI.
const (
	MinScale       = 1.0
	MaxScale       = 4.0
	MaxSettleDelay = 10 * time.Second
	MinQuality     = 1
	MaxQuality     = 100
)

// Config holds every tunable of a conversion run.
type Config struct {
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Render  RenderConfig  `yaml:"render"`
	Browser BrowserConfig `yaml:"browser"`
	Assets  AssetsConfig  `yaml:"assets"`
	Log     LogConfig     `yaml:"log"`
}

// InputConfig defines where source documents are found.
type InputConfig struct {
	Dir       string `yaml:"dir"`
	Extension string `yaml:"ext"`
}

// OutputConfig defines where PDFs are written.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// RenderConfig controls how slides are isolated and captured.
type RenderConfig struct {
	Engine       string   `yaml:"engine"`      // rod or chromedp
	Scale        float64  `yaml:"scale"`       // device pixel ratio, 1 to 4
	SettleDelay  string   `yaml:"settleDelay"` // e.g. "100ms"
	Timeout      string   `yaml:"timeout"`     // per document, e.g. "2m"
	Selector     string   `yaml:"selector"`
	Hide         []string `yaml:"hide"` // chrome hidden during capture
	Format       string   `yaml:"format"`
	Quality      int      `yaml:"quality"` // jpeg only
	SkipFontWait bool     `yaml:"skipFontWait"`
	Verify       bool     `yaml:"verify"`
}

// BrowserConfig defines how the headless browser is launched.
type BrowserConfig struct {
	Bin       string `yaml:"bin"`
	NoSandbox bool   `yaml:"noSandbox"`
}

// AssetsConfig overrides the embedded export assets.
type AssetsConfig struct {
	BasePath  string `yaml:"basePath"`  // directory with styles/ and scripts/
	ExportCSS string `yaml:"exportCSS"` // stylesheet file replacing export.css
}

// LogConfig defines diagnostic logging.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// DefaultConfig returns the settings used when no file or flag overrides them.
func DefaultConfig() *Config {
	return &Config{
		Input:  InputConfig{Dir: "html", Extension: ".html"},
		Output: OutputConfig{Dir: "pdf"},
		Render: RenderConfig{
			Engine:      "rod",
			Scale:       3,
			SettleDelay: "100ms",
			Timeout:     "2m",
			Selector:    ".slide-container",
			Hide:        []string{".nav-controls", "#footer-template"},
			Format:      "png",
			Quality:     90,
		},
		Log: LogConfig{Level: "warn"},
	}
}

// SettleDuration parses Render.SettleDelay.
func (r RenderConfig) SettleDuration() (time.Duration, error) {
	return parseDuration("render.settleDelay", r.SettleDelay)
}

// TimeoutDuration parses Render.Timeout.
func (r RenderConfig) TimeoutDuration() (time.Duration, error) {
	return parseDuration("render.timeout", r.Timeout)
}

func parseDuration(field, s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %q is not a duration", ErrInvalidValue, field, s)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: %s: must not be negative, got %s", ErrInvalidValue, field, s)
	}
	return d, nil
}

// Validate checks ranges, enumerations and field lengths.
func (c *Config) Validate() error {
	for _, f := range []struct {
		name, value string
	}{
		{"input.dir", c.Input.Dir},
		{"output.dir", c.Output.Dir},
		{"browser.bin", c.Browser.Bin},
		{"assets.basePath", c.Assets.BasePath},
		{"assets.exportCSS", c.Assets.ExportCSS},
		{"log.file", c.Log.File},
	} {
		if err := validateFieldLength(f.name, f.value, MaxPathLength); err != nil {
			return err
		}
	}

	if c.Input.Extension != "" && strings.ContainsAny(c.Input.Extension, "/\\\x00") {
		return fmt.Errorf("%w: input.ext: %q contains a path separator", ErrInvalidValue, c.Input.Extension)
	}

	r := c.Render
	switch r.Engine {
	case "", "rod", "chromedp":
	default:
		return fmt.Errorf("%w: render.engine: %q (must be rod or chromedp)", ErrInvalidValue, r.Engine)
	}
	if r.Scale != 0 && (r.Scale < MinScale || r.Scale > MaxScale) {
		return fmt.Errorf("%w: render.scale: must be between %.0f and %.0f, got %.2f", ErrInvalidValue, MinScale, MaxScale, r.Scale)
	}
	settle, err := r.SettleDuration()
	if err != nil {
		return err
	}
	if settle > MaxSettleDelay {
		return fmt.Errorf("%w: render.settleDelay: must be at most %s, got %s", ErrInvalidValue, MaxSettleDelay, settle)
	}
	if _, err := r.TimeoutDuration(); err != nil {
		return err
	}
	if err := validateFieldLength("render.selector", r.Selector, MaxSelectorLength); err != nil {
		return err
	}
	if len(r.Hide) > MaxHiddenEntries {
		return fmt.Errorf("%w: render.hide: at most %d selectors, got %d", ErrInvalidValue, MaxHiddenEntries, len(r.Hide))
	}
	for i, sel := range r.Hide {
		if err := validateFieldLength(fmt.Sprintf("render.hide[%d]", i), sel, MaxSelectorLength); err != nil {
			return err
		}
	}
	switch strings.ToLower(r.Format) {
	case "", "png", "jpeg", "jpg":
	default:
		return fmt.Errorf("%w: render.format: %q (must be png or jpeg)", ErrInvalidValue, r.Format)
	}
	if r.Quality != 0 && (r.Quality < MinQuality || r.Quality > MaxQuality) {
		return fmt.Errorf("%w: render.quality: must be between %d and %d, got %d", ErrInvalidValue, MinQuality, MaxQuality, r.Quality)
	}

	if !logging.ValidLevel(c.Log.Level) {
		return fmt.Errorf("%w: log.level: %q (must be debug, info, warn or error)", ErrInvalidValue, c.Log.Level)
	}

	return nil
}

func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's searched as name.yaml/name.yml in the current directory
// and then in the user config directory. Keys absent from the file keep
// their DefaultConfig value.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !isFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.DecodeStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrConfigParse, configPath, yamlutil.FormatError(err))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Marshal renders cfg as YAML suitable for LoadConfig.
func Marshal(cfg *Config) ([]byte, error) {
	return yamlutil.Encode(cfg)
}

func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\") || strings.HasSuffix(s, ".yaml") || strings.HasSuffix(s, ".yml")
}

// SearchPaths lists the candidate files for a config name, in lookup order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, AppDir, name+ext))
		}
	}
	return paths
}

func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
