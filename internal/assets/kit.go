package assets

import (
	"fmt"
	"strconv"
	"strings"
)

// Asset names making up an export kit.
const (
	StyleExport   = "export"
	ScriptCount   = "count"
	ScriptPrepare = "prepare"
	ScriptIsolate = "isolate"
	ScriptFonts   = "fonts"
)

// ExportKit is the full set of assets injected into a deck during export.
type ExportKit struct {
	Stylesheet string // raw, with placeholders
	Count      string
	Prepare    string
	Isolate    string
	Fonts      string
}

// LoadExportKit loads every export asset from loader.
func LoadExportKit(loader AssetLoader) (*ExportKit, error) {
	css, err := loader.LoadStyle(StyleExport)
	if err != nil {
		return nil, err
	}

	kit := &ExportKit{Stylesheet: css}
	for _, s := range []struct {
		name string
		dst  *string
	}{
		{ScriptCount, &kit.Count},
		{ScriptPrepare, &kit.Prepare},
		{ScriptIsolate, &kit.Isolate},
		{ScriptFonts, &kit.Fonts},
	} {
		js, err := loader.LoadScript(s.name)
		if err != nil {
			return nil, err
		}
		*s.dst = strings.TrimSpace(js)
	}
	return kit, nil
}

// RenderStylesheet fills the stylesheet placeholders for one deck.
// An override, when non-empty, replaces the kit stylesheet entirely.
func (k *ExportKit) RenderStylesheet(override, selector string, width, height int) string {
	css := k.Stylesheet
	if override != "" {
		css = override
	}
	return strings.NewReplacer(
		"{{slide}}", selector,
		"{{width}}", strconv.Itoa(width)+"px",
		"{{height}}", strconv.Itoa(height)+"px",
	).Replace(css)
}

// String summarizes the kit for debug logs.
func (k *ExportKit) String() string {
	return fmt.Sprintf("export kit (css %dB, scripts %dB)",
		len(k.Stylesheet), len(k.Count)+len(k.Prepare)+len(k.Isolate)+len(k.Fonts))
}
