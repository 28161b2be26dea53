package assets

import (
	"embed"
	"fmt"
)

//go:embed styles/*.css scripts/*.js
var builtin embed.FS

// EmbeddedLoader serves the export kit compiled into the binary.
type EmbeddedLoader struct{}

func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	return e.read(styleKind, name)
}

func (e *EmbeddedLoader) LoadScript(name string) (string, error) {
	return e.read(scriptKind, name)
}

func (e *EmbeddedLoader) read(kind assetKind, name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	data, err := builtin.ReadFile(kind.file(name))
	if err != nil {
		// embed.FS only fails for names it does not hold.
		return "", fmt.Errorf("%w: %q (built-in)", kind.notFound, name)
	}
	return string(data), nil
}

var _ AssetLoader = (*EmbeddedLoader)(nil)
