package assets

import "path"

// AssetLoader defines the contract for loading export assets.
type AssetLoader interface {
	// LoadStyle returns the stylesheet named name, without its .css suffix.
	LoadStyle(name string) (string, error)

	// LoadScript returns the script named name, without its .js suffix.
	LoadScript(name string) (string, error)
}

// assetKind places one family of assets in a kit directory.
type assetKind struct {
	dir      string
	suffix   string
	notFound error
}

var (
	styleKind  = assetKind{dir: "styles", suffix: ".css", notFound: ErrStyleNotFound}
	scriptKind = assetKind{dir: "scripts", suffix: ".js", notFound: ErrScriptNotFound}
)

// file returns the slash-separated location of name inside a kit.
func (k assetKind) file(name string) string {
	return path.Join(k.dir, name+k.suffix)
}
