package assets

import "errors"

// AssetResolver consults its loaders in order and returns the first hit.
// Only not-found errors move on to the next loader; any other failure in a
// custom kit is reported so a broken override never silently disappears.
type AssetResolver struct {
	layers []AssetLoader
}

// NewAssetResolver layers the directory at customBasePath, when given, over
// the built-in kit.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	var layers []AssetLoader
	if customBasePath != "" {
		dir, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		layers = append(layers, dir)
	}
	return &AssetResolver{layers: append(layers, NewEmbeddedLoader())}, nil
}

func (r *AssetResolver) LoadStyle(name string) (string, error) {
	return r.first(func(l AssetLoader) (string, error) { return l.LoadStyle(name) })
}

func (r *AssetResolver) LoadScript(name string) (string, error) {
	return r.first(func(l AssetLoader) (string, error) { return l.LoadScript(name) })
}

func (r *AssetResolver) first(load func(AssetLoader) (string, error)) (string, error) {
	var err error
	for _, layer := range r.layers {
		var content string
		if content, err = load(layer); err == nil {
			return content, nil
		}
		if !isNotFoundError(err) {
			break
		}
	}
	return "", err
}

func isNotFoundError(err error) bool {
	return errors.Is(err, ErrStyleNotFound) || errors.Is(err, ErrScriptNotFound)
}

// HasCustomLoader reports whether a directory kit sits above the built-in one.
func (r *AssetResolver) HasCustomLoader() bool {
	return len(r.layers) > 1
}

var _ AssetLoader = (*AssetResolver)(nil)
