package assets

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemLoader reads an export kit laid out as styles/*.css and
// scripts/*.js under a root directory. Files resolving outside the root,
// symlinks included, are refused.
type FilesystemLoader struct {
	root string
}

// NewFilesystemLoader returns ErrInvalidBasePath unless dir names a
// readable directory.
func NewFilesystemLoader(dir string) (*FilesystemLoader, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: no directory given", ErrInvalidBasePath)
	}
	root, err := canonical(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if _, err := os.ReadDir(root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	return &FilesystemLoader{root: root}, nil
}

// canonical resolves dir to an absolute, symlink-free path that must be a
// directory.
func canonical(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	info, err := os.Stat(abs)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("%s does not exist", abs)
	case err != nil:
		return "", err
	case !info.IsDir():
		return "", fmt.Errorf("%s is not a directory", abs)
	}
	return abs, nil
}

// LoadStyle reads {root}/styles/{name}.css.
func (f *FilesystemLoader) LoadStyle(name string) (string, error) {
	return f.read(styleKind, name)
}

// LoadScript reads {root}/scripts/{name}.js.
func (f *FilesystemLoader) LoadScript(name string) (string, error) {
	return f.read(scriptKind, name)
}

func (f *FilesystemLoader) read(kind assetKind, name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	target := filepath.Join(f.root, filepath.FromSlash(kind.file(name)))
	if err := f.contains(target); err != nil {
		return "", err
	}

	data, err := os.ReadFile(target) // #nosec G304 -- contained in root
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("%w: %q in %s", kind.notFound, name, f.root)
	case err != nil:
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	case len(bytes.TrimSpace(data)) == 0:
		return "", fmt.Errorf("%w: %s", ErrEmptyAsset, target)
	}
	return string(data), nil
}

// contains rejects target when it, or the file a symlink at target points
// to, lies outside the root. A missing target is checked lexically.
func (f *FilesystemLoader) contains(target string) error {
	if resolved, err := filepath.EvalSymlinks(target); err == nil {
		target = resolved
	}
	rel, err := filepath.Rel(f.root, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%w: %s leaves %s", ErrPathTraversal, target, f.root)
	}
	return nil
}

var _ AssetLoader = (*FilesystemLoader)(nil)
