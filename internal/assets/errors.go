package assets

import "errors"

var (
	ErrStyleNotFound  = errors.New("style not found")
	ErrScriptNotFound = errors.New("script not found")

	// ErrEmptyAsset marks a custom file holding nothing but whitespace.
	ErrEmptyAsset = errors.New("asset is empty")

	// ErrInvalidAssetName rejects names that could address another file.
	ErrInvalidAssetName = errors.New("invalid asset name")

	ErrInvalidBasePath = errors.New("invalid asset directory")
	ErrAssetRead       = errors.New("failed to read asset")
	ErrPathTraversal   = errors.New("asset path escapes its directory")
)
