// Package assets provides the stylesheet and page scripts injected into a
// deck while it is exported.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in kit)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// AssetResolver is what the renderer uses. A custom directory may override
// any single file; everything it lacks comes from the embedded defaults.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── export.css       # export stylesheet, with {{slide}} {{width}} {{height}} placeholders
//	└── scripts/
//	    ├── count.js         # (selector) => number of slides
//	    ├── prepare.js       # (styleId, css) => injects the stylesheet once
//	    ├── isolate.js       # (selector, index, width, height, hide) => visible slide count
//	    └── fonts.js         # () => resolves once web fonts are ready
//
// Scripts are single JavaScript function expressions. The browser driver
// calls them with JSON-encoded arguments and expects a number back.
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
