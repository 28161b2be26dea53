package assets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeAsset(t *testing.T, base, rel, content string) {
	t.Helper()
	path := filepath.Join(base, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
}

func TestNewFilesystemLoader(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{name: "valid directory", path: dir},
		{name: "empty path", path: "", wantErr: ErrInvalidBasePath},
		{name: "nonexistent", path: filepath.Join(dir, "missing"), wantErr: ErrInvalidBasePath},
		{name: "file not directory", path: file, wantErr: ErrInvalidBasePath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			loader, err := NewFilesystemLoader(tt.path)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil || loader == nil {
				t.Fatalf("NewFilesystemLoader(%q) = %v, %v", tt.path, loader, err)
			}
		})
	}
}

func TestFilesystemLoader_Load(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	writeAsset(t, base, "styles/export.css", "body { color: red; }")
	writeAsset(t, base, "scripts/count.js", "(s) => 7")
	writeAsset(t, base, "scripts/blank.js", "  \n")

	loader, err := NewFilesystemLoader(base)
	if err != nil {
		t.Fatal(err)
	}

	if got, err := loader.LoadStyle("export"); err != nil || got != "body { color: red; }" {
		t.Errorf("LoadStyle(export) = %q, %v", got, err)
	}
	if got, err := loader.LoadScript("count"); err != nil || got != "(s) => 7" {
		t.Errorf("LoadScript(count) = %q, %v", got, err)
	}
	if _, err := loader.LoadScript("isolate"); !errors.Is(err, ErrScriptNotFound) {
		t.Errorf("LoadScript(isolate) error = %v, want ErrScriptNotFound", err)
	}
	if _, err := loader.LoadStyle("missing"); !errors.Is(err, ErrStyleNotFound) {
		t.Errorf("LoadStyle(missing) error = %v, want ErrStyleNotFound", err)
	}
	if _, err := loader.LoadScript("blank"); !errors.Is(err, ErrEmptyAsset) {
		t.Errorf("LoadScript(blank) error = %v, want ErrEmptyAsset", err)
	}
}

func TestFilesystemLoader_PathContainment(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	if err := os.MkdirAll(filepath.Join(base, "scripts"), 0o755); err != nil {
		t.Fatal(err)
	}
	secret := filepath.Join(t.TempDir(), "secret.js")
	if err := os.WriteFile(secret, []byte("() => 1"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(secret, filepath.Join(base, "scripts", "evil.js")); err != nil {
		t.Skipf("symlink creation not supported: %v", err)
	}

	loader, err := NewFilesystemLoader(base)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := loader.LoadScript("evil"); !errors.Is(err, ErrPathTraversal) {
		t.Errorf("LoadScript(evil) error = %v, want ErrPathTraversal", err)
	}
}

func TestFilesystemLoader_ImplementsAssetLoader(t *testing.T) {
	t.Parallel()

	var _ AssetLoader = (*FilesystemLoader)(nil)
}
