package deck2pdf

import (
	"path/filepath"
	"testing"
)

func TestNewDocument(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		ext       string
		wantInput string
	}{
		{name: "dotted", ext: ".html", wantInput: filepath.Join("in", "deck.html")},
		{name: "undotted", ext: "htm", wantInput: filepath.Join("in", "deck.htm")},
		{name: "default", ext: "", wantInput: filepath.Join("in", "deck.html")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := NewDocument("deck", "in", "out", tt.ext)
			if doc.SourcePath != tt.wantInput {
				t.Errorf("SourcePath = %q, want %q", doc.SourcePath, tt.wantInput)
			}
			if doc.OutputPath != filepath.Join("out", "deck.pdf") {
				t.Errorf("OutputPath = %q", doc.OutputPath)
			}
		})
	}
}

func TestParseImageFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		want   ImageFormat
		wantOK bool
	}{
		{"", ImageFormatPNG, true},
		{"PNG", ImageFormatPNG, true},
		{"jpeg", ImageFormatJPEG, true},
		{" jpg ", ImageFormatJPEG, true},
		{"webp", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseImageFormat(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseImageFormat(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestProgress_NilSafe(t *testing.T) {
	t.Parallel()

	var p *Progress
	p.slidesFound(3)
	p.slideRendered(1, 3)

	(&Progress{}).slideRendered(1, 3)
}
