package deck2pdf

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// AllDocuments is the selector argument meaning every document in the
// source directory. An empty argument and the bare word "all" mean the same,
// so a deck named all.html can only be converted together with the others.
const AllDocuments = "--all"

func selectsAll(arg string) bool {
	return arg == "" || arg == AllDocuments || arg == "all"
}

// ResolveDocuments turns a selector argument into bare document names.
//
// With an empty argument, "all" or AllDocuments, it lists every file in
// sourceDir carrying ext and returns their names without the extension,
// sorted. It fails with ErrNoDocuments when that list is empty.
//
// Any other argument names one document. Directory components and a
// trailing ext are stripped; existence is not checked here.
func ResolveDocuments(sourceDir, ext, arg string) ([]string, error) {
	ext = normalizeExt(ext)

	if !selectsAll(arg) {
		return []string{BareName(arg, ext)}, nil
	}

	entries, err := os.ReadDir(sourceDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: directory %s does not exist", ErrNoDocuments, sourceDir)
		}
		return nil, fmt.Errorf("listing %s: %w", sourceDir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !strings.HasSuffix(e.Name(), ext) || e.Name() == ext {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ext))
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no %s files in %s", ErrNoDocuments, ext, sourceDir)
	}

	sort.Strings(names)
	return names, nil
}

// BareName strips directories and a trailing ext from arg.
// Other extensions are kept: "deck.htm" stays "deck.htm" for ext ".html".
func BareName(arg, ext string) string {
	return strings.TrimSuffix(filepath.Base(arg), normalizeExt(ext))
}

// PlanDocuments maps bare names to documents rooted at the given directories.
func PlanDocuments(names []string, inputDir, outputDir, ext string) []Document {
	docs := make([]Document, 0, len(names))
	for _, n := range names {
		docs = append(docs, NewDocument(n, inputDir, outputDir, ext))
	}
	return docs
}
