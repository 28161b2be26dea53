package main

import (
	"fmt"

	"github.com/alnah/go-deck2pdf"
)

// runInspectCmd reports page count and sizes of each PDF argument. Pages
// that are not canvas-sized are flagged and make the command fail.
func runInspectCmd(args []string, env *Environment) int {
	if len(args) == 0 {
		fmt.Fprintf(env.Stderr, "error: %v: inspect needs at least one PDF\n", ErrUsage)
		return ExitUsage
	}

	code := ExitSuccess
	for _, path := range args {
		info, err := deck2pdf.InspectFile(path)
		if err != nil {
			fmt.Fprintf(env.Stderr, "%s: %v\n", path, err)
			code = exitCodeFor(err)
			continue
		}

		fmt.Fprintf(env.Stdout, "%s: %d pages\n", path, info.Pages)
		for i, p := range info.PageSizes {
			mark := ""
			if !p.MatchesCanvas() {
				mark = fmt.Sprintf("  (want %dx%d)", deck2pdf.CanvasWidth, deck2pdf.CanvasHeight)
				if code == ExitSuccess {
					code = ExitGeneral
				}
			}
			fmt.Fprintf(env.Stdout, "  page %d: %.0fx%.0f pt%s\n", i+1, p.Width, p.Height, mark)
		}
	}
	return code
}
