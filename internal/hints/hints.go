// Package hints appends a short remedy to error messages, rendered on its
// own line as "  hint: ...".
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-deck2pdf/internal/fileutil"
)

const prefix = "\n  hint: "

// ciVars are set by the CI systems whose runners usually lack a sandbox.
var ciVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}

// IsInContainer reports whether the process runs in Docker. Replaced in tests.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// InCI reports whether any well-known CI variable is set.
func InCI() bool {
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}

// BrowserBinVar names the variable that points engine at a Chrome binary.
func BrowserBinVar(engine string) string {
	if engine == "chromedp" {
		return "CHROME_BIN"
	}
	return "ROD_BROWSER_BIN"
}

// ForBrowserLaunch lists what to try when Chrome would not start.
func ForBrowserLaunch(engine string) string {
	var tips []string
	if os.Getenv("ROD_NO_SANDBOX") != "1" && (InCI() || IsInContainer()) {
		tips = append(tips, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if v := BrowserBinVar(engine); os.Getenv(v) == "" {
		tips = append(tips, "set "+v+" to use a specific Chrome")
	}
	tips = append(tips, "run 'deck2pdf doctor' to check the environment")
	return join(tips...)
}

func ForTimeout() string {
	return join("for long decks or high --scale, raise --timeout")
}

// ForConfigNotFound offers --config, plus the per-user location when it is
// among the searched paths.
func ForConfigNotFound(searched []string) string {
	tip := "use --config /path/to/file.yaml"
	for _, p := range searched {
		if strings.Contains(p, "go-deck2pdf") {
			return join(tip + " or create " + p)
		}
	}
	return join(tip)
}

func ForNoDocuments(dir, ext string) string {
	return join("place " + ext + " files in " + dir + "/ or set --input-dir")
}

// ForSlideIsolation is shown when hiding the other slides left the wrong
// number visible.
func ForSlideIsolation(selector string) string {
	return join("check that every slide matches " + selector + " and none is nested in another; see --selector")
}

func ForOutputDirectory() string {
	return join("check parent directory exists and is writable")
}

// join renders tips as a single hint line, or nothing when there are none.
func join(tips ...string) string {
	var kept []string
	for _, t := range tips {
		if t != "" {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		return ""
	}
	return prefix + strings.Join(kept, "; ")
}
