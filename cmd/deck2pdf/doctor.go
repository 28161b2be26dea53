package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/alnah/go-deck2pdf/internal/config"
	"github.com/alnah/go-deck2pdf/internal/fileutil"
	"github.com/alnah/go-deck2pdf/internal/hints"
	"github.com/go-rod/rod/lib/launcher"
)

const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorResult is printed as-is by "doctor --json".
type doctorResult struct {
	Status   string      `json:"status"`
	Chrome   browserInfo `json:"chrome"`
	Env      envInfo     `json:"environment"`
	System   systemInfo  `json:"system"`
	Warnings []string    `json:"warnings,omitempty"`
	Errors   []string    `json:"errors,omitempty"`
}

type browserInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Source  string `json:"source,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	Engine        string `json:"engine"`
	NoSandbox     string `json:"rod_no_sandbox"`
	RodBrowserBin string `json:"rod_browser_bin"`
	ChromeBin     string `json:"chrome_bin"`
	InputDir      string `json:"input_dir"`
}

type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

func (r *doctorResult) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *doctorResult) fail(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// lookPath finds an installed browser when no variable names one. Replaced in tests.
var lookPath = launcher.LookPath

// doctorChecks run in order; each fills its part of the result.
var doctorChecks = []func(*doctorResult){
	checkBrowser,
	checkSandbox,
	checkTempDir,
	checkInputDir,
}

// runDoctorCmd exits 1 only when a check reports an error; warnings pass.
func runDoctorCmd(args []string, env *Environment) int {
	result := diagnose()

	asJSON := false
	for _, a := range args {
		asJSON = asJSON || a == "--json"
	}
	if asJSON {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

func diagnose() *doctorResult {
	engine := os.Getenv("DECK2PDF_ENGINE")
	if engine == "" {
		engine = "rod"
	}
	container, why := isContainer()
	r := &doctorResult{Env: envInfo{
		OS:            runtime.GOOS,
		Arch:          runtime.GOARCH,
		Container:     container,
		ContainerHint: why,
		CI:            hints.InCI(),
		Engine:        engine,
		NoSandbox:     os.Getenv("ROD_NO_SANDBOX"),
		RodBrowserBin: os.Getenv("ROD_BROWSER_BIN"),
		ChromeBin:     os.Getenv("CHROME_BIN"),
		InputDir:      os.Getenv("DECK2PDF_INPUT_DIR"),
	}}
	if r.Env.InputDir == "" {
		r.Env.InputDir = config.DefaultConfig().Input.Dir
	}

	for _, check := range doctorChecks {
		check(r)
	}

	switch {
	case len(r.Errors) > 0:
		r.Status = statusErrors
	case len(r.Warnings) > 0:
		r.Status = statusWarnings
	default:
		r.Status = statusReady
	}
	return r
}

// checkBrowser locates the Chrome the selected engine would start. rod can
// download its own, so only chromedp treats a missing browser as an error.
func checkBrowser(r *doctorResult) {
	source := hints.BrowserBinVar(r.Env.Engine)
	bin := r.Env.RodBrowserBin
	if source == "CHROME_BIN" {
		bin = r.Env.ChromeBin
	}

	if bin == "" {
		found := false
		if bin, found = lookPath(); !found {
			if r.Env.Engine == "rod" {
				r.warn("Chrome/Chromium not found; rod will download one on first run. Set %s to use an installed browser", source)
			} else {
				r.fail("Chrome/Chromium not found. Install Chrome or set %s", source)
			}
			return
		}
		source = "lookup"
	}

	if _, err := os.Stat(bin); err != nil {
		r.fail("Chrome not found at %s (from %s)", bin, source)
		return
	}
	r.Chrome = browserInfo{Found: true, Path: bin, Source: source, Sandbox: r.Env.NoSandbox != "1"}

	// #nosec G204 -- bin comes from the user's environment or a PATH lookup
	out, err := exec.Command(bin, "--version").Output()
	if err != nil {
		r.warn("Could not get Chrome version: %v", err)
		return
	}
	r.Chrome.Version = strings.TrimSpace(string(out))
}

// checkSandbox flags the usual cause of Chrome dying at start in
// unprivileged environments.
func checkSandbox(r *doctorResult) {
	if r.Env.NoSandbox == "1" || !(r.Env.Container || r.Env.CI) {
		return
	}
	r.warn("Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1")
}

// checkTempDir matters for chromedp, which keeps its profile in the temp dir.
func checkTempDir(r *doctorResult) {
	dir := os.TempDir()
	probe, err := os.CreateTemp(dir, "deck2pdf-doctor-*")
	if err != nil {
		r.fail("Temp directory not writable: %s", dir)
		return
	}
	name := probe.Name()
	_ = probe.Close()
	_ = os.Remove(name)
	r.System.TempWritable = true
}

// checkInputDir warns when "deck2pdf --all" would find nothing to convert.
func checkInputDir(r *doctorResult) {
	if !fileutil.DirExists(r.Env.InputDir) {
		r.warn("Input directory %s not found. Create it or set DECK2PDF_INPUT_DIR", r.Env.InputDir)
	}
}

// isContainer returns the first container signal found, if any.
func isContainer() (bool, string) {
	switch {
	case os.Getenv("DECK2PDF_CONTAINER") == "1":
		return true, "DECK2PDF_CONTAINER=1"
	case hints.IsInContainer():
		return true, "/.dockerenv"
	case os.Getenv("container") != "":
		return true, "container=" + os.Getenv("container")
	case os.Getenv("KUBERNETES_SERVICE_HOST") != "":
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// printDoctorResult writes the human-readable report.
func printDoctorResult(w io.Writer, r *doctorResult) {
	line := func(tag, format string, args ...any) {
		fmt.Fprintf(w, "  [%s] %s\n", tag, fmt.Sprintf(format, args...))
	}

	fmt.Fprintf(w, "deck2pdf doctor\n\nChrome/Chromium\n")
	line("OK", "Engine: %s", r.Env.Engine)
	if c := r.Chrome; c.Found {
		line("OK", "Found at %s (%s)", c.Path, c.Source)
		if c.Version != "" {
			line("OK", "Version: %s", c.Version)
		}
		sandbox := "enabled"
		if !c.Sandbox {
			sandbox = "disabled (ROD_NO_SANDBOX=1)"
		}
		line("OK", "Sandbox: %s", sandbox)
	} else {
		line("--", "Not found")
	}

	fmt.Fprintf(w, "\nEnvironment\n")
	line("OK", "Platform: %s/%s", r.Env.OS, r.Env.Arch)
	if fileutil.DirExists(r.Env.InputDir) {
		line("OK", "Input directory: %s", r.Env.InputDir)
	} else {
		line("--", "Input directory: %s (missing)", r.Env.InputDir)
	}
	if r.Env.Container {
		line("OK", "Container: detected (%s)", r.Env.ContainerHint)
	}
	if r.Env.CI {
		line("OK", "CI: detected")
	}

	fmt.Fprintf(w, "\nSystem\n")
	if r.System.TempWritable {
		line("OK", "Temp directory: writable")
	} else {
		line("ERROR", "Temp directory: not writable")
	}
	fmt.Fprintln(w)

	for _, group := range []struct {
		title, tag string
		items      []string
	}{
		{"Warnings:", "WARN", r.Warnings},
		{"Errors:", "ERROR", r.Errors},
	} {
		if len(group.items) == 0 {
			continue
		}
		fmt.Fprintln(w, group.title)
		for _, item := range group.items {
			line(group.tag, "%s", item)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, map[string]string{
		statusReady:    "Status: Ready to convert",
		statusWarnings: "Status: Ready with warnings",
		statusErrors:   "Status: Not ready (see errors above)",
	}[r.Status])
}
