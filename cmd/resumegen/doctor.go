package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	resumegen "github.com/alnah/go-resumegen"
	"github.com/alnah/go-resumegen/internal/assets"
	"github.com/alnah/go-resumegen/internal/config"
	"github.com/alnah/go-resumegen/internal/fileutil"
	"github.com/alnah/go-resumegen/internal/hints"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string       `json:"status"` // "ready", "warnings", "errors"
	Compiler compilerInfo `json:"compiler"`
	Layouts  layoutsInfo  `json:"layouts"`
	Dirs     []dirInfo    `json:"directories"`
	Env      envInfo      `json:"environment"`
	Warnings []string     `json:"warnings,omitempty"`
	Errors   []string     `json:"errors,omitempty"`
}

// compilerInfo holds typeset toolchain detection results.
type compilerInfo struct {
	Enabled    bool   `json:"enabled"`
	Command    string `json:"command"`
	Path       string `json:"path,omitempty"`
	Version    string `json:"version,omitempty"`
	Engine     string `json:"engine"`
	EnginePath string `json:"engine_path,omitempty"`
}

// layoutsInfo holds layout catalog results.
type layoutsInfo struct {
	Custom  string   `json:"custom,omitempty"`
	Formats []string `json:"formats"`
}

// dirInfo holds one directory check.
type dirInfo struct {
	Role     string `json:"role"`
	Path     string `json:"path"`
	Exists   bool   `json:"exists"`
	Writable bool   `json:"writable"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS        string `json:"os"`
	Arch      string `json:"arch"`
	Container bool   `json:"container"`
	CI        bool   `json:"ci"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	common, build, jsonOutput, err := parseDoctorFlags(args, env.Stderr)
	if err != nil {
		return flagErrorCode(env.Stderr, err)
	}

	cfg, err := loadConfig(&generateFlags{common: *common, build: *build}, nil, env)
	if err != nil {
		return reportError(env.Stderr, err)
	}

	result := runDoctor(cfg)

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(cfg *config.Config) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:   runtime.GOOS,
			Arch: runtime.GOARCH,
		},
	}

	checkCompiler(result, cfg)
	checkLayouts(result, cfg)
	checkDirs(result, cfg)
	checkEnvironment(result)

	if !fileutil.FileExists(cfg.Input.Document) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Document %s not found", cfg.Input.Document))
	}

	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}
	return result
}

// checkCompiler locates the compiler command and its engine.
func checkCompiler(result *doctorResult, cfg *config.Config) {
	c := &result.Compiler
	c.Enabled = cfg.Compiler.Enabled
	c.Command = cfg.Compiler.Command
	c.Engine = cfg.Compiler.Engine
	if !c.Enabled {
		return
	}

	path, err := exec.LookPath(c.Command)
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("%s not found in PATH%s", c.Command, hints.ForCompilerNotFound(c.Command)))
		return
	}
	c.Path = path

	out, err := exec.Command(path, "-version").Output() // #nosec G204 -- command comes from the user's config
	if err == nil {
		c.Version, _, _ = strings.Cut(strings.TrimSpace(string(out)), "\n")
	} else {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get %s version: %v", c.Command, err))
	}

	if enginePath, err := exec.LookPath(c.Engine); err == nil {
		c.EnginePath = enginePath
	} else {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Engine %s not found in PATH", c.Engine))
	}
}

// checkLayouts parses every configured format's catalog.
func checkLayouts(result *doctorResult, cfg *config.Config) {
	result.Layouts.Custom = cfg.Layouts.Path
	loader, err := assets.NewAssetResolver(cfg.Layouts.Path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Layouts: %v", err))
		return
	}
	for _, name := range cfg.Formats {
		f, err := resumegen.FormatByName(name)
		if err != nil {
			result.Errors = append(result.Errors, err.Error())
			continue
		}
		if _, err := resumegen.NewFormatContext(f, loader, cfg.Layouts.Default); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Layouts for %s: %v", name, err))
			continue
		}
		result.Layouts.Formats = append(result.Layouts.Formats, name)
	}
}

// checkDirs verifies build and output directories can be written.
// A missing directory is fine when its parent is writable.
func checkDirs(result *doctorResult, cfg *config.Config) {
	for _, d := range []struct{ role, path string }{
		{"build", cfg.Build.Dir},
		{"output", cfg.Output.Dir},
	} {
		info := dirInfo{Role: d.role, Path: d.path, Exists: fileutil.DirExists(d.path)}
		probe := d.path
		if !info.Exists {
			probe = nearestExistingDir(d.path)
		}
		info.Writable = isWritable(probe)
		if !info.Writable {
			result.Errors = append(result.Errors,
				fmt.Sprintf("%s directory %s not writable%s", d.role, d.path, hints.ForOutputDirectory()))
		}
		result.Dirs = append(result.Dirs, info)
	}
}

func nearestExistingDir(path string) string {
	dir := filepath.Dir(path)
	for !fileutil.DirExists(dir) {
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return dir
}

func isWritable(dir string) bool {
	f, err := os.CreateTemp(dir, ".resumegen-doctor-*")
	if err != nil {
		return false
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	return true
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult) {
	result.Env.Container = hints.IsInContainer()
	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"} {
		if os.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "resumegen doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Compiler")
	switch {
	case !r.Compiler.Enabled:
		fmt.Fprintln(w, "  [OK] Disabled")
	case r.Compiler.Path != "":
		fmt.Fprintf(w, "  [OK] %s at %s\n", r.Compiler.Command, r.Compiler.Path)
		if r.Compiler.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.Compiler.Version)
		}
		if r.Compiler.EnginePath != "" {
			fmt.Fprintf(w, "  [OK] Engine %s at %s\n", r.Compiler.Engine, r.Compiler.EnginePath)
		}
	default:
		fmt.Fprintf(w, "  [ERROR] %s not found\n", r.Compiler.Command)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Layouts")
	if r.Layouts.Custom != "" {
		fmt.Fprintf(w, "  [OK] Custom directory: %s\n", r.Layouts.Custom)
	}
	for _, f := range r.Layouts.Formats {
		fmt.Fprintf(w, "  [OK] %s\n", f)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Directories")
	for _, d := range r.Dirs {
		state := "writable"
		if !d.Exists {
			state += ", will be created"
		}
		if d.Writable {
			fmt.Fprintf(w, "  [OK] %s: %s (%s)\n", d.Role, d.Path, state)
		} else {
			fmt.Fprintf(w, "  [ERROR] %s: %s (not writable)\n", d.Role, d.Path)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintln(w, "  [OK] Container: detected")
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to generate")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
