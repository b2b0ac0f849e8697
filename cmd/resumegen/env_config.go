package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"

	"github.com/alnah/go-resumegen/internal/config"
	"github.com/alnah/go-resumegen/internal/fileutil"
)

const envPrefix = "RESUMEGEN_"

// envConfig holds configuration from environment variables.
// Provides CI-friendly overrides without editing the YAML config.
type envConfig struct {
	ConfigPath string   // RESUMEGEN_CONFIG: config file name or path
	Document   string   // RESUMEGEN_DOCUMENT: document YAML file
	BuildDir   string   // RESUMEGEN_BUILD_DIR: generated sources directory
	OutputDir  string   // RESUMEGEN_OUTPUT_DIR: output directory
	Formats    []string // RESUMEGEN_FORMATS: comma-separated format list
	Engine     string   // RESUMEGEN_ENGINE: typeset engine
	Layouts    string   // RESUMEGEN_LAYOUTS: custom layout directory
}

// knownEnvVars lists valid RESUMEGEN_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"RESUMEGEN_CONFIG":     true,
	"RESUMEGEN_DOCUMENT":   true,
	"RESUMEGEN_BUILD_DIR":  true,
	"RESUMEGEN_OUTPUT_DIR": true,
	"RESUMEGEN_FORMATS":    true,
	"RESUMEGEN_ENGINE":     true,
	"RESUMEGEN_LAYOUTS":    true,
}

// envSource looks variables up in the process environment first, then in
// an optional dotenv file. The process environment is never modified.
type envSource struct {
	dotenv map[string]string
}

// newEnvSource reads dotenvPath when it exists.
func newEnvSource(dotenvPath string) (*envSource, error) {
	src := &envSource{dotenv: map[string]string{}}
	if dotenvPath == "" || !fileutil.FileExists(dotenvPath) {
		return src, nil
	}
	values, err := godotenv.Read(dotenvPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dotenvPath, err)
	}
	src.dotenv = values
	return src, nil
}

func (s *envSource) get(key string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return s.dotenv[key]
}

// names returns every RESUMEGEN_* name defined in either source, sorted.
func (s *envSource) names() []string {
	seen := make(map[string]bool)
	for _, kv := range os.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, envPrefix) {
			seen[name] = true
		}
	}
	for name := range s.dotenv {
		if strings.HasPrefix(name, envPrefix) {
			seen[name] = true
		}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// loadEnvConfig reads every recognized RESUMEGEN_* value from src.
func loadEnvConfig(src *envSource) *envConfig {
	cfg := &envConfig{
		ConfigPath: src.get("RESUMEGEN_CONFIG"),
		Document:   src.get("RESUMEGEN_DOCUMENT"),
		BuildDir:   src.get("RESUMEGEN_BUILD_DIR"),
		OutputDir:  src.get("RESUMEGEN_OUTPUT_DIR"),
		Engine:     src.get("RESUMEGEN_ENGINE"),
		Layouts:    src.get("RESUMEGEN_LAYOUTS"),
	}
	if formats := src.get("RESUMEGEN_FORMATS"); formats != "" {
		for _, f := range strings.Split(formats, ",") {
			if f = strings.TrimSpace(f); f != "" {
				cfg.Formats = append(cfg.Formats, f)
			}
		}
	}
	return cfg
}

// warnUnknownEnvVars prints warnings for unrecognized RESUMEGEN_* variables.
// Helps catch typos like RESUMEGEN_FORMAT instead of RESUMEGEN_FORMATS.
func warnUnknownEnvVars(w io.Writer, src *envSource) {
	for _, name := range src.names() {
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig overrides file values with environment values.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Document != "" {
		cfg.Input.Document = env.Document
	}
	if env.BuildDir != "" {
		cfg.Build.Dir = env.BuildDir
	}
	if env.OutputDir != "" {
		cfg.Output.Dir = env.OutputDir
	}
	if len(env.Formats) > 0 {
		cfg.Formats = env.Formats
	}
	if env.Engine != "" {
		cfg.Compiler.Engine = env.Engine
	}
	if env.Layouts != "" {
		cfg.Layouts.Path = env.Layouts
	}
}
