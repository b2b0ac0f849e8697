// Package config loads and validates resumegen configuration files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-resumegen/internal/fileutil"
	"github.com/alnah/go-resumegen/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidConfig   = errors.New("invalid config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
)

// DefaultName is the config name searched for when none is given.
const DefaultName = "resumegen"

// Field length limits.
const (
	MaxPathLength     = 4096
	MaxSentinelLength = 16
	MaxCommandLength  = 256
	MaxEngineLength   = 32
	MaxUpdatedLength  = 60 // "auto:" plus a date format
)

// Config holds all configuration for one generation run.
type Config struct {
	Input    InputConfig    `yaml:"input"`
	Build    BuildConfig    `yaml:"build"`
	Output   OutputConfig   `yaml:"output"`
	Formats  []string       `yaml:"formats"`
	Layouts  LayoutsConfig  `yaml:"layouts"`
	Compiler CompilerConfig `yaml:"compiler"`
	Updated  string         `yaml:"updated"` // "auto", "auto:FORMAT", "auto:preset" or literal text

	// Path is the file the config was loaded from, empty for defaults.
	Path string `yaml:"-"`
}

// InputConfig locates the document and its auxiliary data.
type InputConfig struct {
	Document     string `yaml:"document"`
	Businesses   string `yaml:"businesses"`   // Optional business records
	Publications string `yaml:"publications"` // Optional publications collection
}

// BuildConfig defines where generated sources are written.
type BuildConfig struct {
	Dir      string `yaml:"dir"`
	Sentinel string `yaml:"sentinel"` // File name prefix marking the primary document
}

// OutputConfig defines the distribution tree.
type OutputConfig struct {
	Dir         string `yaml:"dir"`
	VariantsDir string `yaml:"variantsDir"` // Sub-directory for business variants
}

// LayoutsConfig defines layout catalog options.
type LayoutsConfig struct {
	Path    string `yaml:"path"`    // Custom layout directory (empty = embedded only)
	Default string `yaml:"default"` // Fallback layout name
}

// CompilerConfig defines the external typeset toolchain.
type CompilerConfig struct {
	Enabled bool   `yaml:"enabled"`
	Command string `yaml:"command"`
	Engine  string `yaml:"engine"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Input:    InputConfig{Document: "resume.yaml"},
		Build:    BuildConfig{Dir: "build", Sentinel: "0_"},
		Output:   OutputConfig{Dir: "output", VariantsDir: "businesses"},
		Formats:  []string{"latex", "html", "markdown", "plaintext"},
		Layouts:  LayoutsConfig{Default: "default"},
		Compiler: CompilerConfig{Enabled: true, Command: "latexmk", Engine: "xelatex"},
		Updated:  "auto:MMMM YYYY",
	}
}

// Validate checks required fields, lengths and path safety.
// Called automatically by LoadConfig, but available for callers that
// build a Config in code.
func (c *Config) Validate() error {
	required := []struct{ field, value string }{
		{"input.document", c.Input.Document},
		{"build.dir", c.Build.Dir},
		{"build.sentinel", c.Build.Sentinel},
		{"output.dir", c.Output.Dir},
		{"output.variantsDir", c.Output.VariantsDir},
		{"layouts.default", c.Layouts.Default},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidConfig, r.field)
		}
	}

	lengths := []struct {
		field, value string
		max          int
	}{
		{"input.document", c.Input.Document, MaxPathLength},
		{"input.businesses", c.Input.Businesses, MaxPathLength},
		{"input.publications", c.Input.Publications, MaxPathLength},
		{"build.dir", c.Build.Dir, MaxPathLength},
		{"build.sentinel", c.Build.Sentinel, MaxSentinelLength},
		{"output.dir", c.Output.Dir, MaxPathLength},
		{"layouts.path", c.Layouts.Path, MaxPathLength},
		{"compiler.command", c.Compiler.Command, MaxCommandLength},
		{"compiler.engine", c.Compiler.Engine, MaxEngineLength},
		{"updated", c.Updated, MaxUpdatedLength},
	}
	for _, l := range lengths {
		if err := validateFieldLength(l.field, l.value, l.max); err != nil {
			return err
		}
	}

	// Both end up inside generated file names.
	if fileutil.IsFilePath(c.Build.Sentinel) {
		return fmt.Errorf("%w: build.sentinel %q must not contain path separators", ErrInvalidConfig, c.Build.Sentinel)
	}
	if fileutil.IsFilePath(c.Output.VariantsDir) || c.Output.VariantsDir == ".." || c.Output.VariantsDir == "." {
		return fmt.Errorf("%w: output.variantsDir %q must be a plain directory name", ErrInvalidConfig, c.Output.VariantsDir)
	}

	if len(c.Formats) == 0 {
		return fmt.Errorf("%w: formats must list at least one format", ErrInvalidConfig)
	}
	seen := make(map[string]bool, len(c.Formats))
	for _, f := range c.Formats {
		if seen[f] {
			return fmt.Errorf("%w: format %q listed twice", ErrInvalidConfig, f)
		}
		seen[f] = true
	}

	if c.Compiler.Enabled {
		if c.Compiler.Command == "" {
			return fmt.Errorf("%w: compiler.command is required when compiler is enabled", ErrInvalidConfig)
		}
		if !isEngineName(c.Compiler.Engine) {
			return fmt.Errorf("%w: compiler.engine %q must be a bare engine name", ErrInvalidConfig, c.Compiler.Engine)
		}
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// isEngineName accepts names such as "xelatex" or "pdflatex" that are passed
// to the toolchain as "-{engine}".
func isEngineName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields absent from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	cfg.Path = configPath

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths lists the files LoadConfig tries for a config name, in order:
// current directory, then the user config directory (~/.config/resumegen/).
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, DefaultName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file among SearchPaths(name).
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
