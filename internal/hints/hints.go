// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-resumegen/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForCompilerNotFound returns hints for a missing TeX toolchain binary.
func ForCompilerNotFound(command string) string {
	hints := []string{"install a TeX distribution providing " + command + " (TeX Live, MiKTeX)"}

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != ""

	if inCI || IsInContainer() {
		hints = append(hints, "use an image with texlive-xetex, or pass --no-compile")
	} else {
		hints = append(hints, "or pass --no-compile to skip PDF generation")
	}
	if os.Getenv("RESUMEGEN_ENGINE") == "" {
		hints = append(hints, "set RESUMEGEN_ENGINE to pick another engine")
	}

	return formatHints(hints)
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/resumegen/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/resumegen") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for build or output directory errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForLayoutNotFound returns hints listing the layouts a format provides.
func ForLayoutNotFound(available []string) string {
	if len(available) == 0 {
		return format("check --layouts points at a directory with {format}/base files")
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForUnknownFormat returns hints listing the supported formats.
func ForUnknownFormat(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("supported formats: " + strings.Join(available, ", "))
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
