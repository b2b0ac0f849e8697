package main

import (
	"errors"
	"os"

	resumegen "github.com/alnah/go-resumegen"
	"github.com/alnah/go-resumegen/internal/assets"
	"github.com/alnah/go-resumegen/internal/compile"
	"github.com/alnah/go-resumegen/internal/fileutil"
	"github.com/alnah/go-resumegen/internal/yamlutil"
)

// Exit codes for the resumegen CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful run
	ExitGeneral = 1 // General/unexpected error, including template errors
	ExitUsage   = 2 // Invalid flags, config, document or layouts
	ExitIO      = 3 // File not found, permission denied, write failures
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, yamlutil.ErrReadFile) ||
		errors.Is(err, fileutil.ErrWriteFile) ||
		errors.Is(err, fileutil.ErrCopyFile) ||
		errors.Is(err, compile.ErrSnapshot) ||
		errors.Is(err, assets.ErrAssetRead) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if resumegen.IsConfigError(err) ||
		errors.Is(err, resumegen.ErrMissingField) ||
		errors.Is(err, resumegen.ErrInvalidDocument) ||
		errors.Is(err, resumegen.ErrInvalidAuxiliary) ||
		errors.Is(err, yamlutil.ErrNilData) ||
		errors.Is(err, yamlutil.ErrInputTooLarge) ||
		errors.Is(err, ErrTooManyArgs) ||
		errors.Is(err, ErrInvalidLogFormat) {
		return ExitUsage
	}

	return ExitGeneral
}
