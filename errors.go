package resumegen

import (
	"errors"

	"github.com/alnah/go-resumegen/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	// Configuration errors.
	ErrUnknownFormat = errors.New("unknown format")

	// Input errors.
	ErrMissingField     = errors.New("document missing required field")
	ErrInvalidDocument  = errors.New("invalid document")
	ErrInvalidAuxiliary = errors.New("invalid auxiliary data")
)

// Errors raised while rendering, re-exported for errors.Is checks.
var (
	ErrInvalidRule          = pipeline.ErrInvalidRule
	ErrMissingDefaultLayout = pipeline.ErrMissingDefaultLayout
	ErrTemplateRender       = pipeline.ErrTemplateRender
	ErrMissingItems         = pipeline.ErrMissingItems
)
