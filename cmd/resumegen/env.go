package main

import (
	"io"
	"os"
	"time"

	"github.com/alnah/go-resumegen/internal/compile"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer
	Runner compile.Runner // Typeset toolchain; nil runs the real binary
	DotEnv string         // Optional dotenv file read for RESUMEGEN_* values
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		DotEnv: ".env",
	}
}
