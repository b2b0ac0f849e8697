package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	flag "github.com/spf13/pflag"

	resumegen "github.com/alnah/go-resumegen"
	"github.com/alnah/go-resumegen/internal/config"
	"github.com/alnah/go-resumegen/internal/hints"
)

// ErrTooManyArgs indicates more than one document was given.
var ErrTooManyArgs = errors.New("too many arguments")

// runGenerateCmd runs one generation and returns an exit code.
func runGenerateCmd(ctx context.Context, args []string, env *Environment) int {
	flags, positional, err := parseGenerateFlags("generate", args, printGenerateUsage, env.Stderr)
	if err != nil {
		return flagErrorCode(env.Stderr, err)
	}

	logger, err := newLogger(env.Stderr, flags.common)
	if err != nil {
		return reportError(env.Stderr, err)
	}

	gen, err := newGenerator(flags, positional, env, logger)
	if err != nil {
		return reportError(env.Stderr, err)
	}

	res, err := gen.Run(ctx)
	if err != nil {
		return reportError(env.Stderr, err)
	}
	printResult(env.Stdout, res, flags.common.quiet)
	return ExitSuccess
}

// newGenerator resolves configuration and builds a Generator.
func newGenerator(flags *generateFlags, positional []string, env *Environment, logger *slog.Logger) (*resumegen.Generator, error) {
	cfg, err := loadConfig(flags, positional, env)
	if err != nil {
		return nil, err
	}
	logger.Debug("configuration resolved",
		slog.String("config", cfg.Path),
		slog.String("document", cfg.Input.Document),
		slog.Any("formats", cfg.Formats),
	)

	opts := []resumegen.Option{
		resumegen.WithLogger(logger),
		resumegen.WithClock(env.Now),
	}
	if env.Runner != nil {
		opts = append(opts, resumegen.WithRunner(env.Runner))
	}
	return resumegen.NewGenerator(cfg, opts...)
}

// loadConfig resolves configuration.
// Precedence: CLI flags > env vars > config file > defaults.
func loadConfig(flags *generateFlags, positional []string, env *Environment) (*config.Config, error) {
	if len(positional) > 1 {
		return nil, fmt.Errorf("%w: expected at most one document, got %d", ErrTooManyArgs, len(positional))
	}

	src, err := newEnvSource(env.DotEnv)
	if err != nil {
		return nil, err
	}
	warnUnknownEnvVars(env.Stderr, src)
	envCfg := loadEnvConfig(src)

	name := flags.common.config
	if name == "" {
		name = envCfg.ConfigPath
	}
	cfg, err := loadConfigFile(name)
	if err != nil {
		return nil, err
	}

	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, positional, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadConfigFile loads name, or the default config name when empty.
// Only an explicitly requested config must exist.
func loadConfigFile(name string) (*config.Config, error) {
	if name != "" {
		cfg, err := config.LoadConfig(name)
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
		}
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		return cfg, nil
	}

	cfg, err := config.LoadConfig(config.DefaultName)
	if errors.Is(err, config.ErrConfigNotFound) {
		return config.DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags applies CLI flags and the positional document to cfg (CLI wins).
func mergeFlags(flags *generateFlags, positional []string, cfg *config.Config) {
	if len(positional) == 1 {
		cfg.Input.Document = positional[0]
	}
	if flags.input.businesses != "" {
		cfg.Input.Businesses = flags.input.businesses
	}
	if flags.input.publications != "" {
		cfg.Input.Publications = flags.input.publications
	}
	if len(flags.build.formats) > 0 {
		cfg.Formats = flags.build.formats
	}
	if flags.build.buildDir != "" {
		cfg.Build.Dir = flags.build.buildDir
	}
	if flags.build.output != "" {
		cfg.Output.Dir = flags.build.output
	}
	if flags.build.sentinel != "" {
		cfg.Build.Sentinel = flags.build.sentinel
	}
	if flags.build.layouts != "" {
		cfg.Layouts.Path = flags.build.layouts
	}
	if flags.compiler.engine != "" {
		cfg.Compiler.Engine = flags.compiler.engine
	}
	if flags.compiler.noCompile {
		cfg.Compiler.Enabled = false
	}
}

// printResult lists the distributed files.
func printResult(w io.Writer, res *resumegen.Result, quiet bool) {
	if quiet {
		return
	}
	for _, p := range res.Placements {
		fmt.Fprintln(w, p.Target)
	}
	fmt.Fprintf(w, "%d generated, %d compiled, %d distributed\n",
		len(res.Sources), len(res.Compiled), len(res.Placements))
}

// reportError prints err and returns its exit code.
func reportError(w io.Writer, err error) int {
	fmt.Fprintf(w, "error: %v\n", err)
	return exitCodeFor(err)
}

// flagErrorCode reports a flag parsing error and maps it to an exit code.
// For --help, pflag has already printed the usage.
func flagErrorCode(w io.Writer, err error) int {
	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	fmt.Fprintf(w, "error: %v\n", err)
	return ExitUsage
}
