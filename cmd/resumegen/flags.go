package main

import (
	"io"
	"time"

	flag "github.com/spf13/pflag"
)

// defaultDebounce delays a watch rebuild until edits settle.
const defaultDebounce = 300 * time.Millisecond

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config    string
	quiet     bool
	verbose   bool
	logFormat string
}

// inputFlags locate the document's auxiliary data.
type inputFlags struct {
	businesses   string
	publications string
}

// buildFlags control generated and distributed files.
type buildFlags struct {
	formats  []string
	buildDir string
	output   string
	sentinel string
	layouts  string
}

// compilerFlags control the typeset toolchain.
type compilerFlags struct {
	engine    string
	noCompile bool
}

// generateFlags holds all flags for the generate and watch commands.
type generateFlags struct {
	common   commonFlags
	input    inputFlags
	build    buildFlags
	compiler compilerFlags
	debounce time.Duration // watch only
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs")
	fs.StringVar(&f.logFormat, "log-format", "text", "log format: text, json")
}

func addInputFlags(fs *flag.FlagSet, f *inputFlags) {
	fs.StringVar(&f.businesses, "businesses", "", "business records YAML file")
	fs.StringVar(&f.publications, "publications", "", "publications YAML file")
}

func addBuildFlags(fs *flag.FlagSet, f *buildFlags) {
	fs.StringSliceVarP(&f.formats, "format", "f", nil, "formats to generate (repeatable)")
	fs.StringVarP(&f.buildDir, "build-dir", "b", "", "directory for generated sources")
	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.StringVar(&f.sentinel, "sentinel", "", "file name prefix of the primary document")
	fs.StringVar(&f.layouts, "layouts", "", "custom layout directory")
}

func addCompilerFlags(fs *flag.FlagSet, f *compilerFlags) {
	fs.StringVar(&f.engine, "engine", "", "typeset engine passed to the compiler (e.g. xelatex)")
	fs.BoolVar(&f.noCompile, "no-compile", false, "skip compiling typeset sources")
}

// parseGenerateFlags parses generate (or watch) flags and returns positional args.
func parseGenerateFlags(name string, args []string, usage func(io.Writer), stderr io.Writer) (*generateFlags, []string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &generateFlags{}

	addCommonFlags(fs, &f.common)
	addInputFlags(fs, &f.input)
	addBuildFlags(fs, &f.build)
	addCompilerFlags(fs, &f.compiler)
	if name == "watch" {
		fs.DurationVar(&f.debounce, "debounce", defaultDebounce, "delay before rebuilding after a change")
	}

	fs.Usage = func() { usage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseDoctorFlags parses doctor flags.
func parseDoctorFlags(args []string, stderr io.Writer) (*commonFlags, *buildFlags, bool, error) {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(stderr)
	common := &commonFlags{}
	build := &buildFlags{}
	var jsonOutput bool

	addCommonFlags(fs, common)
	fs.StringVarP(&build.buildDir, "build-dir", "b", "", "directory for generated sources")
	fs.StringVarP(&build.output, "output", "o", "", "output directory")
	fs.StringVar(&build.layouts, "layouts", "", "custom layout directory")
	fs.BoolVar(&jsonOutput, "json", false, "print results as JSON")
	fs.Usage = func() { printDoctorUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, false, err
	}
	return common, build, jsonOutput, nil
}

// parseFormatsFlags parses formats flags.
func parseFormatsFlags(args []string, stderr io.Writer) (*commonFlags, string, error) {
	fs := flag.NewFlagSet("formats", flag.ContinueOnError)
	fs.SetOutput(stderr)
	common := &commonFlags{}
	var layouts string

	addCommonFlags(fs, common)
	fs.StringVar(&layouts, "layouts", "", "custom layout directory")
	fs.Usage = func() { printFormatsUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, "", err
	}
	return common, layouts, nil
}
