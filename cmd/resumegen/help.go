package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: resumegen <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  generate   Render the document in every format and compile PDFs")
	fmt.Fprintln(w, "  watch      Generate, then regenerate on every input change")
	fmt.Fprintln(w, "  formats    List formats and their layouts")
	fmt.Fprintln(w, "  doctor     Check the toolchain, layouts and directories")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'resumegen help <command>' for details on a specific command.")
}

// printGenerateUsage prints usage for the generate command.
func printGenerateUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: resumegen generate [document.yaml] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render the document in every configured format, compile changed")
	fmt.Fprintln(w, "typeset sources and copy the results into the output directory.")
	fmt.Fprintln(w)
	printGenerateFlags(w)
}

// printWatchUsage prints usage for the watch command.
func printWatchUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: resumegen watch [document.yaml] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate once, then regenerate after the document, auxiliary files,")
	fmt.Fprintln(w, "config file or custom layouts change. Stop with Ctrl+C.")
	fmt.Fprintln(w)
	printGenerateFlags(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Watch:")
	fmt.Fprintln(w, "      --debounce <d>        Delay before rebuilding (default 300ms)")
}

func printGenerateFlags(w io.Writer) {
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  document   Document YAML file (default: input.document from config)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --businesses <path>   Business records YAML file")
	fmt.Fprintln(w, "      --publications <path> Publications YAML file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -f, --format <name>       Format to generate, repeatable: latex, html, markdown, plaintext")
	fmt.Fprintln(w, "  -b, --build-dir <path>    Directory for generated sources")
	fmt.Fprintln(w, "  -o, --output <path>       Output directory")
	fmt.Fprintln(w, "      --sentinel <s>        File name prefix of the primary document")
	fmt.Fprintln(w, "      --layouts <path>      Custom layout directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Compiler:")
	fmt.Fprintln(w, "      --engine <name>       Engine passed to the compiler (e.g. xelatex, lualatex)")
	fmt.Fprintln(w, "      --no-compile          Skip compiling typeset sources")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs")
	fmt.Fprintln(w, "      --log-format <s>      Log format: text, json")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  RESUMEGEN_CONFIG, RESUMEGEN_DOCUMENT, RESUMEGEN_BUILD_DIR, RESUMEGEN_OUTPUT_DIR,")
	fmt.Fprintln(w, "  RESUMEGEN_FORMATS, RESUMEGEN_ENGINE, RESUMEGEN_LAYOUTS (also read from .env)")
}

// printFormatsUsage prints usage for the formats command.
func printFormatsUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: resumegen formats [--layouts <path>]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List the built-in formats and the section layouts each provides.")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: resumegen doctor [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check the compiler toolchain, layout catalogs and directories.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -b, --build-dir <path>    Directory for generated sources")
	fmt.Fprintln(w, "  -o, --output <path>       Output directory")
	fmt.Fprintln(w, "      --layouts <path>      Custom layout directory")
	fmt.Fprintln(w, "      --json                Print results as JSON")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "generate":
		printGenerateUsage(env.Stdout)
	case "watch":
		printWatchUsage(env.Stdout)
	case "formats":
		printFormatsUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: resumegen version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: resumegen help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
