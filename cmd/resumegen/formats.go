package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	resumegen "github.com/alnah/go-resumegen"
	"github.com/alnah/go-resumegen/internal/assets"
)

// runFormatsCmd lists the built-in formats and the layouts each provides.
func runFormatsCmd(args []string, env *Environment) int {
	_, layouts, err := parseFormatsFlags(args, env.Stderr)
	if err != nil {
		return flagErrorCode(env.Stderr, err)
	}

	loader, err := assets.NewAssetResolver(layouts)
	if err != nil {
		return reportError(env.Stderr, err)
	}
	if err := printFormats(env.Stdout, loader); err != nil {
		return reportError(env.Stderr, err)
	}
	return ExitSuccess
}

func printFormats(w io.Writer, loader assets.LayoutLoader) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FORMAT\tEXT\tOUTPUT\tLAYOUTS")
	for _, f := range resumegen.Formats() {
		fc, err := resumegen.NewFormatContext(f, loader, assets.DefaultLayoutName)
		if err != nil {
			return err
		}
		output := "rendered"
		if f.Typeset {
			output = "typeset " + f.ArtifactExt
		}
		layouts := strings.Join(fc.Layouts(), ", ")
		if fc.HasLetter() {
			layouts += " (+letter)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", f.Name, f.Ext, output, layouts)
	}
	return tw.Flush()
}
