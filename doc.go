// Package resumegen renders one structured résumé description into several
// target formats and compiles the typeset ones.
//
// # Quick Start
//
// Load a configuration, create a generator and run it:
//
//	cfg, err := config.LoadConfig("resumegen")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	gen, err := resumegen.NewGenerator(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := gen.Run(ctx)
//
// # Generation Pipeline
//
// One run follows these stages:
//
//  1. Load the document, business records and publications (YAML)
//  2. Substitute or drop the publications section
//  3. Bind the "updated" stamp
//  4. Snapshot the digests of existing typeset sources
//  5. Per format: transcode the document, render every section with its
//     layout, render the base layout, write the result
//  6. Per business (typeset format only): render the letter and a variant
//  7. Compile typeset sources that changed or lack an artifact
//  8. Copy deliverables into the output tree
//
// # Formats
//
// Four formats are built in: latex (typeset, compiled to PDF), html,
// markdown and plaintext. Documents are written with LaTeX inline markup;
// each non-typeset format rewrites it through an ordered table of regular
// expression substitutions before rendering.
//
// # Section Layouts
//
// Each section of the document names a tag holding its items. The layout
// used to render it is resolved per format: a type declared with the
// format's namespace ("latex:columns"), then a bare declared type, then the
// tag itself when a layout carries that name, then "default".
//
// # Custom Layouts
//
// Set layouts.path (or use WithLayoutLoader) to a directory laid out as
// {format}/base{ext}, {format}/{layout}{ext} and {format}/letter{ext}.
// Files found there replace the embedded ones; anything missing falls back
// to the embedded layouts.
package resumegen
