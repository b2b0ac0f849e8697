// Package compile turns generated typeset sources into their compiled
// artifacts, recompiling only what a run actually changed.
//
// A run takes a Snapshot of the build directory before rendering. After
// rendering, a source is compiled when its digest differs from the snapshot
// or when its artifact is missing. The external compiler's own outcome is
// logged and otherwise ignored: a failed compile leaves the artifact stale
// or absent, so the next run selects the source again.
//
// Only top-level sources are tracked. Editing a shared fragment that the
// sources include does not trigger a recompile.
package compile
