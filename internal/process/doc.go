// Package process manages the external compiler's process tree.
package process
