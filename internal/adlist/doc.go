// Package adlist persists the ordered list of adlist source URLs for the
// audit workflows.
//
// It exposes Store, a file-backed list bound to an explicit path, with
// loading, atomic rewriting, and single-slot backups, plus helpers that
// classify comment and blank lines which are preserved verbatim.
package adlist
