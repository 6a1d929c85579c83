// Package cli assembles the piu command tree: configuration loading, logger
// construction, and every feature command builder.
package cli
