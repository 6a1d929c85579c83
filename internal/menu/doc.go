// Package menu drives the interactive console: a select loop dispatching to
// the same services the subcommands use.
package menu
