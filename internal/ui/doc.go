// Package ui renders shell command lifecycle events for the interactive
// console, translating execshell notifications into human-readable log lines.
package ui
