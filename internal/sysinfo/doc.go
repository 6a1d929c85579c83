// Package sysinfo samples host health metrics for the status screen.
package sysinfo
