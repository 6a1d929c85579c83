// Package querylog reads aggregate statistics from the Pi-hole FTL query
// database without ever writing to it.
package querylog
