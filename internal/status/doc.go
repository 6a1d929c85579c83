// Package status renders the appliance overview screen combining Pi-hole
// blocking state with host health metrics.
package status
