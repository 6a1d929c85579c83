// Package netconf manages the appliance's static IP lease configuration and
// its system hostname.
package netconf
