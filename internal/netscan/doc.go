// Package netscan discovers hosts on the local network and resolves their
// names against the appliance's own DNS server.
package netscan
