// Package controls provides the direct appliance controls: blocking toggles,
// gravity updates, log tailing, and Teleporter backup and restore.
package controls
