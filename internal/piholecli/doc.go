// Package piholecli wraps the pihole management CLI behind typed operations.
//
// It exposes Client, which translates console actions such as status queries,
// blocking toggles, gravity updates, teleporter archives, and log tailing into
// execshell invocations, and typed errors describing failed operations.
package piholecli
