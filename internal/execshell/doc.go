// Package execshell centralizes shell command execution for the piu console.
//
// It defines ShellCommand and ExecutionResult value types, a CommandRunner
// abstraction backed by os/exec, and a ShellExecutor that logs lifecycle
// events while invoking the pihole management CLI and the supporting system
// tools (tail, systemctl, nmap, hostnamectl).
package execshell
