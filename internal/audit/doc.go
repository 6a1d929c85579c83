// Package audit implements the adlist audit-and-repair workflow used by the
// piu console.
//
// It exposes CommandBuilder for wiring the audit Cobra command, Service for
// driving the workflow programmatically, and supporting abstractions for the
// list store, reachability probing, and operator confirmation collaborators.
package audit
