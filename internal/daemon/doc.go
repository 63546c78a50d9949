// Package daemon hosts the long-lived analysis controller. It enforces
// single-instance execution with a file lock, owns the session state machine
// and clip store, and exposes the operations the IPC layer forwards to it.
package daemon
