// Package cli provides the interactive StaffKeeper command-line client.
//
// It wires configuration, the local credential store, the network channel
// with its error pipeline, the session services and the route table into a
// REPL. Typical flow: restore the persisted session, start a background
// connectivity watcher, and execute user commands.
//
// Key features:
//   - Register / Login / Logout
//   - Guarded navigation between surfaces (goto, where)
//   - Employee directory: list, show, add, edit, delete
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
