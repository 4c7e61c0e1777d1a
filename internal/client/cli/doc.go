// Package cli provides the interactive userkeeper command-line client.
//
// It wires configuration, the HTTP API client and a small REPL. A background
// watcher probes the server and switches the prompt between online and
// offline modes.
//
// Commands: register, login, me, list, status <id> <0|1>, delete <id>,
// logout, exit.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
