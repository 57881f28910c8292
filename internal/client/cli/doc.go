// Package cli provides the interactive TaskJournal command-line client.
//
// It wires configuration, the local session database, the gRPC client and an
// interactive REPL. A session saved by a previous run is restored on start,
// so a user stays logged in until they log out or the refresh token expires.
//
// Key features:
//   - register / login / logout
//   - add, inbox, today [date], completed, done <id>, undo <id>
//   - profile, edit, theme [name], passwd, delete
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
