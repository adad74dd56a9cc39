// Package cli provides the interactive locator console.
//
// It wires configuration, the local session database, the remote resource
// client and the services, and runs a REPL with one command per view:
//
//   - home: pick a home and see locations ranked by walking time
//   - location details, create, edit and delete
//   - home create, edit and delete
//   - sign in, sign up, sign out
//   - user management for admins
//
// While the home view is shown its queries are watched, so a change made by
// a command is reflected when the command finishes. A background watcher
// pings the server and shows online/offline in the prompt.
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
package cli
