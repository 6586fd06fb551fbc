// Package cli provides the interactive gynecare command-line client.
//
// It wires configuration, the local session database, the API client and the
// services, then runs a REPL. Typical flow: restore the stored session, ask
// the user to log in or register if there is none, and execute commands.
//
// Key features:
//   - Register / Login / Logout
//   - Profile view and edit
//   - Chats with the consultation assistant (list, open, new, send)
//   - Doctor directory and appointment booking
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// When the server rejects the session, the auth state drops to anonymous,
// a notice is printed and the user is asked to log in again.
package cli
