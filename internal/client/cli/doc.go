// Package cli provides the interactive savings admin command-line client.
//
// It wires configuration, the local session store, the authenticated API
// client and the services into a REPL. On start a stored session is resumed,
// otherwise the user is asked to sign in.
//
// Key features:
//   - Sign in / sign up / Google sign-in / sign out
//   - Admin dashboard: users, roles, activation, analytics, settings, logs
//   - Optional background session check
//
// Whenever the API client reports an expired session, the REPL drops back
// to the signed-out state and prompts for credentials again.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
