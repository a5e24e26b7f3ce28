// Package cli provides the interactive LoanDesk command-line client.
//
// It wires configuration, the local session database, the API client and
// services, and an interactive REPL. Typical flow: sign in with an emailed
// one-time code, then list, submit and evaluate loan applications.
//
// Key features:
//   - Sign in with email + OTP, resend after a cooldown, cancel, logout
//   - Session survives restarts (SQLite)
//   - List applications / submit a new one
//   - Underwriting evaluation, one decision per loan
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See NewApp and runREPL for details.
package cli
