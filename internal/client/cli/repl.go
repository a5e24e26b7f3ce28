package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	SignIn(ctx context.Context) error
	Verify(ctx context.Context) error
	Resend(ctx context.Context) error
	Cancel(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	List(ctx context.Context) error
	Apply(ctx context.Context) error
	Evaluate(ctx context.Context) error
	Result(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL starts a read-eval-print loop for the LoanDesk CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. The loop exits on EOF or context
// cancellation and when the user types "exit" or "quit".
//
//	Not signed in:
//	  - help           show available commands
//	  - signin         request a one-time code by email
//	  - verify         enter the code
//	  - resend         request a new code once the cooldown is over
//	  - cancel         abandon the sign-in
//	  - whoami         show the session
//	  - exit | quit    leave the program
//
//	Signed in:
//	  - help           show available commands
//	  - (l)ist         list your loan applications
//	  - apply          submit a new application
//	  - evaluate       request an underwriting decision
//	  - result         show a decision received earlier
//	  - whoami         show the session
//	  - logout         sign out
//	  - exit | quit    leave the program
//
// Errors returned by handlers are reported to the user and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}

		printlnFn(fmt.Sprintf("loandesk %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (l)ist, apply, evaluate, result, whoami, logout, exit")
			} else {
				printlnFn("Available commands: signin, verify, resend, cancel, whoami, exit")
			}

		case "signin":
			report(a.SignIn(ctx))

		case "verify":
			report(a.Verify(ctx))

		case "resend":
			report(a.Resend(ctx))

		case "cancel":
			report(a.Cancel(ctx))

		case "whoami":
			report(a.WhoAmI(ctx))

		case "l", "list":
			report(requireLogin(a, func() error { return a.List(ctx) }))

		case "apply":
			report(requireLogin(a, func() error { return a.Apply(ctx) }))

		case "evaluate":
			report(requireLogin(a, func() error { return a.Evaluate(ctx) }))

		case "result":
			report(requireLogin(a, func() error { return a.Result(ctx) }))

		case "logout":
			report(requireLogin(a, func() error { return a.Logout(ctx) }))

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func requireLogin(a execIface, fn func() error) error {
	if !a.isLoggedIn() {
		printlnFn("Please sign in first (type 'signin').")
		return nil
	}
	return fn()
}

func report(err error) {
	if err != nil {
		printlnFn(describeError(err))
	}
}
