package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/loandesk/internal/client/session"
)

// getSimpleText, getOptionalText and getCode are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText   = GetSimpleText
	getOptionalText = GetOptionalText
	getCode         = GetCode
)

// nowFn is a test seam for the clock used by WhoAmI.
var nowFn = time.Now

// SignIn prompts for an email address and asks the backend to send a code.
func (a *App) SignIn(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	if err := a.authService.RequestOTP(ctx, email); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "OTP sent to %s. Type 'verify' to enter it.\n", a.session.Snapshot().PendingEmail)
	return nil
}

// Verify prompts for the code and completes sign-in.
func (a *App) Verify(ctx context.Context) error {
	if a.session.Snapshot().PendingEmail == "" {
		// Let the service reset the flow and report it.
		return a.authService.VerifyOTP(ctx, "")
	}

	code, err := getCode(a.reader, a.out)
	if err != nil {
		return err
	}

	if err := a.authService.VerifyOTP(ctx, code); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Signed in as %s\n", a.session.Snapshot().ConfirmedEmail)
	return nil
}

// Resend requests a new code once the cooldown has run out.
func (a *App) Resend(ctx context.Context) error {
	if err := a.authService.ResendOTP(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "OTP resent successfully")
	return nil
}

// Cancel abandons a sign-in in progress.
func (a *App) Cancel(ctx context.Context) error {
	if a.session.Snapshot().PendingEmail == "" {
		fmt.Fprintln(a.out, "No sign-in in progress.")
		return nil
	}
	if err := a.authService.Cancel(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Sign-in cancelled.")
	return nil
}

// WhoAmI prints the current session. When the token is a JWT its expiry is
// shown as well.
func (a *App) WhoAmI(ctx context.Context) error {
	snap := a.session.Snapshot()

	switch {
	case snap.IsAuthenticated():
		fmt.Fprintf(a.out, "Signed in as %s\n", snap.ConfirmedEmail)
		if info, ok := session.InspectToken(snap.Token); ok && !info.ExpiresAt.IsZero() {
			if info.Expired(nowFn()) {
				fmt.Fprintf(a.out, "Token expired at %s\n", info.ExpiresAt.Local().Format(time.DateTime))
			} else {
				fmt.Fprintf(a.out, "Token expires at %s\n", info.ExpiresAt.Local().Format(time.DateTime))
			}
		}
	case snap.PendingEmail != "":
		fmt.Fprintf(a.out, "Waiting for the code sent to %s", snap.PendingEmail)
		if left := a.authService.CooldownRemaining(); left > 0 {
			fmt.Fprintf(a.out, " (resend in %ds)", left)
		}
		fmt.Fprintln(a.out)
	default:
		fmt.Fprintln(a.out, "Not signed in.")
	}
	return nil
}

// Logout signs out and forgets cached underwriting results.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.loanService.Reset()
	fmt.Fprintln(a.out, "Signed out.")
	return nil
}
