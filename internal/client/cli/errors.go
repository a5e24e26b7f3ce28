package cli

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/loandesk/internal/client/api"
	"github.com/dmitrijs2005/loandesk/internal/client/services"
	"github.com/dmitrijs2005/loandesk/internal/common"
)

// describeError turns a command failure into the line shown to the user.
func describeError(err error) string {
	var (
		vErr  *services.ValidationError
		cdErr *services.CooldownError
		aErr  *api.Error
	)

	switch {
	case errors.As(err, &vErr):
		return fmt.Sprintf("%s: %s", vErr.Title, vErr.Message)
	case errors.As(err, &cdErr):
		return fmt.Sprintf("Resend available in %ds", cdErr.Remaining)
	case errors.Is(err, common.ErrUnauthorized):
		return "Your session has expired. Please sign in again."
	case errors.Is(err, common.ErrNotAuthenticated):
		return "Please sign in first (type 'signin')."
	case errors.Is(err, common.ErrAlreadyAuthenticated):
		return "You are already signed in. Type 'logout' to switch accounts."
	case errors.Is(err, common.ErrNoPendingEmail):
		return "No sign-in in progress. Type 'signin' to request a code."
	case errors.Is(err, common.ErrAlreadyEvaluated):
		return "This loan has already been evaluated. Type 'result' to see the decision."
	case errors.Is(err, common.ErrEvaluationInFlight):
		return "Evaluation in progress..."
	case errors.As(err, &aErr):
		if errors.Is(err, common.ErrUnavailable) {
			return aErr.Message + " (server unreachable)"
		}
		return aErr.Message
	default:
		return "Error: " + err.Error()
	}
}
