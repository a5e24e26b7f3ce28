package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/loandesk/internal/client/models"
)

// List prints the user's applications in the order the server returned them.
func (a *App) List(ctx context.Context) error {
	loans, err := a.loanService.List(ctx)
	if err != nil {
		return err
	}

	if len(loans) == 0 {
		fmt.Fprintln(a.out, "No loan applications yet.")
		return nil
	}

	for _, l := range loans {
		line := l.String()
		if res, ok := a.loanService.Result(l.ID); ok {
			line += fmt.Sprintf("  [evaluated: %s %g/100]", res.Decision, res.Score)
		}
		fmt.Fprintln(a.out, line)
	}
	return nil
}

// Apply walks the user through the application form and submits it.
func (a *App) Apply(ctx context.Context) error {
	var app models.Application

	types := make([]string, 0, len(models.LoanTypes))
	for _, t := range models.LoanTypes {
		types = append(types, string(t))
	}

	fields := []struct {
		prompt   string
		dst      *string
		optional bool
	}{
		{prompt: "PAN or Aadhaar number", dst: &app.PanOrAadhaar},
		{prompt: "Monthly income (₹)", dst: &app.MonthlyIncome},
		{prompt: "Loan type [" + strings.Join(types, ", ") + "]", dst: &app.LoanType},
		{prompt: "Loan amount (₹)", dst: &app.Amount},
		{prompt: "Purpose", dst: &app.Purpose, optional: true},
		{prompt: "Bank account", dst: &app.BankAccount, optional: true},
	}

	for _, f := range fields {
		read := getSimpleText
		if f.optional {
			read = getOptionalText
		}
		v, err := read(a.reader, f.prompt, a.out)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	sent, err := a.loanService.Submit(ctx, app)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Application submitted successfully! (%s loan, ₹%s)\n", sent.LoanType, sent.Amount)
	return nil
}

// Evaluate asks the underwriting service for a decision on one loan. A loan
// that already has a decision is refused.
func (a *App) Evaluate(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Loan id", a.out)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Evaluating...")
	res, err := a.loanService.Evaluate(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, res.String())
	return nil
}

// Result prints a decision received earlier in this session.
func (a *App) Result(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Loan id", a.out)
	if err != nil {
		return err
	}
	return a.printResult(id)
}

func (a *App) printResult(id string) error {
	res, ok := a.loanService.Result(id)
	if !ok {
		fmt.Fprintf(a.out, "No result for loan %s yet. Type 'evaluate' to request one.\n", strings.TrimSpace(id))
		return nil
	}
	fmt.Fprintln(a.out, res.String())
	return nil
}
