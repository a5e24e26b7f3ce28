package services

import (
	"errors"
	"strings"

	"github.com/dmitrijs2005/loandesk/internal/client/models"
	"github.com/dmitrijs2005/loandesk/internal/common"
	"github.com/shopspring/decimal"
)

// OTPLength is the number of characters in a verification code.
const OTPLength = 6

// MinLoanAmount is the exclusive lower bound for a requested amount.
var MinLoanAmount = decimal.NewFromInt(1000)

// ValidationError is a local input problem found before any network call.
type ValidationError struct {
	Title   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Title + ": " + e.Message
}

func (e *ValidationError) Unwrap() error {
	return common.ErrValidation
}

// IsValidation reports whether err is a local validation failure.
func IsValidation(err error) bool {
	return errors.Is(err, common.ErrValidation)
}

func validateEmail(email string) error {
	if email == "" {
		return &ValidationError{Title: "Email required", Message: "Please enter your email address"}
	}
	return nil
}

func validateCode(code string) error {
	if len([]rune(code)) != OTPLength {
		return &ValidationError{Title: "Invalid OTP", Message: "Please enter a 6-digit code"}
	}
	return nil
}

// ValidateApplication checks the form and returns it trimmed, with the loan
// type in canonical spelling.
func ValidateApplication(app models.Application) (models.Application, error) {
	app.PanOrAadhaar = strings.TrimSpace(app.PanOrAadhaar)
	app.MonthlyIncome = strings.TrimSpace(app.MonthlyIncome)
	app.Purpose = strings.TrimSpace(app.Purpose)
	app.BankAccount = strings.TrimSpace(app.BankAccount)
	app.LoanType = strings.TrimSpace(app.LoanType)
	app.Amount = strings.TrimSpace(app.Amount)

	if app.PanOrAadhaar == "" || app.MonthlyIncome == "" || app.LoanType == "" || app.Amount == "" {
		return app, &ValidationError{Title: "Missing Information", Message: "Please fill in all required fields."}
	}

	income, err := decimal.NewFromString(app.MonthlyIncome)
	if err != nil || !income.IsPositive() {
		return app, &ValidationError{Title: "Invalid Income", Message: "Monthly income must be a positive number."}
	}

	amount, err := decimal.NewFromString(app.Amount)
	if err != nil || !amount.GreaterThan(MinLoanAmount) {
		return app, &ValidationError{Title: "Invalid Amount", Message: "Loan amount must be greater than ₹1000."}
	}

	loanType, ok := models.ParseLoanType(app.LoanType)
	if !ok {
		names := make([]string, 0, len(models.LoanTypes))
		for _, t := range models.LoanTypes {
			names = append(names, string(t))
		}
		return app, &ValidationError{Title: "Invalid Loan Type", Message: "Choose one of " + strings.Join(names, ", ") + "."}
	}
	app.LoanType = string(loanType)

	return app, nil
}
