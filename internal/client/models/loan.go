// Package models defines the client-side view of loan applications and
// underwriting results returned by the LoanDesk backend.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// LoanType is the product a borrower applies for.
type LoanType string

const (
	LoanTypePersonal  LoanType = "Personal"
	LoanTypeHome      LoanType = "Home"
	LoanTypeCar       LoanType = "Car"
	LoanTypeEducation LoanType = "Education"
	LoanTypeBusiness  LoanType = "Business"
)

// LoanTypes lists the accepted loan types in display order.
var LoanTypes = []LoanType{LoanTypePersonal, LoanTypeHome, LoanTypeCar, LoanTypeEducation, LoanTypeBusiness}

// ParseLoanType matches s case-insensitively against LoanTypes.
func ParseLoanType(s string) (LoanType, bool) {
	s = strings.TrimSpace(s)
	for _, t := range LoanTypes {
		if strings.EqualFold(string(t), s) {
			return t, true
		}
	}
	return "", false
}

// LoanStatus is assigned by the server; the client never changes it.
type LoanStatus string

const (
	LoanStatusApplied  LoanStatus = "Applied"
	LoanStatusApproved LoanStatus = "Approved"
	LoanStatusRejected LoanStatus = "Rejected"
)

// Label renders the status; anything unknown is shown as pending review.
func (s LoanStatus) Label() string {
	switch s {
	case LoanStatusApproved, LoanStatusRejected:
		return string(s)
	default:
		return string(LoanStatusApplied)
	}
}

// Loan is a read-only projection of a server-side loan application.
type Loan struct {
	ID            string          `json:"_id"`
	LoanType      LoanType        `json:"loanType"`
	MonthlyIncome decimal.Decimal `json:"monthlyIncome"`
	Amount        decimal.Decimal `json:"amount"`
	Purpose       string          `json:"purpose"`
	Status        LoanStatus      `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
}

func (l Loan) String() string {
	created := "-"
	if !l.CreatedAt.IsZero() {
		created = l.CreatedAt.Local().Format("2006-01-02")
	}
	s := fmt.Sprintf("%s  %-9s  %-8s  amount %s  income %s  %s",
		l.ID, l.LoanType, l.Status.Label(), l.Amount.StringFixed(2), l.MonthlyIncome.StringFixed(2), created)
	if l.Purpose != "" {
		s += "  " + l.Purpose
	}
	return s
}

// Application is the loan form as submitted to /api/loan/apply. Numeric
// fields are sent as the strings the user typed.
type Application struct {
	PanOrAadhaar  string `json:"panOrAadhaar"`
	MonthlyIncome string `json:"monthlyIncome"`
	Purpose       string `json:"purpose"`
	BankAccount   string `json:"bankAccount"`
	LoanType      string `json:"loanType"`
	Amount        string `json:"amount"`
}
