package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLoanType(t *testing.T) {
	got, ok := ParseLoanType(" home ")
	require.True(t, ok)
	assert.Equal(t, LoanTypeHome, got)

	_, ok = ParseLoanType("Boat")
	assert.False(t, ok)

	_, ok = ParseLoanType("")
	assert.False(t, ok)
}

func TestLoanStatus_Label(t *testing.T) {
	assert.Equal(t, "Approved", LoanStatusApproved.Label())
	assert.Equal(t, "Rejected", LoanStatusRejected.Label())
	assert.Equal(t, "Applied", LoanStatusApplied.Label())
	assert.Equal(t, "Applied", LoanStatus("UnderReview").Label())
}

func TestLoan_UnmarshalServerShape(t *testing.T) {
	raw := `{
		"_id": "L1",
		"loanType": "Car",
		"monthlyIncome": 45000,
		"amount": "250000.50",
		"purpose": "new hatchback",
		"status": "Applied",
		"createdAt": "2024-03-05T10:15:00.000Z"
	}`

	var l Loan
	require.NoError(t, json.Unmarshal([]byte(raw), &l))

	assert.Equal(t, "L1", l.ID)
	assert.Equal(t, LoanTypeCar, l.LoanType)
	assert.True(t, l.MonthlyIncome.Equal(decimal.NewFromInt(45000)))
	assert.True(t, l.Amount.Equal(decimal.RequireFromString("250000.5")))
	assert.Equal(t, LoanStatusApplied, l.Status)
	assert.Equal(t, time.Date(2024, 3, 5, 10, 15, 0, 0, time.UTC), l.CreatedAt.UTC())
}

func TestLoan_String(t *testing.T) {
	l := Loan{ID: "L9", LoanType: LoanTypeHome, Amount: decimal.NewFromInt(5000), MonthlyIncome: decimal.NewFromInt(100), Purpose: "roof"}
	s := l.String()
	assert.Contains(t, s, "L9")
	assert.Contains(t, s, "Applied")
	assert.Contains(t, s, "amount 5000.00")
	assert.Contains(t, s, "income 100.00")
	assert.Contains(t, s, "roof")
}

func TestApplication_JSONKeys(t *testing.T) {
	b, err := json.Marshal(Application{
		PanOrAadhaar:  "ABCDE1234F",
		MonthlyIncome: "5",
		LoanType:      "Personal",
		Amount:        "1001",
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"panOrAadhaar": "ABCDE1234F",
		"monthlyIncome": "5",
		"purpose": "",
		"bankAccount": "",
		"loanType": "Personal",
		"amount": "1001"
	}`, string(b))
}

func TestUnderwritingResult_String(t *testing.T) {
	u := UnderwritingResult{Decision: "Approved", Score: 72, Reasons: []string{"income sufficient"}}
	s := u.String()
	assert.Contains(t, s, "Decision: Approved")
	assert.Contains(t, s, "Score: 72/100")
	assert.Contains(t, s, "  - income sufficient")
}
