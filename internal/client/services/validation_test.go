package services

import (
	"testing"

	"github.com/dmitrijs2005/loandesk/internal/client/models"
	"github.com/dmitrijs2005/loandesk/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validApplication() models.Application {
	return models.Application{
		PanOrAadhaar:  "ABCDE1234F",
		MonthlyIncome: "50000",
		LoanType:      "Personal",
		Amount:        "200000",
	}
}

func TestValidateApplication(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(a *models.Application)
		wantTitle string
	}{
		{name: "valid", mutate: func(a *models.Application) {}},
		{name: "amount 1001 accepted", mutate: func(a *models.Application) { a.Amount = "1001" }},
		{name: "amount 1000.01 accepted", mutate: func(a *models.Application) { a.Amount = "1000.01" }},
		{name: "income 5 accepted", mutate: func(a *models.Application) { a.MonthlyIncome = "5" }},
		{name: "missing pan", mutate: func(a *models.Application) { a.PanOrAadhaar = "  " }, wantTitle: "Missing Information"},
		{name: "missing income", mutate: func(a *models.Application) { a.MonthlyIncome = "" }, wantTitle: "Missing Information"},
		{name: "missing loan type", mutate: func(a *models.Application) { a.LoanType = "" }, wantTitle: "Missing Information"},
		{name: "missing amount", mutate: func(a *models.Application) { a.Amount = "" }, wantTitle: "Missing Information"},
		{name: "negative income", mutate: func(a *models.Application) { a.MonthlyIncome = "-5" }, wantTitle: "Invalid Income"},
		{name: "zero income", mutate: func(a *models.Application) { a.MonthlyIncome = "0" }, wantTitle: "Invalid Income"},
		{name: "text income", mutate: func(a *models.Application) { a.MonthlyIncome = "lots" }, wantTitle: "Invalid Income"},
		{name: "amount 1000 rejected", mutate: func(a *models.Application) { a.Amount = "1000" }, wantTitle: "Invalid Amount"},
		{name: "amount text rejected", mutate: func(a *models.Application) { a.Amount = "1k" }, wantTitle: "Invalid Amount"},
		{name: "unknown loan type", mutate: func(a *models.Application) { a.LoanType = "Boat" }, wantTitle: "Invalid Loan Type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := validApplication()
			tt.mutate(&app)

			_, err := ValidateApplication(app)
			if tt.wantTitle == "" {
				require.NoError(t, err)
				return
			}

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantTitle, verr.Title)
			assert.ErrorIs(t, err, common.ErrValidation)
		})
	}
}

func TestValidateApplication_Normalises(t *testing.T) {
	app := validApplication()
	app.LoanType = " home "
	app.Amount = " 1001 "
	app.Purpose = "  renovation "

	got, err := ValidateApplication(app)
	require.NoError(t, err)
	assert.Equal(t, "Home", got.LoanType)
	assert.Equal(t, "1001", got.Amount)
	assert.Equal(t, "renovation", got.Purpose)
}

func TestValidateCode(t *testing.T) {
	assert.NoError(t, validateCode("123456"))
	assert.ErrorIs(t, validateCode("12345"), common.ErrValidation)
	assert.ErrorIs(t, validateCode("1234567"), common.ErrValidation)
	assert.ErrorIs(t, validateCode(""), common.ErrValidation)
}
