package payment

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ManuelReschke/CartFox/app/models"
)

func TestSettleSuccessGuard(t *testing.T) {
	recorded := decimal.RequireFromString("5000.00")

	tests := []struct {
		name    string
		status  string
		amount  decimal.Decimal
		wantErr error
	}{
		{name: "pending with matching amount", status: models.PaymentStatusPending, amount: decimal.RequireFromString("5000.00"), wantErr: nil},
		{name: "amount mismatch", status: models.PaymentStatusPending, amount: decimal.RequireFromString("4999.00"), wantErr: ErrAmountMismatch},
		{name: "already success", status: models.PaymentStatusSuccess, amount: decimal.RequireFromString("5000.00"), wantErr: ErrAlreadyProcessed},
		{name: "already failed", status: models.PaymentStatusFailed, amount: decimal.RequireFromString("5000.00"), wantErr: ErrAlreadyProcessed},
		{name: "already refunded", status: models.PaymentStatusRefunded, amount: decimal.RequireFromString("5000.00"), wantErr: ErrAlreadyProcessed},
		// the amount check runs first: a mismatching duplicate reports the mismatch
		{name: "terminal with mismatch", status: models.PaymentStatusSuccess, amount: decimal.RequireFromString("1.00"), wantErr: ErrAmountMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &models.Payment{Status: tt.status, Amount: recorded}
			err := settleSuccessGuard(p, tt.amount)
			if tt.wantErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && err != tt.wantErr {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSettleSuccessGuard_EquivalentDecimals(t *testing.T) {
	p := &models.Payment{Status: models.PaymentStatusPending, Amount: decimal.RequireFromString("5000.00")}
	if err := settleSuccessGuard(p, decimal.RequireFromString("5000")); err != nil {
		t.Fatalf("5000 and 5000.00 must compare equal, got %v", err)
	}
}

func TestSettleFailureOutcome(t *testing.T) {
	tests := []struct {
		status    string
		wantApply bool
		wantErr   error
	}{
		{status: models.PaymentStatusPending, wantApply: true, wantErr: nil},
		{status: models.PaymentStatusSuccess, wantApply: false, wantErr: nil},
		{status: models.PaymentStatusRefunded, wantApply: false, wantErr: nil},
		{status: models.PaymentStatusFailed, wantApply: false, wantErr: ErrAlreadyProcessed},
	}

	for _, tt := range tests {
		apply, err := settleFailureOutcome(tt.status)
		if apply != tt.wantApply || err != tt.wantErr {
			t.Fatalf("settleFailureOutcome(%q) = (%v, %v), want (%v, %v)",
				tt.status, apply, err, tt.wantApply, tt.wantErr)
		}
	}
}
