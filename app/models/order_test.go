package models

import "testing"

func TestOrderCanTransition(t *testing.T) {
	tests := []struct {
		from string
		to   string
		want bool
	}{
		{from: OrderStatusPending, to: OrderStatusPaid, want: true},
		{from: OrderStatusPending, to: OrderStatusFailed, want: true},
		{from: OrderStatusPending, to: OrderStatusCancelled, want: true},
		{from: OrderStatusPending, to: OrderStatusShipped, want: false},
		{from: OrderStatusPaid, to: OrderStatusShipped, want: true},
		{from: OrderStatusPaid, to: OrderStatusPending, want: false},
		{from: OrderStatusPaid, to: OrderStatusCancelled, want: false},
		{from: OrderStatusShipped, to: OrderStatusDelivered, want: true},
		{from: OrderStatusShipped, to: OrderStatusPaid, want: false},
		{from: OrderStatusDelivered, to: OrderStatusShipped, want: false},
		{from: OrderStatusFailed, to: OrderStatusPaid, want: false},
		{from: OrderStatusCancelled, to: OrderStatusPending, want: false},
		{from: "bogus", to: OrderStatusPaid, want: false},
	}

	for _, tt := range tests {
		if got := OrderCanTransition(tt.from, tt.to); got != tt.want {
			t.Fatalf("OrderCanTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestPaymentIsTerminal(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{status: PaymentStatusPending, want: false},
		{status: PaymentStatusSuccess, want: true},
		{status: PaymentStatusFailed, want: true},
		{status: PaymentStatusRefunded, want: true},
	}

	for _, tt := range tests {
		p := Payment{Status: tt.status}
		if got := p.IsTerminal(); got != tt.want {
			t.Fatalf("IsTerminal() with status %q = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestUserIsAdmin(t *testing.T) {
	if (&User{Role: ROLE_USER}).IsAdmin() {
		t.Fatalf("expected plain user not to be admin")
	}
	if !(&User{Role: ROLE_ADMIN}).IsAdmin() {
		t.Fatalf("expected admin role to be admin")
	}
}
