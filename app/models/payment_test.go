package models

import "testing"

func TestIsTerminalPaymentStatus(t *testing.T) {
	for _, status := range []string{PaymentStatusSucceeded, PaymentStatusFailed, PaymentStatusCancelled} {
		if !IsTerminalPaymentStatus(status) {
			t.Fatalf("expected status %q to be terminal", status)
		}
	}
	for _, status := range []string{PaymentStatusPending, PaymentStatusProcessing, ""} {
		if IsTerminalPaymentStatus(status) {
			t.Fatalf("expected status %q to be non-terminal", status)
		}
	}
}

func TestOrderStatusForPayment(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: PaymentStatusSucceeded, want: OrderStatusPaid},
		{in: PaymentStatusFailed, want: OrderStatusPaymentFailed},
		{in: PaymentStatusCancelled, want: OrderStatusPaymentFailed},
		{in: PaymentStatusPending, want: ""},
		{in: PaymentStatusProcessing, want: ""},
	}

	for _, tt := range tests {
		if got := OrderStatusForPayment(tt.in); got != tt.want {
			t.Fatalf("OrderStatusForPayment(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestHasExternalReference(t *testing.T) {
	ref := "pi_123"
	empty := ""

	if (&Payment{}).HasExternalReference() {
		t.Fatalf("expected nil reference to report false")
	}
	if (&Payment{ExternalReference: &empty}).HasExternalReference() {
		t.Fatalf("expected empty reference to report false")
	}
	if !(&Payment{ExternalReference: &ref}).HasExternalReference() {
		t.Fatalf("expected non-empty reference to report true")
	}
}
