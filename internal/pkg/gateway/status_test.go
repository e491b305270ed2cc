package gateway

import (
	"errors"
	"testing"

	"github.com/FelixBrandt/ShopFox/app/models"
)

func TestMapStatus(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "requires_payment_method", want: models.PaymentStatusPending},
		{in: "requires_confirmation", want: models.PaymentStatusPending},
		{in: "requires_action", want: models.PaymentStatusPending},
		{in: "processing", want: models.PaymentStatusProcessing},
		{in: "requires_capture", want: models.PaymentStatusProcessing},
		{in: "succeeded", want: models.PaymentStatusSucceeded},
		{in: "failed", want: models.PaymentStatusFailed},
		{in: "canceled", want: models.PaymentStatusCancelled},
		{in: "SUCCEEDED", want: models.PaymentStatusSucceeded},
		{in: " processing ", want: models.PaymentStatusProcessing},
	}

	for _, tt := range tests {
		got, err := MapStatus(tt.in)
		if err != nil {
			t.Fatalf("MapStatus(%q) returned error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("MapStatus(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMapStatusUnknown(t *testing.T) {
	for _, in := range []string{"", "voided", "chargeback", "refunded"} {
		got, err := MapStatus(in)
		if !errors.Is(err, ErrUnknownGatewayStatus) {
			t.Fatalf("MapStatus(%q) = (%q, %v), want ErrUnknownGatewayStatus", in, got, err)
		}
		if got != "" {
			t.Fatalf("MapStatus(%q) returned status %q alongside error", in, got)
		}
	}
}
