package gateway

import (
	"fmt"
	"strings"

	"github.com/FelixBrandt/ShopFox/app/models"
)

// ErrUnknownGatewayStatus marks a gateway status value outside the known
// vocabulary. Callers must treat it as a failure, not fall back to a default,
// since a wrong guess here would mis-transition the owning order.
var ErrUnknownGatewayStatus = fmt.Errorf("unknown gateway payment status")

// MapStatus translates the gateway's status vocabulary to the internal
// payment status enum. The mapping is a closed table.
func MapStatus(externalStatus string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(externalStatus)) {
	case "requires_payment_method", "requires_confirmation", "requires_action":
		return models.PaymentStatusPending, nil
	case "processing", "requires_capture":
		return models.PaymentStatusProcessing, nil
	case "succeeded":
		return models.PaymentStatusSucceeded, nil
	case "failed":
		return models.PaymentStatusFailed, nil
	case "canceled":
		return models.PaymentStatusCancelled, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownGatewayStatus, externalStatus)
	}
}
