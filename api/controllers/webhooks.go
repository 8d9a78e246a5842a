package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/freshmart-id/freshmart-backend/api/responses"
	"github.com/freshmart-id/freshmart-backend/api/validators"
	"github.com/freshmart-id/freshmart-backend/internal/payments"
	"github.com/freshmart-id/freshmart-backend/pkg/logger"
)

type paymentWebhookRequest struct {
	TransactionID     string    `json:"transaction_id" validate:"required"`
	OrderID           uuid.UUID `json:"order_id" validate:"required"`
	TransactionStatus string    `json:"transaction_status" validate:"required"`
	GrossAmountCents  int64     `json:"gross_amount_cents" validate:"omitempty,gt=0"`
}

// PaymentWebhook receives gateway notifications. The gateway retries until
// it sees 2xx, so handled-but-ignored outcomes still answer 200.
func PaymentWebhook(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload paymentWebhookRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.HandleGatewayEvent(r.Context(), payments.GatewayEvent{
			TransactionID:     payload.TransactionID,
			OrderID:           payload.OrderID,
			TransactionStatus: payload.TransactionStatus,
			GrossAmountCents:  payload.GrossAmountCents,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"signal":    result.Signal,
			"applied":   result.Applied,
			"duplicate": result.Duplicate,
		})
	}
}
