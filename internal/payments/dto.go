package payments

import (
	"github.com/google/uuid"

	"github.com/freshmart-id/freshmart-backend/pkg/enums"
)

// GatewayEvent is the normalized shape of a payment webhook after transport
// decoding. TransactionID is the gateway's unique id for the notification and
// drives deduplication.
type GatewayEvent struct {
	TransactionID     string
	OrderID           uuid.UUID
	TransactionStatus string
	GrossAmountCents  int64
}

// Result reports what the reconciler did with an event.
type Result struct {
	Signal    enums.PaymentSignal
	Duplicate bool
	Applied   bool
}
