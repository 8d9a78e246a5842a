package outbox

import (
	"time"

	"github.com/google/uuid"
)

// OrderEventData is the data block for every order lifecycle event.
type OrderEventData struct {
	OrderID     uuid.UUID `json:"orderId"`
	OrderNumber string    `json:"orderNumber"`
	StoreID     uuid.UUID `json:"storeId"`
	UserID      uuid.UUID `json:"userId"`
	Status      string    `json:"status"`
	TotalCents  int64     `json:"totalCents"`
	OccurredAt  time.Time `json:"occurredAt"`
}

// StockAdjustedData is the data block for manual inventory adjustments.
type StockAdjustedData struct {
	InventoryID uuid.UUID `json:"inventoryId"`
	StoreID     uuid.UUID `json:"storeId"`
	ProductID   uuid.UUID `json:"productId"`
	Delta       int       `json:"delta"`
	NewQuantity int       `json:"newQuantity"`
	Note        string    `json:"note,omitempty"`
}
