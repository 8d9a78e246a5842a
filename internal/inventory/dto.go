package inventory

import (
	"time"

	"github.com/google/uuid"

	"github.com/freshmart-id/freshmart-backend/pkg/db/models"
	"github.com/freshmart-id/freshmart-backend/pkg/enums"
)

// Line is a product quantity to check, reserve or release.
type Line struct {
	ProductID uuid.UUID
	Quantity  int
}

// LineCheck is the per-line result of a stock check.
type LineCheck struct {
	ProductID     uuid.UUID `json:"product_id"`
	OrderQuantity int       `json:"order_quantity"`
	StockQuantity int       `json:"stock_quantity"`
	Available     bool      `json:"available"`
}

// CheckResult aggregates a basket-level stock check. Advisory only; the
// binding check happens under row locks inside Reserve.
type CheckResult struct {
	Lines       []LineCheck `json:"lines"`
	HasAllStock bool        `json:"has_all_stock"`
}

// ShortfallItem describes one line that blocked a reservation.
type ShortfallItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Requested int       `json:"requested"`
	Available int       `json:"available"`
}

// AdjustInput is a manual stock correction by an admin.
type AdjustInput struct {
	InventoryID uuid.UUID
	Delta       int
	ActorUserID uuid.UUID
	Note        string
}

// JournalEntryDTO exposes one journal row in API responses.
type JournalEntryDTO struct {
	ID          uuid.UUID              `json:"id"`
	Type        enums.StockJournalType `json:"type"`
	Quantity    int                    `json:"quantity"`
	ActorUserID uuid.UUID              `json:"actor_user_id"`
	Note        string                 `json:"note,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
}

func journalFromModel(m models.StockJournal) JournalEntryDTO {
	return JournalEntryDTO{
		ID:          m.ID,
		Type:        m.Type,
		Quantity:    m.Quantity,
		ActorUserID: m.ActorUserID,
		Note:        m.Note,
		CreatedAt:   m.CreatedAt,
	}
}
