package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/freshmart-id/freshmart-backend/pkg/enums"
)

// StockJournal is the append-only audit trail of inventory mutations. Rows are
// immutable once written; the signed sum per inventory row must equal its
// current quantity.
type StockJournal struct {
	ID          uuid.UUID              `gorm:"column:id;type:uuid;primaryKey"`
	InventoryID uuid.UUID              `gorm:"column:inventory_id;type:uuid;not null;index"`
	Type        enums.StockJournalType `gorm:"column:type;type:text;not null"`
	Quantity    int                    `gorm:"column:quantity;not null"`
	ActorUserID uuid.UUID              `gorm:"column:actor_user_id;type:uuid;not null"`
	Note        string                 `gorm:"column:note"`
	CreatedAt   time.Time              `gorm:"column:created_at;autoCreateTime"`
}

func (s *StockJournal) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
