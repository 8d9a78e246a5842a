package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/freshmart-id/freshmart-backend/pkg/enums"
)

// PaymentProof references a manually uploaded transfer receipt. The image
// itself lives in the external media service; only the URL is stored here.
type PaymentProof struct {
	ID         uuid.UUID                `gorm:"column:id;type:uuid;primaryKey"`
	OrderID    uuid.UUID                `gorm:"column:order_id;type:uuid;not null;index"`
	UserID     uuid.UUID                `gorm:"column:user_id;type:uuid;not null"`
	ImageURL   string                   `gorm:"column:image_url;not null"`
	Status     enums.PaymentProofStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	Notes      *string                  `gorm:"column:notes"`
	ReviewedBy *uuid.UUID               `gorm:"column:reviewed_by;type:uuid"`
	ReviewedAt *time.Time               `gorm:"column:reviewed_at"`
	CreatedAt  time.Time                `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time                `gorm:"column:updated_at;autoUpdateTime"`
}

func (p *PaymentProof) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
