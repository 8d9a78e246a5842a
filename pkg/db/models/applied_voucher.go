package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppliedVoucher snapshots what a voucher actually contributed to one order,
// independent of later voucher changes. Consumed flips exactly once, when the
// order's payment is confirmed and the voucher usage counter is incremented.
type AppliedVoucher struct {
	ID                  uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	OrderID             uuid.UUID `gorm:"column:order_id;type:uuid;not null;index"`
	VoucherID           uuid.UUID `gorm:"column:voucher_id;type:uuid;not null;index"`
	VoucherCode         string    `gorm:"column:voucher_code;not null"`
	DiscountAmountCents int64     `gorm:"column:discount_amount_cents;not null"`
	Consumed            bool      `gorm:"column:consumed;not null;default:false"`
	CreatedAt           time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (a *AppliedVoucher) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
