package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/freshmart-id/freshmart-backend/pkg/enums"
)

// Voucher is a code-based, user-applied price reduction. UsageCount is
// incremented only on payment confirmation, never speculatively.
type Voucher struct {
	ID               uuid.UUID              `gorm:"column:id;type:uuid;primaryKey"`
	Code             string                 `gorm:"column:code;not null;uniqueIndex"`
	Type             enums.VoucherType      `gorm:"column:type;type:text;not null"`
	ValueType        enums.VoucherValueType `gorm:"column:value_type;type:text;not null"`
	Value            int64                  `gorm:"column:value;not null"`
	MinPurchaseCents int64                  `gorm:"column:min_purchase_cents;not null;default:0"`
	MaxDiscountCents int64                  `gorm:"column:max_discount_cents;not null;default:0"`
	MaxUsage         int                    `gorm:"column:max_usage;not null;default:0"`
	UsageCount       int                    `gorm:"column:usage_count;not null;default:0"`
	ProductID        *uuid.UUID             `gorm:"column:product_id;type:uuid"`
	StartsAt         time.Time              `gorm:"column:starts_at;not null"`
	EndsAt           time.Time              `gorm:"column:ends_at;not null"`
	CreatedAt        time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}

func (v *Voucher) BeforeCreate(*gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// ActiveAt reports whether the voucher window covers the given instant.
func (v Voucher) ActiveAt(at time.Time) bool {
	return !at.Before(v.StartsAt) && !at.After(v.EndsAt)
}

// Exhausted reports whether the usage limit has been reached. A zero MaxUsage
// means unlimited.
func (v Voucher) Exhausted() bool {
	return v.MaxUsage > 0 && v.UsageCount >= v.MaxUsage
}
