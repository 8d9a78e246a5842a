package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/freshmart-id/freshmart-backend/pkg/enums"
)

// Discount is a store-scoped automatic price reduction. A nil ProductID means
// the rule applies to every product in the store.
type Discount struct {
	ID               uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	StoreID          uuid.UUID          `gorm:"column:store_id;type:uuid;not null;index"`
	ProductID        *uuid.UUID         `gorm:"column:product_id;type:uuid;index"`
	Type             enums.DiscountType `gorm:"column:type;type:text;not null"`
	Value            int64              `gorm:"column:value;not null"`
	IsPercentage     bool               `gorm:"column:is_percentage;not null;default:false"`
	MinPurchaseCents int64              `gorm:"column:min_purchase_cents;not null;default:0"`
	MaxDiscountCents int64              `gorm:"column:max_discount_cents;not null;default:0"`
	BuyQuantity      int                `gorm:"column:buy_quantity;not null;default:0"`
	GetQuantity      int                `gorm:"column:get_quantity;not null;default:0"`
	StartsAt         time.Time          `gorm:"column:starts_at;not null"`
	EndsAt           time.Time          `gorm:"column:ends_at;not null"`
	CreatedAt        time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

func (d *Discount) BeforeCreate(*gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// ActiveAt reports whether the discount window covers the given instant.
func (d Discount) ActiveAt(at time.Time) bool {
	return !at.Before(d.StartsAt) && !at.After(d.EndsAt)
}

// AppliesTo reports whether the discount covers the given product.
func (d Discount) AppliesTo(productID uuid.UUID) bool {
	return d.ProductID == nil || *d.ProductID == productID
}
