package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/freshmart-id/freshmart-backend/pkg/enums"
)

// Order is the durable checkout result driven through the payment/shipment
// state machine. Monetary fields are a snapshot; later discount or voucher
// edits never alter them.
type Order struct {
	ID                 uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	OrderNumber        string              `gorm:"column:order_number;not null;uniqueIndex"`
	UserID             uuid.UUID           `gorm:"column:user_id;type:uuid;not null;index"`
	StoreID            uuid.UUID           `gorm:"column:store_id;type:uuid;not null;index"`
	Status             enums.OrderStatus   `gorm:"column:status;type:text;not null;default:'waiting_payment'"`
	PaymentMethod      enums.PaymentMethod `gorm:"column:payment_method;type:text;not null"`
	PaymentStatus      enums.PaymentStatus `gorm:"column:payment_status;type:text;not null;default:'unpaid'"`
	SubtotalCents      int64               `gorm:"column:subtotal_cents;not null"`
	ShippingCostCents  int64               `gorm:"column:shipping_cost_cents;not null;default:0"`
	DiscountTotalCents int64               `gorm:"column:discount_total_cents;not null;default:0"`
	TotalCents         int64               `gorm:"column:total_cents;not null"`
	AddressLine        string              `gorm:"column:address_line;not null"`
	AddressLat         float64             `gorm:"column:address_lat;not null"`
	AddressLng         float64             `gorm:"column:address_lng;not null"`
	ShippingMethodID   uuid.UUID           `gorm:"column:shipping_method_id;type:uuid;not null"`
	DistanceKM         float64             `gorm:"column:distance_km;not null;default:0"`
	ExpiresAt          *time.Time          `gorm:"column:expires_at;index"`
	TrackingNumber     *string             `gorm:"column:tracking_number"`
	Notes              *string             `gorm:"column:notes"`
	ShippedAt          *time.Time          `gorm:"column:shipped_at"`
	ConfirmedAt        *time.Time          `gorm:"column:confirmed_at"`
	CancelledAt        *time.Time          `gorm:"column:cancelled_at"`
	User               *User               `gorm:"foreignKey:UserID"`
	Items              []OrderItem         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	AppliedVouchers    []AppliedVoucher    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	PaymentProofs      []PaymentProof      `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt          time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

func (o *Order) BeforeCreate(*gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
