package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/freshmart-id/freshmart-backend/pkg/db/models"
	"github.com/freshmart-id/freshmart-backend/pkg/enums"
)

// AddressInput is the delivery point captured at checkout.
type AddressInput struct {
	Line string
	Lat  float64
	Lng  float64
}

// ItemInput is one requested cart line.
type ItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// CheckoutInput is everything an order creation needs.
type CheckoutInput struct {
	UserID           uuid.UUID
	Address          AddressInput
	ShippingMethodID uuid.UUID
	PaymentMethod    enums.PaymentMethod
	Items            []ItemInput
	VoucherCodes     []string
	Notes            *string
}

// Actor identifies who drives a transition; the sweeper uses a zero UserID.
type Actor struct {
	UserID  uuid.UUID
	StoreID *uuid.UUID
	Role    enums.UserRole
}

// ShipInput carries the admin shipping request. TrackingNumber and Notes
// are both optional; in-person handoffs ship without a carrier reference.
type ShipInput struct {
	OrderID        uuid.UUID
	TrackingNumber string
	Notes          *string
	Actor          Actor
}

// CancelInput carries a cancellation with its reason.
type CancelInput struct {
	OrderID uuid.UUID
	Reason  string
	Expired bool
	Actor   Actor
}

// OrderItemDTO is one immutable priced line.
type OrderItemDTO struct {
	ProductID         uuid.UUID `json:"product_id"`
	ProductName       string    `json:"product_name"`
	Quantity          int       `json:"quantity"`
	UnitPriceCents    int64     `json:"unit_price_cents"`
	LineDiscountCents int64     `json:"line_discount_cents"`
	SubtotalCents     int64     `json:"subtotal_cents"`
}

// AppliedVoucherDTO is one voucher snapshot on an order.
type AppliedVoucherDTO struct {
	VoucherCode         string `json:"voucher_code"`
	DiscountAmountCents int64  `json:"discount_amount_cents"`
}

// OrderDTO is the API shape of an order.
type OrderDTO struct {
	ID                 uuid.UUID           `json:"id"`
	OrderNumber        string              `json:"order_number"`
	UserID             uuid.UUID           `json:"user_id"`
	CustomerName       string              `json:"customer_name,omitempty"`
	CustomerEmail      string              `json:"customer_email,omitempty"`
	StoreID            uuid.UUID           `json:"store_id"`
	Status             enums.OrderStatus   `json:"status"`
	PaymentMethod      enums.PaymentMethod `json:"payment_method"`
	PaymentStatus      enums.PaymentStatus `json:"payment_status"`
	SubtotalCents      int64               `json:"subtotal_cents"`
	ShippingCostCents  int64               `json:"shipping_cost_cents"`
	DiscountTotalCents int64               `json:"discount_total_cents"`
	TotalCents         int64               `json:"total_cents"`
	AddressLine        string              `json:"address_line"`
	DistanceKM         float64             `json:"distance_km"`
	ExpiresAt          *time.Time          `json:"expires_at,omitempty"`
	TrackingNumber     *string             `json:"tracking_number,omitempty"`
	Notes              *string             `json:"notes,omitempty"`
	Items              []OrderItemDTO      `json:"items"`
	AppliedVouchers    []AppliedVoucherDTO `json:"applied_vouchers,omitempty"`
	ShippedAt          *time.Time          `json:"shipped_at,omitempty"`
	ConfirmedAt        *time.Time          `json:"confirmed_at,omitempty"`
	CancelledAt        *time.Time          `json:"cancelled_at,omitempty"`
	CreatedAt          time.Time           `json:"created_at"`
}

// FromModel maps the persisted order into its DTO.
func FromModel(m *models.Order) *OrderDTO {
	if m == nil {
		return nil
	}
	dto := &OrderDTO{
		ID:                 m.ID,
		OrderNumber:        m.OrderNumber,
		UserID:             m.UserID,
		StoreID:            m.StoreID,
		Status:             m.Status,
		PaymentMethod:      m.PaymentMethod,
		PaymentStatus:      m.PaymentStatus,
		SubtotalCents:      m.SubtotalCents,
		ShippingCostCents:  m.ShippingCostCents,
		DiscountTotalCents: m.DiscountTotalCents,
		TotalCents:         m.TotalCents,
		AddressLine:        m.AddressLine,
		DistanceKM:         m.DistanceKM,
		ExpiresAt:          m.ExpiresAt,
		TrackingNumber:     m.TrackingNumber,
		Notes:              m.Notes,
		ShippedAt:          m.ShippedAt,
		ConfirmedAt:        m.ConfirmedAt,
		CancelledAt:        m.CancelledAt,
		CreatedAt:          m.CreatedAt,
	}
	if m.User != nil {
		dto.CustomerName = m.User.Name
		dto.CustomerEmail = m.User.Email
	}
	for _, item := range m.Items {
		dto.Items = append(dto.Items, OrderItemDTO{
			ProductID:         item.ProductID,
			ProductName:       item.ProductName,
			Quantity:          item.Quantity,
			UnitPriceCents:    item.UnitPriceCents,
			LineDiscountCents: item.LineDiscountCents,
			SubtotalCents:     item.SubtotalCents,
		})
	}
	for _, av := range m.AppliedVouchers {
		dto.AppliedVouchers = append(dto.AppliedVouchers, AppliedVoucherDTO{
			VoucherCode:         av.VoucherCode,
			DiscountAmountCents: av.DiscountAmountCents,
		})
	}
	return dto
}
