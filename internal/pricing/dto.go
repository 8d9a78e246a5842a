package pricing

import (
	"github.com/google/uuid"

	"github.com/freshmart-id/freshmart-backend/pkg/db/models"
)

// LineInput is one cart line with its product snapshot already resolved.
type LineInput struct {
	Product  models.Product
	Quantity int
}

// QuoteInput carries everything the engine needs to price a cart bound to a
// store. DistanceKM comes from the locator; the clock is the service's.
type QuoteInput struct {
	StoreID        uuid.UUID
	DistanceKM     float64
	ShippingMethod *models.ShippingMethod
	Lines          []LineInput
	VoucherCodes   []string
}

// QuoteLine is one priced cart line. LineDiscountCents is the amount the
// selected store discount removed from the undiscounted line subtotal.
type QuoteLine struct {
	ProductID         uuid.UUID
	ProductName       string
	Quantity          int
	UnitPriceCents    int64
	LineDiscountCents int64
	SubtotalCents     int64
	DiscountID        *uuid.UUID
}

// AppliedVoucher is the outcome of one accepted voucher code.
type AppliedVoucher struct {
	Voucher             *models.Voucher
	DiscountAmountCents int64
	OnShipping          bool
}

// Quote is the full pricing result persisted onto the order at checkout.
type Quote struct {
	Lines              []QuoteLine
	SubtotalCents      int64
	ShippingCostCents  int64
	DiscountTotalCents int64
	TotalCents         int64
	AppliedVouchers    []AppliedVoucher
}
