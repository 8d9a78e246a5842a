package pricing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/freshmart-id/freshmart-backend/pkg/db/models"
	"github.com/freshmart-id/freshmart-backend/pkg/enums"
	pkgerrors "github.com/freshmart-id/freshmart-backend/pkg/errors"
)

// validateVoucher checks window, usage and minimum purchase against the
// post-discount subtotal. It does not consume usage; that happens at payment
// confirmation.
func validateVoucher(v *models.Voucher, subtotalCents int64, now time.Time) error {
	if !v.ActiveAt(now) {
		return pkgerrors.New(pkgerrors.CodeVoucherInvalid, fmt.Sprintf("voucher %s is not active", v.Code))
	}
	if v.Exhausted() {
		return pkgerrors.New(pkgerrors.CodeVoucherInvalid, fmt.Sprintf("voucher %s has reached its usage limit", v.Code))
	}
	if v.MinPurchaseCents > 0 && subtotalCents < v.MinPurchaseCents {
		return pkgerrors.New(pkgerrors.CodeVoucherInvalid, fmt.Sprintf("voucher %s requires a minimum purchase", v.Code))
	}
	return nil
}

// voucherAmount computes the discount a voucher takes from its base amount:
// the whole subtotal, the matching lines' subtotal for product_specific, or
// the shipping cost for shipping vouchers.
func voucherAmount(v *models.Voucher, baseCents int64) int64 {
	if baseCents <= 0 {
		return 0
	}
	var amount int64
	switch v.ValueType {
	case enums.VoucherValuePercentage:
		pct := decimal.NewFromInt(v.Value).Div(decimal.NewFromInt(100))
		amount = decimal.NewFromInt(baseCents).Mul(pct).Floor().IntPart()
		if v.MaxDiscountCents > 0 && amount > v.MaxDiscountCents {
			amount = v.MaxDiscountCents
		}
	case enums.VoucherValueFixedAmount:
		amount = v.Value
	}
	return clamp(amount, baseCents)
}
