package pricing

import (
	"bytes"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/freshmart-id/freshmart-backend/pkg/db/models"
	"github.com/freshmart-id/freshmart-backend/pkg/enums"
)

// discountAmount computes what a single discount removes from a line. Zero
// means the discount does not apply.
func discountAmount(d models.Discount, unitPriceCents int64, quantity int) int64 {
	lineSubtotal := unitPriceCents * int64(quantity)
	if lineSubtotal <= 0 {
		return 0
	}
	if d.MinPurchaseCents > 0 && lineSubtotal < d.MinPurchaseCents {
		return 0
	}

	switch d.Type {
	case enums.DiscountTypeNoRules:
		return clamp(flatAmount(d, lineSubtotal), lineSubtotal)

	case enums.DiscountTypeWithMaxPrice:
		amount := flatAmount(d, lineSubtotal)
		if d.MaxDiscountCents > 0 && amount > d.MaxDiscountCents {
			amount = d.MaxDiscountCents
		}
		return clamp(amount, lineSubtotal)

	case enums.DiscountTypeBuyXGetY:
		if d.BuyQuantity <= 0 || d.GetQuantity <= 0 {
			return 0
		}
		// Full bundles only. buy=2 get=1 on qty=5 yields floor(5/2)=2 free
		// units; the leftover unit earns nothing.
		free := (quantity / d.BuyQuantity) * d.GetQuantity
		if free > quantity {
			free = quantity
		}
		return clamp(int64(free)*unitPriceCents, lineSubtotal)
	}
	return 0
}

func flatAmount(d models.Discount, lineSubtotal int64) int64 {
	if !d.IsPercentage {
		return d.Value
	}
	pct := decimal.NewFromInt(d.Value).Div(decimal.NewFromInt(100))
	return decimal.NewFromInt(lineSubtotal).Mul(pct).Floor().IntPart()
}

func clamp(amount, max int64) int64 {
	if amount < 0 {
		return 0
	}
	if amount > max {
		return max
	}
	return amount
}

// bestDiscount picks at most one discount for a line: highest amount wins,
// ties go to the earliest-created discount, then the smaller id.
func bestDiscount(discounts []models.Discount, productID uuid.UUID, unitPriceCents int64, quantity int, now time.Time) (int64, *models.Discount) {
	var (
		bestAmount int64
		best       *models.Discount
	)
	for i := range discounts {
		d := &discounts[i]
		if !d.ActiveAt(now) || !d.AppliesTo(productID) {
			continue
		}
		amount := discountAmount(*d, unitPriceCents, quantity)
		if amount <= 0 {
			continue
		}
		if best == nil || amount > bestAmount || (amount == bestAmount && createdBefore(d, best)) {
			bestAmount = amount
			best = d
		}
	}
	return bestAmount, best
}

func createdBefore(a, b *models.Discount) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return bytes.Compare(a.ID[:], b.ID[:]) < 0
}
