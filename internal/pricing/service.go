package pricing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/freshmart-id/freshmart-backend/pkg/config"
	"github.com/freshmart-id/freshmart-backend/pkg/db/models"
	"github.com/freshmart-id/freshmart-backend/pkg/enums"
	pkgerrors "github.com/freshmart-id/freshmart-backend/pkg/errors"
)

type pricingRepository interface {
	ListActiveDiscounts(ctx context.Context, storeID uuid.UUID, now time.Time) ([]models.Discount, error)
	FindVoucherByCode(ctx context.Context, code string) (*models.Voucher, error)
}

// Service prices a cart: store discounts first, then vouchers, then the
// shipping curve. Pure computation over repo reads; nothing is written.
type Service interface {
	Quote(ctx context.Context, input QuoteInput) (*Quote, error)
}

type service struct {
	repo     pricingRepository
	shipping config.ShippingConfig
	now      func() time.Time
}

// NewService builds the pricing engine.
func NewService(repo pricingRepository, shipping config.ShippingConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("pricing repository required")
	}
	return &service{repo: repo, shipping: shipping, now: time.Now}, nil
}

func (s *service) Quote(ctx context.Context, input QuoteInput) (*Quote, error) {
	if len(input.Lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one line is required")
	}
	for _, line := range input.Lines {
		if line.Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "line quantity must be positive")
		}
	}
	if input.ShippingMethod == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shipping method is required")
	}

	now := s.now()
	discounts, err := s.repo.ListActiveDiscounts(ctx, input.StoreID, now)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list discounts")
	}

	quote := &Quote{}
	for _, line := range input.Lines {
		amount, chosen := bestDiscount(discounts, line.Product.ID, line.Product.PriceCents, line.Quantity, now)
		ql := QuoteLine{
			ProductID:         line.Product.ID,
			ProductName:       line.Product.Name,
			Quantity:          line.Quantity,
			UnitPriceCents:    line.Product.PriceCents,
			LineDiscountCents: amount,
			SubtotalCents:     line.Product.PriceCents*int64(line.Quantity) - amount,
		}
		if chosen != nil {
			id := chosen.ID
			ql.DiscountID = &id
		}
		quote.Lines = append(quote.Lines, ql)
		quote.SubtotalCents += ql.SubtotalCents
	}

	quote.ShippingCostCents = shippingCost(input.ShippingMethod.BaseCostCents, input.DistanceKM, s.shipping)

	if err := s.applyVouchers(ctx, input.VoucherCodes, quote, now); err != nil {
		return nil, err
	}

	total := quote.SubtotalCents - subtotalVoucherDiscount(quote) + quote.ShippingCostCents - shippingVoucherDiscount(quote)
	if total < 0 {
		total = 0
	}
	quote.TotalCents = total
	return quote, nil
}

func (s *service) applyVouchers(ctx context.Context, codes []string, quote *Quote, now time.Time) error {
	if len(codes) == 0 {
		return nil
	}

	seenTypes := make(map[enums.VoucherType]struct{}, len(codes))
	remainingSubtotal := quote.SubtotalCents
	remainingShipping := quote.ShippingCostCents

	for _, code := range codes {
		voucher, err := s.repo.FindVoucherByCode(ctx, code)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeVoucherInvalid, fmt.Sprintf("unknown voucher %s", code))
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load voucher")
		}
		if _, dup := seenTypes[voucher.Type]; dup {
			return pkgerrors.New(pkgerrors.CodeVoucherInvalid, fmt.Sprintf("only one %s voucher may be applied", voucher.Type))
		}
		seenTypes[voucher.Type] = struct{}{}

		if err := validateVoucher(voucher, quote.SubtotalCents, now); err != nil {
			return err
		}

		applied := AppliedVoucher{Voucher: voucher}
		switch voucher.Type {
		case enums.VoucherTypeShipping:
			applied.OnShipping = true
			applied.DiscountAmountCents = voucherAmount(voucher, remainingShipping)
			remainingShipping -= applied.DiscountAmountCents
		case enums.VoucherTypeProductSpecific:
			base := clamp(matchingLinesSubtotal(quote, voucher), remainingSubtotal)
			applied.DiscountAmountCents = voucherAmount(voucher, base)
			remainingSubtotal -= applied.DiscountAmountCents
		default:
			applied.DiscountAmountCents = voucherAmount(voucher, remainingSubtotal)
			remainingSubtotal -= applied.DiscountAmountCents
		}

		quote.AppliedVouchers = append(quote.AppliedVouchers, applied)
		quote.DiscountTotalCents += applied.DiscountAmountCents
	}
	return nil
}

// matchingLinesSubtotal is the post-discount subtotal of the lines a
// product_specific voucher covers. A nil product scope covers everything.
func matchingLinesSubtotal(quote *Quote, v *models.Voucher) int64 {
	if v.ProductID == nil {
		return quote.SubtotalCents
	}
	var sum int64
	for _, line := range quote.Lines {
		if line.ProductID == *v.ProductID {
			sum += line.SubtotalCents
		}
	}
	return sum
}

func subtotalVoucherDiscount(quote *Quote) int64 {
	var sum int64
	for _, av := range quote.AppliedVouchers {
		if !av.OnShipping {
			sum += av.DiscountAmountCents
		}
	}
	return sum
}

func shippingVoucherDiscount(quote *Quote) int64 {
	var sum int64
	for _, av := range quote.AppliedVouchers {
		if av.OnShipping {
			sum += av.DiscountAmountCents
		}
	}
	return sum
}
