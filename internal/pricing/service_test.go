package pricing

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/freshmart-id/freshmart-backend/pkg/config"
	"github.com/freshmart-id/freshmart-backend/pkg/db/models"
	"github.com/freshmart-id/freshmart-backend/pkg/enums"
	pkgerrors "github.com/freshmart-id/freshmart-backend/pkg/errors"
	"gorm.io/gorm"
)

var testShipping = config.ShippingConfig{FreeDistanceKM: 5, RatePerKMCents: 2000}

func TestQuotePlainCart(t *testing.T) {
	product := testProduct("milk", 10_000)
	svc := newPricingService(t, &stubPricingRepo{})

	quote, err := svc.Quote(context.Background(), QuoteInput{
		StoreID:        uuid.New(),
		DistanceKM:     3,
		ShippingMethod: testMethod(5_000),
		Lines:          []LineInput{{Product: product, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if quote.SubtotalCents != 20_000 {
		t.Fatalf("expected subtotal 20000, got %d", quote.SubtotalCents)
	}
	if quote.ShippingCostCents != 5_000 {
		t.Fatalf("expected free-distance shipping 5000, got %d", quote.ShippingCostCents)
	}
	if quote.TotalCents != 25_000 {
		t.Fatalf("expected total 25000, got %d", quote.TotalCents)
	}
}

func TestQuoteShippingBeyondFreeDistance(t *testing.T) {
	product := testProduct("rice", 50_000)
	svc := newPricingService(t, &stubPricingRepo{})

	quote, err := svc.Quote(context.Background(), QuoteInput{
		DistanceKM:     7.3,
		ShippingMethod: testMethod(5_000),
		Lines:          []LineInput{{Product: product, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	// 2.3km past the threshold bills as 3 started km
	if quote.ShippingCostCents != 5_000+3*2_000 {
		t.Fatalf("expected shipping 11000, got %d", quote.ShippingCostCents)
	}
}

func TestQuotePicksHighestDiscountThenEarliest(t *testing.T) {
	product := testProduct("coffee", 10_000)
	now := time.Now()
	small := activeDiscount(enums.DiscountTypeNoRules, 10, true, now.Add(-time.Hour))
	big := activeDiscount(enums.DiscountTypeNoRules, 20, true, now)
	bigButLater := activeDiscount(enums.DiscountTypeNoRules, 20, true, now.Add(time.Hour))
	repo := &stubPricingRepo{discounts: []models.Discount{bigButLater, small, big}}
	svc := newPricingService(t, repo)

	quote, err := svc.Quote(context.Background(), QuoteInput{
		ShippingMethod: testMethod(0),
		Lines:          []LineInput{{Product: product, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	line := quote.Lines[0]
	if line.LineDiscountCents != 2_000 {
		t.Fatalf("expected 20%% discount 2000, got %d", line.LineDiscountCents)
	}
	if line.DiscountID == nil || *line.DiscountID != big.ID {
		t.Fatalf("expected earliest of the tied discounts to win")
	}
}

func TestQuoteWithMaxPriceClampsDiscount(t *testing.T) {
	product := testProduct("salmon", 100_000)
	d := activeDiscount(enums.DiscountTypeWithMaxPrice, 20, true, time.Now())
	d.MaxDiscountCents = 5_000
	svc := newPricingService(t, &stubPricingRepo{discounts: []models.Discount{d}})

	quote, err := svc.Quote(context.Background(), QuoteInput{
		ShippingMethod: testMethod(0),
		Lines:          []LineInput{{Product: product, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if quote.Lines[0].LineDiscountCents != 5_000 {
		t.Fatalf("expected clamp at 5000, got %d", quote.Lines[0].LineDiscountCents)
	}
}

func TestQuoteBuyXGetYFullBundlesOnly(t *testing.T) {
	product := testProduct("yogurt", 4_000)
	d := activeDiscount(enums.DiscountTypeBuyXGetY, 0, false, time.Now())
	d.BuyQuantity = 2
	d.GetQuantity = 1
	svc := newPricingService(t, &stubPricingRepo{discounts: []models.Discount{d}})

	quote, err := svc.Quote(context.Background(), QuoteInput{
		ShippingMethod: testMethod(0),
		Lines:          []LineInput{{Product: product, Quantity: 5}},
	})
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	// buy=2 get=1 on qty=5: floor(5/2)=2 free units, never 2.5
	if quote.Lines[0].LineDiscountCents != 2*4_000 {
		t.Fatalf("expected 2 free units (8000), got %d", quote.Lines[0].LineDiscountCents)
	}
	if quote.SubtotalCents != 3*4_000 {
		t.Fatalf("expected subtotal 12000, got %d", quote.SubtotalCents)
	}
}

func TestQuotePercentageVoucherClampedToMaxDiscount(t *testing.T) {
	product := testProduct("bundle", 100_000)
	voucher := &models.Voucher{
		ID:               uuid.New(),
		Code:             "SAVE20",
		Type:             enums.VoucherTypeReferral,
		ValueType:        enums.VoucherValuePercentage,
		Value:            20,
		MaxDiscountCents: 5_000,
		StartsAt:         time.Now().Add(-time.Hour),
		EndsAt:           time.Now().Add(time.Hour),
	}
	svc := newPricingService(t, &stubPricingRepo{vouchers: map[string]*models.Voucher{"SAVE20": voucher}})

	quote, err := svc.Quote(context.Background(), QuoteInput{
		ShippingMethod: testMethod(0),
		Lines:          []LineInput{{Product: product, Quantity: 1}},
		VoucherCodes:   []string{"SAVE20"},
	})
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	// min(20% of 100000, 5000) = 5000
	if quote.DiscountTotalCents != 5_000 {
		t.Fatalf("expected voucher discount 5000, got %d", quote.DiscountTotalCents)
	}
	if quote.TotalCents != 95_000 {
		t.Fatalf("expected total 95000, got %d", quote.TotalCents)
	}
}

func TestQuoteShippingVoucherFloorsAtZero(t *testing.T) {
	product := testProduct("bread", 10_000)
	voucher := &models.Voucher{
		ID:        uuid.New(),
		Code:      "FREESHIP",
		Type:      enums.VoucherTypeShipping,
		ValueType: enums.VoucherValueFixedAmount,
		Value:     50_000,
		StartsAt:  time.Now().Add(-time.Hour),
		EndsAt:    time.Now().Add(time.Hour),
	}
	svc := newPricingService(t, &stubPricingRepo{vouchers: map[string]*models.Voucher{"FREESHIP": voucher}})

	quote, err := svc.Quote(context.Background(), QuoteInput{
		DistanceKM:     2,
		ShippingMethod: testMethod(8_000),
		Lines:          []LineInput{{Product: product, Quantity: 1}},
		VoucherCodes:   []string{"FREESHIP"},
	})
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if quote.AppliedVouchers[0].DiscountAmountCents != 8_000 {
		t.Fatalf("shipping voucher must not exceed shipping cost, got %d", quote.AppliedVouchers[0].DiscountAmountCents)
	}
	if quote.TotalCents != 10_000 {
		t.Fatalf("expected total 10000, got %d", quote.TotalCents)
	}
}

func TestQuoteProductSpecificVoucherScopesToMatchingLines(t *testing.T) {
	apples := testProduct("apples", 10_000)
	steak := testProduct("steak", 90_000)
	voucher := &models.Voucher{
		ID:        uuid.New(),
		Code:      "APPLES50",
		Type:      enums.VoucherTypeProductSpecific,
		ValueType: enums.VoucherValuePercentage,
		Value:     50,
		ProductID: &apples.ID,
		StartsAt:  time.Now().Add(-time.Hour),
		EndsAt:    time.Now().Add(time.Hour),
	}
	svc := newPricingService(t, &stubPricingRepo{vouchers: map[string]*models.Voucher{"APPLES50": voucher}})

	quote, err := svc.Quote(context.Background(), QuoteInput{
		ShippingMethod: testMethod(0),
		Lines: []LineInput{
			{Product: apples, Quantity: 2},
			{Product: steak, Quantity: 1},
		},
		VoucherCodes: []string{"APPLES50"},
	})
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	// 50% of the apples lines (20000) only
	if quote.DiscountTotalCents != 10_000 {
		t.Fatalf("expected scoped discount 10000, got %d", quote.DiscountTotalCents)
	}
}

func TestQuoteRejectsSecondVoucherOfSameType(t *testing.T) {
	product := testProduct("tea", 30_000)
	mk := func(code string) *models.Voucher {
		return &models.Voucher{
			ID:        uuid.New(),
			Code:      code,
			Type:      enums.VoucherTypeReferral,
			ValueType: enums.VoucherValueFixedAmount,
			Value:     1_000,
			StartsAt:  time.Now().Add(-time.Hour),
			EndsAt:    time.Now().Add(time.Hour),
		}
	}
	svc := newPricingService(t, &stubPricingRepo{vouchers: map[string]*models.Voucher{
		"REF1": mk("REF1"),
		"REF2": mk("REF2"),
	}})

	_, err := svc.Quote(context.Background(), QuoteInput{
		ShippingMethod: testMethod(0),
		Lines:          []LineInput{{Product: product, Quantity: 1}},
		VoucherCodes:   []string{"REF1", "REF2"},
	})
	if !pkgerrors.IsCode(err, pkgerrors.CodeVoucherInvalid) {
		t.Fatalf("expected voucher invalid, got %v", err)
	}
}

func TestQuoteRejectsExpiredExhaustedAndUnknownVouchers(t *testing.T) {
	product := testProduct("cheese", 60_000)
	expired := &models.Voucher{
		ID:        uuid.New(),
		Code:      "OLD",
		Type:      enums.VoucherTypeReferral,
		ValueType: enums.VoucherValueFixedAmount,
		Value:     1_000,
		StartsAt:  time.Now().Add(-48 * time.Hour),
		EndsAt:    time.Now().Add(-24 * time.Hour),
	}
	exhausted := &models.Voucher{
		ID:         uuid.New(),
		Code:       "USED",
		Type:       enums.VoucherTypeReferral,
		ValueType:  enums.VoucherValueFixedAmount,
		Value:      1_000,
		MaxUsage:   5,
		UsageCount: 5,
		StartsAt:   time.Now().Add(-time.Hour),
		EndsAt:     time.Now().Add(time.Hour),
	}
	svc := newPricingService(t, &stubPricingRepo{vouchers: map[string]*models.Voucher{
		"OLD":  expired,
		"USED": exhausted,
	}})

	for _, code := range []string{"OLD", "USED", "NOPE"} {
		_, err := svc.Quote(context.Background(), QuoteInput{
			ShippingMethod: testMethod(0),
			Lines:          []LineInput{{Product: product, Quantity: 1}},
			VoucherCodes:   []string{code},
		})
		if !pkgerrors.IsCode(err, pkgerrors.CodeVoucherInvalid) {
			t.Fatalf("code %s: expected voucher invalid, got %v", code, err)
		}
	}
}

func TestQuoteTotalNeverNegative(t *testing.T) {
	product := testProduct("gum", 1_000)
	voucher := &models.Voucher{
		ID:        uuid.New(),
		Code:      "BIG",
		Type:      enums.VoucherTypeReferral,
		ValueType: enums.VoucherValueFixedAmount,
		Value:     999_999,
		StartsAt:  time.Now().Add(-time.Hour),
		EndsAt:    time.Now().Add(time.Hour),
	}
	svc := newPricingService(t, &stubPricingRepo{vouchers: map[string]*models.Voucher{"BIG": voucher}})

	quote, err := svc.Quote(context.Background(), QuoteInput{
		ShippingMethod: testMethod(0),
		Lines:          []LineInput{{Product: product, Quantity: 1}},
		VoucherCodes:   []string{"BIG"},
	})
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if quote.TotalCents != 0 {
		t.Fatalf("expected total clamped to 0, got %d", quote.TotalCents)
	}
}

func newPricingService(t *testing.T, repo pricingRepository) Service {
	t.Helper()
	svc, err := NewService(repo, testShipping)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func testProduct(name string, priceCents int64) models.Product {
	return models.Product{ID: uuid.New(), Name: name, PriceCents: priceCents}
}

func testMethod(baseCents int64) *models.ShippingMethod {
	return &models.ShippingMethod{ID: uuid.New(), Name: "standard", BaseCostCents: baseCents, Active: true}
}

func activeDiscount(dt enums.DiscountType, value int64, percentage bool, createdAt time.Time) models.Discount {
	return models.Discount{
		ID:           uuid.New(),
		Type:         dt,
		Value:        value,
		IsPercentage: percentage,
		StartsAt:     time.Now().Add(-time.Hour),
		EndsAt:       time.Now().Add(time.Hour),
		CreatedAt:    createdAt,
	}
}

type stubPricingRepo struct {
	discounts []models.Discount
	vouchers  map[string]*models.Voucher
}

func (s *stubPricingRepo) ListActiveDiscounts(_ context.Context, _ uuid.UUID, now time.Time) ([]models.Discount, error) {
	var out []models.Discount
	for _, d := range s.discounts {
		if d.ActiveAt(now) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *stubPricingRepo) FindVoucherByCode(_ context.Context, code string) (*models.Voucher, error) {
	v, ok := s.vouchers[code]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return v, nil
}
