package pricing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/freshmart-id/freshmart-backend/pkg/db/models"
)

// Repository loads the discount and voucher definitions the engine prices
// against. It never writes; usage consumption lives with the order flow.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListActiveDiscounts returns the store's discounts whose window covers now.
func (r *Repository) ListActiveDiscounts(ctx context.Context, storeID uuid.UUID, now time.Time) ([]models.Discount, error) {
	var rows []models.Discount
	err := r.db.WithContext(ctx).
		Where("store_id = ? AND starts_at <= ? AND ends_at >= ?", storeID, now, now).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

// FindVoucherByCode loads a voucher regardless of validity; the engine
// reports precise rejection reasons itself.
func (r *Repository) FindVoucherByCode(ctx context.Context, code string) (*models.Voucher, error) {
	var v models.Voucher
	if err := r.db.WithContext(ctx).First(&v, "code = ?", code).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

// FindShippingMethod loads an active shipping method.
func (r *Repository) FindShippingMethod(ctx context.Context, id uuid.UUID) (*models.ShippingMethod, error) {
	var m models.ShippingMethod
	if err := r.db.WithContext(ctx).First(&m, "id = ? AND active = ?", id, true).Error; err != nil {
		return nil, err
	}
	return &m, nil
}
