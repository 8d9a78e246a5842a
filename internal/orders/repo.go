package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/freshmart-id/freshmart-backend/pkg/db/models"
	"github.com/freshmart-id/freshmart-backend/pkg/enums"
	"github.com/freshmart-id/freshmart-backend/pkg/pagination"
)

// Repository manages order persistence plus the voucher bookkeeping the
// payment flow needs.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Order, error)
	Save(ctx context.Context, order *models.Order) error
	ListByUser(ctx context.Context, userID uuid.UUID, cursor *pagination.Cursor, limit int) ([]models.Order, error)
	ListByStore(ctx context.Context, storeID uuid.UUID, status *enums.OrderStatus, cursor *pagination.Cursor, limit int) ([]models.Order, error)
	FindExpired(ctx context.Context, before time.Time, limit int) ([]models.Order, error)
	FindShippedBefore(ctx context.Context, before time.Time, limit int) ([]models.Order, error)
	FindProducts(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
	FindShippingMethod(ctx context.Context, id uuid.UUID) (*models.ShippingMethod, error)
	CreatePaymentProof(ctx context.Context, proof *models.PaymentProof) error
	FindLatestPendingProof(ctx context.Context, orderID uuid.UUID) (*models.PaymentProof, error)
	SavePaymentProof(ctx context.Context, proof *models.PaymentProof) error
	FindAppliedVouchers(ctx context.Context, orderID uuid.UUID) ([]models.AppliedVoucher, error)
	MarkAppliedVoucherConsumed(ctx context.Context, id uuid.UUID) error
	IncrementVoucherUsage(ctx context.Context, voucherID uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Items").
		Preload("AppliedVouchers").
		Preload("PaymentProofs").
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// FindByIDForUpdate locks the order row so concurrent transitions serialize.
// Associations load after the lock is held.
func (r *repository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	q := r.db.WithContext(ctx)
	if r.db.Dialector.Name() != "sqlite" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := q.First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", id).
		Order("created_at ASC").
		Find(&order.Items).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) Save(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Omit("Items", "AppliedVouchers", "PaymentProofs").Save(order).Error
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID, cursor *pagination.Cursor, limit int) ([]models.Order, error) {
	q := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit)
	if cursor != nil {
		q = q.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}
	var rows []models.Order
	err := q.Find(&rows).Error
	return rows, err
}

func (r *repository) ListByStore(ctx context.Context, storeID uuid.UUID, status *enums.OrderStatus, cursor *pagination.Cursor, limit int) ([]models.Order, error) {
	q := r.db.WithContext(ctx).
		Preload("Items").
		Where("store_id = ?", storeID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	if cursor != nil {
		q = q.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}
	var rows []models.Order
	err := q.Find(&rows).Error
	return rows, err
}

// FindExpired returns payment-pending orders whose window has lapsed,
// oldest first, bounded for sweep batches.
func (r *repository) FindExpired(ctx context.Context, before time.Time, limit int) ([]models.Order, error) {
	var rows []models.Order
	err := r.db.WithContext(ctx).
		Where("status IN ?", []enums.OrderStatus{
			enums.OrderStatusWaitingPayment,
			enums.OrderStatusWaitingPaymentConfirmation,
		}).
		Where("expires_at IS NOT NULL AND expires_at < ?", before).
		Order("expires_at ASC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindShippedBefore(ctx context.Context, before time.Time, limit int) ([]models.Order, error) {
	var rows []models.Order
	err := r.db.WithContext(ctx).
		Where("status = ?", enums.OrderStatusShipped).
		Where("shipped_at IS NOT NULL AND shipped_at < ?", before).
		Order("shipped_at ASC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindProducts(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error
	return rows, err
}

func (r *repository) FindShippingMethod(ctx context.Context, id uuid.UUID) (*models.ShippingMethod, error) {
	var method models.ShippingMethod
	if err := r.db.WithContext(ctx).First(&method, "id = ? AND active = ?", id, true).Error; err != nil {
		return nil, err
	}
	return &method, nil
}

func (r *repository) CreatePaymentProof(ctx context.Context, proof *models.PaymentProof) error {
	return r.db.WithContext(ctx).Create(proof).Error
}

func (r *repository) FindLatestPendingProof(ctx context.Context, orderID uuid.UUID) (*models.PaymentProof, error) {
	var proof models.PaymentProof
	err := r.db.WithContext(ctx).
		Where("order_id = ? AND status = ?", orderID, enums.PaymentProofStatusPending).
		Order("created_at DESC").
		First(&proof).Error
	if err != nil {
		return nil, err
	}
	return &proof, nil
}

func (r *repository) SavePaymentProof(ctx context.Context, proof *models.PaymentProof) error {
	return r.db.WithContext(ctx).Save(proof).Error
}

func (r *repository) FindAppliedVouchers(ctx context.Context, orderID uuid.UUID) ([]models.AppliedVoucher, error) {
	var rows []models.AppliedVoucher
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Find(&rows).Error
	return rows, err
}

func (r *repository) MarkAppliedVoucherConsumed(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&models.AppliedVoucher{}).
		Where("id = ?", id).
		Update("consumed", true).Error
}

func (r *repository) IncrementVoucherUsage(ctx context.Context, voucherID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&models.Voucher{}).
		Where("id = ?", voucherID).
		Update("usage_count", gorm.Expr("usage_count + 1")).Error
}
