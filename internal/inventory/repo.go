package inventory

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/freshmart-id/freshmart-backend/pkg/db/models"
	"github.com/freshmart-id/freshmart-backend/pkg/pagination"
)

// Repository manages inventory rows and their journal.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	QuantitiesByStore(ctx context.Context, storeID uuid.UUID, productIDs []uuid.UUID) (map[uuid.UUID]int, error)
	FindForUpdate(ctx context.Context, storeID uuid.UUID, productIDs []uuid.UUID) ([]models.Inventory, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Inventory, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Inventory, error)
	Save(ctx context.Context, inv *models.Inventory) error
	CreateJournal(ctx context.Context, entry *models.StockJournal) error
	ListJournal(ctx context.Context, inventoryID uuid.UUID, cursor *pagination.Cursor, limit int) ([]models.StockJournal, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns an inventory repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) QuantitiesByStore(ctx context.Context, storeID uuid.UUID, productIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	var rows []models.Inventory
	if err := r.db.WithContext(ctx).
		Where("store_id = ? AND product_id IN ?", storeID, productIDs).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]int, len(rows))
	for _, row := range rows {
		out[row.ProductID] = row.Quantity
	}
	return out, nil
}

// FindForUpdate locks the matching rows for the duration of the caller's
// transaction. Rows come back in product_id order so concurrent reservations
// acquire locks in the same sequence.
func (r *repository) FindForUpdate(ctx context.Context, storeID uuid.UUID, productIDs []uuid.UUID) ([]models.Inventory, error) {
	var rows []models.Inventory
	err := r.lockForUpdate(r.db.WithContext(ctx)).
		Where("store_id = ? AND product_id IN ?", storeID, productIDs).
		Order("product_id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Inventory, error) {
	var row models.Inventory
	if err := r.lockForUpdate(r.db.WithContext(ctx)).
		First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// sqlite has no row locks; its single writer gives tests the same guarantee.
func (r *repository) lockForUpdate(q *gorm.DB) *gorm.DB {
	if r.db.Dialector.Name() == "sqlite" {
		return q
	}
	return q.Clauses(clause.Locking{Strength: "UPDATE"})
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Inventory, error) {
	var row models.Inventory
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) Save(ctx context.Context, inv *models.Inventory) error {
	return r.db.WithContext(ctx).Save(inv).Error
}

func (r *repository) CreateJournal(ctx context.Context, entry *models.StockJournal) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) ListJournal(ctx context.Context, inventoryID uuid.UUID, cursor *pagination.Cursor, limit int) ([]models.StockJournal, error) {
	q := r.db.WithContext(ctx).
		Where("inventory_id = ?", inventoryID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit)
	if cursor != nil {
		q = q.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}
	var rows []models.StockJournal
	err := q.Find(&rows).Error
	return rows, err
}
