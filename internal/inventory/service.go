package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/freshmart-id/freshmart-backend/pkg/db/models"
	"github.com/freshmart-id/freshmart-backend/pkg/enums"
	pkgerrors "github.com/freshmart-id/freshmart-backend/pkg/errors"
	"github.com/freshmart-id/freshmart-backend/pkg/outbox"
	"github.com/freshmart-id/freshmart-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxEmitter interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// Service is the single write path for stock. Every quantity mutation goes
// through Reserve, Release or AdjustQuantity and leaves a journal entry in
// the same transaction.
type Service interface {
	Check(ctx context.Context, storeID uuid.UUID, lines []Line) (*CheckResult, error)
	CheckTx(ctx context.Context, tx *gorm.DB, storeID uuid.UUID, lines []Line) (*CheckResult, error)
	VerifyReserved(ctx context.Context, tx *gorm.DB, storeID uuid.UUID, lines []Line) error
	Reserve(ctx context.Context, tx *gorm.DB, storeID uuid.UUID, lines []Line, actor uuid.UUID, note string) error
	Release(ctx context.Context, tx *gorm.DB, storeID uuid.UUID, lines []Line, actor uuid.UUID, note string) error
	AdjustQuantity(ctx context.Context, input AdjustInput) (*models.Inventory, error)
	Journal(ctx context.Context, inventoryID uuid.UUID, params pagination.Params) ([]JournalEntryDTO, string, error)
}

type service struct {
	repo   Repository
	tx     txRunner
	events outboxEmitter
}

// NewService wires the inventory ledger with its repository and transaction
// runner. The outbox emitter may be nil in tests.
func NewService(repo Repository, tx txRunner, events outboxEmitter) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx, events: events}, nil
}

// Check reads current quantities without locking. The result can go stale
// immediately; Reserve repeats the comparison under row locks.
func (s *service) Check(ctx context.Context, storeID uuid.UUID, lines []Line) (*CheckResult, error) {
	if err := validateLines(lines); err != nil {
		return nil, err
	}
	quantities, err := s.repo.QuantitiesByStore(ctx, storeID, productIDs(lines))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read inventory")
	}
	return buildCheckResult(lines, quantities), nil
}

// CheckTx runs the same comparison inside the caller's transaction, used by
// the pre-ship re-check.
func (s *service) CheckTx(ctx context.Context, tx *gorm.DB, storeID uuid.UUID, lines []Line) (*CheckResult, error) {
	if tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "transaction required")
	}
	if err := validateLines(lines); err != nil {
		return nil, err
	}
	quantities, err := s.repo.WithTx(tx).QuantitiesByStore(ctx, storeID, productIDs(lines))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read inventory")
	}
	return buildCheckResult(lines, quantities), nil
}

// VerifyReserved is the pre-shipment guard. Reservation already moved the
// order's units out of the sellable count, so shipping only needs the rows to
// still exist and hold a non-negative balance after any admin adjustments.
func (s *service) VerifyReserved(ctx context.Context, tx *gorm.DB, storeID uuid.UUID, lines []Line) error {
	if tx == nil {
		return pkgerrors.New(pkgerrors.CodeInternal, "transaction required")
	}
	if err := validateLines(lines); err != nil {
		return err
	}
	repo := s.repo.WithTx(tx)
	rows, err := repo.FindForUpdate(ctx, storeID, productIDs(lines))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lock inventory rows")
	}
	byProduct := make(map[uuid.UUID]*models.Inventory, len(rows))
	for i := range rows {
		byProduct[rows[i].ProductID] = &rows[i]
	}
	var failed []ShortfallItem
	for _, line := range lines {
		row := byProduct[line.ProductID]
		if row == nil || row.Quantity < 0 {
			available := 0
			if row != nil {
				available = row.Quantity
			}
			failed = append(failed, ShortfallItem{ProductID: line.ProductID, Requested: line.Quantity, Available: available})
		}
	}
	if len(failed) > 0 {
		return pkgerrors.New(pkgerrors.CodeInsufficientStock, "stock re-check failed").WithDetails(failed)
	}
	return nil
}

// Reserve decrements stock for every line or none of them. Rows are locked
// FOR UPDATE so concurrent checkouts for the same product serialize; the
// shortfall list covers all failing lines, not just the first.
func (s *service) Reserve(ctx context.Context, tx *gorm.DB, storeID uuid.UUID, lines []Line, actor uuid.UUID, note string) error {
	return s.mutate(ctx, tx, storeID, lines, actor, note, enums.StockJournalSubtraction)
}

// Release returns previously reserved stock, journaled as an addition.
func (s *service) Release(ctx context.Context, tx *gorm.DB, storeID uuid.UUID, lines []Line, actor uuid.UUID, note string) error {
	return s.mutate(ctx, tx, storeID, lines, actor, note, enums.StockJournalAddition)
}

func (s *service) mutate(ctx context.Context, tx *gorm.DB, storeID uuid.UUID, lines []Line, actor uuid.UUID, note string, jtype enums.StockJournalType) error {
	if tx == nil {
		return pkgerrors.New(pkgerrors.CodeInternal, "transaction required")
	}
	if err := validateLines(lines); err != nil {
		return err
	}

	repo := s.repo.WithTx(tx)
	rows, err := repo.FindForUpdate(ctx, storeID, productIDs(lines))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lock inventory rows")
	}
	byProduct := make(map[uuid.UUID]*models.Inventory, len(rows))
	for i := range rows {
		byProduct[rows[i].ProductID] = &rows[i]
	}

	if jtype == enums.StockJournalSubtraction {
		var shortfall []ShortfallItem
		for _, line := range lines {
			row := byProduct[line.ProductID]
			available := 0
			if row != nil {
				available = row.Quantity
			}
			if available < line.Quantity {
				shortfall = append(shortfall, ShortfallItem{
					ProductID: line.ProductID,
					Requested: line.Quantity,
					Available: available,
				})
			}
		}
		if len(shortfall) > 0 {
			return pkgerrors.New(pkgerrors.CodeInsufficientStock, "insufficient stock").WithDetails(shortfall)
		}
	}

	for _, line := range lines {
		row := byProduct[line.ProductID]
		if row == nil {
			return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("no inventory row for product %s", line.ProductID))
		}
		row.Quantity += jtype.Sign() * line.Quantity
		if err := repo.Save(ctx, row); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update inventory quantity")
		}
		entry := &models.StockJournal{
			InventoryID: row.ID,
			Type:        jtype,
			Quantity:    line.Quantity,
			ActorUserID: actor,
			Note:        note,
		}
		if err := repo.CreateJournal(ctx, entry); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write stock journal")
		}
	}
	return nil
}

// AdjustQuantity applies a signed manual correction in its own transaction
// and queues an inventory.stock_adjusted event alongside it.
func (s *service) AdjustQuantity(ctx context.Context, input AdjustInput) (*models.Inventory, error) {
	if input.InventoryID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "inventory id is required")
	}
	if input.Delta == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "delta must be non-zero")
	}
	if input.ActorUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "actor is required")
	}

	var updated *models.Inventory
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		row, err := repo.FindByIDForUpdate(ctx, input.InventoryID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "inventory not found")
		}
		next := row.Quantity + input.Delta
		if next < 0 {
			return pkgerrors.New(pkgerrors.CodeInsufficientStock, "adjustment would drive stock negative").
				WithDetails([]ShortfallItem{{ProductID: row.ProductID, Requested: -input.Delta, Available: row.Quantity}})
		}
		row.Quantity = next
		if err := repo.Save(ctx, row); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update inventory quantity")
		}

		jtype := enums.StockJournalAddition
		qty := input.Delta
		if input.Delta < 0 {
			jtype = enums.StockJournalSubtraction
			qty = -input.Delta
		}
		entry := &models.StockJournal{
			InventoryID: row.ID,
			Type:        jtype,
			Quantity:    qty,
			ActorUserID: input.ActorUserID,
			Note:        input.Note,
		}
		if err := repo.CreateJournal(ctx, entry); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write stock journal")
		}

		if s.events != nil {
			event := outbox.DomainEvent{
				EventType:     enums.EventStockAdjusted,
				AggregateType: enums.AggregateInventory,
				AggregateID:   row.ID,
				Actor:         &outbox.ActorRef{UserID: input.ActorUserID},
				Data: outbox.StockAdjustedData{
					InventoryID: row.ID,
					StoreID:     row.StoreID,
					ProductID:   row.ProductID,
					Delta:       input.Delta,
					NewQuantity: row.Quantity,
					Note:        input.Note,
				},
			}
			if err := s.events.Emit(ctx, tx, event); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "queue stock adjusted event")
			}
		}

		updated = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Journal pages through the append-only audit log, newest first.
func (s *service) Journal(ctx context.Context, inventoryID uuid.UUID, params pagination.Params) ([]JournalEntryDTO, string, error) {
	if inventoryID == uuid.Nil {
		return nil, "", pkgerrors.New(pkgerrors.CodeValidation, "inventory id is required")
	}
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	rows, err := s.repo.ListJournal(ctx, inventoryID, cursor, pagination.LimitWithBuffer(params.Limit))
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list stock journal")
	}

	next := ""
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		next = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	out := make([]JournalEntryDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, journalFromModel(row))
	}
	return out, next, nil
}

func validateLines(lines []Line) error {
	if len(lines) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "at least one line is required")
	}
	seen := make(map[uuid.UUID]struct{}, len(lines))
	for _, line := range lines {
		if line.Quantity <= 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "line quantity must be positive")
		}
		if _, dup := seen[line.ProductID]; dup {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("duplicate product %s", line.ProductID))
		}
		seen[line.ProductID] = struct{}{}
	}
	return nil
}

func productIDs(lines []Line) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
	}
	return ids
}

func buildCheckResult(lines []Line, quantities map[uuid.UUID]int) *CheckResult {
	result := &CheckResult{HasAllStock: true}
	for _, line := range lines {
		stock := quantities[line.ProductID]
		check := LineCheck{
			ProductID:     line.ProductID,
			OrderQuantity: line.Quantity,
			StockQuantity: stock,
			Available:     stock >= line.Quantity,
		}
		if !check.Available {
			result.HasAllStock = false
		}
		result.Lines = append(result.Lines, check)
	}
	return result
}
