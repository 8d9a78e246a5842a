package stores

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/freshmart-id/freshmart-backend/pkg/db/models"
	pkgerrors "github.com/freshmart-id/freshmart-backend/pkg/errors"
	"github.com/freshmart-id/freshmart-backend/pkg/geo"
)

type storeRepository interface {
	ListActive(ctx context.Context) ([]models.Store, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
	ProductNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
}

type inventoryReader interface {
	QuantitiesByStore(ctx context.Context, storeID uuid.UUID, productIDs []uuid.UUID) (map[uuid.UUID]int, error)
}

// Service selects the store that fulfills a basket for a delivery point.
type Service interface {
	Locate(ctx context.Context, point geo.Point, lines []Line) (*Selection, error)
	GetByID(ctx context.Context, id uuid.UUID) (*StoreDTO, error)
}

type service struct {
	repo      storeRepository
	inventory inventoryReader
}

// NewService builds a store locator with the provided repositories.
func NewService(repo storeRepository, inventory inventoryReader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("store repository required")
	}
	if inventory == nil {
		return nil, fmt.Errorf("inventory reader required")
	}
	return &service{repo: repo, inventory: inventory}, nil
}

type candidate struct {
	store      models.Store
	distanceKM float64
}

// Locate walks active stores in ascending distance and returns the first one
// holding every requested quantity. When no store in range has full coverage
// the nearest store is returned together with its shortfall and a typed
// error; callers decide whether a partial basket is acceptable.
func (s *service) Locate(ctx context.Context, point geo.Point, lines []Line) (*Selection, error) {
	if len(lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one item is required")
	}
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item quantity must be positive")
		}
	}

	all, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list stores")
	}

	candidates := make([]candidate, 0, len(all))
	for _, store := range all {
		dist := geo.DistanceKM(point, geo.Point{Lat: store.Latitude, Lng: store.Longitude})
		if dist > store.MaxServiceDistanceKM {
			continue
		}
		candidates = append(candidates, candidate{store: store, distanceKM: dist})
	}
	if len(candidates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no store serves this address")
	}

	// ListActive orders by created_at then id, so a stable sort on distance
	// preserves that ordering for equidistant stores.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].distanceKM < candidates[j].distanceKM
	})

	productIDs := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		productIDs = append(productIDs, line.ProductID)
	}

	var nearest *Selection
	for i := range candidates {
		cand := candidates[i]
		quantities, err := s.inventory.QuantitiesByStore(ctx, cand.store.ID, productIDs)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read store inventory")
		}

		var missing []MissingItem
		for _, line := range lines {
			available := quantities[line.ProductID]
			if available < line.Quantity {
				missing = append(missing, MissingItem{
					ProductID: line.ProductID,
					Requested: line.Quantity,
					Available: available,
				})
			}
		}
		if len(missing) == 0 {
			return &Selection{Store: &candidates[i].store, DistanceKM: cand.distanceKM}, nil
		}
		if nearest == nil {
			nearest = &Selection{Store: &candidates[i].store, DistanceKM: cand.distanceKM, Missing: missing}
		}
	}

	// a failed name lookup does not mask the shortfall
	if names, err := s.repo.ProductNames(ctx, productIDs); err == nil {
		for i := range nearest.Missing {
			nearest.Missing[i].Name = names[nearest.Missing[i].ProductID]
		}
	}

	return nearest, pkgerrors.New(pkgerrors.CodeInsufficientStock, "no store in range holds the full basket").
		WithDetails(nearest.Missing)
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*StoreDTO, error) {
	store, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "store not found")
	}
	return FromModel(store), nil
}
