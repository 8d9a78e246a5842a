package stores

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/freshmart-id/freshmart-backend/pkg/db/models"
	pkgerrors "github.com/freshmart-id/freshmart-backend/pkg/errors"
	"github.com/freshmart-id/freshmart-backend/pkg/geo"
)

func TestNewServiceRequiresRepo(t *testing.T) {
	_, err := NewService(nil, stubInventory{})
	if err == nil {
		t.Fatal("expected error creating service without repo")
	}
}

func TestNewServiceRequiresInventoryReader(t *testing.T) {
	_, err := NewService(&stubStoreRepo{}, nil)
	if err == nil {
		t.Fatal("expected error creating service without inventory reader")
	}
}

func TestLocatePicksNearestStoreWithFullStock(t *testing.T) {
	productID := uuid.New()
	near := storeAt("near", -6.200, 106.820, 20)
	far := storeAt("far", -6.500, 106.820, 60)
	repo := &stubStoreRepo{stores: []models.Store{far, near}}
	inv := stubInventory{quantities: map[uuid.UUID]map[uuid.UUID]int{
		near.ID: {productID: 10},
		far.ID:  {productID: 10},
	}}
	svc := mustService(t, repo, inv)

	sel, err := svc.Locate(context.Background(), geo.Point{Lat: -6.201, Lng: 106.821}, []Line{{ProductID: productID, Quantity: 3}})
	if err != nil {
		t.Fatalf("locate: %v", err)
	}
	if sel.Store.Name != "near" {
		t.Fatalf("expected nearest store, got %s", sel.Store.Name)
	}
	if len(sel.Missing) != 0 {
		t.Fatalf("expected full coverage, got missing %v", sel.Missing)
	}
	if sel.DistanceKM <= 0 {
		t.Fatalf("expected positive distance, got %f", sel.DistanceKM)
	}
}

func TestLocateSkipsNearerStoreMissingStock(t *testing.T) {
	productID := uuid.New()
	near := storeAt("near", -6.200, 106.820, 20)
	far := storeAt("far", -6.300, 106.820, 60)
	repo := &stubStoreRepo{stores: []models.Store{near, far}}
	inv := stubInventory{quantities: map[uuid.UUID]map[uuid.UUID]int{
		near.ID: {productID: 1},
		far.ID:  {productID: 10},
	}}
	svc := mustService(t, repo, inv)

	sel, err := svc.Locate(context.Background(), geo.Point{Lat: -6.201, Lng: 106.821}, []Line{{ProductID: productID, Quantity: 3}})
	if err != nil {
		t.Fatalf("locate: %v", err)
	}
	if sel.Store.Name != "far" {
		t.Fatalf("expected farther store with stock, got %s", sel.Store.Name)
	}
}

func TestLocateDistanceTieBreaksByCreatedAt(t *testing.T) {
	productID := uuid.New()
	older := storeAt("older", -6.200, 106.820, 20)
	older.CreatedAt = time.Now().Add(-48 * time.Hour)
	newer := storeAt("newer", -6.200, 106.820, 20)
	newer.CreatedAt = time.Now()
	// repo returns rows in created_at order, as the real query does
	repo := &stubStoreRepo{stores: []models.Store{older, newer}}
	inv := stubInventory{quantities: map[uuid.UUID]map[uuid.UUID]int{
		older.ID: {productID: 5},
		newer.ID: {productID: 5},
	}}
	svc := mustService(t, repo, inv)

	sel, err := svc.Locate(context.Background(), geo.Point{Lat: -6.200, Lng: 106.820}, []Line{{ProductID: productID, Quantity: 1}})
	if err != nil {
		t.Fatalf("locate: %v", err)
	}
	if sel.Store.Name != "older" {
		t.Fatalf("expected older store on distance tie, got %s", sel.Store.Name)
	}
}

func TestLocateOutOfRangeReturnsNotFound(t *testing.T) {
	store := storeAt("jakarta", -6.200, 106.820, 5)
	repo := &stubStoreRepo{stores: []models.Store{store}}
	svc := mustService(t, repo, stubInventory{})

	// Bandung is ~115km from Jakarta, far past the 5km service radius.
	_, err := svc.Locate(context.Background(), geo.Point{Lat: -6.917, Lng: 107.619}, []Line{{ProductID: uuid.New(), Quantity: 1}})
	if !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestLocateNoFullCoverageReportsNearestShortfall(t *testing.T) {
	productID := uuid.New()
	otherID := uuid.New()
	store := storeAt("only", -6.200, 106.820, 20)
	repo := &stubStoreRepo{
		stores: []models.Store{store},
		names:  map[uuid.UUID]string{productID: "Organic Milk 1L", otherID: "Free Range Eggs"},
	}
	inv := stubInventory{quantities: map[uuid.UUID]map[uuid.UUID]int{
		store.ID: {productID: 2},
	}}
	svc := mustService(t, repo, inv)

	sel, err := svc.Locate(context.Background(), geo.Point{Lat: -6.201, Lng: 106.821}, []Line{
		{ProductID: productID, Quantity: 5},
		{ProductID: otherID, Quantity: 1},
	})
	if !pkgerrors.IsCode(err, pkgerrors.CodeInsufficientStock) {
		t.Fatalf("expected insufficient stock, got %v", err)
	}
	if sel == nil || sel.Store.Name != "only" {
		t.Fatalf("expected nearest store in partial selection")
	}
	if len(sel.Missing) != 2 {
		t.Fatalf("expected two missing lines, got %d", len(sel.Missing))
	}
	for _, m := range sel.Missing {
		switch m.ProductID {
		case productID:
			if m.Requested != 5 || m.Available != 2 || m.Name != "Organic Milk 1L" {
				t.Fatalf("unexpected shortfall %+v", m)
			}
		case otherID:
			if m.Requested != 1 || m.Available != 0 || m.Name != "Free Range Eggs" {
				t.Fatalf("unexpected shortfall %+v", m)
			}
		default:
			t.Fatalf("unexpected product %s in missing list", m.ProductID)
		}
	}
}

func TestLocateRejectsEmptyAndNonPositiveLines(t *testing.T) {
	svc := mustService(t, &stubStoreRepo{}, stubInventory{})

	_, err := svc.Locate(context.Background(), geo.Point{}, nil)
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error for empty basket, got %v", err)
	}
	_, err = svc.Locate(context.Background(), geo.Point{}, []Line{{ProductID: uuid.New(), Quantity: 0}})
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error for zero quantity, got %v", err)
	}
}

func TestLocateRepoFailure(t *testing.T) {
	svc := mustService(t, &stubStoreRepo{err: errors.New("boom")}, stubInventory{})

	_, err := svc.Locate(context.Background(), geo.Point{}, []Line{{ProductID: uuid.New(), Quantity: 1}})
	if !pkgerrors.IsCode(err, pkgerrors.CodeDependency) {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func mustService(t *testing.T, repo storeRepository, inv inventoryReader) Service {
	t.Helper()
	svc, err := NewService(repo, inv)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func storeAt(name string, lat, lng, radiusKM float64) models.Store {
	return models.Store{
		ID:                   uuid.New(),
		Name:                 name,
		Latitude:             lat,
		Longitude:            lng,
		Active:               true,
		MaxServiceDistanceKM: radiusKM,
		CreatedAt:            time.Now(),
	}
}

type stubStoreRepo struct {
	stores []models.Store
	names  map[uuid.UUID]string
	err    error
}

func (s *stubStoreRepo) ListActive(context.Context) ([]models.Store, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.stores, nil
}

func (s *stubStoreRepo) ProductNames(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make(map[uuid.UUID]string, len(ids))
	for _, id := range ids {
		if name, ok := s.names[id]; ok {
			out[id] = name
		}
	}
	return out, nil
}

func (s *stubStoreRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Store, error) {
	if s.err != nil {
		return nil, s.err
	}
	for i := range s.stores {
		if s.stores[i].ID == id {
			return &s.stores[i], nil
		}
	}
	return nil, errors.New("record not found")
}

type stubInventory struct {
	quantities map[uuid.UUID]map[uuid.UUID]int
	err        error
}

func (s stubInventory) QuantitiesByStore(_ context.Context, storeID uuid.UUID, productIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make(map[uuid.UUID]int, len(productIDs))
	for _, id := range productIDs {
		out[id] = s.quantities[storeID][id]
	}
	return out, nil
}
