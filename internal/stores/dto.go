package stores

import (
	"time"

	"github.com/google/uuid"

	"github.com/freshmart-id/freshmart-backend/pkg/db/models"
)

// Line is a requested product quantity evaluated against store inventory.
type Line struct {
	ProductID uuid.UUID
	Quantity  int
}

// MissingItem reports a shortfall at the selected store.
type MissingItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Requested int       `json:"requested"`
	Available int       `json:"available"`
}

// Selection is the result of locating a fulfilling store for a basket.
type Selection struct {
	Store      *models.Store
	DistanceKM float64
	Missing    []MissingItem
}

// StoreDTO exposes safe store data in API responses.
type StoreDTO struct {
	ID                   uuid.UUID `json:"id"`
	Name                 string    `json:"name"`
	Latitude             float64   `json:"latitude"`
	Longitude            float64   `json:"longitude"`
	MaxServiceDistanceKM float64   `json:"max_service_distance_km"`
	Tags                 []string  `json:"tags,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
}

// FromModel maps the persisted store into a DTO.
func FromModel(m *models.Store) *StoreDTO {
	if m == nil {
		return nil
	}
	return &StoreDTO{
		ID:                   m.ID,
		Name:                 m.Name,
		Latitude:             m.Latitude,
		Longitude:            m.Longitude,
		MaxServiceDistanceKM: m.MaxServiceDistanceKM,
		Tags:                 m.Tags,
		CreatedAt:            m.CreatedAt,
	}
}
