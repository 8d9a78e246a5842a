package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Store is a physical grocery store that fulfills orders.
type Store struct {
	ID                   uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	Name                 string         `gorm:"column:name;not null"`
	Latitude             float64        `gorm:"column:latitude;not null"`
	Longitude            float64        `gorm:"column:longitude;not null"`
	Active               bool           `gorm:"column:active;not null;default:true"`
	MaxServiceDistanceKM float64        `gorm:"column:max_service_distance_km;not null;default:20"`
	Tags                 pq.StringArray `gorm:"column:tags;type:text[]"`
	AdminUserID          *uuid.UUID     `gorm:"column:admin_user_id;type:uuid"`
	CreatedAt            time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt            time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (s *Store) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
