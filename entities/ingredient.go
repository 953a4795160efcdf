package entities

import (
	"github.com/google/uuid"
)

// Ingredient is immutable reference data loaded by the bulk import in
// cmd/database/seed, never created through the request path.
type Ingredient struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name            string    `gorm:"index;not null" json:"name"`
	MeasurementUnit string    `gorm:"not null" json:"measurement_unit"`
}
