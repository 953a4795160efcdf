package entities

import (
	"github.com/google/uuid"
)

// Tag is immutable reference data, same lifecycle as Ingredient.
type Tag struct {
	ID    uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name  string    `gorm:"not null" json:"name"`
	Color string    `gorm:"type:varchar(7);not null" json:"color"`
	Slug  string    `gorm:"uniqueIndex;not null" json:"slug"`
}
