package entities

import (
	"github.com/google/uuid"
	"time"
)

const (
	LinkKindFavorite     = "favorite"
	LinkKindShoppingCart = "shopping_cart"
)

// UserRecipeLink covers both favorites and shopping-cart entries. The two
// relations share the same shape and uniqueness rule, so one entity with a
// kind column replaces a pair of near-identical join tables.
type UserRecipeLink struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID    uuid.UUID `gorm:"uniqueIndex:idx_user_recipe_kind" json:"user_id"`
	RecipeID  uuid.UUID `gorm:"uniqueIndex:idx_user_recipe_kind" json:"recipe_id"`
	Kind      string    `gorm:"uniqueIndex:idx_user_recipe_kind;type:varchar(16)" json:"kind"`
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`

	User   *User   `gorm:"foreignKey:UserID"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID"`
}
