package shopping

import (
	"context"

	"foodgram/entities"

	"gorm.io/gorm"
)

type (
	ShoppingRepository interface {
		// ListCartIngredientLines returns every recipe-ingredient row of
		// every recipe in the user's shopping cart, with the ingredient
		// reference resolved.
		ListCartIngredientLines(ctx context.Context, userID string) ([]*entities.RecipeIngredient, error)
	}

	shoppingRepository struct {
		db *gorm.DB
	}
)

func NewShoppingRepository(db *gorm.DB) ShoppingRepository {
	return &shoppingRepository{db: db}
}

func (r *shoppingRepository) ListCartIngredientLines(ctx context.Context, userID string) ([]*entities.RecipeIngredient, error) {
	var lines []*entities.RecipeIngredient
	if err := r.db.WithContext(ctx).
		Preload("Ingredient").
		Joins("JOIN user_recipe_links ON user_recipe_links.recipe_id = recipe_ingredients.recipe_id").
		Where("user_recipe_links.user_id = ? AND user_recipe_links.kind = ?",
			userID, entities.LinkKindShoppingCart).
		Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}
