package recipe

import (
	"context"
	"errors"
	"time"

	"foodgram/domain"
	"foodgram/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RecipeRepository interface {
		// ComposeRecipe persists the recipe row together with its full
		// tag and ingredient join sets in one transaction. Either all
		// rows land or none do.
		ComposeRecipe(ctx context.Context, recipe *entities.Recipe, tagIDs []uuid.UUID, lines []entities.RecipeIngredient) error
		// RecomposeRecipe updates the scalar fields and replaces both
		// join sets in full, inside the same transaction.
		RecomposeRecipe(ctx context.Context, recipe *entities.Recipe, tagIDs []uuid.UUID, lines []entities.RecipeIngredient) error
		GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error)
		GetRecipes(ctx context.Context, filter domain.RecipeFilter) ([]*entities.Recipe, int64, error)
		DeleteRecipe(ctx context.Context, id string) error

		AddLink(ctx context.Context, userID, recipeID, kind string) error
		RemoveLink(ctx context.Context, userID, recipeID, kind string) error
		IsLinked(ctx context.Context, userID, recipeID, kind string) (bool, error)
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func buildJoinRows(recipeID uuid.UUID, tagIDs []uuid.UUID, lines []entities.RecipeIngredient) ([]entities.RecipeTag, []entities.RecipeIngredient) {
	tagRows := make([]entities.RecipeTag, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		tagRows = append(tagRows, entities.RecipeTag{
			ID:       uuid.New(),
			RecipeID: recipeID,
			TagID:    tagID,
		})
	}

	lineRows := make([]entities.RecipeIngredient, 0, len(lines))
	for _, line := range lines {
		lineRows = append(lineRows, entities.RecipeIngredient{
			ID:           uuid.New(),
			RecipeID:     recipeID,
			IngredientID: line.IngredientID,
			Amount:       line.Amount,
		})
	}
	return tagRows, lineRows
}

func (r *recipeRepository) ComposeRecipe(ctx context.Context, recipe *entities.Recipe, tagIDs []uuid.UUID, lines []entities.RecipeIngredient) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(recipe).Error; err != nil {
			return err
		}

		tagRows, lineRows := buildJoinRows(recipe.ID, tagIDs, lines)
		if err := tx.Create(&tagRows).Error; err != nil {
			return err
		}
		return tx.Create(&lineRows).Error
	})
}

func (r *recipeRepository) RecomposeRecipe(ctx context.Context, recipe *entities.Recipe, tagIDs []uuid.UUID, lines []entities.RecipeIngredient) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{
			"name":         recipe.Name,
			"text":         recipe.Text,
			"cooking_time": recipe.CookingTime,
		}
		if recipe.ImageURL != "" {
			updates["image_url"] = recipe.ImageURL
		}
		if err := tx.Model(&entities.Recipe{}).
			Where("id = ?", recipe.ID).
			Updates(updates).Error; err != nil {
			return err
		}

		// Full replace: clear both join sets, then bulk-insert the
		// validated ones. Never merged or diffed.
		if err := tx.Where("recipe_id = ?", recipe.ID).
			Delete(&entities.RecipeTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).
			Delete(&entities.RecipeIngredient{}).Error; err != nil {
			return err
		}

		tagRows, lineRows := buildJoinRows(recipe.ID, tagIDs, lines)
		if err := tx.Create(&tagRows).Error; err != nil {
			return err
		}
		return tx.Create(&lineRows).Error
	})
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags.Tag").
		Preload("Ingredients.Ingredient").
		Where("id = ?", id).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetRecipes(ctx context.Context, filter domain.RecipeFilter) ([]*entities.Recipe, int64, error) {
	var recipes []*entities.Recipe
	var count int64

	query := r.db.WithContext(ctx).Model(&entities.Recipe{})
	if filter.Author != "" {
		query = query.Where("recipes.author_id = ?", filter.Author)
	}
	if len(filter.TagSlugs) > 0 {
		query = query.
			Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", filter.TagSlugs).
			Distinct("recipes.*")
	}
	if filter.Favorited {
		query = query.
			Joins("JOIN user_recipe_links favs ON favs.recipe_id = recipes.id").
			Where("favs.user_id = ? AND favs.kind = ?", filter.UserID, entities.LinkKindFavorite)
	}
	if filter.InShoppingCart {
		query = query.
			Joins("JOIN user_recipe_links carts ON carts.recipe_id = recipes.id").
			Where("carts.user_id = ? AND carts.kind = ?", filter.UserID, entities.LinkKindShoppingCart)
	}

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	if err := query.
		Preload("Author").
		Preload("Tags.Tag").
		Preload("Ingredients.Ingredient").
		Offset(offset).
		Limit(filter.Limit).
		Order("recipes.created_at desc").
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

func (r *recipeRepository) DeleteRecipe(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).
			Delete(&entities.RecipeTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).
			Delete(&entities.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).
			Delete(&entities.UserRecipeLink{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entities.Recipe{}).Error
	})
}

func (r *recipeRepository) AddLink(ctx context.Context, userID, recipeID, kind string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrParseUUID
	}
	recipeUUID, err := uuid.Parse(recipeID)
	if err != nil {
		return domain.ErrParseUUID
	}

	var existing entities.UserRecipeLink
	err = r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ? AND kind = ?", userUUID, recipeUUID, kind).
		First(&existing).Error
	if err == nil {
		return domain.ErrAlreadyLinked
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	link := entities.UserRecipeLink{
		ID:        uuid.New(),
		UserID:    userUUID,
		RecipeID:  recipeUUID,
		Kind:      kind,
		CreatedAt: time.Now(),
	}
	return r.db.WithContext(ctx).Create(&link).Error
}

func (r *recipeRepository) RemoveLink(ctx context.Context, userID, recipeID, kind string) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ? AND kind = ?", userID, recipeID, kind).
		Delete(&entities.UserRecipeLink{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrLinkNotFound
	}
	return nil
}

func (r *recipeRepository) IsLinked(ctx context.Context, userID, recipeID, kind string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.UserRecipeLink{}).
		Where("user_id = ? AND recipe_id = ? AND kind = ?", userID, recipeID, kind).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
