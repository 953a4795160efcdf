package domain

import (
	"errors"
	"time"
)

// Quantity bounds shared by amount and cooking_time. The reference data
// importer stores amounts as small positive integers; anything outside
// this window is rejected before a transaction is opened.
const (
	MinQuantity = 1
	MaxQuantity = 32000
)

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessCreateRecipe    = "recipe created successfully"
	MessageSuccessUpdateRecipe    = "recipe updated successfully"
	MessageSuccessDeleteRecipe    = "recipe deleted successfully"
	MessageSuccessAddFavorite     = "recipe added to favorites"
	MessageSuccessRemoveFavorite  = "recipe removed from favorites"
	MessageSuccessAddToCart       = "recipe added to shopping cart"
	MessageSuccessRemoveFromCart  = "recipe removed from shopping cart"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedCreateRecipe    = "failed to create recipe"
	MessageFailedUpdateRecipe    = "failed to update recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"
	MessageFailedAddFavorite     = "failed to add recipe to favorites"
	MessageFailedRemoveFavorite  = "failed to remove recipe from favorites"
	MessageFailedAddToCart       = "failed to add recipe to shopping cart"
	MessageFailedRemoveFromCart  = "failed to remove recipe from shopping cart"

	ErrRecipeNotFound      = errors.New("recipe not found")
	ErrNotRecipeAuthor     = errors.New("only the author can modify the recipe")
	ErrEmptyTagSet         = errors.New("recipe must have at least one tag")
	ErrDuplicateTag        = errors.New("recipe tags must not repeat")
	ErrUnknownTag          = errors.New("referenced tag does not exist")
	ErrEmptyIngredientSet  = errors.New("recipe must have at least one ingredient")
	ErrDuplicateIngredient = errors.New("recipe ingredients must not repeat")
	ErrUnknownIngredient   = errors.New("referenced ingredient does not exist")
	ErrInvalidQuantity     = errors.New("quantity out of allowed range")
	ErrAlreadyLinked       = errors.New("recipe already added")
	ErrLinkNotFound        = errors.New("recipe was not added")
)

type (
	IngredientLineRequest struct {
		ID     string `json:"id" validate:"required,uuid"`
		Amount int    `json:"amount" validate:"required"`
	}

	ComposeRecipeRequest struct {
		Name        string                  `json:"name" validate:"required,max=200"`
		Text        string                  `json:"text" validate:"required"`
		Image       string                  `json:"image,omitempty"`
		CookingTime int                     `json:"cooking_time" validate:"required"`
		Tags        []string                `json:"tags" validate:"dive,uuid"`
		Ingredients []IngredientLineRequest `json:"ingredients" validate:"dive"`
	}

	RecipeFilter struct {
		Author         string
		TagSlugs       []string
		Favorited      bool
		InShoppingCart bool
		UserID         string
		Page           int
		Limit          int
	}

	IngredientLineResponse struct {
		ID              string `json:"id"`
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
		Amount          int    `json:"amount"`
	}

	TagResponse struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Color string `json:"color"`
		Slug  string `json:"slug"`
	}

	RecipeShortResponse struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Image       string `json:"image,omitempty"`
		CookingTime int    `json:"cooking_time"`
	}

	RecipeDetailResponse struct {
		ID               string                   `json:"id"`
		Author           UserResponse             `json:"author"`
		Name             string                   `json:"name"`
		Image            string                   `json:"image,omitempty"`
		Text             string                   `json:"text"`
		CookingTime      int                      `json:"cooking_time"`
		Tags             []TagResponse            `json:"tags"`
		Ingredients      []IngredientLineResponse `json:"ingredients"`
		IsFavorited      bool                     `json:"is_favorited"`
		IsInShoppingCart bool                     `json:"is_in_shopping_cart"`
		CreatedAt        time.Time                `json:"created_at"`
	}

	RecipeListResponse struct {
		Recipes []RecipeDetailResponse `json:"recipes"`
		Total   int64                  `json:"total"`
	}

	UploadRecipeImageRequest struct {
		// Image is a base64 data URI ("data:image/png;base64,...").
		Image string `json:"image" validate:"required"`
	}
)
