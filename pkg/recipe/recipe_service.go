package recipe

import (
	"context"
	"errors"
	"fmt"
	"time"

	"foodgram/domain"
	"foodgram/entities"
	"foodgram/internal/utils/storage"
	"foodgram/pkg/ingredient"
	"foodgram/pkg/tag"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RecipeService interface {
		ComposeRecipe(ctx context.Context, req domain.ComposeRecipeRequest, authorID string) (domain.RecipeDetailResponse, error)
		RecomposeRecipe(ctx context.Context, recipeID string, req domain.ComposeRecipeRequest, requesterID, role string) (domain.RecipeDetailResponse, error)
		GetRecipeDetail(ctx context.Context, recipeID, userID string) (domain.RecipeDetailResponse, error)
		GetRecipes(ctx context.Context, filter domain.RecipeFilter) (domain.RecipeListResponse, error)
		DeleteRecipe(ctx context.Context, recipeID, requesterID, role string) error
		UploadRecipeImage(ctx context.Context, req domain.UploadRecipeImageRequest, recipeID, requesterID, role string) (domain.RecipeDetailResponse, error)

		AddRelation(ctx context.Context, userID, recipeID, kind string) (domain.RecipeShortResponse, error)
		RemoveRelation(ctx context.Context, userID, recipeID, kind string) error
	}

	recipeService struct {
		recipeRepository     RecipeRepository
		ingredientRepository ingredient.IngredientRepository
		tagRepository        tag.TagRepository
		s3                   storage.AwsS3
	}
)

func NewRecipeService(
	recipeRepository RecipeRepository,
	ingredientRepository ingredient.IngredientRepository,
	tagRepository tag.TagRepository,
	s3 storage.AwsS3,
) RecipeService {
	return &recipeService{
		recipeRepository:     recipeRepository,
		ingredientRepository: ingredientRepository,
		tagRepository:        tagRepository,
		s3:                   s3,
	}
}

// validateComposition runs the fail-fast checks shared by create and
// update, in a fixed order: cooking time bound, tag set non-empty, tag
// duplicates, ingredient set non-empty, ingredient duplicates, tag
// existence, ingredient existence, amount bounds. Nothing is persisted
// until every check has passed.
func (s *recipeService) validateComposition(ctx context.Context, req domain.ComposeRecipeRequest) ([]uuid.UUID, []entities.RecipeIngredient, error) {
	if req.CookingTime < domain.MinQuantity || req.CookingTime > domain.MaxQuantity {
		return nil, nil, domain.ErrInvalidQuantity
	}

	if len(req.Tags) == 0 {
		return nil, nil, domain.ErrEmptyTagSet
	}
	tagIDs := make([]uuid.UUID, 0, len(req.Tags))
	tagSeen := make(map[uuid.UUID]struct{}, len(req.Tags))
	for _, raw := range req.Tags {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, nil, domain.ErrParseUUID
		}
		if _, ok := tagSeen[id]; ok {
			return nil, nil, domain.ErrDuplicateTag
		}
		tagSeen[id] = struct{}{}
		tagIDs = append(tagIDs, id)
	}

	if len(req.Ingredients) == 0 {
		return nil, nil, domain.ErrEmptyIngredientSet
	}
	lines := make([]entities.RecipeIngredient, 0, len(req.Ingredients))
	ingredientSeen := make(map[uuid.UUID]struct{}, len(req.Ingredients))
	for _, line := range req.Ingredients {
		id, err := uuid.Parse(line.ID)
		if err != nil {
			return nil, nil, domain.ErrParseUUID
		}
		if _, ok := ingredientSeen[id]; ok {
			return nil, nil, domain.ErrDuplicateIngredient
		}
		ingredientSeen[id] = struct{}{}
		lines = append(lines, entities.RecipeIngredient{
			IngredientID: id,
			Amount:       line.Amount,
		})
	}

	tags, err := s.tagRepository.GetTagsByIDs(ctx, tagIDs)
	if err != nil {
		return nil, nil, err
	}
	if len(tags) != len(tagIDs) {
		return nil, nil, domain.ErrUnknownTag
	}

	ingredientIDs := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		ingredientIDs = append(ingredientIDs, line.IngredientID)
	}
	ingredients, err := s.ingredientRepository.GetIngredientsByIDs(ctx, ingredientIDs)
	if err != nil {
		return nil, nil, err
	}
	if len(ingredients) != len(ingredientIDs) {
		return nil, nil, domain.ErrUnknownIngredient
	}

	for _, line := range lines {
		if line.Amount < domain.MinQuantity || line.Amount > domain.MaxQuantity {
			return nil, nil, domain.ErrInvalidQuantity
		}
	}

	return tagIDs, lines, nil
}

func (s *recipeService) ComposeRecipe(ctx context.Context, req domain.ComposeRecipeRequest, authorID string) (domain.RecipeDetailResponse, error) {
	authorUUID, err := uuid.Parse(authorID)
	if err != nil {
		return domain.RecipeDetailResponse{}, domain.ErrParseUUID
	}

	tagIDs, lines, err := s.validateComposition(ctx, req)
	if err != nil {
		return domain.RecipeDetailResponse{}, err
	}

	recipe := entities.Recipe{
		ID:          uuid.New(),
		AuthorID:    authorUUID,
		Name:        req.Name,
		Text:        req.Text,
		CookingTime: req.CookingTime,
		CreatedAt:   time.Now(),
	}
	if req.Image != "" {
		imageURL, err := s.uploadImage(recipe.ID, req.Image)
		if err != nil {
			return domain.RecipeDetailResponse{}, err
		}
		recipe.ImageURL = imageURL
	}

	if err := s.recipeRepository.ComposeRecipe(ctx, &recipe, tagIDs, lines); err != nil {
		return domain.RecipeDetailResponse{}, err
	}
	return s.GetRecipeDetail(ctx, recipe.ID.String(), authorID)
}

func (s *recipeService) RecomposeRecipe(ctx context.Context, recipeID string, req domain.ComposeRecipeRequest, requesterID, role string) (domain.RecipeDetailResponse, error) {
	existing, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeDetailResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeDetailResponse{}, err
	}
	if existing.AuthorID.String() != requesterID && role != domain.RoleAdmin {
		return domain.RecipeDetailResponse{}, domain.ErrNotRecipeAuthor
	}

	tagIDs, lines, err := s.validateComposition(ctx, req)
	if err != nil {
		return domain.RecipeDetailResponse{}, err
	}

	updated := entities.Recipe{
		ID:          existing.ID,
		Name:        req.Name,
		Text:        req.Text,
		CookingTime: req.CookingTime,
	}
	if req.Image != "" {
		imageURL, err := s.uploadImage(existing.ID, req.Image)
		if err != nil {
			return domain.RecipeDetailResponse{}, err
		}
		updated.ImageURL = imageURL
	}

	if err := s.recipeRepository.RecomposeRecipe(ctx, &updated, tagIDs, lines); err != nil {
		return domain.RecipeDetailResponse{}, err
	}
	return s.GetRecipeDetail(ctx, recipeID, requesterID)
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, recipeID, userID string) (domain.RecipeDetailResponse, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeDetailResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeDetailResponse{}, err
	}
	return s.toDetail(ctx, recipe, userID)
}

func (s *recipeService) GetRecipes(ctx context.Context, filter domain.RecipeFilter) (domain.RecipeListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}

	recipes, count, err := s.recipeRepository.GetRecipes(ctx, filter)
	if err != nil {
		return domain.RecipeListResponse{}, err
	}

	res := make([]domain.RecipeDetailResponse, 0, len(recipes))
	for _, r := range recipes {
		detail, err := s.toDetail(ctx, r, filter.UserID)
		if err != nil {
			return domain.RecipeListResponse{}, err
		}
		res = append(res, detail)
	}
	return domain.RecipeListResponse{Recipes: res, Total: count}, nil
}

func (s *recipeService) DeleteRecipe(ctx context.Context, recipeID, requesterID, role string) error {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}
	if recipe.AuthorID.String() != requesterID && role != domain.RoleAdmin {
		return domain.ErrNotRecipeAuthor
	}
	return s.recipeRepository.DeleteRecipe(ctx, recipeID)
}

func (s *recipeService) UploadRecipeImage(ctx context.Context, req domain.UploadRecipeImageRequest, recipeID, requesterID, role string) (domain.RecipeDetailResponse, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeDetailResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeDetailResponse{}, err
	}
	if recipe.AuthorID.String() != requesterID && role != domain.RoleAdmin {
		return domain.RecipeDetailResponse{}, domain.ErrNotRecipeAuthor
	}

	imageURL, err := s.uploadImage(recipe.ID, req.Image)
	if err != nil {
		return domain.RecipeDetailResponse{}, err
	}

	updated := entities.Recipe{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Text:        recipe.Text,
		CookingTime: recipe.CookingTime,
		ImageURL:    imageURL,
	}
	tagIDs := make([]uuid.UUID, 0, len(recipe.Tags))
	for _, t := range recipe.Tags {
		tagIDs = append(tagIDs, t.TagID)
	}
	lines := make([]entities.RecipeIngredient, 0, len(recipe.Ingredients))
	for _, line := range recipe.Ingredients {
		lines = append(lines, entities.RecipeIngredient{
			IngredientID: line.IngredientID,
			Amount:       line.Amount,
		})
	}
	if err := s.recipeRepository.RecomposeRecipe(ctx, &updated, tagIDs, lines); err != nil {
		return domain.RecipeDetailResponse{}, err
	}
	return s.GetRecipeDetail(ctx, recipeID, requesterID)
}

func (s *recipeService) AddRelation(ctx context.Context, userID, recipeID, kind string) (domain.RecipeShortResponse, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeShortResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeShortResponse{}, err
	}

	if err := s.recipeRepository.AddLink(ctx, userID, recipeID, kind); err != nil {
		return domain.RecipeShortResponse{}, err
	}
	return domain.RecipeShortResponse{
		ID:          recipe.ID.String(),
		Name:        recipe.Name,
		Image:       recipe.ImageURL,
		CookingTime: recipe.CookingTime,
	}, nil
}

func (s *recipeService) RemoveRelation(ctx context.Context, userID, recipeID, kind string) error {
	if _, err := s.recipeRepository.GetRecipeByID(ctx, recipeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}
	return s.recipeRepository.RemoveLink(ctx, userID, recipeID, kind)
}

func (s *recipeService) uploadImage(recipeID uuid.UUID, dataURI string) (string, error) {
	fileName := fmt.Sprintf("recipe-%s", recipeID.String())
	objectKey, err := s.s3.UploadBase64(fileName, dataURI, "recipes")
	if err != nil {
		return "", err
	}
	return s.s3.GetPublicLinkKey(objectKey), nil
}

func (s *recipeService) toDetail(ctx context.Context, recipe *entities.Recipe, userID string) (domain.RecipeDetailResponse, error) {
	res := domain.RecipeDetailResponse{
		ID:          recipe.ID.String(),
		Name:        recipe.Name,
		Image:       recipe.ImageURL,
		Text:        recipe.Text,
		CookingTime: recipe.CookingTime,
		CreatedAt:   recipe.CreatedAt,
	}
	if recipe.Author != nil {
		res.Author = domain.UserResponse{
			ID:        recipe.Author.ID.String(),
			Email:     recipe.Author.Email,
			Username:  recipe.Author.Username,
			FirstName: recipe.Author.FirstName,
			LastName:  recipe.Author.LastName,
		}
	}

	res.Tags = make([]domain.TagResponse, 0, len(recipe.Tags))
	for _, rt := range recipe.Tags {
		if rt.Tag == nil {
			continue
		}
		res.Tags = append(res.Tags, domain.TagResponse{
			ID:    rt.Tag.ID.String(),
			Name:  rt.Tag.Name,
			Color: rt.Tag.Color,
			Slug:  rt.Tag.Slug,
		})
	}

	res.Ingredients = make([]domain.IngredientLineResponse, 0, len(recipe.Ingredients))
	for _, line := range recipe.Ingredients {
		item := domain.IngredientLineResponse{
			ID:     line.IngredientID.String(),
			Amount: line.Amount,
		}
		if line.Ingredient != nil {
			item.Name = line.Ingredient.Name
			item.MeasurementUnit = line.Ingredient.MeasurementUnit
		}
		res.Ingredients = append(res.Ingredients, item)
	}

	if userID != "" {
		favorited, err := s.recipeRepository.IsLinked(ctx, userID, res.ID, entities.LinkKindFavorite)
		if err != nil {
			return domain.RecipeDetailResponse{}, err
		}
		inCart, err := s.recipeRepository.IsLinked(ctx, userID, res.ID, entities.LinkKindShoppingCart)
		if err != nil {
			return domain.RecipeDetailResponse{}, err
		}
		res.IsFavorited = favorited
		res.IsInShoppingCart = inCart
	}
	return res, nil
}
