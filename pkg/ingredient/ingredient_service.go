package ingredient

import (
	"context"
	"errors"
	"time"

	"foodgram/domain"
	"foodgram/entities"
	"foodgram/internal/utils/cache"

	"gorm.io/gorm"
)

const (
	cacheKeyAll = "ingredients:all"
	cacheTTL    = 12 * time.Hour
)

type (
	IngredientService interface {
		GetIngredients(ctx context.Context, search string) ([]domain.IngredientResponse, error)
		GetIngredientDetail(ctx context.Context, id string) (domain.IngredientResponse, error)
	}

	ingredientService struct {
		ingredientRepository IngredientRepository
		cache                *cache.Client
	}
)

func NewIngredientService(ingredientRepository IngredientRepository, cacheClient *cache.Client) IngredientService {
	return &ingredientService{
		ingredientRepository: ingredientRepository,
		cache:                cacheClient,
	}
}

func (s *ingredientService) GetIngredients(ctx context.Context, search string) ([]domain.IngredientResponse, error) {
	// The full listing is immutable between imports, so it is served
	// read-through from redis. Prefix searches go straight to the store.
	if search == "" {
		var cached []domain.IngredientResponse
		if hit, err := s.cache.GetJSON(ctx, cacheKeyAll, &cached); err == nil && hit {
			return cached, nil
		}
	}

	ingredients, err := s.ingredientRepository.GetIngredients(ctx, search)
	if err != nil {
		return nil, err
	}

	res := make([]domain.IngredientResponse, 0, len(ingredients))
	for _, ing := range ingredients {
		res = append(res, toResponse(ing))
	}

	if search == "" {
		_ = s.cache.SetJSON(ctx, cacheKeyAll, res, cacheTTL)
	}
	return res, nil
}

func (s *ingredientService) GetIngredientDetail(ctx context.Context, id string) (domain.IngredientResponse, error) {
	ing, err := s.ingredientRepository.GetIngredientByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.IngredientResponse{}, domain.ErrIngredientNotFound
		}
		return domain.IngredientResponse{}, err
	}
	return toResponse(ing), nil
}

func toResponse(ing *entities.Ingredient) domain.IngredientResponse {
	return domain.IngredientResponse{
		ID:              ing.ID.String(),
		Name:            ing.Name,
		MeasurementUnit: ing.MeasurementUnit,
	}
}
