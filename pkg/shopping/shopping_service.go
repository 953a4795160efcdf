package shopping

import (
	"context"
	"sort"

	"foodgram/domain"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

type (
	ShoppingService interface {
		// AggregateShoppingList collapses the ingredient requirements of
		// every recipe in the user's cart into one summed list, sorted by
		// ingredient name. An empty cart yields an empty list.
		AggregateShoppingList(ctx context.Context, userID string) ([]domain.ShoppingListItem, error)
	}

	shoppingService struct {
		shoppingRepository ShoppingRepository
	}
)

func NewShoppingService(shoppingRepository ShoppingRepository) ShoppingService {
	return &shoppingService{shoppingRepository: shoppingRepository}
}

func (s *shoppingService) AggregateShoppingList(ctx context.Context, userID string) ([]domain.ShoppingListItem, error) {
	lines, err := s.shoppingRepository.ListCartIngredientLines(ctx, userID)
	if err != nil {
		return nil, err
	}

	totals := make(map[uuid.UUID]*domain.ShoppingListItem)
	for _, line := range lines {
		if line.Ingredient == nil {
			// Composition guarantees every join row resolves; a dangling
			// reference means the catalog was corrupted outside this
			// service, so fail loudly rather than drop the line.
			log.Errorf("shopping cart of user %s references missing ingredient %s", userID, line.IngredientID)
			return nil, domain.ErrInconsistentCatalog
		}
		if item, ok := totals[line.IngredientID]; ok {
			item.Total += line.Amount
			continue
		}
		totals[line.IngredientID] = &domain.ShoppingListItem{
			Name:  line.Ingredient.Name,
			Unit:  line.Ingredient.MeasurementUnit,
			Total: line.Amount,
		}
	}

	items := make([]domain.ShoppingListItem, 0, len(totals))
	for _, item := range totals {
		items = append(items, *item)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].Unit < items[j].Unit
	})
	return items, nil
}
