package shopping_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodgram/domain"
	"foodgram/entities"
	"foodgram/pkg/shopping"
)

// ---- mock ShoppingRepository -----------------------------------------------

type mockShoppingRepository struct {
	listCartIngredientLines func(ctx context.Context, userID string) ([]*entities.RecipeIngredient, error)
}

func (m *mockShoppingRepository) ListCartIngredientLines(ctx context.Context, userID string) ([]*entities.RecipeIngredient, error) {
	return m.listCartIngredientLines(ctx, userID)
}

var _ shopping.ShoppingRepository = (*mockShoppingRepository)(nil)

// ---- helpers ---------------------------------------------------------------

func line(id uuid.UUID, name, unit string, amount int) *entities.RecipeIngredient {
	return &entities.RecipeIngredient{
		RecipeID:     uuid.New(),
		IngredientID: id,
		Amount:       amount,
		Ingredient: &entities.Ingredient{
			ID:              id,
			Name:            name,
			MeasurementUnit: unit,
		},
	}
}

func serviceWith(lines []*entities.RecipeIngredient) shopping.ShoppingService {
	return shopping.NewShoppingService(&mockShoppingRepository{
		listCartIngredientLines: func(context.Context, string) ([]*entities.RecipeIngredient, error) {
			return lines, nil
		},
	})
}

// ---- aggregation -----------------------------------------------------------

func TestAggregateShoppingList_SumsSharedIngredients(t *testing.T) {
	flour := uuid.New()
	sugar := uuid.New()

	// flour appears in two recipes, sugar in one
	svc := serviceWith([]*entities.RecipeIngredient{
		line(flour, "Flour", "g", 200),
		line(sugar, "Sugar", "g", 50),
		line(flour, "Flour", "g", 300),
	})

	items, err := svc.AggregateShoppingList(context.Background(), uuid.NewString())
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, domain.ShoppingListItem{Name: "Flour", Unit: "g", Total: 500}, items[0])
	assert.Equal(t, domain.ShoppingListItem{Name: "Sugar", Unit: "g", Total: 50}, items[1])
}

func TestAggregateShoppingList_SortsByName(t *testing.T) {
	svc := serviceWith([]*entities.RecipeIngredient{
		line(uuid.New(), "Salt", "g", 5),
		line(uuid.New(), "Butter", "g", 100),
		line(uuid.New(), "Milk", "ml", 250),
	})

	items, err := svc.AggregateShoppingList(context.Background(), uuid.NewString())
	require.NoError(t, err)

	require.Len(t, items, 3)
	assert.Equal(t, "Butter", items[0].Name)
	assert.Equal(t, "Milk", items[1].Name)
	assert.Equal(t, "Salt", items[2].Name)
}

func TestAggregateShoppingList_OrderOfRecipesDoesNotMatter(t *testing.T) {
	flour := uuid.New()
	sugar := uuid.New()
	forward := []*entities.RecipeIngredient{
		line(flour, "Flour", "g", 200),
		line(sugar, "Sugar", "g", 50),
	}
	reversed := []*entities.RecipeIngredient{
		line(sugar, "Sugar", "g", 50),
		line(flour, "Flour", "g", 200),
	}

	a, err := serviceWith(forward).AggregateShoppingList(context.Background(), uuid.NewString())
	require.NoError(t, err)
	b, err := serviceWith(reversed).AggregateShoppingList(context.Background(), uuid.NewString())
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestAggregateShoppingList_EmptyCart(t *testing.T) {
	svc := serviceWith(nil)

	items, err := svc.AggregateShoppingList(context.Background(), uuid.NewString())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestAggregateShoppingList_DanglingIngredientReference(t *testing.T) {
	broken := &entities.RecipeIngredient{
		RecipeID:     uuid.New(),
		IngredientID: uuid.New(),
		Amount:       100,
		Ingredient:   nil,
	}
	svc := serviceWith([]*entities.RecipeIngredient{
		line(uuid.New(), "Flour", "g", 200),
		broken,
	})

	items, err := svc.AggregateShoppingList(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrInconsistentCatalog)
	assert.Nil(t, items)
}
