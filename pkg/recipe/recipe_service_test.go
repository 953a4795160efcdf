package recipe_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"foodgram/domain"
	"foodgram/entities"
	"foodgram/pkg/ingredient"
	"foodgram/pkg/recipe"
	"foodgram/pkg/tag"
)

// ---- mock repositories -----------------------------------------------------

type mockRecipeRepository struct {
	composeRecipe   func(ctx context.Context, r *entities.Recipe, tagIDs []uuid.UUID, lines []entities.RecipeIngredient) error
	recomposeRecipe func(ctx context.Context, r *entities.Recipe, tagIDs []uuid.UUID, lines []entities.RecipeIngredient) error
	getRecipeByID   func(ctx context.Context, id string) (*entities.Recipe, error)
	getRecipes      func(ctx context.Context, filter domain.RecipeFilter) ([]*entities.Recipe, int64, error)
	deleteRecipe    func(ctx context.Context, id string) error
	addLink         func(ctx context.Context, userID, recipeID, kind string) error
	removeLink      func(ctx context.Context, userID, recipeID, kind string) error
	isLinked        func(ctx context.Context, userID, recipeID, kind string) (bool, error)
}

func (m *mockRecipeRepository) ComposeRecipe(ctx context.Context, r *entities.Recipe, tagIDs []uuid.UUID, lines []entities.RecipeIngredient) error {
	return m.composeRecipe(ctx, r, tagIDs, lines)
}

func (m *mockRecipeRepository) RecomposeRecipe(ctx context.Context, r *entities.Recipe, tagIDs []uuid.UUID, lines []entities.RecipeIngredient) error {
	return m.recomposeRecipe(ctx, r, tagIDs, lines)
}

func (m *mockRecipeRepository) GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error) {
	return m.getRecipeByID(ctx, id)
}

func (m *mockRecipeRepository) GetRecipes(ctx context.Context, filter domain.RecipeFilter) ([]*entities.Recipe, int64, error) {
	return m.getRecipes(ctx, filter)
}

func (m *mockRecipeRepository) DeleteRecipe(ctx context.Context, id string) error {
	return m.deleteRecipe(ctx, id)
}

func (m *mockRecipeRepository) AddLink(ctx context.Context, userID, recipeID, kind string) error {
	return m.addLink(ctx, userID, recipeID, kind)
}

func (m *mockRecipeRepository) RemoveLink(ctx context.Context, userID, recipeID, kind string) error {
	return m.removeLink(ctx, userID, recipeID, kind)
}

func (m *mockRecipeRepository) IsLinked(ctx context.Context, userID, recipeID, kind string) (bool, error) {
	return m.isLinked(ctx, userID, recipeID, kind)
}

var _ recipe.RecipeRepository = (*mockRecipeRepository)(nil)

type mockIngredientRepository struct {
	getIngredientsByIDs func(ctx context.Context, ids []uuid.UUID) ([]*entities.Ingredient, error)
}

func (m *mockIngredientRepository) GetIngredients(context.Context, string) ([]*entities.Ingredient, error) {
	panic("not used")
}

func (m *mockIngredientRepository) GetIngredientByID(context.Context, string) (*entities.Ingredient, error) {
	panic("not used")
}

func (m *mockIngredientRepository) GetIngredientsByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.Ingredient, error) {
	return m.getIngredientsByIDs(ctx, ids)
}

func (m *mockIngredientRepository) CreateIngredient(context.Context, *entities.Ingredient) error {
	panic("not used")
}

func (m *mockIngredientRepository) FirstOrCreateIngredient(context.Context, *entities.Ingredient) error {
	panic("not used")
}

var _ ingredient.IngredientRepository = (*mockIngredientRepository)(nil)

type mockTagRepository struct {
	getTagsByIDs func(ctx context.Context, ids []uuid.UUID) ([]*entities.Tag, error)
}

func (m *mockTagRepository) GetTags(context.Context) ([]*entities.Tag, error) { panic("not used") }

func (m *mockTagRepository) GetTagByID(context.Context, string) (*entities.Tag, error) {
	panic("not used")
}

func (m *mockTagRepository) GetTagsByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.Tag, error) {
	return m.getTagsByIDs(ctx, ids)
}

func (m *mockTagRepository) FirstOrCreateTag(context.Context, *entities.Tag) error {
	panic("not used")
}

var _ tag.TagRepository = (*mockTagRepository)(nil)

// ---- helpers ---------------------------------------------------------------

var (
	tagID        = uuid.New()
	ingredientID = uuid.New()
	authorID     = uuid.New()
)

// resolvingTagRepo answers GetTagsByIDs with one stub tag per requested ID,
// so every referenced tag "exists".
func resolvingTagRepo() *mockTagRepository {
	return &mockTagRepository{
		getTagsByIDs: func(_ context.Context, ids []uuid.UUID) ([]*entities.Tag, error) {
			tags := make([]*entities.Tag, 0, len(ids))
			for _, id := range ids {
				tags = append(tags, &entities.Tag{ID: id, Name: "Dinner", Slug: "dinner"})
			}
			return tags, nil
		},
	}
}

func resolvingIngredientRepo() *mockIngredientRepository {
	return &mockIngredientRepository{
		getIngredientsByIDs: func(_ context.Context, ids []uuid.UUID) ([]*entities.Ingredient, error) {
			ingredients := make([]*entities.Ingredient, 0, len(ids))
			for _, id := range ids {
				ingredients = append(ingredients, &entities.Ingredient{ID: id, Name: "Flour", MeasurementUnit: "g"})
			}
			return ingredients, nil
		},
	}
}

// failingRecipeRepo panics on any write, so a test using it proves that
// validation rejected the request before anything could be persisted.
func failingRecipeRepo() *mockRecipeRepository {
	return &mockRecipeRepository{
		composeRecipe: func(context.Context, *entities.Recipe, []uuid.UUID, []entities.RecipeIngredient) error {
			panic("compose must not be reached")
		},
		recomposeRecipe: func(context.Context, *entities.Recipe, []uuid.UUID, []entities.RecipeIngredient) error {
			panic("recompose must not be reached")
		},
	}
}

func validRequest() domain.ComposeRecipeRequest {
	return domain.ComposeRecipeRequest{
		Name:        "Pancakes",
		Text:        "Mix and fry.",
		CookingTime: 20,
		Tags:        []string{tagID.String()},
		Ingredients: []domain.IngredientLineRequest{
			{ID: ingredientID.String(), Amount: 200},
		},
	}
}

func newService(repo recipe.RecipeRepository, ing ingredient.IngredientRepository, tg tag.TagRepository) recipe.RecipeService {
	return recipe.NewRecipeService(repo, ing, tg, nil)
}

// ---- validation ------------------------------------------------------------

func TestComposeRecipe_ValidationErrors(t *testing.T) {
	second := uuid.New()

	tests := []struct {
		name    string
		mutate  func(req *domain.ComposeRecipeRequest)
		wantErr error
	}{
		{
			name:    "cooking time below minimum",
			mutate:  func(req *domain.ComposeRecipeRequest) { req.CookingTime = 0 },
			wantErr: domain.ErrInvalidQuantity,
		},
		{
			name:    "cooking time above maximum",
			mutate:  func(req *domain.ComposeRecipeRequest) { req.CookingTime = 32001 },
			wantErr: domain.ErrInvalidQuantity,
		},
		{
			name:    "empty tag set",
			mutate:  func(req *domain.ComposeRecipeRequest) { req.Tags = nil },
			wantErr: domain.ErrEmptyTagSet,
		},
		{
			name: "duplicate tag",
			mutate: func(req *domain.ComposeRecipeRequest) {
				req.Tags = []string{tagID.String(), tagID.String()}
			},
			wantErr: domain.ErrDuplicateTag,
		},
		{
			name:    "empty ingredient set",
			mutate:  func(req *domain.ComposeRecipeRequest) { req.Ingredients = nil },
			wantErr: domain.ErrEmptyIngredientSet,
		},
		{
			name: "duplicate ingredient",
			mutate: func(req *domain.ComposeRecipeRequest) {
				req.Ingredients = append(req.Ingredients, domain.IngredientLineRequest{
					ID: ingredientID.String(), Amount: 50,
				})
			},
			wantErr: domain.ErrDuplicateIngredient,
		},
		{
			name: "amount below minimum",
			mutate: func(req *domain.ComposeRecipeRequest) {
				req.Ingredients[0].Amount = 0
			},
			wantErr: domain.ErrInvalidQuantity,
		},
		{
			name: "amount above maximum",
			mutate: func(req *domain.ComposeRecipeRequest) {
				req.Ingredients[0].Amount = 32001
			},
			wantErr: domain.ErrInvalidQuantity,
		},
		{
			name: "unknown tag",
			mutate: func(req *domain.ComposeRecipeRequest) {
				req.Tags = []string{second.String()}
			},
			wantErr: domain.ErrUnknownTag,
		},
		{
			name: "unknown ingredient",
			mutate: func(req *domain.ComposeRecipeRequest) {
				req.Ingredients[0].ID = second.String()
			},
			wantErr: domain.ErrUnknownIngredient,
		},
	}

	// catalogs that only recognize the shared fixture IDs
	tagRepo := &mockTagRepository{
		getTagsByIDs: func(_ context.Context, ids []uuid.UUID) ([]*entities.Tag, error) {
			var tags []*entities.Tag
			for _, id := range ids {
				if id == tagID {
					tags = append(tags, &entities.Tag{ID: id})
				}
			}
			return tags, nil
		},
	}
	ingredientRepo := &mockIngredientRepository{
		getIngredientsByIDs: func(_ context.Context, ids []uuid.UUID) ([]*entities.Ingredient, error) {
			var ingredients []*entities.Ingredient
			for _, id := range ids {
				if id == ingredientID {
					ingredients = append(ingredients, &entities.Ingredient{ID: id})
				}
			}
			return ingredients, nil
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := newService(failingRecipeRepo(), ingredientRepo, tagRepo)

			req := validRequest()
			tc.mutate(&req)

			_, err := svc.ComposeRecipe(context.Background(), req, authorID.String())
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestComposeRecipe_DuplicateTagRejectedBeforeCatalogLookup(t *testing.T) {
	// With a duplicated tag AND an empty ingredient set, the duplicate wins:
	// set-level checks run before any repository round trip.
	tagRepo := &mockTagRepository{
		getTagsByIDs: func(context.Context, []uuid.UUID) ([]*entities.Tag, error) {
			panic("catalog must not be consulted")
		},
	}
	svc := newService(failingRecipeRepo(), resolvingIngredientRepo(), tagRepo)

	req := validRequest()
	req.Tags = []string{tagID.String(), tagID.String()}
	req.Ingredients = nil

	_, err := svc.ComposeRecipe(context.Background(), req, authorID.String())
	assert.ErrorIs(t, err, domain.ErrDuplicateTag)
}

// ---- compose ---------------------------------------------------------------

func TestComposeRecipe_PersistsRecipeWithJoinSets(t *testing.T) {
	var (
		gotRecipe *entities.Recipe
		gotTags   []uuid.UUID
		gotLines  []entities.RecipeIngredient
	)
	repo := &mockRecipeRepository{
		composeRecipe: func(_ context.Context, r *entities.Recipe, tagIDs []uuid.UUID, lines []entities.RecipeIngredient) error {
			gotRecipe, gotTags, gotLines = r, tagIDs, lines
			return nil
		},
		getRecipeByID: func(_ context.Context, id string) (*entities.Recipe, error) {
			return gotRecipe, nil
		},
		isLinked: func(context.Context, string, string, string) (bool, error) {
			return false, nil
		},
	}
	svc := newService(repo, resolvingIngredientRepo(), resolvingTagRepo())

	res, err := svc.ComposeRecipe(context.Background(), validRequest(), authorID.String())
	require.NoError(t, err)

	require.NotNil(t, gotRecipe)
	assert.Equal(t, authorID, gotRecipe.AuthorID)
	assert.Equal(t, "Pancakes", gotRecipe.Name)
	assert.NotEqual(t, uuid.Nil, gotRecipe.ID)

	require.Len(t, gotTags, 1)
	assert.Equal(t, tagID, gotTags[0])

	require.Len(t, gotLines, 1)
	assert.Equal(t, ingredientID, gotLines[0].IngredientID)
	assert.Equal(t, 200, gotLines[0].Amount)

	assert.Equal(t, gotRecipe.ID.String(), res.ID)
	assert.False(t, res.IsFavorited)
	assert.False(t, res.IsInShoppingCart)
}

// ---- recompose -------------------------------------------------------------

func existingRecipe() *entities.Recipe {
	return &entities.Recipe{
		ID:          uuid.New(),
		AuthorID:    authorID,
		Name:        "Old name",
		CookingTime: 5,
	}
}

func TestRecomposeRecipe_NotFound(t *testing.T) {
	repo := failingRecipeRepo()
	repo.getRecipeByID = func(context.Context, string) (*entities.Recipe, error) {
		return nil, gorm.ErrRecordNotFound
	}
	svc := newService(repo, resolvingIngredientRepo(), resolvingTagRepo())

	_, err := svc.RecomposeRecipe(context.Background(), uuid.NewString(), validRequest(), authorID.String(), domain.RoleUser)
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestRecomposeRecipe_RejectsNonAuthor(t *testing.T) {
	existing := existingRecipe()
	repo := failingRecipeRepo()
	repo.getRecipeByID = func(context.Context, string) (*entities.Recipe, error) {
		return existing, nil
	}
	svc := newService(repo, resolvingIngredientRepo(), resolvingTagRepo())

	_, err := svc.RecomposeRecipe(context.Background(), existing.ID.String(), validRequest(), uuid.NewString(), domain.RoleUser)
	assert.ErrorIs(t, err, domain.ErrNotRecipeAuthor)
}

func TestRecomposeRecipe_AdminMayEditForeignRecipe(t *testing.T) {
	existing := existingRecipe()
	var recomposed bool
	repo := &mockRecipeRepository{
		getRecipeByID: func(context.Context, string) (*entities.Recipe, error) {
			return existing, nil
		},
		recomposeRecipe: func(_ context.Context, r *entities.Recipe, tagIDs []uuid.UUID, lines []entities.RecipeIngredient) error {
			recomposed = true
			assert.Equal(t, existing.ID, r.ID)
			return nil
		},
		isLinked: func(context.Context, string, string, string) (bool, error) {
			return false, nil
		},
	}
	svc := newService(repo, resolvingIngredientRepo(), resolvingTagRepo())

	_, err := svc.RecomposeRecipe(context.Background(), existing.ID.String(), validRequest(), uuid.NewString(), domain.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, recomposed)
}

func TestRecomposeRecipe_ValidationFailureLeavesRecipeUntouched(t *testing.T) {
	existing := existingRecipe()
	repo := failingRecipeRepo()
	repo.getRecipeByID = func(context.Context, string) (*entities.Recipe, error) {
		return existing, nil
	}
	svc := newService(repo, resolvingIngredientRepo(), resolvingTagRepo())

	req := validRequest()
	req.Ingredients = nil

	_, err := svc.RecomposeRecipe(context.Background(), existing.ID.String(), req, authorID.String(), domain.RoleUser)
	assert.ErrorIs(t, err, domain.ErrEmptyIngredientSet)
}

// ---- favorite / shopping cart links ----------------------------------------

func TestAddRelation_ReturnsShortProjection(t *testing.T) {
	existing := existingRecipe()
	existing.ImageURL = "https://cdn.example.com/recipes/pancakes.png"

	var gotKind string
	repo := &mockRecipeRepository{
		getRecipeByID: func(context.Context, string) (*entities.Recipe, error) {
			return existing, nil
		},
		addLink: func(_ context.Context, _, _, kind string) error {
			gotKind = kind
			return nil
		},
	}
	svc := newService(repo, resolvingIngredientRepo(), resolvingTagRepo())

	res, err := svc.AddRelation(context.Background(), uuid.NewString(), existing.ID.String(), entities.LinkKindFavorite)
	require.NoError(t, err)
	assert.Equal(t, entities.LinkKindFavorite, gotKind)
	assert.Equal(t, existing.ID.String(), res.ID)
	assert.Equal(t, existing.Name, res.Name)
	assert.Equal(t, existing.ImageURL, res.Image)
	assert.Equal(t, existing.CookingTime, res.CookingTime)
}

func TestAddRelation_DuplicateLink(t *testing.T) {
	existing := existingRecipe()
	repo := &mockRecipeRepository{
		getRecipeByID: func(context.Context, string) (*entities.Recipe, error) {
			return existing, nil
		},
		addLink: func(context.Context, string, string, string) error {
			return domain.ErrAlreadyLinked
		},
	}
	svc := newService(repo, resolvingIngredientRepo(), resolvingTagRepo())

	_, err := svc.AddRelation(context.Background(), uuid.NewString(), existing.ID.String(), entities.LinkKindShoppingCart)
	assert.ErrorIs(t, err, domain.ErrAlreadyLinked)
}

func TestRemoveRelation_MissingLink(t *testing.T) {
	existing := existingRecipe()
	repo := &mockRecipeRepository{
		getRecipeByID: func(context.Context, string) (*entities.Recipe, error) {
			return existing, nil
		},
		removeLink: func(context.Context, string, string, string) error {
			return domain.ErrLinkNotFound
		},
	}
	svc := newService(repo, resolvingIngredientRepo(), resolvingTagRepo())

	err := svc.RemoveRelation(context.Background(), uuid.NewString(), existing.ID.String(), entities.LinkKindFavorite)
	assert.ErrorIs(t, err, domain.ErrLinkNotFound)
}

// ---- delete ----------------------------------------------------------------

func TestDeleteRecipe_RejectsNonAuthor(t *testing.T) {
	existing := existingRecipe()
	repo := &mockRecipeRepository{
		getRecipeByID: func(context.Context, string) (*entities.Recipe, error) {
			return existing, nil
		},
		deleteRecipe: func(context.Context, string) error {
			panic("delete must not be reached")
		},
	}
	svc := newService(repo, resolvingIngredientRepo(), resolvingTagRepo())

	err := svc.DeleteRecipe(context.Background(), existing.ID.String(), uuid.NewString(), domain.RoleUser)
	assert.ErrorIs(t, err, domain.ErrNotRecipeAuthor)
}
