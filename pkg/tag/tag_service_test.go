package tag_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"foodgram/domain"
	"foodgram/entities"
	"foodgram/pkg/tag"
)

type mockTagRepository struct {
	getTags          func(ctx context.Context) ([]*entities.Tag, error)
	getTagByID       func(ctx context.Context, id string) (*entities.Tag, error)
	firstOrCreateTag func(ctx context.Context, t *entities.Tag) error
}

func (m *mockTagRepository) GetTags(ctx context.Context) ([]*entities.Tag, error) {
	return m.getTags(ctx)
}

func (m *mockTagRepository) GetTagByID(ctx context.Context, id string) (*entities.Tag, error) {
	return m.getTagByID(ctx, id)
}

func (m *mockTagRepository) GetTagsByIDs(context.Context, []uuid.UUID) ([]*entities.Tag, error) {
	panic("not used")
}

func (m *mockTagRepository) FirstOrCreateTag(ctx context.Context, t *entities.Tag) error {
	return m.firstOrCreateTag(ctx, t)
}

var _ tag.TagRepository = (*mockTagRepository)(nil)

func TestGetTags(t *testing.T) {
	repo := &mockTagRepository{
		getTags: func(context.Context) ([]*entities.Tag, error) {
			return []*entities.Tag{
				{ID: uuid.New(), Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast"},
			}, nil
		},
	}
	svc := tag.NewTagService(repo, nil)

	res, err := svc.GetTags(context.Background())
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "breakfast", res[0].Slug)
	assert.Equal(t, "#E26C2D", res[0].Color)
}

func TestGetTagDetail_NotFound(t *testing.T) {
	repo := &mockTagRepository{
		getTagByID: func(context.Context, string) (*entities.Tag, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := tag.NewTagService(repo, nil)

	_, err := svc.GetTagDetail(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrTagNotFound)
}

func TestImportTag_RejectsBadColor(t *testing.T) {
	repo := &mockTagRepository{
		firstOrCreateTag: func(context.Context, *entities.Tag) error {
			panic("store must not be reached")
		},
	}
	svc := tag.NewTagService(repo, nil)

	for _, color := range []string{"", "red", "#FFF", "#GGGGGG", "E26C2D"} {
		err := svc.ImportTag(context.Background(), "Breakfast", color, "breakfast")
		assert.ErrorIs(t, err, domain.ErrInvalidTagColor, "color %q", color)
	}
}

func TestImportTag_StoresValidTag(t *testing.T) {
	var stored *entities.Tag
	repo := &mockTagRepository{
		firstOrCreateTag: func(_ context.Context, t *entities.Tag) error {
			stored = t
			return nil
		},
	}
	svc := tag.NewTagService(repo, nil)

	err := svc.ImportTag(context.Background(), "Breakfast", "#E26C2D", "breakfast")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "breakfast", stored.Slug)
}
