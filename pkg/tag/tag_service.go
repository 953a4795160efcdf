package tag

import (
	"context"
	"errors"
	"regexp"
	"time"

	"foodgram/domain"
	"foodgram/entities"
	"foodgram/internal/utils/cache"

	"gorm.io/gorm"
)

const (
	cacheKeyAll = "tags:all"
	cacheTTL    = 12 * time.Hour
)

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

type (
	TagService interface {
		GetTags(ctx context.Context) ([]domain.TagResponse, error)
		GetTagDetail(ctx context.Context, id string) (domain.TagResponse, error)
		ImportTag(ctx context.Context, name, color, slug string) error
	}

	tagService struct {
		tagRepository TagRepository
		cache         *cache.Client
	}
)

func NewTagService(tagRepository TagRepository, cacheClient *cache.Client) TagService {
	return &tagService{
		tagRepository: tagRepository,
		cache:         cacheClient,
	}
}

func (s *tagService) GetTags(ctx context.Context) ([]domain.TagResponse, error) {
	var cached []domain.TagResponse
	if hit, err := s.cache.GetJSON(ctx, cacheKeyAll, &cached); err == nil && hit {
		return cached, nil
	}

	tags, err := s.tagRepository.GetTags(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]domain.TagResponse, 0, len(tags))
	for _, t := range tags {
		res = append(res, toResponse(t))
	}
	_ = s.cache.SetJSON(ctx, cacheKeyAll, res, cacheTTL)
	return res, nil
}

func (s *tagService) GetTagDetail(ctx context.Context, id string) (domain.TagResponse, error) {
	t, err := s.tagRepository.GetTagByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.TagResponse{}, domain.ErrTagNotFound
		}
		return domain.TagResponse{}, err
	}
	return toResponse(t), nil
}

// ImportTag backs the offline seed command; it is not reachable from the
// request path.
func (s *tagService) ImportTag(ctx context.Context, name, color, slug string) error {
	if !colorPattern.MatchString(color) {
		return domain.ErrInvalidTagColor
	}
	if err := s.tagRepository.FirstOrCreateTag(ctx, &entities.Tag{
		Name:  name,
		Color: color,
		Slug:  slug,
	}); err != nil {
		return err
	}
	return s.cache.Delete(ctx, cacheKeyAll)
}

func toResponse(t *entities.Tag) domain.TagResponse {
	return domain.TagResponse{
		ID:    t.ID.String(),
		Name:  t.Name,
		Color: t.Color,
		Slug:  t.Slug,
	}
}
