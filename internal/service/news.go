package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/khabar-digital/newsroom/internal/constants"
	"github.com/khabar-digital/newsroom/internal/dto"
	apperrors "github.com/khabar-digital/newsroom/internal/errors"
	"github.com/khabar-digital/newsroom/internal/model"
	ctxutil "github.com/khabar-digital/newsroom/pkg/context"
	"github.com/khabar-digital/newsroom/pkg/logger"
)

// NewsStore is the article persistence surface. *repository.NewsRepository
// satisfies it.
type NewsStore interface {
	Create(ctx context.Context, news *model.News) error
	GetByID(ctx context.Context, id uint) (*model.News, error)
	GetAll(ctx context.Context, limit, offset int) ([]model.News, int64, error)
	GetByCategory(ctx context.Context, category string, limit, offset int) ([]model.News, int64, error)
	Update(ctx context.Context, id uint, fields map[string]interface{}) (*model.News, error)
	UpdateSlug(ctx context.Context, id uint, slug string) error
	Delete(ctx context.Context, id uint) error
}

type NewsService struct {
	store NewsStore
	cache ListingCache
}

func NewNewsService(store NewsStore, cache ListingCache) *NewsService {
	return &NewsService{
		store: store,
		cache: cache,
	}
}

// MakeSlug lowercases the title and joins its words with dashes. The record
// id is appended after insert so slugs stay unique without a second index.
func MakeSlug(title string) string {
	return strings.Join(strings.Fields(strings.ToLower(title)), "-")
}

// ExtractID pulls the record id out of a slug-or-id path segment: the id is
// the last dash-separated token.
func ExtractID(slugOrID string) (uint, error) {
	parts := strings.Split(slugOrID, "-")
	id, err := strconv.ParseUint(parts[len(parts)-1], 10, 64)
	if err != nil {
		return 0, apperrors.ErrInvalidInput
	}
	return uint(id), nil
}

// Create persists an article authored by the given account and finalizes
// the slug with the new record id.
func (s *NewsService) Create(ctx context.Context, req *dto.CreateNewsRequest, author *dto.UserResponse) (*dto.NewsResponse, error) {
	ctx = ctxutil.WithModuleFunction(ctx, "service", "CreateNews")

	tags, err := json.Marshal(req.Tags)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	news := &model.News{
		Title:       strings.TrimSpace(req.Title),
		Content:     req.Content,
		Image:       req.Image,
		Category:    strings.TrimSpace(req.Category),
		Tags:        datatypes.JSON(tags),
		AuthorName:  author.FullName,
		AuthorEmail: author.Email,
		Slug:        MakeSlug(req.Title),
	}

	if err := s.store.Create(ctx, news); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	news.Slug = fmt.Sprintf("%s-%d", news.Slug, news.ID)
	if err := s.store.UpdateSlug(ctx, news.ID, news.Slug); err != nil {
		logger.ErrorWithContext(ctx, "Failed to finalize slug").
			Int("news_id", int(news.ID)).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	s.cache.InvalidatePrefix(ctx, constants.CacheKeyNews)

	return toNewsResponse(news, true), nil
}

// newsListing is the cacheable shape of a listing page.
type newsListing struct {
	Items []dto.NewsResponse `json:"items"`
	Total int64              `json:"total"`
}

// List returns published news newest first. Pages are cached; article
// writes invalidate the whole news prefix.
func (s *NewsService) List(ctx context.Context, page constants.PaginationParams) ([]dto.NewsResponse, int64, error) {
	ctx = ctxutil.WithModuleFunction(ctx, "service", "ListNews")

	key := fmt.Sprintf("%sall:p%d:l%d", constants.CacheKeyNews, page.Page, page.Limit)
	var cached newsListing
	if s.cache.GetListing(ctx, key, &cached) {
		return cached.Items, cached.Total, nil
	}

	items, total, err := s.store.GetAll(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	responses := make([]dto.NewsResponse, 0, len(items))
	for i := range items {
		responses = append(responses, *toNewsResponse(&items[i], false))
	}

	s.cache.SetListing(ctx, key, newsListing{Items: responses, Total: total})

	return responses, total, nil
}

// ListByCategory mirrors List for a single category.
func (s *NewsService) ListByCategory(ctx context.Context, category string, page constants.PaginationParams) ([]dto.NewsResponse, int64, error) {
	ctx = ctxutil.WithModuleFunction(ctx, "service", "ListNewsByCategory")

	if strings.TrimSpace(category) == "" {
		return nil, 0, apperrors.ErrInvalidInput
	}

	key := fmt.Sprintf("%s%s:p%d:l%d", constants.CacheKeyNewsCategory, category, page.Page, page.Limit)
	var cached newsListing
	if s.cache.GetListing(ctx, key, &cached) {
		return cached.Items, cached.Total, nil
	}

	items, total, err := s.store.GetByCategory(ctx, category, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	responses := make([]dto.NewsResponse, 0, len(items))
	for i := range items {
		responses = append(responses, *toNewsResponse(&items[i], false))
	}

	s.cache.SetListing(ctx, key, newsListing{Items: responses, Total: total})

	return responses, total, nil
}

// GetBySlug resolves an article from a slug or bare id.
func (s *NewsService) GetBySlug(ctx context.Context, slugOrID string) (*dto.NewsResponse, error) {
	ctx = ctxutil.WithModuleFunction(ctx, "service", "GetNewsBySlug")

	id, err := ExtractID(slugOrID)
	if err != nil {
		return nil, err
	}

	news, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrArticleNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return toNewsResponse(news, false), nil
}

// Update rewrites the editable fields and regenerates the slug from the new
// title.
func (s *NewsService) Update(ctx context.Context, id uint, req *dto.UpdateNewsRequest) (*dto.NewsResponse, error) {
	ctx = ctxutil.WithModuleFunction(ctx, "service", "UpdateNews")

	tags, err := json.Marshal(req.Tags)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	fields := map[string]interface{}{
		"title":    strings.TrimSpace(req.Title),
		"content":  req.Content,
		"category": strings.TrimSpace(req.Category),
		"tags":     datatypes.JSON(tags),
		"slug":     fmt.Sprintf("%s-%d", MakeSlug(req.Title), id),
	}

	news, err := s.store.Update(ctx, id, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrArticleNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	s.cache.InvalidatePrefix(ctx, constants.CacheKeyNews)

	return toNewsResponse(news, true), nil
}

func (s *NewsService) Delete(ctx context.Context, id uint) error {
	ctx = ctxutil.WithModuleFunction(ctx, "service", "DeleteNews")

	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrArticleNotFound
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	s.cache.InvalidatePrefix(ctx, constants.CacheKeyNews)

	return nil
}

// toNewsResponse builds the article projection. withAuthorEmail is true
// only on authoring paths; public listings never expose the author's email.
func toNewsResponse(news *model.News, withAuthorEmail bool) *dto.NewsResponse {
	var tags []string
	if len(news.Tags) > 0 {
		_ = json.Unmarshal(news.Tags, &tags)
	}

	resp := &dto.NewsResponse{
		ID:         news.ID,
		Title:      news.Title,
		Content:    news.Content,
		Image:      news.Image,
		Category:   news.Category,
		Tags:       tags,
		AuthorName: news.AuthorName,
		Slug:       news.Slug,
		CreatedAt:  news.CreatedAt,
	}
	if withAuthorEmail {
		resp.AuthorEmail = news.AuthorEmail
	}
	return resp
}
