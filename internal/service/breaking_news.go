package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/khabar-digital/newsroom/internal/constants"
	"github.com/khabar-digital/newsroom/internal/dto"
	apperrors "github.com/khabar-digital/newsroom/internal/errors"
	"github.com/khabar-digital/newsroom/internal/model"
	ctxutil "github.com/khabar-digital/newsroom/pkg/context"
	"github.com/khabar-digital/newsroom/pkg/logger"
)

// BreakingNewsStore is satisfied by *repository.BreakingNewsRepository.
type BreakingNewsStore interface {
	Create(ctx context.Context, news *model.BreakingNews) error
	GetByID(ctx context.Context, id uint) (*model.BreakingNews, error)
	GetAll(ctx context.Context, limit, offset int) ([]model.BreakingNews, int64, error)
	Update(ctx context.Context, id uint, fields map[string]interface{}) (*model.BreakingNews, error)
	UpdateSlug(ctx context.Context, id uint, slug string) error
	Delete(ctx context.Context, id uint) error
}

type BreakingNewsService struct {
	store BreakingNewsStore
	cache ListingCache
}

func NewBreakingNewsService(store BreakingNewsStore, cache ListingCache) *BreakingNewsService {
	return &BreakingNewsService{
		store: store,
		cache: cache,
	}
}

func (s *BreakingNewsService) Create(ctx context.Context, req *dto.CreateBreakingNewsRequest, author *dto.UserResponse) (*dto.NewsResponse, error) {
	ctx = ctxutil.WithModuleFunction(ctx, "service", "CreateBreakingNews")

	news := &model.BreakingNews{
		Title:       strings.TrimSpace(req.Title),
		Content:     req.Content,
		Image:       req.Image,
		AuthorName:  author.FullName,
		AuthorEmail: author.Email,
		Slug:        MakeSlug(req.Title),
	}

	if err := s.store.Create(ctx, news); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	news.Slug = fmt.Sprintf("%s-%d", news.Slug, news.ID)
	if err := s.store.UpdateSlug(ctx, news.ID, news.Slug); err != nil {
		logger.ErrorWithContext(ctx, "Failed to finalize breaking news slug").
			Int("breaking_news_id", int(news.ID)).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	s.cache.InvalidatePrefix(ctx, constants.CacheKeyBreakingNews)

	return toBreakingNewsResponse(news, true), nil
}

func (s *BreakingNewsService) List(ctx context.Context, page constants.PaginationParams) ([]dto.NewsResponse, int64, error) {
	ctx = ctxutil.WithModuleFunction(ctx, "service", "ListBreakingNews")

	key := fmt.Sprintf("%sall:p%d:l%d", constants.CacheKeyBreakingNews, page.Page, page.Limit)
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
		responses = append(responses, *toBreakingNewsResponse(&items[i], false))
	}

	s.cache.SetListing(ctx, key, newsListing{Items: responses, Total: total})

	return responses, total, nil
}

func (s *BreakingNewsService) GetBySlug(ctx context.Context, slugOrID string) (*dto.NewsResponse, error) {
	ctx = ctxutil.WithModuleFunction(ctx, "service", "GetBreakingNewsBySlug")

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

	return toBreakingNewsResponse(news, false), nil
}

func (s *BreakingNewsService) Update(ctx context.Context, id uint, req *dto.UpdateBreakingNewsRequest) (*dto.NewsResponse, error) {
	ctx = ctxutil.WithModuleFunction(ctx, "service", "UpdateBreakingNews")

	fields := map[string]interface{}{
		"title":   strings.TrimSpace(req.Title),
		"content": req.Content,
		"slug":    fmt.Sprintf("%s-%d", MakeSlug(req.Title), id),
	}

	news, err := s.store.Update(ctx, id, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrArticleNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	s.cache.InvalidatePrefix(ctx, constants.CacheKeyBreakingNews)

	return toBreakingNewsResponse(news, true), nil
}

func (s *BreakingNewsService) Delete(ctx context.Context, id uint) error {
	ctx = ctxutil.WithModuleFunction(ctx, "service", "DeleteBreakingNews")

	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrArticleNotFound
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	s.cache.InvalidatePrefix(ctx, constants.CacheKeyBreakingNews)

	return nil
}

func toBreakingNewsResponse(news *model.BreakingNews, withAuthorEmail bool) *dto.NewsResponse {
	resp := &dto.NewsResponse{
		ID:         news.ID,
		Title:      news.Title,
		Content:    news.Content,
		Image:      news.Image,
		AuthorName: news.AuthorName,
		Slug:       news.Slug,
		CreatedAt:  news.CreatedAt,
	}
	if withAuthorEmail {
		resp.AuthorEmail = news.AuthorEmail
	}
	return resp
}
