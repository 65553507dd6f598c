package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/khabar-digital/newsroom/internal/model"
	ctxutil "github.com/khabar-digital/newsroom/pkg/context"
	"github.com/khabar-digital/newsroom/pkg/logger"
)

type BreakingNewsRepository struct {
	db *gorm.DB
}

func NewBreakingNewsRepository(db *gorm.DB) *BreakingNewsRepository {
	return &BreakingNewsRepository{db: db}
}

func (r *BreakingNewsRepository) Create(ctx context.Context, news *model.BreakingNews) error {
	ctx = ctxutil.WithModuleFunction(ctx, "repository", "CreateBreakingNews")

	result := r.db.WithContext(ctx).Create(news)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to create breaking news").
			String("title", news.Title).
			Err(result.Error).
			Log()
		return result.Error
	}

	logger.InfoWithContext(ctx, "Breaking news created").
		Int("breaking_news_id", int(news.ID)).
		Log()

	return nil
}

func (r *BreakingNewsRepository) GetByID(ctx context.Context, id uint) (*model.BreakingNews, error) {
	ctx = ctxutil.WithModuleFunction(ctx, "repository", "GetBreakingNewsByID")

	var news model.BreakingNews
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&news)
	if result.Error != nil {
		return nil, result.Error
	}

	return &news, nil
}

func (r *BreakingNewsRepository) GetAll(ctx context.Context, limit, offset int) ([]model.BreakingNews, int64, error) {
	ctx = ctxutil.WithModuleFunction(ctx, "repository", "GetAllBreakingNews")

	var items []model.BreakingNews
	var total int64

	query := r.db.WithContext(ctx).Model(&model.BreakingNews{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&items).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to fetch breaking news").
			Err(err).
			Log()
		return nil, 0, err
	}

	return items, total, nil
}

func (r *BreakingNewsRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) (*model.BreakingNews, error) {
	ctx = ctxutil.WithModuleFunction(ctx, "repository", "UpdateBreakingNews")

	result := r.db.WithContext(ctx).
		Model(&model.BreakingNews{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to update breaking news").
			Int("breaking_news_id", int(id)).
			Err(result.Error).
			Log()
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *BreakingNewsRepository) UpdateSlug(ctx context.Context, id uint, slug string) error {
	ctx = ctxutil.WithModuleFunction(ctx, "repository", "UpdateBreakingNewsSlug")

	result := r.db.WithContext(ctx).
		Model(&model.BreakingNews{}).
		Where("id = ?", id).
		Update("slug", slug)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *BreakingNewsRepository) Delete(ctx context.Context, id uint) error {
	ctx = ctxutil.WithModuleFunction(ctx, "repository", "DeleteBreakingNews")

	result := r.db.WithContext(ctx).Delete(&model.BreakingNews{}, id)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to delete breaking news").
			Int("breaking_news_id", int(id)).
			Err(result.Error).
			Log()
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
