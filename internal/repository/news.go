package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/khabar-digital/newsroom/internal/model"
	ctxutil "github.com/khabar-digital/newsroom/pkg/context"
	"github.com/khabar-digital/newsroom/pkg/logger"
)

type NewsRepository struct {
	db *gorm.DB
}

func NewNewsRepository(db *gorm.DB) *NewsRepository {
	return &NewsRepository{db: db}
}

func (r *NewsRepository) Create(ctx context.Context, news *model.News) error {
	ctx = ctxutil.WithModuleFunction(ctx, "repository", "CreateNews")

	start := time.Now()
	result := r.db.WithContext(ctx).Create(news)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to create news").
			String("title", news.Title).
			Duration(time.Since(start)).
			Err(result.Error).
			Log()
		return result.Error
	}

	logger.InfoWithContext(ctx, "News created").
		Int("news_id", int(news.ID)).
		Duration(time.Since(start)).
		Log()

	return nil
}

func (r *NewsRepository) GetByID(ctx context.Context, id uint) (*model.News, error) {
	ctx = ctxutil.WithModuleFunction(ctx, "repository", "GetNewsByID")

	var news model.News
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&news)
	if result.Error != nil {
		return nil, result.Error
	}

	return &news, nil
}

// GetAll returns news newest first, paginated, together with the total
// count.
func (r *NewsRepository) GetAll(ctx context.Context, limit, offset int) ([]model.News, int64, error) {
	ctx = ctxutil.WithModuleFunction(ctx, "repository", "GetAllNews")

	var items []model.News
	var total int64

	query := r.db.WithContext(ctx).Model(&model.News{})
	if err := query.Count(&total).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to count news").
			Err(err).
			Log()
		return nil, 0, err
	}

	if err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&items).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to fetch news").
			Int("limit", limit).
			Int("offset", offset).
			Err(err).
			Log()
		return nil, 0, err
	}

	return items, total, nil
}

func (r *NewsRepository) GetByCategory(ctx context.Context, category string, limit, offset int) ([]model.News, int64, error) {
	ctx = ctxutil.WithModuleFunction(ctx, "repository", "GetNewsByCategory")

	var items []model.News
	var total int64

	query := r.db.WithContext(ctx).Model(&model.News{}).Where("category = ?", category)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&items).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to fetch news by category").
			String("category", category).
			Err(err).
			Log()
		return nil, 0, err
	}

	return items, total, nil
}

// Update rewrites the editable article fields and the regenerated slug.
func (r *NewsRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) (*model.News, error) {
	ctx = ctxutil.WithModuleFunction(ctx, "repository", "UpdateNews")

	result := r.db.WithContext(ctx).
		Model(&model.News{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to update news").
			Int("news_id", int(id)).
			Err(result.Error).
			Log()
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	return r.GetByID(ctx, id)
}

// UpdateSlug sets the final slug once the record id is known.
func (r *NewsRepository) UpdateSlug(ctx context.Context, id uint, slug string) error {
	ctx = ctxutil.WithModuleFunction(ctx, "repository", "UpdateNewsSlug")

	result := r.db.WithContext(ctx).
		Model(&model.News{}).
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

func (r *NewsRepository) Delete(ctx context.Context, id uint) error {
	ctx = ctxutil.WithModuleFunction(ctx, "repository", "DeleteNews")

	result := r.db.WithContext(ctx).Delete(&model.News{}, id)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to delete news").
			Int("news_id", int(id)).
			Err(result.Error).
			Log()
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	logger.InfoWithContext(ctx, "News deleted").
		Int("news_id", int(id)).
		Log()

	return nil
}
