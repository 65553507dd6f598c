package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/khabar-digital/newsroom/internal/constants"
	"github.com/khabar-digital/newsroom/internal/dto"
	apperrors "github.com/khabar-digital/newsroom/internal/errors"
	"github.com/khabar-digital/newsroom/internal/model"
)

type fakeNewsStore struct {
	articles map[uint]*model.News
	nextID   uint
}

func newFakeNewsStore() *fakeNewsStore {
	return &fakeNewsStore{articles: make(map[uint]*model.News), nextID: 1}
}

func (f *fakeNewsStore) Create(_ context.Context, news *model.News) error {
	news.ID = f.nextID
	f.nextID++
	f.articles[news.ID] = news
	return nil
}

func (f *fakeNewsStore) GetByID(_ context.Context, id uint) (*model.News, error) {
	news, ok := f.articles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return news, nil
}

func (f *fakeNewsStore) GetAll(_ context.Context, limit, offset int) ([]model.News, int64, error) {
	var all []model.News
	for _, news := range f.articles {
		all = append(all, *news)
	}
	return window(all, limit, offset), int64(len(f.articles)), nil
}

func (f *fakeNewsStore) GetByCategory(_ context.Context, category string, limit, offset int) ([]model.News, int64, error) {
	var matched []model.News
	for _, news := range f.articles {
		if news.Category == category {
			matched = append(matched, *news)
		}
	}
	return window(matched, limit, offset), int64(len(matched)), nil
}

func (f *fakeNewsStore) Update(_ context.Context, id uint, fields map[string]interface{}) (*model.News, error) {
	news, ok := f.articles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if title, ok := fields["title"].(string); ok {
		news.Title = title
	}
	if content, ok := fields["content"].(string); ok {
		news.Content = content
	}
	if category, ok := fields["category"].(string); ok {
		news.Category = category
	}
	if slug, ok := fields["slug"].(string); ok {
		news.Slug = slug
	}
	return news, nil
}

func (f *fakeNewsStore) UpdateSlug(_ context.Context, id uint, slug string) error {
	news, ok := f.articles[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	news.Slug = slug
	return nil
}

func (f *fakeNewsStore) Delete(_ context.Context, id uint) error {
	if _, ok := f.articles[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.articles, id)
	return nil
}

func window(items []model.News, limit, offset int) []model.News {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// fakeListingCache records stores and invalidations and serves hits from a
// plain map, mirroring the redis-backed implementation.
type fakeListingCache struct {
	entries     map[string][]byte
	invalidated []string
}

func newFakeListingCache() *fakeListingCache {
	return &fakeListingCache{entries: make(map[string][]byte)}
}

func (f *fakeListingCache) GetListing(_ context.Context, key string, out any) bool {
	raw, ok := f.entries[key]
	if !ok {
		return false
	}
	return json.Unmarshal(raw, out) == nil
}

func (f *fakeListingCache) SetListing(_ context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	f.entries[key] = raw
}

func (f *fakeListingCache) InvalidatePrefix(_ context.Context, prefix string) {
	f.invalidated = append(f.invalidated, prefix)
	for key := range f.entries {
		if strings.HasPrefix(key, prefix) {
			delete(f.entries, key)
		}
	}
}

func testAuthor() *dto.UserResponse {
	return &dto.UserResponse{
		ID:       3,
		FullName: "Sita Koirala",
		Email:    "sita@example.com",
	}
}

func TestMakeSlug(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Breaking Story", "breaking-story"},
		{"  Extra   Spaces  Here ", "extra-spaces-here"},
		{"ALL CAPS TITLE", "all-caps-title"},
		{"single", "single"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MakeSlug(tt.title))
	}
}

func TestExtractID(t *testing.T) {
	id, err := ExtractID("breaking-story-42")
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	id, err = ExtractID("7")
	require.NoError(t, err)
	assert.Equal(t, uint(7), id)

	_, err = ExtractID("no-id-here")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestNewsService_CreateFinalizesSlug(t *testing.T) {
	store := newFakeNewsStore()
	cache := newFakeListingCache()
	svc := NewNewsService(store, cache)

	news, err := svc.Create(context.Background(), &dto.CreateNewsRequest{
		Title:    "Monsoon Floods Hit Valley",
		Content:  "body",
		Image:    "https://cdn.example.com/flood.jpg",
		Category: "weather",
		Tags:     []string{"monsoon", "flood"},
	}, testAuthor())
	require.NoError(t, err)

	assert.Equal(t, fmt.Sprintf("monsoon-floods-hit-valley-%d", news.ID), news.Slug)
	assert.Equal(t, news.Slug, store.articles[news.ID].Slug)
	assert.Equal(t, "Sita Koirala", news.AuthorName)
	assert.Equal(t, "sita@example.com", news.AuthorEmail)
	assert.Contains(t, cache.invalidated, constants.CacheKeyNews)
}

func TestNewsService_GetBySlug(t *testing.T) {
	store := newFakeNewsStore()
	svc := NewNewsService(store, newFakeListingCache())

	created, err := svc.Create(context.Background(), &dto.CreateNewsRequest{
		Title:    "Budget Session Opens",
		Content:  "body",
		Image:    "https://cdn.example.com/budget.jpg",
		Category: "politics",
		Tags:     []string{"parliament"},
	}, testAuthor())
	require.NoError(t, err)

	fetched, err := svc.GetBySlug(context.Background(), created.Slug)
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)
	// author email stays off the public projection
	assert.Empty(t, fetched.AuthorEmail)

	_, err = svc.GetBySlug(context.Background(), "missing-999")
	assert.ErrorIs(t, err, apperrors.ErrArticleNotFound)
}

func TestNewsService_ListUsesCache(t *testing.T) {
	store := newFakeNewsStore()
	cache := newFakeListingCache()
	svc := NewNewsService(store, cache)

	_, err := svc.Create(context.Background(), &dto.CreateNewsRequest{
		Title:    "First",
		Content:  "body",
		Image:    "https://cdn.example.com/1.jpg",
		Category: "local",
		Tags:     []string{"a"},
	}, testAuthor())
	require.NoError(t, err)

	page := constants.PaginationParams{Page: 1, Limit: 20, Offset: 0}

	items, total, err := svc.List(context.Background(), page)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, int64(1), total)

	// second read is served from cache even if the store changes underneath
	store.articles[99] = &model.News{Title: "Phantom"}
	cachedItems, cachedTotal, err := svc.List(context.Background(), page)
	require.NoError(t, err)
	assert.Len(t, cachedItems, 1)
	assert.Equal(t, int64(1), cachedTotal)
}

func TestNewsService_WritesInvalidateListings(t *testing.T) {
	store := newFakeNewsStore()
	cache := newFakeListingCache()
	svc := NewNewsService(store, cache)

	created, err := svc.Create(context.Background(), &dto.CreateNewsRequest{
		Title:    "Original Title",
		Content:  "body",
		Image:    "https://cdn.example.com/x.jpg",
		Category: "sports",
		Tags:     []string{"football"},
	}, testAuthor())
	require.NoError(t, err)

	page := constants.PaginationParams{Page: 1, Limit: 20, Offset: 0}
	_, _, err = svc.ListByCategory(context.Background(), "sports", page)
	require.NoError(t, err)
	require.NotEmpty(t, cache.entries)

	updated, err := svc.Update(context.Background(), created.ID, &dto.UpdateNewsRequest{
		Title:    "Rewritten Title",
		Content:  "new body",
		Category: "sports",
		Tags:     []string{"football"},
	})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("rewritten-title-%d", created.ID), updated.Slug)
	assert.Empty(t, cache.entries)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	_, err = svc.GetBySlug(context.Background(), updated.Slug)
	assert.ErrorIs(t, err, apperrors.ErrArticleNotFound)
}

func TestNewsService_UpdateMissing(t *testing.T) {
	svc := NewNewsService(newFakeNewsStore(), newFakeListingCache())

	_, err := svc.Update(context.Background(), 123, &dto.UpdateNewsRequest{
		Title:    "Anything",
		Content:  "body",
		Category: "misc",
		Tags:     []string{"t"},
	})
	assert.ErrorIs(t, err, apperrors.ErrArticleNotFound)

	err = svc.Delete(context.Background(), 123)
	assert.ErrorIs(t, err, apperrors.ErrArticleNotFound)
}
