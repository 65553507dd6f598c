package service

import (
	"context"
	"encoding/json"
	"time"

	ctxutil "github.com/khabar-digital/newsroom/pkg/context"
	"github.com/khabar-digital/newsroom/pkg/logger"
	pkgredis "github.com/khabar-digital/newsroom/pkg/redis"
)

// listingTTL bounds staleness of cached article listings; writes invalidate
// eagerly so the TTL is only a backstop.
const listingTTL = 5 * time.Minute

// ListingCache is the caching surface the article services use. A nil
// *CacheService is a valid no-op implementation, so the services run fine
// without redis in tests.
type ListingCache interface {
	GetListing(ctx context.Context, key string, out any) bool
	SetListing(ctx context.Context, key string, value any)
	InvalidatePrefix(ctx context.Context, prefix string)
}

// CacheService stores JSON-encoded article listings in redis. Cache errors
// are logged and swallowed: the store remains the source of truth.
type CacheService struct {
	client *pkgredis.Client
}

func NewCacheService(client *pkgredis.Client) *CacheService {
	return &CacheService{client: client}
}

// GetListing reports whether the key was present and decoded into out.
func (s *CacheService) GetListing(ctx context.Context, key string, out any) bool {
	if s == nil || s.client == nil {
		return false
	}
	ctx = ctxutil.WithModuleFunction(ctx, "service", "GetListing")

	raw, err := s.client.Get(ctx, key)
	if err != nil {
		logger.WarnWithContext(ctx, "Cache read failed").
			String("key", key).
			Err(err).
			Log()
		return false
	}
	if raw == "" {
		return false
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		logger.WarnWithContext(ctx, "Cache entry corrupt, ignoring").
			String("key", key).
			Err(err).
			Log()
		return false
	}

	return true
}

func (s *CacheService) SetListing(ctx context.Context, key string, value any) {
	if s == nil || s.client == nil {
		return
	}
	ctx = ctxutil.WithModuleFunction(ctx, "service", "SetListing")

	raw, err := json.Marshal(value)
	if err != nil {
		logger.WarnWithContext(ctx, "Cache encode failed").
			String("key", key).
			Err(err).
			Log()
		return
	}

	if err := s.client.Set(ctx, key, string(raw), listingTTL); err != nil {
		logger.WarnWithContext(ctx, "Cache write failed").
			String("key", key).
			Err(err).
			Log()
	}
}

// InvalidatePrefix drops every cached listing under a prefix, e.g. all news
// pages after an article write.
func (s *CacheService) InvalidatePrefix(ctx context.Context, prefix string) {
	if s == nil || s.client == nil {
		return
	}
	ctx = ctxutil.WithModuleFunction(ctx, "service", "InvalidatePrefix")

	if err := s.client.DeleteByPrefix(ctx, prefix); err != nil {
		logger.WarnWithContext(ctx, "Cache invalidation failed").
			String("prefix", prefix).
			Err(err).
			Log()
	}
}

// compile-time check that the redis-backed cache satisfies ListingCache
var _ ListingCache = (*CacheService)(nil)
