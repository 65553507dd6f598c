package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khabar-digital/newsroom/config"
	apperrors "github.com/khabar-digital/newsroom/internal/errors"
)

type fakeSessionStore struct {
	tokens map[uint]string
	err    error
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{tokens: make(map[uint]string)}
}

func (f *fakeSessionStore) UpdateRefreshToken(_ context.Context, id uint, refreshToken string) error {
	if f.err != nil {
		return f.err
	}
	f.tokens[id] = refreshToken
	return nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		AccessSecret:  "access-secret-for-tests",
		RefreshSecret: "refresh-secret-for-tests",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 7 * 24 * time.Hour,
	}
}

func TestTokenService_AccessTokenRoundTrip(t *testing.T) {
	svc := NewTokenService(testJWTConfig(), newFakeSessionStore())

	token, err := svc.IssueAccessToken(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	id, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
}

func TestTokenService_RefreshTokenRejectedAsAccess(t *testing.T) {
	svc := NewTokenService(testJWTConfig(), newFakeSessionStore())

	refresh, err := svc.IssueRefreshToken(42)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(refresh)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestTokenService_ExpiredTokenRejected(t *testing.T) {
	cfg := testJWTConfig()
	cfg.AccessExpiry = -time.Minute
	svc := NewTokenService(cfg, newFakeSessionStore())

	token, err := svc.IssueAccessToken(7)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestTokenService_GarbageTokenRejected(t *testing.T) {
	svc := NewTokenService(testJWTConfig(), newFakeSessionStore())

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := svc.ValidateAccessToken(token)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	}
}

func TestTokenService_IssueTokenPairPersistsRefreshToken(t *testing.T) {
	sessions := newFakeSessionStore()
	svc := NewTokenService(testJWTConfig(), sessions)

	pair, err := svc.IssueTokenPair(context.Background(), 9)
	require.NoError(t, err)
	require.NotNil(t, pair)

	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	assert.Equal(t, pair.RefreshToken, sessions.tokens[9])
}

func TestTokenService_IssueTokenPairPersistenceFailure(t *testing.T) {
	sessions := newFakeSessionStore()
	sessions.err = errors.New("store down")
	svc := NewTokenService(testJWTConfig(), sessions)

	pair, err := svc.IssueTokenPair(context.Background(), 9)
	assert.Nil(t, pair)
	assert.ErrorIs(t, err, apperrors.ErrInternal)
}
