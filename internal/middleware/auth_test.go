package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khabar-digital/newsroom/config"
	"github.com/khabar-digital/newsroom/internal/constants"
	"github.com/khabar-digital/newsroom/internal/dto"
	apperrors "github.com/khabar-digital/newsroom/internal/errors"
	"github.com/khabar-digital/newsroom/internal/service"
)

type stubSessions struct{}

func (stubSessions) UpdateRefreshToken(context.Context, uint, string) error { return nil }

type stubAccounts struct {
	accounts map[uint]*dto.UserResponse
}

func (s *stubAccounts) GetByID(_ context.Context, id uint) (*dto.UserResponse, error) {
	account, ok := s.accounts[id]
	if !ok {
		return nil, apperrors.ErrAccountNotFound
	}
	return account, nil
}

func newTestGuard(t *testing.T) (*AuthMiddleware, *service.TokenService) {
	t.Helper()
	tokens := service.NewTokenService(config.JWTConfig{
		AccessSecret:  "guard-access-secret",
		RefreshSecret: "guard-refresh-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: time.Hour,
	}, stubSessions{})

	accounts := &stubAccounts{accounts: map[uint]*dto.UserResponse{
		7: {ID: 7, UserName: "alice", Email: "alice@example.com"},
	}}

	return NewAuthMiddleware(tokens, accounts), tokens
}

func newTestRouter(guard *AuthMiddleware) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", guard.RequireAuth(), func(c *gin.Context) {
		account, ok := AccountFromContext(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "account missing"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_name": account.UserName})
	})
	return router
}

func TestRequireAuth_MissingToken(t *testing.T) {
	guard, _ := newTestGuard(t)
	router := newTestRouter(guard)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), constants.MsgUnauthorized)
}

func TestRequireAuth_GarbageToken(t *testing.T) {
	guard, _ := newTestGuard(t)
	router := newTestRouter(guard)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(constants.HeaderAuthorization, constants.BearerPrefix+"not-a-token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	expired := service.NewTokenService(config.JWTConfig{
		AccessSecret:  "guard-access-secret",
		RefreshSecret: "guard-refresh-secret",
		AccessExpiry:  -time.Minute,
		RefreshExpiry: time.Hour,
	}, stubSessions{})
	token, err := expired.IssueAccessToken(7)
	require.NoError(t, err)

	guard, _ := newTestGuard(t)
	router := newTestRouter(guard)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(constants.HeaderAuthorization, constants.BearerPrefix+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_UnknownAccount(t *testing.T) {
	guard, tokens := newTestGuard(t)
	router := newTestRouter(guard)

	token, err := tokens.IssueAccessToken(999)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(constants.HeaderAuthorization, constants.BearerPrefix+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_BearerToken(t *testing.T) {
	guard, tokens := newTestGuard(t)
	router := newTestRouter(guard)

	token, err := tokens.IssueAccessToken(7)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(constants.HeaderAuthorization, constants.BearerPrefix+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice")
}

func TestRequireAuth_CookieToken(t *testing.T) {
	guard, tokens := newTestGuard(t)
	router := newTestRouter(guard)

	token, err := tokens.IssueAccessToken(7)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: constants.CookieAccessToken, Value: token})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice")
}

func TestRequireAuth_CookieTakesPrecedenceOverHeader(t *testing.T) {
	guard, tokens := newTestGuard(t)
	router := newTestRouter(guard)

	valid, err := tokens.IssueAccessToken(7)
	require.NoError(t, err)

	// bad cookie must not fall back to the valid header token
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: constants.CookieAccessToken, Value: "stale-token"})
	req.Header.Set(constants.HeaderAuthorization, constants.BearerPrefix+valid)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
