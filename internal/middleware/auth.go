package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/khabar-digital/newsroom/internal/constants"
	"github.com/khabar-digital/newsroom/internal/dto"
	"github.com/khabar-digital/newsroom/internal/service"
	ctxutil "github.com/khabar-digital/newsroom/pkg/context"
	"github.com/khabar-digital/newsroom/pkg/logger"
)

// accountKey is the gin context key the guard stores the resolved account
// under. Handlers read it back through AccountFromContext.
const accountKey = "auth.account"

// AccountResolver loads the sanitized account projection for a verified
// token subject. Satisfied by *service.UserService.
type AccountResolver interface {
	GetByID(ctx context.Context, id uint) (*dto.UserResponse, error)
}

type AuthMiddleware struct {
	tokens   *service.TokenService
	accounts AccountResolver
}

func NewAuthMiddleware(tokens *service.TokenService, accounts AccountResolver) *AuthMiddleware {
	return &AuthMiddleware{
		tokens:   tokens,
		accounts: accounts,
	}
}

// RequireAuth verifies the access token and attaches the account to the
// request. The token is read from the access_token cookie first, then from
// the Authorization header. Any failure aborts with 401 and the generic
// unauthorized message.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := m.extractToken(c)
		if tokenString == "" {
			logger.WarnWithContext(c.Request.Context(), "Missing access token").
				String("method", c.Request.Method).
				String("path", c.Request.URL.Path).
				Log()
			abortUnauthorized(c)
			return
		}

		accountID, err := m.tokens.ValidateAccessToken(tokenString)
		if err != nil {
			logger.WarnWithContext(c.Request.Context(), "Invalid or expired access token").
				String("method", c.Request.Method).
				String("path", c.Request.URL.Path).
				Err(err).
				Log()
			abortUnauthorized(c)
			return
		}

		ctx := ctxutil.WithUserID(c.Request.Context(), accountID)
		c.Request = c.Request.WithContext(ctx)

		account, err := m.accounts.GetByID(ctx, accountID)
		if err != nil {
			logger.WarnWithContext(ctx, "Token subject has no matching account").
				Int("account_id", int(accountID)).
				Err(err).
				Log()
			abortUnauthorized(c)
			return
		}

		c.Set(accountKey, account)

		logger.DebugWithContext(ctx, "Request authenticated").
			Int("account_id", int(accountID)).
			Log()

		c.Next()
	}
}

// extractToken prefers the http-only cookie set at login; the Authorization
// header is the fallback for non-browser clients.
func (m *AuthMiddleware) extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(constants.CookieAccessToken); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader(constants.HeaderAuthorization)
	if strings.HasPrefix(authHeader, constants.BearerPrefix) {
		return strings.TrimPrefix(authHeader, constants.BearerPrefix)
	}

	return ""
}

// AccountFromContext returns the account the guard attached to the request.
func AccountFromContext(c *gin.Context) (*dto.UserResponse, bool) {
	value, exists := c.Get(accountKey)
	if !exists {
		return nil, false
	}
	account, ok := value.(*dto.UserResponse)
	return account, ok
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		constants.NewErrorResponse(http.StatusUnauthorized, constants.MsgUnauthorized))
}
