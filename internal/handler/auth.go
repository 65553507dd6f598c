package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khabar-digital/newsroom/internal/constants"
	"github.com/khabar-digital/newsroom/internal/dto"
	apperrors "github.com/khabar-digital/newsroom/internal/errors"
	"github.com/khabar-digital/newsroom/internal/middleware"
	"github.com/khabar-digital/newsroom/internal/service"
	ctxutil "github.com/khabar-digital/newsroom/pkg/context"
	"github.com/khabar-digital/newsroom/pkg/logger"
	"github.com/khabar-digital/newsroom/pkg/validation"
)

type AuthHandler struct {
	userService  *service.UserService
	tokenService *service.TokenService
}

func NewAuthHandler(userService *service.UserService, tokenService *service.TokenService) *AuthHandler {
	return &AuthHandler{
		userService:  userService,
		tokenService: tokenService,
	}
}

// Login authenticates a user and issues the token pair. Both tokens are set
// as http-only secure cookies; the access token is also returned in the
// body. An inactive account gets a success-shaped response with an empty
// payload and no tokens.
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := ctxutil.WithModuleFunction(c.Request.Context(), "handler", "Login")

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnWithContext(ctx, "Invalid login request").
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest,
			constants.NewErrorResponse(http.StatusBadRequest, validation.MessageForError(err)))
		return
	}

	logger.InfoWithContext(ctx, "Login attempt").
		String("user_name", req.UserName).
		Log()

	result, err := h.userService.Login(ctx, req.UserName, req.Password)
	if err != nil {
		logger.WarnWithContext(ctx, "Login failed").
			String("user_name", req.UserName).
			Err(err).
			Log()
		status := apperrors.ToHTTPStatus(err)
		c.JSON(status, constants.NewErrorResponse(status, apperrors.GetErrorMessage(err)))
		return
	}

	if !result.Activated {
		logger.InfoWithContext(ctx, "Login blocked for inactive account").
			String("user_name", req.UserName).
			Log()
		c.JSON(http.StatusOK, constants.NewResponse(http.StatusOK, struct{}{},
			"Account is not activated yet"))
		return
	}

	h.setAuthCookies(c, result.Tokens)

	logger.InfoWithContext(ctx, "Login successful").
		String("user_name", req.UserName).
		Int("user_id", int(result.User.ID)).
		Log()

	c.JSON(http.StatusOK, constants.NewResponse(http.StatusOK, dto.LoginResponse{
		User:        *result.User,
		AccessToken: result.Tokens.AccessToken,
	}, "Login successful"))
}

// Logout clears the stored refresh token and both auth cookies. Only
// reachable behind the auth guard.
func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := ctxutil.WithModuleFunction(c.Request.Context(), "handler", "Logout")

	account, ok := middleware.AccountFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized,
			constants.NewErrorResponse(http.StatusUnauthorized, constants.MsgUnauthorized))
		return
	}

	if err := h.userService.Logout(ctx, account.ID); err != nil {
		logger.ErrorWithContext(ctx, "Logout failed").
			Int("user_id", int(account.ID)).
			Err(err).
			Log()
		status := apperrors.ToHTTPStatus(err)
		c.JSON(status, constants.NewErrorResponse(status, apperrors.GetErrorMessage(err)))
		return
	}

	h.clearAuthCookies(c)

	logger.InfoWithContext(ctx, "Logout successful").
		Int("user_id", int(account.ID)).
		Log()

	c.JSON(http.StatusOK, constants.NewResponse(http.StatusOK, struct{}{}, "Logout successful"))
}

// ChangePassword verifies the old password and stores a hash of the new one.
// Existing sessions are left untouched.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	ctx := ctxutil.WithModuleFunction(c.Request.Context(), "handler", "ChangePassword")

	account, ok := middleware.AccountFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized,
			constants.NewErrorResponse(http.StatusUnauthorized, constants.MsgUnauthorized))
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnWithContext(ctx, "Invalid change password request").
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest,
			constants.NewErrorResponse(http.StatusBadRequest, validation.MessageForError(err)))
		return
	}

	if err := h.userService.ChangePassword(ctx, account.ID, &req); err != nil {
		logger.WarnWithContext(ctx, "Change password failed").
			Int("user_id", int(account.ID)).
			Err(err).
			Log()
		status := apperrors.ToHTTPStatus(err)
		c.JSON(status, constants.NewErrorResponse(status, apperrors.GetErrorMessage(err)))
		return
	}

	logger.InfoWithContext(ctx, "Password changed").
		Int("user_id", int(account.ID)).
		Log()

	c.JSON(http.StatusOK, constants.NewResponse(http.StatusOK, struct{}{}, "Password changed successfully"))
}

func (h *AuthHandler) setAuthCookies(c *gin.Context, tokens *dto.TokenPair) {
	c.SetCookie(constants.CookieAccessToken, tokens.AccessToken,
		int(h.tokenService.AccessExpiry().Seconds()), "/", "", true, true)
	c.SetCookie(constants.CookieRefreshToken, tokens.RefreshToken,
		int(h.tokenService.RefreshExpiry().Seconds()), "/", "", true, true)
}

func (h *AuthHandler) clearAuthCookies(c *gin.Context) {
	c.SetCookie(constants.CookieAccessToken, "", -1, "/", "", true, true)
	c.SetCookie(constants.CookieRefreshToken, "", -1, "/", "", true, true)
}
