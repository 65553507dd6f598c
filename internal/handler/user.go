package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/khabar-digital/newsroom/internal/constants"
	"github.com/khabar-digital/newsroom/internal/dto"
	apperrors "github.com/khabar-digital/newsroom/internal/errors"
	"github.com/khabar-digital/newsroom/internal/service"
	ctxutil "github.com/khabar-digital/newsroom/pkg/context"
	"github.com/khabar-digital/newsroom/pkg/logger"
	"github.com/khabar-digital/newsroom/pkg/validation"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// Register creates a new inactive account.
func (h *UserHandler) Register(c *gin.Context) {
	ctx := ctxutil.WithModuleFunction(c.Request.Context(), "handler", "Register")

	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnWithContext(ctx, "Invalid registration request").
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest,
			constants.NewErrorResponse(http.StatusBadRequest, validation.MessageForError(err)))
		return
	}

	logger.InfoWithContext(ctx, "Registration attempt").
		String("user_name", req.UserName).
		String("email", req.Email).
		Log()

	user, err := h.userService.Register(ctx, &req)
	if err != nil {
		logger.WarnWithContext(ctx, "Registration failed").
			String("user_name", req.UserName).
			Err(err).
			Log()
		status := apperrors.ToHTTPStatus(err)
		c.JSON(status, constants.NewErrorResponse(status, apperrors.GetErrorMessage(err)))
		return
	}

	logger.InfoWithContext(ctx, "Account registered").
		String("user_name", user.UserName).
		Int("user_id", int(user.ID)).
		Log()

	c.JSON(http.StatusCreated, constants.NewResponse(http.StatusCreated, user, constants.MsgCreated))
}

// GetByID returns a single sanitized account.
func (h *UserHandler) GetByID(c *gin.Context) {
	ctx := ctxutil.WithModuleFunction(c.Request.Context(), "handler", "GetUserByID")

	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest,
			constants.NewErrorResponse(http.StatusBadRequest, "invalid user id"))
		return
	}

	user, err := h.userService.GetByID(ctx, id)
	if err != nil {
		logger.WarnWithContext(ctx, "User lookup failed").
			Int("user_id", int(id)).
			Err(err).
			Log()
		status := apperrors.ToHTTPStatus(err)
		c.JSON(status, constants.NewErrorResponse(status, apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, constants.NewResponse(http.StatusOK, user, constants.MsgSuccess))
}

// Activate toggles the account active flag.
func (h *UserHandler) Activate(c *gin.Context) {
	ctx := ctxutil.WithModuleFunction(c.Request.Context(), "handler", "ActivateUser")

	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest,
			constants.NewErrorResponse(http.StatusBadRequest, "invalid user id"))
		return
	}

	var req dto.ActivateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnWithContext(ctx, "Invalid activation request").
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest,
			constants.NewErrorResponse(http.StatusBadRequest, validation.MessageForError(err)))
		return
	}

	user, err := h.userService.Activate(ctx, id, *req.IsActive)
	if err != nil {
		logger.WarnWithContext(ctx, "Activation failed").
			Int("user_id", int(id)).
			Err(err).
			Log()
		status := apperrors.ToHTTPStatus(err)
		c.JSON(status, constants.NewErrorResponse(status, apperrors.GetErrorMessage(err)))
		return
	}

	logger.InfoWithContext(ctx, "Account activation updated").
		Int("user_id", int(id)).
		Bool("is_active", user.IsActive).
		Log()

	c.JSON(http.StatusOK, constants.NewResponse(http.StatusOK, user, constants.MsgUpdated))
}

func parseIDParam(c *gin.Context) (uint, error) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
