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

type BreakingNewsHandler struct {
	breakingService *service.BreakingNewsService
}

func NewBreakingNewsHandler(breakingService *service.BreakingNewsService) *BreakingNewsHandler {
	return &BreakingNewsHandler{
		breakingService: breakingService,
	}
}

func (h *BreakingNewsHandler) Create(c *gin.Context) {
	ctx := ctxutil.WithModuleFunction(c.Request.Context(), "handler", "CreateBreakingNews")

	account, ok := middleware.AccountFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized,
			constants.NewErrorResponse(http.StatusUnauthorized, constants.MsgUnauthorized))
		return
	}

	var req dto.CreateBreakingNewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnWithContext(ctx, "Invalid create breaking news request").
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest,
			constants.NewErrorResponse(http.StatusBadRequest, validation.MessageForError(err)))
		return
	}

	news, err := h.breakingService.Create(ctx, &req, account)
	if err != nil {
		logger.ErrorWithContext(ctx, "Create breaking news failed").
			String("title", req.Title).
			Err(err).
			Log()
		status := apperrors.ToHTTPStatus(err)
		c.JSON(status, constants.NewErrorResponse(status, apperrors.GetErrorMessage(err)))
		return
	}

	logger.InfoWithContext(ctx, "Breaking news created").
		Int("breaking_news_id", int(news.ID)).
		String("slug", news.Slug).
		Log()

	c.JSON(http.StatusCreated, constants.NewResponse(http.StatusCreated, news, constants.MsgCreated))
}

func (h *BreakingNewsHandler) List(c *gin.Context) {
	ctx := ctxutil.WithModuleFunction(c.Request.Context(), "handler", "ListBreakingNews")

	page := constants.ParsePaginationParams(c)

	items, total, err := h.breakingService.List(ctx, page)
	if err != nil {
		logger.ErrorWithContext(ctx, "List breaking news failed").
			Err(err).
			Log()
		status := apperrors.ToHTTPStatus(err)
		c.JSON(status, constants.NewErrorResponse(status, apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, constants.NewResponse(http.StatusOK, constants.ListPayload{
		Items: items,
		Total: total,
		Page:  page.Page,
	}, constants.MsgSuccess))
}

func (h *BreakingNewsHandler) GetBySlug(c *gin.Context) {
	ctx := ctxutil.WithModuleFunction(c.Request.Context(), "handler", "GetBreakingNewsBySlug")

	news, err := h.breakingService.GetBySlug(ctx, c.Param("slug"))
	if err != nil {
		logger.WarnWithContext(ctx, "Breaking news lookup failed").
			String("slug", c.Param("slug")).
			Err(err).
			Log()
		status := apperrors.ToHTTPStatus(err)
		c.JSON(status, constants.NewErrorResponse(status, apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, constants.NewResponse(http.StatusOK, news, constants.MsgSuccess))
}

func (h *BreakingNewsHandler) Update(c *gin.Context) {
	ctx := ctxutil.WithModuleFunction(c.Request.Context(), "handler", "UpdateBreakingNews")

	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest,
			constants.NewErrorResponse(http.StatusBadRequest, "invalid breaking news id"))
		return
	}

	var req dto.UpdateBreakingNewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnWithContext(ctx, "Invalid update breaking news request").
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest,
			constants.NewErrorResponse(http.StatusBadRequest, validation.MessageForError(err)))
		return
	}

	news, err := h.breakingService.Update(ctx, id, &req)
	if err != nil {
		logger.WarnWithContext(ctx, "Update breaking news failed").
			Int("breaking_news_id", int(id)).
			Err(err).
			Log()
		status := apperrors.ToHTTPStatus(err)
		c.JSON(status, constants.NewErrorResponse(status, apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, constants.NewResponse(http.StatusOK, news, constants.MsgUpdated))
}

func (h *BreakingNewsHandler) Delete(c *gin.Context) {
	ctx := ctxutil.WithModuleFunction(c.Request.Context(), "handler", "DeleteBreakingNews")

	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest,
			constants.NewErrorResponse(http.StatusBadRequest, "invalid breaking news id"))
		return
	}

	if err := h.breakingService.Delete(ctx, id); err != nil {
		logger.WarnWithContext(ctx, "Delete breaking news failed").
			Int("breaking_news_id", int(id)).
			Err(err).
			Log()
		status := apperrors.ToHTTPStatus(err)
		c.JSON(status, constants.NewErrorResponse(status, apperrors.GetErrorMessage(err)))
		return
	}

	logger.InfoWithContext(ctx, "Breaking news deleted").
		Int("breaking_news_id", int(id)).
		Log()

	c.JSON(http.StatusOK, constants.NewResponse(http.StatusOK, struct{}{}, constants.MsgDeleted))
}
