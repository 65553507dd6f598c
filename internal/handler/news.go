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

type NewsHandler struct {
	newsService *service.NewsService
}

func NewNewsHandler(newsService *service.NewsService) *NewsHandler {
	return &NewsHandler{
		newsService: newsService,
	}
}

// Create stores a new article authored by the authenticated account.
func (h *NewsHandler) Create(c *gin.Context) {
	ctx := ctxutil.WithModuleFunction(c.Request.Context(), "handler", "CreateNews")

	account, ok := middleware.AccountFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized,
			constants.NewErrorResponse(http.StatusUnauthorized, constants.MsgUnauthorized))
		return
	}

	var req dto.CreateNewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnWithContext(ctx, "Invalid create news request").
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest,
			constants.NewErrorResponse(http.StatusBadRequest, validation.MessageForError(err)))
		return
	}

	news, err := h.newsService.Create(ctx, &req, account)
	if err != nil {
		logger.ErrorWithContext(ctx, "Create news failed").
			String("title", req.Title).
			Err(err).
			Log()
		status := apperrors.ToHTTPStatus(err)
		c.JSON(status, constants.NewErrorResponse(status, apperrors.GetErrorMessage(err)))
		return
	}

	logger.InfoWithContext(ctx, "News created").
		Int("news_id", int(news.ID)).
		String("slug", news.Slug).
		Log()

	c.JSON(http.StatusCreated, constants.NewResponse(http.StatusCreated, news, constants.MsgCreated))
}

// List returns paginated articles, newest first. A category query parameter
// narrows the listing.
func (h *NewsHandler) List(c *gin.Context) {
	ctx := ctxutil.WithModuleFunction(c.Request.Context(), "handler", "ListNews")

	page := constants.ParsePaginationParams(c)
	category := c.Query(constants.QueryParamCategory)

	var (
		items []dto.NewsResponse
		total int64
		err   error
	)
	if category != "" {
		items, total, err = h.newsService.ListByCategory(ctx, category, page)
	} else {
		items, total, err = h.newsService.List(ctx, page)
	}
	if err != nil {
		logger.ErrorWithContext(ctx, "List news failed").
			String("category", category).
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

// GetBySlug returns a single article addressed by its slug or bare id.
func (h *NewsHandler) GetBySlug(c *gin.Context) {
	ctx := ctxutil.WithModuleFunction(c.Request.Context(), "handler", "GetNewsBySlug")

	news, err := h.newsService.GetBySlug(ctx, c.Param("slug"))
	if err != nil {
		logger.WarnWithContext(ctx, "News lookup failed").
			String("slug", c.Param("slug")).
			Err(err).
			Log()
		status := apperrors.ToHTTPStatus(err)
		c.JSON(status, constants.NewErrorResponse(status, apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, constants.NewResponse(http.StatusOK, news, constants.MsgSuccess))
}

// Update rewrites an article's content fields and regenerates the slug.
func (h *NewsHandler) Update(c *gin.Context) {
	ctx := ctxutil.WithModuleFunction(c.Request.Context(), "handler", "UpdateNews")

	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest,
			constants.NewErrorResponse(http.StatusBadRequest, "invalid news id"))
		return
	}

	var req dto.UpdateNewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnWithContext(ctx, "Invalid update news request").
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest,
			constants.NewErrorResponse(http.StatusBadRequest, validation.MessageForError(err)))
		return
	}

	news, err := h.newsService.Update(ctx, id, &req)
	if err != nil {
		logger.WarnWithContext(ctx, "Update news failed").
			Int("news_id", int(id)).
			Err(err).
			Log()
		status := apperrors.ToHTTPStatus(err)
		c.JSON(status, constants.NewErrorResponse(status, apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, constants.NewResponse(http.StatusOK, news, constants.MsgUpdated))
}

// Delete removes an article.
func (h *NewsHandler) Delete(c *gin.Context) {
	ctx := ctxutil.WithModuleFunction(c.Request.Context(), "handler", "DeleteNews")

	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest,
			constants.NewErrorResponse(http.StatusBadRequest, "invalid news id"))
		return
	}

	if err := h.newsService.Delete(ctx, id); err != nil {
		logger.WarnWithContext(ctx, "Delete news failed").
			Int("news_id", int(id)).
			Err(err).
			Log()
		status := apperrors.ToHTTPStatus(err)
		c.JSON(status, constants.NewErrorResponse(status, apperrors.GetErrorMessage(err)))
		return
	}

	logger.InfoWithContext(ctx, "News deleted").
		Int("news_id", int(id)).
		Log()

	c.JSON(http.StatusOK, constants.NewResponse(http.StatusOK, struct{}{}, constants.MsgDeleted))
}
