package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/khabar-digital/newsroom/config"
	"github.com/khabar-digital/newsroom/internal/handler"
	"github.com/khabar-digital/newsroom/internal/middleware"
)

type Router struct {
	authHandler     *handler.AuthHandler
	userHandler     *handler.UserHandler
	newsHandler     *handler.NewsHandler
	breakingHandler *handler.BreakingNewsHandler
	healthHandler   *handler.HealthHandler

	authMw *middleware.AuthMiddleware
	Config *config.Config
}

func NewRouter(
	auth *handler.AuthHandler,
	user *handler.UserHandler,
	news *handler.NewsHandler,
	breaking *handler.BreakingNewsHandler,
	health *handler.HealthHandler,
	authMw *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authHandler:     auth,
		userHandler:     user,
		newsHandler:     news,
		breakingHandler: breaking,
		healthHandler:   health,
		authMw:          authMw,
		Config:          cfg,
	}
}

func (r *Router) SetupRoutes() *gin.Engine {
	router := gin.New()

	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.RequestContext())
	router.Use(middleware.CORS())

	api := router.Group("/api")
	{
		api.GET("/health", r.healthHandler.HealthCheck)

		v1 := api.Group("/v1")
		{
			v1.Use(middleware.RateLimit(r.Config.RateLimit.Request,
				time.Duration(r.Config.RateLimit.Duration)*time.Second))

			r.authRoutes(v1)
			r.userRoutes(v1)
			r.newsRoutes(v1)
			r.breakingNewsRoutes(v1)
		}
	}

	return router
}
