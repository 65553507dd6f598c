package router

import "github.com/gin-gonic/gin"

func (r *Router) newsRoutes(version *gin.RouterGroup) {
	news := version.Group("/news")
	{
		news.GET("", r.newsHandler.List)
		news.GET("/:slug", r.newsHandler.GetBySlug)

		protected := news.Group("")
		protected.Use(r.authMw.RequireAuth())
		{
			protected.POST("", r.newsHandler.Create)
			protected.PUT("/:id", r.newsHandler.Update)
			protected.DELETE("/:id", r.newsHandler.Delete)
		}
	}
}
