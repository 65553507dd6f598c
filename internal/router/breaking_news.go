package router

import "github.com/gin-gonic/gin"

func (r *Router) breakingNewsRoutes(version *gin.RouterGroup) {
	breaking := version.Group("/breaking-news")
	{
		breaking.GET("", r.breakingHandler.List)
		breaking.GET("/:slug", r.breakingHandler.GetBySlug)

		protected := breaking.Group("")
		protected.Use(r.authMw.RequireAuth())
		{
			protected.POST("", r.breakingHandler.Create)
			protected.PUT("/:id", r.breakingHandler.Update)
			protected.DELETE("/:id", r.breakingHandler.Delete)
		}
	}
}
