package router

import "github.com/gin-gonic/gin"

func (r *Router) userRoutes(version *gin.RouterGroup) {
	users := version.Group("/users")
	{
		users.POST("", r.userHandler.Register)
		users.GET("/:id", r.userHandler.GetByID)

		protected := users.Group("")
		protected.Use(r.authMw.RequireAuth())
		{
			protected.POST("/:id/activate", r.userHandler.Activate)
		}
	}
}
