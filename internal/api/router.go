package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Auth      *AuthHandler
	Dashboard *DashboardHandler
	Projects  *ProjectHandler
	Board     *BoardHandler
	Feed      *FeedHandler
}

// CORS 允許前端跨域存取
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE, PATCH")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func RegisterRoutes(r *gin.Engine, h Handlers) {
	r.POST("/api/login", h.Auth.Login)

	// 公開 API
	v1 := r.Group("/api/v1")
	{
		v1.GET("/dashboard", h.Dashboard.GetDashboard)

		v1.GET("/projects", h.Projects.ListProjects)
		v1.GET("/projects/:id", h.Projects.GetProject)
		v1.POST("/projects/:id/like", h.Projects.LikeProject)

		v1.GET("/posts", h.Board.ListPosts)
		v1.GET("/posts/:id", h.Board.GetPost)
		v1.POST("/posts/:id/like", h.Board.LikePost)
		v1.GET("/posts/:id/comments", h.Board.ListComments)
		v1.POST("/posts/:id/comments", h.Board.CreateComment)

		v1.GET("/feed", h.Feed.Stream)
		v1.PUT("/feed/:id/options", h.Feed.UpdateOptions)
		v1.POST("/feed/:id/retry", h.Feed.Retry)
		v1.DELETE("/feed/:id", h.Feed.Close)
	}

	// 管理 API (受保護)
	admin := v1.Group("/admin")
	admin.Use(AuthMiddleware(h.Auth.Auth), RequireAdmin())
	{
		admin.POST("/dashboard/refresh", h.Dashboard.RefreshDashboard)
	}
}
