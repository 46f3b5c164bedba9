package app

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"weiterbildung_backend/docs"
	"weiterbildung_backend/internal/config"
	"weiterbildung_backend/internal/middleware"
	"weiterbildung_backend/internal/model"
	"weiterbildung_backend/pkg/monitoring"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, s *services, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	var checker middleware.TokenChecker
	if s.revoker != nil {
		checker = s.revoker
	}

	// 1. 公共路由（无需登录）
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.GET("/catalog", c.catalog.GetCatalog)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.POST("/admin/login", c.auth.AdminLogin)
	}

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg, checker))
	{
		authGroup.GET("/profile", c.auth.GetProfile)
		authGroup.POST("/logout", c.auth.Logout)

		authGroup.GET("/checklist", c.checklist.GetChecklist)
		authGroup.POST("/checklist/tasks/:taskId/subtasks/:index/toggle", c.checklist.ToggleSubtask)
		authGroup.POST("/checklist/tasks/:taskId/rating", c.checklist.SubmitRating)

		authGroup.GET("/statistics", c.stats.GetStatistics)

		authGroup.GET("/comments", c.comment.ListComments)
		authGroup.POST("/comments", c.comment.PostComment)
		authGroup.DELETE("/comments/:id", c.comment.DeleteComment)

		authGroup.GET("/pdfs", c.pdf.ListHandouts)
		authGroup.GET("/pdfs/:taskId", c.pdf.GetHandout)
	}

	// 3. 管理员接口
	adminGroup := router.Group("/api/admin")
	adminGroup.Use(middleware.AuthMiddleware(cfg, checker), middleware.RoleMiddleware(model.Admin))
	{
		adminGroup.GET("/users", c.admin.ListUsers)
		adminGroup.POST("/users/:id/reset", c.admin.ResetUserProgress)
		adminGroup.DELETE("/users/:id", c.admin.DeleteUser)
		adminGroup.DELETE("/users", c.admin.DeleteAllUsers)

		adminGroup.GET("/dashboard", c.admin.GetDashboard)
		adminGroup.GET("/export", c.admin.ExportData)

		adminGroup.POST("/pdfs/:taskId", c.pdf.UploadHandout)
		adminGroup.DELETE("/pdfs/:taskId", c.pdf.DeleteHandout)
	}
}
