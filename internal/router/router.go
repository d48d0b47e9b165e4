package router

import (
	"github.com/blues/bts/internal/config"
	"github.com/blues/bts/internal/handler"
	"github.com/blues/bts/internal/revenue"
	"github.com/blues/bts/internal/syncer"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(db *gorm.DB, resolver *revenue.Resolver, syncPool *syncer.Pool, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	// 中间件
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "blogger-task-service",
		})
	})

	// API版本组
	v1 := r.Group("/api/v1")
	v1.Use(handler.CurrentUser(db))
	{
		// 博主端任务路由
		taskHandler := handler.NewTaskHandler(db)
		tasks := v1.Group("/tasks", handler.RequireApprovedBlogger())
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.POST("/:id/accept", taskHandler.AcceptTask)
		}

		// 博主端任务分配路由
		assignmentHandler := handler.NewAssignmentHandler(db, resolver, syncPool)
		assignments := v1.Group("/assignments", handler.RequireApprovedBlogger())
		{
			assignments.GET("/me", assignmentHandler.ListMine)
			assignments.POST("/:id/submit", assignmentHandler.Submit)
			assignments.POST("/:id/manual-metrics", assignmentHandler.SubmitManualMetrics)
		}

		// 博主工作台
		dashboardHandler := handler.NewDashboardHandler(db)
		v1.GET("/dashboard/blogger", handler.RequireApprovedBlogger(), dashboardHandler.GetBloggerDashboard)

		// 管理端路由
		adminHandler := handler.NewAdminHandler(db, resolver)
		admin := v1.Group("/admin", handler.RequireAdmin())
		{
			admin.GET("/users", adminHandler.ListUsers)
			admin.PATCH("/users/:id/review", adminHandler.ReviewUser)
			admin.PATCH("/users/:id/weight", adminHandler.UpdateUserWeight)

			admin.GET("/tasks", adminHandler.ListTasks)
			admin.POST("/tasks", adminHandler.CreateTask)
			admin.PATCH("/tasks/:id", adminHandler.UpdateTask)
			admin.POST("/tasks/:id/publish", adminHandler.PublishTask)
			admin.POST("/tasks/:id/cancel", adminHandler.CancelTask)
			admin.GET("/tasks/:id/eligible-bloggers", adminHandler.ListEligibleBloggers)
			admin.POST("/tasks/:id/distribute", adminHandler.DistributeTask)

			admin.GET("/assignments", adminHandler.ListAssignments)
			admin.POST("/assignments/:id/start-review", adminHandler.StartAssignmentReview)
			admin.POST("/assignments/:id/approve", adminHandler.ApproveAssignment)
			admin.POST("/assignments/:id/reject", adminHandler.RejectAssignment)

			admin.GET("/manual-metrics/pending", adminHandler.ListPendingManualMetrics)
			admin.POST("/manual-metrics/:id/review", adminHandler.ReviewManualMetric)

			admin.GET("/platform-configs", adminHandler.ListPlatformConfigs)
			admin.PUT("/platform-configs/:platform", adminHandler.UpsertPlatformConfig)
		}
	}

	return r
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, X-User-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
