package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/degreeplan/internal/app/controllers"
	"github.com/yigit/degreeplan/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	auditController *controllers.AuditController,
	scheduleController *controllers.ScheduleController,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	// API version group
	v1 := router.Group("/api/v1")

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	students := authenticated.Group("/students/:id")
	{
		students.GET("/audit", auditController.GetAudit)
		students.GET("/audit/missing", auditController.GetMissingRequirements)
		students.POST("/schedules/generate", scheduleController.GenerateSchedule)
	}

	schedules := authenticated.Group("/schedules")
	{
		schedules.POST("/validate", scheduleController.ValidateSchedule)
		schedules.POST("", scheduleController.CreateSchedule)
		schedules.GET("/:id", scheduleController.GetSchedule)
	}
}
