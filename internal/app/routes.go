// Package app provides HTTP handlers for the coaching service.
package app

import (
	"github.com/gin-gonic/gin"

	"github.com/fitcoach/coaching-service/internal/sdk/middleware"
)

// ----------------------------------------------------------------------------
// Route Registration
// ----------------------------------------------------------------------------

func (a *App) RegisterRoutes() *gin.Engine {
	router := gin.New()

	// Global middleware chain
	router.Use(gin.Recovery())      // Panic recovery
	router.Use(middleware.Logger()) // Custom slog logger
	router.Use(middleware.CORS())   // CORS support

	// Health check routes (public)
	health := router.Group("/health")
	{
		health.GET("/readiness", a.HandleReadiness)
		health.GET("/liveness", a.HandleLiveness)
	}

	// Auth routes (public)
	router.POST("/register", a.HandleRegister)
	router.POST("/login", a.HandleLogin)

	// Profile routes (protected)
	profile := router.Group("/profile")
	profile.Use(middleware.Authenticate(a.jwt))
	{
		profile.GET("", a.HandleGetProfile)
		profile.PUT("", a.HandleUpdateProfile)

		// Trainer-only directory routes
		students := profile.Group("/students")
		students.Use(middleware.Trainer())
		{
			students.GET("", a.HandleListStudents)
			students.GET("/:nickname", a.HandleStudentTasks)
		}
	}

	// Task routes (protected; creation is trainer-only)
	task := router.Group("/task")
	task.Use(middleware.Authenticate(a.jwt))
	{
		task.POST("", middleware.Trainer(), a.HandleCreateTask)
		task.GET("", a.HandleListTasks)
	}

	// Summary report routes (protected)
	report := router.Group("/report")
	report.Use(middleware.Authenticate(a.jwt))
	{
		report.POST("", a.HandleCreateReport)
		report.GET("", a.HandleListReports)
	}

	return router
}
