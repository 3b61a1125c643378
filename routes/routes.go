package routes

import (
	"absen_map_dashboard/config"
	"absen_map_dashboard/handlers"
	"absen_map_dashboard/middleware"
	"absen_map_dashboard/web"

	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(r *gin.Engine, cfg *config.Config, store handlers.ReloadableStore) {
	r.SetHTMLTemplate(web.Templates())
	r.StaticFS("/static", web.Static())

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(store)
	dashboardHandler := handlers.NewDashboardHandler(store, cfg.AuthEnabled())
	attendanceHandler := handlers.NewAttendanceHandler(store)

	// Public routes
	r.GET("/health", healthHandler.HealthCheck)

	protected := r.Group("/")
	if cfg.AuthEnabled() {
		tokenService := middleware.NewTokenService([]byte(cfg.JWTSecret), cfg.TokenTTL)
		authHandler := handlers.NewAuthHandler(tokenService, cfg.AuthUsername, cfg.AuthPasswordHash, cfg.IsProduction())

		r.GET("/login", authHandler.LoginPage)
		r.POST("/login", authHandler.Login)
		r.POST("/logout", authHandler.Logout)

		protected.Use(middleware.AuthMiddleware(tokenService))
	}

	{
		// Dashboard page
		protected.GET("/", dashboardHandler.Page)

		// Attendance API
		protected.GET("/api/records", attendanceHandler.GetRecords)
		protected.GET("/api/records/export.xlsx", attendanceHandler.ExportRecords)
		protected.GET("/api/options", attendanceHandler.GetOptions)
		protected.GET("/api/map", attendanceHandler.GetMap)
		protected.POST("/api/reload", attendanceHandler.ReloadRecords)
	}
}
