package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/msc-labs/evaluate-backend/internal/config"
	"github.com/msc-labs/evaluate-backend/internal/handler"
	"github.com/msc-labs/evaluate-backend/internal/middleware"
	"github.com/msc-labs/evaluate-backend/internal/model"
	"github.com/msc-labs/evaluate-backend/internal/response"
	"github.com/msc-labs/evaluate-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth     *handler.AuthHandler
	Template *handler.TemplateHandler
	Quiz     *handler.QuizHandler
	Result   *handler.ResultHandler
	Report   *handler.ReportHandler
	Admin    *handler.AdminHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Request ID on every response.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.JSON(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// Auth (public, rate limited).
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/login", handlers.Auth.Login)

		auth.POST("/logout", middleware.RequireJWT(authService), handlers.Auth.Logout)
		auth.GET("/me", middleware.RequireJWT(authService), handlers.Auth.Me)
	}

	// Quiz taking (anonymous allowed; claims attached when present).
	quiz := router.Group("/api/v1/quiz")
	quiz.Use(middleware.OptionalJWT(authService))
	{
		quiz.GET("/:template_id", handlers.Quiz.GetQuiz)
		quiz.POST("/submit", handlers.Quiz.Submit)
	}

	// Result reads (anonymous allowed: results are addressed by session ID).
	results := router.Group("/api/v1/results")
	results.Use(middleware.OptionalJWT(authService))
	{
		results.GET("", handlers.Result.ListBySession)
		results.GET("/:result_id", handlers.Result.Get)
	}
	router.DELETE("/api/v1/results/:result_id",
		middleware.RequireJWT(authService),
		middleware.RequireRole(model.RoleAdmin),
		handlers.Result.Delete,
	)

	// Template authoring (tutor/admin).
	templates := router.Group("/api/v1/templates")
	templates.Use(
		middleware.RequireJWT(authService),
		middleware.RequireRole(model.RoleTutor, model.RoleAdmin),
	)
	{
		templates.POST("", handlers.Template.Create)
		templates.GET("", handlers.Template.List)
		templates.GET("/:template_id", handlers.Template.Get)
		templates.DELETE("/:template_id", handlers.Template.Delete)
	}

	// Reporting (tutor/admin).
	reports := router.Group("/api/v1/reports")
	reports.Use(
		middleware.RequireJWT(authService),
		middleware.RequireRole(model.RoleTutor, model.RoleAdmin),
	)
	{
		reports.GET("", handlers.Report.GetAll)
		reports.GET("/users/:user_id", handlers.Report.GetByUser)
	}

	// Admin-only.
	admin := router.Group("/api/v1/admin")
	admin.Use(
		middleware.RequireJWT(authService),
		middleware.RequireRole(model.RoleAdmin),
	)
	{
		admin.GET("/logs", handlers.Admin.ListLogs)
	}

	return router
}
