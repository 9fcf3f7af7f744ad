package router

import (
	"net/http"
	"time"

	"github.com/edumind/elearn-backend/internal/config"
	"github.com/edumind/elearn-backend/internal/handler"
	"github.com/edumind/elearn-backend/internal/middleware"
	"github.com/edumind/elearn-backend/internal/response"
	"github.com/edumind/elearn-backend/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth     *handler.AuthHandler
	Course   *handler.CourseHandler
	Payment  *handler.PaymentHandler
	Progress *handler.ProgressHandler
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

	// ─── CORS ──────────────────────────────────────────────────────────
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

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Serve uploaded media files statically with aggressive caching (1 year).
	uploadsGroup := router.Group("/uploads")
	uploadsGroup.Use(middleware.CacheControl(31536000))
	{
		uploadsGroup.Static("/", cfg.UploadDir)
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// ─── 0. Public Group (No Auth) ─────────────────────────────────────
	publicAPI := router.Group("/api/v1/public")
	{
		publicAPI.GET("/courses", handlers.Course.ListCourses)
		publicAPI.GET("/courses/:id", handlers.Course.GetCourse)
	}

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/verify", handlers.Auth.Verify)
		auth.POST("/login", handlers.Auth.Login)
		auth.POST("/forgot-password", handlers.Auth.ForgotPassword)
		auth.POST("/reset-password", handlers.Auth.ResetPassword)

		// Authenticated profile route
		auth.GET("/me", middleware.RequireJWT(authService), handlers.Auth.Me)
	}

	// ─── 2. User Group (JWT) ───────────────────────────────────────────
	userAPI := router.Group("/api/v1/user")
	userAPI.Use(middleware.RequireJWT(authService))
	{
		userAPI.GET("/courses", handlers.Course.ListMyCourses)
		userAPI.GET("/courses/:id/lectures", handlers.Course.ListLectures)
		userAPI.GET("/lectures/:id", handlers.Course.GetLecture)

		userAPI.POST("/courses/:id/checkout", handlers.Payment.Checkout)
		userAPI.POST("/payments/verify", handlers.Payment.VerifyCheckout)
		userAPI.POST("/courses/:id/payment-verification", handlers.Payment.VerifyFallback)

		userAPI.POST("/progress", handlers.Progress.AddProgress)
		userAPI.GET("/progress", handlers.Progress.GetProgress)
	}

	// ─── 3. Admin Group (JWT + Admin Role) ─────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(middleware.RequireJWT(authService), middleware.RequireAdmin())
	{
		adminAPI.POST("/courses", handlers.Admin.CreateCourse)
		adminAPI.DELETE("/courses/:id", handlers.Admin.DeleteCourse)
		adminAPI.POST("/courses/:id/lectures", handlers.Admin.AddLecture)
		adminAPI.DELETE("/lectures/:id", handlers.Admin.DeleteLecture)
		adminAPI.GET("/stats", handlers.Admin.GetStats)
	}

	// ─── 4. Superadmin Group (JWT + Superadmin Role) ───────────────────
	superAPI := router.Group("/api/v1/superadmin")
	superAPI.Use(middleware.RequireJWT(authService), middleware.RequireSuperadmin())
	{
		superAPI.GET("/users", handlers.Admin.ListUsers)
		superAPI.PUT("/users/:id/role", handlers.Admin.UpdateRole)
	}

	return router
}
