package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/jomadlcrz/class-schedule-backend/internal/config"
	"github.com/jomadlcrz/class-schedule-backend/internal/handler"
	"github.com/jomadlcrz/class-schedule-backend/internal/middleware"
	"github.com/jomadlcrz/class-schedule-backend/internal/response"
	"github.com/jomadlcrz/class-schedule-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Course  *handler.CourseHandler
	Session *handler.SessionHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	verifier service.TokenVerifier,
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
		corsConfig.AllowCredentials = true
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "X-Requested-With", "Content-Type", "Accept", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response can be traced.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Welcome pages.
	router.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte("<title>Welcome</title>Welcome to the server!"))
	})
	router.GET("/api", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte("<title>API</title>Welcome to the API!"))
	})

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for the API surface (120 requests per minute per IP).
	apiLimiter := middleware.NewRateLimiter(120, time.Minute)

	api := router.Group("/api")
	api.Use(apiLimiter.Middleware())

	// ─── Public ────────────────────────────────────────────────────────
	api.GET("/timeslots", handlers.Course.Timeslots)

	// ─── Authenticated (bearer credential on every request) ────────────
	authed := api.Group("")
	authed.Use(middleware.RequireAuth(verifier))
	{
		authed.GET("/courses", handlers.Course.ListCourses)
		authed.POST("/courses", handlers.Course.CreateCourse)
		authed.PUT("/courses/:id", handlers.Course.UpdateCourse)
		authed.DELETE("/courses/:id", handlers.Course.DeleteCourse)

		authed.GET("/me", handlers.Session.Me)
		authed.GET("/preferences", handlers.Session.GetPreference)
		authed.PUT("/preferences", handlers.Session.UpdatePreference)
	}

	return router
}
