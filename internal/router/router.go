package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/stemsi/libretto-backend/internal/config"
	"github.com/stemsi/libretto-backend/internal/handler"
	"github.com/stemsi/libretto-backend/internal/middleware"
	"github.com/stemsi/libretto-backend/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Transcript *handler.TranscriptHandler
}

// SetupRouter configures the Gin engine. limiter may be nil to disable
// rate limiting on mutating routes.
func SetupRouter(handlers *Handlers, limiter *middleware.RateLimiter, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", response.HeaderRequestID}
	corsConfig.ExposeHeaders = []string{response.HeaderRequestID}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.Brotli(cfg.BrotliMinBytes))

	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// ─── Transcript ────────────────────────────────────────────────────
	api := router.Group("/api/v1/transcript")
	{
		api.GET("", handlers.Transcript.List)
		api.GET("/text", handlers.Transcript.Render)
		api.GET("/improved", handlers.Transcript.Improved)
		api.GET("/records", handlers.Transcript.Get)
		api.POST("/records/check", handlers.Transcript.Check)
	}

	writes := api.Group("")
	if limiter != nil {
		writes.Use(limiter.Middleware())
	}
	{
		writes.POST("/records", handlers.Transcript.Add)
		writes.POST("/sort", handlers.Transcript.Sort)
		writes.DELETE("/low-grades", handlers.Transcript.RemoveLowGrades)
	}

	return router
}
