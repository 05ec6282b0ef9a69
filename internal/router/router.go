package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/stemsi/admission-relay/internal/config"
	"github.com/stemsi/admission-relay/internal/handler"
	"github.com/stemsi/admission-relay/internal/logger"
	"github.com/stemsi/admission-relay/internal/middleware"
	"github.com/stemsi/admission-relay/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Relay  *handler.RelayHandler
	Page   *handler.PageHandler
	Health *handler.HealthHandler
}

// SetupRouter configures all Gin routes with appropriate middlewares.
// limiter guards every submission route.
func SetupRouter(
	handlers *Handlers,
	limiter middleware.Limiter,
	cfg *config.Config,
	log zerolog.Logger,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Error().Interface("panic", recovered).Str("path", c.Request.URL.Path).Msg("panic recovered")
		response.AbortFail(c, http.StatusInternalServerError, response.ErrInternal)
	}))

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Request IDs first so the access log and every response carry one.
	router.Use(response.RequestIDMiddleware())
	router.Use(logger.GinMiddleware(log))

	// Only the rendered pages are worth compressing.
	router.Use(middleware.Brotli("/api/", "/metrics", "/health"))

	submitLimit := middleware.RateLimit(limiter, log)

	router.GET("/health", handlers.Health.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ─── Relay API ─────────────────────────────────────────────────────
	api := router.Group("/api")
	{
		api.POST("/submit-application", submitLimit, handlers.Relay.SubmitApplication)
	}

	// ─── Pages ─────────────────────────────────────────────────────────
	noStore := middleware.NoStore()
	router.GET("/", middleware.CacheControl(300), handlers.Page.Index)
	router.GET("/:institution", handlers.Page.Landing)
	router.GET("/:institution/apply", noStore, handlers.Page.ShowForm)
	router.POST("/:institution/apply", noStore, submitLimit, handlers.Page.SubmitForm)

	return router
}
