package handler

import (
	"context"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/admission-relay/internal/config"
)

const redisPingTimeout = 2 * time.Second

// HealthHandler reports whether the relay can do its job.
type HealthHandler struct {
	cfg       *config.Config
	rdb       *redis.Client
	startTime time.Time
	log       zerolog.Logger
}

// NewHealthHandler creates a HealthHandler. rdb may be nil when the rate
// limiter runs in memory.
func NewHealthHandler(cfg *config.Config, rdb *redis.Client, log zerolog.Logger) *HealthHandler {
	return &HealthHandler{
		cfg:       cfg,
		rdb:       rdb,
		startTime: time.Now(),
		log:       log.With().Str("component", "health_handler").Logger(),
	}
}

type healthStatus struct {
	Status            string `json:"status"`
	Uptime            string `json:"uptime"`
	WebhookConfigured bool   `json:"webhook_configured"`
	Redis             string `json:"redis"`
	Goroutines        int    `json:"goroutines"`
	GoVersion         string `json:"go_version"`
}

// Health godoc
// GET /health
// Reports "degraded" while the webhook is unset. An unreachable Redis
// answers 503.
func (h *HealthHandler) Health(c *gin.Context) {
	s := healthStatus{
		Status:            "ok",
		Uptime:            formatDuration(time.Since(h.startTime)),
		WebhookConfigured: h.cfg.WebhookURL != "",
		Redis:             "disabled",
		Goroutines:        runtime.NumGoroutine(),
		GoVersion:         runtime.Version(),
	}

	if h.rdb != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), redisPingTimeout)
		defer cancel()
		if err := h.rdb.Ping(ctx).Err(); err != nil {
			h.log.Warn().Err(err).Msg("redis ping failed")
			s.Redis = "unreachable"
		} else {
			s.Redis = "ok"
		}
	}

	status := http.StatusOK
	if !s.WebhookConfigured {
		s.Status = "degraded"
	}
	if s.Redis == "unreachable" {
		s.Status = "degraded"
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, s)
}

func formatDuration(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm %ds", days, hours, minutes, seconds)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	}
	return fmt.Sprintf("%dm %ds", minutes, seconds)
}
