package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// EngineProbe reports whether the rendering engine can be launched
type EngineProbe interface {
	Available() bool
}

// Pinger is a stats store that can be health-checked
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthResponse struct {
	Status     string    `json:"status"`
	Timestamp  time.Time `json:"timestamp"`
	Service    string    `json:"service"`
	Version    string    `json:"version"`
	Engine     string    `json:"engine"`
	StatsStore string    `json:"stats_store"`
}

type HealthHandler struct {
	serviceName string
	version     string
	engine      EngineProbe
	store       Pinger
}

// NewHealthHandler creates a health handler. store may be nil when stats
// are kept in memory.
func NewHealthHandler(serviceName, version string, engine EngineProbe, store Pinger) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		engine:      engine,
		store:       store,
	}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	engineStatus := "missing"
	if h.engine != nil && h.engine.Available() {
		engineStatus = "available"
	}

	storeStatus := "memory"
	if h.store != nil {
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
		defer cancel()

		if err := h.store.Ping(pingCtx); err != nil {
			storeStatus = "down"
		} else {
			storeStatus = "up"
		}
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:     "healthy",
		Timestamp:  time.Now().UTC(),
		Service:    h.serviceName,
		Version:    h.version,
		Engine:     engineStatus,
		StatsStore: storeStatus,
	})
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}
