package bootstrap

import (
	"time"

	httpapi "github.com/GoSim-25-26J-441/manim-render-service/internal/api/http"
	"github.com/GoSim-25-26J-441/manim-render-service/internal/api/http/middleware"
	renderhttp "github.com/GoSim-25-26J-441/manim-render-service/internal/render/http"
	"github.com/GoSim-25-26J-441/manim-render-service/internal/render/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	AllowedOrigins []string
	RateLimit      float64
	RateBurst      int
	RenderService  *service.RenderService
	Engine         httpapi.EngineProbe
	StatsStore     httpapi.Pinger
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()
	r.Use(corsMiddleware(dep.AllowedOrigins))
	r.Use(middleware.RequestIDMiddleware())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Engine, dep.StatsStore)
	healthHandler.RegisterRoutes(r)

	renderHandler := renderhttp.New(dep.RenderService)
	renderHandler.Register(r, middleware.RateLimit(dep.RateLimit, dep.RateBurst))

	return r
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.HeaderRequestID},
		ExposeHeaders: []string{middleware.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cors.New(cfg)
	}

	// Editor plugins send non-http origins such as app://obsidian.md, which
	// cors rejects in AllowOrigins, so match them with a func instead.
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}
	cfg.AllowOriginFunc = func(origin string) bool {
		_, ok := allowed[origin]
		return ok
	}
	return cors.New(cfg)
}
