package http

import (
	"github.com/GoSim-25-26J-441/manim-render-service/internal/render/service"
)

// Handler handles HTTP requests for render jobs
type Handler struct {
	renderService *service.RenderService
}

// New creates a new Handler
func New(renderService *service.RenderService) *Handler {
	return &Handler{renderService: renderService}
}

// renderBody is the POST /render payload. Format stays nil when the key is absent.
type renderBody struct {
	Code    string  `json:"code"`
	Scene   string  `json:"scene"`
	Format  *string `json:"format"`
	Quality string  `json:"quality"`
}
