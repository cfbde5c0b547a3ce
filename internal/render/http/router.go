package http

import "github.com/gin-gonic/gin"

// Register registers the render routes. Extra handlers run before Render only.
func (h *Handler) Register(rg gin.IRouter, renderMiddleware ...gin.HandlerFunc) {
	rg.POST("/render", append(renderMiddleware, h.Render)...)
	rg.GET("/stats", h.Stats)
}
