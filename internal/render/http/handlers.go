package http

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/GoSim-25-26J-441/manim-render-service/internal/render/domain"
	"github.com/GoSim-25-26J-441/manim-render-service/internal/render/service"
	"github.com/gin-gonic/gin"
)

// Render runs one render job and returns the artifact base64-encoded
func (h *Handler) Render(c *gin.Context) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[error] request_id=%s operation=render panic=%v", c.GetString("request_id"), r)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": fmt.Sprint(r)})
		}
	}()

	var body renderBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid json"})
		return
	}

	result, err := h.renderService.Render(c.Request.Context(), service.RenderInput{
		Code:    body.Code,
		Scene:   body.Scene,
		Format:  body.Format,
		Quality: body.Quality,
	})
	if err != nil {
		status, payload := errorResponse(err)
		c.JSON(status, payload)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"filename": result.Filename,
		"data":     base64.StdEncoding.EncodeToString(result.Data),
	})
}

// Stats returns aggregate render counters
func (h *Handler) Stats(c *gin.Context) {
	snap, err := h.renderService.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read stats"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"backend": h.renderService.StatsBackend(),
		"stats":   snap,
	})
}

func errorResponse(err error) (int, gin.H) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest, gin.H{"success": false, "error": verr.Error()}
	}

	if errors.Is(err, domain.ErrCapacity) {
		return http.StatusServiceUnavailable, gin.H{"success": false, "error": domain.ErrCapacity.Error()}
	}

	var rerr *domain.RenderError
	if errors.As(err, &rerr) {
		return http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   rerr.Error(),
			"stdout":  rerr.Stdout,
			"stderr":  rerr.Stderr,
		}
	}

	return http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()}
}
