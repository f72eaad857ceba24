package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mazadly/boardgen/board"
	"github.com/mazadly/boardgen/cache"
)

func (s *Server) handleIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleSchema serves the field schema the browser form is built from.
func (s *Server) handleSchema(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"fields": board.Schema})
}

// handleBoard validates the announcement, renders (or fetches the cached)
// board PDF and streams it back as a download.
func (s *Server) handleBoard(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.opts.MaxBodyBytes)

	var a board.Announcement
	if err := c.ShouldBindJSON(&a); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "payload too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON payload"})
		return
	}

	ctx := c.Request.Context()

	key, err := cache.Key(&a)
	if err != nil {
		slog.Error("Failed to derive cache key", "error", err)
		key = ""
	}
	if s.store != nil && key != "" {
		if pdf, ok := s.store.Get(ctx, key); ok {
			c.Header("X-Cache", "hit")
			servePDF(c, pdf)
			return
		}
	}

	pdf, err := s.renderer.Render(ctx, &a)
	if err != nil {
		var vErr *board.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":  "validation failed",
				"fields": vErr.Fields,
			})
			return
		}
		slog.Error("Failed to render board", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate board PDF"})
		return
	}

	if s.store != nil && key != "" {
		if err := s.store.Set(ctx, key, pdf); err != nil {
			slog.Warn("Failed to cache rendered board", "error", err)
		}
	}
	servePDF(c, pdf)
}

func servePDF(c *gin.Context, pdf []byte) {
	filename := fmt.Sprintf("board-%s.pdf", uuid.NewString()[:8])
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
