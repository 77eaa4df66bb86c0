package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/whisperd/scheduler"
	"github.com/skillsenselab/whisperd/version"
)

type handlers struct {
	router     *scheduler.Router
	cfg        Config
	jobTimeout time.Duration
}

// RegisterRoutes mounts the transcription endpoint and the service probes.
// jobTimeout bounds each job's wall clock, including slot waits.
func RegisterRoutes(s *Server, router *scheduler.Router, jobTimeout time.Duration) {
	h := &handlers{router: router, cfg: s.config, jobTimeout: jobTimeout}

	s.engine.POST("/v1/audio/transcriptions", h.handleTranscription)
	s.engine.GET("/health", h.handleHealth)
	s.engine.GET("/version", handleVersion)
}

// deadline computes the admission deadline for a new job.
func (h *handlers) deadline() time.Time {
	if h.jobTimeout <= 0 {
		return time.Time{}
	}
	return time.Now().Add(h.jobTimeout)
}

// handleHealth reports liveness plus lock/pool occupancy.
func (h *handlers) handleHealth(c *gin.Context) {
	stats := h.router.Stats()
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "whisperd",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"scheduler": stats,
	})
}

func handleVersion(c *gin.Context) {
	c.JSON(http.StatusOK, version.Get())
}
