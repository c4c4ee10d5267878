package server

import (
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danmuck/chaosctl/internal/controls"
)

func (s *Server) registerRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  time.Since(s.startedAt).String(),
			"service": s.name,
			"version": apiVersion,
		})
	})

	s.router.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"ready":   true,
			"uptime":  time.Since(s.startedAt).String(),
			"service": s.name,
			"version": apiVersion,
		})
	})

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.router.GET("/modules", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"modules": s.registry.Paths(),
		})
	})

	s.router.GET("/controls", func(c *gin.Context) {
		list := s.Controls()
		out := make([]gin.H, 0, len(list))
		for _, ctl := range list {
			out = append(out, s.controlSummary(ctl))
		}
		c.JSON(http.StatusOK, gin.H{"controls": out})
	})

	s.router.GET("/controls/:name", func(c *gin.Context) {
		ctl, ok := s.control(c.Param("name"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "control not found"})
			return
		}
		c.JSON(http.StatusOK, s.controlSummary(ctl))
	})

	s.router.POST("/controls/:name/validate", func(c *gin.Context) {
		ctl, ok := s.control(c.Param("name"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "control not found"})
			return
		}
		if err := s.dispatcher.Validate(&ctl); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"valid": false,
				"kind":  errorKind(err),
				"error": err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"valid": true})
	})
}

func (s *Server) controlSummary(ctl controls.Control) gin.H {
	out := gin.H{"name": ctl.Name}
	if ctl.Provider != nil {
		_, resolved := s.registry.Resolve(ctl.Provider.Module)
		out["module"] = ctl.Provider.Module
		out["resolved"] = resolved
		out["secret_groups"] = ctl.Provider.Secrets
	}
	return out
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, controls.ErrInvalidControl):
		return "invalid-control"
	case errors.Is(err, controls.ErrInvalidActivity):
		return "invalid-activity"
	default:
		return "error"
	}
}
