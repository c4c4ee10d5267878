// Package server exposes the chaosctl admin API: control inventory,
// validation, module listing, and metrics.
package server

import (
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/danmuck/chaosctl/internal/controls"
	"github.com/danmuck/chaosctl/internal/observability"
)

const apiVersion = "0.1.0"

// Config shapes one admin server instance.
type Config struct {
	Name        string
	CORSOrigins []string
}

// Server owns the admin router plus a snapshot of loaded control blocks.
type Server struct {
	name       string
	startedAt  time.Time
	dispatcher *controls.Dispatcher
	registry   *controls.Registry
	router     *gin.Engine

	mu       sync.RWMutex
	controls []controls.Control
}

// New constructs the admin server over the given registry. A nil registry
// selects the process-wide default.
func New(cfg Config, reg *controls.Registry) *Server {
	if cfg.Name == "" {
		cfg.Name = "chaosctl"
	}
	if reg == nil {
		reg = controls.Default
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(observability.RequestID())
	router.Use(observability.RequestLogger(observability.InitLogger(cfg.Name)))
	router.Use(observability.RequestMetricsMiddleware(cfg.Name))
	if len(cfg.CORSOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins: cfg.CORSOrigins,
			AllowMethods: []string{"GET", "POST"},
			AllowHeaders: []string{"Origin", "Content-Type", observability.RequestIDHeader},
			MaxAge:       12 * time.Hour,
		}))
	}

	s := &Server{
		name:       cfg.Name,
		startedAt:  time.Now(),
		dispatcher: controls.NewDispatcher(reg),
		registry:   reg,
		router:     router,
	}
	s.registerRoutes()
	return s
}

// SetControls replaces the served control snapshot.
func (s *Server) SetControls(list []controls.Control) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.controls = append([]controls.Control(nil), list...)
}

// Controls returns the current control snapshot.
func (s *Server) Controls() []controls.Control {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]controls.Control(nil), s.controls...)
}

// Router exposes the underlying engine for serving and tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run serves the admin API until the listener fails.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

func (s *Server) control(name string) (controls.Control, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ctl := range s.controls {
		if ctl.Name == name {
			return ctl, true
		}
	}
	return controls.Control{}, false
}
