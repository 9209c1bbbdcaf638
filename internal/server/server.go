// Package server exposes the template store, form rendering, exports and
// the optional asset, analytics and AI surfaces over HTTP.
package server

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lumenarts/forge/internal/ai"
	"github.com/lumenarts/forge/internal/analytics"
	"github.com/lumenarts/forge/internal/assets"
	"github.com/lumenarts/forge/pkg/export"
	"github.com/lumenarts/forge/pkg/renderers/htmlform"
	"github.com/lumenarts/forge/pkg/store"
)

type Server struct {
	store     store.Store
	exporters map[string]export.Exporter
	renderer  *htmlform.Renderer
	recorder  *analytics.Recorder
	assets    *assets.Service
	assistant *ai.Assistant
	log       *zap.Logger
}

type Option func(*Server)

// WithExporter registers an additional export format under its name.
func WithExporter(x export.Exporter) Option {
	return func(s *Server) {
		s.exporters[x.Name()] = x
	}
}

func WithRenderer(r *htmlform.Renderer) Option {
	return func(s *Server) {
		s.renderer = r
	}
}

func WithAnalytics(r *analytics.Recorder) Option {
	return func(s *Server) {
		s.recorder = r
	}
}

func WithAssets(svc *assets.Service) Option {
	return func(s *Server) {
		s.assets = svc
	}
}

func WithAssistant(a *ai.Assistant) Option {
	return func(s *Server) {
		s.assistant = a
	}
}

// New wires the HTTP surface over st. Text, CSV and HTML exports and the
// default form renderer are always available; assets, analytics and AI
// only when their options are supplied.
func New(st store.Store, log *zap.Logger, options ...Option) (*Server, error) {
	html, err := export.NewHTML()
	if err != nil {
		return nil, fmt.Errorf("server: html exporter: %w", err)
	}
	s := &Server{
		store: st,
		exporters: map[string]export.Exporter{
			"text": export.NewText(),
			"csv":  export.NewCSV(),
			"html": html,
		},
		log: log,
	}
	for _, opt := range options {
		opt(s)
	}
	if s.renderer == nil {
		renderer, err := htmlform.New()
		if err != nil {
			return nil, fmt.Errorf("server: form renderer: %w", err)
		}
		s.renderer = renderer
	}
	return s, nil
}

// Router builds the gin engine. Mode is "debug" or "release".
func (s *Server) Router(mode string) *gin.Engine {
	if mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), s.requestLog())

	router.GET("/healthz", s.health)

	api := router.Group("/api")
	{
		api.GET("/templates", s.listTemplates)
		api.POST("/templates", s.createTemplate)
		api.GET("/templates/watch", s.watchTemplates)
		api.GET("/templates/:id", s.getTemplate)
		api.PUT("/templates/:id", s.updateTemplate)
		api.DELETE("/templates/:id", s.deleteTemplate)

		api.GET("/templates/:id/form", s.renderForm)
		api.POST("/templates/:id/entries", s.validateEntry)
		api.POST("/templates/:id/export/:format", s.exportEntry)

		api.POST("/templates/:id/ai/description", s.suggestDescription)
		api.POST("/templates/:id/ai/announcement", s.announceEntry)
		api.POST("/templates/:id/ai/critique", s.critiqueDraft)

		api.GET("/templates/:id/assets", s.listAssets)
		api.POST("/assets/uploads", s.assetUploadURL)
		api.GET("/assets/downloads", s.assetDownloadURL)

		api.GET("/analytics/summary", s.analyticsSummary)
		api.GET("/analytics/events", s.analyticsEvents)
	}
	return router
}

func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		s.log.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()))
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}

// fail maps store errors onto HTTP statuses; anything unrecognised is a 500.
func (s *Server) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(404, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrUnavailable):
		c.JSON(503, gin.H{"error": err.Error()})
	default:
		s.log.Error("request failed", zap.Error(err))
		c.JSON(500, gin.H{"error": err.Error()})
	}
}
