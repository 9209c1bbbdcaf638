package server

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lumenarts/forge/internal/analytics"
	"github.com/lumenarts/forge/pkg/model"
	"github.com/lumenarts/forge/pkg/renderers/htmlform"
)

func (s *Server) listTemplates(c *gin.Context) {
	templates, err := s.store.List(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"templates": templates})
}

func (s *Server) getTemplate(c *gin.Context) {
	tmpl, err := s.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, tmpl)
}

func (s *Server) createTemplate(c *gin.Context) {
	var tmpl model.Template
	if err := c.ShouldBindJSON(&tmpl); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if result := model.Validate(tmpl); !result.Valid {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"issues": result.Issues})
		return
	}
	id, err := s.store.Create(c.Request.Context(), tmpl)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.record(c, analytics.EventTemplateCreated, id, "")
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (s *Server) updateTemplate(c *gin.Context) {
	id := c.Param("id")
	var tmpl model.Template
	if err := c.ShouldBindJSON(&tmpl); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if result := model.Validate(tmpl); !result.Valid {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"issues": result.Issues})
		return
	}
	if err := s.store.Update(c.Request.Context(), id, tmpl); err != nil {
		s.fail(c, err)
		return
	}
	s.record(c, analytics.EventTemplateUpdated, id, "")
	c.Status(http.StatusNoContent)
}

func (s *Server) deleteTemplate(c *gin.Context) {
	id := c.Param("id")
	if err := s.store.Delete(c.Request.Context(), id); err != nil {
		s.fail(c, err)
		return
	}
	s.record(c, analytics.EventTemplateDeleted, id, "")
	c.Status(http.StatusNoContent)
}

// watchTemplates streams full snapshots as server-sent events until the
// client disconnects.
func (s *Server) watchTemplates(c *gin.Context) {
	snapshots, err := s.store.Watch(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Stream(func(w io.Writer) bool {
		snap, ok := <-snapshots
		if !ok {
			return false
		}
		c.SSEvent("snapshot", gin.H{
			"revision":  snap.Revision,
			"templates": snap.Templates,
		})
		return true
	})
}

func (s *Server) renderForm(c *gin.Context) {
	tmpl, err := s.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	page, err := s.renderer.Render(c.Request.Context(), tmpl, htmlform.RenderOptions{})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Data(http.StatusOK, s.renderer.ContentType(), page)
}

func (s *Server) record(c *gin.Context, kind, templateID, detail string) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.Record(c.Request.Context(), kind, templateID, detail); err != nil {
		s.log.Warn("analytics record failed", zap.Error(err))
	}
}
