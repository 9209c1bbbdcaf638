package server

import (
	"errors"
	"fmt"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/lumenarts/forge/internal/analytics"
	"github.com/lumenarts/forge/pkg/form"
	"github.com/lumenarts/forge/pkg/model"
)

type entryRequest struct {
	Values map[string]any `json:"values"`
}

type fieldIssue struct {
	FieldID string `json:"fieldId"`
	Label   string `json:"label"`
	Reason  string `json:"reason"`
}

// buildEntry applies the submitted values to a fresh entry, reporting
// every rejected value instead of stopping at the first. Keys are field
// ids, with labels accepted for older clients.
func buildEntry(t model.Template, values map[string]any) (model.Entry, []fieldIssue, error) {
	entry, err := form.Instantiate(t)
	if err != nil {
		return model.Entry{}, nil, err
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var issues []fieldIssue
	for _, key := range keys {
		field, ok := t.FieldByID(key)
		if !ok {
			field, ok = t.FieldByLabel(key)
		}
		if !ok {
			issues = append(issues, fieldIssue{FieldID: key, Reason: "no such field"})
			continue
		}
		next, err := form.SetValue(t, entry, field.ID, values[key])
		if err != nil {
			var fieldErr *form.FieldValidationError
			if errors.As(err, &fieldErr) {
				issues = append(issues, fieldIssue{
					FieldID: fieldErr.FieldID,
					Label:   fieldErr.Label,
					Reason:  fieldErr.Reason,
				})
				continue
			}
			return model.Entry{}, nil, err
		}
		entry = next
	}
	return entry, issues, nil
}

func (s *Server) validateEntry(c *gin.Context) {
	tmpl, err := s.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	var req entryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	entry, issues, err := buildEntry(tmpl, req.Values)
	if err != nil {
		s.fail(c, err)
		return
	}
	if len(issues) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"issues": issues})
		return
	}
	c.JSON(http.StatusOK, gin.H{"values": entry.Values})
}

func (s *Server) exportEntry(c *gin.Context) {
	format := c.Param("format")
	exporter, ok := s.exporters[format]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("unknown export format %q", format)})
		return
	}
	tmpl, err := s.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	var req entryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	entry, issues, err := buildEntry(tmpl, req.Values)
	if err != nil {
		s.fail(c, err)
		return
	}
	if len(issues) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"issues": issues})
		return
	}

	doc, err := exporter.Export(c.Request.Context(), tmpl, entry)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.record(c, analytics.EventEntryExported, tmpl.ID, format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.%s", tmpl.ID, format))
	c.Data(http.StatusOK, exporter.ContentType(), doc)
}

func (s *Server) suggestDescription(c *gin.Context) {
	if s.assistant == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "ai is not configured"})
		return
	}
	tmpl, err := s.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	text, err := s.assistant.SuggestDescription(c.Request.Context(), tmpl)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"description": text})
}

type critiqueRequest struct {
	Draft string `json:"draft" binding:"required"`
}

func (s *Server) critiqueDraft(c *gin.Context) {
	if s.assistant == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "ai is not configured"})
		return
	}
	tmpl, err := s.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	var req critiqueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	text, err := s.assistant.Critique(c.Request.Context(), tmpl, req.Draft)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"critique": text})
}

func (s *Server) announceEntry(c *gin.Context) {
	if s.assistant == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "ai is not configured"})
		return
	}
	tmpl, err := s.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	var req entryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	entry, issues, err := buildEntry(tmpl, req.Values)
	if err != nil {
		s.fail(c, err)
		return
	}
	if len(issues) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"issues": issues})
		return
	}
	text, err := s.assistant.Announce(c.Request.Context(), tmpl, entry)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"announcement": text})
}
