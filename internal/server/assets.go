package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lumenarts/forge/internal/analytics"
)

type uploadRequest struct {
	TemplateID string `json:"templateId" binding:"required"`
	FieldID    string `json:"fieldId" binding:"required"`
	Filename   string `json:"filename" binding:"required"`
}

func (s *Server) assetUploadURL(c *gin.Context) {
	if s.assets == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "asset storage is not configured"})
		return
	}
	var req uploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	key, url, err := s.assets.UploadURL(c.Request.Context(), req.TemplateID, req.FieldID, req.Filename)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.record(c, analytics.EventAssetUploaded, req.TemplateID, key)
	c.JSON(http.StatusOK, gin.H{"key": key, "url": url})
}

func (s *Server) listAssets(c *gin.Context) {
	if s.assets == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "asset storage is not configured"})
		return
	}
	objects, err := s.assets.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"assets": objects})
}

func (s *Server) assetDownloadURL(c *gin.Context) {
	if s.assets == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "asset storage is not configured"})
		return
	}
	key := c.Query("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing key"})
		return
	}
	url, err := s.assets.DownloadURL(c.Request.Context(), key)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

func (s *Server) analyticsSummary(c *gin.Context) {
	if s.recorder == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "analytics is not configured"})
		return
	}
	rows, err := s.recorder.Summarize(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"templates": rows})
}

func (s *Server) analyticsEvents(c *gin.Context) {
	if s.recorder == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "analytics is not configured"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	events, err := s.recorder.Recent(c.Request.Context(), limit)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}
