package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	templatedomain "github.com/JohnBartlett/bluejay-acct/internal/timetemplate/domain"
)

type timeTemplateRequest struct {
	Description string   `json:"description"`
	HourlyRate  *float64 `json:"hourly_rate"`
}

// @Summary      Create Time Template
// @Description  Create a reusable time-entry template
// @Tags         time-templates
// @Accept       json
// @Produce      json
// @Param        request body timeTemplateRequest true "Create Time Template Request"
// @Success      200  {object}  templatedomain.TimeTemplate
// @Router       /time-templates [post]
func (s *Server) CreateTimeTemplate(c *gin.Context) {
	var req timeTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.templateSvc.Create(c.Request.Context(), templatedomain.CreateTemplateRequest{
		Description: strings.TrimSpace(req.Description),
		HourlyRate:  req.HourlyRate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      List Time Templates
// @Description  List time-entry templates, newest first
// @Tags         time-templates
// @Accept       json
// @Produce      json
// @Success      200  {object}  []templatedomain.TimeTemplate
// @Router       /time-templates [get]
func (s *Server) ListTimeTemplates(c *gin.Context) {
	resp, err := s.templateSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Update Time Template
// @Description  Replace a time-entry template's fields
// @Tags         time-templates
// @Accept       json
// @Produce      json
// @Param        id      path  string               true  "Template ID"
// @Param        request body  timeTemplateRequest  true  "Update Time Template Request"
// @Success      200  {object}  templatedomain.TimeTemplate
// @Router       /time-templates/{id} [put]
func (s *Server) UpdateTimeTemplate(c *gin.Context) {
	var req timeTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.templateSvc.Update(c.Request.Context(), templatedomain.UpdateTemplateRequest{
		ID:          strings.TrimSpace(c.Param("id")),
		Description: strings.TrimSpace(req.Description),
		HourlyRate:  req.HourlyRate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Delete Time Template
// @Description  Delete a time-entry template
// @Tags         time-templates
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Template ID"
// @Success      200  {object}  map[string]string
// @Router       /time-templates/{id} [delete]
func (s *Server) DeleteTimeTemplate(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.templateSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
