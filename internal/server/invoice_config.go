package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	configdomain "github.com/JohnBartlett/bluejay-acct/internal/invoiceconfig/domain"
)

type saveInvoiceConfigRequest struct {
	IsDefault bool                `json:"is_default"`
	Config    configdomain.Config `json:"config"`
}

type patchInvoiceConfigRequest struct {
	Path  string `json:"path"`
	Value any    `json:"value"`
}

// @Summary      List Invoice Configs
// @Description  List stored render configuration documents
// @Tags         invoice-configs
// @Accept       json
// @Produce      json
// @Success      200  {object}  []configdomain.ConfigDocument
// @Router       /invoice-configs [get]
func (s *Server) ListInvoiceConfigs(c *gin.Context) {
	resp, err := s.configSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Get Invoice Config
// @Description  Get a render configuration document by name
// @Tags         invoice-configs
// @Accept       json
// @Produce      json
// @Param        name  path  string  true  "Config name"
// @Success      200  {object}  configdomain.ConfigDocument
// @Router       /invoice-configs/{name} [get]
func (s *Server) GetInvoiceConfig(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	resp, err := s.configSvc.GetByName(c.Request.Context(), name)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Save Invoice Config
// @Description  Create or replace a render configuration document
// @Tags         invoice-configs
// @Accept       json
// @Produce      json
// @Param        name    path  string                    true  "Config name"
// @Param        request body  saveInvoiceConfigRequest  true  "Save Config Request"
// @Success      200  {object}  configdomain.ConfigDocument
// @Router       /invoice-configs/{name} [put]
func (s *Server) SaveInvoiceConfig(c *gin.Context) {
	var req saveInvoiceConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.configSvc.Save(c.Request.Context(), configdomain.SaveRequest{
		Name:      strings.TrimSpace(c.Param("name")),
		IsDefault: req.IsDefault,
		Config:    req.Config,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Patch Invoice Config
// @Description  Apply one path-based update to a config document
// @Tags         invoice-configs
// @Accept       json
// @Produce      json
// @Param        name    path  string                     true  "Config name"
// @Param        request body  patchInvoiceConfigRequest  true  "Patch Config Request"
// @Success      200  {object}  configdomain.ConfigDocument
// @Router       /invoice-configs/{name} [patch]
func (s *Server) PatchInvoiceConfig(c *gin.Context) {
	var req patchInvoiceConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if strings.TrimSpace(req.Path) == "" {
		AbortWithError(c, newValidationError("path", "required", "path is required"))
		return
	}

	resp, err := s.configSvc.Patch(c.Request.Context(), configdomain.PatchRequest{
		Name:  strings.TrimSpace(c.Param("name")),
		Path:  strings.TrimSpace(req.Path),
		Value: req.Value,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
