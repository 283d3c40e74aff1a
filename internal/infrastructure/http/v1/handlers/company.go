package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"krilo/internal/domain/company"
	"krilo/internal/infrastructure/http/v1/dto"
)

// CompanyHandler handles the company settings singleton endpoints.
type CompanyHandler struct {
	*BaseHandler
	service *company.Service
}

// NewCompanyHandler creates a new company settings handler.
func NewCompanyHandler(base *BaseHandler, service *company.Service) *CompanyHandler {
	return &CompanyHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Get handles GET /company-settings.
func (h *CompanyHandler) Get(c *gin.Context) {
	settings, err := h.service.Get(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromCompanySettings(settings))
}

// Upsert handles POST /company-settings. Creates the singleton row on
// first write, updates it afterwards.
func (h *CompanyHandler) Upsert(c *gin.Context) {
	var req dto.UpsertCompanySettingsRequest
	if !h.BindJSON(c, &req) {
		return
	}

	settings := req.ToEntity()

	if err := h.service.Upsert(c.Request.Context(), settings); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromCompanySettings(settings))
}
