package handler

import (
	"realty-backoffice/internal/adapter/http/dto"
	"realty-backoffice/internal/core/domain"
	"realty-backoffice/internal/core/ports"
	"realty-backoffice/pkg/apperror"
	"realty-backoffice/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PropertyHandler handles the public portfolio and its admin CRUD.
type PropertyHandler struct {
	propertySvc ports.PropertyService
}

// NewPropertyHandler creates a new PropertyHandler.
func NewPropertyHandler(propertySvc ports.PropertyService) *PropertyHandler {
	return &PropertyHandler{propertySvc: propertySvc}
}

func (h *PropertyHandler) bindInput(c *gin.Context) (ports.PropertyInput, bool) {
	var req dto.PropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return ports.PropertyInput{}, false
	}
	dto.SanitizeStruct(&req)

	return ports.PropertyInput{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		PriceCents:  req.PriceCents,
		ImageURL:    req.ImageURL,
		Status:      domain.PropertyStatus(req.Status),
	}, true
}

// List handles GET /api/v1/properties.
func (h *PropertyHandler) List(c *gin.Context) {
	var status *domain.PropertyStatus
	if raw := c.Query("status"); raw != "" {
		s := domain.PropertyStatus(raw)
		status = &s
	}

	properties, err := h.propertySvc.List(c.Request.Context(), status)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.PropertyResponse, len(properties))
	for i := range properties {
		items[i] = dto.FromProperty(&properties[i])
	}
	response.OK(c, items)
}

// Get handles GET /api/v1/properties/:id.
func (h *PropertyHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid property id"))
		return
	}

	p, err := h.propertySvc.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.FromProperty(p))
}

// Create handles POST /api/v1/properties (admin).
func (h *PropertyHandler) Create(c *gin.Context) {
	in, ok := h.bindInput(c)
	if !ok {
		return
	}

	p, err := h.propertySvc.Create(c.Request.Context(), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.FromProperty(p))
}

// Update handles PUT /api/v1/properties/:id (admin).
func (h *PropertyHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid property id"))
		return
	}

	in, ok := h.bindInput(c)
	if !ok {
		return
	}

	p, err := h.propertySvc.Update(c.Request.Context(), id, in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.FromProperty(p))
}

// Delete handles DELETE /api/v1/properties/:id (admin).
func (h *PropertyHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid property id"))
		return
	}

	if err := h.propertySvc.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
