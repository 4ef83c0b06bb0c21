package handler

import (
	"time"

	"realty-backoffice/internal/adapter/http/dto"
	"realty-backoffice/internal/core/domain"
	"realty-backoffice/internal/core/ports"
	"realty-backoffice/pkg/apperror"
	"realty-backoffice/pkg/response"

	"github.com/gin-gonic/gin"
)

// PortalHandler handles the client self-service area.
type PortalHandler struct {
	portalSvc ports.PortalService
}

// NewPortalHandler creates a new PortalHandler.
func NewPortalHandler(portalSvc ports.PortalService) *PortalHandler {
	return &PortalHandler{portalSvc: portalSvc}
}

// Login handles POST /api/v1/portal/login.
func (h *PortalHandler) Login(c *gin.Context) {
	var req dto.PortalLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	cpf, ok := domain.NormalizeCPF(req.CPF)
	if !ok {
		response.Error(c, apperror.Validation("cpf must have 11 digits"))
		return
	}
	birthDate, err := time.Parse("2006-01-02", req.BirthDate)
	if err != nil {
		response.Error(c, apperror.Validation("birth_date must be YYYY-MM-DD"))
		return
	}

	session, err := h.portalSvc.Login(c.Request.Context(), cpf, birthDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	projects := make([]dto.ProjectResponse, len(session.Projects))
	for i, p := range session.Projects {
		projects[i] = dto.FromProject(p)
	}

	response.OK(c, dto.PortalSessionResponse{
		Client:   dto.FromClient(session.Client),
		Projects: projects,
		Invoices: dto.FromInvoices(session.Invoices),
	})
}
