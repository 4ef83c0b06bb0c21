package handler

import (
	"realty-backoffice/internal/adapter/http/dto"
	"realty-backoffice/internal/core/ports"
	"realty-backoffice/pkg/apperror"
	"realty-backoffice/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ClientHandler exposes the admin-side client views.
type ClientHandler struct {
	clientSvc ports.ClientService
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(clientSvc ports.ClientService) *ClientHandler {
	return &ClientHandler{clientSvc: clientSvc}
}

// Lookup handles GET /api/v1/clients/lookup?cpf=... (admin).
func (h *ClientHandler) Lookup(c *gin.Context) {
	cpf := c.Query("cpf")
	if cpf == "" {
		response.Error(c, apperror.Validation("cpf query parameter is required"))
		return
	}

	lookup, err := h.clientSvc.LookupByCPF(c.Request.Context(), cpf)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ClientLookupResponse{
		Client:   dto.FromClient(lookup.Client),
		Invoices: dto.FromInvoices(lookup.Invoices),
		Counts:   dto.FromDispatchCounts(lookup.Counts),
	})
}

// ListInvoices handles GET /api/v1/clients/:id/invoices (admin).
func (h *ClientHandler) ListInvoices(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid client id"))
		return
	}

	invoices, counts, err := h.clientSvc.ListInvoices(c.Request.Context(), clientID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.InvoiceListResponse{
		Items:  dto.FromInvoices(invoices),
		Counts: dto.FromDispatchCounts(counts),
	})
}
