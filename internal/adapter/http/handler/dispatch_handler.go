package handler

import (
	"errors"
	"net/http"

	"realty-backoffice/internal/adapter/http/dto"
	"realty-backoffice/internal/core/ports"
	"realty-backoffice/pkg/apperror"
	"realty-backoffice/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DispatchHandler exposes the invoice dispatch operations.
type DispatchHandler struct {
	dispatchSvc ports.DispatchService
	clientSvc   ports.ClientService
}

// NewDispatchHandler creates a new DispatchHandler.
func NewDispatchHandler(dispatchSvc ports.DispatchService, clientSvc ports.ClientService) *DispatchHandler {
	return &DispatchHandler{dispatchSvc: dispatchSvc, clientSvc: clientSvc}
}

// SendOne handles POST /api/v1/invoices/:id/send (admin).
// Resending an already-sent invoice is allowed.
func (h *DispatchHandler) SendOne(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid invoice id"))
		return
	}

	invoice, msg, err := h.dispatchSvc.SendOne(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.SendResultResponse{
		Invoice: dto.FromInvoice(*invoice),
		Message: msg,
	})
}

// SendAllPending handles POST /api/v1/clients/:id/invoices/send-pending (admin).
// A cancelled or aborted sweep still reports the outcomes committed so far.
func (h *DispatchHandler) SendAllPending(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid client id"))
		return
	}

	invoices, summary, err := h.dispatchSvc.SendAllPending(c.Request.Context(), clientID)
	if err != nil {
		if summary == nil {
			response.Error(c, err)
			return
		}

		// Partial sweep: surface the abort but include committed outcomes.
		status := http.StatusInternalServerError
		code := "SYS_001"
		message := "Sweep aborted"
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			status = appErr.HTTPStatus
			code = appErr.Code
			message = appErr.Message
		}
		c.JSON(status, gin.H{
			"error_code": code,
			"message":    message,
			"partial": dto.SweepResultResponse{
				Invoices:  dto.FromInvoices(invoices),
				Attempted: summary.Attempted,
				Succeeded: summary.Succeeded,
				Failed:    summary.Failed,
				Skipped:   summary.Skipped,
			},
		})
		return
	}

	response.OK(c, dto.SweepResultResponse{
		Invoices:  dto.FromInvoices(invoices),
		Attempted: summary.Attempted,
		Succeeded: summary.Succeeded,
		Failed:    summary.Failed,
		Skipped:   summary.Skipped,
	})
}

// ListAttempts handles GET /api/v1/invoices/:id/attempts (admin).
func (h *DispatchHandler) ListAttempts(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid invoice id"))
		return
	}

	logs, err := h.clientSvc.ListAttempts(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.DispatchLogResponse, len(logs))
	for i := range logs {
		items[i] = dto.FromDispatchLog(logs[i])
	}
	response.OK(c, items)
}
