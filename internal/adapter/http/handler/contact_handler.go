package handler

import (
	"strconv"

	"realty-backoffice/internal/adapter/http/dto"
	"realty-backoffice/internal/core/ports"
	"realty-backoffice/pkg/apperror"
	"realty-backoffice/pkg/response"

	"github.com/gin-gonic/gin"
)

// ContactHandler handles the public contact form and the admin inbox.
type ContactHandler struct {
	contactSvc ports.ContactService
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(contactSvc ports.ContactService) *ContactHandler {
	return &ContactHandler{contactSvc: contactSvc}
}

// Submit handles POST /api/v1/contact.
func (h *ContactHandler) Submit(c *gin.Context) {
	var req dto.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	m, err := h.contactSvc.Submit(c.Request.Context(), ports.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.FromContactMessage(m))
}

// List handles GET /api/v1/contacts (admin).
func (h *ContactHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	messages, total, err := h.contactSvc.List(c.Request.Context(), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.ContactMessageResponse, len(messages))
	for i := range messages {
		items[i] = dto.FromContactMessage(&messages[i])
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	response.OK(c, dto.ContactListResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	})
}
