package dto

import (
	"time"

	"realty-backoffice/internal/core/domain"
)

// FromClient maps a domain client to its public view.
func FromClient(c *domain.Client) ClientResponse {
	return ClientResponse{
		ID:    c.ID.String(),
		Name:  c.Name,
		Email: c.Email,
		CPF:   c.CPF,
		Phone: c.Phone,
	}
}

// FromProject maps a domain project.
func FromProject(p domain.Project) ProjectResponse {
	return ProjectResponse{
		ID:         p.ID.String(),
		Name:       p.Name,
		Unit:       p.Unit,
		Status:     p.Status,
		Completion: p.Completion,
	}
}

// FromInvoice maps a domain invoice, deriving the dispatch state.
func FromInvoice(inv domain.Invoice) InvoiceResponse {
	resp := InvoiceResponse{
		ID:            inv.ID.String(),
		Number:        inv.Number,
		Description:   inv.Description,
		AmountCents:   inv.AmountCents,
		DueDate:       inv.DueDate.Format("2006-01-02"),
		Status:        string(inv.Status),
		DispatchState: string(inv.DispatchState()),
		Sent:          inv.Sent,
		LastError:     inv.LastError,
		Attempts:      inv.Attempts,
	}
	if inv.SentAt != nil {
		s := inv.SentAt.UTC().Format(time.RFC3339)
		resp.SentAt = &s
	}
	return resp
}

// FromInvoices maps a collection, preserving order.
func FromInvoices(invoices []domain.Invoice) []InvoiceResponse {
	out := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		out[i] = FromInvoice(invoices[i])
	}
	return out
}

// FromDispatchCounts maps the per-state aggregate.
func FromDispatchCounts(c domain.DispatchCounts) DispatchCountsResponse {
	return DispatchCountsResponse{Sent: c.Sent, Pending: c.Pending, Failed: c.Failed}
}

// FromDispatchLog maps one attempt trail entry.
func FromDispatchLog(l domain.DispatchLog) DispatchLogResponse {
	return DispatchLogResponse{
		ID:        l.ID,
		Attempt:   l.Attempt,
		Success:   l.Success,
		Error:     l.Error,
		CreatedAt: l.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// FromProperty maps a portfolio property.
func FromProperty(p *domain.Property) PropertyResponse {
	return PropertyResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		Location:    p.Location,
		PriceCents:  p.PriceCents,
		ImageURL:    p.ImageURL,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   p.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// FromContactMessage maps one inbox entry.
func FromContactMessage(m *domain.ContactMessage) ContactMessageResponse {
	return ContactMessageResponse{
		ID:        m.ID.String(),
		Name:      m.Name,
		Email:     m.Email,
		Phone:     m.Phone,
		Message:   m.Message,
		CreatedAt: m.CreatedAt.UTC().Format(time.RFC3339),
	}
}
