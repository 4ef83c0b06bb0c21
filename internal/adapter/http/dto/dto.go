package dto

// AdminLoginRequest is the request body for the back-office login.
type AdminLoginRequest struct {
	Password string `json:"password" binding:"required,min=4,max=128"`
}

// LoginResponse is the response body for successful admin login.
type LoginResponse struct {
	Token  string `json:"token"`
	Expiry int64  `json:"expiry"` // Unix timestamp
}

// PortalLoginRequest is the client area login: CPF plus birth date.
type PortalLoginRequest struct {
	CPF       string `json:"cpf" binding:"required,cpf"`
	BirthDate string `json:"birth_date" binding:"required,datetime=2006-01-02"`
}

// PortalSessionResponse is what the client sees after logging in.
type PortalSessionResponse struct {
	Client   ClientResponse    `json:"client"`
	Projects []ProjectResponse `json:"projects"`
	Invoices []InvoiceResponse `json:"invoices"`
}

// ClientResponse is the public view of a client record.
type ClientResponse struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Email string  `json:"email"`
	CPF   string  `json:"cpf"`
	Phone *string `json:"phone,omitempty"`
}

// ProjectResponse is one development unit in the client portal.
type ProjectResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Unit       string `json:"unit"`
	Status     string `json:"status"`
	Completion int    `json:"completion"`
}

// InvoiceResponse is one invoice with its derived dispatch state.
type InvoiceResponse struct {
	ID            string  `json:"id"`
	Number        string  `json:"number"`
	Description   string  `json:"description"`
	AmountCents   int64   `json:"amount_cents"`
	DueDate       string  `json:"due_date"` // YYYY-MM-DD
	Status        string  `json:"status"`
	DispatchState string  `json:"dispatch_state"` // pending, failed, sent
	Sent          bool    `json:"sent"`
	SentAt        *string `json:"sent_at,omitempty"`
	LastError     *string `json:"last_error,omitempty"`
	Attempts      int     `json:"attempts"`
}

// DispatchCountsResponse aggregates invoices per dispatch state.
type DispatchCountsResponse struct {
	Sent    int `json:"sent"`
	Pending int `json:"pending"`
	Failed  int `json:"failed"`
}

// InvoiceListResponse wraps a client's invoices with the state counts.
type InvoiceListResponse struct {
	Items  []InvoiceResponse      `json:"items"`
	Counts DispatchCountsResponse `json:"counts"`
}

// SendResultResponse is the outcome of a single dispatch.
type SendResultResponse struct {
	Invoice InvoiceResponse `json:"invoice"`
	Message string          `json:"message"`
}

// SweepResultResponse is the outcome of a send-all-pending sweep.
type SweepResultResponse struct {
	Invoices  []InvoiceResponse `json:"invoices"`
	Attempted int               `json:"attempted"`
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
	Skipped   int               `json:"skipped"`
}

// DispatchLogResponse is one entry of an invoice's attempt trail.
type DispatchLogResponse struct {
	ID        string  `json:"id"`
	Attempt   int     `json:"attempt"`
	Success   bool    `json:"success"`
	Error     *string `json:"error,omitempty"`
	CreatedAt string  `json:"created_at"`
}

// ClientLookupResponse is the admin-side client search result.
type ClientLookupResponse struct {
	Client   ClientResponse         `json:"client"`
	Invoices []InvoiceResponse      `json:"invoices"`
	Counts   DispatchCountsResponse `json:"counts"`
}

// PropertyRequest is the request body for creating or updating a property.
type PropertyRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"max=4000"`
	Location    string `json:"location" binding:"max=200"`
	PriceCents  int64  `json:"price_cents" binding:"gte=0"`
	ImageURL    string `json:"image_url" binding:"omitempty,safe_url"`
	Status      string `json:"status" binding:"required"`
}

// PropertyResponse is one portfolio property.
type PropertyResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Location    string `json:"location"`
	PriceCents  int64  `json:"price_cents"`
	ImageURL    string `json:"image_url"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// ContactRequest is the public contact form body.
type ContactRequest struct {
	Name    string  `json:"name" binding:"required,min=1,max=100"`
	Email   string  `json:"email" binding:"required,email"`
	Phone   *string `json:"phone,omitempty" binding:"omitempty,max=30"`
	Message string  `json:"message" binding:"required,min=1,max=4000"`
}

// ContactMessageResponse is one inbox entry.
type ContactMessageResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone,omitempty"`
	Message   string  `json:"message"`
	CreatedAt string  `json:"created_at"`
}

// ContactListResponse wraps the paginated admin inbox.
type ContactListResponse struct {
	Items      []ContactMessageResponse `json:"items"`
	Total      int64                    `json:"total"`
	Page       int                      `json:"page"`
	PageSize   int                      `json:"page_size"`
	TotalPages int                      `json:"total_pages"`
}
