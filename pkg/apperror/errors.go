package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Authentication (AUTH) ----

func ErrInvalidCredentials() *AppError {
	return New("AUTH_001", "Invalid credentials", http.StatusUnauthorized)
}

func ErrInvalidToken() *AppError {
	return New("AUTH_002", "Invalid or expired token", http.StatusUnauthorized)
}

// ---- Clients & Portal (CLI) ----

func ErrClientNotFound() *AppError {
	return New("CLI_001", "Client not found", http.StatusNotFound)
}

// ---- Invoices (INV) ----

func ErrInvoiceNotFound() *AppError {
	return New("INV_001", "Invoice not found", http.StatusNotFound)
}

func ErrInvalidInvoice(reason string) *AppError {
	return New("INV_002", fmt.Sprintf("Invalid invoice: %s", reason), http.StatusBadRequest)
}

// ---- Dispatch (DSP) ----

// ErrDispatchInFlight signals a concurrent send for the same invoice.
func ErrDispatchInFlight() *AppError {
	return New("DSP_001", "Dispatch already in progress for this invoice", http.StatusConflict)
}

// ErrDispatchNotPersisted signals that the channel attempt completed but the
// dispatch fields could not be written back to the store. The invoice must not
// be reported as sent.
func ErrDispatchNotPersisted(err error) *AppError {
	return Wrap("DSP_002", "Dispatch outcome could not be persisted", http.StatusInternalServerError, err)
}

// ---- Properties (PROP) ----

func ErrPropertyNotFound() *AppError {
	return New("PROP_001", "Property not found", http.StatusNotFound)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "Internal database error", http.StatusInternalServerError, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a VAL_001 validation error.
func Validation(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}
