package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"realty-backoffice/internal/core/domain"
	"realty-backoffice/internal/core/ports"

	"github.com/rs/zerolog"
)

// HTTPClient is the subset of http.Client the gateway needs; tests substitute
// a stub.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Gateway implements ports.NotificationChannel against a WhatsApp HTTP API.
// Transport and non-2xx outcomes become failed SendResults, never Go errors:
// the coordinator treats delivery failure as recordable data.
type Gateway struct {
	apiURL   string
	apiToken string
	client   HTTPClient
	log      zerolog.Logger
}

// NewGateway creates a gateway client with the given timeout.
func NewGateway(apiURL, apiToken string, timeout time.Duration, log zerolog.Logger) *Gateway {
	return &Gateway{
		apiURL:   apiURL,
		apiToken: apiToken,
		client:   &http.Client{Timeout: timeout},
		log:      log,
	}
}

// NewGatewayWithClient creates a gateway backed by a custom HTTP client.
func NewGatewayWithClient(apiURL, apiToken string, client HTTPClient, log zerolog.Logger) *Gateway {
	return &Gateway{apiURL: apiURL, apiToken: apiToken, client: client, log: log}
}

type sendMessageRequest struct {
	To            string `json:"to"`
	InvoiceNumber string `json:"invoice_number"`
	Description   string `json:"description"`
	AmountCents   int64  `json:"amount_cents"`
	DueDate       string `json:"due_date"`
}

type sendMessageResponse struct {
	MessageID string `json:"message_id"`
	Error     string `json:"error"`
}

// Send posts one invoice notice to the gateway.
func (g *Gateway) Send(ctx context.Context, invoice *domain.Invoice, recipientPhone string) ports.SendResult {
	if recipientPhone == "" {
		return ports.SendResult{Reason: "client has no phone number"}
	}

	payload := sendMessageRequest{
		To:            recipientPhone,
		InvoiceNumber: invoice.Number,
		Description:   invoice.Description,
		AmountCents:   invoice.AmountCents,
		DueDate:       invoice.DueDate.Format("2006-01-02"),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return ports.SendResult{Reason: fmt.Sprintf("encoding message: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.apiURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return ports.SendResult{Reason: fmt.Sprintf("building request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiToken)

	resp, err := g.client.Do(req)
	if err != nil {
		g.log.Warn().Err(err).Str("invoice_id", invoice.ID.String()).Msg("gateway request failed")
		return ports.SendResult{Reason: fmt.Sprintf("gateway unreachable: %v", err)}
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var gwResp sendMessageResponse
		reason := fmt.Sprintf("gateway returned status %d", resp.StatusCode)
		if json.Unmarshal(respBody, &gwResp) == nil && gwResp.Error != "" {
			reason = fmt.Sprintf("gateway rejected message: %s", gwResp.Error)
		}
		g.log.Warn().
			Int("status", resp.StatusCode).
			Str("invoice_id", invoice.ID.String()).
			Msg("gateway rejected message")
		return ports.SendResult{Reason: reason}
	}

	var gwResp sendMessageResponse
	if err := json.Unmarshal(respBody, &gwResp); err != nil {
		return ports.SendResult{Reason: fmt.Sprintf("decoding gateway response: %v", err)}
	}

	g.log.Info().
		Str("invoice_id", invoice.ID.String()).
		Str("message_id", gwResp.MessageID).
		Msg("message accepted by gateway")
	return ports.SendResult{Success: true}
}
