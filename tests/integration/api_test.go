package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"realty-backoffice/internal/adapter/channel/whatsapp"
	httpHandler "realty-backoffice/internal/adapter/http/handler"
	redisStorage "realty-backoffice/internal/adapter/storage/redis"
	"realty-backoffice/internal/core/domain"
	"realty-backoffice/internal/core/ports"
	"realty-backoffice/internal/service"
	"realty-backoffice/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp builds a full application stack: real HTTP layer, middleware,
// handlers and services, backed by in-memory repos and miniredis. The
// WhatsApp channel is a seeded simulator with failure rate 0, so every
// delivery attempt succeeds deterministically.

const testAdminPassword = "backoffice-test-pass"

type testApp struct {
	server *httptest.Server
	redis  *miniredis.Miniredis

	invoiceRepo *inMemoryInvoiceRepo
	clientRepo  *inMemoryClientRepo
	projectRepo *inMemoryProjectRepo
	logRepo     *inMemoryDispatchLogRepo
}

func newTestApp(t *testing.T) *testApp {
	return newTestAppWithLatency(t, 0)
}

// newTestAppWithLatency lets concurrency tests slow the simulated channel down
// so overlapping dispatches actually collide on the in-flight guard.
func newTestAppWithLatency(t *testing.T, channelLatency time.Duration) *testApp {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)

	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})

	log := logger.New("debug", false)

	// Core services with real implementations
	hashSvc := service.NewArgon2HashService()
	tokenSvc := service.NewJWTTokenService("test-jwt-secret-key-32bytes!!", 24*time.Hour, "test-issuer")

	adminHash, err := hashSvc.Hash(testAdminPassword)
	require.NoError(t, err)

	// In-memory repos
	invoiceRepo := newInMemoryInvoiceRepo()
	clientRepo := newInMemoryClientRepo()
	projectRepo := newInMemoryProjectRepo()
	propertyRepo := newInMemoryPropertyRepo()
	contactRepo := newInMemoryContactRepo()
	logRepo := newInMemoryDispatchLogRepo()

	// Deterministic channel: never fails
	channel := whatsapp.NewSeededSimulator(0, channelLatency, 1, log)

	// Business services
	authSvc := service.NewAuthService(adminHash, hashSvc, tokenSvc, log)
	portalSvc := service.NewPortalService(clientRepo, projectRepo, invoiceRepo, log)
	propertySvc := service.NewPropertyService(propertyRepo, log)
	contactSvc := service.NewContactService(contactRepo, log)
	clientSvc := service.NewClientService(clientRepo, invoiceRepo, logRepo)
	dispatchSvc := service.NewDispatchService(invoiceRepo, clientRepo, logRepo, channel, 0, log)

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		AuthSvc:        authSvc,
		PortalSvc:      portalSvc,
		PropertySvc:    propertySvc,
		ContactSvc:     contactSvc,
		ClientSvc:      clientSvc,
		DispatchSvc:    dispatchSvc,
		TokenSvc:       tokenSvc,
		RateLimitStore: redisStorage.NewRateLimitStore(rdb),
		HealthCheckers: []ports.HealthChecker{redisStorage.NewHealthCheck(rdb)},
		Logger:         log,
	})

	server := httptest.NewServer(router)

	return &testApp{
		server:      server,
		redis:       mr,
		invoiceRepo: invoiceRepo,
		clientRepo:  clientRepo,
		projectRepo: projectRepo,
		logRepo:     logRepo,
	}
}

func (a *testApp) close() {
	a.server.Close()
	a.redis.Close()
}

// seedClient stores a client with a phone number and returns it.
func (a *testApp) seedClient(t *testing.T) domain.Client {
	t.Helper()
	phone := "+5511987654321"
	client := domain.Client{
		ID:        uuid.New(),
		Name:      "Maria Silva",
		Email:     "maria.silva@example.com",
		CPF:       "123.456.789-00",
		BirthDate: time.Date(1985, 3, 10, 0, 0, 0, 0, time.UTC),
		Phone:     &phone,
		CreatedAt: time.Now().UTC(),
	}
	a.clientRepo.add(client)
	return client
}

// seedInvoice stores an unsent invoice for the given client.
func (a *testApp) seedInvoice(t *testing.T, clientID uuid.UUID, number string, dueDate time.Time) domain.Invoice {
	t.Helper()
	inv := domain.Invoice{
		ID:          uuid.New(),
		ClientID:    clientID,
		Number:      number,
		Description: "Parcela Residencial Aurora",
		AmountCents: 185000,
		DueDate:     dueDate,
		Status:      domain.InvoiceStatusPending,
		CreatedAt:   time.Now().UTC(),
	}
	a.invoiceRepo.add(inv)
	return inv
}

func adminToken(t *testing.T, app *testApp) string {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"password": testAdminPassword})
	resp, err := http.Post(app.server.URL+"/api/v1/auth/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var loginResp map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&loginResp))
	data := loginResp["data"].(map[string]interface{})
	token, _ := data["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func doAuthed(t *testing.T, app *testApp, token, method, path string, body []byte) *http.Response {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, app.server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeData(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var envelope map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	data, ok := envelope["data"].(map[string]interface{})
	require.True(t, ok, "response has no data object: %v", envelope)
	return data
}

// --- Integration Tests ---

func TestIntegration_HealthCheck(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	resp, err := http.Get(app.server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
}

func TestIntegration_AdminLogin(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	token := adminToken(t, app)
	assert.NotEmpty(t, token)
}

func TestIntegration_AdminLoginWrongPassword(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	body, _ := json.Marshal(map[string]string{"password": "not-the-password"})
	resp, err := http.Post(app.server.URL+"/api/v1/auth/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestIntegration_ProtectedRouteRequiresToken(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	resp, err := http.Get(app.server.URL + "/api/v1/clients/lookup?cpf=123.456.789-00")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestIntegration_PortalLogin(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	client := app.seedClient(t)
	app.projectRepo.add(domain.Project{
		ID:         uuid.New(),
		ClientID:   client.ID,
		Name:       "Residencial Aurora",
		Unit:       "Torre A - 72",
		Status:     "em obras",
		Completion: 65,
	})
	app.seedInvoice(t, client.ID, "BOL-2025-001", time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC))

	// CPF punctuation is optional on login
	body, _ := json.Marshal(map[string]string{
		"cpf":        "12345678900",
		"birth_date": "1985-03-10",
	})
	resp, err := http.Post(app.server.URL+"/api/v1/portal/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := decodeData(t, resp)

	clientData := data["client"].(map[string]interface{})
	assert.Equal(t, "Maria Silva", clientData["name"])

	projects := data["projects"].([]interface{})
	require.Len(t, projects, 1)

	invoices := data["invoices"].([]interface{})
	require.Len(t, invoices, 1)
	assert.Equal(t, "pending", invoices[0].(map[string]interface{})["dispatch_state"])
}

func TestIntegration_PortalLoginBadCredentials(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	app.seedClient(t)

	// Right CPF, wrong birth date
	body, _ := json.Marshal(map[string]string{
		"cpf":        "123.456.789-00",
		"birth_date": "1990-01-01",
	})
	resp, err := http.Post(app.server.URL+"/api/v1/portal/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestIntegration_SendOneFlow(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	client := app.seedClient(t)
	inv := app.seedInvoice(t, client.ID, "BOL-2025-001", time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC))

	token := adminToken(t, app)

	resp := doAuthed(t, app, token, http.MethodPost, "/api/v1/invoices/"+inv.ID.String()+"/send", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := decodeData(t, resp)
	assert.Equal(t, "Boleto BOL-2025-001 sent via WhatsApp", data["message"])

	invData := data["invoice"].(map[string]interface{})
	assert.Equal(t, true, invData["sent"])
	assert.Equal(t, "sent", invData["dispatch_state"])
	assert.Equal(t, float64(1), invData["attempts"])
	assert.NotEmpty(t, invData["sent_at"])

	// The attempt trail records the delivery
	resp2 := doAuthed(t, app, token, http.MethodGet, "/api/v1/invoices/"+inv.ID.String()+"/attempts", nil)
	defer resp2.Body.Close()
	require.Equal(t, http.StatusOK, resp2.StatusCode)

	var envelope map[string]interface{}
	require.NoError(t, json.NewDecoder(resp2.Body).Decode(&envelope))
	attempts := envelope["data"].([]interface{})
	require.Len(t, attempts, 1)
	entry := attempts[0].(map[string]interface{})
	assert.Equal(t, true, entry["success"])
	assert.Equal(t, float64(1), entry["attempt"])
}

func TestIntegration_SendAllPendingSweep(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	client := app.seedClient(t)
	app.seedInvoice(t, client.ID, "BOL-2025-001", time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC))
	app.seedInvoice(t, client.ID, "BOL-2025-002", time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC))

	// Already delivered, must be skipped by the sweep
	sentAt := time.Now().UTC()
	sent := app.seedInvoice(t, client.ID, "BOL-2025-003", time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, app.invoiceRepo.UpdateDispatch(context.Background(), sent.ID, domain.DispatchUpdate{
		Sent: true, SentAt: &sentAt, Attempts: 1,
	}))

	token := adminToken(t, app)

	resp := doAuthed(t, app, token, http.MethodPost, "/api/v1/clients/"+client.ID.String()+"/invoices/send-pending", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := decodeData(t, resp)
	assert.Equal(t, float64(2), data["attempted"])
	assert.Equal(t, float64(2), data["succeeded"])
	assert.Equal(t, float64(0), data["failed"])
	assert.Equal(t, float64(0), data["skipped"])

	// Due date descending, all delivered
	invoices := data["invoices"].([]interface{})
	require.Len(t, invoices, 3)
	numbers := make([]string, 0, 3)
	for _, raw := range invoices {
		item := raw.(map[string]interface{})
		numbers = append(numbers, item["number"].(string))
		assert.Equal(t, "sent", item["dispatch_state"])
	}
	assert.Equal(t, []string{"BOL-2025-003", "BOL-2025-002", "BOL-2025-001"}, numbers)
}

func TestIntegration_ClientLookup(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	client := app.seedClient(t)
	app.seedInvoice(t, client.ID, "BOL-2025-001", time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC))

	token := adminToken(t, app)

	resp := doAuthed(t, app, token, http.MethodGet, "/api/v1/clients/lookup?cpf=12345678900", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := decodeData(t, resp)
	clientData := data["client"].(map[string]interface{})
	assert.Equal(t, client.ID.String(), clientData["id"])

	counts := data["counts"].(map[string]interface{})
	assert.Equal(t, float64(1), counts["pending"])
	assert.Equal(t, float64(0), counts["sent"])
}

func TestIntegration_PropertyLifecycle(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	token := adminToken(t, app)

	createBody, _ := json.Marshal(map[string]interface{}{
		"name":        "Residencial Jardim das Flores",
		"description": "Apartamentos de 2 e 3 quartos",
		"location":    "Campinas, SP",
		"price_cents": 48000000,
		"status":      "available",
	})
	resp := doAuthed(t, app, token, http.MethodPost, "/api/v1/properties", createBody)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	data := decodeData(t, resp)
	propertyID := data["id"].(string)
	require.NotEmpty(t, propertyID)

	// Public listing sees it without auth
	resp2, err := http.Get(app.server.URL + "/api/v1/properties")
	require.NoError(t, err)
	defer resp2.Body.Close()
	require.Equal(t, http.StatusOK, resp2.StatusCode)

	var listEnvelope map[string]interface{}
	require.NoError(t, json.NewDecoder(resp2.Body).Decode(&listEnvelope))
	items := listEnvelope["data"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "Residencial Jardim das Flores", items[0].(map[string]interface{})["name"])

	// Delete, then public listing is empty again
	resp3 := doAuthed(t, app, token, http.MethodDelete, "/api/v1/properties/"+propertyID, nil)
	resp3.Body.Close()
	require.Equal(t, http.StatusNoContent, resp3.StatusCode)

	resp4, err := http.Get(app.server.URL + "/api/v1/properties")
	require.NoError(t, err)
	defer resp4.Body.Close()
	var listEnvelope2 map[string]interface{}
	require.NoError(t, json.NewDecoder(resp4.Body).Decode(&listEnvelope2))
	items2, _ := listEnvelope2["data"].([]interface{})
	assert.Len(t, items2, 0)
}

func TestIntegration_ContactSubmitAndList(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	body, _ := json.Marshal(map[string]string{
		"name":    "João Pereira",
		"email":   "joao.pereira@example.com",
		"message": "Gostaria de saber mais sobre o Residencial Aurora.",
	})
	resp, err := http.Post(app.server.URL+"/api/v1/contact", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	token := adminToken(t, app)
	resp2 := doAuthed(t, app, token, http.MethodGet, "/api/v1/contacts", nil)
	defer resp2.Body.Close()
	require.Equal(t, http.StatusOK, resp2.StatusCode)

	data := decodeData(t, resp2)
	assert.Equal(t, float64(1), data["total"])
	items := data["items"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "João Pereira", items[0].(map[string]interface{})["name"])
}

func TestIntegration_ContactRateLimit(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	submit := func() *http.Response {
		body, _ := json.Marshal(map[string]string{
			"name":    "Ana Costa",
			"email":   "ana.costa@example.com",
			"message": "Tenho interesse em agendar uma visita.",
		})
		resp, err := http.Post(app.server.URL+"/api/v1/contact", "application/json", bytes.NewReader(body))
		require.NoError(t, err)
		return resp
	}

	// The contact form allows 5 submissions per minute per IP
	for i := 0; i < 5; i++ {
		resp := submit()
		resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode, "request %d should pass", i+1)
	}

	resp := submit()
	defer resp.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))

	// The window expires and submissions are accepted again
	app.redis.FastForward(61 * time.Second)
	resp2 := submit()
	resp2.Body.Close()
	assert.Equal(t, http.StatusCreated, resp2.StatusCode)
}

func TestIntegration_SweepAbortReportsPartialResults(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	client := app.seedClient(t)
	app.seedInvoice(t, client.ID, "BOL-2025-001", time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC))

	token := adminToken(t, app)

	// Every persist now fails, so the first attempt aborts the sweep
	app.invoiceRepo.failUpdates(fmt.Errorf("connection reset"))

	resp := doAuthed(t, app, token, http.MethodPost, "/api/v1/clients/"+client.ID.String()+"/invoices/send-pending", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "DSP_002", body["error_code"])

	partial := body["partial"].(map[string]interface{})
	assert.Equal(t, float64(0), partial["succeeded"])
}
