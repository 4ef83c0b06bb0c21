package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"realty-backoffice/internal/adapter/http/dto"
	"realty-backoffice/internal/core/domain"
	"realty-backoffice/internal/core/ports"
	"realty-backoffice/internal/core/ports/mocks"
	"realty-backoffice/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func jsonRequest(t *testing.T, method, path string, payload any) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return w, c
}

func dataField(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, ok := resp["data"].(map[string]interface{})
	require.True(t, ok, "response has no data object: %s", w.Body.String())
	return data
}

// --- Auth Handler ---

func TestAdminLogin_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	expiry := time.Now().Add(12 * time.Hour)
	mockAuth.EXPECT().Login(gomock.Any(), "operator-password").Return("jwt-token", expiry, nil)

	w, c := jsonRequest(t, http.MethodPost, "/api/v1/auth/login", dto.AdminLoginRequest{Password: "operator-password"})
	h.Login(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := dataField(t, w)
	assert.Equal(t, "jwt-token", data["token"])
}

func TestAdminLogin_WrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	mockAuth.EXPECT().Login(gomock.Any(), "wrong").
		Return("", time.Time{}, apperror.ErrInvalidCredentials())

	w, c := jsonRequest(t, http.MethodPost, "/api/v1/auth/login", dto.AdminLoginRequest{Password: "wrong"})
	h.Login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_001")
}

func TestAdminLogin_EmptyBody(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewAuthHandler(mocks.NewMockAuthService(ctrl))

	w, c := jsonRequest(t, http.MethodPost, "/api/v1/auth/login", map[string]string{})
	h.Login(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// --- Portal Handler ---

func TestPortalLogin_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockPortal := mocks.NewMockPortalService(ctrl)
	h := NewPortalHandler(mockPortal)

	clientID := uuid.New()
	birthDate := time.Date(1985, 3, 20, 0, 0, 0, 0, time.UTC)
	mockPortal.EXPECT().Login(gomock.Any(), "123.456.789-00", birthDate).
		Return(&ports.PortalSession{
			Client: &domain.Client{ID: clientID, Name: "Maria Silva", CPF: "123.456.789-00"},
			Projects: []domain.Project{
				{ID: uuid.New(), Name: "Residencial Aurora", Unit: "Apto 302", Completion: 75},
			},
			Invoices: []domain.Invoice{
				{ID: uuid.New(), Number: "0001", Attempts: 1},
			},
		}, nil)

	w, c := jsonRequest(t, http.MethodPost, "/api/v1/portal/login", dto.PortalLoginRequest{
		CPF:       "12345678900",
		BirthDate: "1985-03-20",
	})
	h.Login(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := dataField(t, w)
	client := data["client"].(map[string]interface{})
	assert.Equal(t, "Maria Silva", client["name"])
	invoices := data["invoices"].([]interface{})
	require.Len(t, invoices, 1)
	assert.Equal(t, "failed", invoices[0].(map[string]interface{})["dispatch_state"])
}

func TestPortalLogin_BadCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockPortal := mocks.NewMockPortalService(ctrl)
	h := NewPortalHandler(mockPortal)

	mockPortal.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, apperror.ErrInvalidCredentials())

	w, c := jsonRequest(t, http.MethodPost, "/api/v1/portal/login", dto.PortalLoginRequest{
		CPF:       "999.999.999-99",
		BirthDate: "1990-01-01",
	})
	h.Login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// --- Dispatch Handler ---

func TestSendOne_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDispatch := mocks.NewMockDispatchService(ctrl)
	h := NewDispatchHandler(mockDispatch, mocks.NewMockClientService(ctrl))

	invoiceID := uuid.New()
	sentAt := time.Now().UTC()
	mockDispatch.EXPECT().SendOne(gomock.Any(), invoiceID).
		Return(&domain.Invoice{
			ID: invoiceID, Number: "0001", Sent: true, SentAt: &sentAt, Attempts: 1,
		}, "Boleto 0001 sent via WhatsApp", nil)

	w, c := jsonRequest(t, http.MethodPost, "/api/v1/invoices/"+invoiceID.String()+"/send", nil)
	c.Params = gin.Params{{Key: "id", Value: invoiceID.String()}}
	h.SendOne(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := dataField(t, w)
	inv := data["invoice"].(map[string]interface{})
	assert.Equal(t, true, inv["sent"])
	assert.Equal(t, "sent", inv["dispatch_state"])
	assert.Contains(t, data["message"], "0001")
}

func TestSendOne_Conflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDispatch := mocks.NewMockDispatchService(ctrl)
	h := NewDispatchHandler(mockDispatch, mocks.NewMockClientService(ctrl))

	invoiceID := uuid.New()
	mockDispatch.EXPECT().SendOne(gomock.Any(), invoiceID).
		Return(nil, "", apperror.ErrDispatchInFlight())

	w, c := jsonRequest(t, http.MethodPost, "/", nil)
	c.Params = gin.Params{{Key: "id", Value: invoiceID.String()}}
	h.SendOne(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "DSP_001")
}

func TestSendOne_BadID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewDispatchHandler(mocks.NewMockDispatchService(ctrl), mocks.NewMockClientService(ctrl))

	w, c := jsonRequest(t, http.MethodPost, "/", nil)
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}
	h.SendOne(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSendAllPending_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDispatch := mocks.NewMockDispatchService(ctrl)
	h := NewDispatchHandler(mockDispatch, mocks.NewMockClientService(ctrl))

	clientID := uuid.New()
	mockDispatch.EXPECT().SendAllPending(gomock.Any(), clientID).
		Return([]domain.Invoice{
			{ID: uuid.New(), Number: "0001", Sent: true, Attempts: 1},
			{ID: uuid.New(), Number: "0002", Attempts: 1},
		}, &ports.DispatchSummary{Attempted: 2, Succeeded: 1, Failed: 1}, nil)

	w, c := jsonRequest(t, http.MethodPost, "/", nil)
	c.Params = gin.Params{{Key: "id", Value: clientID.String()}}
	h.SendAllPending(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := dataField(t, w)
	assert.Equal(t, float64(2), data["attempted"])
	assert.Equal(t, float64(1), data["succeeded"])
	assert.Equal(t, float64(1), data["failed"])
}

func TestSendAllPending_PartialOnStoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDispatch := mocks.NewMockDispatchService(ctrl)
	h := NewDispatchHandler(mockDispatch, mocks.NewMockClientService(ctrl))

	clientID := uuid.New()
	mockDispatch.EXPECT().SendAllPending(gomock.Any(), clientID).
		Return([]domain.Invoice{{ID: uuid.New(), Sent: true, Attempts: 1}},
			&ports.DispatchSummary{Attempted: 1, Succeeded: 1},
			apperror.ErrDispatchNotPersisted(assert.AnError))

	w, c := jsonRequest(t, http.MethodPost, "/", nil)
	c.Params = gin.Params{{Key: "id", Value: clientID.String()}}
	h.SendAllPending(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "DSP_002", resp["error_code"])
	partial := resp["partial"].(map[string]interface{})
	assert.Equal(t, float64(1), partial["succeeded"])
}

func TestListAttempts_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mocks.NewMockClientService(ctrl)
	h := NewDispatchHandler(mocks.NewMockDispatchService(ctrl), mockClient)

	invoiceID := uuid.New()
	mockClient.EXPECT().ListAttempts(gomock.Any(), invoiceID).
		Return([]domain.DispatchLog{
			{ID: domain.NewDispatchLogID(), InvoiceID: invoiceID, Attempt: 1, Success: false, CreatedAt: time.Now()},
		}, nil)

	w, c := jsonRequest(t, http.MethodGet, "/", nil)
	c.Params = gin.Params{{Key: "id", Value: invoiceID.String()}}
	h.ListAttempts(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

// --- Client Handler ---

func TestClientLookup_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mocks.NewMockClientService(ctrl)
	h := NewClientHandler(mockClient)

	clientID := uuid.New()
	mockClient.EXPECT().LookupByCPF(gomock.Any(), "123.456.789-00").
		Return(&ports.ClientLookup{
			Client:   &domain.Client{ID: clientID, Name: "Maria Silva", CPF: "123.456.789-00"},
			Invoices: []domain.Invoice{{ID: uuid.New(), Sent: true, Attempts: 1}},
			Counts:   domain.DispatchCounts{Sent: 1},
		}, nil)

	w, c := jsonRequest(t, http.MethodGet, "/", nil)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/clients/lookup?cpf=123.456.789-00", nil)
	h.Lookup(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := dataField(t, w)
	counts := data["counts"].(map[string]interface{})
	assert.Equal(t, float64(1), counts["sent"])
}

func TestClientLookup_MissingCPF(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewClientHandler(mocks.NewMockClientService(ctrl))

	w, c := jsonRequest(t, http.MethodGet, "/", nil)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/clients/lookup", nil)
	h.Lookup(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// --- Property Handler ---

func TestPropertyCreate_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockProperty := mocks.NewMockPropertyService(ctrl)
	h := NewPropertyHandler(mockProperty)

	created := &domain.Property{
		ID:     uuid.New(),
		Name:   "Residencial Aurora",
		Status: domain.PropertyStatusAvailable,
	}
	mockProperty.EXPECT().Create(gomock.Any(), gomock.Any()).Return(created, nil)

	w, c := jsonRequest(t, http.MethodPost, "/api/v1/properties", dto.PropertyRequest{
		Name:       "Residencial Aurora",
		PriceCents: 85000000,
		Status:     "available",
	})
	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	data := dataField(t, w)
	assert.Equal(t, "Residencial Aurora", data["name"])
}

func TestPropertyUpdate_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockProperty := mocks.NewMockPropertyService(ctrl)
	h := NewPropertyHandler(mockProperty)

	id := uuid.New()
	mockProperty.EXPECT().Update(gomock.Any(), id, gomock.Any()).
		Return(nil, apperror.ErrPropertyNotFound())

	w, c := jsonRequest(t, http.MethodPut, "/", dto.PropertyRequest{
		Name:       "Updated",
		PriceCents: 100,
		Status:     "sold",
	})
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	h.Update(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "PROP_001")
}

// --- Contact Handler ---

func TestContactSubmit_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockContact := mocks.NewMockContactService(ctrl)
	h := NewContactHandler(mockContact)

	mockContact.EXPECT().Submit(gomock.Any(), gomock.Any()).
		Return(&domain.ContactMessage{
			ID:   uuid.New(),
			Name: "João",
		}, nil)

	w, c := jsonRequest(t, http.MethodPost, "/api/v1/contact", dto.ContactRequest{
		Name:    "João",
		Email:   "joao@example.com",
		Message: "Tenho interesse.",
	})
	h.Submit(c)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestContactSubmit_InvalidEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewContactHandler(mocks.NewMockContactService(ctrl))

	w, c := jsonRequest(t, http.MethodPost, "/api/v1/contact", dto.ContactRequest{
		Name:    "João",
		Email:   "not-an-email",
		Message: "hi",
	})
	h.Submit(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
