package api_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	models "github.com/gardaracing/charter-api/internal"
	"github.com/gardaracing/charter-api/internal/api"
	"github.com/gardaracing/charter-api/internal/mocks"
	"github.com/gardaracing/charter-api/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestRealtimeWebhookHandler(t *testing.T) {
	t.Run("processes a change event", func(t *testing.T) {
		mockService := new(mocks.MockWebhookService)
		handler := api.RealtimeWebhookHandler(mockService)

		mockService.On("ProcessChange", mock.Anything, mock.MatchedBy(func(ev models.ChangeEvent) bool {
			return ev.Table == "bookings" && ev.Type == "INSERT"
		})).Return(nil)

		body := `{"type":"INSERT","table":"bookings","schema":"public","record":{"id":"b1"}}`
		req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/realtime", strings.NewReader(body))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Realtime webhook processed successfully")
		mockService.AssertExpectations(t)
	})

	t.Run("malformed body returns 400", func(t *testing.T) {
		mockService := new(mocks.MockWebhookService)
		handler := api.RealtimeWebhookHandler(mockService)

		req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/realtime", strings.NewReader(`{oops`))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockService.AssertNotCalled(t, "ProcessChange", mock.Anything, mock.Anything)
	})

	t.Run("processing failure returns 500", func(t *testing.T) {
		mockService := new(mocks.MockWebhookService)
		handler := api.RealtimeWebhookHandler(mockService)

		mockService.On("ProcessChange", mock.Anything, mock.Anything).Return(assert.AnError)

		body := `{"type":"INSERT","table":"bookings","record":{}}`
		req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/realtime", strings.NewReader(body))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Contains(t, rr.Body.String(), "Internal Server Error")
	})
}

func TestEventWebhookHandler(t *testing.T) {
	t.Run("processes an app event", func(t *testing.T) {
		mockService := new(mocks.MockWebhookService)
		handler := api.EventWebhookHandler(mockService)

		mockService.On("ProcessAppEvent", mock.Anything, mock.MatchedBy(func(ev models.AppEvent) bool {
			return ev.Event == "booking_created"
		})).Return(nil)

		body := `{"event":"booking_created","payload":{"id":"b1"}}`
		req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/events", strings.NewReader(body))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Webhook processed successfully")
	})

	t.Run("an invalid envelope returns 400", func(t *testing.T) {
		mockService := new(mocks.MockWebhookService)
		handler := api.EventWebhookHandler(mockService)

		mockService.On("ProcessAppEvent", mock.Anything, mock.Anything).
			Return(models.ErrInvalidWebhook)

		req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/events", strings.NewReader(`{}`))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Invalid webhook format")
	})
}

func TestStorageWebhookHandler(t *testing.T) {
	mockService := new(mocks.MockWebhookService)
	handler := api.StorageWebhookHandler(mockService)

	mockService.On("ProcessStorage", mock.Anything, mock.MatchedBy(func(ev models.StorageEvent) bool {
		return ev.Type == "INSERT" && ev.Record.BucketID == "booking-documents"
	})).Return(nil)

	body := `{"type":"INSERT","record":{"id":"f1","bucket_id":"booking-documents","name":"contract.pdf"}}`
	req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/storage", strings.NewReader(body))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Storage webhook processed successfully")
	mockService.AssertExpectations(t)
}

func TestWebhookAuth(t *testing.T) {
	mockService := new(mocks.MockWebhookService)
	mockService.On("ProcessChange", mock.Anything, mock.Anything).Return(nil)

	t.Run("wrong secret returns 401", func(t *testing.T) {
		handler := utils.WebhookAuth(api.RealtimeWebhookHandler(mockService), "top-secret")

		req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/realtime", strings.NewReader(`{}`))
		req.Header.Set(utils.WebhookSecretHeader, "wrong")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("missing secret returns 401", func(t *testing.T) {
		handler := utils.WebhookAuth(api.RealtimeWebhookHandler(mockService), "top-secret")

		req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/realtime", strings.NewReader(`{}`))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("matching secret passes through", func(t *testing.T) {
		handler := utils.WebhookAuth(api.RealtimeWebhookHandler(mockService), "top-secret")

		req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/realtime", strings.NewReader(`{}`))
		req.Header.Set(utils.WebhookSecretHeader, "top-secret")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("empty configured secret disables the check", func(t *testing.T) {
		handler := utils.WebhookAuth(api.RealtimeWebhookHandler(mockService), "")

		req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/realtime", strings.NewReader(`{}`))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})
}
