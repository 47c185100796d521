package fulfillment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

// MockUseCase simula o use case de confirmação
type MockUseCase struct {
	mock.Mock
}

func (m *MockUseCase) ConfirmOrder(ctx context.Context, scannedOrderID, currentUserID string) (*Confirmation, error) {
	args := m.Called(ctx, scannedOrderID, currentUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Confirmation), args.Error(1)
}

func setupRouter(useCase UseCaseInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewHandler(useCase, otel.Tracer("test"))
	r.POST("/api/orders/:id/confirm", handler.ConfirmOrder)
	return r
}

func confirmRequest(r *gin.Engine, orderID, customerID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/orders/"+orderID+"/confirm", nil)
	if customerID != "" {
		req.Header.Set("X-Customer-ID", customerID)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestConfirmOrderHandler_Success(t *testing.T) {
	mockUC := new(MockUseCase)
	mockUC.On("ConfirmOrder", mock.Anything, "order-1", "customer-1").
		Return(&Confirmation{OrderID: "order-1", OwnerID: "owner-1", Total: 25}, nil)

	w := confirmRequest(setupRouter(mockUC), "order-1", "customer-1")

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "order-1", body["order_id"])
	assert.Equal(t, "owner-1", body["idDueno"])
	assert.Equal(t, float64(25), body["total"])
	mockUC.AssertExpectations(t)
}

func TestConfirmOrderHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not authenticated", ErrNotAuthenticated, http.StatusUnauthorized, "not_authenticated"},
		{"order not found", ErrOrderNotFound, http.StatusNotFound, "order_not_found"},
		{"ownership mismatch", ErrOwnershipMismatch, http.StatusForbidden, "ownership_mismatch"},
		{"malformed order", ErrMalformedOrder, http.StatusUnprocessableEntity, "malformed_order"},
		{"already confirmed", ErrAlreadyConfirmed, http.StatusConflict, "already_confirmed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := new(MockUseCase)
			mockUC.On("ConfirmOrder", mock.Anything, "order-1", mock.Anything).
				Return(nil, tt.err)

			w := confirmRequest(setupRouter(mockUC), "order-1", "customer-1")

			assert.Equal(t, tt.wantStatus, w.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			// O cliente decide a mensagem pelo código, nunca pelo texto do erro
			assert.Equal(t, tt.wantCode, body["code"])
		})
	}
}
