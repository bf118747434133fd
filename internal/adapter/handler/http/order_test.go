package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xcommerce/backend/internal/adapter/auth"
	"github.com/xcommerce/backend/internal/adapter/config"
	xhttp "github.com/xcommerce/backend/internal/adapter/handler/http"
	"github.com/xcommerce/backend/internal/core/domain"
	"github.com/xcommerce/backend/internal/core/port"
	"github.com/xcommerce/backend/internal/core/port/mock"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T, svc port.Service) (*xhttp.Router, port.TokenService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	ts, err := auth.New()
	require.NoError(t, err)

	userHandler, err := xhttp.NewUserHandler(svc, logger)
	require.NoError(t, err)
	productHandler, err := xhttp.NewProductHandler(svc, logger)
	require.NoError(t, err)
	addressHandler, err := xhttp.NewAddressHandler(svc, logger)
	require.NoError(t, err)
	orderHandler, err := xhttp.NewOrderHandler(svc, logger)
	require.NoError(t, err)

	router, err := xhttp.NewRouter(&config.HTTP{}, ts,
		userHandler, productHandler, addressHandler, orderHandler, logger)
	require.NoError(t, err)

	return router, ts
}

func bearerFor(t *testing.T, ts port.TokenService, userID uint64) string {
	t.Helper()
	token, err := ts.CreateToken(&domain.User{ID: userID})
	require.NoError(t, err)
	return "Bearer " + token
}

func TestOrderHandler_CheckoutAuth(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	svc := mock.NewMockService(mockCtrl)
	router, _ := newTestRouter(t, svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(nethttp.MethodPost, "/api/orders/checkout",
		bytes.NewBufferString(`{}`))
	router.ServeHTTP(w, req)

	assert.Equal(t, nethttp.StatusUnauthorized, w.Code)
}

func TestOrderHandler_Checkout(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	svc := mock.NewMockService(mockCtrl)
	router, ts := newTestRouter(t, svc)

	body := `{"address":2,"total":35.0,"tax":1.75,"items":[{"product":10,"qty":3},{"product":11,"qty":2}]}`

	order := &domain.Order{
		ID:        1,
		UUID:      uuid.New(),
		UserID:    1,
		AddressID: 2,
		Total:     decimal.MustParse("35.00"),
		Tax:       decimal.MustParse("1.75"),
		CreatedAt: time.Now(),
		Items: []domain.OrderItem{
			{ProductID: 10, Quantity: 3, LineTotal: decimal.MustParse("30.00")},
			{ProductID: 11, Quantity: 2, LineTotal: decimal.MustParse("5.00")},
		},
	}

	svc.EXPECT().Checkout(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *domain.CheckoutRequest) (*domain.Order, error) {
			assert.Equal(t, uint64(1), req.UserID)
			assert.Equal(t, uint64(2), req.AddressID)
			require.Len(t, req.Items, 2)
			assert.Equal(t, uint64(10), req.Items[0].ProductID)
			assert.Equal(t, uint64(3), req.Items[0].Quantity)
			return order, nil
		})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(nethttp.MethodPost, "/api/orders/checkout",
		bytes.NewBufferString(body))
	req.Header.Set("Authorization", bearerFor(t, ts, 1))
	router.ServeHTTP(w, req)

	assert.Equal(t, nethttp.StatusCreated, w.Code)

	var resp struct {
		UUID  string `json:"uuid"`
		Items []struct {
			Product uint64 `json:"product"`
			Qty     uint64 `json:"qty"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, order.UUID.String(), resp.UUID)
	assert.Len(t, resp.Items, 2)
}

func TestOrderHandler_CheckoutOutOfStock(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	svc := mock.NewMockService(mockCtrl)
	router, ts := newTestRouter(t, svc)

	svc.EXPECT().Checkout(gomock.Any(), gomock.Any()).
		Return(nil, &domain.OutOfStockError{ProductID: 11})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(nethttp.MethodPost, "/api/orders/checkout",
		bytes.NewBufferString(`{"address":2,"items":[{"product":11,"qty":5}]}`))
	req.Header.Set("Authorization", bearerFor(t, ts, 1))
	router.ServeHTTP(w, req)

	assert.Equal(t, nethttp.StatusConflict, w.Code)

	var resp struct {
		Error   string `json:"error"`
		Product uint64 `json:"product"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "item unavailable", resp.Error)
	assert.Equal(t, uint64(11), resp.Product)
}

func TestOrderHandler_CheckoutRejected(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	svc := mock.NewMockService(mockCtrl)
	router, ts := newTestRouter(t, svc)

	svc.EXPECT().Checkout(gomock.Any(), gomock.Any()).
		Return(nil, domain.ErrEmptyOrder)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(nethttp.MethodPost, "/api/orders/checkout",
		bytes.NewBufferString(`{"address":2,"items":[]}`))
	req.Header.Set("Authorization", bearerFor(t, ts, 1))
	router.ServeHTTP(w, req)

	assert.Equal(t, nethttp.StatusBadRequest, w.Code)
}

func TestOrderHandler_CheckoutStoreDown(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	svc := mock.NewMockService(mockCtrl)
	router, ts := newTestRouter(t, svc)

	svc.EXPECT().Checkout(gomock.Any(), gomock.Any()).
		Return(nil, domain.ErrInternal)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(nethttp.MethodPost, "/api/orders/checkout",
		bytes.NewBufferString(`{"address":2,"items":[{"product":1,"qty":1}]}`))
	req.Header.Set("Authorization", bearerFor(t, ts, 1))
	router.ServeHTTP(w, req)

	assert.Equal(t, nethttp.StatusInternalServerError, w.Code)

	var resp struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "could not complete order", resp.Error)
}

func TestOrderHandler_GetOrderBadUUID(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	svc := mock.NewMockService(mockCtrl)
	router, ts := newTestRouter(t, svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(nethttp.MethodGet, "/api/orders/not-a-uuid", nil)
	req.Header.Set("Authorization", bearerFor(t, ts, 1))
	router.ServeHTTP(w, req)

	assert.Equal(t, nethttp.StatusBadRequest, w.Code)
}
