package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"shop-service/controllers"
	"shop-service/middleware"
	"shop-service/models"
	"shop-service/services"
)

type mockOrderSvc struct {
	orderID uint
	orders  []models.Order
	order   *models.Order
	err     *services.ServiceError

	lastUserID uint
	lastStatus string
}

func (m *mockOrderSvc) PlaceOrder(_ context.Context, userID uint, _ string, _ *services.PlaceOrderRequest) (uint, *services.ServiceError) {
	m.lastUserID = userID
	return m.orderID, m.err
}

func (m *mockOrderSvc) ListAll(_ context.Context) ([]models.Order, *services.ServiceError) {
	return m.orders, m.err
}

func (m *mockOrderSvc) ListMine(_ context.Context, userID uint) ([]models.Order, *services.ServiceError) {
	m.lastUserID = userID
	return m.orders, m.err
}

func (m *mockOrderSvc) GetByID(_ context.Context, _ uint) (*models.Order, *services.ServiceError) {
	return m.order, m.err
}

func (m *mockOrderSvc) UpdateStatus(_ context.Context, _ uint, status string) (*models.Order, *services.ServiceError) {
	m.lastStatus = status
	return m.order, m.err
}

func jsonBody(body interface{}) *bytes.Reader {
	b, _ := json.Marshal(body)
	return bytes.NewReader(b)
}

// fakeAuth stands in for middleware.Authenticate in tests.
func fakeAuth(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserContextKey, userID)
		c.Next()
	}
}

func setupOrderRouter(svc services.OrderService, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.Session())
	r.Use(fakeAuth(userID))
	c := controllers.NewOrderController(svc)

	r.POST("/orders", c.PlaceOrder)
	r.GET("/orders/my", c.ListMine)
	r.GET("/orders", c.ListAll)
	r.GET("/orders/:id", c.GetByID)
	r.PUT("/orders/:id/status", c.UpdateStatus)
	return r
}

func TestPlaceOrderHandler_Success(t *testing.T) {
	svc := &mockOrderSvc{orderID: 12}
	r := setupOrderRouter(svc, 7)

	w := postJSON(r, "/orders", gin.H{
		"delivery_address": "1 Main St, Kyiv",
		"phone":            "+380501234567",
		"notes":            "leave at the door",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, float64(12), resp["order_id"])
	assert.Equal(t, "Order placed successfully", resp["message"])
	assert.Equal(t, uint(7), svc.lastUserID)
}

func TestPlaceOrderHandler_EmptyCart(t *testing.T) {
	svc := &mockOrderSvc{err: &services.ServiceError{StatusCode: 400, Message: "Cart is empty"}}
	r := setupOrderRouter(svc, 7)

	w := postJSON(r, "/orders", gin.H{
		"delivery_address": "1 Main St, Kyiv",
		"phone":            "+380501234567",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "Cart is empty", resp["message"])
}

func TestPlaceOrderHandler_MissingFields(t *testing.T) {
	svc := &mockOrderSvc{orderID: 12}
	r := setupOrderRouter(svc, 7)

	w := postJSON(r, "/orders", gin.H{"notes": "no address, no phone"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string]map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Contains(t, resp["error"], "delivery_address")
	assert.Contains(t, resp["error"], "phone")
	// The service was never reached.
	assert.Zero(t, svc.lastUserID)
}

func TestListMineHandler_UsesAuthenticatedUser(t *testing.T) {
	svc := &mockOrderSvc{orders: []models.Order{{ID: 3, UserID: 7}}}
	r := setupOrderRouter(svc, 7)

	req := httptest.NewRequest(http.MethodGet, "/orders/my", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(7), svc.lastUserID)

	var orders []models.Order
	_ = json.Unmarshal(w.Body.Bytes(), &orders)
	assert.Len(t, orders, 1)
	assert.Equal(t, uint(3), orders[0].ID)
}

func TestGetOrderHandler_InvalidID(t *testing.T) {
	r := setupOrderRouter(&mockOrderSvc{}, 7)

	req := httptest.NewRequest(http.MethodGet, "/orders/abc", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetOrderHandler_NotFound(t *testing.T) {
	svc := &mockOrderSvc{err: &services.ServiceError{StatusCode: 404, Message: "Order not found"}}
	r := setupOrderRouter(svc, 7)

	req := httptest.NewRequest(http.MethodGet, "/orders/42", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateStatusHandler_Success(t *testing.T) {
	svc := &mockOrderSvc{order: &models.Order{ID: 3, Status: models.OrderStatusCompleted}}
	r := setupOrderRouter(svc, 7)

	req := httptest.NewRequest(http.MethodPut, "/orders/3/status", jsonBody(gin.H{"status": "completed"}))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "completed", svc.lastStatus)

	var resp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, true, resp["success"])
}

func TestUpdateStatusHandler_RejectsUnknownStatus(t *testing.T) {
	svc := &mockOrderSvc{}
	r := setupOrderRouter(svc, 7)

	req := httptest.NewRequest(http.MethodPut, "/orders/3/status", jsonBody(gin.H{"status": "shipped"}))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	// Rejected by binding before the service sees it.
	assert.Empty(t, svc.lastStatus)
}
