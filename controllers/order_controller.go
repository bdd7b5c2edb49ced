package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shop-service/middleware"
	"shop-service/services"
)

type OrderController struct {
	svc services.OrderService
}

func NewOrderController(svc services.OrderService) *OrderController {
	return &OrderController{svc: svc}
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending processing completed cancelled"`
}

// PlaceOrder converts the session cart into a persisted order.
func (oc *OrderController) PlaceOrder(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	sessionID, err := middleware.GetSessionID(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session unavailable"})
		return
	}

	var req services.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrors(err))
		return
	}

	orderID, serr := oc.svc.PlaceOrder(c.Request.Context(), userID, sessionID, &req)
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"success": false, "message": serr.Message})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"order_id": orderID,
		"message":  "Order placed successfully",
	})
}

// ListMine returns the requesting user's orders, newest first.
func (oc *OrderController) ListMine(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	orders, serr := oc.svc.ListMine(c.Request.Context(), userID)
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"error": serr.Message})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// ListAll returns every order, newest first. Admin only.
func (oc *OrderController) ListAll(c *gin.Context) {
	orders, serr := oc.svc.ListAll(c.Request.Context())
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"error": serr.Message})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetByID returns one order with user and line-item data. Admin only.
func (oc *OrderController) GetByID(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	order, serr := oc.svc.GetByID(c.Request.Context(), id)
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"error": serr.Message})
		return
	}
	c.JSON(http.StatusOK, order)
}

// UpdateStatus overwrites the order status. Admin only.
func (oc *OrderController) UpdateStatus(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrors(err))
		return
	}

	order, serr := oc.svc.UpdateStatus(c.Request.Context(), id, req.Status)
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"success": false, "message": serr.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"order":   order,
	})
}
