package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shop-service/middleware"
	"shop-service/services"
)

type CartController struct {
	svc services.CartService
}

func NewCartController(svc services.CartService) *CartController {
	return &CartController{svc: svc}
}

type addToCartRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type updateCartRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  *int `json:"quantity" binding:"required,gte=0"`
}

type removeFromCartRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// GetCart returns the resolved cart for the visitor session.
func (cc *CartController) GetCart(c *gin.Context) {
	sessionID, err := middleware.GetSessionID(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session unavailable"})
		return
	}

	view, serr := cc.svc.Get(c.Request.Context(), sessionID)
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"error": serr.Message})
		return
	}
	c.JSON(http.StatusOK, view)
}

// AddItem adds quantity of a product to the cart.
func (cc *CartController) AddItem(c *gin.Context) {
	sessionID, err := middleware.GetSessionID(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session unavailable"})
		return
	}

	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrors(err))
		return
	}

	count, serr := cc.svc.Add(c.Request.Context(), sessionID, req.ProductID, req.Quantity)
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"success": false, "message": serr.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"cartCount": count,
		"message":   "Product added to cart",
	})
}

// UpdateItem sets a cart line to an exact quantity; zero removes it.
func (cc *CartController) UpdateItem(c *gin.Context) {
	sessionID, err := middleware.GetSessionID(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session unavailable"})
		return
	}

	var req updateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrors(err))
		return
	}

	count, serr := cc.svc.Update(c.Request.Context(), sessionID, req.ProductID, *req.Quantity)
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"success": false, "message": serr.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"cartCount": count,
	})
}

// RemoveItem deletes a cart line; removing an absent line succeeds.
func (cc *CartController) RemoveItem(c *gin.Context) {
	sessionID, err := middleware.GetSessionID(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session unavailable"})
		return
	}

	var req removeFromCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrors(err))
		return
	}

	count, serr := cc.svc.Remove(c.Request.Context(), sessionID, req.ProductID)
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"success": false, "message": serr.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"cartCount": count,
	})
}

// ClearCart empties the visitor's cart.
func (cc *CartController) ClearCart(c *gin.Context) {
	sessionID, err := middleware.GetSessionID(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session unavailable"})
		return
	}

	if serr := cc.svc.Clear(c.Request.Context(), sessionID); serr != nil {
		c.JSON(serr.StatusCode, gin.H{"success": false, "message": serr.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Cart cleared",
	})
}
