package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shop-service/services"
)

type CategoryController struct {
	svc services.CategoryService
}

func NewCategoryController(svc services.CategoryService) *CategoryController {
	return &CategoryController{svc: svc}
}

type categoryRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Description *string `json:"description"`
}

// List returns categories name-sorted with product counts.
func (cc *CategoryController) List(c *gin.Context) {
	categories, serr := cc.svc.List(c.Request.Context())
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"error": serr.Message})
		return
	}
	c.JSON(http.StatusOK, categories)
}

// Get returns one category with its products.
func (cc *CategoryController) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return
	}

	category, serr := cc.svc.Get(c.Request.Context(), id)
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"error": serr.Message})
		return
	}
	c.JSON(http.StatusOK, category)
}

// Create adds a category. Admin only.
func (cc *CategoryController) Create(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrors(err))
		return
	}

	category, serr := cc.svc.Create(c.Request.Context(), services.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"error": serr.Message})
		return
	}
	c.JSON(http.StatusCreated, category)
}

// Update rewrites a category. Admin only.
func (cc *CategoryController) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return
	}

	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrors(err))
		return
	}

	category, serr := cc.svc.Update(c.Request.Context(), id, services.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"error": serr.Message})
		return
	}
	c.JSON(http.StatusOK, category)
}

// Delete removes a category; its products keep existing without a
// category. Admin only.
func (cc *CategoryController) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return
	}

	if serr := cc.svc.Delete(c.Request.Context(), id); serr != nil {
		c.JSON(serr.StatusCode, gin.H{"error": serr.Message})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}
