package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shop-service/services"
)

type ProductController struct {
	svc services.ProductService
}

func NewProductController(svc services.ProductService) *ProductController {
	return &ProductController{svc: svc}
}

// productForm is the multipart payload of product create/update.
// Numeric fields are pointers so zero values survive the required tag.
type productForm struct {
	Name        string   `form:"name" binding:"required,max=255"`
	Description *string  `form:"description"`
	Price       *float64 `form:"price" binding:"required,gte=0"`
	Stock       *int     `form:"stock" binding:"required,gte=0"`
	CategoryID  *uint    `form:"category_id"`
}

func (f *productForm) input() services.ProductInput {
	return services.ProductInput{
		Name:        f.Name,
		Description: f.Description,
		Price:       *f.Price,
		CategoryID:  f.CategoryID,
		Stock:       *f.Stock,
	}
}

// imageUpload extracts and validates the optional image file.
func (pc *ProductController) imageUpload(c *gin.Context) (*services.ImageUpload, bool) {
	header, err := c.FormFile("image")
	if err != nil {
		// No file attached.
		return nil, true
	}
	if header.Size > MaxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"image": "Image must be at most 2MB"}})
		return nil, false
	}
	if !isValidImageType(header) {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"image": "Image must be jpeg, png, webp or gif"}})
		return nil, false
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"image": "Failed to read image"}})
		return nil, false
	}
	return &services.ImageUpload{Reader: file, Filename: header.Filename}, true
}

// List returns products newest first, optionally filtered by category.
func (pc *ProductController) List(c *gin.Context) {
	var categoryID *uint
	if raw := c.Query("category_id"); raw != "" && raw != "all" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
			return
		}
		v := uint(id)
		categoryID = &v
	}

	products, serr := pc.svc.List(c.Request.Context(), categoryID)
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"error": serr.Message})
		return
	}
	c.JSON(http.StatusOK, products)
}

// Get returns a single product with its category.
func (pc *ProductController) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	product, serr := pc.svc.Get(c.Request.Context(), id)
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"error": serr.Message})
		return
	}
	c.JSON(http.StatusOK, product)
}

// Create adds a product. Admin only.
func (pc *ProductController) Create(c *gin.Context) {
	var form productForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrors(err))
		return
	}

	image, ok := pc.imageUpload(c)
	if !ok {
		return
	}

	product, serr := pc.svc.Create(c.Request.Context(), form.input(), image)
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"error": serr.Message})
		return
	}
	c.JSON(http.StatusCreated, product)
}

// Update rewrites a product; a new image replaces and deletes the old
// file. Admin only.
func (pc *ProductController) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var form productForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrors(err))
		return
	}

	image, ok := pc.imageUpload(c)
	if !ok {
		return
	}

	product, serr := pc.svc.Update(c.Request.Context(), id, form.input(), image)
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"error": serr.Message})
		return
	}
	c.JSON(http.StatusOK, product)
}

// Delete removes a product and its stored image. Admin only.
func (pc *ProductController) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	if serr := pc.svc.Delete(c.Request.Context(), id); serr != nil {
		c.JSON(serr.StatusCode, gin.H{"error": serr.Message})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}
