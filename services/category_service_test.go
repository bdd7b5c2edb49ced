package services_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"shop-service/models"
	"shop-service/services"
)

func TestCategoryDelete_DetachesProducts(t *testing.T) {
	products := newMockProductRepo(
		models.Product{ID: 1, Name: "Phone", Price: 100, Stock: 5, CategoryID: uintPtr(1)},
		models.Product{ID: 2, Name: "Book", Price: 10, Stock: 5, CategoryID: uintPtr(2)},
	)
	categories := newMockCategoryRepo(products,
		models.Category{ID: 1, Name: "Electronics"},
		models.Category{ID: 2, Name: "Books"},
	)
	svc := services.NewCategoryService(categories, zap.NewNop())

	serr := svc.Delete(context.Background(), 1)
	assert.Nil(t, serr)

	// The product survives with its category reference nulled.
	p, err := products.FindByID(context.Background(), 1)
	assert.NoError(t, err)
	assert.Nil(t, p.CategoryID)

	// Unrelated products keep their category.
	p2, err := products.FindByID(context.Background(), 2)
	assert.NoError(t, err)
	assert.NotNil(t, p2.CategoryID)
}

func TestCategoryDelete_NotFound(t *testing.T) {
	products := newMockProductRepo()
	svc := services.NewCategoryService(newMockCategoryRepo(products), zap.NewNop())

	serr := svc.Delete(context.Background(), 42)

	assert.NotNil(t, serr)
	assert.Equal(t, http.StatusNotFound, serr.StatusCode)
}

func TestCategoryList_CountsProducts(t *testing.T) {
	products := newMockProductRepo(
		models.Product{ID: 1, Name: "Phone", Price: 100, Stock: 5, CategoryID: uintPtr(1)},
		models.Product{ID: 2, Name: "Laptop", Price: 900, Stock: 2, CategoryID: uintPtr(1)},
	)
	categories := newMockCategoryRepo(products,
		models.Category{ID: 1, Name: "Electronics"},
		models.Category{ID: 2, Name: "Books"},
	)
	svc := services.NewCategoryService(categories, zap.NewNop())

	list, serr := svc.List(context.Background())

	assert.Nil(t, serr)
	assert.Len(t, list, 2)
	// Name-sorted: Books first.
	assert.Equal(t, "Books", list[0].Name)
	assert.Equal(t, int64(0), list[0].ProductsCount)
	assert.Equal(t, "Electronics", list[1].Name)
	assert.Equal(t, int64(2), list[1].ProductsCount)
}

func uintPtr(v uint) *uint { return &v }
