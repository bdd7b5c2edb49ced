package services

import (
	"context"
	"errors"
	"io"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"shop-service/models"
	"shop-service/repository"
	"shop-service/storage"
)

// ProductInput carries the validated fields of a product write.
type ProductInput struct {
	Name        string
	Description *string
	Price       float64
	CategoryID  *uint
	Stock       int
}

// ImageUpload is an incoming product image.
type ImageUpload struct {
	Reader   io.Reader
	Filename string
}

type ProductService interface {
	List(ctx context.Context, categoryID *uint) ([]models.Product, *ServiceError)
	Get(ctx context.Context, id uint) (*models.Product, *ServiceError)
	Create(ctx context.Context, input ProductInput, image *ImageUpload) (*models.Product, *ServiceError)
	Update(ctx context.Context, id uint, input ProductInput, image *ImageUpload) (*models.Product, *ServiceError)
	Delete(ctx context.Context, id uint) *ServiceError
}

type productService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	images     storage.ImageStore
	logger     *zap.Logger
}

func NewProductService(products repository.ProductRepository, categories repository.CategoryRepository, images storage.ImageStore, logger *zap.Logger) ProductService {
	return &productService{
		products:   products,
		categories: categories,
		images:     images,
		logger:     logger,
	}
}

func (s *productService) decorate(product *models.Product) {
	if product.Image != nil {
		product.ImageURL = s.images.URL(*product.Image)
	}
}

func (s *productService) checkCategory(ctx context.Context, categoryID *uint) *ServiceError {
	if categoryID == nil {
		return nil
	}
	ok, err := s.categories.Exists(ctx, *categoryID)
	if err != nil {
		s.logger.Error("Failed to check category", zap.Uint("category_id", *categoryID), zap.Error(err))
		return internal("Failed to validate category")
	}
	if !ok {
		return badRequest("Category does not exist")
	}
	return nil
}

func (s *productService) List(ctx context.Context, categoryID *uint) ([]models.Product, *ServiceError) {
	products, err := s.products.FindAll(ctx, categoryID)
	if err != nil {
		s.logger.Error("Failed to fetch products", zap.Error(err))
		return nil, internal("Failed to fetch products")
	}
	for i := range products {
		s.decorate(&products[i])
	}
	return products, nil
}

func (s *productService) Get(ctx context.Context, id uint) (*models.Product, *ServiceError) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Product not found")
		}
		s.logger.Error("Failed to fetch product", zap.Uint("product_id", id), zap.Error(err))
		return nil, internal("Failed to fetch product")
	}
	s.decorate(product)
	return product, nil
}

func (s *productService) Create(ctx context.Context, input ProductInput, image *ImageUpload) (*models.Product, *ServiceError) {
	if serr := s.checkCategory(ctx, input.CategoryID); serr != nil {
		return nil, serr
	}

	product := &models.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		CategoryID:  input.CategoryID,
		Stock:       input.Stock,
	}

	if image != nil {
		key, err := s.images.Save(ctx, image.Reader, image.Filename)
		if err != nil {
			s.logger.Error("Failed to store product image", zap.Error(err))
			return nil, internal("Failed to store image")
		}
		product.Image = &key
	}

	if err := s.products.Create(ctx, product); err != nil {
		s.logger.Error("Failed to create product", zap.Error(err))
		return nil, internal("Failed to create product")
	}
	s.decorate(product)
	return product, nil
}

func (s *productService) Update(ctx context.Context, id uint, input ProductInput, image *ImageUpload) (*models.Product, *ServiceError) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Product not found")
		}
		s.logger.Error("Failed to fetch product", zap.Uint("product_id", id), zap.Error(err))
		return nil, internal("Failed to fetch product")
	}

	if serr := s.checkCategory(ctx, input.CategoryID); serr != nil {
		return nil, serr
	}

	if image != nil {
		// Replacing the image deletes the prior file.
		if product.Image != nil {
			if err := s.images.Delete(ctx, *product.Image); err != nil {
				s.logger.Warn("Failed to delete prior product image",
					zap.String("key", *product.Image), zap.Error(err))
			}
		}
		key, err := s.images.Save(ctx, image.Reader, image.Filename)
		if err != nil {
			s.logger.Error("Failed to store product image", zap.Error(err))
			return nil, internal("Failed to store image")
		}
		product.Image = &key
	}

	product.Name = input.Name
	product.Description = input.Description
	product.Price = input.Price
	product.CategoryID = input.CategoryID
	product.Stock = input.Stock
	product.Category = nil

	if err := s.products.Update(ctx, product); err != nil {
		s.logger.Error("Failed to update product", zap.Uint("product_id", id), zap.Error(err))
		return nil, internal("Failed to update product")
	}
	s.decorate(product)
	return product, nil
}

func (s *productService) Delete(ctx context.Context, id uint) *ServiceError {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("Product not found")
		}
		s.logger.Error("Failed to fetch product", zap.Uint("product_id", id), zap.Error(err))
		return internal("Failed to fetch product")
	}

	if product.Image != nil {
		if err := s.images.Delete(ctx, *product.Image); err != nil {
			s.logger.Warn("Failed to delete product image",
				zap.String("key", *product.Image), zap.Error(err))
		}
	}

	if err := s.products.Delete(ctx, product); err != nil {
		s.logger.Error("Failed to delete product", zap.Uint("product_id", id), zap.Error(err))
		return internal("Failed to delete product")
	}
	return nil
}
