package services

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"shop-service/models"
	"shop-service/repository"
)

// CategoryInput carries the validated fields of a category write.
type CategoryInput struct {
	Name        string
	Description *string
}

type CategoryService interface {
	List(ctx context.Context) ([]models.CategoryWithCount, *ServiceError)
	Get(ctx context.Context, id uint) (*models.Category, *ServiceError)
	Create(ctx context.Context, input CategoryInput) (*models.Category, *ServiceError)
	Update(ctx context.Context, id uint, input CategoryInput) (*models.Category, *ServiceError)
	// Delete removes the category; referencing products survive with
	// their category reference nulled.
	Delete(ctx context.Context, id uint) *ServiceError
}

type categoryService struct {
	categories repository.CategoryRepository
	logger     *zap.Logger
}

func NewCategoryService(categories repository.CategoryRepository, logger *zap.Logger) CategoryService {
	return &categoryService{
		categories: categories,
		logger:     logger,
	}
}

func (s *categoryService) List(ctx context.Context) ([]models.CategoryWithCount, *ServiceError) {
	categories, err := s.categories.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to fetch categories", zap.Error(err))
		return nil, internal("Failed to fetch categories")
	}
	return categories, nil
}

func (s *categoryService) Get(ctx context.Context, id uint) (*models.Category, *ServiceError) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Category not found")
		}
		s.logger.Error("Failed to fetch category", zap.Uint("category_id", id), zap.Error(err))
		return nil, internal("Failed to fetch category")
	}
	return category, nil
}

func (s *categoryService) Create(ctx context.Context, input CategoryInput) (*models.Category, *ServiceError) {
	category := &models.Category{
		Name:        input.Name,
		Description: input.Description,
	}
	if err := s.categories.Create(ctx, category); err != nil {
		s.logger.Error("Failed to create category", zap.Error(err))
		return nil, internal("Failed to create category")
	}
	return category, nil
}

func (s *categoryService) Update(ctx context.Context, id uint, input CategoryInput) (*models.Category, *ServiceError) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Category not found")
		}
		s.logger.Error("Failed to fetch category", zap.Uint("category_id", id), zap.Error(err))
		return nil, internal("Failed to fetch category")
	}

	category.Name = input.Name
	category.Description = input.Description
	category.Products = nil

	if err := s.categories.Update(ctx, category); err != nil {
		s.logger.Error("Failed to update category", zap.Uint("category_id", id), zap.Error(err))
		return nil, internal("Failed to update category")
	}
	return category, nil
}

func (s *categoryService) Delete(ctx context.Context, id uint) *ServiceError {
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("Category not found")
		}
		s.logger.Error("Failed to fetch category", zap.Uint("category_id", id), zap.Error(err))
		return internal("Failed to fetch category")
	}

	if err := s.categories.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete category", zap.Uint("category_id", id), zap.Error(err))
		return internal("Failed to delete category")
	}
	return nil
}
