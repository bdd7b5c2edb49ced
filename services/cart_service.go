package services

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"shop-service/database"
	"shop-service/models"
	"shop-service/repository"
)

const msgInsufficientStock = "Insufficient stock"

// CartService mutates the per-session cart state against current
// catalog stock levels.
type CartService interface {
	// Get resolves the cart against the current catalog: entries whose
	// product no longer exists are silently dropped from the view.
	Get(ctx context.Context, sessionID string) (*models.CartView, *ServiceError)
	// Add increases the stored quantity by quantity (>= 1). Fails
	// without mutation when the new quantity exceeds current stock.
	Add(ctx context.Context, sessionID string, productID uint, quantity int) (int, *ServiceError)
	// Update sets the stored quantity exactly; zero removes the entry.
	Update(ctx context.Context, sessionID string, productID uint, quantity int) (int, *ServiceError)
	// Remove deletes the entry if present; idempotent.
	Remove(ctx context.Context, sessionID string, productID uint) (int, *ServiceError)
	// Clear deletes the whole cart; idempotent.
	Clear(ctx context.Context, sessionID string) *ServiceError
}

type cartService struct {
	store    database.CartStore
	products repository.ProductRepository
	logger   *zap.Logger
}

func NewCartService(store database.CartStore, products repository.ProductRepository, logger *zap.Logger) CartService {
	return &cartService{
		store:    store,
		products: products,
		logger:   logger,
	}
}

func (s *cartService) load(ctx context.Context, sessionID string) (*models.Cart, *ServiceError) {
	cart, err := s.store.GetCart(ctx, sessionID)
	if err != nil {
		s.logger.Error("Failed to load cart", zap.String("session_id", sessionID), zap.Error(err))
		return nil, internal("Failed to load cart")
	}
	if cart == nil {
		cart = &models.Cart{SessionID: sessionID}
	}
	return cart, nil
}

func (s *cartService) save(ctx context.Context, cart *models.Cart) *ServiceError {
	if err := s.store.SaveCart(ctx, cart); err != nil {
		s.logger.Error("Failed to save cart", zap.String("session_id", cart.SessionID), zap.Error(err))
		return internal("Failed to save cart")
	}
	return nil
}

func (s *cartService) Get(ctx context.Context, sessionID string) (*models.CartView, *ServiceError) {
	cart, serr := s.load(ctx, sessionID)
	if serr != nil {
		return nil, serr
	}

	view := &models.CartView{Items: []models.CartLine{}, Count: len(cart.Items)}
	if cart.IsEmpty() {
		return view, nil
	}

	products, err := s.products.FindByIDs(ctx, cart.ProductIDs())
	if err != nil {
		s.logger.Error("Failed to load cart products", zap.Error(err))
		return nil, internal("Failed to load cart")
	}

	for _, product := range products {
		quantity := cart.Quantity(product.ID)
		subtotal := product.Price * float64(quantity)
		view.Total += subtotal
		view.Items = append(view.Items, models.CartLine{
			Product:  product,
			Quantity: quantity,
			Subtotal: subtotal,
		})
	}
	return view, nil
}

func (s *cartService) Add(ctx context.Context, sessionID string, productID uint, quantity int) (int, *ServiceError) {
	if quantity < 1 {
		return 0, badRequest("Quantity must be at least 1")
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, notFound("Product not found")
		}
		s.logger.Error("Failed to load product", zap.Uint("product_id", productID), zap.Error(err))
		return 0, internal("Failed to load product")
	}

	cart, serr := s.load(ctx, sessionID)
	if serr != nil {
		return 0, serr
	}

	newQuantity := cart.Quantity(productID) + quantity
	if newQuantity > product.Stock {
		return 0, badRequest(msgInsufficientStock)
	}

	cart.Set(productID, newQuantity)
	if serr := s.save(ctx, cart); serr != nil {
		return 0, serr
	}
	return len(cart.Items), nil
}

func (s *cartService) Update(ctx context.Context, sessionID string, productID uint, quantity int) (int, *ServiceError) {
	if quantity < 0 {
		return 0, badRequest("Quantity must not be negative")
	}

	cart, serr := s.load(ctx, sessionID)
	if serr != nil {
		return 0, serr
	}

	if quantity == 0 {
		cart.Remove(productID)
	} else {
		product, err := s.products.FindByID(ctx, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, notFound("Product not found")
			}
			s.logger.Error("Failed to load product", zap.Uint("product_id", productID), zap.Error(err))
			return 0, internal("Failed to load product")
		}
		if quantity > product.Stock {
			return 0, badRequest(msgInsufficientStock)
		}
		cart.Set(productID, quantity)
	}

	if serr := s.save(ctx, cart); serr != nil {
		return 0, serr
	}
	return len(cart.Items), nil
}

func (s *cartService) Remove(ctx context.Context, sessionID string, productID uint) (int, *ServiceError) {
	cart, serr := s.load(ctx, sessionID)
	if serr != nil {
		return 0, serr
	}

	cart.Remove(productID)
	if serr := s.save(ctx, cart); serr != nil {
		return 0, serr
	}
	return len(cart.Items), nil
}

func (s *cartService) Clear(ctx context.Context, sessionID string) *ServiceError {
	if err := s.store.DeleteCart(ctx, sessionID); err != nil {
		s.logger.Error("Failed to clear cart", zap.String("session_id", sessionID), zap.Error(err))
		return internal("Failed to clear cart")
	}
	return nil
}
