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

// PlaceOrderRequest is the checkout payload.
type PlaceOrderRequest struct {
	DeliveryAddress string  `json:"delivery_address" binding:"required"`
	Phone           string  `json:"phone" binding:"required"`
	Notes           *string `json:"notes"`
}

// OrderService converts cart state into persisted orders and serves
// order projections.
type OrderService interface {
	// PlaceOrder runs the checkout: validates the cart is non-empty,
	// creates order + snapshot line items and decrements stock
	// atomically, then clears the session cart. Returns the order id.
	PlaceOrder(ctx context.Context, userID uint, sessionID string, req *PlaceOrderRequest) (uint, *ServiceError)
	ListAll(ctx context.Context) ([]models.Order, *ServiceError)
	ListMine(ctx context.Context, userID uint) ([]models.Order, *ServiceError)
	GetByID(ctx context.Context, id uint) (*models.Order, *ServiceError)
	UpdateStatus(ctx context.Context, id uint, status string) (*models.Order, *ServiceError)
}

type orderService struct {
	orders repository.OrderRepository
	carts  database.CartStore
	logger *zap.Logger
}

func NewOrderService(orders repository.OrderRepository, carts database.CartStore, logger *zap.Logger) OrderService {
	return &orderService{
		orders: orders,
		carts:  carts,
		logger: logger,
	}
}

func (s *orderService) PlaceOrder(ctx context.Context, userID uint, sessionID string, req *PlaceOrderRequest) (uint, *ServiceError) {
	cart, err := s.carts.GetCart(ctx, sessionID)
	if err != nil {
		s.logger.Error("Failed to load cart for checkout", zap.String("session_id", sessionID), zap.Error(err))
		return 0, internal("Failed to load cart")
	}
	if cart == nil || cart.IsEmpty() {
		return 0, badRequest("Cart is empty")
	}

	quantities := make(map[uint]int, len(cart.Items))
	for _, item := range cart.Items {
		quantities[item.ProductID] = item.Quantity
	}

	order := &models.Order{
		UserID:          userID,
		DeliveryAddress: req.DeliveryAddress,
		Phone:           req.Phone,
		Notes:           req.Notes,
	}

	if err := s.orders.PlaceOrder(ctx, order, quantities); err != nil {
		var stockErr *repository.InsufficientStockError
		if errors.As(err, &stockErr) {
			return 0, badRequest(stockErr.Error())
		}
		s.logger.Error("Checkout transaction failed",
			zap.Uint("user_id", userID),
			zap.Error(err),
		)
		return 0, internal("Failed to place order")
	}

	// The order is committed; a failed cart clear must not fail the
	// checkout. The stale cart expires with the session.
	if err := s.carts.DeleteCart(ctx, sessionID); err != nil {
		s.logger.Warn("Failed to clear cart after checkout",
			zap.String("session_id", sessionID),
			zap.Uint("order_id", order.ID),
			zap.Error(err),
		)
	}

	s.logger.Info("Order placed",
		zap.Uint("order_id", order.ID),
		zap.Uint("user_id", userID),
		zap.Float64("total", order.TotalAmount),
	)
	return order.ID, nil
}

func (s *orderService) ListAll(ctx context.Context) ([]models.Order, *ServiceError) {
	orders, err := s.orders.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to fetch orders", zap.Error(err))
		return nil, internal("Failed to fetch orders")
	}
	return orders, nil
}

func (s *orderService) ListMine(ctx context.Context, userID uint) ([]models.Order, *ServiceError) {
	orders, err := s.orders.FindByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to fetch orders", zap.Uint("user_id", userID), zap.Error(err))
		return nil, internal("Failed to fetch orders")
	}
	return orders, nil
}

func (s *orderService) GetByID(ctx context.Context, id uint) (*models.Order, *ServiceError) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Order not found")
		}
		s.logger.Error("Failed to fetch order", zap.Uint("order_id", id), zap.Error(err))
		return nil, internal("Failed to fetch order")
	}
	return order, nil
}

func (s *orderService) UpdateStatus(ctx context.Context, id uint, status string) (*models.Order, *ServiceError) {
	if !models.ValidStatus(status) {
		return nil, badRequest("Invalid status")
	}

	order, err := s.orders.UpdateStatus(ctx, id, models.OrderStatus(status))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Order not found")
		}
		s.logger.Error("Failed to update order status", zap.Uint("order_id", id), zap.Error(err))
		return nil, internal("Failed to update order status")
	}
	return order, nil
}
