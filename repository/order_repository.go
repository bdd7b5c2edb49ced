package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shop-service/models"
)

// InsufficientStockError is returned from PlaceOrder when a cart line
// asks for more units than the product currently has. It aborts the
// whole transaction.
type InsufficientStockError struct {
	ProductName string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: %s", e.ProductName)
}

// OrderRepository defines the interface for order data access
type OrderRepository interface {
	// PlaceOrder atomically creates order + line items from the given
	// product quantities, snapshotting current prices and decrementing
	// stock. On any failure nothing is persisted.
	PlaceOrder(ctx context.Context, order *models.Order, quantities map[uint]int) error
	FindAll(ctx context.Context) ([]models.Order, error)
	FindByUserID(ctx context.Context, userID uint) ([]models.Order, error)
	FindByID(ctx context.Context, id uint) (*models.Order, error)
	UpdateStatus(ctx context.Context, id uint, status models.OrderStatus) (*models.Order, error)
}

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) OrderRepository {
	return &GormOrderRepository{db: db}
}

// PlaceOrder runs the checkout transaction. Referenced products are
// loaded with FOR UPDATE row locks before the stock re-check, so two
// concurrent checkouts on the same product serialize and cannot
// jointly oversell. Quantities for products that no longer exist are
// skipped.
func (r *GormOrderRepository) PlaceOrder(ctx context.Context, order *models.Order, quantities map[uint]int) error {
	ids := make([]uint, 0, len(quantities))
	for id := range quantities {
		ids = append(ids, id)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var products []models.Product
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id IN ?", ids).
			Find(&products).Error; err != nil {
			return err
		}

		order.Status = models.OrderStatusPending
		order.TotalAmount = 0
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		var total float64
		for _, product := range products {
			quantity := quantities[product.ID]

			if quantity > product.Stock {
				return &InsufficientStockError{ProductName: product.Name}
			}

			item := models.OrderItem{
				OrderID:   order.ID,
				ProductID: product.ID,
				Quantity:  quantity,
				Price:     product.Price,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			order.Items = append(order.Items, item)

			total += product.Price * float64(quantity)

			if err := tx.Model(&models.Product{}).
				Where("id = ?", product.ID).
				UpdateColumn("stock", gorm.Expr("stock - ?", quantity)).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(order).Update("total_amount", total).Error; err != nil {
			return err
		}
		order.TotalAmount = total
		return nil
	})
}

// FindAll retrieves all orders newest first with user and product data.
func (r *GormOrderRepository) FindAll(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Items.Product").
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByUserID retrieves one user's orders newest first.
func (r *GormOrderRepository) FindByUserID(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.WithContext(ctx).
		Preload("Items.Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormOrderRepository) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Items.Product").
		First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateStatus unconditionally overwrites the order status.
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, id uint, status models.OrderStatus) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).First(&order, id).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Model(&order).
		Update("status", status).Error; err != nil {
		return nil, err
	}
	return &order, nil
}
