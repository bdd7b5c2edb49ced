package services_test

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"time"

	"gorm.io/gorm"

	"shop-service/models"
	"shop-service/repository"
)

// ---- in-memory cart store ----

type mockCartStore struct {
	carts map[string]*models.Cart
}

func newMockCartStore() *mockCartStore {
	return &mockCartStore{carts: make(map[string]*models.Cart)}
}

func copyCart(cart *models.Cart) *models.Cart {
	c := *cart
	c.Items = append([]models.CartItem(nil), cart.Items...)
	return &c
}

func (m *mockCartStore) GetCart(_ context.Context, sessionID string) (*models.Cart, error) {
	cart, ok := m.carts[sessionID]
	if !ok {
		return nil, nil
	}
	return copyCart(cart), nil
}

func (m *mockCartStore) SaveCart(_ context.Context, cart *models.Cart) error {
	cart.UpdatedAt = time.Now()
	m.carts[cart.SessionID] = copyCart(cart)
	return nil
}

func (m *mockCartStore) DeleteCart(_ context.Context, sessionID string) error {
	delete(m.carts, sessionID)
	return nil
}

func (m *mockCartStore) quantity(sessionID string, productID uint) int {
	if cart, ok := m.carts[sessionID]; ok {
		return cart.Quantity(productID)
	}
	return 0
}

func (m *mockCartStore) count(sessionID string) int {
	if cart, ok := m.carts[sessionID]; ok {
		return len(cart.Items)
	}
	return 0
}

// ---- in-memory product repository ----

type mockProductRepo struct {
	products map[uint]*models.Product
}

func newMockProductRepo(products ...models.Product) *mockProductRepo {
	m := &mockProductRepo{products: make(map[uint]*models.Product)}
	for i := range products {
		p := products[i]
		m.products[p.ID] = &p
	}
	return m
}

func (m *mockProductRepo) sortedIDs() []uint {
	ids := make([]uint, 0, len(m.products))
	for id := range m.products {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (m *mockProductRepo) FindAll(_ context.Context, categoryID *uint) ([]models.Product, error) {
	var result []models.Product
	for _, id := range m.sortedIDs() {
		p := m.products[id]
		if categoryID != nil && (p.CategoryID == nil || *p.CategoryID != *categoryID) {
			continue
		}
		result = append(result, *p)
	}
	return result, nil
}

func (m *mockProductRepo) FindByID(_ context.Context, id uint) (*models.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *mockProductRepo) FindByIDs(_ context.Context, ids []uint) ([]models.Product, error) {
	want := make(map[uint]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var result []models.Product
	for _, id := range m.sortedIDs() {
		if want[id] {
			result = append(result, *m.products[id])
		}
	}
	return result, nil
}

func (m *mockProductRepo) Create(_ context.Context, product *models.Product) error {
	if product.ID == 0 {
		product.ID = uint(len(m.products) + 1)
	}
	cp := *product
	m.products[product.ID] = &cp
	return nil
}

func (m *mockProductRepo) Update(_ context.Context, product *models.Product) error {
	cp := *product
	m.products[product.ID] = &cp
	return nil
}

func (m *mockProductRepo) Delete(_ context.Context, product *models.Product) error {
	delete(m.products, product.ID)
	return nil
}

func (m *mockProductRepo) stock(id uint) int {
	if p, ok := m.products[id]; ok {
		return p.Stock
	}
	return -1
}

// ---- in-memory order repository ----

// mockOrderRepo reproduces the all-or-nothing checkout of the gorm
// repository against the shared product map: every line is validated
// before anything is applied.
type mockOrderRepo struct {
	productRepo *mockProductRepo
	orders      map[uint]*models.Order
	nextID      uint
}

func newMockOrderRepo(productRepo *mockProductRepo) *mockOrderRepo {
	return &mockOrderRepo{
		productRepo: productRepo,
		orders:      make(map[uint]*models.Order),
		nextID:      1,
	}
}

func (m *mockOrderRepo) PlaceOrder(_ context.Context, order *models.Order, quantities map[uint]int) error {
	type line struct {
		product *models.Product
		qty     int
	}
	var lines []line
	for _, id := range m.productRepo.sortedIDs() {
		qty, ok := quantities[id]
		if !ok {
			continue
		}
		product := m.productRepo.products[id]
		if qty > product.Stock {
			return &repository.InsufficientStockError{ProductName: product.Name}
		}
		lines = append(lines, line{product: product, qty: qty})
	}

	order.ID = m.nextID
	m.nextID++
	order.Status = models.OrderStatusPending
	order.CreatedAt = time.Now()

	var total float64
	for _, l := range lines {
		order.Items = append(order.Items, models.OrderItem{
			OrderID:   order.ID,
			ProductID: l.product.ID,
			Quantity:  l.qty,
			Price:     l.product.Price,
		})
		total += l.product.Price * float64(l.qty)
		l.product.Stock -= l.qty
	}
	order.TotalAmount = total

	cp := *order
	m.orders[order.ID] = &cp
	return nil
}

func (m *mockOrderRepo) FindAll(_ context.Context) ([]models.Order, error) {
	var result []models.Order
	for _, o := range m.orders {
		result = append(result, *o)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (m *mockOrderRepo) FindByUserID(_ context.Context, userID uint) ([]models.Order, error) {
	var result []models.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			result = append(result, *o)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (m *mockOrderRepo) FindByID(_ context.Context, id uint) (*models.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *mockOrderRepo) UpdateStatus(_ context.Context, id uint, status models.OrderStatus) (*models.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	o.Status = status
	cp := *o
	return &cp, nil
}

// ---- in-memory category repository ----

type mockCategoryRepo struct {
	categories  map[uint]*models.Category
	productRepo *mockProductRepo
	nextID      uint
}

func newMockCategoryRepo(productRepo *mockProductRepo, categories ...models.Category) *mockCategoryRepo {
	m := &mockCategoryRepo{
		categories:  make(map[uint]*models.Category),
		productRepo: productRepo,
		nextID:      1,
	}
	for i := range categories {
		c := categories[i]
		m.categories[c.ID] = &c
		if c.ID >= m.nextID {
			m.nextID = c.ID + 1
		}
	}
	return m
}

func (m *mockCategoryRepo) FindAll(_ context.Context) ([]models.CategoryWithCount, error) {
	var result []models.CategoryWithCount
	for _, c := range m.categories {
		var count int64
		for _, p := range m.productRepo.products {
			if p.CategoryID != nil && *p.CategoryID == c.ID {
				count++
			}
		}
		result = append(result, models.CategoryWithCount{Category: *c, ProductsCount: count})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockCategoryRepo) FindByID(_ context.Context, id uint) (*models.Category, error) {
	c, ok := m.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *mockCategoryRepo) Exists(_ context.Context, id uint) (bool, error) {
	_, ok := m.categories[id]
	return ok, nil
}

func (m *mockCategoryRepo) Create(_ context.Context, category *models.Category) error {
	if category.ID == 0 {
		category.ID = m.nextID
		m.nextID++
	}
	cp := *category
	m.categories[category.ID] = &cp
	return nil
}

func (m *mockCategoryRepo) Update(_ context.Context, category *models.Category) error {
	cp := *category
	m.categories[category.ID] = &cp
	return nil
}

func (m *mockCategoryRepo) Delete(_ context.Context, id uint) error {
	for _, p := range m.productRepo.products {
		if p.CategoryID != nil && *p.CategoryID == id {
			p.CategoryID = nil
		}
	}
	delete(m.categories, id)
	return nil
}

// ---- in-memory image store ----

type mockImageStore struct {
	files  map[string]string
	nextID int
}

func newMockImageStore() *mockImageStore {
	return &mockImageStore{files: make(map[string]string)}
}

func (m *mockImageStore) Save(_ context.Context, r io.Reader, originalName string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.nextID++
	key := fmt.Sprintf("products/%d%s", m.nextID, filepath.Ext(originalName))
	m.files[key] = string(data)
	return key, nil
}

func (m *mockImageStore) Delete(_ context.Context, key string) error {
	delete(m.files, key)
	return nil
}

func (m *mockImageStore) URL(key string) string {
	return "http://cdn.test/" + key
}

// ---- in-memory user repository ----

type mockUserRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uint]*models.User), nextID: 1}
}

func (m *mockUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) FindByID(_ context.Context, id uint) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *mockUserRepo) Create(_ context.Context, user *models.User) error {
	if user.ID == 0 {
		user.ID = m.nextID
		m.nextID++
	}
	cp := *user
	m.users[user.ID] = &cp
	return nil
}
