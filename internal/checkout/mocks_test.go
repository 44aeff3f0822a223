package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"pos-service/internal/models"
)

type fakeCatalog struct {
	products map[int64]models.Product
}

func newFakeCatalog(products ...models.Product) *fakeCatalog {
	m := make(map[int64]models.Product, len(products))
	for _, p := range products {
		m[p.ID] = p
	}
	return &fakeCatalog{products: m}
}

func (f *fakeCatalog) GetProduct(_ context.Context, productID int64) (*models.Product, error) {
	p, ok := f.products[productID]
	if !ok {
		return nil, models.NewNotFoundError(fmt.Sprintf("product not found: %d", productID))
	}
	return &p, nil
}

type fakeCustomers struct {
	customers map[int64]models.Customer
}

func newFakeCustomers(customers ...models.Customer) *fakeCustomers {
	m := make(map[int64]models.Customer, len(customers))
	for _, c := range customers {
		m[c.ID] = c
	}
	return &fakeCustomers{customers: m}
}

func (f *fakeCustomers) GetCustomerByID(_ context.Context, id int64) (*models.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return nil, models.NewNotFoundError(fmt.Sprintf("customer not found: %d", id))
	}
	return &c, nil
}

type fakeOrderSink struct {
	orders  []models.Order
	nextID  int64
	failErr error
}

func (f *fakeOrderSink) CreateOrder(_ context.Context, order *models.Order) error {
	if f.failErr != nil {
		return f.failErr
	}
	f.nextID++
	order.ID = f.nextID
	order.CreatedAt = time.Now()
	f.orders = append(f.orders, *order)
	return nil
}

type fakePublisher struct {
	events []*models.SaleCompletedEvent
}

func (f *fakePublisher) PublishSaleCompleted(_ context.Context, event *models.SaleCompletedEvent) error {
	f.events = append(f.events, event)
	return nil
}

func testProduct(id int64, name, price string) models.Product {
	return models.Product{
		ID:    id,
		Name:  name,
		Price: decimal.RequireFromString(price),
		Image: "img.jpg",
	}
}
