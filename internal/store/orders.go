package store

import (
	"context"
	"database/sql"
	"fmt"

	"pos-service/internal/models"
)

// CreateOrder persists an order with its item snapshot and optional
// installment schedule in one transaction. The server-assigned id and
// created_at are written back into the order; orders are never updated
// after this point.
func (s *Store) CreateOrder(ctx context.Context, order *models.Order) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO orders (tenant_id, customer_id, customer_name, customer_phone,
			total, payment_method, status, origin, shipping, shipping_cost)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at`

	if err := tx.GetContext(ctx, order, query,
		order.TenantID, order.CustomerID, order.CustomerName, order.CustomerPhone,
		order.Total, order.PaymentMethod, order.Status, order.Origin,
		order.Shipping, order.ShippingCost); err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID
		if err := tx.GetContext(ctx, &item.ID,
			`INSERT INTO order_items (order_id, product_id, name, unit_price, quantity, size)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 RETURNING id`,
			item.OrderID, item.ProductID, item.Name, item.UnitPrice, item.Quantity, item.Size); err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	for i := range order.Installments {
		inst := &order.Installments[i]
		inst.OrderID = order.ID
		if err := tx.GetContext(ctx, &inst.ID,
			`INSERT INTO installments (order_id, seq, count, amount, due_date, status)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 RETURNING id`,
			inst.OrderID, inst.Seq, inst.Count, inst.Amount, inst.DueDate, inst.Status); err != nil {
			return fmt.Errorf("failed to insert installment: %w", err)
		}
	}

	return tx.Commit()
}

// GetOrderByID retrieves an order with its items and installments
func (s *Store) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	err := s.db.GetContext(ctx, &order, "SELECT * FROM orders WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, models.NewNotFoundError(fmt.Sprintf("order not found: %d", id))
	}
	if err != nil {
		return nil, err
	}

	if err := s.db.SelectContext(ctx, &order.Items,
		"SELECT * FROM order_items WHERE order_id = $1 ORDER BY id", id); err != nil {
		return nil, err
	}

	if err := s.db.SelectContext(ctx, &order.Installments,
		"SELECT * FROM installments WHERE order_id = $1 ORDER BY seq", id); err != nil {
		return nil, err
	}

	return &order, nil
}

// GetOrdersByCustomerID retrieves a customer's order history
func (s *Store) GetOrdersByCustomerID(ctx context.Context, customerID int64) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.SelectContext(ctx, &orders,
		"SELECT * FROM orders WHERE customer_id = $1 ORDER BY created_at DESC", customerID)
	return orders, err
}

// UpdateInstallmentStatus records a collection against one installment.
// This is the only post-sale write; the order row itself stays immutable.
func (s *Store) UpdateInstallmentStatus(ctx context.Context, installmentID int64, status string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE installments SET status = $1 WHERE id = $2", status, installmentID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.NewNotFoundError(fmt.Sprintf("installment not found: %d", installmentID))
	}
	return nil
}
