package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a catalog entry
type Product struct {
	ID        int64           `db:"id" json:"id"`
	TenantID  string          `db:"tenant_id" json:"tenant_id"`
	SKU       string          `db:"sku" json:"sku"`
	Name      string          `db:"name" json:"name"`
	Price     decimal.Decimal `db:"price" json:"price"`
	Image     string          `db:"image" json:"image"`
	Category  string          `db:"category" json:"category"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

// LineItem is one product entry in a sale cart. UnitPrice may diverge from
// the catalog price after an inline edit.
type LineItem struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Image     string          `json:"image"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Size      string          `json:"size,omitempty"`
}

// Subtotal returns unit price times quantity.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Customer represents a registered store customer
type Customer struct {
	ID                int64           `db:"id" json:"id"`
	TenantID          string          `db:"tenant_id" json:"tenant_id"`
	Name              string          `db:"name" json:"name"`
	Email             string          `db:"email" json:"email"`
	Phone             string          `db:"phone" json:"phone,omitempty"`
	DebtBalance       decimal.Decimal `db:"debt_balance" json:"debt_balance"`
	StoreCredit       decimal.Decimal `db:"store_credit" json:"store_credit"`
	IncompleteProfile bool            `db:"incomplete_profile" json:"incomplete_profile"`
	CreatedAt         time.Time       `db:"created_at" json:"created_at"`
}

// Installment is one due-dated slice of a fiado sale
type Installment struct {
	ID      int64           `db:"id" json:"id,omitempty"`
	OrderID int64           `db:"order_id" json:"order_id,omitempty"`
	Seq     int             `db:"seq" json:"seq"`
	Count   int             `db:"count" json:"count"`
	Amount  decimal.Decimal `db:"amount" json:"amount"`
	DueDate time.Time       `db:"due_date" json:"due_date"`
	Status  string          `db:"status" json:"status"`
}

// Order is the immutable result of a finalized sale
type Order struct {
	ID            int64           `db:"id" json:"id"`
	TenantID      string          `db:"tenant_id" json:"tenant_id"`
	CustomerID    *int64          `db:"customer_id" json:"customer_id,omitempty"`
	CustomerName  string          `db:"customer_name" json:"customer_name"`
	CustomerPhone string          `db:"customer_phone" json:"customer_phone,omitempty"`
	Total         decimal.Decimal `db:"total" json:"total"`
	PaymentMethod PaymentMethod   `db:"payment_method" json:"payment_method"`
	Status        string          `db:"status" json:"status"`
	Origin        string          `db:"origin" json:"origin"`
	Shipping      string          `db:"shipping" json:"shipping"`
	ShippingCost  decimal.Decimal `db:"shipping_cost" json:"shipping_cost"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`

	Items        []OrderItem   `db:"-" json:"items"`
	Installments []Installment `db:"-" json:"installments,omitempty"`
}

// OrderItem is the persisted snapshot of a cart line item
type OrderItem struct {
	ID        int64           `db:"id" json:"id"`
	OrderID   int64           `db:"order_id" json:"order_id"`
	ProductID int64           `db:"product_id" json:"product_id"`
	Name      string          `db:"name" json:"name"`
	UnitPrice decimal.Decimal `db:"unit_price" json:"unit_price"`
	Quantity  int             `db:"quantity" json:"quantity"`
	Size      string          `db:"size" json:"size,omitempty"`
}

// WalkInCustomerName labels a sale with no customer record attached.
const WalkInCustomerName = "Cliente Balcão"

// Order statuses
const (
	OrderStatusCompleted = "COMPLETED"
)

// Sale origin tags
const (
	OriginPOS = "pos"
)

// Shipping methods
const (
	ShippingPickup = "pickup"
)

// Installment statuses
const (
	InstallmentStatusPending = "PENDING"
	InstallmentStatusPaid    = "PAID"
	InstallmentStatusPartial = "PARTIAL"
)
