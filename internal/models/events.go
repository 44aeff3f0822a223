package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event types
const (
	EventTypeSaleCompleted      = "SALE_COMPLETED"
	EventTypeCustomerRegistered = "CUSTOMER_REGISTERED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// SaleCompletedEvent published when a POS sale is finalized
type SaleCompletedEvent struct {
	BaseEvent
	OrderID       int64           `json:"order_id"`
	TenantID      string          `json:"tenant_id"`
	CustomerID    *int64          `json:"customer_id,omitempty"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone,omitempty"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	Installments  int             `json:"installments"`
}

// CustomerRegisteredEvent published when a quick registration succeeds
type CustomerRegisteredEvent struct {
	BaseEvent
	CustomerID        int64  `json:"customer_id"`
	TenantID          string `json:"tenant_id"`
	Email             string `json:"email"`
	IncompleteProfile bool   `json:"incomplete_profile"`
}
