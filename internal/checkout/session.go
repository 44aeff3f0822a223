package checkout

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"pos-service/internal/cart"
	"pos-service/internal/models"
)

// State identifies where a sale session sits in its lifecycle.
type State string

const (
	// StateIdle: the cart is being built.
	StateIdle State = "IDLE"
	// StatePendingCreditConfig: fiado selected, installment schedule under
	// configuration. Cart mutations are rejected until confirmed or cancelled.
	StatePendingCreditConfig State = "PENDING_CREDIT_CONFIG"
)

// Session is one operator-driven sale in progress. All mutations go through
// the owning Service, which serializes them under the session mutex.
type Session struct {
	ID       string
	TenantID string

	mu            sync.Mutex
	state         State
	ledger        *cart.Ledger
	customer      *models.Customer
	paymentMethod models.PaymentMethod
	schedule      []models.Installment

	// lastOrder holds the completed sale for receipt display until the
	// operator acknowledges it. It survives the post-checkout reset.
	lastOrder *models.Order

	touchedAt time.Time
}

func newSession(id, tenantID string, now time.Time) *Session {
	return &Session{
		ID:        id,
		TenantID:  tenantID,
		state:     StateIdle,
		ledger:    cart.New(),
		touchedAt: now,
	}
}

// reset clears transient sale state after a finalize. The completed order
// snapshot is retained separately.
func (s *Session) reset() {
	s.state = StateIdle
	s.ledger.Clear()
	s.customer = nil
	s.paymentMethod = ""
	s.schedule = nil
}

// View is a read-only snapshot of a session for the rendering layer.
type View struct {
	ID            string               `json:"id"`
	State         State                `json:"state"`
	Items         []models.LineItem    `json:"items"`
	Total         decimal.Decimal      `json:"total"`
	Customer      *models.Customer     `json:"customer,omitempty"`
	PaymentMethod models.PaymentMethod `json:"payment_method,omitempty"`
	Schedule      []models.Installment `json:"schedule,omitempty"`
	LastOrder     *models.Order        `json:"last_order,omitempty"`
}

// view must be called with the session mutex held.
func (s *Session) view() *View {
	v := &View{
		ID:            s.ID,
		State:         s.state,
		Items:         s.ledger.Items(),
		Total:         s.ledger.Total(),
		Customer:      s.customer,
		PaymentMethod: s.paymentMethod,
		LastOrder:     s.lastOrder,
	}
	if s.schedule != nil {
		v.Schedule = make([]models.Installment, len(s.schedule))
		copy(v.Schedule, s.schedule)
	}
	return v
}
