package checkout

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"pos-service/internal/installment"
	"pos-service/internal/models"
	"pos-service/internal/util"
)

// Catalog supplies product records for add-to-cart. Read-only.
type Catalog interface {
	GetProduct(ctx context.Context, productID int64) (*models.Product, error)
}

// Customers supplies existing customer records for selection.
type Customers interface {
	GetCustomerByID(ctx context.Context, id int64) (*models.Customer, error)
}

// OrderSink accepts the finalized order and assigns its identity and date.
type OrderSink interface {
	CreateOrder(ctx context.Context, order *models.Order) error
}

// Publisher announces completed sales to downstream consumers.
type Publisher interface {
	PublishSaleCompleted(ctx context.Context, event *models.SaleCompletedEvent) error
}

// Service orchestrates POS sale sessions: cart mutation, payment method
// selection, fiado schedule configuration, and order finalization.
type Service struct {
	tenantID  string
	catalog   Catalog
	customers Customers
	orders    OrderSink
	publisher Publisher
	logger    *zap.Logger

	// now is swappable so schedule due dates are deterministic in tests.
	now func() time.Time

	mu         sync.Mutex
	sessions   map[string]*Session
	sessionTTL time.Duration
}

// NewService creates a new checkout service
func NewService(tenantID string, catalog Catalog, customers Customers, orders OrderSink, publisher Publisher, sessionTTL time.Duration) *Service {
	return &Service{
		tenantID:   tenantID,
		catalog:    catalog,
		customers:  customers,
		orders:     orders,
		publisher:  publisher,
		logger:     util.NamedLogger("checkout"),
		now:        time.Now,
		sessions:   make(map[string]*Session),
		sessionTTL: sessionTTL,
	}
}

// OpenSession starts a new idle sale session and returns its id.
func (svc *Service) OpenSession() *View {
	s := newSession(uuid.New().String(), svc.tenantID, svc.now())

	svc.mu.Lock()
	svc.sessions[s.ID] = s
	svc.mu.Unlock()

	util.SessionsOpenedTotal.Inc()
	svc.logger.Info("Session opened", zap.String("session_id", s.ID))
	return s.view()
}

// GetSession returns a snapshot of a session.
func (svc *Service) GetSession(sessionID string) (*View, error) {
	s, err := svc.session(sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view(), nil
}

func (svc *Service) session(id string) (*Session, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	s, ok := svc.sessions[id]
	if !ok {
		return nil, models.NewNotFoundError("session not found: " + id)
	}
	return s, nil
}

// AddItem adds one unit of a catalog product to the cart.
func (svc *Service) AddItem(ctx context.Context, sessionID string, productID int64, size string) (*View, error) {
	ctx, span := util.StartSpan(ctx, "CheckoutService.AddItem")
	defer span.End()

	product, err := svc.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	return svc.mutate(sessionID, func(s *Session) error {
		s.ledger.Add(*product, size)
		return nil
	})
}

// UpdateQuantity applies a quantity delta to a cart item, clamped at zero.
func (svc *Service) UpdateQuantity(sessionID string, productID int64, delta int) (*View, error) {
	return svc.mutate(sessionID, func(s *Session) error {
		return s.ledger.UpdateQuantity(productID, delta)
	})
}

// EditItem overwrites a cart item's unit price and quantity.
func (svc *Service) EditItem(sessionID string, productID int64, newPrice decimal.Decimal, newQuantity int) (*View, error) {
	return svc.mutate(sessionID, func(s *Session) error {
		return s.ledger.ApplyEdit(productID, newPrice, newQuantity)
	})
}

// RemoveItem deletes a cart item unconditionally.
func (svc *Service) RemoveItem(sessionID string, productID int64) (*View, error) {
	return svc.mutate(sessionID, func(s *Session) error {
		s.ledger.Remove(productID)
		return nil
	})
}

// SelectCustomer attaches an existing customer to the session. A nil
// customerID detaches, returning the sale to walk-in.
func (svc *Service) SelectCustomer(ctx context.Context, sessionID string, customerID *int64) (*View, error) {
	var customer *models.Customer
	if customerID != nil {
		var err error
		customer, err = svc.customers.GetCustomerByID(ctx, *customerID)
		if err != nil {
			return nil, err
		}
	}

	return svc.mutate(sessionID, func(s *Session) error {
		s.customer = customer
		return nil
	})
}

// AttachCustomer attaches an already-loaded customer record, used right
// after a quick registration so the new customer is selectable immediately.
func (svc *Service) AttachCustomer(sessionID string, customer *models.Customer) (*View, error) {
	return svc.mutate(sessionID, func(s *Session) error {
		s.customer = customer
		return nil
	})
}

// SetPaymentMethod records the tender type for the sale.
func (svc *Service) SetPaymentMethod(sessionID string, method models.PaymentMethod) (*View, error) {
	return svc.mutate(sessionID, func(s *Session) error {
		s.paymentMethod = method
		return nil
	})
}

// mutate runs fn under the session mutex. Cart and selection mutations are
// only legal while idle; during credit configuration the total is pinned to
// the generated schedule.
func (svc *Service) mutate(sessionID string, fn func(*Session) error) (*View, error) {
	s, err := svc.session(sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateIdle {
		return nil, models.NewValidationError("credit configuration in progress; confirm or cancel it first")
	}

	if err := fn(s); err != nil {
		return nil, err
	}

	s.touchedAt = svc.now()
	return s.view(), nil
}

// CheckoutResult reports the outcome of a checkout invocation.
type CheckoutResult struct {
	// Finalized is true when an order was created. False means the session
	// moved to credit configuration and awaits confirmation.
	Finalized bool          `json:"finalized"`
	Order     *models.Order `json:"order,omitempty"`
	Session   *View         `json:"session"`
}

// Checkout validates preconditions and either finalizes the sale
// immediately or, for fiado, opens credit configuration with an initial
// single-installment schedule.
func (svc *Service) Checkout(ctx context.Context, sessionID string) (*CheckoutResult, error) {
	ctx, span := util.StartSpan(ctx, "CheckoutService.Checkout")
	defer span.End()

	s, err := svc.session(sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateIdle {
		return nil, models.NewValidationError("checkout already in progress")
	}
	if s.ledger.Empty() {
		util.SalesFailedTotal.WithLabelValues("empty_cart").Inc()
		return nil, models.NewValidationError("cart is empty")
	}
	if s.paymentMethod == "" {
		util.SalesFailedTotal.WithLabelValues("no_payment_method").Inc()
		return nil, models.NewValidationError("payment method is required")
	}
	if s.paymentMethod.RequiresCustomer() && s.customer == nil {
		util.SalesFailedTotal.WithLabelValues("fiado_without_customer").Inc()
		return nil, models.NewValidationError("fiado sales require a selected customer")
	}

	if s.paymentMethod == models.PaymentFiado {
		s.state = StatePendingCreditConfig
		s.schedule = installment.Generate(s.ledger.Total(), 1, svc.now())
		s.touchedAt = svc.now()
		util.FiadoSchedulesGenerated.Inc()
		return &CheckoutResult{Finalized: false, Session: s.view()}, nil
	}

	order, err := svc.finalizeLocked(ctx, s, nil)
	if err != nil {
		return nil, err
	}
	return &CheckoutResult{Finalized: true, Order: order, Session: s.view()}, nil
}

// SetInstallmentCount regenerates the fiado schedule for a new count.
// Manual due-date edits made before the count change are discarded; the
// whole schedule is replaced.
func (svc *Service) SetInstallmentCount(sessionID string, count int) (*View, error) {
	s, err := svc.session(sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StatePendingCreditConfig {
		return nil, models.NewValidationError("no credit configuration in progress")
	}

	s.schedule = installment.Generate(s.ledger.Total(), count, svc.now())
	s.touchedAt = svc.now()
	util.FiadoSchedulesGenerated.Inc()
	return s.view(), nil
}

// EditInstallmentDueDate changes one installment's due date in place.
func (svc *Service) EditInstallmentDueDate(sessionID string, seq int, newDate time.Time) (*View, error) {
	s, err := svc.session(sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StatePendingCreditConfig {
		return nil, models.NewValidationError("no credit configuration in progress")
	}

	if err := installment.EditDueDate(s.schedule, seq, newDate); err != nil {
		return nil, err
	}
	s.touchedAt = svc.now()
	return s.view(), nil
}

// ConfirmCredit finalizes a fiado sale with the configured schedule.
func (svc *Service) ConfirmCredit(ctx context.Context, sessionID string) (*CheckoutResult, error) {
	ctx, span := util.StartSpan(ctx, "CheckoutService.ConfirmCredit")
	defer span.End()

	s, err := svc.session(sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StatePendingCreditConfig {
		return nil, models.NewValidationError("no credit configuration in progress")
	}

	order, err := svc.finalizeLocked(ctx, s, s.schedule)
	if err != nil {
		return nil, err
	}
	return &CheckoutResult{Finalized: true, Order: order, Session: s.view()}, nil
}

// CancelCredit abandons credit configuration and returns to idle. No order
// is created; the cart and selected customer are untouched.
func (svc *Service) CancelCredit(sessionID string) (*View, error) {
	s, err := svc.session(sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StatePendingCreditConfig {
		return nil, models.NewValidationError("no credit configuration in progress")
	}

	s.state = StateIdle
	s.schedule = nil
	s.touchedAt = svc.now()
	return s.view(), nil
}

// AcknowledgeOrder dismisses the retained receipt snapshot.
func (svc *Service) AcknowledgeOrder(sessionID string) (*View, error) {
	s, err := svc.session(sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastOrder = nil
	s.touchedAt = svc.now()
	return s.view(), nil
}

// finalizeLocked packages the ledger into an order, dispatches it to the
// order sink, publishes the sale event, and resets transient session state.
// Must be called with the session mutex held.
func (svc *Service) finalizeLocked(ctx context.Context, s *Session, schedule []models.Installment) (*models.Order, error) {
	start := svc.now()
	defer func() {
		util.CheckoutLatency.Observe(time.Since(start).Seconds())
	}()

	order := &models.Order{
		TenantID:      s.TenantID,
		CustomerName:  models.WalkInCustomerName,
		Total:         s.ledger.Total(),
		PaymentMethod: s.paymentMethod,
		Status:        models.OrderStatusCompleted,
		Origin:        models.OriginPOS,
		Shipping:      models.ShippingPickup,
		ShippingCost:  decimal.Zero,
		Installments:  schedule,
	}
	if s.customer != nil {
		id := s.customer.ID
		order.CustomerID = &id
		order.CustomerName = s.customer.Name
		order.CustomerPhone = s.customer.Phone
	}

	for _, item := range s.ledger.Items() {
		order.Items = append(order.Items, models.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			Size:      item.Size,
		})
	}

	if err := svc.orders.CreateOrder(ctx, order); err != nil {
		util.SalesFailedTotal.WithLabelValues("order_sink_error").Inc()
		return nil, err
	}

	util.SalesCompletedTotal.WithLabelValues(string(order.PaymentMethod)).Inc()
	svc.logger.Info("Sale finalized",
		zap.Int64("order_id", order.ID),
		zap.String("payment_method", string(order.PaymentMethod)),
		zap.String("total", order.Total.String()),
		zap.Int("installments", len(order.Installments)))

	event := &models.SaleCompletedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeSaleCompleted,
			Timestamp: svc.now(),
		},
		OrderID:       order.ID,
		TenantID:      order.TenantID,
		CustomerID:    order.CustomerID,
		CustomerName:  order.CustomerName,
		CustomerPhone: order.CustomerPhone,
		Total:         order.Total,
		PaymentMethod: order.PaymentMethod,
		Installments:  len(order.Installments),
	}
	if err := svc.publisher.PublishSaleCompleted(ctx, event); err != nil {
		svc.logger.Error("Failed to publish SaleCompleted event", zap.Error(err))
	}

	s.reset()
	s.lastOrder = order
	s.touchedAt = svc.now()
	return order, nil
}

// StartJanitor sweeps idle sessions past the TTL until ctx is cancelled.
func (svc *Service) StartJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			svc.sweepExpired()
		}
	}
}

func (svc *Service) sweepExpired() {
	cutoff := svc.now().Add(-svc.sessionTTL)

	svc.mu.Lock()
	defer svc.mu.Unlock()

	for id, s := range svc.sessions {
		s.mu.Lock()
		stale := s.touchedAt.Before(cutoff)
		s.mu.Unlock()

		if stale {
			delete(svc.sessions, id)
			util.SessionsExpiredTotal.Inc()
			svc.logger.Info("Session expired", zap.String("session_id", id))
		}
	}
}
