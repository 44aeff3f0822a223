package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"pos-service/internal/models"
	"pos-service/internal/util"
)

// CustomerStore is the database surface the registry gateway uses.
type CustomerStore interface {
	GetCustomerByID(ctx context.Context, id int64) (*models.Customer, error)
	GetCustomerByEmail(ctx context.Context, tenantID, email string) (*models.Customer, error)
	SearchCustomers(ctx context.Context, tenantID, query string) ([]models.Customer, error)
	CreateCustomer(ctx context.Context, customer *models.Customer) error
}

// CustomerPublisher announces new registrations.
type CustomerPublisher interface {
	PublishCustomerRegistered(ctx context.Context, event *models.CustomerRegisteredEvent) error
}

// CustomerService is the POS gateway into the customer registry: selection
// reads plus the quick-registration append path.
type CustomerService struct {
	store     CustomerStore
	publisher CustomerPublisher
	tenantID  string
	logger    *zap.Logger
}

// NewCustomerService creates a new customer service
func NewCustomerService(store CustomerStore, publisher CustomerPublisher, tenantID string) *CustomerService {
	return &CustomerService{
		store:     store,
		publisher: publisher,
		tenantID:  tenantID,
		logger:    util.NamedLogger("customers"),
	}
}

// QuickRegisterRequest carries the abbreviated registration form.
type QuickRegisterRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
	Phone string `json:"phone"`
}

// QuickRegister creates a customer from the POS with only name, email and
// phone. The record is flagged incomplete: password and address are filled
// in later through the self-service flow. Duplicate emails are rejected
// case-insensitively and leave the registry unchanged.
func (cs *CustomerService) QuickRegister(ctx context.Context, req *QuickRegisterRequest) (*models.Customer, error) {
	ctx, span := util.StartSpan(ctx, "CustomerService.QuickRegister")
	defer span.End()

	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)

	if name == "" || email == "" {
		util.QuickRegistrationsRejected.WithLabelValues("missing_fields").Inc()
		return nil, models.NewValidationError("name and email are required")
	}

	existing, err := cs.store.GetCustomerByEmail(ctx, cs.tenantID, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		util.QuickRegistrationsRejected.WithLabelValues("duplicate_email").Inc()
		return nil, models.NewConflictError("a customer with this email already exists")
	}

	customer := &models.Customer{
		TenantID:          cs.tenantID,
		Name:              name,
		Email:             email,
		Phone:             strings.TrimSpace(req.Phone),
		DebtBalance:       decimal.Zero,
		StoreCredit:       decimal.Zero,
		IncompleteProfile: true,
	}

	if err := cs.store.CreateCustomer(ctx, customer); err != nil {
		return nil, err
	}

	util.QuickRegistrationsTotal.Inc()
	cs.logger.Info("Customer quick-registered",
		zap.Int64("customer_id", customer.ID),
		zap.String("email", customer.Email))

	if cs.publisher != nil {
		event := &models.CustomerRegisteredEvent{
			BaseEvent: models.BaseEvent{
				EventID:   uuid.New().String(),
				EventType: models.EventTypeCustomerRegistered,
				Timestamp: time.Now(),
			},
			CustomerID:        customer.ID,
			TenantID:          customer.TenantID,
			Email:             customer.Email,
			IncompleteProfile: customer.IncompleteProfile,
		}
		if err := cs.publisher.PublishCustomerRegistered(ctx, event); err != nil {
			cs.logger.Error("Failed to publish CustomerRegistered event", zap.Error(err))
		}
	}

	return customer, nil
}

// GetCustomerByID retrieves one customer for selection.
func (cs *CustomerService) GetCustomerByID(ctx context.Context, id int64) (*models.Customer, error) {
	return cs.store.GetCustomerByID(ctx, id)
}

// Search lists customers matching a name/email query for the POS picker.
func (cs *CustomerService) Search(ctx context.Context, query string) ([]models.Customer, error) {
	return cs.store.SearchCustomers(ctx, cs.tenantID, query)
}
