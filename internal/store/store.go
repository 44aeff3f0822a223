package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"pos-service/internal/models"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

type Store struct {
	db *sqlx.DB
}

// NewStore creates a new database store
func NewStore(databaseURL string) (*Store, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// GetDB returns the underlying database connection
func (s *Store) GetDB() *sqlx.DB {
	return s.db
}

// GetProductByID retrieves a product by ID
func (s *Store) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	err := s.db.GetContext(ctx, &product, "SELECT * FROM products WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, models.NewNotFoundError(fmt.Sprintf("product not found: %d", id))
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetProducts retrieves all products for a tenant
func (s *Store) GetProducts(ctx context.Context, tenantID string) ([]models.Product, error) {
	var products []models.Product
	err := s.db.SelectContext(ctx, &products,
		"SELECT * FROM products WHERE tenant_id = $1 ORDER BY id", tenantID)
	return products, err
}

// GetCustomerByID retrieves a customer by ID
func (s *Store) GetCustomerByID(ctx context.Context, id int64) (*models.Customer, error) {
	var customer models.Customer
	err := s.db.GetContext(ctx, &customer, "SELECT * FROM customers WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, models.NewNotFoundError(fmt.Sprintf("customer not found: %d", id))
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// GetCustomerByEmail retrieves a customer by email, case-insensitive,
// scoped to a tenant. Returns (nil, nil) when no match exists.
func (s *Store) GetCustomerByEmail(ctx context.Context, tenantID, email string) (*models.Customer, error) {
	var customer models.Customer
	err := s.db.GetContext(ctx, &customer,
		"SELECT * FROM customers WHERE tenant_id = $1 AND LOWER(email) = $2",
		tenantID, strings.ToLower(email))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// SearchCustomers retrieves customers whose name or email matches the query
func (s *Store) SearchCustomers(ctx context.Context, tenantID, query string) ([]models.Customer, error) {
	var customers []models.Customer
	pattern := "%" + strings.ToLower(query) + "%"
	err := s.db.SelectContext(ctx, &customers,
		`SELECT * FROM customers
		 WHERE tenant_id = $1 AND (LOWER(name) LIKE $2 OR LOWER(email) LIKE $2)
		 ORDER BY name LIMIT 50`,
		tenantID, pattern)
	return customers, err
}

// CreateCustomer inserts a new customer record
func (s *Store) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	query := `
		INSERT INTO customers (tenant_id, name, email, phone, debt_balance, store_credit, incomplete_profile)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	return s.db.GetContext(ctx, customer, query,
		customer.TenantID, customer.Name, customer.Email, customer.Phone,
		customer.DebtBalance, customer.StoreCredit, customer.IncompleteProfile)
}
