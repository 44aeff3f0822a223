package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"pos-service/internal/models"
	"pos-service/internal/redisclient"
	"pos-service/internal/util"
)

// CatalogStore is the database surface the catalog service reads from.
type CatalogStore interface {
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
	GetProducts(ctx context.Context, tenantID string) ([]models.Product, error)
}

// CatalogService serves product lookups with a Redis fast path and a
// database fallback. The catalog is read-only from this service.
type CatalogService struct {
	store  CatalogStore
	cache  *redisclient.Client
	logger *zap.Logger
}

// NewCatalogService creates a new catalog service. A nil cache disables the
// Redis fast path.
func NewCatalogService(store CatalogStore, cache *redisclient.Client) *CatalogService {
	return &CatalogService{
		store:  store,
		cache:  cache,
		logger: util.NamedLogger("catalog"),
	}
}

// GetProduct retrieves a product, preferring the cache.
func (cs *CatalogService) GetProduct(ctx context.Context, productID int64) (*models.Product, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.GetProduct")
	defer span.End()

	if cs.cache != nil {
		product, err := cs.cache.GetProduct(ctx, productID)
		if err != nil {
			cs.logger.Warn("Catalog cache lookup failed, falling back to DB",
				zap.Int64("product_id", productID),
				zap.Error(err))
		} else if product != nil {
			util.CatalogCacheRequests.WithLabelValues("hit").Inc()
			return product, nil
		}
		util.CatalogCacheRequests.WithLabelValues("miss").Inc()
	}

	product, err := cs.store.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if cs.cache != nil {
		if err := cs.cache.CacheProduct(ctx, product); err != nil {
			cs.logger.Warn("Failed to cache product", zap.Int64("product_id", productID), zap.Error(err))
		}
	}
	return product, nil
}

// ListProducts retrieves the tenant's full catalog from the database.
func (cs *CatalogService) ListProducts(ctx context.Context, tenantID string) ([]models.Product, error) {
	return cs.store.GetProducts(ctx, tenantID)
}

// SyncCatalogToRedis warms the cache with the tenant's catalog on boot.
func (cs *CatalogService) SyncCatalogToRedis(ctx context.Context, tenantID string) error {
	if cs.cache == nil {
		return nil
	}

	cs.logger.Info("Starting catalog sync to Redis")

	products, err := cs.store.GetProducts(ctx, tenantID)
	if err != nil {
		return fmt.Errorf("failed to get products: %w", err)
	}

	for i := range products {
		if err := cs.cache.CacheProduct(ctx, &products[i]); err != nil {
			cs.logger.Error("Failed to cache product",
				zap.Int64("product_id", products[i].ID),
				zap.Error(err))
		}
	}

	cs.logger.Info("Catalog sync completed", zap.Int("count", len(products)))
	return nil
}
