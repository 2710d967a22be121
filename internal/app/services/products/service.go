// Package products implements the product catalogue service.
package products

import (
	"context"
	"errors"

	"github.com/chefos/platform/internal/app/domain/product"
	"github.com/chefos/platform/internal/app/storage"
	"github.com/chefos/platform/internal/logging"
)

// Service applies catalogue rules on top of the store.
type Service struct {
	store storage.ProductStore
	log   *logging.Logger
}

// New creates the service. A nil logger falls back to the default.
func New(store storage.ProductStore, log *logging.Logger) *Service {
	if log == nil {
		log = logging.NewDefault("products")
	}
	return &Service{store: store, log: log}
}

// Upsert creates the product when its ID is zero, otherwise replaces the
// existing row. Identical input yields an identical catalogue state.
func (s *Service) Upsert(ctx context.Context, p product.Product) (product.Product, error) {
	return s.store.UpsertProduct(ctx, p)
}

// List returns every product in store order.
func (s *Service) List(ctx context.Context) ([]product.Product, error) {
	return s.store.ListProducts(ctx)
}

// Remove deletes the product. Deleting a missing row logs a warning and
// succeeds so the operation stays idempotent; real persistence faults
// propagate.
func (s *Service) Remove(ctx context.Context, id int64) error {
	err := s.store.DeleteProduct(ctx, id)
	if err == nil {
		return nil
	}
	if errors.Is(err, storage.ErrNotFound) {
		s.log.WithContext(ctx).WithField("id", id).Warn("Unable to delete product")
		return nil
	}
	return err
}
