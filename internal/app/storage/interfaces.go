package storage

import (
	"context"
	"errors"

	"github.com/chefos/platform/internal/app/domain/product"
	"github.com/chefos/platform/internal/app/domain/user"
)

// ErrNotFound reports that a row the operation targeted does not exist.
var ErrNotFound = errors.New("not found")

// ProductStore persists catalogue products.
type ProductStore interface {
	// UpsertProduct creates the product when ID is zero, otherwise replaces
	// the row with that ID. The stored product is returned with its server
	// assigned ID and timestamps.
	UpsertProduct(ctx context.Context, p product.Product) (product.Product, error)
	ListProducts(ctx context.Context) ([]product.Product, error)
	// DeleteProduct returns ErrNotFound when no row has the given ID.
	DeleteProduct(ctx context.Context, id int64) error
}

// UserStore persists local shadows of identity-provider accounts.
type UserStore interface {
	// UpsertUser creates or refreshes the row keyed by (subject, email).
	UpsertUser(ctx context.Context, u user.User) (user.User, error)
	GetUserBySubject(ctx context.Context, subject string) (user.User, error)
}
