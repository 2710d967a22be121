package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/chefos/platform/internal/app/domain/product"
	"github.com/chefos/platform/internal/app/domain/user"
	"github.com/chefos/platform/internal/app/storage"
)

func TestUpsertProductAssignsIDs(t *testing.T) {
	s := New()
	ctx := context.Background()

	first, err := s.UpsertProduct(ctx, product.Product{Name: "Flour", Price: 2.5})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	second, err := s.UpsertProduct(ctx, product.Product{Name: "Sugar", Price: 1.9})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if first.ID == 0 || second.ID == first.ID {
		t.Fatalf("ids not assigned: %d, %d", first.ID, second.ID)
	}
}

func TestUpsertProductReplacesByID(t *testing.T) {
	s := New()
	ctx := context.Background()

	created, _ := s.UpsertProduct(ctx, product.Product{Name: "Flour", Price: 2.5})
	created.Price = 3.0
	updated, err := s.UpsertProduct(ctx, created)
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if updated.Price != 3.0 || !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("replace lost fields: %+v", updated)
	}

	list, _ := s.ListProducts(ctx)
	if len(list) != 1 {
		t.Fatalf("expected 1 product, got %d", len(list))
	}
}

func TestDeleteProduct(t *testing.T) {
	s := New()
	ctx := context.Background()

	created, _ := s.UpsertProduct(ctx, product.Product{Name: "Flour", Price: 2.5})
	if err := s.DeleteProduct(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.DeleteProduct(ctx, created.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("second delete: %v", err)
	}
}

func TestUpsertUserIsKeyedBySubjectAndEmail(t *testing.T) {
	s := New()
	ctx := context.Background()

	first, err := s.UpsertUser(ctx, user.User{Subject: "auth0|123", Email: "cook@example.com"})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	again, err := s.UpsertUser(ctx, user.User{Subject: "auth0|123", Email: "cook@example.com"})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if again.ID != first.ID {
		t.Fatalf("same identity produced a new row: %d vs %d", again.ID, first.ID)
	}

	got, err := s.GetUserBySubject(ctx, "auth0|123")
	if err != nil || got.Email != "cook@example.com" {
		t.Fatalf("lookup: %v %+v", err, got)
	}
}
