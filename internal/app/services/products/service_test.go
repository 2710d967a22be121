package products

import (
	"context"
	"errors"
	"testing"

	"github.com/chefos/platform/internal/app/domain/product"
	"github.com/chefos/platform/internal/app/storage"
	"github.com/chefos/platform/internal/app/storage/memory"
)

func TestService(t *testing.T) {
	svc := New(memory.New(), nil)
	ctx := context.Background()

	created, err := svc.Upsert(ctx, product.Product{Name: "Flour", Price: 2.5})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected id to be assigned")
	}

	created.Price = 3.0
	if _, err := svc.Upsert(ctx, created); err != nil {
		t.Fatalf("replace: %v", err)
	}

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Price != 3.0 {
		t.Fatalf("unexpected list: %+v", list)
	}
}

func TestRemoveSwallowsMissingRow(t *testing.T) {
	svc := New(memory.New(), nil)

	if err := svc.Remove(context.Background(), 999); err != nil {
		t.Fatalf("missing row must not error: %v", err)
	}
}

type failingStore struct {
	storage.ProductStore
}

func (failingStore) DeleteProduct(context.Context, int64) error {
	return errors.New("pq: connection refused")
}

func TestRemovePropagatesStoreFaults(t *testing.T) {
	svc := New(failingStore{}, nil)

	if err := svc.Remove(context.Background(), 1); err == nil {
		t.Fatalf("store fault must propagate")
	}
}
