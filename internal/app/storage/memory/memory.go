// Package memory is an in-memory implementation of the storage interfaces.
// It is safe for concurrent use and is primarily intended for tests and
// local development without a database.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/chefos/platform/internal/app/domain/product"
	"github.com/chefos/platform/internal/app/domain/user"
	"github.com/chefos/platform/internal/app/storage"
)

// Store holds products and users in maps guarded by one mutex.
type Store struct {
	mu        sync.RWMutex
	nextProd  int64
	nextUser  int64
	products  map[int64]product.Product
	users     map[int64]user.User
	userByKey map[string]int64
}

var _ storage.ProductStore = (*Store)(nil)
var _ storage.UserStore = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{
		nextProd:  1,
		nextUser:  1,
		products:  make(map[int64]product.Product),
		users:     make(map[int64]user.User),
		userByKey: make(map[string]int64),
	}
}

// --- ProductStore -----------------------------------------------------------

func (s *Store) UpsertProduct(_ context.Context, p product.Product) (product.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if p.ID == 0 {
		p.ID = s.nextProd
		s.nextProd++
		p.CreatedAt = now
	} else if existing, ok := s.products[p.ID]; ok {
		p.CreatedAt = existing.CreatedAt
	} else {
		p.CreatedAt = now
		if p.ID >= s.nextProd {
			s.nextProd = p.ID + 1
		}
	}
	p.UpdatedAt = now

	s.products[p.ID] = p
	return p, nil
}

func (s *Store) ListProducts(_ context.Context) ([]product.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]product.Product, 0, len(s.products))
	for _, p := range s.products {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *Store) DeleteProduct(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.products, id)
	return nil
}

// --- UserStore --------------------------------------------------------------

func (s *Store) UpsertUser(_ context.Context, u user.User) (user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	key := u.Subject + "\x00" + u.Email
	if id, ok := s.userByKey[key]; ok {
		existing := s.users[id]
		existing.UpdatedAt = now
		s.users[id] = existing
		return existing, nil
	}

	u.ID = s.nextUser
	s.nextUser++
	u.CreatedAt = now
	u.UpdatedAt = now
	s.users[u.ID] = u
	s.userByKey[key] = u.ID
	return u, nil
}

func (s *Store) GetUserBySubject(_ context.Context, subject string) (user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Subject == subject {
			return u, nil
		}
	}
	return user.User{}, storage.ErrNotFound
}
