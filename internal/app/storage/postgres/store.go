// Package postgres implements the storage interfaces on PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/chefos/platform/internal/app/domain/product"
	"github.com/chefos/platform/internal/app/domain/user"
	"github.com/chefos/platform/internal/app/storage"
)

// Store implements the storage interfaces backed by PostgreSQL.
type Store struct {
	db *sql.DB
}

var _ storage.ProductStore = (*Store)(nil)
var _ storage.UserStore = (*Store)(nil)

// New creates a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Open connects to the database and verifies the connection.
func Open(ctx context.Context, databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// --- ProductStore -----------------------------------------------------------

func (s *Store) UpsertProduct(ctx context.Context, p product.Product) (product.Product, error) {
	now := time.Now().UTC()
	p.UpdatedAt = now

	if p.ID == 0 {
		p.CreatedAt = now
		err := s.db.QueryRowContext(ctx, `
			INSERT INTO products (name, price, created_at, updated_at)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, p.Name, p.Price, p.CreatedAt, p.UpdatedAt).Scan(&p.ID)
		if err != nil {
			return product.Product{}, err
		}
		return p, nil
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO products (id, name, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, price = EXCLUDED.price, updated_at = EXCLUDED.updated_at
		RETURNING created_at
	`, p.ID, p.Name, p.Price, now).Scan(&p.CreatedAt)
	if err != nil {
		return product.Product{}, err
	}
	return p, nil
}

func (s *Store) ListProducts(ctx context.Context) ([]product.Product, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, price, created_at, updated_at
		FROM products
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []product.Product{}
	for rows.Next() {
		var p product.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM products WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// --- UserStore --------------------------------------------------------------

func (s *Store) UpsertUser(ctx context.Context, u user.User) (user.User, error) {
	now := time.Now().UTC()
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO users (auth_subject, email, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		ON CONFLICT (auth_subject, email) DO UPDATE
		SET updated_at = EXCLUDED.updated_at
		RETURNING id, created_at, updated_at
	`, u.Subject, u.Email, now).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return user.User{}, err
	}
	return u, nil
}

func (s *Store) GetUserBySubject(ctx context.Context, subject string) (user.User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, auth_subject, email, created_at, updated_at
		FROM users
		WHERE auth_subject = $1
	`, subject)

	var u user.User
	if err := row.Scan(&u.ID, &u.Subject, &u.Email, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user.User{}, storage.ErrNotFound
		}
		return user.User{}, err
	}
	return u, nil
}
