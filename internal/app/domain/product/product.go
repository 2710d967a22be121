// Package product defines the product domain model.
package product

import "time"

// Product is a catalogue entry. ID zero means "not yet persisted".
type Product struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
