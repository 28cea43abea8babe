// Package pantry contains the core domain logic for the household stock:
// products, low-stock and expiry alerts, and natural-language stock commands.
package pantry

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ExpiryWindow is how far ahead a product counts as "expiring".
const ExpiryWindow = 3 * 24 * time.Hour

// Product represents one pantry item owned by a household
type Product struct {
	ID           uuid.UUID
	FoyerID      uuid.UUID
	Name         string
	Quantity     float64
	Unit         string
	Category     string
	MinThreshold float64
	ExpiryDate   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewProduct creates a product with validation
func NewProduct(foyerID uuid.UUID, name string, quantity float64, unit, category string, minThreshold float64, expiryDate *time.Time) (*Product, error) {
	if foyerID == uuid.Nil {
		return nil, ErrFoyerIDRequired
	}
	if strings.TrimSpace(name) == "" {
		return nil, ErrNameRequired
	}
	if quantity < 0 {
		return nil, ErrNegativeQuantity
	}
	if minThreshold < 0 {
		return nil, ErrNegativeThreshold
	}

	now := time.Now()
	return &Product{
		ID:           uuid.New(),
		FoyerID:      foyerID,
		Name:         strings.TrimSpace(name),
		Quantity:     quantity,
		Unit:         unit,
		Category:     category,
		MinThreshold: minThreshold,
		ExpiryDate:   expiryDate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// IsLowStock reports whether the product is at or below its threshold.
// The boundary is inclusive: quantity == minThreshold counts as low.
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.MinThreshold
}

// IsExpiring reports whether the product expires within the expiry window
// of now. A product without an expiry date never expires.
func (p *Product) IsExpiring(now time.Time) bool {
	if p.ExpiryDate == nil {
		return false
	}
	return !p.ExpiryDate.After(now.Add(ExpiryWindow))
}

// IsExpired reports whether the product's expiry date has passed
func (p *Product) IsExpired(now time.Time) bool {
	if p.ExpiryDate == nil {
		return false
	}
	return !p.ExpiryDate.After(now)
}

// NeedsAttention reports whether the product belongs on the watchlist
func (p *Product) NeedsAttention(now time.Time) bool {
	return p.IsLowStock() || p.IsExpiring(now)
}

// SetQuantity sets the quantity, clamping at zero
func (p *Product) SetQuantity(quantity float64) {
	if quantity < 0 {
		quantity = 0
	}
	p.Quantity = quantity
	p.UpdatedAt = time.Now()
}

// AddQuantity adjusts the quantity by delta, clamping at zero
func (p *Product) AddQuantity(delta float64) {
	p.SetQuantity(p.Quantity + delta)
}
