// Package ticket contains the core domain logic for scanned receipts.
package ticket

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Ticket represents one receipt belonging to a household. The stored total
// is independent of the line-item price sum: it may include tax or
// discounts that are not itemized, and is never recomputed.
type Ticket struct {
	ID        uuid.UUID
	FoyerID   uuid.UUID
	StoreName string
	Date      time.Time
	Total     float64
	Items     []LineItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LineItem is one ordered entry on a receipt
type LineItem struct {
	Name     string
	Quantity float64
	Unit     string
	Category string
	Price    float64
}

// Validate validates the line item
func (li LineItem) Validate() error {
	if strings.TrimSpace(li.Name) == "" {
		return ErrItemNameRequired
	}
	if li.Quantity < 0 {
		return ErrNegativeQuantity
	}
	return nil
}

// NewTicket creates a ticket with validation
func NewTicket(foyerID uuid.UUID, storeName string, date time.Time, total float64, items []LineItem) (*Ticket, error) {
	if foyerID == uuid.Nil {
		return nil, ErrFoyerIDRequired
	}
	if strings.TrimSpace(storeName) == "" {
		return nil, ErrStoreNameRequired
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	return &Ticket{
		ID:        uuid.New(),
		FoyerID:   foyerID,
		StoreName: strings.TrimSpace(storeName),
		Date:      date,
		Total:     total,
		Items:     items,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Edit replaces the mutable fields of the ticket
func (t *Ticket) Edit(storeName string, date time.Time, total float64, items []LineItem) error {
	if strings.TrimSpace(storeName) == "" {
		return ErrStoreNameRequired
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	t.StoreName = strings.TrimSpace(storeName)
	t.Date = date
	t.Total = total
	t.Items = items
	t.UpdatedAt = time.Now()
	return nil
}
