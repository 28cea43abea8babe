package ticket

import (
	"time"

	domain "github.com/foyerapp/foyer/internal/domain/ticket"
	"github.com/google/uuid"
)

// FallbackTicket is the fixed manual-entry template used when receipt
// extraction fails. The user edits it afterwards.
func FallbackTicket(foyerID uuid.UUID, now time.Time) *domain.Ticket {
	t, err := domain.NewTicket(foyerID, "Magasin", now, 0, []domain.LineItem{
		{Name: "Article", Quantity: 1, Unit: "pièce", Category: "Divers", Price: 0},
	})
	if err != nil {
		// Inputs above are constant and valid
		panic(err)
	}
	return t
}

// FallbackTickets is the deterministic receipt list served when storage is
// unavailable
func FallbackTickets(foyerID uuid.UUID) []*domain.Ticket {
	return []*domain.Ticket{
		{
			ID:        uuid.MustParse("00000000-0000-0000-0000-000000000201"),
			FoyerID:   foyerID,
			StoreName: "Supermarché du coin",
			Date:      time.Now().AddDate(0, 0, -2),
			Total:     42.50,
			Items: []domain.LineItem{
				{Name: "Lait demi-écrémé", Quantity: 2, Unit: "L", Category: "Produits laitiers", Price: 2.30},
				{Name: "Œufs Bio", Quantity: 6, Unit: "pièces", Category: "Produits frais", Price: 3.10},
			},
		},
	}
}
