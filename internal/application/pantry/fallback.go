package pantry

import (
	"time"

	domain "github.com/foyerapp/foyer/internal/domain/pantry"
	"github.com/google/uuid"
)

// FallbackProducts is the deterministic stock served when storage is
// unavailable, so the pantry view keeps rendering. IDs are fixed so
// repeated degraded reads stay stable within a session.
func FallbackProducts(foyerID uuid.UUID) []*domain.Product {
	soon := time.Now().Add(2 * 24 * time.Hour)
	return []*domain.Product{
		{
			ID:           uuid.MustParse("00000000-0000-0000-0000-000000000001"),
			FoyerID:      foyerID,
			Name:         "Lait demi-écrémé",
			Quantity:     1,
			Unit:         "L",
			Category:     "Produits laitiers",
			MinThreshold: 2,
			ExpiryDate:   &soon,
		},
		{
			ID:           uuid.MustParse("00000000-0000-0000-0000-000000000002"),
			FoyerID:      foyerID,
			Name:         "Œufs Bio",
			Quantity:     6,
			Unit:         "pièces",
			Category:     "Produits frais",
			MinThreshold: 4,
		},
		{
			ID:           uuid.MustParse("00000000-0000-0000-0000-000000000003"),
			FoyerID:      foyerID,
			Name:         "Riz basmati",
			Quantity:     2,
			Unit:         "kg",
			Category:     "Épicerie",
			MinThreshold: 1,
		},
		{
			ID:           uuid.MustParse("00000000-0000-0000-0000-000000000004"),
			FoyerID:      foyerID,
			Name:         "Pâtes penne",
			Quantity:     0.5,
			Unit:         "kg",
			Category:     "Épicerie",
			MinThreshold: 1,
		},
	}
}
