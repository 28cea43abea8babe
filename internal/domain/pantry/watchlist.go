package pantry

import "time"

const (
	lowStockScore = 2
	expiredScore  = 3

	// WatchlistSize is how many products the watchlist surfaces
	WatchlistSize = 4
)

// Watchlist is the ranked subset of products needing attention, with the
// full attention count reported separately.
type Watchlist struct {
	Products       []*Product
	AttentionCount int
}

// urgencyScore ranks a product for display order. Already-expired products
// outrank merely low-stock ones; both conditions stack.
func urgencyScore(p *Product, now time.Time) int {
	score := 0
	if p.IsLowStock() {
		score += lowStockScore
	}
	if p.IsExpired(now) {
		score += expiredScore
	}
	return score
}

// BuildWatchlist computes the watchlist for a product collection. The input
// order is preserved among equal scores (stable sort), and only the top
// WatchlistSize products are surfaced. Pure function over products and the
// injected clock.
func BuildWatchlist(products []*Product, now time.Time) Watchlist {
	flagged := make([]*Product, 0, len(products))
	for _, p := range products {
		if p.NeedsAttention(now) {
			flagged = append(flagged, p)
		}
	}

	// Insertion sort keeps ties in collection order without allocating
	// score pairs; the flagged set is small.
	for i := 1; i < len(flagged); i++ {
		for j := i; j > 0 && urgencyScore(flagged[j], now) > urgencyScore(flagged[j-1], now); j-- {
			flagged[j], flagged[j-1] = flagged[j-1], flagged[j]
		}
	}

	count := len(flagged)
	if len(flagged) > WatchlistSize {
		flagged = flagged[:WatchlistSize]
	}

	return Watchlist{Products: flagged, AttentionCount: count}
}
