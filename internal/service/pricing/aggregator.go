package pricing

import (
	"math"
	"sort"

	"github.com/nasserdhaferi2013-dot/DiscordPriceBot/internal/constants"
	"github.com/nasserdhaferi2013-dot/DiscordPriceBot/internal/domain"
	"github.com/nasserdhaferi2013-dot/DiscordPriceBot/internal/util"
	"github.com/nasserdhaferi2013-dot/DiscordPriceBot/pkg/errors"
)

// Membership answers catalog lookups for normalized titles.
type Membership interface {
	Contains(normalizedTitle string) bool
}

// Aggregate ranks deals ascending by price, truncates to the top
// constants.Limits.MaxDeals, records the index of the first minimum-priced
// entry and annotates the result with catalog membership. Deals without a
// usable amount sort last so a broken record never masquerades as best price.
func Aggregate(record *domain.GameRecord, deals []domain.Deal, catalog Membership) (*domain.AggregationResult, error) {
	if record == nil {
		return nil, errors.NewValidationError("aggregate requires a resolved game record", "record", nil)
	}

	ranked := make([]domain.Deal, len(deals))
	copy(ranked, deals)

	sort.SliceStable(ranked, func(i, j int) bool {
		return sortAmount(ranked[i]) < sortAmount(ranked[j])
	})

	if len(ranked) > constants.Limits.MaxDeals {
		ranked = ranked[:constants.Limits.MaxDeals]
	}

	cheapest := 0
	for i := 1; i < len(ranked); i++ {
		if sortAmount(ranked[i]) < sortAmount(ranked[cheapest]) {
			cheapest = i
		}
	}

	inCatalog := false
	if catalog != nil {
		inCatalog = catalog.Contains(util.NormalizeTitle(record.Title))
	}

	return &domain.AggregationResult{
		Record:        *record,
		Deals:         ranked,
		CheapestIndex: cheapest,
		InCatalog:     inCatalog,
	}, nil
}

func sortAmount(d domain.Deal) float64 {
	if !d.HasAmount() {
		return math.MaxFloat64
	}
	return d.Amount
}
