package matching

import (
	"sort"

	"recommendation-service/internal/core/domain"
)

// BuildBundle собирает подборку: фильтрует каталог по доступности,
// скорит каждый объект по мандату и разбивает на recommended
// (первые RecommendedCount по баллу) и counterfactuals
// (следующие CounterfactualCount с метками проваленных критериев).
//
// Сортировка стабильная: объекты с равным баллом сохраняют порядок
// каталога, поэтому результат воспроизводим от вызова к вызову.
// Однопроходная трансформация без состояния между вызовами.
func BuildBundle(mandate *domain.Mandate, listings []domain.Listing, cfg Config, source domain.BundleSource) domain.RecommendationBundle {
	cfg = cfg.Normalize()
	bundle := domain.EmptyBundle(source)

	type scoredEntry struct {
		listing domain.Listing
		fit     domain.FitResult
	}

	entries := make([]scoredEntry, 0, len(listings))
	for _, l := range listings {
		if l.Status != domain.ListingStatusAvailable {
			continue
		}
		entries = append(entries, scoredEntry{listing: l, fit: Score(l, mandate)})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].fit.Score > entries[j].fit.Score
	})

	for i, e := range entries {
		if i < cfg.RecommendedCount {
			bundle.Recommended = append(bundle.Recommended, domain.ScoredListing{
				ListingID: e.listing.ID,
				Score:     e.fit.Score,
			})
			continue
		}
		if i < cfg.RecommendedCount+cfg.CounterfactualCount {
			bundle.Counterfactuals = append(bundle.Counterfactuals, domain.Counterfactual{
				ListingID:    e.listing.ID,
				ReasonLabels: FailedLabels(e.fit),
			})
			continue
		}
		break
	}

	return bundle
}
