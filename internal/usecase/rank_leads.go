package usecase

import (
	"sort"
	"time"

	"github.com/max-knopp/intellio/internal/entity"
)

type SortMode string

const (
	// SortRecencyThenScore orders hot before warm before cold, breaking ties
	// by relevance score descending.
	SortRecencyThenScore SortMode = "recency_score"
	// SortScoreThenRecency orders by relevance score descending, breaking
	// ties by recency bucket.
	SortScoreThenRecency SortMode = "score_recency"
)

func (m SortMode) Valid() bool {
	return m == SortRecencyThenScore || m == SortScoreThenRecency
}

// RankLeads returns a new slice ordered for display. The sort is stable:
// leads tied on both keys keep their input order. The input is not mutated.
func RankLeads(leads []entity.Lead, mode SortMode, now time.Time) []entity.Lead {
	ranked := make([]entity.Lead, len(leads))
	copy(ranked, leads)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := &ranked[i], &ranked[j]
		recA := entity.ClassifyRecency(a.EffectiveDate(), now)
		recB := entity.ClassifyRecency(b.EffectiveDate(), now)
		scoreA, scoreB := a.ScoreOrZero(), b.ScoreOrZero()

		switch mode {
		case SortScoreThenRecency:
			if scoreA != scoreB {
				return scoreA > scoreB
			}
			return recA < recB
		default: // SortRecencyThenScore
			if recA != recB {
				return recA < recB
			}
			return scoreA > scoreB
		}
	})

	return ranked
}
