package recommender

import (
	"sort"

	"github.com/shelfmate/book-recommendation-service/internal/catalog"
	"github.com/shelfmate/book-recommendation-service/internal/domain"
)

// hybridStrategy fuses content similarity with popularity. Popularity is
// normalized within the content-similar candidate pool, not globally, so
// a blockbuster that never entered the pool cannot swamp a genuinely
// similar book. The two-stage shape (content filter, then pool-relative
// popularity normalization) is deliberate and must not be flattened into
// a global normalization.
type hybridStrategy struct {
	cat              *catalog.Catalog
	content          *contentStrategy
	contentWeight    float64
	popularityWeight float64
}

func (s *hybridStrategy) Recommend(bookID int64, n int) []domain.Recommendation {
	pool := s.content.Recommend(bookID, n*overFetchFactor)
	if len(pool) == 0 {
		return nil
	}

	contentScores := make(map[int64]float64, len(pool))
	for _, rec := range pool {
		contentScores[rec.BookID] = rec.Score
	}

	maxPop := 0.0
	for _, b := range s.cat.Books() {
		if _, ok := contentScores[b.ID]; ok && b.PopularityScore > maxPop {
			maxPop = b.PopularityScore
		}
	}
	if maxPop == 0 {
		maxPop = 1.0
	}

	// Catalog iteration order here is what the stable sort falls back
	// to on score ties.
	combined := make([]domain.Recommendation, 0, len(pool))
	for _, b := range s.cat.Books() {
		contentScore, ok := contentScores[b.ID]
		if !ok {
			continue
		}
		combined = append(combined, domain.Recommendation{
			BookID: b.ID,
			Title:  b.Title,
			Score: s.contentWeight*contentScore +
				s.popularityWeight*(b.PopularityScore/maxPop),
		})
	}

	sort.SliceStable(combined, func(i, j int) bool {
		return combined[i].Score > combined[j].Score
	})
	return dedupe(combined, n, s.cat)
}
