package recommender

import (
	"sort"

	"github.com/shelfmate/book-recommendation-service/internal/catalog"
	"github.com/shelfmate/book-recommendation-service/internal/domain"
)

// popularityStrategy ranks by the precomputed popularity score. It needs
// no reference book; the Strategy entry point ignores the id.
type popularityStrategy struct {
	cat *catalog.Catalog
}

func (s *popularityStrategy) Recommend(_ int64, n int) []domain.Recommendation {
	return s.ByGenre("", n)
}

// ByGenre ranks the catalog (or the books whose genre list contains the
// given genre, exact token match) by popularity score descending, ties
// broken by catalog order.
func (s *popularityStrategy) ByGenre(genre string, n int) []domain.Recommendation {
	if n <= 0 {
		return nil
	}

	var pool []domain.Book
	if genre == "" {
		pool = s.cat.Books()
	} else {
		for _, b := range s.cat.Books() {
			if containsGenre(b.Genres, genre) {
				pool = append(pool, b)
			}
		}
	}

	order := make([]int, len(pool))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return pool[order[a]].PopularityScore > pool[order[b]].PopularityScore
	})
	if len(order) > n*overFetchFactor {
		order = order[:n*overFetchFactor]
	}

	candidates := make([]domain.Recommendation, 0, len(order))
	for _, i := range order {
		candidates = append(candidates, domain.Recommendation{
			BookID: pool[i].ID,
			Title:  pool[i].Title,
			Score:  pool[i].PopularityScore,
		})
	}
	return dedupe(candidates, n, s.cat)
}

func containsGenre(genres []string, genre string) bool {
	for _, g := range genres {
		if g == genre {
			return true
		}
	}
	return false
}
