package recommender

import (
	"sort"

	"github.com/shelfmate/book-recommendation-service/internal/catalog"
	"github.com/shelfmate/book-recommendation-service/internal/domain"
)

// overFetchFactor is how many times the requested count each strategy
// ranks before deduplication, to absorb duplicate collapsing.
const overFetchFactor = 3

// contentStrategy ranks candidates by cosine similarity of their feature
// vectors to the reference book. The similarity matrix is built eagerly
// at construction and read-only afterwards.
type contentStrategy struct {
	cat *catalog.Catalog
	sim [][]float64
	row map[int64]int
}

func newContentStrategy(cat *catalog.Catalog) *contentStrategy {
	books := cat.Books()
	row := make(map[int64]int, len(books))
	for i, b := range books {
		row[b.ID] = i
	}
	return &contentStrategy{
		cat: cat,
		sim: similarityMatrix(encodeFeatures(books)),
		row: row,
	}
}

func (s *contentStrategy) Recommend(bookID int64, n int) []domain.Recommendation {
	idx, ok := s.row[bookID]
	if !ok {
		return nil
	}
	sims := s.sim[idx]

	// Rank every book except the reference itself. Exclusion is by
	// identity, not by score rank: a distinct book tied with the 1.0
	// self-similarity must survive.
	order := make([]int, 0, len(sims)-1)
	for i := range sims {
		if i != idx {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(a, b int) bool {
		return sims[order[a]] > sims[order[b]]
	})
	if len(order) > n*overFetchFactor {
		order = order[:n*overFetchFactor]
	}

	books := s.cat.Books()
	candidates := make([]domain.Recommendation, 0, len(order))
	for _, i := range order {
		candidates = append(candidates, domain.Recommendation{
			BookID: books[i].ID,
			Title:  books[i].Title,
			Score:  sims[i],
		})
	}
	return dedupe(candidates, n, s.cat)
}
