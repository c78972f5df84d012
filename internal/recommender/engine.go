// Package recommender implements the book recommendation engine: feature
// encoding, pairwise cosine similarity, and the three interchangeable
// ranking strategies (content, popularity, hybrid) with shared
// near-duplicate suppression.
package recommender

import (
	"github.com/shelfmate/book-recommendation-service/internal/catalog"
	"github.com/shelfmate/book-recommendation-service/internal/domain"
)

// Strategy ranks recommendations for a reference book. Implementations
// are read-only after construction and safe for concurrent calls.
type Strategy interface {
	Recommend(bookID int64, n int) []domain.Recommendation
}

// Params are the hybrid fusion weights. They need not sum to 1 but
// conventionally do.
type Params struct {
	ContentWeight    float64
	PopularityWeight float64
}

// DefaultParams returns the reference weighting: 0.7 content, 0.3
// popularity.
func DefaultParams() Params {
	return Params{ContentWeight: 0.7, PopularityWeight: 0.3}
}

// Engine resolves a title to a catalog entry and dispatches to the
// selected strategy. Construction is the expensive step: the full dense
// similarity matrix is built eagerly here. Everything is read-only
// afterwards, so a single Engine serves concurrent requests without
// locking; replacing the catalog means building a new Engine and
// swapping it in, never mutating in place.
type Engine struct {
	cat        *catalog.Catalog
	strategies map[string]Strategy
	popularity *popularityStrategy
}

// New builds an Engine over a finalized catalog.
func New(cat *catalog.Catalog, p Params) *Engine {
	content := newContentStrategy(cat)
	popularity := &popularityStrategy{cat: cat}
	hybrid := &hybridStrategy{
		cat:              cat,
		content:          content,
		contentWeight:    p.ContentWeight,
		popularityWeight: p.PopularityWeight,
	}
	return &Engine{
		cat: cat,
		strategies: map[string]Strategy{
			domain.StrategyContent:    content,
			domain.StrategyPopularity: popularity,
			domain.StrategyHybrid:     hybrid,
		},
		popularity: popularity,
	}
}

// Recommend resolves the title (case-insensitive substring, first match
// in catalog order wins) and runs the named strategy. The strategy name
// is checked before title resolution so an unknown strategy reports as
// such regardless of title validity.
func (e *Engine) Recommend(title, strategy string, n int) ([]domain.Recommendation, error) {
	s, ok := e.strategies[strategy]
	if !ok {
		return nil, domain.ErrUnknownStrategy
	}
	book, found := e.cat.FirstMatch(title)
	if !found {
		return nil, domain.ErrBookNotFound
	}
	return s.Recommend(book.ID, n), nil
}

// PopularByGenre exposes the popularity strategy's genre filter, which
// needs no reference book.
func (e *Engine) PopularByGenre(genre string, n int) []domain.Recommendation {
	return e.popularity.ByGenre(genre, n)
}
