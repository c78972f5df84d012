package service

import (
	"context"
	"math"

	"github.com/rs/zerolog"
	"github.com/shelfmate/book-recommendation-service/internal/cache"
	"github.com/shelfmate/book-recommendation-service/internal/catalog"
	"github.com/shelfmate/book-recommendation-service/internal/domain"
	"github.com/shelfmate/book-recommendation-service/internal/recommender"
)

const (
	defaultLimit     = 5
	maxLimit         = 50
	maxGenresInReply = 3
)

// Service orchestrates the catalog, the recommendation engine, and the
// optional response cache. Everything it reads is immutable after
// startup, so a single instance serves concurrent requests.
type Service struct {
	catalog *catalog.Catalog
	engine  *recommender.Engine
	cache   *cache.Cache // nil when caching is disabled
	log     zerolog.Logger
}

func NewService(cat *catalog.Catalog, engine *recommender.Engine, c *cache.Cache, log zerolog.Logger) *Service {
	return &Service{
		catalog: cat,
		engine:  engine,
		cache:   c,
		log:     log,
	}
}

// GetRecommendations runs the named strategy for the title query and
// enriches the result with catalog attributes. Cache errors are logged
// and bypassed; a short result list is not an error.
func (s *Service) GetRecommendations(ctx context.Context, title, strategy string, n int) (*domain.RecommendationResult, error) {
	if n <= 0 {
		n = defaultLimit
	} else if n > maxLimit {
		n = maxLimit
	}

	if s.cache != nil {
		cached, found, err := s.cache.Get(ctx, title, strategy, n)
		if err != nil {
			s.log.Warn().Err(err).Str("title", title).Msg("cache get failed")
		}
		if found {
			return &domain.RecommendationResult{
				Recommendations: cached,
				CacheHit:        true,
			}, nil
		}
	}

	recs, err := s.engine.Recommend(title, strategy, n)
	if err != nil {
		return nil, err
	}
	enriched := s.enrich(recs)

	if s.cache != nil {
		if err := s.cache.Set(ctx, title, strategy, n, enriched); err != nil {
			s.log.Warn().Err(err).Str("title", title).Msg("cache set failed")
		}
	}

	return &domain.RecommendationResult{Recommendations: enriched}, nil
}

// enrich maps engine output to response entries, attaching author,
// rating, rating count, and up to three genres from the catalog. Ids
// that no longer resolve are dropped.
func (s *Service) enrich(recs []domain.Recommendation) []domain.ScoredBook {
	out := make([]domain.ScoredBook, 0, len(recs))
	for _, rec := range recs {
		book, ok := s.catalog.Get(rec.BookID)
		if !ok {
			continue
		}
		out = append(out, domain.ScoredBook{
			ID:         book.ID,
			Title:      rec.Title,
			Author:     book.Author,
			Rating:     book.AverageRating,
			NumRatings: book.NumRatings,
			Genres:     capGenres(book.Genres),
			Score:      math.Round(rec.Score*1000) / 1000, // 3 decimal places
		})
	}
	return out
}

// SearchBooks is a pass-through substring filter over the catalog.
func (s *Service) SearchBooks(query string, limit int) []domain.BookSummary {
	matches := s.catalog.SearchByTitle(query, limit)
	out := make([]domain.BookSummary, 0, len(matches))
	for _, b := range matches {
		out = append(out, domain.BookSummary{
			ID:         b.ID,
			Title:      b.Title,
			Author:     b.Author,
			Rating:     b.AverageRating,
			NumRatings: b.NumRatings,
			Genres:     capGenres(b.Genres),
		})
	}
	return out
}

// GetPopularBooks lists the top books by precomputed popularity score.
func (s *Service) GetPopularBooks(limit int) []domain.BookSummary {
	top := s.catalog.TopByPopularity(limit)
	out := make([]domain.BookSummary, 0, len(top))
	for _, b := range top {
		out = append(out, domain.BookSummary{
			ID:              b.ID,
			Title:           b.Title,
			Author:          b.Author,
			Rating:          b.AverageRating,
			NumRatings:      b.NumRatings,
			Genres:          capGenres(b.Genres),
			PopularityScore: b.PopularityScore,
		})
	}
	return out
}

// GetStats aggregates catalog-wide counts.
func (s *Service) GetStats() domain.CatalogStats {
	return s.catalog.Stats()
}

func capGenres(genres []string) []string {
	if genres == nil {
		return []string{}
	}
	if len(genres) > maxGenresInReply {
		return genres[:maxGenresInReply]
	}
	return genres
}
