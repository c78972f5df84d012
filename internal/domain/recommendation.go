package domain

// Strategy names accepted by the engine.
const (
	StrategyContent    = "content"
	StrategyPopularity = "popularity"
	StrategyHybrid     = "hybrid"
)

// Recommendation is the engine's output unit: a catalog id with the
// strategy-dependent score that ranked it.
type Recommendation struct {
	BookID int64   `json:"book_id"`
	Title  string  `json:"title"`
	Score  float64 `json:"score"`
}

// ScoredBook is a recommendation enriched with catalog attributes for
// API responses. Genres is capped at three entries.
type ScoredBook struct {
	ID         int64    `json:"id"`
	Title      string   `json:"title"`
	Author     string   `json:"author"`
	Rating     float64  `json:"rating"`
	NumRatings int64    `json:"num_ratings"`
	Genres     []string `json:"genres"`
	Score      float64  `json:"score"`
}

// BookSummary is the search/popular listing shape.
type BookSummary struct {
	ID              int64    `json:"id"`
	Title           string   `json:"title"`
	Author          string   `json:"author"`
	Rating          float64  `json:"rating"`
	NumRatings      int64    `json:"num_ratings"`
	Genres          []string `json:"genres"`
	PopularityScore float64  `json:"popularity_score,omitempty"`
}

// CatalogStats aggregates catalog-wide counts for the stats endpoint.
type CatalogStats struct {
	TotalBooks    int     `json:"total_books"`
	AverageRating float64 `json:"average_rating"`
	TotalRatings  int64   `json:"total_ratings"`
	UniqueAuthors int     `json:"unique_authors"`
	AvgPages      int     `json:"avg_pages"`
}

// RecommendationResult carries the recommendations plus cache provenance.
type RecommendationResult struct {
	Recommendations []ScoredBook
	CacheHit        bool
}

// RecommendationMeta is response metadata for recommendation payloads.
type RecommendationMeta struct {
	CacheHit    bool   `json:"cache_hit"`
	GeneratedAt string `json:"generated_at"`
	TotalCount  int    `json:"total_count"`
}
