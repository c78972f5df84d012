package catalog

import (
	"math"
	"sort"
	"strings"

	"github.com/shelfmate/book-recommendation-service/internal/domain"
)

// Record is a raw book row from a source (CSV file or Postgres) before
// finalization. AverageRating and NumPages use NaN for missing values.
type Record struct {
	ID            int64
	Title         string
	Author        string
	Genres        []string
	NumRatings    int64
	NumReviews    int64
	AverageRating float64
	NumPages      float64
}

// Catalog is the immutable, ordered book collection the engine operates
// over. Ids need not be contiguous; iteration order is source order.
// Safe for concurrent reads after Build.
type Catalog struct {
	books []domain.Book
	index map[int64]int
}

// Build finalizes raw records into a Catalog: drops rows missing title,
// author, or rating, imputes missing page counts with the catalog median,
// and derives the popularity score
// (0.6 * num_ratings/max_num_ratings + 0.4 * average_rating/5).
func Build(records []Record) *Catalog {
	kept := make([]Record, 0, len(records))
	for _, r := range records {
		if r.Title == "" || r.Author == "" || math.IsNaN(r.AverageRating) {
			continue
		}
		kept = append(kept, r)
	}

	medianPages := medianKnownPages(kept)

	var maxRatings int64
	for _, r := range kept {
		if r.NumRatings > maxRatings {
			maxRatings = r.NumRatings
		}
	}

	c := &Catalog{
		books: make([]domain.Book, 0, len(kept)),
		index: make(map[int64]int, len(kept)),
	}
	for _, r := range kept {
		pages := r.NumPages
		if math.IsNaN(pages) {
			pages = medianPages
		}
		genres := r.Genres
		if genres == nil {
			genres = []string{}
		}

		popularity := 0.0
		if maxRatings > 0 {
			popularity = 0.6*(float64(r.NumRatings)/float64(maxRatings)) +
				0.4*(r.AverageRating/5.0)
		}

		c.index[r.ID] = len(c.books)
		c.books = append(c.books, domain.Book{
			ID:              r.ID,
			Title:           r.Title,
			Author:          r.Author,
			Genres:          genres,
			AverageRating:   r.AverageRating,
			NumRatings:      r.NumRatings,
			NumReviews:      r.NumReviews,
			NumPages:        pages,
			PopularityScore: popularity,
		})
	}
	return c
}

func medianKnownPages(records []Record) float64 {
	known := make([]float64, 0, len(records))
	for _, r := range records {
		if !math.IsNaN(r.NumPages) {
			known = append(known, r.NumPages)
		}
	}
	if len(known) == 0 {
		return 0
	}
	sort.Float64s(known)
	mid := len(known) / 2
	if len(known)%2 == 0 {
		return (known[mid-1] + known[mid]) / 2
	}
	return known[mid]
}

// Len reports the number of books.
func (c *Catalog) Len() int {
	return len(c.books)
}

// Books returns the ordered book slice. Callers must not mutate it.
func (c *Catalog) Books() []domain.Book {
	return c.books
}

// Get looks up a book by id.
func (c *Catalog) Get(id int64) (domain.Book, bool) {
	i, ok := c.index[id]
	if !ok {
		return domain.Book{}, false
	}
	return c.books[i], true
}

// FirstMatch resolves a title query to the first book, in catalog order,
// whose title contains the query case-insensitively. The first match wins
// even when a later book matches more exactly.
func (c *Catalog) FirstMatch(query string) (domain.Book, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return domain.Book{}, false
	}
	for _, b := range c.books {
		if strings.Contains(strings.ToLower(b.Title), q) {
			return b, true
		}
	}
	return domain.Book{}, false
}

// SearchByTitle returns up to limit books whose titles contain the query
// case-insensitively, in catalog order.
func (c *Catalog) SearchByTitle(query string, limit int) []domain.Book {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || limit <= 0 {
		return nil
	}
	var matches []domain.Book
	for _, b := range c.books {
		if strings.Contains(strings.ToLower(b.Title), q) {
			matches = append(matches, b)
			if len(matches) >= limit {
				break
			}
		}
	}
	return matches
}

// TopByPopularity returns up to limit books ordered by popularity score
// descending, ties broken by catalog order.
func (c *Catalog) TopByPopularity(limit int) []domain.Book {
	if limit <= 0 {
		return nil
	}
	ranked := make([]domain.Book, len(c.books))
	copy(ranked, c.books)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].PopularityScore > ranked[j].PopularityScore
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// Stats aggregates catalog-wide counts. Pure aggregation, no engine
// involvement.
func (c *Catalog) Stats() domain.CatalogStats {
	stats := domain.CatalogStats{TotalBooks: len(c.books)}
	if len(c.books) == 0 {
		return stats
	}

	authors := make(map[string]struct{}, len(c.books))
	var ratingSum, pageSum float64
	for _, b := range c.books {
		ratingSum += b.AverageRating
		pageSum += b.NumPages
		stats.TotalRatings += b.NumRatings
		authors[b.Author] = struct{}{}
	}

	n := float64(len(c.books))
	stats.AverageRating = math.Round(ratingSum/n*100) / 100
	stats.AvgPages = int(pageSum / n)
	stats.UniqueAuthors = len(authors)
	return stats
}
