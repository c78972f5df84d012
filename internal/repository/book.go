package repository

import (
	"context"
	"fmt"
	"math"

	"github.com/shelfmate/book-recommendation-service/internal/catalog"
)

// ListBooks fetches every book row in id order as raw catalog records.
// NULL ratings and page counts come back as NaN so the catalog build can
// drop or impute them the same way it does for CSV rows.
func (r *Repository) ListBooks(ctx context.Context) ([]catalog.Record, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, author, genres, num_ratings, num_reviews, average_rating, num_pages
		FROM books
		ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("query books: %w", err)
	}
	defer rows.Close()

	var records []catalog.Record
	for rows.Next() {
		var (
			rec    catalog.Record
			rating *float64
			pages  *float64
		)
		err := rows.Scan(&rec.ID, &rec.Title, &rec.Author, &rec.Genres,
			&rec.NumRatings, &rec.NumReviews, &rating, &pages)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		rec.AverageRating = math.NaN()
		if rating != nil {
			rec.AverageRating = *rating
		}
		rec.NumPages = math.NaN()
		if pages != nil {
			rec.NumPages = *pages
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate over books: %w", err)
	}
	return records, nil
}

// CountBooks reports the number of book rows, used to decide whether
// seeding is needed.
func (r *Repository) CountBooks(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM books").Scan(&count); err != nil {
		return 0, fmt.Errorf("count books: %w", err)
	}
	return count, nil
}
