package domain

// Book is a finalized catalog entry. All fields are populated during the
// catalog build (missing pages imputed, popularity derived); books are
// read-only afterwards.
type Book struct {
	ID              int64    `json:"id"`
	Title           string   `json:"title"`
	Author          string   `json:"author"`
	Genres          []string `json:"genres"`
	AverageRating   float64  `json:"average_rating"`
	NumRatings      int64    `json:"num_ratings"`
	NumReviews      int64    `json:"num_reviews"`
	NumPages        float64  `json:"num_pages"`
	PopularityScore float64  `json:"popularity_score"`
}
