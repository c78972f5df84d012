package handler

import "github.com/shelfmate/book-recommendation-service/internal/domain"

type RecommendationRequest struct {
	BookTitle string `json:"book_title"`
	Strategy  string `json:"strategy"`
	N         int    `json:"n"`
}

type RecommendationResponse struct {
	Recommendations []domain.ScoredBook       `json:"recommendations"`
	Metadata        domain.RecommendationMeta `json:"metadata"`
}

type BookListResponse struct {
	Books []domain.BookSummary `json:"books"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
