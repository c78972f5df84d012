package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/shelfmate/book-recommendation-service/internal/domain"
)

// POST /api/recommendations
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	var req RecommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "Request body must be valid JSON")
		return
	}

	title := strings.TrimSpace(req.BookTitle)
	if title == "" {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "book_title is required")
		return
	}

	strategy := req.Strategy
	if strategy == "" {
		strategy = domain.StrategyHybrid
	}

	n := req.N
	if n == 0 {
		n = 5
	}
	if n < 1 || n > 50 {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "n must be between 1 and 50")
		return
	}

	result, err := h.service.GetRecommendations(r.Context(), title, strategy, n)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownStrategy) {
			writeError(w, http.StatusBadRequest, "invalid_parameter",
				"strategy must be one of: hybrid, content, popularity")
			return
		}
		if errors.Is(err, domain.ErrBookNotFound) {
			writeError(w, http.StatusNotFound, "book_not_found", "Book not found in dataset")
			return
		}
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			writeError(w, http.StatusServiceUnavailable, "request_timeout",
				"Request timed out, please try again")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}

	writeJSON(w, http.StatusOK, RecommendationResponse{
		Recommendations: result.Recommendations,
		Metadata: domain.RecommendationMeta{
			CacheHit:    result.CacheHit,
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
			TotalCount:  len(result.Recommendations),
		},
	})
}
