package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/shelfmate/book-recommendation-service/internal/domain"
)

// GET /api/search
func (h *Handler) SearchBooks(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeJSON(w, http.StatusOK, BookListResponse{Books: []domain.BookSummary{}})
		return
	}

	limit, ok := parseLimit(r, 10)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid limit parameter")
		return
	}

	books := h.service.SearchBooks(query, limit)
	if books == nil {
		books = []domain.BookSummary{}
	}
	writeJSON(w, http.StatusOK, BookListResponse{Books: books})
}

// GET /api/popular
func (h *Handler) GetPopularBooks(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(r, 5)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid limit parameter")
		return
	}

	books := h.service.GetPopularBooks(limit)
	if books == nil {
		books = []domain.BookSummary{}
	}
	writeJSON(w, http.StatusOK, BookListResponse{Books: books})
}

// GET /api/stats
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.GetStats())
}

// Parse and validate the limit query parameter.
func parseLimit(r *http.Request, fallback int) (int, bool) {
	limitStr := r.URL.Query().Get("limit")
	if limitStr == "" {
		return fallback, true
	}
	parsed, err := strconv.Atoi(limitStr)
	if err != nil || parsed < 1 || parsed > 100 {
		return 0, false
	}
	return parsed, true
}
