package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shelfmate/book-recommendation-service/internal/catalog"
	"github.com/shelfmate/book-recommendation-service/internal/recommender"
	"github.com/shelfmate/book-recommendation-service/internal/service"
)

func testHandler() *Handler {
	cat := catalog.Build([]catalog.Record{
		{ID: 1, Title: "Dune", Author: "Frank Herbert", Genres: []string{"SciFi"}, AverageRating: 4.5, NumRatings: 1000, NumPages: 400},
		{ID: 2, Title: "Dune Messiah", Author: "Frank Herbert", Genres: []string{"SciFi"}, AverageRating: 4.0, NumRatings: 500, NumPages: 300},
		{ID: 3, Title: "Emma", Author: "Jane Austen", Genres: []string{"Romance"}, AverageRating: 4.2, NumRatings: 800, NumPages: 350},
	})
	engine := recommender.New(cat, recommender.DefaultParams())
	return NewHandler(service.NewService(cat, engine, nil, zerolog.Nop()))
}

func postRecommendations(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/recommendations", strings.NewReader(body))
	w := httptest.NewRecorder()
	testHandler().GetRecommendations(w, req)
	return w
}

func TestGetRecommendationsOK(t *testing.T) {
	w := postRecommendations(t, `{"book_title":"Dune","strategy":"hybrid","n":2}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}

	var resp RecommendationResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Metadata.TotalCount != len(resp.Recommendations) {
		t.Errorf("metadata count %d != %d results", resp.Metadata.TotalCount, len(resp.Recommendations))
	}
	if len(resp.Recommendations) != 2 || resp.Recommendations[0].ID != 2 {
		t.Errorf("unexpected recommendations: %+v", resp.Recommendations)
	}
}

func TestGetRecommendationsValidation(t *testing.T) {
	cases := []struct {
		name string
		body string
		code int
	}{
		{"missing title", `{"strategy":"content","n":5}`, http.StatusBadRequest},
		{"whitespace title", `{"book_title":"   ","strategy":"content"}`, http.StatusBadRequest},
		{"bad strategy", `{"book_title":"Dune","strategy":"bogus"}`, http.StatusBadRequest},
		{"bad strategy with bad title", `{"book_title":"no such","strategy":"bogus"}`, http.StatusBadRequest},
		{"n too large", `{"book_title":"Dune","n":51}`, http.StatusBadRequest},
		{"n negative", `{"book_title":"Dune","n":-2}`, http.StatusBadRequest},
		{"unknown book", `{"book_title":"no such book"}`, http.StatusNotFound},
		{"not json", `nope`, http.StatusBadRequest},
	}
	for _, c := range cases {
		if w := postRecommendations(t, c.body); w.Code != c.code {
			t.Errorf("%s: status = %d, want %d", c.name, w.Code, c.code)
		}
	}
}

func TestSearchBooksHandler(t *testing.T) {
	h := testHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/search?q=dune", nil)
	w := httptest.NewRecorder()
	h.SearchBooks(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp BookListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Books) != 2 {
		t.Errorf("expected 2 books, got %d", len(resp.Books))
	}

	// Empty query is an empty list, not an error.
	req = httptest.NewRequest(http.MethodGet, "/api/search", nil)
	w = httptest.NewRecorder()
	h.SearchBooks(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("empty query status = %d, want 200", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/search?q=dune&limit=0", nil)
	w = httptest.NewRecorder()
	h.SearchBooks(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("limit=0 status = %d, want 400", w.Code)
	}
}

func TestGetPopularBooksHandler(t *testing.T) {
	h := testHandler()
	req := httptest.NewRequest(http.MethodGet, "/api/popular?limit=1", nil)
	w := httptest.NewRecorder()
	h.GetPopularBooks(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp BookListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Books) != 1 || resp.Books[0].ID != 1 {
		t.Errorf("expected Dune as the single most popular book, got %+v", resp.Books)
	}
}

func TestGetStatsHandler(t *testing.T) {
	h := testHandler()
	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	w := httptest.NewRecorder()
	h.GetStats(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var stats map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if stats["total_books"].(float64) != 3 {
		t.Errorf("total_books = %v, want 3", stats["total_books"])
	}
}
