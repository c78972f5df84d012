package recommender

import (
	"errors"
	"testing"

	"github.com/shelfmate/book-recommendation-service/internal/catalog"
	"github.com/shelfmate/book-recommendation-service/internal/domain"
)

func testCatalog() *catalog.Catalog {
	return catalog.Build([]catalog.Record{
		{ID: 1, Title: "Dune", Author: "Frank Herbert", Genres: []string{"SciFi"}, AverageRating: 4.5, NumRatings: 1000, NumPages: 400},
		{ID: 2, Title: "Dune Messiah", Author: "Frank Herbert", Genres: []string{"SciFi"}, AverageRating: 4.0, NumRatings: 500, NumPages: 300},
		{ID: 3, Title: "Emma", Author: "Jane Austen", Genres: []string{"Romance"}, AverageRating: 4.2, NumRatings: 800, NumPages: 350},
	})
}

func testEngine() *Engine {
	return New(testCatalog(), DefaultParams())
}

func TestSelfSimilarityIsOne(t *testing.T) {
	s := newContentStrategy(testCatalog())
	for i := range s.sim {
		if s.sim[i][i] != 1.0 {
			t.Errorf("sim[%d][%d] = %f, want 1.0", i, i, s.sim[i][i])
		}
	}
}

func TestSimilarityMatrixSymmetry(t *testing.T) {
	s := newContentStrategy(testCatalog())
	for i := range s.sim {
		for j := range s.sim[i] {
			if s.sim[i][j] != s.sim[j][i] {
				t.Errorf("sim[%d][%d] = %f but sim[%d][%d] = %f", i, j, s.sim[i][j], j, i, s.sim[j][i])
			}
		}
	}
}

func TestZeroNormVectorSimilarity(t *testing.T) {
	cat := catalog.Build([]catalog.Record{
		{ID: 1, Title: "Blank", Author: "Nobody", AverageRating: 0, NumRatings: 0, NumPages: 0},
		{ID: 2, Title: "Something", Author: "Someone", Genres: []string{"Fiction"}, AverageRating: 4.0, NumRatings: 10, NumPages: 200},
	})
	s := newContentStrategy(cat)
	if s.sim[0][1] != 0 {
		t.Errorf("similarity against zero-norm vector = %f, want 0", s.sim[0][1])
	}
	if s.sim[0][0] != 1.0 {
		t.Errorf("self-similarity of zero-norm vector = %f, want 1.0", s.sim[0][0])
	}
}

func TestContentExcludesReference(t *testing.T) {
	s := newContentStrategy(testCatalog())
	recs := s.Recommend(1, 10)
	for _, r := range recs {
		if r.BookID == 1 {
			t.Error("content strategy returned the reference book")
		}
	}
}

func TestContentExcludesTwinByIdentityOnly(t *testing.T) {
	// Two books with identical feature vectors: the reference must be
	// excluded but its perfect-score twin must survive.
	cat := catalog.Build([]catalog.Record{
		{ID: 1, Title: "Original", Author: "A", Genres: []string{"SciFi"}, AverageRating: 4.0, NumRatings: 100, NumPages: 300},
		{ID: 2, Title: "Twin", Author: "B", Genres: []string{"SciFi"}, AverageRating: 4.0, NumRatings: 100, NumPages: 300},
		{ID: 3, Title: "Other", Author: "C", Genres: []string{"Romance"}, AverageRating: 3.0, NumRatings: 50, NumPages: 200},
	})
	s := newContentStrategy(cat)
	recs := s.Recommend(1, 3)
	if len(recs) == 0 || recs[0].BookID != 2 {
		t.Fatalf("expected the identical twin first, got %+v", recs)
	}
}

func TestContentSharedGenreRanksHigher(t *testing.T) {
	s := newContentStrategy(testCatalog())
	recs := s.Recommend(1, 1)
	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(recs))
	}
	if recs[0].BookID != 2 {
		t.Errorf("expected Dune Messiah (id 2) first, got id %d", recs[0].BookID)
	}
}

func TestContentUnknownBookID(t *testing.T) {
	s := newContentStrategy(testCatalog())
	if recs := s.Recommend(99, 5); len(recs) != 0 {
		t.Errorf("expected empty result for unknown id, got %d", len(recs))
	}
}

func TestPopularityTopByRatings(t *testing.T) {
	e := testEngine()
	recs, err := e.Recommend("Emma", domain.StrategyPopularity, 1)
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if len(recs) != 1 || recs[0].BookID != 1 {
		t.Errorf("expected Dune (id 1) as most popular, got %+v", recs)
	}
}

func TestPopularityGenreFilter(t *testing.T) {
	cat := testCatalog()
	s := &popularityStrategy{cat: cat}
	recs := s.ByGenre("SciFi", 10)
	if len(recs) != 2 {
		t.Fatalf("expected 2 SciFi books, got %d", len(recs))
	}
	for _, r := range recs {
		book, _ := cat.Get(r.BookID)
		if !containsGenre(book.Genres, "SciFi") {
			t.Errorf("book %d lacks the filtered genre", r.BookID)
		}
	}
}

func TestPopularityGenreFilterIsCaseSensitive(t *testing.T) {
	s := &popularityStrategy{cat: testCatalog()}
	if recs := s.ByGenre("scifi", 10); len(recs) != 0 {
		t.Errorf("genre match must be exact, got %d results", len(recs))
	}
}

func TestHybridRanksSharedGenreHigher(t *testing.T) {
	e := testEngine()
	recs, err := e.Recommend("Dune", domain.StrategyHybrid, 2)
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(recs))
	}
	if recs[0].BookID != 2 || recs[1].BookID != 3 {
		t.Errorf("expected order [2 3], got [%d %d]", recs[0].BookID, recs[1].BookID)
	}
	if recs[0].Score <= recs[1].Score {
		t.Errorf("scores not descending: %f <= %f", recs[0].Score, recs[1].Score)
	}
}

func TestHybridSubsetOfContentPool(t *testing.T) {
	cat := testCatalog()
	content := newContentStrategy(cat)
	hybrid := &hybridStrategy{cat: cat, content: content, contentWeight: 0.7, popularityWeight: 0.3}

	pool := make(map[int64]bool)
	for _, r := range content.Recommend(1, 2*overFetchFactor) {
		pool[r.BookID] = true
	}
	for _, r := range hybrid.Recommend(1, 2) {
		if !pool[r.BookID] {
			t.Errorf("hybrid introduced id %d from outside the content pool", r.BookID)
		}
	}
}

func TestHybridUnknownBookID(t *testing.T) {
	cat := testCatalog()
	hybrid := &hybridStrategy{cat: cat, content: newContentStrategy(cat), contentWeight: 0.7, popularityWeight: 0.3}
	if recs := hybrid.Recommend(99, 5); len(recs) != 0 {
		t.Errorf("expected empty result for unknown id, got %d", len(recs))
	}
}

func TestRecommendTitleNotFound(t *testing.T) {
	e := testEngine()
	for _, title := range []string{"", "   ", "no such book"} {
		_, err := e.Recommend(title, domain.StrategyContent, 5)
		if !errors.Is(err, domain.ErrBookNotFound) {
			t.Errorf("title %q: expected ErrBookNotFound, got %v", title, err)
		}
	}
}

func TestRecommendUnknownStrategy(t *testing.T) {
	e := testEngine()
	// Unknown strategy wins over title validity, valid or not.
	for _, title := range []string{"Dune", "no such book"} {
		_, err := e.Recommend(title, "bogus", 5)
		if !errors.Is(err, domain.ErrUnknownStrategy) {
			t.Errorf("title %q: expected ErrUnknownStrategy, got %v", title, err)
		}
	}
}

func TestRecommendFirstMatchWins(t *testing.T) {
	// "Dune" substring-matches both id 1 and id 2; catalog order picks 1,
	// so the reference book is Dune and id 2 leads the results.
	e := testEngine()
	recs, err := e.Recommend("dune", domain.StrategyContent, 2)
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if len(recs) == 0 || recs[0].BookID != 2 {
		t.Errorf("expected id 2 first (reference resolved to id 1), got %+v", recs)
	}
}

func TestScoresSortedDescending(t *testing.T) {
	e := testEngine()
	for _, strategy := range []string{domain.StrategyContent, domain.StrategyPopularity, domain.StrategyHybrid} {
		recs, err := e.Recommend("Dune", strategy, 5)
		if err != nil {
			t.Fatalf("%s: Recommend failed: %v", strategy, err)
		}
		for i := 1; i < len(recs); i++ {
			if recs[i-1].Score < recs[i].Score {
				t.Errorf("%s: scores not descending at %d: %f < %f",
					strategy, i, recs[i-1].Score, recs[i].Score)
			}
		}
	}
}

func TestEngineOnEmptyCatalog(t *testing.T) {
	e := New(catalog.Build(nil), DefaultParams())
	_, err := e.Recommend("anything", domain.StrategyContent, 5)
	if !errors.Is(err, domain.ErrBookNotFound) {
		t.Errorf("expected ErrBookNotFound on empty catalog, got %v", err)
	}
	if recs := e.PopularByGenre("", 5); len(recs) != 0 {
		t.Errorf("expected no popular books on empty catalog, got %d", len(recs))
	}
}
