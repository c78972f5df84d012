package recommender

import (
	"strings"
	"unicode"

	"github.com/shelfmate/book-recommendation-service/internal/catalog"
	"github.com/shelfmate/book-recommendation-service/internal/domain"
)

// dedupe collapses near-duplicate candidates (same normalized title and
// author), keeping the first occurrence of each key in the given
// score-sorted order. It exits as soon as n unique entries are collected;
// later candidates are never inspected. Candidates whose id no longer
// resolves in the catalog are skipped.
func dedupe(candidates []domain.Recommendation, n int, cat *catalog.Catalog) []domain.Recommendation {
	if n <= 0 {
		return nil
	}

	type key struct{ title, author string }
	seen := make(map[key]struct{}, n)
	unique := make([]domain.Recommendation, 0, n)

	for _, rec := range candidates {
		book, ok := cat.Get(rec.BookID)
		if !ok {
			continue
		}
		k := key{normalizeText(rec.Title), normalizeText(book.Author)}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		unique = append(unique, rec)
		if len(unique) >= n {
			break
		}
	}
	return unique
}

// normalizeText lowercases, strips punctuation, and collapses runs of
// whitespace, so "The Hobbit!" and "the hobbit" compare equal.
func normalizeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
