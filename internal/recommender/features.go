package recommender

import "github.com/shelfmate/book-recommendation-service/internal/domain"

// encodeFeatures turns each book into a fixed-length vector:
// multi-hot genre columns, then page count normalized by the catalog
// maximum, then rating normalized to [0,1]. The genre vocabulary is the
// set of distinct genre tokens in first-appearance order; column layout
// is consistent across all rows by construction.
func encodeFeatures(books []domain.Book) [][]float64 {
	var vocab []string
	vocabIndex := make(map[string]int)
	for _, b := range books {
		for _, g := range b.Genres {
			if _, ok := vocabIndex[g]; !ok {
				vocabIndex[g] = len(vocab)
				vocab = append(vocab, g)
			}
		}
	}

	var maxPages float64
	for _, b := range books {
		if b.NumPages > maxPages {
			maxPages = b.NumPages
		}
	}

	dim := len(vocab) + 2
	features := make([][]float64, len(books))
	for i, b := range books {
		v := make([]float64, dim)
		for _, g := range b.Genres {
			v[vocabIndex[g]] = 1
		}
		if maxPages > 0 {
			v[len(vocab)] = b.NumPages / maxPages
		}
		v[len(vocab)+1] = b.AverageRating / 5.0
		features[i] = v
	}
	return features
}
