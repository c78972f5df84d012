package recommender

import "math"

// similarityMatrix computes the dense pairwise cosine-similarity matrix
// over the feature vectors. O(N^2 * D) time and O(N^2) space: this is the
// dominant cost of engine construction and the known scalability limit of
// the dense approach. Acceptable for catalogs up to the tens of thousands
// that fit in memory; larger catalogs would need an approximate
// nearest-neighbor index instead.
func similarityMatrix(features [][]float64) [][]float64 {
	n := len(features)
	norms := make([]float64, n)
	for i, v := range features {
		var sum float64
		for _, x := range v {
			sum += x * x
		}
		norms[i] = math.Sqrt(sum)
	}

	sim := make([][]float64, n)
	for i := range sim {
		sim[i] = make([]float64, n)
		sim[i][i] = 1.0
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			s := cosine(features[i], features[j], norms[i], norms[j])
			sim[i][j] = s
			sim[j][i] = s
		}
	}
	return sim
}

// cosine is the normalized dot product of u and v. A zero-norm vector
// (a book with no genres, no pages, and a zero rating) has similarity 0
// to everything rather than dividing by zero.
func cosine(u, v []float64, normU, normV float64) float64 {
	if normU == 0 || normV == 0 {
		return 0
	}
	var dot float64
	for i := range u {
		dot += u[i] * v[i]
	}
	return dot / (normU * normV)
}
