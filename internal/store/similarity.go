package store

import "math"

// mismatchScore is returned when two vectors have different lengths, so a
// record written by an older embedding model never ranks first and never
// breaks search.
const mismatchScore = -1

// Cosine returns the cosine similarity of a and b in [-1, 1].
// Vectors of different lengths score -1; a zero-norm vector scores 0,
// keeping the ordering total (no NaN).
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) {
		return mismatchScore
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
