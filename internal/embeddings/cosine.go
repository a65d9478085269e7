package embeddings

import "math"

// CosineSimilarity computes the cosine of the angle between two vectors:
// (A · B) / (||A|| * ||B||). For embedding vectors the result is typically
// in [0, 1].
//
// Returns 0.0 for invalid inputs: empty vectors, vectors of different
// lengths, or zero-magnitude vectors.
func CosineSimilarity(vec1, vec2 []float32) float64 {
	if len(vec1) == 0 || len(vec2) == 0 {
		return 0.0
	}
	if len(vec1) != len(vec2) {
		return 0.0
	}

	var dot, mag1, mag2 float64
	for i := range vec1 {
		v1 := float64(vec1[i])
		v2 := float64(vec2[i])
		dot += v1 * v2
		mag1 += v1 * v1
		mag2 += v2 * v2
	}

	if mag1 == 0.0 || mag2 == 0.0 {
		return 0.0
	}
	return dot / (math.Sqrt(mag1) * math.Sqrt(mag2))
}
