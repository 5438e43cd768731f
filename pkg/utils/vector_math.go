package utils

import (
	"math"
	"sort"
)

// CosineSimilarity returns the cosine of the angle between a and b, 0 when either is a zero vector.
// Vectors of different length are compared over their common prefix.
func CosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// TopKIndices returns the indices of the k highest scores, best first.
// Ties keep their original order so results are deterministic.
func TopKIndices(scores []float64, k int) []int {
	idxs := make([]int, len(scores))
	for i := range idxs {
		idxs[i] = i
	}
	sort.SliceStable(idxs, func(i, j int) bool {
		return scores[idxs[i]] > scores[idxs[j]]
	})
	if k >= 0 && k < len(idxs) {
		idxs = idxs[:k]
	}
	return idxs
}
