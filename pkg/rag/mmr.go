package rag

import "math"

// CosineSimilarity returns the cosine of the angle between a and b, or 0
// when either vector is zero or the dimensions disagree.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// MMR picks up to k candidate indices by maximal marginal relevance.
// Each round scores every unpicked candidate as
//
//	lambda*sim(candidate, query) - (1-lambda)*max sim(candidate, picked)
//
// and takes the best. Candidates are expected in descending query
// similarity order; ties keep that order, so lambda=1 reduces to plain
// cosine ranking.
func MMR(query []float32, candidates [][]float32, k int, lambda float64) []int {
	if k > len(candidates) {
		k = len(candidates)
	}
	if k <= 0 {
		return nil
	}

	querySim := make([]float64, len(candidates))
	for i, c := range candidates {
		querySim[i] = CosineSimilarity(query, c)
	}

	picked := make([]int, 0, k)
	used := make([]bool, len(candidates))

	for len(picked) < k {
		best := -1
		bestScore := math.Inf(-1)
		for i := range candidates {
			if used[i] {
				continue
			}
			var redundancy float64
			if len(picked) > 0 {
				redundancy = math.Inf(-1)
				for _, p := range picked {
					if sim := CosineSimilarity(candidates[i], candidates[p]); sim > redundancy {
						redundancy = sim
					}
				}
			}
			score := lambda*querySim[i] - (1-lambda)*redundancy
			if score > bestScore {
				bestScore = score
				best = i
			}
		}
		used[best] = true
		picked = append(picked, best)
	}
	return picked
}
