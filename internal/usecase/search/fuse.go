package search

import (
	"sort"

	"github.com/fuse-search/fuse/internal/domain"
)

// rawScore pairs a document with an unnormalized score from one signal.
type rawScore struct {
	doc   domain.Document
	score float64
}

// fuseWeighted merges keyword and vector rankings into one blended ranking.
//
// Each list is max-normalized to [0,1] by dividing by its highest score, so
// the top entry of each signal always lands at 1. A document present in both
// lists contributes a single entry with both components combined:
//
//	hybrid(d) = kwNorm(d)*keywordWeight + vecNorm(d)*vectorWeight
//
// Ties keep first-seen insertion order (keyword list first, then vector
// list), which makes the ranking deterministic for equal scores.
func fuseWeighted(keyword, vec []rawScore, keywordWeight, vectorWeight float64) []domain.ScoredDocument {
	maxKeyword := maxScore(keyword)
	maxVector := maxScore(vec)

	merged := make([]domain.ScoredDocument, 0, len(keyword)+len(vec))
	index := make(map[string]int, len(keyword)+len(vec))

	for _, r := range keyword {
		n := r.score / maxKeyword
		index[r.doc.ID()] = len(merged)
		merged = append(merged, domain.ScoredDocument{
			Document:     r.doc,
			KeywordScore: n,
			Score:        n * keywordWeight,
		})
	}

	for _, r := range vec {
		n := r.score / maxVector
		if i, ok := index[r.doc.ID()]; ok {
			merged[i].VectorScore = n
			merged[i].Score = merged[i].KeywordScore*keywordWeight + n*vectorWeight
			continue
		}
		index[r.doc.ID()] = len(merged)
		merged = append(merged, domain.ScoredDocument{
			Document:    r.doc,
			VectorScore: n,
			Score:       n * vectorWeight,
		})
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Score > merged[j].Score
	})

	return merged
}

// maxScore returns the normalization divisor for a score list: the maximum
// score, or 1 when the list is empty or all-zero so callers never divide by
// zero.
func maxScore(list []rawScore) float64 {
	m := 0.0
	for _, r := range list {
		if r.score > m {
			m = r.score
		}
	}
	if m <= 0 {
		return 1
	}
	return m
}
