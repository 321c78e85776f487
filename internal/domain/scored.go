package domain

// ScoredDocument attaches a transient relevance score to a document for one
// ranking operation. KeywordScore and VectorScore carry the normalized
// per-signal components in hybrid mode, kept for observability.
type ScoredDocument struct {
	Document     Document
	Score        float64
	KeywordScore float64
	VectorScore  float64
}
