package search

import (
	"context"

	"github.com/fuse-search/fuse/internal/domain"
)

// DocumentLister reads the full document set for scoring.
type DocumentLister interface {
	List(ctx context.Context) ([]domain.Document, error)
}

// Embedder vectorizes query text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
