package search

import (
	"context"

	"github.com/fuse-search/fuse/internal/domain"
)

// --- Mocks ---

type mockDocs struct {
	docs   []domain.Document
	err    error
	called bool
}

func (m *mockDocs) List(_ context.Context) ([]domain.Document, error) {
	m.called = true
	return m.docs, m.err
}

type mockEmbedder struct {
	vec    []float32
	err    error
	called bool
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	m.called = true
	if m.err != nil {
		return domain.EmbeddingResult{}, m.err
	}
	return domain.EmbeddingResult{Embedding: m.vec}, nil
}

func doc(id, title, description string, embedding []float32) domain.Document {
	return domain.ReconstructDocument(id, title, description, nil, embedding)
}
