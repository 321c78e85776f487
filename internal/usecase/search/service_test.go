package search

import (
	"context"
	"errors"
	"testing"

	"github.com/fuse-search/fuse/internal/domain"
)

func TestSearch_EmptyQueryRejected(t *testing.T) {
	docs := &mockDocs{}
	svc := New(docs, &mockEmbedder{})

	for _, q := range []string{"", "   "} {
		_, err := svc.Search(context.Background(), q, ModeHybrid, 10)
		if !errors.Is(err, domain.ErrInvalidArgument) {
			t.Fatalf("query %q: expected ErrInvalidArgument, got %v", q, err)
		}
	}
	if docs.called {
		t.Error("no documents should be loaded for a rejected request")
	}
}

func TestSearch_UnsupportedMode(t *testing.T) {
	svc := New(&mockDocs{}, &mockEmbedder{})

	_, err := svc.Search(context.Background(), "query", Mode("fulltext"), 10)
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestSearch_KeywordMode(t *testing.T) {
	embed := &mockEmbedder{}
	svc := New(&mockDocs{docs: []domain.Document{
		doc("a", "Go concurrency patterns", "goroutines and channels", []float32{1, 0}),
		doc("b", "Rust ownership", "borrow checker", []float32{0, 1}),
		doc("c", "More Go", "go go go", []float32{1, 1}),
	}}, embed)

	results, err := svc.Search(context.Background(), "go", ModeKeyword, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// "b" scores zero and is excluded, "c" has the most occurrences.
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Document.ID() != "c" || results[1].Document.ID() != "a" {
		t.Errorf("unexpected order: %s, %s", results[0].Document.ID(), results[1].Document.ID())
	}
	if embed.called {
		t.Error("keyword mode must not call the embedder")
	}
}

func TestSearch_VectorMode(t *testing.T) {
	embed := &mockEmbedder{vec: []float32{1, 0}}
	svc := New(&mockDocs{docs: []domain.Document{
		doc("far", "", "", []float32{0, 1}),
		doc("near", "", "", []float32{1, 0}),
	}}, embed)

	results, err := svc.Search(context.Background(), "anything", ModeVector, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Document.ID() != "near" {
		t.Errorf("expected nearest document first, got %s", results[0].Document.ID())
	}
}

func TestSearch_VectorMode_UndefinedSimilarityRanksLast(t *testing.T) {
	embed := &mockEmbedder{vec: []float32{1, 0}}
	svc := New(&mockDocs{docs: []domain.Document{
		doc("zero", "", "", []float32{0, 0}),
		doc("negative", "", "", []float32{-1, 0}),
		doc("missing", "", "", nil),
	}}, embed)

	results, err := svc.Search(context.Background(), "anything", ModeVector, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	// The negative-but-defined similarity still outranks undefined ones.
	if results[0].Document.ID() != "negative" {
		t.Errorf("expected defined score first, got %s", results[0].Document.ID())
	}
	for _, r := range results[1:] {
		if r.Score != 0 {
			t.Errorf("undefined similarity must surface as score 0, got %v", r.Score)
		}
	}
}

func TestSearch_VectorMode_DimensionMismatchFatal(t *testing.T) {
	embed := &mockEmbedder{vec: []float32{1, 0, 0}}
	svc := New(&mockDocs{docs: []domain.Document{
		doc("short", "", "", []float32{1, 0}),
	}}, embed)

	_, err := svc.Search(context.Background(), "anything", ModeVector, 10)
	if !errors.Is(err, domain.ErrDimensionMismatch) {
		t.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestSearch_HybridMode(t *testing.T) {
	embed := &mockEmbedder{vec: []float32{1, 0}}
	svc := New(&mockDocs{docs: []domain.Document{
		doc("both", "go guide", "all about go", []float32{1, 0}),
		doc("vectorOnly", "something else", "unrelated", []float32{0.9, 0.1}),
	}}, embed)

	results, err := svc.Search(context.Background(), "go", ModeHybrid, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Document.ID() != "both" {
		t.Errorf("expected document matching both signals first, got %s", results[0].Document.ID())
	}
	if results[0].KeywordScore == 0 || results[0].VectorScore == 0 {
		t.Error("expected both score components populated for observability")
	}
	if results[1].KeywordScore != 0 {
		t.Errorf("vector-only document must carry zero keyword component, got %v", results[1].KeywordScore)
	}
}

func TestSearch_LimitAppliedAfterSorting(t *testing.T) {
	embed := &mockEmbedder{vec: []float32{1, 0}}
	svc := New(&mockDocs{docs: []domain.Document{
		doc("low", "", "", []float32{0, 1}),
		doc("high", "", "", []float32{1, 0}),
	}}, embed)

	results, err := svc.Search(context.Background(), "anything", ModeVector, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || results[0].Document.ID() != "high" {
		t.Fatalf("expected only the top document, got %v", results)
	}
}

func TestSearch_StripsEmbeddings(t *testing.T) {
	embed := &mockEmbedder{vec: []float32{1, 0}}
	svc := New(&mockDocs{docs: []domain.Document{
		doc("a", "go", "go", []float32{1, 0}),
	}}, embed)

	results, err := svc.Search(context.Background(), "go", ModeHybrid, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, r := range results {
		if r.Document.Embedding() != nil {
			t.Fatal("embeddings must not leave the search service")
		}
	}
}

func TestSearch_EmbedderErrorPropagates(t *testing.T) {
	embed := &mockEmbedder{err: domain.ErrEmbeddingProviderError}
	svc := New(&mockDocs{docs: []domain.Document{doc("a", "t", "d", []float32{1})}}, embed)

	_, err := svc.Search(context.Background(), "query", ModeVector, 10)
	if !errors.Is(err, domain.ErrEmbeddingProviderError) {
		t.Fatalf("expected ErrEmbeddingProviderError, got %v", err)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"keyword", ModeKeyword, false},
		{"vector", ModeVector, false},
		{"hybrid", ModeHybrid, false},
		{"", ModeHybrid, false},
		{"semantic", "", true},
	}
	for _, tt := range tests {
		t.Run("mode="+tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrInvalidArgument) {
					t.Fatalf("expected ErrInvalidArgument, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}
