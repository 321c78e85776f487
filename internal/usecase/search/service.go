package search

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/fuse-search/fuse/internal/domain"
	"github.com/fuse-search/fuse/internal/domain/vector"
)

// Default blend weights for hybrid mode.
const (
	DefaultKeywordWeight = 0.3
	DefaultVectorWeight  = 0.7
)

// Service ranks documents for a query across keyword, vector, and hybrid modes.
type Service struct {
	docs          DocumentLister
	embed         Embedder
	keywordWeight float64
	vectorWeight  float64
	fields        []string
}

// New creates a search service with default blend weights.
func New(docs DocumentLister, embed Embedder) *Service {
	return &Service{
		docs:          docs,
		embed:         embed,
		keywordWeight: DefaultKeywordWeight,
		vectorWeight:  DefaultVectorWeight,
		fields:        DefaultKeywordFields,
	}
}

// WithWeights overrides the hybrid blend weights. Weights must be
// non-negative; they need not sum to 1.
func (s *Service) WithWeights(keywordWeight, vectorWeight float64) *Service {
	s.keywordWeight = keywordWeight
	s.vectorWeight = vectorWeight
	return s
}

// Search ranks all documents for the query and returns at most limit results,
// embeddings stripped. An empty query is rejected before any computation.
func (s *Service) Search(ctx context.Context, query string, m Mode, limit int) ([]domain.ScoredDocument, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query is required", domain.ErrInvalidArgument)
	}

	docs, err := s.docs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	var ranked []domain.ScoredDocument
	switch m {
	case ModeKeyword:
		ranked = s.rankKeyword(query, docs)
	case ModeVector:
		ranked, err = s.rankVector(ctx, query, docs)
	case ModeHybrid:
		ranked, err = s.rankHybrid(ctx, query, docs)
	default:
		return nil, fmt.Errorf("%w: unsupported search mode %q", domain.ErrInvalidArgument, m)
	}
	if err != nil {
		return nil, err
	}

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	return stripEmbeddings(ranked), nil
}

// rankKeyword ranks by raw term counts. Documents scoring zero are excluded
// entirely rather than carried as zero entries.
func (s *Service) rankKeyword(query string, docs []domain.Document) []domain.ScoredDocument {
	scored := s.scoreKeyword(query, docs)

	ranked := make([]domain.ScoredDocument, 0, len(scored))
	for _, r := range scored {
		ranked = append(ranked, domain.ScoredDocument{Document: r.doc, Score: r.score})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// rankVector ranks by cosine similarity against the query embedding.
// Documents with undefined similarity (empty or zero embedding) sort below
// every defined score with a zero score instead of propagating NaN.
func (s *Service) rankVector(ctx context.Context, query string, docs []domain.Document) ([]domain.ScoredDocument, error) {
	queryEmb, err := s.embedQuery(ctx, query)
	if err != nil {
		return nil, err
	}

	defined, undefined, err := scoreVector(queryEmb, docs)
	if err != nil {
		return nil, err
	}

	ranked := make([]domain.ScoredDocument, 0, len(defined)+len(undefined))
	for _, r := range defined {
		ranked = append(ranked, domain.ScoredDocument{Document: r.doc, Score: r.score})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	for _, d := range undefined {
		ranked = append(ranked, domain.ScoredDocument{Document: d})
	}
	return ranked, nil
}

// rankHybrid blends keyword and vector rankings. Documents with undefined
// similarity are treated as absent from the vector list: no signal, not a
// crash.
func (s *Service) rankHybrid(ctx context.Context, query string, docs []domain.Document) ([]domain.ScoredDocument, error) {
	queryEmb, err := s.embedQuery(ctx, query)
	if err != nil {
		return nil, err
	}

	keywordScored := s.scoreKeyword(query, docs)
	vectorScored, _, err := scoreVector(queryEmb, docs)
	if err != nil {
		return nil, err
	}

	return fuseWeighted(keywordScored, vectorScored, s.keywordWeight, s.vectorWeight), nil
}

func (s *Service) embedQuery(ctx context.Context, query string) ([]float32, error) {
	res, err := s.embed.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("vectorize query: %w", err)
	}
	return res.Embedding, nil
}

// scoreKeyword returns documents with a positive keyword score, in document
// list order.
func (s *Service) scoreKeyword(query string, docs []domain.Document) []rawScore {
	var scored []rawScore
	for _, doc := range docs {
		if n := keywordScore(query, s.documentText(&doc)); n > 0 {
			scored = append(scored, rawScore{doc: doc, score: float64(n)})
		}
	}
	return scored
}

// scoreVector scores every document against the query embedding, splitting
// defined similarities from undefined ones (empty or zero-norm embeddings).
// A genuine dimension mismatch is fatal to the request.
func scoreVector(queryEmb []float32, docs []domain.Document) ([]rawScore, []domain.Document, error) {
	var defined []rawScore
	var undefined []domain.Document

	for _, doc := range docs {
		sim, err := vector.Cosine(queryEmb, doc.Embedding())
		if err != nil {
			return nil, nil, fmt.Errorf("score document %s: %w", doc.ID(), err)
		}
		if math.IsNaN(sim) {
			undefined = append(undefined, doc)
			continue
		}
		defined = append(defined, rawScore{doc: doc, score: sim})
	}

	return defined, undefined, nil
}

// documentText joins the requested text fields for keyword matching.
func (s *Service) documentText(doc *domain.Document) string {
	parts := make([]string, 0, len(s.fields))
	for _, f := range s.fields {
		switch f {
		case FieldTitle:
			parts = append(parts, doc.Title())
		case FieldDescription:
			parts = append(parts, doc.Description())
		case FieldTags:
			parts = append(parts, strings.Join(doc.Tags(), " "))
		}
	}
	return strings.Join(parts, " ")
}

func stripEmbeddings(ranked []domain.ScoredDocument) []domain.ScoredDocument {
	for i := range ranked {
		ranked[i].Document = ranked[i].Document.WithoutEmbedding()
	}
	return ranked
}
