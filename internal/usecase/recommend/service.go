package recommend

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/fuse-search/fuse/internal/domain"
	"github.com/fuse-search/fuse/internal/domain/vector"
)

// DefaultLimit is the default number of recommendations returned.
const DefaultLimit = 5

// Service ranks all documents against a user's preference vector.
type Service struct {
	users UserReader
	docs  DocumentLister
}

// New creates a recommendation service.
func New(users UserReader, docs DocumentLister) *Service {
	return &Service{users: users, docs: docs}
}

// Recommend returns up to limit documents ranked by similarity to the
// user's preference vector, embeddings stripped. hasProfile is false when
// the user is unknown or has no preference vector yet. That is a normal
// state for new users, reported without an error and with an empty result.
func (s *Service) Recommend(ctx context.Context, userID string, limit int) (results []domain.ScoredDocument, hasProfile bool, err error) {
	if userID == "" {
		return nil, false, fmt.Errorf("%w: user ID is required", domain.ErrInvalidArgument)
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	u, err := s.users.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get user: %w", err)
	}
	if !u.HasProfile() {
		return nil, false, nil
	}

	docs, err := s.docs.List(ctx)
	if err != nil {
		return nil, true, fmt.Errorf("list documents: %w", err)
	}

	var ranked []domain.ScoredDocument
	var undefined []domain.Document
	for _, doc := range docs {
		sim, err := vector.Cosine(u.Preference(), doc.Embedding())
		if err != nil {
			return nil, true, fmt.Errorf("score document %s: %w", doc.ID(), err)
		}
		if math.IsNaN(sim) {
			undefined = append(undefined, doc)
			continue
		}
		ranked = append(ranked, domain.ScoredDocument{Document: doc, Score: sim})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	for _, doc := range undefined {
		ranked = append(ranked, domain.ScoredDocument{Document: doc})
	}

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	for i := range ranked {
		ranked[i].Document = ranked[i].Document.WithoutEmbedding()
	}

	return ranked, true, nil
}
