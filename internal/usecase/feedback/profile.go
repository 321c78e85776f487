package feedback

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/fuse-search/fuse/internal/domain"
	"github.com/fuse-search/fuse/internal/domain/vector"
)

// recomputeProfile derives the user's preference vector from the recent
// interaction window. The stored vector is always a pure recomputation from
// the current window — replace, not blend — so running it twice over the
// same window yields the same vector.
func (s *Service) recomputeProfile(ctx context.Context, userID string) (Outcome, error) {
	events, err := s.log.Recent(ctx, userID, s.window)
	if err != nil {
		return "", fmt.Errorf("recent interactions: %w", err)
	}

	var positive []domain.Interaction
	for _, ev := range events {
		if ev.Action().IsPositive() {
			positive = append(positive, ev)
		}
	}
	if len(positive) == 0 {
		return OutcomeNoChange, nil
	}

	embeddings := make([][]float32, 0, len(positive))
	for _, ev := range positive {
		doc, err := s.docs.Get(ctx, ev.DocumentID())
		if err != nil {
			if errors.Is(err, domain.ErrDocumentNotFound) {
				// Stale reference: the document was deleted after the
				// interaction. Excluded, not an error.
				continue
			}
			return "", fmt.Errorf("resolve document %s: %w", ev.DocumentID(), err)
		}
		if len(doc.Embedding()) == 0 {
			continue
		}
		embeddings = append(embeddings, doc.Embedding())
	}
	if len(embeddings) == 0 {
		return OutcomeNoMaterial, nil
	}

	mean, err := vector.Mean(embeddings)
	if err != nil {
		return "", fmt.Errorf("average embeddings: %w", err)
	}

	if err := s.users.SetPreference(ctx, userID, mean); err != nil {
		return "", fmt.Errorf("store preference: %w", err)
	}

	s.logger.Debug("preference vector recomputed",
		zap.String("user_id", userID),
		zap.Int("window_events", len(events)),
		zap.Int("positive_events", len(positive)),
		zap.Int("resolved_embeddings", len(embeddings)),
	)
	return OutcomeUpdated, nil
}
