package feedback

import (
	"context"

	"github.com/fuse-search/fuse/internal/domain"
)

// InteractionLog appends and reads the per-user feedback log.
type InteractionLog interface {
	Append(ctx context.Context, ev *domain.Interaction) error
	Recent(ctx context.Context, userID string, limit int) ([]domain.Interaction, error)
}

// DocumentReader resolves document embeddings for profile computation.
type DocumentReader interface {
	Get(ctx context.Context, id string) (domain.Document, error)
}

// PreferenceWriter persists a user's recomputed preference vector.
type PreferenceWriter interface {
	SetPreference(ctx context.Context, userID string, preference []float32) error
}
