package recommend

import (
	"context"

	"github.com/fuse-search/fuse/internal/domain"
)

// UserReader fetches a user's preference vector.
type UserReader interface {
	Get(ctx context.Context, id string) (domain.User, error)
}

// DocumentLister reads the full document set for scoring.
type DocumentLister interface {
	List(ctx context.Context) ([]domain.Document, error)
}
