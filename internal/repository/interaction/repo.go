package interaction

import (
	"context"
	"fmt"

	"github.com/fuse-search/fuse/internal/domain"
)

// maxLogLength caps the per-user interaction log. Profile recomputation only
// ever reads a small recent window, so older entries are dropped.
const maxLogLength = 1000

// store is the consumer interface for the interaction log (ISP).
type store interface {
	LPush(ctx context.Context, key string, values ...string) error
	LRange(ctx context.Context, key string, start, stop int64) ([]string, error)
	LTrim(ctx context.Context, key string, start, stop int64) error
}

// Repo stores each user's interaction log as a Redis list at
// fuse:interactions:<userID>, newest entry first (LPUSH).
type Repo struct {
	store store
}

// New creates an interaction log repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Append records an interaction at the head of the user's log.
func (r *Repo) Append(ctx context.Context, ev *domain.Interaction) error {
	key := logKey(ev.UserID())
	data, err := marshalInteraction(ev)
	if err != nil {
		return fmt.Errorf("marshal interaction: %w", err)
	}

	if err := r.store.LPush(ctx, key, string(data)); err != nil {
		return fmt.Errorf("lpush %s: %w", key, err)
	}
	if err := r.store.LTrim(ctx, key, 0, maxLogLength-1); err != nil {
		return fmt.Errorf("ltrim %s: %w", key, err)
	}
	return nil
}

// Recent returns up to limit interactions for a user, newest first.
func (r *Repo) Recent(ctx context.Context, userID string, limit int) ([]domain.Interaction, error) {
	if limit <= 0 {
		return nil, nil
	}

	key := logKey(userID)
	raws, err := r.store.LRange(ctx, key, 0, int64(limit)-1)
	if err != nil {
		return nil, fmt.Errorf("lrange %s: %w", key, err)
	}

	events := make([]domain.Interaction, 0, len(raws))
	for _, raw := range raws {
		ev, err := unmarshalInteraction([]byte(raw))
		if err != nil {
			return nil, fmt.Errorf("parse interaction in %s: %w", key, err)
		}
		events = append(events, ev)
	}
	return events, nil
}

func logKey(userID string) string {
	return domain.KeyPrefix + "interactions:" + userID
}
