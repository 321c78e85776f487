package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/fuse-search/fuse/internal/db"
	"github.com/fuse-search/fuse/internal/domain"
)

// store is the consumer interface for users (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
}

// Repo stores users as JSON values at fuse:user:<id>.
type Repo struct {
	store store
}

// New creates a user repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Upsert creates or replaces a user record.
func (r *Repo) Upsert(ctx context.Context, u *domain.User) error {
	key := userKey(u.ID())
	data, err := marshalUser(u)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	if err := r.store.JSONSet(ctx, key, "$", data); err != nil {
		return fmt.Errorf("json.set %s: %w", key, err)
	}
	return nil
}

// Get returns a user by ID.
func (r *Repo) Get(ctx context.Context, id string) (domain.User, error) {
	key := userKey(id)
	raw, err := r.store.JSONGet(ctx, key, "$")
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("json.get %s: %w", key, err)
	}
	return unmarshalUser(id, raw)
}

// SetPreference replaces the user's preference vector. A user record is
// created on the fly when none exists yet, so feedback from unseeded users
// still produces a profile.
func (r *Repo) SetPreference(ctx context.Context, id string, preference []float32) error {
	u, err := r.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			return err
		}
		u = domain.ReconstructUser(id, "", nil)
	}

	updated := domain.ReconstructUser(u.ID(), u.Name(), preference)
	return r.Upsert(ctx, &updated)
}

func userKey(id string) string {
	return domain.KeyPrefix + "user:" + id
}
