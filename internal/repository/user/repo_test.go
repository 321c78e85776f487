package user

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/fuse-search/fuse/internal/db"
	"github.com/fuse-search/fuse/internal/domain"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	jsonSetFn func(ctx context.Context, key, path string, data []byte) error
	jsonGetFn func(ctx context.Context, key string, paths ...string) ([]byte, error)
}

func (m *mockStore) JSONSet(ctx context.Context, key, path string, data []byte) error {
	if m.jsonSetFn != nil {
		return m.jsonSetFn(ctx, key, path, data)
	}
	return nil
}

func (m *mockStore) JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error) {
	if m.jsonGetFn != nil {
		return m.jsonGetFn(ctx, key, paths...)
	}
	return nil, db.ErrKeyNotFound
}

func TestUpsert_WritesUserKey(t *testing.T) {
	ms := &mockStore{}
	repo := New(ms)
	u := domain.ReconstructUser("demo_user", "Demo User", nil)

	var gotKey string
	var gotData []byte
	ms.jsonSetFn = func(_ context.Context, key, path string, data []byte) error {
		gotKey, gotData = key, data
		if path != "$" {
			t.Errorf("unexpected path: %s", path)
		}
		return nil
	}

	if err := repo.Upsert(context.Background(), &u); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotKey != "fuse:user:demo_user" {
		t.Errorf("unexpected key: %s", gotKey)
	}

	var dto userDTO
	if err := json.Unmarshal(gotData, &dto); err != nil {
		t.Fatalf("stored value is not valid JSON: %v", err)
	}
	if dto.Name != "Demo User" {
		t.Errorf("stored name: %s", dto.Name)
	}
	if dto.Preference != nil {
		t.Errorf("empty preference must be omitted, got %v", dto.Preference)
	}
}

func TestGet_HappyPath(t *testing.T) {
	ms := &mockStore{}
	repo := New(ms)

	ms.jsonGetFn = func(_ context.Context, key string, _ ...string) ([]byte, error) {
		if key != "fuse:user:u1" {
			t.Errorf("unexpected key: %s", key)
		}
		return []byte(`[{"name":"Demo","preference_embedding":[0.5,0.5]}]`), nil
	}

	u, err := repo.Get(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.ID() != "u1" || u.Name() != "Demo" {
		t.Errorf("unexpected user: %s / %s", u.ID(), u.Name())
	}
	if !u.HasProfile() {
		t.Error("expected profile to be present")
	}
}

func TestGet_NotFound(t *testing.T) {
	repo := New(&mockStore{})

	_, err := repo.Get(context.Background(), "ghost")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestSetPreference_ExistingUserKeepsName(t *testing.T) {
	ms := &mockStore{}
	repo := New(ms)

	ms.jsonGetFn = func(_ context.Context, _ string, _ ...string) ([]byte, error) {
		return []byte(`[{"name":"Demo"}]`), nil
	}
	var gotData []byte
	ms.jsonSetFn = func(_ context.Context, _ string, _ string, data []byte) error {
		gotData = data
		return nil
	}

	if err := repo.SetPreference(context.Background(), "u1", []float32{1, 0}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var dto userDTO
	if err := json.Unmarshal(gotData, &dto); err != nil {
		t.Fatalf("stored value is not valid JSON: %v", err)
	}
	if dto.Name != "Demo" {
		t.Errorf("name lost on preference update: %q", dto.Name)
	}
	if len(dto.Preference) != 2 || dto.Preference[0] != 1 {
		t.Errorf("unexpected preference: %v", dto.Preference)
	}
}

func TestSetPreference_CreatesMissingUser(t *testing.T) {
	ms := &mockStore{}
	repo := New(ms)

	var gotKey string
	ms.jsonSetFn = func(_ context.Context, key, _ string, _ []byte) error {
		gotKey = key
		return nil
	}

	if err := repo.SetPreference(context.Background(), "newcomer", []float32{1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotKey != "fuse:user:newcomer" {
		t.Errorf("expected a record to be created, got key %q", gotKey)
	}
}
