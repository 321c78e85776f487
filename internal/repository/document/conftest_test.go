package document

import (
	"context"
	"testing"

	"github.com/fuse-search/fuse/internal/domain"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	jsonSetFn      func(ctx context.Context, key, path string, data []byte) error
	jsonGetFn      func(ctx context.Context, key string, paths ...string) ([]byte, error)
	jsonGetMultiFn func(ctx context.Context, keys []string) ([][]byte, error)
	delFn          func(ctx context.Context, key string) error
	existsFn       func(ctx context.Context, key string) (bool, error)
	scanFn         func(ctx context.Context, pattern string) ([]string, error)
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
	return nil, nil
}

func (m *mockStore) JSONGetMulti(ctx context.Context, keys []string) ([][]byte, error) {
	if m.jsonGetMultiFn != nil {
		return m.jsonGetMultiFn(ctx, keys)
	}
	return nil, nil
}

func (m *mockStore) Del(ctx context.Context, key string) error {
	if m.delFn != nil {
		return m.delFn(ctx, key)
	}
	return nil
}

func (m *mockStore) Exists(ctx context.Context, key string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, key)
	}
	return false, nil
}

func (m *mockStore) Scan(ctx context.Context, pattern string) ([]string, error) {
	if m.scanFn != nil {
		return m.scanFn(ctx, pattern)
	}
	return nil, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms), ms
}

func testDocument(t *testing.T) domain.Document {
	t.Helper()
	return domain.ReconstructDocument(
		"doc-1", "Espresso Guide", "all about espresso",
		[]string{"coffee", "guide"}, []float32{0.1, 0.2},
	)
}
