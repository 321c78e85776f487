package document

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/fuse-search/fuse/internal/db"
	"github.com/fuse-search/fuse/internal/domain"
)

// store is the consumer interface for documents (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	JSONGetMulti(ctx context.Context, keys []string) ([][]byte, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo stores documents as JSON values at fuse:doc:<id>.
type Repo struct {
	store store
}

// New creates a document repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Upsert creates or updates a document. Returns true if created.
func (r *Repo) Upsert(ctx context.Context, doc *domain.Document) (bool, error) {
	key := docKey(doc.ID())
	data, err := marshalDocument(doc)
	if err != nil {
		return false, fmt.Errorf("marshal document: %w", err)
	}

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("check exists %s: %w", key, err)
	}

	if err := r.store.JSONSet(ctx, key, "$", data); err != nil {
		return false, fmt.Errorf("json.set %s: %w", key, err)
	}

	return !exists, nil
}

// Get returns a document by ID.
func (r *Repo) Get(ctx context.Context, id string) (domain.Document, error) {
	key := docKey(id)
	raw, err := r.store.JSONGet(ctx, key, "$")
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domain.Document{}, domain.ErrDocumentNotFound
		}
		return domain.Document{}, fmt.Errorf("json.get %s: %w", key, err)
	}
	return unmarshalDocument(id, raw)
}

// List returns every stored document. The engine scores documents with a
// linear scan, so the full set is loaded in one DoMulti round-trip. Results
// are sorted by ID for deterministic ordering.
func (r *Repo) List(ctx context.Context) ([]domain.Document, error) {
	keys, err := r.store.Scan(ctx, docKey("*"))
	if err != nil {
		return nil, fmt.Errorf("scan documents: %w", err)
	}
	if len(keys) == 0 {
		return nil, nil
	}
	sort.Strings(keys)

	raws, err := r.store.JSONGetMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("json.get documents: %w", err)
	}

	docs := make([]domain.Document, 0, len(raws))
	for i, raw := range raws {
		if raw == nil {
			// Key deleted between SCAN and JSON.GET.
			continue
		}
		doc, err := unmarshalDocument(extractDocID(keys[i]), raw)
		if err != nil {
			return nil, fmt.Errorf("parse document %s: %w", keys[i], err)
		}
		docs = append(docs, doc)
	}

	return docs, nil
}

// Delete removes a document.
func (r *Repo) Delete(ctx context.Context, id string) error {
	key := docKey(id)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return domain.ErrDocumentNotFound
	}

	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}

func docKey(id string) string {
	return domain.KeyPrefix + "doc:" + id
}

func extractDocID(key string) string {
	return strings.TrimPrefix(key, domain.KeyPrefix+"doc:")
}
