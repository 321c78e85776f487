package feedback

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/fuse-search/fuse/internal/domain"
)

// --- Mocks ---

type mockLog struct {
	appended []domain.Interaction
	recent   []domain.Interaction
	// when recentFromAppended is set, Recent serves the appended events
	// newest-first, like the real log.
	recentFromAppended bool
	appendErr          error
	recentErr          error
}

func (m *mockLog) Append(_ context.Context, ev *domain.Interaction) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.appended = append(m.appended, *ev)
	return nil
}

func (m *mockLog) Recent(_ context.Context, _ string, limit int) ([]domain.Interaction, error) {
	if m.recentErr != nil {
		return nil, m.recentErr
	}
	events := m.recent
	if m.recentFromAppended {
		events = nil
		for i := len(m.appended) - 1; i >= 0; i-- {
			events = append(events, m.appended[i])
		}
	}
	if len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}

type mockDocs struct {
	docs map[string]domain.Document
}

func (m *mockDocs) Get(_ context.Context, id string) (domain.Document, error) {
	doc, ok := m.docs[id]
	if !ok {
		return domain.Document{}, domain.ErrDocumentNotFound
	}
	return doc, nil
}

type mockUsers struct {
	setCalls   int
	lastUserID string
	lastPref   []float32
	err        error
}

func (m *mockUsers) SetPreference(_ context.Context, userID string, preference []float32) error {
	if m.err != nil {
		return m.err
	}
	m.setCalls++
	m.lastUserID = userID
	m.lastPref = preference
	return nil
}

func newTestService(t *testing.T, log *mockLog, docs *mockDocs, users *mockUsers) *Service {
	t.Helper()
	if docs.docs == nil {
		docs.docs = map[string]domain.Document{}
	}
	return New(log, docs, users, zap.NewNop())
}

func event(t *testing.T, userID, docID string, action domain.Action) domain.Interaction {
	t.Helper()
	return domain.ReconstructInteraction("ev-"+docID, userID, docID, action, time.Now().UTC())
}
