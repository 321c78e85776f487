package chi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"testing"

	chirouter "github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/fuse-search/fuse/internal/domain"
	"github.com/fuse-search/fuse/internal/metrics"
	feedbackuc "github.com/fuse-search/fuse/internal/usecase/feedback"
	healthuc "github.com/fuse-search/fuse/internal/usecase/health"
	recommenduc "github.com/fuse-search/fuse/internal/usecase/recommend"
	searchuc "github.com/fuse-search/fuse/internal/usecase/search"
)

func TestMain(m *testing.M) {
	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterEngineMetrics()
	os.Exit(m.Run())
}

type mockDocs struct {
	docs []domain.Document
	err  error
}

func (m *mockDocs) List(_ context.Context) ([]domain.Document, error) {
	return m.docs, m.err
}

func (m *mockDocs) Get(_ context.Context, id string) (domain.Document, error) {
	for _, d := range m.docs {
		if d.ID() == id {
			return d, nil
		}
	}
	return domain.Document{}, domain.ErrDocumentNotFound
}

type mockEmbedder struct {
	embedding []float32
	err       error
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	if m.err != nil {
		return domain.EmbeddingResult{}, m.err
	}
	return domain.EmbeddingResult{Embedding: m.embedding}, nil
}

type mockLog struct {
	appended []domain.Interaction
}

func (m *mockLog) Append(_ context.Context, ev *domain.Interaction) error {
	m.appended = append([]domain.Interaction{*ev}, m.appended...)
	return nil
}

func (m *mockLog) Recent(_ context.Context, _ string, limit int) ([]domain.Interaction, error) {
	if limit > 0 && len(m.appended) > limit {
		return m.appended[:limit], nil
	}
	return m.appended, nil
}

type mockUsers struct {
	user        domain.User
	err         error
	preferences map[string][]float32
}

func (m *mockUsers) Get(_ context.Context, _ string) (domain.User, error) {
	return m.user, m.err
}

func (m *mockUsers) SetPreference(_ context.Context, userID string, preference []float32) error {
	if m.preferences == nil {
		m.preferences = make(map[string][]float32)
	}
	m.preferences[userID] = preference
	return nil
}

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

type serverFixture struct {
	docs     *mockDocs
	embedder *mockEmbedder
	log      *mockLog
	users    *mockUsers
	pinger   *mockPinger
	router   chirouter.Router
}

func newFixture() *serverFixture {
	f := &serverFixture{
		docs:     &mockDocs{},
		embedder: &mockEmbedder{embedding: []float32{1, 0}},
		log:      &mockLog{},
		users:    &mockUsers{err: domain.ErrUserNotFound},
		pinger:   &mockPinger{},
	}

	logger := zap.NewNop()
	srv := NewServer(
		searchuc.New(f.docs, f.embedder),
		feedbackuc.New(f.log, f.docs, f.users, logger),
		recommenduc.New(f.users, f.docs),
		healthuc.New(f.pinger, nil),
		Limits{Search: 10, Recommend: 5, Interactions: 50},
		logger,
	)

	f.router = chirouter.NewRouter()
	srv.RegisterRoutes(f.router)
	return f
}

func (f *serverFixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rr.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func testDoc(id, title, description string, embedding []float32) domain.Document {
	return domain.ReconstructDocument(id, title, description, nil, embedding)
}
