package feedback

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fuse-search/fuse/internal/domain"
)

// DefaultWindow is the number of recent interactions considered for profile
// recomputation.
const DefaultWindow = 20

// Service records feedback events and keeps each user's preference vector in
// sync with the recent interaction window.
type Service struct {
	log    InteractionLog
	docs   DocumentReader
	users  PreferenceWriter
	window int
	logger *zap.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates a feedback service.
func New(log InteractionLog, docs DocumentReader, users PreferenceWriter, logger *zap.Logger) *Service {
	return &Service{
		log:    log,
		docs:   docs,
		users:  users,
		window: DefaultWindow,
		logger: logger,
		locks:  make(map[string]*sync.Mutex),
	}
}

// WithWindow overrides the profile recomputation window.
func (s *Service) WithWindow(window int) *Service {
	if window > 0 {
		s.window = window
	}
	return s
}

// Record validates and appends a feedback event, then recomputes the user's
// preference vector from the recent window. The whole append-read-compute-
// write sequence is serialized per user: two concurrent events for the same
// user cannot overwrite each other's recomputation. Distinct users proceed
// in parallel.
//
// The document is not required to exist: feedback referencing a deleted
// document is still recorded, and the stale reference is skipped during
// profile computation.
func (s *Service) Record(ctx context.Context, userID, documentID, action string) (Outcome, error) {
	act, err := domain.ParseAction(action)
	if err != nil {
		return "", err
	}

	ev, err := domain.NewInteraction(uuid.NewString(), userID, documentID, act, time.Now().UTC())
	if err != nil {
		return "", err
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.log.Append(ctx, &ev); err != nil {
		return "", fmt.Errorf("append interaction: %w", err)
	}

	outcome, err := s.recomputeProfile(ctx, userID)
	if err != nil {
		return "", err
	}

	s.logger.Debug("feedback recorded",
		zap.String("user_id", userID),
		zap.String("document_id", documentID),
		zap.String("action", string(act)),
		zap.String("outcome", string(outcome)),
	)
	return outcome, nil
}

// Recompute rebuilds the user's preference vector from the current window
// without recording a new event. Exposed for backfills and tests; holds the
// same per-user lock as Record.
func (s *Service) Recompute(ctx context.Context, userID string) (Outcome, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	return s.recomputeProfile(ctx, userID)
}

// Interactions returns the user's recent feedback events, newest first.
func (s *Service) Interactions(ctx context.Context, userID string, limit int) ([]domain.Interaction, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user ID is required", domain.ErrInvalidArgument)
	}
	events, err := s.log.Recent(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent interactions: %w", err)
	}
	return events, nil
}

func (s *Service) userLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	return l
}
