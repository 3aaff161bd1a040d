package memory

import (
	"context"
	"sync"
	"time"

	"elitefit-backend/internal/domain"
)

// WizardStore keeps onboarding wizard state in process memory only. Partial
// progress is intentionally not persisted; abandoned flows are evicted after
// an idle TTL by a background janitor.
type WizardStore struct {
	mu     sync.RWMutex
	states map[string]*domain.WizardState
	ttl    time.Duration
}

func NewWizardStore(ttl time.Duration) *WizardStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	s := &WizardStore{
		states: make(map[string]*domain.WizardState),
		ttl:    ttl,
	}
	go s.cleanupLoop()
	return s
}

func (s *WizardStore) Put(_ context.Context, state *domain.WizardState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *state
	copied.UpdatedAt = time.Now()
	s.states[state.ID] = &copied
	return nil
}

func (s *WizardStore) Get(_ context.Context, id string) (*domain.WizardState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.states[id]
	if !ok || time.Since(state.UpdatedAt) > s.ttl {
		return nil, nil
	}
	copied := *state
	return &copied, nil
}

func (s *WizardStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.states, id)
	return nil
}

func (s *WizardStore) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	for range ticker.C {
		now := time.Now()
		s.mu.Lock()
		for id, state := range s.states {
			if now.Sub(state.UpdatedAt) > s.ttl {
				delete(s.states, id)
			}
		}
		s.mu.Unlock()
	}
}
