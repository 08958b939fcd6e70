package memory

import (
	"context"
	"sync"

	"github.com/MrSnakeDoc/recommendations/internal/domain"
)

// Store keeps recommendations in process memory.
// Values are cloned on the way in and out, so callers never share state.
type Store struct {
	mu    sync.RWMutex
	byID  map[string]*domain.Recommendation // ID -> Recommendation
	order []string                          // IDs in insertion order
}

// NewStore creates an empty memory store
func NewStore() *Store {
	return &Store{
		byID: make(map[string]*domain.Recommendation),
	}
}

// Save adds or replaces a recommendation. Replacing keeps its position.
func (s *Store) Save(_ context.Context, rec *domain.Recommendation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[rec.ID]; !exists {
		s.order = append(s.order, rec.ID)
	}
	s.byID[rec.ID] = rec.Clone()
	return nil
}

// Get retrieves a recommendation by ID
func (s *Store) Get(_ context.Context, id string) (*domain.Recommendation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.byID[id]
	if !ok {
		return nil, domain.RecommendationNotFound(id)
	}
	return rec.Clone(), nil
}

// Delete removes a recommendation
func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return domain.RecommendationNotFound(id)
	}
	delete(s.byID, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// List returns all recommendations, newest first
func (s *Store) List(_ context.Context) ([]*domain.Recommendation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recs := make([]*domain.Recommendation, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		recs = append(recs, s.byID[s.order[i]].Clone())
	}
	return recs, nil
}

// Count returns the number of stored recommendations
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.byID)
}

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Close() error { return nil }
