package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/recommendations/internal/domain"
	"github.com/MrSnakeDoc/recommendations/internal/logger"
)

// Repository is the storage contract shared by the memory, Redis and
// SQLite stores. Get and Delete return a domain.NotFoundError for
// unknown ids; List returns newest first.
type Repository interface {
	Save(ctx context.Context, rec *domain.Recommendation) error
	Get(ctx context.Context, id string) (*domain.Recommendation, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*domain.Recommendation, error)
	Ping(ctx context.Context) error
	Close() error
}

// RecommendationService owns identifiers, timestamps and merge semantics.
type RecommendationService struct {
	repo   Repository
	logger logger.Logger
	now    func() time.Time
	newID  func() string
}

type Option func(*RecommendationService)

// WithClock overrides time.Now (tests).
func WithClock(now func() time.Time) Option {
	return func(s *RecommendationService) { s.now = now }
}

// WithIDGenerator overrides the UUID generator (tests).
func WithIDGenerator(gen func() string) Option {
	return func(s *RecommendationService) { s.newID = gen }
}

func NewRecommendationService(repo Repository, log logger.Logger, opts ...Option) *RecommendationService {
	s := &RecommendationService{
		repo:   repo,
		logger: log,
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RecommendationService) AddRecommendation(ctx context.Context, in domain.RecommendationInput) (*domain.Recommendation, error) {
	rec := domain.NewRecommendation(s.newID(), in, s.now().UTC())

	if err := s.repo.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to add recommendation: %w", err)
	}

	s.logger.Info("recommendation created",
		logger.String("id", rec.ID),
		logger.String("url", rec.URL.String()))
	return rec, nil
}

func (s *RecommendationService) EditRecommendation(ctx context.Context, id string, edit domain.RecommendationEdit) (*domain.Recommendation, error) {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if edit.IsEmpty() {
		return rec, nil
	}

	edit.Apply(rec)
	updated := s.now().UTC()
	rec.UpdatedAt = &updated

	if err := s.repo.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to edit recommendation %s: %w", id, err)
	}

	s.logger.Info("recommendation updated", logger.String("id", id))
	return rec, nil
}

func (s *RecommendationService) DeleteRecommendation(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("recommendation deleted", logger.String("id", id))
	return nil
}

func (s *RecommendationService) ListRecommendations(ctx context.Context) ([]*domain.Recommendation, error) {
	recs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list recommendations: %w", err)
	}
	return recs, nil
}

// Ping reports whether the underlying store is reachable.
func (s *RecommendationService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
