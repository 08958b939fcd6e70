package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/recommendations/internal/domain"
)

// Store persists recommendations as JSON blobs plus a sorted set of IDs
// scored by creation time.
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis store
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// Save stores a recommendation and indexes it. Blob and index are written
// in one MULTI/EXEC so readers never see one without the other.
func (s *Store) Save(ctx context.Context, rec *domain.Recommendation) error {
	data, err := json.Marshal(toStored(rec))
	if err != nil {
		return fmt.Errorf("failed to marshal recommendation: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, RecommendationKey(rec.ID), data, 0)
	pipe.ZAdd(ctx, AllRecommendationsKey(), redis.Z{
		Score:  float64(rec.CreatedAt.UnixNano()),
		Member: rec.ID,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save recommendation: %w", err)
	}
	return nil
}

// Get retrieves a recommendation by ID
func (s *Store) Get(ctx context.Context, id string) (*domain.Recommendation, error) {
	data, err := s.client.Get(ctx, RecommendationKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.RecommendationNotFound(id)
		}
		return nil, fmt.Errorf("failed to get recommendation: %w", err)
	}
	return decode(data)
}

// Delete removes a recommendation and its index entry
func (s *Store) Delete(ctx context.Context, id string) error {
	pipe := s.client.TxPipeline()
	del := pipe.Del(ctx, RecommendationKey(id))
	pipe.ZRem(ctx, AllRecommendationsKey(), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete recommendation: %w", err)
	}
	if del.Val() == 0 {
		return domain.RecommendationNotFound(id)
	}
	return nil
}

// List returns every recommendation, newest first. Index entries whose
// blob has vanished are skipped.
func (s *Store) List(ctx context.Context) ([]*domain.Recommendation, error) {
	ids, err := s.client.ZRevRange(ctx, AllRecommendationsKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get recommendation IDs: %w", err)
	}
	if len(ids) == 0 {
		return []*domain.Recommendation{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = RecommendationKey(id)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get recommendations: %w", err)
	}

	recs := make([]*domain.Recommendation, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		rec, err := decode([]byte(raw))
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// Ping checks the connection
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the underlying client
func (s *Store) Close() error {
	return s.client.Close()
}

func decode(data []byte) (*domain.Recommendation, error) {
	var stored storedRecommendation
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recommendation: %w", err)
	}
	return stored.toDomain()
}
