package redis

import (
	"fmt"
	"net/url"
	"time"

	"github.com/MrSnakeDoc/recommendations/internal/domain"
)

// storedRecommendation is the JSON layout of a recommendation blob.
type storedRecommendation struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	URL               string     `json:"url"`
	OneClickSubscribe bool       `json:"one_click_subscribe"`
	Reason            *string    `json:"reason"`
	Excerpt           *string    `json:"excerpt"`
	FeaturedImage     *string    `json:"featured_image"`
	Favicon           *string    `json:"favicon"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         *time.Time `json:"updated_at,omitempty"`
}

func toStored(rec *domain.Recommendation) storedRecommendation {
	s := storedRecommendation{
		ID:                rec.ID,
		Title:             rec.Title,
		OneClickSubscribe: rec.OneClickSubscribe,
		Reason:            rec.Reason,
		Excerpt:           rec.Excerpt,
		FeaturedImage:     rec.FeaturedImage,
		Favicon:           rec.Favicon,
		CreatedAt:         rec.CreatedAt,
		UpdatedAt:         rec.UpdatedAt,
	}
	if rec.URL != nil {
		s.URL = rec.URL.String()
	}
	return s
}

func (s storedRecommendation) toDomain() (*domain.Recommendation, error) {
	u, err := url.Parse(s.URL)
	if err != nil {
		return nil, fmt.Errorf("stored recommendation %s has invalid url: %w", s.ID, err)
	}
	return &domain.Recommendation{
		ID:                s.ID,
		Title:             s.Title,
		URL:               u,
		OneClickSubscribe: s.OneClickSubscribe,
		Reason:            s.Reason,
		Excerpt:           s.Excerpt,
		FeaturedImage:     s.FeaturedImage,
		Favicon:           s.Favicon,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}, nil
}
