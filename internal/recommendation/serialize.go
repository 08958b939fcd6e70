package recommendation

import (
	"time"

	"github.com/MrSnakeDoc/recommendations/internal/domain"
)

// Record is the wire shape of a recommendation.
type Record struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	Reason            *string    `json:"reason"`
	Excerpt           *string    `json:"excerpt"`
	FeaturedImage     *string    `json:"featured_image"`
	Favicon           *string    `json:"favicon"`
	URL               string     `json:"url"`
	OneClickSubscribe bool       `json:"one_click_subscribe"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         *time.Time `json:"updated_at"`
}

// Response wraps the records returned by every read or write.
type Response struct {
	Data []Record `json:"data"`
}

// Serialize projects entities into records, keeping their order.
func Serialize(recs ...*domain.Recommendation) *Response {
	data := make([]Record, 0, len(recs))
	for _, r := range recs {
		data = append(data, ToRecord(r))
	}
	return &Response{Data: data}
}

// ToRecord renames the entity fields to their wire names.
func ToRecord(r *domain.Recommendation) Record {
	rec := Record{
		ID:                r.ID,
		Title:             r.Title,
		Reason:            r.Reason,
		Excerpt:           r.Excerpt,
		FeaturedImage:     r.FeaturedImage,
		Favicon:           r.Favicon,
		OneClickSubscribe: r.OneClickSubscribe,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
	if r.URL != nil {
		rec.URL = r.URL.String()
	}
	return rec
}
