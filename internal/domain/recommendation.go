package domain

import (
	"net/url"
	"time"
)

// Recommendation is a site recommended to readers.
//
// It is the canonical runtime shape: the HTTP boundary, the stores
// and the seed importer all convert to and from this structure.
type Recommendation struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is assigned by the service on creation.
	ID string

	// ─────────────────────────────
	// Content
	// ─────────────────────────────

	// Title is never nil; an omitted title is stored as "".
	Title string

	// URL is always an absolute URL.
	URL *url.URL

	// OneClickSubscribe tells readers they can subscribe without
	// leaving the page.
	OneClickSubscribe bool

	// Reason, Excerpt, FeaturedImage and Favicon are optional.
	// nil means the value is explicitly unset.
	Reason        *string
	Excerpt       *string
	FeaturedImage *string
	Favicon       *string

	// ─────────────────────────────
	// Metadata
	// ─────────────────────────────

	// CreatedAt is set once by the service.
	CreatedAt time.Time

	// UpdatedAt stays nil until the first edit.
	UpdatedAt *time.Time
}

// RecommendationInput carries everything needed to create a
// Recommendation except the fields the service owns (ID and timestamps).
type RecommendationInput struct {
	Title             string
	URL               *url.URL
	OneClickSubscribe bool
	Reason            *string
	Excerpt           *string
	FeaturedImage     *string
	Favicon           *string
}

// NewRecommendation builds an entity from a validated input.
func NewRecommendation(id string, in RecommendationInput, createdAt time.Time) *Recommendation {
	return &Recommendation{
		ID:                id,
		Title:             in.Title,
		URL:               cloneURL(in.URL),
		OneClickSubscribe: in.OneClickSubscribe,
		Reason:            cloneString(in.Reason),
		Excerpt:           cloneString(in.Excerpt),
		FeaturedImage:     cloneString(in.FeaturedImage),
		Favicon:           cloneString(in.Favicon),
		CreatedAt:         createdAt,
	}
}

// Clone returns a deep copy, so stores can hand out values without
// sharing pointers with their internal state.
func (r *Recommendation) Clone() *Recommendation {
	if r == nil {
		return nil
	}
	c := *r
	c.URL = cloneURL(r.URL)
	c.Reason = cloneString(r.Reason)
	c.Excerpt = cloneString(r.Excerpt)
	c.FeaturedImage = cloneString(r.FeaturedImage)
	c.Favicon = cloneString(r.Favicon)
	if r.UpdatedAt != nil {
		t := *r.UpdatedAt
		c.UpdatedAt = &t
	}
	return &c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneURL(u *url.URL) *url.URL {
	if u == nil {
		return nil
	}
	c := *u
	if u.User != nil {
		user := *u.User
		c.User = &user
	}
	return &c
}
