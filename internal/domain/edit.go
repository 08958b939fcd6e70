package domain

import "net/url"

// RecommendationEdit is a sparse update. Only set fields are applied;
// the nullable string fields may be set to nil to clear them.
type RecommendationEdit struct {
	Title             Field[string]
	URL               Field[*url.URL]
	OneClickSubscribe Field[bool]
	Reason            Field[*string]
	Excerpt           Field[*string]
	FeaturedImage     Field[*string]
	Favicon           Field[*string]
}

// IsEmpty reports whether the edit changes nothing.
func (e RecommendationEdit) IsEmpty() bool {
	return !e.Title.IsSet() &&
		!e.URL.IsSet() &&
		!e.OneClickSubscribe.IsSet() &&
		!e.Reason.IsSet() &&
		!e.Excerpt.IsSet() &&
		!e.FeaturedImage.IsSet() &&
		!e.Favicon.IsSet()
}

// Apply merges the set fields into r. Timestamps are left to the caller.
func (e RecommendationEdit) Apply(r *Recommendation) {
	if r == nil {
		return
	}
	e.Title.apply(&r.Title)
	if u, ok := e.URL.Get(); ok && u != nil {
		r.URL = cloneURL(u)
	}
	e.OneClickSubscribe.apply(&r.OneClickSubscribe)
	applyString(e.Reason, &r.Reason)
	applyString(e.Excerpt, &r.Excerpt)
	applyString(e.FeaturedImage, &r.FeaturedImage)
	applyString(e.Favicon, &r.Favicon)
}

func applyString(f Field[*string], dst **string) {
	if v, ok := f.Get(); ok {
		*dst = cloneString(v)
	}
}
