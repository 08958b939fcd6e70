package domain

import (
	"net/url"
	"testing"
	"time"
)

func strPtr(s string) *string { return &s }

func baseRecommendation(t *testing.T) *Recommendation {
	t.Helper()
	u, err := url.Parse("https://a.com/")
	if err != nil {
		t.Fatalf("url.Parse() error = %v", err)
	}
	return &Recommendation{
		ID:        "abc",
		Title:     "Blog",
		URL:       u,
		Reason:    strPtr("Great writing"),
		Excerpt:   strPtr("Excerpt"),
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestFieldStates(t *testing.T) {
	var unset Field[*string]
	if unset.IsSet() {
		t.Error("zero Field should be unset")
	}

	cleared := Set[*string](nil)
	v, ok := cleared.Get()
	if !ok || v != nil {
		t.Errorf("Set(nil).Get() = %v, %v, want nil, true", v, ok)
	}

	set := Set(strPtr("x"))
	v, ok = set.Get()
	if !ok || v == nil || *v != "x" {
		t.Errorf("Set(x).Get() = %v, %v, want x, true", v, ok)
	}
}

func TestRecommendationEditApply(t *testing.T) {
	newURL, _ := url.Parse("https://b.com/")

	tests := []struct {
		name  string
		edit  RecommendationEdit
		check func(t *testing.T, r *Recommendation)
	}{
		{
			name: "empty edit keeps everything",
			edit: RecommendationEdit{},
			check: func(t *testing.T, r *Recommendation) {
				if r.Title != "Blog" || r.Reason == nil || *r.Reason != "Great writing" {
					t.Errorf("empty edit changed the recommendation: %+v", r)
				}
			},
		},
		{
			name: "explicit nil clears reason",
			edit: RecommendationEdit{Reason: Set[*string](nil)},
			check: func(t *testing.T, r *Recommendation) {
				if r.Reason != nil {
					t.Errorf("Reason = %v, want nil", *r.Reason)
				}
				if r.Excerpt == nil {
					t.Error("Excerpt should be kept")
				}
			},
		},
		{
			name: "set values replace",
			edit: RecommendationEdit{
				Title:             Set("Renamed"),
				URL:               Set(newURL),
				OneClickSubscribe: Set(true),
				Favicon:           Set(strPtr("https://b.com/favicon.ico")),
			},
			check: func(t *testing.T, r *Recommendation) {
				if r.Title != "Renamed" {
					t.Errorf("Title = %q, want Renamed", r.Title)
				}
				if r.URL.String() != "https://b.com/" {
					t.Errorf("URL = %q, want https://b.com/", r.URL.String())
				}
				if !r.OneClickSubscribe {
					t.Error("OneClickSubscribe should be true")
				}
				if r.Favicon == nil || *r.Favicon != "https://b.com/favicon.ico" {
					t.Errorf("Favicon = %v", r.Favicon)
				}
			},
		},
		{
			name: "empty string title is applied",
			edit: RecommendationEdit{Title: Set("")},
			check: func(t *testing.T, r *Recommendation) {
				if r.Title != "" {
					t.Errorf("Title = %q, want empty", r.Title)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := baseRecommendation(t)
			tt.edit.Apply(r)
			tt.check(t, r)
		})
	}
}

func TestRecommendationEditIsEmpty(t *testing.T) {
	if !(RecommendationEdit{}).IsEmpty() {
		t.Error("zero edit should be empty")
	}
	if (RecommendationEdit{Reason: Set[*string](nil)}).IsEmpty() {
		t.Error("edit clearing reason should not be empty")
	}
}

func TestRecommendationClone(t *testing.T) {
	r := baseRecommendation(t)
	now := time.Now()
	r.UpdatedAt = &now

	c := r.Clone()
	*c.Reason = "changed"
	c.URL.Host = "changed.com"
	*c.UpdatedAt = now.Add(time.Hour)

	if *r.Reason != "Great writing" {
		t.Error("Clone shares Reason with the original")
	}
	if r.URL.Host != "a.com" {
		t.Error("Clone shares URL with the original")
	}
	if !r.UpdatedAt.Equal(now) {
		t.Error("Clone shares UpdatedAt with the original")
	}
}

func TestNotFoundError(t *testing.T) {
	err := RecommendationNotFound("abc")
	if !IsNotFound(err) {
		t.Error("IsNotFound() = false, want true")
	}
	if err.Error() != "recommendation not found: abc" {
		t.Errorf("Error() = %q", err.Error())
	}
}
