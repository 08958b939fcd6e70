package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/recommendations/internal/domain"
	"github.com/MrSnakeDoc/recommendations/internal/recommendation"
)

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestEnvelope(t *testing.T) {
	t.Run("body, query and url param", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPut, "/api/recommendations/abc?dry_run=true&id=ignored",
			strings.NewReader(`{"recommendations":[{"title":"x"}]}`))
		r = withURLParam(r, "id", "abc")

		env, err := envelope(httptest.NewRecorder(), r)
		require.NoError(t, err)

		assert.Equal(t, "abc", env.Options["id"])
		assert.Equal(t, "true", env.Options["dry_run"])
		data, ok := env.Data.(map[string]any)
		require.True(t, ok)
		assert.Len(t, data["recommendations"], 1)
		assert.Nil(t, env.User)
	})

	t.Run("empty body", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/api/recommendations", nil)
		env, err := envelope(httptest.NewRecorder(), r)
		require.NoError(t, err)
		assert.Nil(t, env.Data)
	})

	t.Run("body ignored on delete", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodDelete, "/api/recommendations/abc", strings.NewReader(`not json`))
		_, err := envelope(httptest.NewRecorder(), r)
		assert.NoError(t, err)
	})

	t.Run("invalid json", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/api/recommendations", strings.NewReader(`{`))
		_, err := envelope(httptest.NewRecorder(), r)
		require.Error(t, err)
		assert.True(t, recommendation.IsMalformedRequest(err))
		assert.Equal(t, "body must be valid JSON", err.Error())
	})

	t.Run("body too large", func(t *testing.T) {
		big := `{"x":"` + strings.Repeat("a", maxBodyBytes) + `"}`
		r := httptest.NewRequest(http.MethodPost, "/api/recommendations", strings.NewReader(big))
		_, err := envelope(httptest.NewRecorder(), r)
		require.Error(t, err)
		assert.Equal(t, "body is too large", err.Error())
	})
}

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{
			name:       "malformed",
			err:        &recommendation.MalformedRequestError{Field: "url", Message: "url is required"},
			wantStatus: http.StatusBadRequest,
			wantType:   "BadRequestError",
		},
		{
			name:       "not found",
			err:        fmt.Errorf("edit: %w", domain.RecommendationNotFound("abc")),
			wantStatus: http.StatusNotFound,
			wantType:   "NotFoundError",
		},
		{
			name:       "anything else",
			err:        errors.New("disk full"),
			wantStatus: http.StatusInternalServerError,
			wantType:   "InternalServerError",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, kind := errorStatus(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantType, kind)
		})
	}
}
