package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/recommendations/internal/config"
	"github.com/MrSnakeDoc/recommendations/internal/httpserver/deps"
	"github.com/MrSnakeDoc/recommendations/internal/httpserver/mw"
	"github.com/MrSnakeDoc/recommendations/internal/logger"
	"github.com/MrSnakeDoc/recommendations/internal/metrics"
	"github.com/MrSnakeDoc/recommendations/internal/recommendation"
	"github.com/MrSnakeDoc/recommendations/internal/service"
	"github.com/MrSnakeDoc/recommendations/internal/store/memory"
)

type errorBody struct {
	Errors []struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"errors"`
}

type testServer struct {
	handler http.Handler
	store   *memory.Store
	metrics *metrics.Metrics
}

func newTestServer(t *testing.T, mutate ...func(d *deps.Deps)) *testServer {
	t.Helper()
	log := logger.NewNop()
	store := memory.NewStore()
	svc := service.NewRecommendationService(store, log)
	m := metrics.New()

	d := deps.Deps{
		Logger:       log,
		StartTime:    time.Now(),
		Version:      "test",
		Controller:   recommendation.NewController(svc, log),
		Store:        svc,
		StoreBackend: config.BackendMemory,
		Metrics:      m,
		RateLimit:    mw.RateLimitConfig{Burst: 100, RefillPerIPPerMin: 100},
	}
	for _, fn := range mutate {
		fn(&d)
	}

	cfg := &config.Config{ListenPort: ":0", RequestTimeout: 5 * time.Second}
	return &testServer{handler: New(cfg, log, d).Handler(), store: store, metrics: m}
}

func (ts *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) recommendation.Response {
	t.Helper()
	var res recommendation.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res), rec.Body.String())
	return res
}

func decodeErrors(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	require.Len(t, body.Errors, 1)
	return body
}

func TestRecommendationLifecycle(t *testing.T) {
	ts := newTestServer(t)

	created := ts.do(t, http.MethodPost, "/api/recommendations",
		`{"recommendations":[{"title":"Ghost","url":"https://ghost.org","reason":"Great"}]}`)
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())

	res := decodeResponse(t, created)
	require.Len(t, res.Data, 1)
	rec := res.Data[0]
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "Ghost", rec.Title)
	assert.Equal(t, "https://ghost.org/", rec.URL)
	require.NotNil(t, rec.Reason)
	assert.Equal(t, "Great", *rec.Reason)
	assert.Nil(t, rec.UpdatedAt)

	edited := ts.do(t, http.MethodPut, "/api/recommendations/"+rec.ID,
		`{"recommendations":[{"title":"Ghost Blog","reason":null}]}`)
	require.Equal(t, http.StatusOK, edited.Code, edited.Body.String())

	res = decodeResponse(t, edited)
	require.Len(t, res.Data, 1)
	assert.Equal(t, "Ghost Blog", res.Data[0].Title)
	assert.Equal(t, "https://ghost.org/", res.Data[0].URL)
	assert.Nil(t, res.Data[0].Reason)
	assert.NotNil(t, res.Data[0].UpdatedAt)

	listed := ts.do(t, http.MethodGet, "/api/recommendations", "")
	require.Equal(t, http.StatusOK, listed.Code)
	assert.Len(t, decodeResponse(t, listed).Data, 1)

	deleted := ts.do(t, http.MethodDelete, "/api/recommendations/"+rec.ID, "")
	assert.Equal(t, http.StatusNoContent, deleted.Code)
	assert.Empty(t, deleted.Body.String())

	assert.Equal(t, 0, ts.store.Count())
}

func TestListEmpty(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/recommendations", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":[]}`, rec.Body.String())
}

func TestMalformedRequests(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name    string
		method  string
		path    string
		body    string
		message string
	}{
		{
			name:    "invalid json",
			method:  http.MethodPost,
			path:    "/api/recommendations",
			body:    `{"recommendations":`,
			message: "body must be valid JSON",
		},
		{
			name:    "missing recommendations",
			method:  http.MethodPost,
			path:    "/api/recommendations",
			body:    `{}`,
			message: "recommendations is required",
		},
		{
			name:    "missing url",
			method:  http.MethodPost,
			path:    "/api/recommendations",
			body:    `{"recommendations":[{"title":"x"}]}`,
			message: "url is required",
		},
		{
			name:    "relative url",
			method:  http.MethodPost,
			path:    "/api/recommendations",
			body:    `{"recommendations":[{"url":"/relative"}]}`,
			message: "url must be a valid URL",
		},
		{
			name:    "title of wrong type",
			method:  http.MethodPost,
			path:    "/api/recommendations",
			body:    `{"recommendations":[{"title":5,"url":"https://a.com"}]}`,
			message: "title must be a string",
		},
		{
			name:    "subscribe of wrong type",
			method:  http.MethodPut,
			path:    "/api/recommendations/abc",
			body:    `{"recommendations":[{"one_click_subscribe":"yes"}]}`,
			message: "one_click_subscribe must be a boolean",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(t, tt.method, tt.path, tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

			body := decodeErrors(t, rec)
			assert.Equal(t, tt.message, body.Errors[0].Message)
			assert.Equal(t, "BadRequestError", body.Errors[0].Type)
		})
	}

	assert.Equal(t, 0, ts.store.Count())
}

func TestNotFound(t *testing.T) {
	ts := newTestServer(t)

	edit := ts.do(t, http.MethodPut, "/api/recommendations/missing", `{"recommendations":[{"title":"x"}]}`)
	require.Equal(t, http.StatusNotFound, edit.Code)
	assert.Equal(t, "NotFoundError", decodeErrors(t, edit).Errors[0].Type)

	del := ts.do(t, http.MethodDelete, "/api/recommendations/missing", "")
	require.Equal(t, http.StatusNotFound, del.Code)
}

type failingPinger struct{}

func (failingPinger) Ping(context.Context) error { return errors.New("connection refused") }

func TestProbes(t *testing.T) {
	ts := newTestServer(t)

	health := ts.do(t, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, health.Code)
	assert.Contains(t, health.Body.String(), `"status":"ok"`)
	assert.Contains(t, health.Body.String(), `"backend":"memory"`)

	ready := ts.do(t, http.MethodGet, "/readyz", "")
	require.Equal(t, http.StatusOK, ready.Code)
	assert.Contains(t, ready.Body.String(), `"ready":true`)

	down := newTestServer(t, func(d *deps.Deps) { d.Store = failingPinger{} })
	notReady := down.do(t, http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusServiceUnavailable, notReady.Code)
	assert.NotContains(t, notReady.Body.String(), "connection refused")
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t)
	ts.do(t, http.MethodGet, "/api/recommendations", "")
	ts.do(t, http.MethodPost, "/api/recommendations", `{}`)

	rec := ts.do(t, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `recommendations_operations_total{operation="list",outcome="ok"} 1`)
	assert.Contains(t, rec.Body.String(), `recommendations_operations_total{operation="add",outcome="malformed"} 1`)

	disabled := newTestServer(t, func(d *deps.Deps) { d.Metrics = nil })
	assert.Equal(t, http.StatusNotFound, disabled.do(t, http.MethodGet, "/metrics", "").Code)
}

func TestWriteRoutesEnforceHost(t *testing.T) {
	ts := newTestServer(t, func(d *deps.Deps) { d.AllowedHosts = []string{"recs.example.com"} })

	// httptest requests use Host "example.com"
	rec := ts.do(t, http.MethodPost, "/api/recommendations", `{"recommendations":[{"url":"https://a.com"}]}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	assert.Equal(t, http.StatusOK, ts.do(t, http.MethodGet, "/api/recommendations", "").Code)
}

func TestWriteRoutesRateLimited(t *testing.T) {
	ts := newTestServer(t, func(d *deps.Deps) {
		d.RateLimit = mw.RateLimitConfig{Burst: 1, RefillPerIPPerMin: 1}
	})

	first := ts.do(t, http.MethodPost, "/api/recommendations", `{"recommendations":[{"url":"https://a.com"}]}`)
	assert.Equal(t, http.StatusCreated, first.Code)

	second := ts.do(t, http.MethodPost, "/api/recommendations", `{"recommendations":[{"url":"https://b.com"}]}`)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}
