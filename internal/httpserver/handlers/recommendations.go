package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/recommendations/internal/httpserver/deps"
	"github.com/MrSnakeDoc/recommendations/internal/recommendation"
)

const maxBodyBytes = 1 << 20

var errInvalidBody = &recommendation.MalformedRequestError{
	Field:   "body",
	Message: "body must be valid JSON",
}

// envelope builds the controller input from the request: the JSON body
// becomes Data, query parameters and the {id} URL parameter become Options.
func envelope(w http.ResponseWriter, r *http.Request) (recommendation.Envelope, error) {
	env := recommendation.Envelope{Options: map[string]any{}}

	for key, values := range r.URL.Query() {
		if len(values) > 0 {
			env.Options[key] = values[0]
		}
	}
	if id := chi.URLParam(r, "id"); id != "" {
		env.Options["id"] = id
	}

	if r.Method != http.MethodPost && r.Method != http.MethodPut {
		return env, nil
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return env, &recommendation.MalformedRequestError{Field: "body", Message: "body is too large"}
		}
		return env, errInvalidBody
	}
	if len(body) == 0 {
		return env, nil
	}
	if err := json.Unmarshal(body, &env.Data); err != nil {
		return env, errInvalidBody
	}
	return env, nil
}

func ListRecommendations(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		res, err := d.Controller.ListRecommendations(r.Context())
		d.Metrics.Observe("list", start, err)
		if err != nil {
			writeError(w, r, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func AddRecommendation(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		env, err := envelope(w, r)
		var res *recommendation.Response
		if err == nil {
			res, err = d.Controller.AddRecommendation(r.Context(), env)
		}
		d.Metrics.Observe("add", start, err)
		if err != nil {
			writeError(w, r, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusCreated, res)
	}
}

func EditRecommendation(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		env, err := envelope(w, r)
		var res *recommendation.Response
		if err == nil {
			res, err = d.Controller.EditRecommendation(r.Context(), env)
		}
		d.Metrics.Observe("edit", start, err)
		if err != nil {
			writeError(w, r, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func DeleteRecommendation(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		env, err := envelope(w, r)
		if err == nil {
			err = d.Controller.DeleteRecommendation(r.Context(), env)
		}
		d.Metrics.Observe("delete", start, err)
		if err != nil {
			writeError(w, r, d.Logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
