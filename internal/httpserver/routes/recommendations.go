package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/recommendations/internal/httpserver/deps"
	"github.com/MrSnakeDoc/recommendations/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/recommendations/internal/httpserver/mw"
)

func init() { Register(registerRecommendations) }

func registerRecommendations(r chi.Router, d deps.Deps) {
	r.Route("/api/recommendations", func(r chi.Router) {
		r.Get("/", handlers.ListRecommendations(d))

		r.Group(func(r chi.Router) {
			r.Use(mw.EnforceHost(d.AllowedHosts, d.Logger))
			r.Use(mw.RateLimit(d.RateLimit))

			r.Post("/", handlers.AddRecommendation(d))
			r.Put("/{id}", handlers.EditRecommendation(d))
			r.Delete("/{id}", handlers.DeleteRecommendation(d))
		})
	})
}
