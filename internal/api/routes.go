package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

func SetupRoutes(handler *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Setup middleware
	for _, middleware := range SetupMiddleware() {
		r.Use(middleware)
	}

	// JSON content type
	r.Use(render.SetContentType(render.ContentTypeJSON))

	// Health check endpoint
	r.Get("/health", handler.HealthCheck)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/worlds", func(r chi.Router) {
			r.Post("/", handler.CreateWorld)
			r.Get("/", handler.ListWorlds)
			r.Get("/{id}", handler.GetWorld)
			r.Delete("/{id}", handler.DeleteWorld)
		})

		r.Get("/blocks", handler.GetBlocks)
	})

	return r
}
