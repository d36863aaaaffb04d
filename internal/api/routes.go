package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func (s *Server) Routes() http.Handler {
	origins := s.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	timeout := s.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Get("/catalog/{variant}", s.handleCatalog)

	r.Route("/games", func(r chi.Router) {
		r.With(timeoutMiddleware(timeout)).Post("/", s.handleCreateGame)
		r.Route("/{id}", func(r chi.Router) {
			// the stream is long-lived and needs the raw connection
			r.Get("/stream", s.handleStream)

			r.Group(func(r chi.Router) {
				r.Use(timeoutMiddleware(timeout))
				r.Get("/", s.handleGetGame)
				r.Delete("/", s.handleDeleteGame)
				r.Post("/start", s.handleStartGame)
				r.Post("/answer", s.handleAnswer)
				r.Post("/next", s.handleNextRound)
				r.Post("/reset", s.handleResetGame)
				r.Post("/flip", s.handleFlip)
			})
		})
	})
	return r
}
