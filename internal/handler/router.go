package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vaultpass/passgen-go/internal/middleware"
)

// RouterOptions configures authentication and throttling of the API.
type RouterOptions struct {
	JWTSecret      string
	RateLimitRPS   float64
	RateLimitBurst int
}

// NewRouter wires every API route.
func NewRouter(gen *GeneratorHandler, sess *SessionHandler, opts RouterOptions) chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// One limiter shared by every route that generates or allocates.
	limit := middleware.RateLimit(opts.RateLimitRPS, opts.RateLimitBurst)

	r.With(limit).Post("/api/v1/generate", gen.HandleGenerate)
	r.With(limit).Post("/api/v1/sessions", sess.HandleStart)

	r.Route("/api/v1/session", func(r chi.Router) {
		r.Use(middleware.SessionAuth(opts.JWTSecret))
		r.Get("/", sess.HandleGet)
		r.Patch("/options", sess.HandleSetOptions)
		r.With(limit).Post("/generate", sess.HandleGenerate)
		r.Post("/reset", sess.HandleReset)
	})

	return r
}
