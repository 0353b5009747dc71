package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/itchan-dev/threadboard/backend/internal/setup"
	mw "github.com/itchan-dev/threadboard/shared/middleware"
	"github.com/itchan-dev/threadboard/shared/middleware/metrics"
)

// New builds the chi router with the middleware stack and all routes.
// Write endpoints share one per-IP limiter.
func New(deps *setup.Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(mw.RequestId)
	r.Use(chimw.Recoverer)
	r.Use(mw.SecurityHeaders(deps.Config.Public.SecureCookies))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: deps.Config.Public.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", mw.RequestIdHeader},
		ExposedHeaders: []string{mw.RequestIdHeader},
		MaxAge:         300,
	}))
	r.Use(metrics.Middleware)
	r.Use(chimw.Compress(5, "application/json"))

	h := deps.Handler
	limitWrites := mw.RateLimit(deps.RateLimiter, mw.GetIP)

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Get("/boards", h.ListBoards)
		r.Get("/boards/{board}", h.GetBoard)
		r.Get("/boards/{board}/replies", h.ListReplies)
		r.Get("/replies/{reply}", h.GetReply)
		// view counting is unauthenticated traffic, keep it off the write limiter
		r.Post("/boards/{board}/views", h.IncrementBoardViews)

		r.Group(func(r chi.Router) {
			r.Use(limitWrites)
			r.Post("/boards", h.CreateBoard)
			r.Put("/boards/{board}", h.UpdateBoard)
			r.Delete("/boards/{board}", h.DeleteBoard)
			r.Post("/boards/{board}/replies", h.CreateReply)
			r.Put("/replies/{reply}", h.UpdateReply)
			r.Delete("/replies/{reply}", h.DeleteReply)
		})
	})

	return r
}
