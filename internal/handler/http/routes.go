package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the chi router with the full middleware chain and all routes.
//
// The middleware order matters: trace IDs are assigned before access logging
// so that every log line of a request carries its trace_id, and the timeout
// wraps the handlers so that service calls inherit a bounded context.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/user/signup", h.signup)
		r.Post("/user/login", h.login)
		r.Get("/ping", h.ping)
	})

	// routes behind the bearer-token gate; role checks happen inside the
	// candidate service against the stored role
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/user/profile", h.profile)
		r.Put("/user/profile/password", h.changePassword)

		r.Post("/candidate", h.createCandidate)
		r.Get("/candidate", h.listCandidates)
		r.Put("/candidate/{candidateID}", h.updateCandidate)
		r.Delete("/candidate/{candidateID}", h.deleteCandidate)

		r.Post("/candidate/vote/{candidateID}", h.castVote)
		r.Get("/candidate/vote/count", h.voteCount)
	})

	return router
}
