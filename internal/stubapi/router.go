// Package stubapi is a development stand-in for the loyalty-points
// backend. It implements exactly the contract the client consumes, keeps
// all state in memory and issues real HS256 bearer tokens, so the client
// can be exercised end to end without a deployment.
package stubapi

import (
	"github.com/go-chi/chi/v5"

	"pointcard/internal/logger"
)

func NewRouter(db *Store, auth *Auth) *chi.Mux {
	h := NewHandlers(db, auth)

	r := chi.NewRouter()

	r.Use(
		logger.WithLoggingHTTPMiddleware,
	)

	r.Post(`/api/login`, h.PostApilogin)
	r.Post(`/api/register`, h.PostApiregister)

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthenticateUser)

		r.Get(`/api/user`, h.GetApiuser)
		r.Post(`/api/points/add`, h.PostApipointsadd)
		r.Post(`/api/points/use`, h.PostApipointsuse)
	})

	return r
}
