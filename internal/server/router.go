package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"churnscore/pkg/logx"
	"churnscore/pkg/middlewarex"
)

// NewRouter wires the middleware chain in front of the routes.
func NewRouter(s Server, logFieldMaxLen int) http.Handler {
	masker := logx.NewSensitiveDataMasker()

	r := chi.NewRouter()

	r.Use(
		middlewarex.TraceID,
		middlewarex.Logger,
		middlewarex.Recovery,
		middlewarex.RequestLogging(masker, logFieldMaxLen),
		middlewarex.ResponseLogging(masker, logFieldMaxLen),
	)

	s.RegisterRoutes(r)

	return r
}
