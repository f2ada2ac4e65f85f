package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"churnscore/pkg/httpx/reply"
)

func (s Server) RegisterRoutes(r chi.Router) {
	r.Route("/", func(r chi.Router) {
		r.Get("/", handler(s.getForm))
		r.Post("/", handler(s.postForm))

		r.Route("/v1", func(r chi.Router) {
			r.Post("/predictions", handler(s.postV1Prediction))
			r.Get("/schema", handler(s.getV1Schema))
		})
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			reply.Error(r.Context(), w, err)
		}
	}
}
