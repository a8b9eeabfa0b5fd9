package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"sst-facil/orcamento/internal/app/http/handlers"
	"sst-facil/orcamento/internal/app/http/middleware"
	"sst-facil/orcamento/internal/app/metrics"
)

func NewRouter(h *handlers.Handlers, m *metrics.Metrics, log logrus.FieldLogger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.Logging(log, m))
	r.Use(chimw.Recoverer)

	r.Get("/health", h.Health)
	r.Handle("/metrics", m.Handler())

	r.Get("/", h.Form)
	r.Post("/orcamento", h.SubmitForm)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/quotes", h.CreateQuote)
	})

	return r
}
