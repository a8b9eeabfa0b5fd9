package handlers

import (
	"embed"
	"html/template"

	"github.com/sirupsen/logrus"

	"sst-facil/orcamento/internal/app/metrics"
	"sst-facil/orcamento/internal/domain/quote"
	"sst-facil/orcamento/internal/domain/quote/pdf"
)

//go:embed templates/*.html
var templateFS embed.FS

var formTemplate = template.Must(template.ParseFS(templateFS, "templates/form.html"))

type Handlers struct {
	Calc    *quote.Calculator
	PDF     pdf.Generator
	Metrics *metrics.Metrics
	Log     logrus.FieldLogger
}

func New(calc *quote.Calculator, gen pdf.Generator, m *metrics.Metrics, log logrus.FieldLogger) *Handlers {
	return &Handlers{
		Calc:    calc,
		PDF:     gen,
		Metrics: m,
		Log:     log,
	}
}
