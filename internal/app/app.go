package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"

	"sst-facil/orcamento/internal/app/config"
	apphttp "sst-facil/orcamento/internal/app/http"
	"sst-facil/orcamento/internal/app/http/handlers"
	"sst-facil/orcamento/internal/app/metrics"
	"sst-facil/orcamento/internal/domain/pricing"
	"sst-facil/orcamento/internal/domain/quote"
	"sst-facil/orcamento/internal/domain/quote/pdf"
	pdfgen "sst-facil/orcamento/internal/domain/quote/pdf/gofpdf"
	"sst-facil/orcamento/internal/infra/db/postgres"
	"sst-facil/orcamento/internal/infra/spreadsheet"
)

func NewLogger(cfg config.Config) *logrus.Logger {
	log := logrus.New()
	log.SetLevel(cfg.LogLevel)
	log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	return log
}

// LoadPricing reads the price tables from the database when one is
// configured, otherwise from the spreadsheet.
func LoadPricing(ctx context.Context, cfg config.Config, log logrus.FieldLogger) (*pricing.Table, error) {
	var (
		tbl    *pricing.Table
		err    error
		source string
	)
	if cfg.PricingDatabaseURL != "" {
		source = "postgres"
		tbl, err = postgres.LoadPricingDSN(ctx, cfg.PricingDatabaseURL)
	} else {
		source = cfg.PricingXLSX
		tbl, err = spreadsheet.LoadFile(cfg.PricingXLSX)
	}
	if err != nil {
		return nil, fmt.Errorf("pricing from %s: %w", source, err)
	}
	services, cities := tbl.Len()
	log.WithFields(logrus.Fields{
		"source":   source,
		"services": services,
		"cities":   cities,
	}).Info("price tables loaded")
	return tbl, nil
}

func NewGenerator(cfg config.Config, log logrus.FieldLogger) pdf.Generator {
	g := pdfgen.New()
	if cfg.PDFFontDir != "" {
		g = pdfgen.NewWithFonts(cfg.PDFFontDir)
	}
	g.Log = log
	return g
}

func Run(cfg config.Config) error {
	log := NewLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tbl, err := LoadPricing(ctx, cfg, log)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	calc := quote.NewCalculator(tbl, cfg.WaivedCity, log)
	h := handlers.New(calc, NewGenerator(cfg, log), m, log)
	router := apphttp.NewRouter(h, m, log)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.HTTPAddr).Info("listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
