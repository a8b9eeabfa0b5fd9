package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"sst-facil/orcamento/internal/domain/pricing"
)

const (
	servicesQuery  = `SELECT servico, faixa, valor::text FROM preco_servico ORDER BY servico, faixa`
	alignmentQuery = `SELECT cidade, valor::text FROM alinhamento ORDER BY cidade`
)

// Querier is the subset of pgxpool.Pool the loader needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// LoadPricing reads both price tables once. The same schema as the
// spreadsheet: preco_servico(servico, faixa, valor) and alinhamento(cidade, valor).
func LoadPricing(ctx context.Context, q Querier) (*pricing.Table, error) {
	rows, err := q.Query(ctx, servicesQuery)
	if err != nil {
		return nil, fmt.Errorf("query preco_servico: %w", err)
	}
	services, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (pricing.ServiceEntry, error) {
		var e pricing.ServiceEntry
		var raw string
		if err := row.Scan(&e.Service, &e.Bracket, &raw); err != nil {
			return e, err
		}
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return e, fmt.Errorf("preco_servico %s/%s: %w", e.Service, e.Bracket, err)
		}
		e.Value = v
		return e, nil
	})
	if err != nil {
		return nil, fmt.Errorf("read preco_servico: %w", err)
	}

	rows, err = q.Query(ctx, alignmentQuery)
	if err != nil {
		return nil, fmt.Errorf("query alinhamento: %w", err)
	}
	alignment, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (pricing.AlignmentEntry, error) {
		var e pricing.AlignmentEntry
		var raw string
		if err := row.Scan(&e.City, &raw); err != nil {
			return e, err
		}
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return e, fmt.Errorf("alinhamento %s: %w", e.City, err)
		}
		e.Value = v
		return e, nil
	})
	if err != nil {
		return nil, fmt.Errorf("read alinhamento: %w", err)
	}

	return pricing.New(services, alignment)
}

// LoadPricingDSN opens a short-lived pool, loads the tables and closes it.
func LoadPricingDSN(ctx context.Context, dsn string) (*pricing.Table, error) {
	db, err := New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("db: %w", err)
	}
	defer db.Close()
	return LoadPricing(ctx, db.Pool)
}
