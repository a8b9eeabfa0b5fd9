// Package pricing holds the reference price tables a quote is computed from.
//
// A Table is built once at startup from a price source (spreadsheet or
// database) and is read-only afterwards, so it can be shared between
// requests without locking.
package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
)

// ServiceEntry is one row of the "Preço por serviço" table.
type ServiceEntry struct {
	Service string
	Bracket string
	Value   decimal.Decimal
}

// AlignmentEntry is one row of the "Alinhamento" table.
type AlignmentEntry struct {
	City  string
	Value decimal.Decimal
}

type serviceKey struct {
	service string
	bracket string
}

type Table struct {
	services  map[serviceKey]decimal.Decimal
	alignment map[string]decimal.Decimal
}

func New(services []ServiceEntry, alignment []AlignmentEntry) (*Table, error) {
	t := &Table{
		services:  make(map[serviceKey]decimal.Decimal, len(services)),
		alignment: make(map[string]decimal.Decimal, len(alignment)),
	}
	for _, e := range services {
		if e.Value.IsNegative() {
			return nil, fmt.Errorf("pricing: negative value for %s/%s", e.Service, e.Bracket)
		}
		k := serviceKey{service: e.Service, bracket: e.Bracket}
		if _, dup := t.services[k]; dup {
			return nil, fmt.Errorf("pricing: duplicate row for %s/%s", e.Service, e.Bracket)
		}
		t.services[k] = e.Value
	}
	for _, e := range alignment {
		if e.Value.IsNegative() {
			return nil, fmt.Errorf("pricing: negative alignment value for %s", e.City)
		}
		k := foldCity(e.City)
		if _, dup := t.alignment[k]; dup {
			return nil, fmt.Errorf("pricing: duplicate alignment row for %s", e.City)
		}
		t.alignment[k] = e.Value
	}
	return t, nil
}

// Lookup is an exact, case-sensitive match on service and bracket.
func (t *Table) Lookup(service, bracket string) (decimal.Decimal, bool) {
	v, ok := t.services[serviceKey{service: service, bracket: bracket}]
	return v, ok
}

// AlignmentLookup matches the city ignoring case.
func (t *Table) AlignmentLookup(city string) (decimal.Decimal, bool) {
	v, ok := t.alignment[foldCity(city)]
	return v, ok
}

// PriceFor returns zero when no row matches.
func (t *Table) PriceFor(service, bracket string) decimal.Decimal {
	v, _ := t.Lookup(service, bracket)
	return v
}

// AlignmentPriceFor returns zero when the city is not listed.
func (t *Table) AlignmentPriceFor(city string) decimal.Decimal {
	v, _ := t.AlignmentLookup(city)
	return v
}

func (t *Table) Len() (services, cities int) {
	return len(t.services), len(t.alignment)
}

// SameCity reports whether two city names are equal ignoring case.
func SameCity(a, b string) bool {
	return foldCity(a) == foldCity(b)
}

func foldCity(city string) string {
	// cases.Caser keeps state, a fresh one per call is safe for concurrent readers.
	return cases.Fold().String(strings.TrimSpace(city))
}
