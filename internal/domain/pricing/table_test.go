package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture(t *testing.T) *Table {
	t.Helper()
	tbl, err := New(
		[]ServiceEntry{
			{Service: "PGR", Bracket: "ATÉ 5", Value: decimal.NewFromInt(300)},
			{Service: "PGR", Bracket: "DE 6 A 19", Value: decimal.NewFromInt(450)},
			{Service: "PCMSO", Bracket: "DE 6 A 19", Value: decimal.RequireFromString("380.50")},
		},
		[]AlignmentEntry{
			{City: "Parelhas", Value: decimal.NewFromInt(100)},
			{City: "Caicó", Value: decimal.NewFromInt(180)},
		},
	)
	require.NoError(t, err)
	return tbl
}

func TestPriceFor(t *testing.T) {
	tbl := fixture(t)

	assert.True(t, tbl.PriceFor("PGR", "DE 6 A 19").Equal(decimal.NewFromInt(450)))
	assert.True(t, tbl.PriceFor("PCMSO", "DE 6 A 19").Equal(decimal.RequireFromString("380.5")))
}

func TestPriceFor_MissingIsZero(t *testing.T) {
	tbl := fixture(t)

	tests := []struct {
		name    string
		service string
		bracket string
	}{
		{"unknown service", "ESOCIAL", "DE 6 A 19"},
		{"unknown bracket", "PGR", "ACIMA DE 100"},
		{"service is case sensitive", "pgr", "DE 6 A 19"},
		{"bracket is case sensitive", "PGR", "de 6 a 19"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tbl.PriceFor(tt.service, tt.bracket).IsZero())
			_, ok := tbl.Lookup(tt.service, tt.bracket)
			assert.False(t, ok)
		})
	}
}

func TestAlignmentPriceFor_IgnoresCase(t *testing.T) {
	tbl := fixture(t)

	for _, city := range []string{"Parelhas", "PARELHAS", "parelhas", "  parelhas "} {
		assert.True(t, tbl.AlignmentPriceFor(city).Equal(decimal.NewFromInt(100)), city)
	}
	assert.True(t, tbl.AlignmentPriceFor("CAICÓ").Equal(decimal.NewFromInt(180)))
}

func TestAlignmentPriceFor_MissingIsZero(t *testing.T) {
	tbl := fixture(t)

	assert.True(t, tbl.AlignmentPriceFor("Natal").IsZero())
	_, ok := tbl.AlignmentLookup("Natal")
	assert.False(t, ok)
}

func TestNew_RejectsDuplicates(t *testing.T) {
	_, err := New([]ServiceEntry{
		{Service: "PGR", Bracket: "ATÉ 5", Value: decimal.NewFromInt(1)},
		{Service: "PGR", Bracket: "ATÉ 5", Value: decimal.NewFromInt(2)},
	}, nil)
	assert.Error(t, err)

	_, err = New(nil, []AlignmentEntry{
		{City: "Parelhas", Value: decimal.NewFromInt(1)},
		{City: "PARELHAS", Value: decimal.NewFromInt(2)},
	})
	assert.Error(t, err)
}

func TestNew_RejectsNegative(t *testing.T) {
	_, err := New([]ServiceEntry{{Service: "PGR", Bracket: "ATÉ 5", Value: decimal.NewFromInt(-1)}}, nil)
	assert.Error(t, err)
}

func TestSameCity(t *testing.T) {
	assert.True(t, SameCity("Parelhas", "PARELHAS"))
	assert.True(t, SameCity("são paulo", "SÃO PAULO"))
	assert.False(t, SameCity("Parelhas", "Parelha"))
}

func TestLen(t *testing.T) {
	s, c := fixture(t).Len()
	assert.Equal(t, 3, s)
	assert.Equal(t, 2, c)
}
