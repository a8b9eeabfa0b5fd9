// Package spreadsheet loads the price tables from the office's xlsx workbook.
package spreadsheet

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"sst-facil/orcamento/internal/domain/pricing"
)

const (
	ServicesSheet  = "Preço por serviço"
	AlignmentSheet = "Alinhamento"

	ColService = "Serviço"
	ColBracket = "Faixa"
	ColValue   = "Valor"
	ColCity    = "Cidade"
)

func LoadFile(path string) (*pricing.Table, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open price sheet: %w", err)
	}
	defer fh.Close()
	return Load(fh)
}

func Load(r io.Reader) (*pricing.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	svcRows, err := readSheet(f, ServicesSheet, ColService, ColBracket, ColValue)
	if err != nil {
		return nil, err
	}
	services := make([]pricing.ServiceEntry, 0, len(svcRows))
	for _, row := range svcRows {
		v, err := ParseValue(row.cells[2])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", ServicesSheet, row.n, err)
		}
		services = append(services, pricing.ServiceEntry{
			Service: strings.TrimSpace(row.cells[0]),
			Bracket: strings.TrimSpace(row.cells[1]),
			Value:   v,
		})
	}

	cityRows, err := readSheet(f, AlignmentSheet, ColCity, ColValue)
	if err != nil {
		return nil, err
	}
	alignment := make([]pricing.AlignmentEntry, 0, len(cityRows))
	for _, row := range cityRows {
		v, err := ParseValue(row.cells[1])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", AlignmentSheet, row.n, err)
		}
		alignment = append(alignment, pricing.AlignmentEntry{City: strings.TrimSpace(row.cells[0]), Value: v})
	}

	return pricing.New(services, alignment)
}

type sheetRow struct {
	n     int
	cells []string
}

// readSheet returns the requested columns of every non-blank data row, in the
// order the columns were asked for.
func readSheet(f *excelize.File, sheet string, columns ...string) ([]sheetRow, error) {
	if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		return nil, fmt.Errorf("price sheet: missing sheet %q", sheet)
	}
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("price sheet: sheet %q has no header row", sheet)
	}

	pos := make([]int, len(columns))
	for i, col := range columns {
		pos[i] = -1
		for j, h := range rows[0] {
			if normalizeHeader(h) == normalizeHeader(col) {
				pos[i] = j
				break
			}
		}
		if pos[i] < 0 {
			return nil, fmt.Errorf("price sheet: sheet %q has no %q column", sheet, col)
		}
	}

	var out []sheetRow
	for n, raw := range rows[1:] {
		cells := make([]string, len(columns))
		blank := true
		for i, p := range pos {
			if p < len(raw) {
				cells[i] = raw[p]
			}
			if strings.TrimSpace(cells[i]) != "" {
				blank = false
			}
		}
		if blank {
			continue
		}
		out = append(out, sheetRow{n: n + 2, cells: cells})
	}
	return out, nil
}

func normalizeHeader(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

var thousandsOnly = regexp.MustCompile(`^\d{1,3}(\.\d{3})+$`)

// ParseValue accepts raw numeric cells ("1234.5") and pt-BR text ("R$ 1.234,50").
// Without a comma, dots followed by exactly three digits in every group are
// thousands separators, so "1.234" is 1234 and "1.2345" stays 1.2345.
func ParseValue(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "R$"))
	if s == "" {
		return decimal.Decimal{}, fmt.Errorf("empty value")
	}
	switch {
	case strings.Contains(s, ","):
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case thousandsOnly.MatchString(s):
		s = strings.ReplaceAll(s, ".", "")
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid value %q", s)
	}
	return v, nil
}
