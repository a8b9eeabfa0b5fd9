package pdf

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"sst-facil/orcamento/internal/domain/quote"
)

// ErrUnsupportedText means the quote holds characters the configured fonts
// cannot draw.
var ErrUnsupportedText = errors.New("text not supported by pdf fonts")

type Generator interface {
	Generate(q quote.Quote) ([]byte, error)
}

const (
	Title           = "SST FÁCIL - PROPOSTA DE ORÇAMENTO"
	ContentType     = "application/pdf"
	dateLayout      = "02/01/2006"
	clientHeading   = "Dados do Cliente:"
	servicesHeading = "Serviços Contratados:"
	disclaimer      = "Este orçamento inclui os principais programas obrigatórios para garantir a segurança e a saúde ocupacional da sua empresa.\n\nConte com a SST FÁCIL para um atendimento técnico, humanizado e eficiente."
)

type Item struct {
	Label  string
	Amount string
}

// Document is the printable text of a quote, independent of the PDF backend.
type Document struct {
	Title           string
	IssueLine       string
	ClientHeading   string
	ClientFields    []string
	ServicesHeading string
	Items           []Item
	DiscountLine    string
	TotalLine       string
	Disclaimer      string
	ValidityLine    string
}

func Layout(q quote.Quote) Document {
	doc := Document{
		Title:         Title,
		IssueLine:     "Data de emissão: " + q.IssuedAt.Format(dateLayout),
		ClientHeading: clientHeading,
		ClientFields: []string{
			"Razão Social: " + q.Client.LegalName,
			"CNPJ: " + q.Client.CNPJ,
			"Cidade: " + q.Client.City,
			"Nº de trabalhadores: " + strconv.Itoa(q.Client.Employees),
			"Porte da empresa: " + string(q.Client.Size),
		},
		ServicesHeading: servicesHeading,
		DiscountLine:    "DESCONTO: - " + quote.FormatBRL(q.DiscountAmount),
		TotalLine:       "TOTAL: " + quote.FormatBRL(q.Total),
		Disclaimer:      disclaimer,
		ValidityLine: fmt.Sprintf(
			"Agradecemos pela confiança. Este orçamento é válido por %d dias a partir da data de emissão (até %s).",
			q.ValidDays, q.ValidUntil().Format(dateLayout)),
	}
	for _, l := range q.Lines {
		doc.Items = append(doc.Items, Item{Label: l.Label, Amount: "Valor: " + quote.FormatBRL(l.Amount)})
	}
	return doc
}

// FileName derives the download name from the CNPJ, keeping only letters and digits.
func FileName(cnpj string) string {
	clean := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, cnpj)
	return "orcamento_" + clean + ".pdf"
}
