package quote

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"sst-facil/orcamento/internal/domain/pricing"
)

const (
	ServicePGR       = "PGR"
	ServicePCMSO     = "PCMSO"
	ServiceAlignment = "ALINHAMENTO"
	ServiceVisit     = "Visita"
	ServiceESocial   = "ESOCIAL"
)

const (
	LabelPGR       = "PGR - Programa de Gerenciamento de Riscos"
	LabelPCMSO     = "PCMSO - Controle Médico de Saúde Ocupacional"
	LabelAlignment = "ALINHAMENTO - Relatório de Primeira Etapa"
	LabelVisit     = "Visita Técnica"
	LabelESocial   = "ESOCIAL - Transmissões e Atualizações"
)

const (
	DefaultWaivedCity = "Parelhas"
	DefaultValidDays  = 15
)

var smallBusinessDiscount = decimal.NewFromFloat(0.5)

// PriceSource is satisfied by *pricing.Table.
type PriceSource interface {
	Lookup(service, bracket string) (decimal.Decimal, bool)
	AlignmentLookup(city string) (decimal.Decimal, bool)
}

// Calculator prices quotes. WaivedCity gets no visit fee; empty means
// DefaultWaivedCity.
type Calculator struct {
	Prices     PriceSource
	WaivedCity string
	Now        func() time.Time
	Log        logrus.FieldLogger
}

func NewCalculator(prices PriceSource, waivedCity string, log logrus.FieldLogger) *Calculator {
	return &Calculator{Prices: prices, WaivedCity: waivedCity, Log: log}
}

// Calculate never fails: rows missing from the price tables are quoted at
// zero and reported in Quote.Unpriced.
func (c *Calculator) Calculate(client Client) Quote {
	bracket := Classify(client.Employees)
	q := Quote{
		Client:    client,
		Bracket:   bracket,
		IssuedAt:  c.now(),
		ValidDays: DefaultValidDays,
	}

	q.add(LabelPGR, ServicePGR, c.servicePrice(&q, ServicePGR, bracket))
	q.add(LabelPCMSO, ServicePCMSO, c.servicePrice(&q, ServicePCMSO, bracket))
	q.add(LabelAlignment, ServiceAlignment, c.alignmentPrice(&q, client.City))

	visit := decimal.Zero
	if !pricing.SameCity(client.City, c.waivedCity()) {
		visit = c.servicePrice(&q, ServiceVisit, bracket)
	}
	q.add(LabelVisit, ServiceVisit, visit)

	if client.ESocial {
		q.add(LabelESocial, ServiceESocial, c.servicePrice(&q, ServiceESocial, bracket))
	}

	q.DiscountRate = decimal.Zero
	if client.Size.SmallBusiness() {
		q.DiscountRate = smallBusinessDiscount
	}

	q.Subtotal = decimal.Zero
	for _, l := range q.Lines {
		q.Subtotal = q.Subtotal.Add(l.Amount)
	}
	q.DiscountAmount = q.Subtotal.Mul(q.DiscountRate)
	q.Total = q.Subtotal.Sub(q.DiscountAmount)
	return q
}

func (q *Quote) add(label, service string, amount decimal.Decimal) {
	q.Lines = append(q.Lines, Line{Label: label, Service: service, Amount: amount})
}

func (c *Calculator) servicePrice(q *Quote, service string, bracket Bracket) decimal.Decimal {
	v, ok := c.Prices.Lookup(service, string(bracket))
	if !ok {
		q.Unpriced = append(q.Unpriced, Unpriced{Service: service, Key: string(bracket)})
		c.log().WithFields(logrus.Fields{
			"cnpj":    q.Client.CNPJ,
			"service": service,
			"bracket": string(bracket),
		}).Warn("no price row")
		return decimal.Zero
	}
	return v
}

func (c *Calculator) alignmentPrice(q *Quote, city string) decimal.Decimal {
	v, ok := c.Prices.AlignmentLookup(city)
	if !ok {
		q.Unpriced = append(q.Unpriced, Unpriced{Service: ServiceAlignment, Key: city})
		c.log().WithFields(logrus.Fields{
			"cnpj": q.Client.CNPJ,
			"city": city,
		}).Warn("no alignment price row")
		return decimal.Zero
	}
	return v
}

func (c *Calculator) waivedCity() string {
	if c.WaivedCity == "" {
		return DefaultWaivedCity
	}
	return c.WaivedCity
}

func (c *Calculator) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c *Calculator) log() logrus.FieldLogger {
	if c.Log != nil {
		return c.Log
	}
	return logrus.StandardLogger()
}
