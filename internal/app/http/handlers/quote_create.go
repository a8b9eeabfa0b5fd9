package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"sst-facil/orcamento/internal/domain/quote"
	"sst-facil/orcamento/internal/domain/quote/pdf"
)

type CreateQuoteRequest struct {
	CNPJ      string `json:"cnpj"`
	LegalName string `json:"legal_name"`
	City      string `json:"city"`
	Employees int    `json:"employees"`
	Size      string `json:"size"`
	ESocial   bool   `json:"esocial"`
}

type QuoteLine struct {
	Label   string          `json:"label"`
	Service string          `json:"service"`
	Amount  decimal.Decimal `json:"amount"`
}

type UnpricedLine struct {
	Service string `json:"service"`
	Key     string `json:"key"`
}

type QuoteResponse struct {
	Bracket        string          `json:"bracket"`
	Lines          []QuoteLine     `json:"lines"`
	DiscountRate   decimal.Decimal `json:"discount_rate"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	Total          decimal.Decimal `json:"total"`
	IssuedAt       time.Time       `json:"issued_at"`
	ValidUntil     time.Time       `json:"valid_until"`
	FileName       string          `json:"file_name"`
	Unpriced       []UnpricedLine  `json:"unpriced"`
}

// CreateQuote answers with the quote as JSON, or as the PDF download when
// called with ?format=pdf.
func (h *Handlers) CreateQuote(w http.ResponseWriter, r *http.Request) {
	var req CreateQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	size, err := quote.ParseSize(req.Size)
	if err != nil {
		http.Error(w, "size must be one of MEI, ME, EPP, Outros", http.StatusBadRequest)
		return
	}
	client := quote.Client{
		CNPJ:      req.CNPJ,
		LegalName: req.LegalName,
		City:      req.City,
		Employees: req.Employees,
		Size:      size,
		ESocial:   req.ESocial,
	}
	if err := client.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if r.URL.Query().Get("format") == "pdf" {
		h.writePDF(w, h.calculate(client, "pdf"))
		return
	}

	q := h.calculate(client, "json")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(toResponse(q)); err != nil {
		h.Log.WithError(err).Warn("encode quote response")
	}
}

func toResponse(q quote.Quote) QuoteResponse {
	resp := QuoteResponse{
		Bracket:        string(q.Bracket),
		Lines:          make([]QuoteLine, 0, len(q.Lines)),
		DiscountRate:   q.DiscountRate,
		Subtotal:       q.Subtotal,
		DiscountAmount: q.DiscountAmount,
		Total:          q.Total,
		IssuedAt:       q.IssuedAt,
		ValidUntil:     q.ValidUntil(),
		FileName:       pdf.FileName(q.Client.CNPJ),
		Unpriced:       make([]UnpricedLine, 0, len(q.Unpriced)),
	}
	for _, l := range q.Lines {
		resp.Lines = append(resp.Lines, QuoteLine{Label: l.Label, Service: l.Service, Amount: l.Amount})
	}
	for _, u := range q.Unpriced {
		resp.Unpriced = append(resp.Unpriced, UnpricedLine{Service: u.Service, Key: u.Key})
	}
	return resp
}

func (h *Handlers) calculate(client quote.Client, format string) quote.Quote {
	q := h.Calc.Calculate(client)
	if h.Metrics != nil {
		h.Metrics.QuotesTotal.WithLabelValues(string(client.Size), format).Inc()
		for _, u := range q.Unpriced {
			h.Metrics.UnpricedLinesTotal.WithLabelValues(u.Service).Inc()
		}
	}
	h.Log.WithFields(logrus.Fields{
		"cnpj":    client.CNPJ,
		"bracket": string(q.Bracket),
		"size":    string(client.Size),
		"total":   q.Total.StringFixed(2),
	}).Info("quote calculated")
	return q
}

func (h *Handlers) writePDF(w http.ResponseWriter, q quote.Quote) {
	pdfBytes, err := h.PDF.Generate(q)
	if errors.Is(err, pdf.ErrUnsupportedText) {
		h.Log.WithError(err).WithField("cnpj", q.Client.CNPJ).Warn("quote text not printable")
		http.Error(w, "text contains characters the pdf fonts cannot print", http.StatusUnprocessableEntity)
		return
	}
	if err != nil {
		if h.Metrics != nil {
			h.Metrics.PDFErrorsTotal.Inc()
		}
		h.Log.WithError(err).WithField("cnpj", q.Client.CNPJ).Error("pdf generation failed")
		http.Error(w, "pdf generation failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", pdf.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+pdf.FileName(q.Client.CNPJ)+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(pdfBytes)))
	w.WriteHeader(http.StatusOK)
	w.Write(pdfBytes)
}
