package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"sst-facil/orcamento/internal/domain/quote"
)

type formView struct {
	Error  string
	Sizes  []quote.Size
	Values formValues
}

type formValues struct {
	CNPJ      string
	LegalName string
	City      string
	Employees string
	Size      string
	ESocial   bool
}

func (h *Handlers) Form(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, http.StatusOK, formView{Values: formValues{Employees: "1", Size: string(quote.SizeMEI)}})
}

// SubmitForm is the form's submit action: it answers with the PDF as a download.
func (h *Handlers) SubmitForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	vals := formValues{
		CNPJ:      strings.TrimSpace(r.PostFormValue("cnpj")),
		LegalName: strings.TrimSpace(r.PostFormValue("razao")),
		City:      strings.TrimSpace(r.PostFormValue("cidade")),
		Employees: strings.TrimSpace(r.PostFormValue("funcionarios")),
		Size:      r.PostFormValue("porte"),
		ESocial:   checked(r.PostFormValue("esocial")),
	}

	client, err := vals.client()
	if err != nil {
		h.renderForm(w, http.StatusBadRequest, formView{Error: err.Error(), Values: vals})
		return
	}

	h.writePDF(w, h.calculate(client, "pdf"))
}

func (v formValues) client() (quote.Client, error) {
	n, err := strconv.Atoi(v.Employees)
	if err != nil {
		return quote.Client{}, errors.New("Nº de funcionários deve ser um número inteiro")
	}
	size, err := quote.ParseSize(v.Size)
	if err != nil {
		return quote.Client{}, errors.New("porte inválido")
	}
	c := quote.Client{
		CNPJ:      v.CNPJ,
		LegalName: v.LegalName,
		City:      v.City,
		Employees: n,
		Size:      size,
		ESocial:   v.ESocial,
	}
	if err := c.Validate(); err != nil {
		return quote.Client{}, errors.New("Nº de funcionários deve ser pelo menos 1")
	}
	return c, nil
}

func checked(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "on", "1", "true", "sim":
		return true
	}
	return false
}

func (h *Handlers) renderForm(w http.ResponseWriter, status int, view formView) {
	view.Sizes = quote.Sizes()
	var buf bytes.Buffer
	if err := formTemplate.Execute(&buf, view); err != nil {
		h.Log.WithError(err).Error("render form")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}
