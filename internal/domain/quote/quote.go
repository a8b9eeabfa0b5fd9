package quote

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Size string

const (
	SizeMEI    Size = "MEI"
	SizeME     Size = "ME"
	SizeEPP    Size = "EPP"
	SizeOutros Size = "Outros"
)

func Sizes() []Size { return []Size{SizeMEI, SizeME, SizeEPP, SizeOutros} }

func ParseSize(s string) (Size, error) {
	s = strings.TrimSpace(s)
	for _, sz := range Sizes() {
		if strings.EqualFold(s, string(sz)) {
			return sz, nil
		}
	}
	return "", fmt.Errorf("unknown company size %q", s)
}

// SmallBusiness reports whether the size qualifies for the 50% discount.
func (s Size) SmallBusiness() bool {
	return s == SizeMEI || s == SizeME || s == SizeEPP
}

type Client struct {
	CNPJ      string
	LegalName string
	City      string
	Employees int
	Size      Size
	ESocial   bool
}

var ErrEmployees = errors.New("employee count must be at least 1")

func (c Client) Validate() error {
	if c.Employees < 1 {
		return ErrEmployees
	}
	for _, sz := range Sizes() {
		if c.Size == sz {
			return nil
		}
	}
	return fmt.Errorf("unknown company size %q", c.Size)
}

type Line struct {
	Label   string
	Service string
	Amount  decimal.Decimal
}

type Quote struct {
	Client    Client
	Bracket   Bracket
	Lines     []Line
	IssuedAt  time.Time
	ValidDays int

	DiscountRate   decimal.Decimal
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	Total          decimal.Decimal

	// Unpriced lines were quoted at zero because the price tables had no row for them.
	Unpriced []Unpriced
}

type Unpriced struct {
	Service string
	Key     string
}

func (q Quote) ValidUntil() time.Time {
	return q.IssuedAt.AddDate(0, 0, q.ValidDays)
}
