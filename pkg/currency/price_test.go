package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeParsesStrings(t *testing.T) {
	cases := []struct {
		name     string
		raw      any
		fallback string
		want     Price
		ok       bool
	}{
		{name: "explicit currency", raw: "EUR 512.99", fallback: "EUR", want: Price{Amount: 512.99, Currency: "EUR"}, ok: true},
		{name: "euro symbol", raw: "€431", fallback: "", want: Price{Amount: 431, Currency: "EUR"}, ok: true},
		{name: "dollar symbol", raw: "$99.50", fallback: "", want: Price{Amount: 99.5, Currency: "USD"}, ok: true},
		{name: "pound symbol", raw: "£120", fallback: "", want: Price{Amount: 120, Currency: "GBP"}, ok: true},
		{name: "chf prefix", raw: "CHF 310", fallback: "", want: Price{Amount: 310, Currency: "CHF"}, ok: true},
		{name: "fallback wins over symbol", raw: "$99", fallback: "EUR", want: Price{Amount: 99, Currency: "EUR"}, ok: true},
		{name: "comma decimal", raw: "ab 431,50", fallback: "", want: Price{Amount: 431.5, Currency: "EUR"}, ok: true},
		{name: "numeric float", raw: float64(640), fallback: "EUR", want: Price{Amount: 640, Currency: "EUR"}, ok: true},
		{name: "numeric int", raw: 210, fallback: "", want: Price{Amount: 210, Currency: "EUR"}, ok: true},
		{name: "no digits", raw: "call us", fallback: "EUR", ok: false},
		{name: "nil", raw: nil, fallback: "EUR", ok: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Normalize(tc.raw, tc.fallback)
			require.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.InDelta(t, tc.want.Amount, got.Amount, 0.001)
				assert.Equal(t, tc.want.Currency, got.Currency)
			}
		})
	}
}

func TestFormatAddsThousandsSeparators(t *testing.T) {
	assert.Equal(t, "640 EUR", Format(Price{Amount: 640, Currency: "EUR"}))
	assert.Equal(t, "1.240 EUR", Format(Price{Amount: 1240.2, Currency: "EUR"}))
	assert.Equal(t, "12.345.678 USD", Format(Price{Amount: 12345678, Currency: "USD"}))
	assert.Equal(t, "-1.500 CHF", Format(Price{Amount: -1500, Currency: "CHF"}))
}
