package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateSnapshot guarda as taxas oficiais de câmbio do dia contra a moeda de relatório.
// USDRate/EURRate nulos significam "cotação indisponível": o provedor falhou e a
// conversão deve ser pulada, nunca substituída por taxa antiga ou inventada.
type RateSnapshot struct {
	AsOfDate time.Time        `json:"as_of_date"`
	USDRate  *decimal.Decimal `json:"usd_rate"`
	EURRate  *decimal.Decimal `json:"eur_rate"`
}

// HasRate informa se o snapshot possui a taxa necessária para a moeda dada
func (s RateSnapshot) HasRate(cur Currency) bool {
	switch cur {
	case CurrencyReporting:
		return true
	case CurrencyUSD:
		return s.USDRate != nil
	case CurrencyEUR:
		return s.EURRate != nil
	}
	return false
}
