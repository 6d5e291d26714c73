package converting

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/adspend-report-api/internal/domain"
)

type fakeFetcher struct {
	usd   *decimal.Decimal
	eur   *decimal.Decimal
	err   error
	calls int
}

func (f *fakeFetcher) DailyRates(_ context.Context, _ time.Time) (*decimal.Decimal, *decimal.Decimal, error) {
	f.calls++
	return f.usd, f.eur, f.err
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestGetRates_CacheDentroDaJanela(t *testing.T) {
	fetcher := &fakeFetcher{usd: decPtr("90.0"), eur: decPtr("98.5")}
	service := NewService(fetcher, time.Hour)

	asOf := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

	first := service.GetRates(context.Background(), asOf)
	second := service.GetRates(context.Background(), asOf.Add(10*time.Minute))

	// Mesma data de calendário: uma única chamada ao provedor
	assert.Equal(t, 1, fetcher.calls)
	assert.True(t, first.USDRate.Equal(*second.USDRate))
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), first.AsOfDate)
}

func TestGetRates_FalhaDoProvedorNaoPropaga(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("provedor fora do ar")}
	service := NewService(fetcher, time.Hour)

	snap := service.GetRates(context.Background(), time.Now())

	// Nada de pânico nem erro: snapshot degradado com taxas nulas
	assert.Nil(t, snap.USDRate)
	assert.Nil(t, snap.EURRate)
	assert.False(t, snap.HasRate(domain.CurrencyUSD))
	assert.True(t, snap.HasRate(domain.CurrencyReporting))
}

func TestConvert(t *testing.T) {
	service := NewService(nil, time.Hour)

	snap := domain.RateSnapshot{USDRate: decPtr("90.0"), EURRate: decPtr("98.5")}
	degraded := domain.RateSnapshot{}

	tests := []struct {
		name     string
		amount   string
		currency domain.Currency
		snap     domain.RateSnapshot
		expected string
		wantNil  bool
	}{
		{name: "USD convertido pela taxa do dia", amount: "100.5", currency: domain.CurrencyUSD, snap: snap, expected: "9045"},
		{name: "EUR convertido pela taxa do dia", amount: "10", currency: domain.CurrencyEUR, snap: snap, expected: "985"},
		{name: "moeda de relatório passa inalterada", amount: "123.45", currency: domain.CurrencyReporting, snap: degraded, expected: "123.45"},
		{name: "USD sem taxa retorna nil", amount: "100", currency: domain.CurrencyUSD, snap: degraded, wantNil: true},
		{name: "EUR sem taxa retorna nil", amount: "100", currency: domain.CurrencyEUR, snap: degraded, wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := service.Convert(decimal.RequireFromString(tt.amount), tt.currency, tt.snap)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			assert.NotNil(t, got)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.expected)),
				"esperado %s, obtido %s", tt.expected, got)
		})
	}
}
