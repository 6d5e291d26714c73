package converting

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/adspend-report-api/internal/cache"
	"github.com/vfg2006/adspend-report-api/internal/domain"
	"github.com/vfg2006/adspend-report-api/pkg/log"
	"github.com/vfg2006/adspend-report-api/pkg/utils"
)

// RateFetcher busca as cotações oficiais do dia no provedor externo
type RateFetcher interface {
	DailyRates(ctx context.Context, asOf time.Time) (usd, eur *decimal.Decimal, err error)
}

// Converter expõe o snapshot de cotações e a conversão para a moeda de relatório
type Converter interface {
	GetRates(ctx context.Context, asOf time.Time) domain.RateSnapshot
	Convert(amount decimal.Decimal, cur domain.Currency, snap domain.RateSnapshot) *decimal.Decimal
}

type Service struct {
	fetcher RateFetcher
	cache   *cache.Cache[domain.RateSnapshot]
	ttl     time.Duration
}

func NewService(fetcher RateFetcher, ttl time.Duration) *Service {
	return &Service{
		fetcher: fetcher,
		cache:   cache.New[domain.RateSnapshot](),
		ttl:     ttl,
	}
}

// GetRates retorna o snapshot de cotações do dia, reutilizando o cache dentro da
// janela. Nunca retorna erro: falha do provedor vira um snapshot sem taxas, que
// os consumidores tratam como "conversão indisponível".
func (s *Service) GetRates(ctx context.Context, asOf time.Time) domain.RateSnapshot {
	day := utils.TruncateToDay(asOf)
	key := day.Format(time.DateOnly)

	snap, _ := s.cache.GetOrFetch(key, s.ttl, func() (domain.RateSnapshot, error) {
		usd, eur, err := s.fetcher.DailyRates(ctx, day)
		if err != nil {
			log.ForContext(ctx).WithError(err).Warn("Cotações indisponíveis, valores serão exibidos em moeda nativa")
			return domain.RateSnapshot{AsOfDate: day}, nil
		}

		return domain.RateSnapshot{AsOfDate: day, USDRate: usd, EURRate: eur}, nil
	})

	return snap
}

// Convert converte o valor para a moeda de relatório. Retorna nil quando o
// snapshot não tem a taxa necessária; valores já na moeda de relatório passam
// inalterados.
func (s *Service) Convert(amount decimal.Decimal, cur domain.Currency, snap domain.RateSnapshot) *decimal.Decimal {
	switch cur {
	case domain.CurrencyReporting:
		return &amount
	case domain.CurrencyUSD:
		if snap.USDRate == nil {
			return nil
		}
		converted := amount.Mul(*snap.USDRate)
		return &converted
	case domain.CurrencyEUR:
		if snap.EURRate == nil {
			return nil
		}
		converted := amount.Mul(*snap.EURRate)
		return &converted
	}

	return nil
}
