package reporting

import (
	"context"
	"time"

	"github.com/vfg2006/adspend-report-api/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/reporting_mocks.go -package=mocks

// SourceFetcher busca as linhas brutas das duas fontes de dados
type SourceFetcher interface {
	FetchMoloco(ctx context.Context) ([]domain.RawRow, error)
	FetchOtherSources(ctx context.Context) ([]domain.RawRow, error)
}

// RateProvider entrega o snapshot de cotações do dia (nunca falha; degrada
// para taxas nulas)
type RateProvider interface {
	GetRates(ctx context.Context, asOf time.Time) domain.RateSnapshot
}
