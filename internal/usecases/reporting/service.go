// Package reporting orquestra o pipeline de relatório: busca as planilhas,
// normaliza as linhas, guarda a sessão em memória e monta os view-models de
// KPI, tendência e ranking a partir dela.
package reporting

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/pkg/errors"
	"github.com/vfg2006/adspend-report-api/internal/config"
	"github.com/vfg2006/adspend-report-api/internal/domain"
	"github.com/vfg2006/adspend-report-api/internal/metrics"
	"github.com/vfg2006/adspend-report-api/internal/usecases/aggregating"
	"github.com/vfg2006/adspend-report-api/internal/usecases/comparing"
	"github.com/vfg2006/adspend-report-api/internal/usecases/normalizing"
	"github.com/vfg2006/adspend-report-api/pkg/log"
	"github.com/vfg2006/adspend-report-api/pkg/utils"
)

const (
	// SourceMoloco rotula os registros da exportação primária
	SourceMoloco = "Moloco"
	// SourceOther rotula os registros da exportação secundária sem coluna de fonte
	SourceOther = "Other"
)

var (
	// ErrRefreshInProgress indica que outro refresh já ocupa o pipeline
	ErrRefreshInProgress = errors.New("um refresh já está em andamento")
	// ErrDataNotLoaded indica que nenhum refresh bem-sucedido aconteceu ainda
	ErrDataNotLoaded = errors.New("dados ainda não carregados; execute um refresh")
)

// session é o estado imutável publicado por um refresh bem-sucedido. Os
// leitores recebem as fatias como estão; ninguém escreve nelas depois da troca.
type session struct {
	loaded     bool
	lastUpdate *time.Time
	lastRunID  string
	moloco     []domain.CostRecord
	other      []domain.CostRecord
}

type Service struct {
	cfg        *config.Config
	fetcher    SourceFetcher
	rates      RateProvider
	aggregator *aggregating.Service
	location   *time.Location

	busy atomic.Bool

	mu      sync.RWMutex
	session session
}

func NewService(
	cfg *config.Config,
	fetcher SourceFetcher,
	rates RateProvider,
	aggregator *aggregating.Service,
) *Service {
	location, err := time.LoadLocation(cfg.Report.Timezone)
	if err != nil {
		log.L.WithField("timezone", cfg.Report.Timezone).
			Warn("Timezone inválido, usando UTC")
		location = time.UTC
	}

	return &Service{
		cfg:        cfg,
		fetcher:    fetcher,
		rates:      rates,
		aggregator: aggregator,
		location:   location,
	}
}

// Refresh executa o pipeline completo de carga e publica a nova sessão. A flag
// de ocupado garante um único pipeline por vez: chamadas concorrentes recebem
// ErrRefreshInProgress sem bloquear. Falha em qualquer fonte aborta a carga
// inteira e preserva a sessão anterior.
func (s *Service) Refresh(ctx context.Context) (string, error) {
	if !s.busy.CompareAndSwap(false, true) {
		return "", ErrRefreshInProgress
	}
	defer s.busy.Store(false)

	runID, err := gonanoid.New()
	if err != nil {
		return "", errors.Wrap(err, "erro ao gerar o identificador do refresh")
	}

	logger := log.ForContext(ctx).WithField("run_id", runID)
	start := time.Now()

	molocoRows, err := s.fetcher.FetchMoloco(ctx)
	if err != nil {
		metrics.FetchErrors.WithLabelValues("gsheets").Inc()
		metrics.RefreshTotal.WithLabelValues("error").Inc()
		logger.WithError(err).Error("Falha ao buscar a planilha Moloco")
		return "", err
	}

	otherRows, err := s.fetcher.FetchOtherSources(ctx)
	if err != nil {
		metrics.FetchErrors.WithLabelValues("gsheets").Inc()
		metrics.RefreshTotal.WithLabelValues("error").Inc()
		logger.WithError(err).Error("Falha ao buscar a planilha de outras fontes")
		return "", err
	}

	moloco := normalizing.Normalize(molocoRows, normalizing.SourceOptions{
		SourceName:     SourceMoloco,
		NativeCurrency: domain.CurrencyUSD,
		Aliases:        normalizing.MolocoAliases,
	})

	other := normalizing.Normalize(otherRows, normalizing.SourceOptions{
		SourceName:     SourceOther,
		NativeCurrency: domain.CurrencyReporting,
		Aliases:        normalizing.OtherSourcesAliases,
	})

	metrics.RowsDropped.WithLabelValues("moloco").Add(float64(moloco.Dropped))
	metrics.RowsDropped.WithLabelValues("other").Add(float64(other.Dropped))

	now := time.Now().In(s.location)

	s.mu.Lock()
	s.session = session{
		loaded:     true,
		lastUpdate: &now,
		lastRunID:  runID,
		moloco:     moloco.Records,
		other:      other.Records,
	}
	s.mu.Unlock()

	metrics.RefreshTotal.WithLabelValues("success").Inc()
	metrics.RefreshDuration.Observe(time.Since(start).Seconds())

	logger.WithFields(log.Fields{
		"moloco_rows":    len(moloco.Records),
		"other_rows":     len(other.Records),
		"moloco_dropped": moloco.Dropped,
		"other_dropped":  other.Dropped,
	}).Info("Refresh concluído")

	return runID, nil
}

// Status reporta o estado atual da sessão sem exigir dados carregados
func (s *Service) Status() domain.SessionStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return domain.SessionStatus{
		Loaded:     s.session.loaded,
		LastUpdate: s.session.lastUpdate,
		LastRunID:  s.session.lastRunID,
	}
}

// Rates expõe o snapshot de cotações do dia corrente
func (s *Service) Rates(ctx context.Context) domain.RateSnapshot {
	return s.rates.GetRates(ctx, time.Now().In(s.location))
}

// BuildKPIReport monta os cartões do dia de referência: um cartão para a
// exportação Moloco e um por fonte da exportação secundária, na ordem de
// primeira aparição das fontes.
func (s *Service) BuildKPIReport(ctx context.Context) (*domain.KPIReport, error) {
	sess, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	snap := s.rates.GetRates(ctx, time.Now().In(s.location))

	all := append(append([]domain.CostRecord{}, sess.moloco...), sess.other...)
	combined := s.aggregator.AggregateDaily(all, snap)

	current, previous, ok := aggregating.LatestCompleteDay(combined)
	if !ok {
		// Sessão carregada porém vazia: relatório sem cartões
		return &domain.KPIReport{Converted: true}, nil
	}

	converted := true
	cards := make([]domain.KPICard, 0)

	molocoSeries := s.aggregator.AggregateDaily(sess.moloco, snap)
	if len(molocoSeries.Points) > 0 {
		cards = append(cards, buildCard(SourceMoloco, molocoSeries, current, previous))
		converted = converted && molocoSeries.Converted
	}

	sources, groups := s.aggregator.AggregateDailyBy(sess.other, aggregating.GroupBySource, snap)
	for _, source := range sources {
		series := groups[source]
		cards = append(cards, buildCard(source, series, current, previous))
		converted = converted && series.Converted
	}

	return &domain.KPIReport{
		ReferenceDay: current,
		Cards:        cards,
		Converted:    converted,
	}, nil
}

func buildCard(label string, series domain.AggregatedSeries, current, previous time.Time) domain.KPICard {
	currentCost, _ := series.CostOn(current).Float64()
	previousCost, _ := series.CostOn(previous).Float64()

	delta := utils.RoundWithTwoDecimalPlace(comparing.PercentChange(currentCost, previousCost))

	return domain.KPICard{
		Label:          label,
		PrimaryValue:   utils.RoundWithTwoDecimalPlace(currentCost),
		SecondaryValue: string(series.Currency),
		Delta:          delta,
		DeltaSign:      comparing.Sign(delta),
	}
}

// BuildTrend monta a série diária da fonte pedida. A maior data da sessão é
// descartada por ser um dia ainda incompleto; a janela começa no primeiro dia
// do mês do último ponto restante.
func (s *Service) BuildTrend(ctx context.Context, source string) (*domain.TrendReport, error) {
	records, err := s.recordsOf(source)
	if err != nil {
		return nil, err
	}

	snap := s.rates.GetRates(ctx, time.Now().In(s.location))
	series := s.aggregator.AggregateDaily(records, snap)

	series = dropMaxDate(series)
	if len(series.Points) == 0 {
		return &domain.TrendReport{Source: source, Series: series}, nil
	}

	windowEnd := series.Points[len(series.Points)-1].EventDate
	windowStart := time.Date(windowEnd.Year(), windowEnd.Month(), 1, 0, 0, 0, 0, windowEnd.Location())

	return &domain.TrendReport{
		Source:      source,
		Series:      series,
		WindowStart: windowStart,
		WindowEnd:   windowEnd,
	}, nil
}

// dropMaxDate remove o ponto da maior data da série (dia parcial)
func dropMaxDate(series domain.AggregatedSeries) domain.AggregatedSeries {
	max, ok := series.MaxDate()
	if !ok {
		return series
	}

	points := make([]domain.SeriesPoint, 0, len(series.Points)-1)
	for _, p := range series.Points {
		if p.EventDate.Equal(max) {
			continue
		}
		points = append(points, p)
	}

	series.Points = points
	return series
}

// BuildRanking classifica as entidades de maior gasto da fonte no intervalo
// pedido. Sem intervalo explícito a janela padrão vai do primeiro dia do mês do
// dia de referência até o próprio dia de referência; n não positivo usa o
// padrão da configuração.
func (s *Service) BuildRanking(ctx context.Context, source string, n int, dateRange domain.DateRange) (*domain.EntityRanking, error) {
	records, err := s.recordsOf(source)
	if err != nil {
		return nil, err
	}

	if n <= 0 {
		n = s.cfg.Report.TopN
	}

	snap := s.rates.GetRates(ctx, time.Now().In(s.location))

	if dateRange.Start.IsZero() && dateRange.End.IsZero() {
		series := s.aggregator.AggregateDaily(records, snap)
		current, _, ok := aggregating.LatestCompleteDay(series)
		if !ok {
			return &domain.EntityRanking{Converted: true}, nil
		}

		dateRange = domain.DateRange{
			Start: time.Date(current.Year(), current.Month(), 1, 0, 0, 0, 0, current.Location()),
			End:   current,
		}
	}

	ranking, err := s.aggregator.TopNByEntity(records, n, dateRange, snap)
	if err != nil {
		return nil, err
	}

	return &ranking, nil
}

// RawRecords devolve os registros normalizados da fonte pedida, na ordem de
// chegada das planilhas
func (s *Service) RawRecords(source string) ([]domain.CostRecord, error) {
	return s.recordsOf(source)
}

// recordsOf resolve o filtro de fonte: vazio ou "all" devolve tudo; "Moloco"
// devolve a exportação primária; qualquer outro valor filtra a exportação
// secundária pelo nome da fonte (sem diferenciar maiúsculas)
func (s *Service) recordsOf(source string) ([]domain.CostRecord, error) {
	sess, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	switch {
	case source == "" || strings.EqualFold(source, "all"):
		return append(append([]domain.CostRecord{}, sess.moloco...), sess.other...), nil
	case strings.EqualFold(source, SourceMoloco):
		return sess.moloco, nil
	}

	records := make([]domain.CostRecord, 0)
	for _, rec := range sess.other {
		if strings.EqualFold(rec.SourceName, source) {
			records = append(records, rec)
		}
	}

	return records, nil
}

func (s *Service) snapshot() (session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.session.loaded {
		return session{}, ErrDataNotLoaded
	}

	return s.session, nil
}
