package aggregating

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/adspend-report-api/internal/domain"
)

// GroupBy seleciona a dimensão de agrupamento da agregação diária
type GroupBy int

const (
	GroupNone GroupBy = iota
	GroupBySource
	GroupByEntity
)

// CurrencyConverter converte um valor nativo para a moeda de relatório usando o
// snapshot do dia; nil significa taxa indisponível
type CurrencyConverter interface {
	Convert(amount decimal.Decimal, cur domain.Currency, snap domain.RateSnapshot) *decimal.Decimal
}

type Service struct {
	converter CurrencyConverter
}

func NewService(converter CurrencyConverter) *Service {
	return &Service{converter: converter}
}

// AggregateDaily soma o custo por data sobre todos os registros
func (s *Service) AggregateDaily(records []domain.CostRecord, snap domain.RateSnapshot) domain.AggregatedSeries {
	_, groups := s.aggregateBy(records, snap, func(domain.CostRecord) string { return "" })
	return groups[""]
}

// AggregateDailyBy soma o custo por data dentro de cada grupo. A fatia de chaves
// preserva a ordem de primeira aparição do grupo na entrada, garantindo saída
// reproduzível para entradas idênticas.
func (s *Service) AggregateDailyBy(records []domain.CostRecord, groupBy GroupBy, snap domain.RateSnapshot) ([]string, map[string]domain.AggregatedSeries) {
	switch groupBy {
	case GroupBySource:
		return s.aggregateBy(records, snap, func(r domain.CostRecord) string { return r.SourceName })
	case GroupByEntity:
		return s.aggregateBy(records, snap, func(r domain.CostRecord) string { return r.EntityID })
	default:
		return s.aggregateBy(records, snap, func(domain.CostRecord) string { return "" })
	}
}

func (s *Service) aggregateBy(
	records []domain.CostRecord,
	snap domain.RateSnapshot,
	keyOf func(domain.CostRecord) string,
) ([]string, map[string]domain.AggregatedSeries) {
	type bucket struct {
		totals    map[time.Time]decimal.Decimal
		dates     []time.Time
		converted bool
		currency  domain.Currency
		uniform   bool
	}

	keys := make([]string, 0)
	buckets := make(map[string]*bucket)

	for _, rec := range records {
		key := keyOf(rec)

		b, ok := buckets[key]
		if !ok {
			b = &bucket{
				totals:    make(map[time.Time]decimal.Decimal),
				converted: true,
				currency:  rec.NativeCurrency,
				uniform:   true,
			}
			buckets[key] = b
			keys = append(keys, key)
		}

		amount, converted := s.convertOrNative(rec, snap)
		if !converted {
			b.converted = false
		}
		if b.currency != rec.NativeCurrency {
			b.uniform = false
		}

		if _, seen := b.totals[rec.EventDate]; !seen {
			b.dates = append(b.dates, rec.EventDate)
		}
		b.totals[rec.EventDate] = b.totals[rec.EventDate].Add(amount)
	}

	groups := make(map[string]domain.AggregatedSeries, len(buckets))
	for key, b := range buckets {
		sort.Slice(b.dates, func(i, j int) bool { return b.dates[i].Before(b.dates[j]) })

		points := make([]domain.SeriesPoint, 0, len(b.dates))
		for _, d := range b.dates {
			points = append(points, domain.SeriesPoint{EventDate: d, TotalCost: b.totals[d]})
		}

		currency := domain.CurrencyReporting
		if !b.converted && b.uniform {
			// Estado degradado com moeda nativa única: rotular pela nativa
			currency = b.currency
		}

		groups[key] = domain.AggregatedSeries{
			Points:    points,
			Currency:  currency,
			Converted: b.converted,
		}
	}

	return keys, groups
}

// convertOrNative converte o valor para a moeda de relatório; sem taxa
// disponível devolve o valor nativo e sinaliza a degradação
func (s *Service) convertOrNative(rec domain.CostRecord, snap domain.RateSnapshot) (decimal.Decimal, bool) {
	if converted := s.converter.Convert(rec.CostAmount, rec.NativeCurrency, snap); converted != nil {
		return *converted, true
	}
	return rec.CostAmount, false
}

// TopNByEntity classifica as entidades por custo total dentro do intervalo
// fechado [start, end]. Empates preservam a ordem de primeira aparição na
// entrada; registros sem entity id ficam de fora do ranking.
func (s *Service) TopNByEntity(records []domain.CostRecord, n int, dateRange domain.DateRange, snap domain.RateSnapshot) (domain.EntityRanking, error) {
	if dateRange.Start.After(dateRange.End) {
		return domain.EntityRanking{}, &EmptyRangeError{Start: dateRange.Start, End: dateRange.End}
	}

	totals := make(map[string]decimal.Decimal)
	order := make([]string, 0)
	converted := true
	native := domain.CurrencyReporting

	for _, rec := range records {
		if rec.EntityID == "" || !dateRange.Contains(rec.EventDate) {
			continue
		}

		amount, ok := s.convertOrNative(rec, snap)
		if !ok {
			converted = false
			native = rec.NativeCurrency
		}

		if _, seen := totals[rec.EntityID]; !seen {
			order = append(order, rec.EntityID)
		}
		totals[rec.EntityID] = totals[rec.EntityID].Add(amount)
	}

	entries := make([]domain.RankingEntry, 0, len(order))
	for _, id := range order {
		entries = append(entries, domain.RankingEntry{EntityID: id, TotalCost: totals[id]})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalCost.GreaterThan(entries[j].TotalCost)
	})

	if n >= 0 && len(entries) > n {
		entries = entries[:n]
	}

	currency := domain.CurrencyReporting
	if !converted {
		currency = native
	}

	return domain.EntityRanking{Entries: entries, Currency: currency, Converted: converted}, nil
}

// LatestCompleteDay aplica a regra do "último dia completo": a maior data da
// série ainda recebe dados, então o dia de referência é o anterior a ela e o
// dia de comparação vem logo antes.
func LatestCompleteDay(series domain.AggregatedSeries) (current, previous time.Time, ok bool) {
	max, ok := series.MaxDate()
	if !ok {
		return time.Time{}, time.Time{}, false
	}

	current = max.AddDate(0, 0, -1)
	previous = max.AddDate(0, 0, -2)
	return current, previous, true
}
