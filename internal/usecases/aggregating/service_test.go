package aggregating

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/adspend-report-api/internal/domain"
	"github.com/vfg2006/adspend-report-api/internal/usecases/converting"
)

func day(d int) time.Time {
	return time.Date(2024, 5, d, 0, 0, 0, 0, time.UTC)
}

func usdRecord(d int, amount, entity string) domain.CostRecord {
	return domain.CostRecord{
		EventDate:      day(d),
		SourceName:     "Moloco",
		EntityID:       entity,
		CostAmount:     decimal.RequireFromString(amount),
		NativeCurrency: domain.CurrencyUSD,
	}
}

func localRecord(d int, amount, source string) domain.CostRecord {
	return domain.CostRecord{
		EventDate:      day(d),
		SourceName:     source,
		CostAmount:     decimal.RequireFromString(amount),
		NativeCurrency: domain.CurrencyReporting,
	}
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func newService() *Service {
	return NewService(converting.NewService(nil, time.Hour))
}

func snapshot() domain.RateSnapshot {
	return domain.RateSnapshot{AsOfDate: day(2), USDRate: decPtr("90.0"), EURRate: decPtr("98.5")}
}

func TestAggregateDaily_SomaPorData(t *testing.T) {
	service := newService()

	records := []domain.CostRecord{
		usdRecord(1, "100.5", ""),
		usdRecord(1, "10", ""),
		usdRecord(2, "50", ""),
	}

	series := service.AggregateDaily(records, snapshot())

	assert.True(t, series.Converted)
	assert.Equal(t, domain.CurrencyReporting, series.Currency)
	assert.Len(t, series.Points, 2)

	// Pontos ordenados por data ascendente
	assert.Equal(t, day(1), series.Points[0].EventDate)
	assert.True(t, series.Points[0].TotalCost.Equal(decimal.RequireFromString("9945")), // (100.5+10)*90
		"obtido %s", series.Points[0].TotalCost)
	assert.True(t, series.Points[1].TotalCost.Equal(decimal.RequireFromString("4500")))
}

func TestAggregateDaily_SomaTotalPreservada(t *testing.T) {
	service := newService()

	records := []domain.CostRecord{
		usdRecord(1, "1.11", "a"),
		usdRecord(2, "2.22", "b"),
		usdRecord(3, "3.33", "a"),
		localRecord(1, "500", "Unity"),
	}

	series := service.AggregateDaily(records, snapshot())

	// Soma da série == soma dos registros convertidos, sem perda nem dupla contagem
	expected := decimal.RequireFromString("1.11").
		Add(decimal.RequireFromString("2.22")).
		Add(decimal.RequireFromString("3.33")).
		Mul(decimal.RequireFromString("90")).
		Add(decimal.RequireFromString("500"))
	assert.True(t, series.Total().Equal(expected), "esperado %s, obtido %s", expected, series.Total())
}

func TestAggregateDailyBy_OrdemDePrimeiraAparicao(t *testing.T) {
	service := newService()

	records := []domain.CostRecord{
		localRecord(1, "10", "Unity"),
		localRecord(1, "20", "Mintegral"),
		localRecord(2, "30", "Unity"),
		localRecord(1, "40", "Applovin"),
	}

	keys, groups := service.AggregateDailyBy(records, GroupBySource, snapshot())

	assert.Equal(t, []string{"Unity", "Mintegral", "Applovin"}, keys)
	assert.Len(t, groups, 3)
	assert.True(t, groups["Unity"].Total().Equal(decimal.RequireFromString("40")))

	// Fontes agregam de forma independente e a soma bate com a visão global
	global := service.AggregateDaily(records, snapshot())
	sum := decimal.Zero
	for _, key := range keys {
		sum = sum.Add(groups[key].Total())
	}
	assert.True(t, global.Total().Equal(sum))
}

func TestAggregateDaily_DegradacaoSemTaxa(t *testing.T) {
	service := newService()

	records := []domain.CostRecord{
		usdRecord(1, "100", ""),
		usdRecord(2, "200", ""),
	}

	series := service.AggregateDaily(records, domain.RateSnapshot{})

	// Sem taxa: valores permanecem nativos e a série é marcada como não convertida
	assert.False(t, series.Converted)
	assert.Equal(t, domain.CurrencyUSD, series.Currency)
	assert.True(t, series.Total().Equal(decimal.RequireFromString("300")))
}

func TestTopNByEntity(t *testing.T) {
	service := newService()

	records := []domain.CostRecord{
		usdRecord(1, "10", "b1"),
		usdRecord(1, "30", "b2"),
		usdRecord(2, "10", "b3"), // empata com b1
		usdRecord(2, "5", "b4"),
		usdRecord(3, "999", ""), // sem entity id, fica de fora
	}

	ranking, err := service.TopNByEntity(records, 3, domain.DateRange{Start: day(1), End: day(3)}, snapshot())
	assert.NoError(t, err)

	assert.Len(t, ranking.Entries, 3)
	assert.Equal(t, "b2", ranking.Entries[0].EntityID)
	// Empate entre b1 e b3: vence quem apareceu primeiro na entrada
	assert.Equal(t, "b1", ranking.Entries[1].EntityID)
	assert.Equal(t, "b3", ranking.Entries[2].EntityID)
}

func TestTopNByEntity_FiltroInclusivo(t *testing.T) {
	service := newService()

	records := []domain.CostRecord{
		usdRecord(1, "10", "b1"),
		usdRecord(2, "20", "b2"),
		usdRecord(3, "30", "b3"),
	}

	ranking, err := service.TopNByEntity(records, 10, domain.DateRange{Start: day(1), End: day(2)}, snapshot())
	assert.NoError(t, err)

	// As duas pontas do intervalo entram; o dia 3 não
	assert.Len(t, ranking.Entries, 2)
}

func TestTopNByEntity_IntervaloInvertido(t *testing.T) {
	service := newService()

	_, err := service.TopNByEntity(nil, 10, domain.DateRange{Start: day(5), End: day(1)}, snapshot())

	var rangeErr *EmptyRangeError
	assert.ErrorAs(t, err, &rangeErr)
}

func TestTopNByEntity_NuncaExcedeN(t *testing.T) {
	service := newService()

	records := make([]domain.CostRecord, 0, 15)
	for i := 0; i < 15; i++ {
		records = append(records, usdRecord(1, "10", string(rune('a'+i))))
	}

	ranking, err := service.TopNByEntity(records, 10, domain.DateRange{Start: day(1), End: day(1)}, snapshot())
	assert.NoError(t, err)
	assert.LessOrEqual(t, len(ranking.Entries), 10)
}

func TestLatestCompleteDay(t *testing.T) {
	series := domain.AggregatedSeries{Points: []domain.SeriesPoint{
		{EventDate: day(1)},
		{EventDate: day(3)},
		{EventDate: day(2)},
	}}

	current, previous, ok := LatestCompleteDay(series)
	assert.True(t, ok)
	// O dia 3 ainda recebe dados: referência é o dia 2, comparação com o dia 1
	assert.Equal(t, day(2), current)
	assert.Equal(t, day(1), previous)
}

func TestLatestCompleteDay_SerieVazia(t *testing.T) {
	_, _, ok := LatestCompleteDay(domain.AggregatedSeries{})
	assert.False(t, ok)
}
