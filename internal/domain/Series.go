package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SeriesPoint é o total de custo de um dia
type SeriesPoint struct {
	EventDate time.Time       `json:"event_date"`
	TotalCost decimal.Decimal `json:"total_cost"`
}

// AggregatedSeries é uma sequência ordenada por data de totais diários.
// Converted=false indica o estado degradado: a taxa de câmbio não estava
// disponível e os valores permanecem na moeda nativa dos registros.
type AggregatedSeries struct {
	Points    []SeriesPoint `json:"points"`
	Currency  Currency      `json:"currency"`
	Converted bool          `json:"converted"`
}

// Total soma todos os pontos da série
func (s AggregatedSeries) Total() decimal.Decimal {
	total := decimal.Zero
	for _, p := range s.Points {
		total = total.Add(p.TotalCost)
	}
	return total
}

// CostOn retorna o total do dia informado, ou zero quando a data não existe na série
func (s AggregatedSeries) CostOn(day time.Time) decimal.Decimal {
	for _, p := range s.Points {
		if p.EventDate.Equal(day) {
			return p.TotalCost
		}
	}
	return decimal.Zero
}

// MaxDate retorna a maior data presente na série
func (s AggregatedSeries) MaxDate() (time.Time, bool) {
	if len(s.Points) == 0 {
		return time.Time{}, false
	}
	max := s.Points[0].EventDate
	for _, p := range s.Points[1:] {
		if p.EventDate.After(max) {
			max = p.EventDate
		}
	}
	return max, true
}

// RankingEntry é uma posição do ranking de custo por entidade
type RankingEntry struct {
	EntityID  string          `json:"entity_id"`
	TotalCost decimal.Decimal `json:"total_cost"`
}

// EntityRanking é a lista descendente por custo das entidades de maior gasto
type EntityRanking struct {
	Entries   []RankingEntry `json:"entries"`
	Currency  Currency       `json:"currency"`
	Converted bool           `json:"converted"`
}

// DateRange é um intervalo fechado de datas de calendário
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains verifica se o dia pertence ao intervalo (inclusivo nas duas pontas)
func (r DateRange) Contains(day time.Time) bool {
	return !day.Before(r.Start) && !day.After(r.End)
}
