package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawRow representa uma linha bruta de planilha: nome da coluna -> valor da célula.
// As colunas variam por fonte e nada aqui é validado ainda.
type RawRow map[string]string

// Currency identifica a moeda nativa de um registro de custo
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"

	// CurrencyReporting é a moeda de relatório do dashboard (RUB neste deployment)
	CurrencyReporting Currency = "RUB"
)

// CostRecord é o registro canônico de custo produzido pelo normalizador.
// Invariante: EventDate preenchido e CostAmount não-negativo já validado;
// linhas que falham no parse nunca viram CostRecord.
type CostRecord struct {
	EventDate      time.Time       `json:"event_date"`
	SourceName     string          `json:"source_name"`
	EntityID       string          `json:"entity_id,omitempty"`
	CostAmount     decimal.Decimal `json:"cost_amount"`
	NativeCurrency Currency        `json:"native_currency"`
}
