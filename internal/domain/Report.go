package domain

import "time"

// KPICard é o view-model tipado de um cartão de KPI. Nenhuma formatação de
// apresentação acontece aqui; a camada de renderização decide como exibir.
type KPICard struct {
	Label          string  `json:"label"`
	PrimaryValue   float64 `json:"primary_value"`
	SecondaryValue string  `json:"secondary_value,omitempty"`
	Delta          float64 `json:"delta"`
	DeltaSign      string  `json:"delta_sign"`
}

// KPIReport agrupa os cartões do dia de referência.
// ReferenceDay segue a regra do "último dia completo": a maior data da série é
// tratada como parcial e o dia anterior vira o dia corrente do relatório.
type KPIReport struct {
	ReferenceDay time.Time `json:"reference_day"`
	Cards        []KPICard `json:"cards"`
	Converted    bool      `json:"converted"`
}

// TrendReport é a série diária consumida pelos gráficos de tendência.
// A data máxima já foi excluída (dia incompleto) antes de montar a série.
type TrendReport struct {
	Source      string           `json:"source,omitempty"`
	Series      AggregatedSeries `json:"series"`
	WindowStart time.Time        `json:"window_start"`
	WindowEnd   time.Time        `json:"window_end"`
}

// SessionStatus descreve o estado da sessão de relatório
type SessionStatus struct {
	Loaded     bool       `json:"loaded"`
	LastUpdate *time.Time `json:"last_update,omitempty"`
	LastRunID  string     `json:"last_run_id,omitempty"`
}
