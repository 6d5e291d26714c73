// Package metrics expõe os contadores Prometheus do pipeline de relatório.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RefreshTotal conta execuções do pipeline de refresh por resultado
	RefreshTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "adspend",
		Name:      "refresh_total",
		Help:      "Total de execuções do pipeline de refresh, por resultado.",
	}, []string{"result"})

	// RefreshDuration mede a duração de um refresh completo (fetch + normalização)
	RefreshDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "adspend",
		Name:      "refresh_duration_seconds",
		Help:      "Duração do pipeline de refresh em segundos.",
		Buckets:   prometheus.DefBuckets,
	})

	// RowsDropped conta linhas descartadas na normalização por fonte
	RowsDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "adspend",
		Name:      "rows_dropped_total",
		Help:      "Linhas descartadas por falha de parse, por fonte.",
	}, []string{"source"})

	// FetchErrors conta falhas de busca nas integrações externas
	FetchErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "adspend",
		Name:      "fetch_errors_total",
		Help:      "Falhas ao buscar dados em serviços externos, por integração.",
	}, []string{"integration"})
)
