// Package comparing calcula a variação dia-contra-dia das séries agregadas.
package comparing

// PercentChange retorna a variação percentual entre o dia corrente e o
// anterior. Base zero é reportada como 0% — política explícita: razão
// indefinida vira "sem variação" em vez de infinito ou NaN, mantendo a
// apresentação estável. Nunca entra em pânico.
func PercentChange(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}

	return (current - previous) / previous * 100
}

// Sign devolve o sinal do delta para o view-model do cartão de KPI
func Sign(delta float64) string {
	switch {
	case delta > 0:
		return "+"
	case delta < 0:
		return "-"
	}
	return ""
}
