package handler

import (
	"net/http"
)

// GetRates expõe o snapshot de cotações do dia (taxas nulas sinalizam provedor
// indisponível)
func GetRates(service ReportService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(service.Rates(r.Context()))
	}
}
