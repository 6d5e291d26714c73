package apiErrors

import (
	"encoding/json"
	"net/http"
)

// Códigos de erro retornados pela API
const (
	// Erros de autenticação (AUTH)
	ErrInvalidPassword = "AUTH_001" // Senha do dashboard incorreta
	ErrInvalidToken    = "AUTH_002" // Token inválido
	ErrExpiredToken    = "AUTH_003" // Token expirado

	// Erros de validação (VAL)
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido
	ErrEmptyRange          = "VAL_004" // Intervalo de datas invertido

	// Erros de relatório (RPT)
	ErrDataNotLoaded     = "RPT_001" // Nenhum refresh executado ainda
	ErrRefreshInProgress = "RPT_002" // Refresh concorrente rejeitado

	// Erros do servidor (SRV)
	ErrInternalServer  = "SRV_001" // Erro interno do servidor
	ErrExternalService = "SRV_002" // Falha em serviço externo (planilhas, cotações)
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidPassword:     http.StatusUnauthorized,
	ErrInvalidToken:        http.StatusUnauthorized,
	ErrExpiredToken:        http.StatusUnauthorized,
	ErrInvalidRequest:      http.StatusBadRequest,
	ErrMissingRequiredData: http.StatusBadRequest,
	ErrInvalidFormat:       http.StatusBadRequest,
	ErrEmptyRange:          http.StatusBadRequest,
	ErrDataNotLoaded:       http.StatusPreconditionFailed,
	ErrRefreshInProgress:   http.StatusConflict,
	ErrInternalServer:      http.StatusInternalServerError,
	ErrExternalService:     http.StatusBadGateway,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	status, exists := httpStatusMap[code]
	if !exists {
		status = http.StatusInternalServerError
	}

	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiErr)
}
