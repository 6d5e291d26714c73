package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/adspend-report-api/internal/usecases/authenticating"
	"github.com/vfg2006/adspend-report-api/pkg/apiErrors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type LoginRequest struct {
	Password string `json:"password"`
}

// Login valida a senha compartilhada do dashboard e emite o token de sessão
func Login(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		if req.Password == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Senha é obrigatória", nil)
			return
		}

		token, err := service.Login(req.Password)
		if err != nil {
			handleLoginError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"token": token,
		})
	}
}

func handleLoginError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, authenticating.ErrInvalidPassword):
		apiErrors.WriteError(w, apiErrors.ErrInvalidPassword, "Senha incorreta", nil)
	case errors.Is(err, authenticating.ErrGateNotConfigure):
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Gate de senha não configurado", nil)
	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao autenticar", nil)
	}
}
