package authenticating

import "errors"

// Erros do gate de senha do dashboard
var (
	ErrInvalidPassword  = errors.New("senha do dashboard incorreta")
	ErrInvalidToken     = errors.New("token inválido")
	ErrExpiredToken     = errors.New("token expirado")
	ErrGateNotConfigure = errors.New("gate de senha não configurado")
)

// IsAuthorizationError verifica se o erro está relacionado ao token de sessão
func IsAuthorizationError(err error) bool {
	return errors.Is(err, ErrInvalidToken) || errors.Is(err, ErrExpiredToken)
}
