package authenticating

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/adspend-report-api/internal/config"
	"golang.org/x/crypto/bcrypt"
)

func newTestConfig() *config.Config {
	return &config.Config{
		Auth: config.Auth{
			DashboardPassword: "segredo-do-dashboard",
			Secret:            "chave-de-teste",
			TokenTTL:          time.Hour,
		},
	}
}

func TestLogin_SenhaCorretaEmiteTokenValido(t *testing.T) {
	service := NewService(newTestConfig())

	token, err := service.Login("segredo-do-dashboard")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "dashboard", claims.Subject)
}

func TestLogin_SenhaIncorreta(t *testing.T) {
	service := NewService(newTestConfig())

	_, err := service.Login("chute qualquer")
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestLogin_GateSemSenhaConfigurada(t *testing.T) {
	cfg := newTestConfig()
	cfg.Auth.DashboardPassword = ""
	service := NewService(cfg)

	_, err := service.Login("qualquer")
	assert.ErrorIs(t, err, ErrGateNotConfigure)
}

func TestLogin_ComHashBcrypt(t *testing.T) {
	cfg := newTestConfig()
	hash, err := bcrypt.GenerateFromPassword([]byte("senha-com-hash"), bcrypt.MinCost)
	assert.NoError(t, err)
	cfg.Auth.PasswordHash = string(hash)
	// O hash tem precedência sobre a senha em texto plano
	cfg.Auth.DashboardPassword = "outra-coisa"

	service := NewService(cfg)

	_, err = service.Login("senha-com-hash")
	assert.NoError(t, err)

	_, err = service.Login("outra-coisa")
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestValidateToken_TokenAdulterado(t *testing.T) {
	service := NewService(newTestConfig())

	token, err := service.Login("segredo-do-dashboard")
	assert.NoError(t, err)

	_, err = service.ValidateToken(token + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_TokenExpirado(t *testing.T) {
	cfg := newTestConfig()
	cfg.Auth.TokenTTL = -time.Minute
	service := NewService(cfg)

	token, err := service.Login("segredo-do-dashboard")
	assert.NoError(t, err)

	_, err = service.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}
