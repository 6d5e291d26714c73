package authenticating

import (
	"crypto/subtle"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/vfg2006/adspend-report-api/internal/config"
	"golang.org/x/crypto/bcrypt"
)

// Claims são as claims do token de sessão do dashboard. O gate é de segredo
// único: não existem usuários, papéis nem perfis.
type Claims struct {
	jwt.RegisteredClaims
}

// Authenticator implementa o gate de senha compartilhada do dashboard
type Authenticator interface {
	Login(password string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type Service struct {
	cfg *config.Config
}

func NewService(cfg *config.Config) Authenticator {
	return &Service{cfg: cfg}
}

// Login compara a senha informada com o segredo configurado e emite um token
// de sessão. Com DASHBOARD_PASSWORD_HASH presente a comparação usa bcrypt;
// caso contrário, comparação em tempo constante com a senha em texto plano.
func (s *Service) Login(password string) (string, error) {
	if err := s.checkPassword(password); err != nil {
		return "", err
	}

	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "dashboard",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.Auth.TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Auth.Secret))
	if err != nil {
		return "", errors.Wrap(err, "erro ao assinar token de sessão")
	}

	return signed, nil
}

func (s *Service) checkPassword(password string) error {
	if s.cfg.Auth.PasswordHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.Auth.PasswordHash), []byte(password)); err != nil {
			return ErrInvalidPassword
		}
		return nil
	}

	if s.cfg.Auth.DashboardPassword == "" {
		return ErrGateNotConfigure
	}

	if subtle.ConstantTimeCompare([]byte(s.cfg.Auth.DashboardPassword), []byte(password)) != 1 {
		return ErrInvalidPassword
	}

	return nil
}

// ValidateToken verifica assinatura e expiração do token de sessão
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.cfg.Auth.Secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
