package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/vfg2006/adspend-report-api/internal/usecases/authenticating"
)

type contextKey string

const (
	// ContextKeySession guarda as claims da sessão autenticada no contexto
	ContextKeySession contextKey = "session"
)

// Rotas que dispensam o gate de senha do dashboard
var openPaths = map[string]bool{
	"/v1/login":    true,
	"/healthcheck": true,
	"/metrics":     true,
}

func AuthMiddleware(authService authenticating.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if openPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Authorization header is required", http.StatusUnauthorized)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				http.Error(w, "Bearer token is required", http.StatusUnauthorized)
				return
			}

			claims, err := authService.ValidateToken(tokenString)
			if err != nil {
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeySession, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
