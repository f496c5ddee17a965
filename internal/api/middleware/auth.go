package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/dom/meucoracao/internal/api/respond"
	"github.com/dom/meucoracao/internal/service"
	"go.uber.org/zap"
)

type contextKey string

const (
	IdentityKey contextKey = "identity"
)

// TokenVerifier checks a bearer token and returns who it was issued to.
type TokenVerifier interface {
	Verify(token string) (service.Identity, error)
}

func Auth(verifier TokenVerifier, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				log.Debug("missing authorization header", zap.String("path", r.URL.Path))
				respond.Unauthorized(w)
				return
			}

			// The scheme is matched case-insensitively.
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
				log.Debug("invalid authorization header format", zap.String("path", r.URL.Path))
				respond.Unauthorized(w)
				return
			}

			identity, err := verifier.Verify(parts[1])
			if err != nil {
				log.Debug("token validation failed", zap.String("path", r.URL.Path), zap.Error(err))
				respond.Unauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

func WithIdentity(ctx context.Context, identity service.Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, identity)
}

func GetIdentity(ctx context.Context) (service.Identity, bool) {
	identity, ok := ctx.Value(IdentityKey).(service.Identity)
	return identity, ok
}
