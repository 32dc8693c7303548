package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/smartshoplabs/smartshop-backend/api/responses"
	pkgauth "github.com/smartshoplabs/smartshop-backend/pkg/auth"
	"github.com/smartshoplabs/smartshop-backend/pkg/config"
	pkgerrors "github.com/smartshoplabs/smartshop-backend/pkg/errors"
	"github.com/smartshoplabs/smartshop-backend/pkg/logger"
)

type ctxKey string

const ctxUserEmail ctxKey = "user_email"

// Auth validates a bearer token and seeds the request context with the claims.
func Auth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgauth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			ctx := context.WithValue(r.Context(), ctxUserEmail, claims.Email)
			if logg != nil {
				ctx = logg.WithUserID(ctx, claims.Email)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserEmailFromContext returns the authenticated user's email, if any.
func UserEmailFromContext(ctx context.Context) string {
	email, _ := ctx.Value(ctxUserEmail).(string)
	return email
}
