package middleware

import (
	"context"
	"net/http"
	"strings"

	"savingsdesk/internal/app/handler"
	"savingsdesk/internal/app/logger"
	"savingsdesk/internal/app/session"
)

// Auth resolves the bearer token to an admin and puts it into the request context
func Auth(sessions session.Reader) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := logger.Get(r.Context(), "Middleware.Auth")

			reqHeader := r.Header.Get("Authorization")
			token := strings.TrimPrefix(reqHeader, "Bearer ")
			if token == reqHeader || strings.TrimSpace(token) == "" {
				log.Debug().Msg("Invalid Authorization header")
				handler.WriteError(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			// rejected tokens answer 401, store failures keep their own status
			admin, err := sessions.Read(r.Context(), strings.TrimSpace(token))
			if err != nil {
				log.Debug().Err(err).Msg("Token validation failed")
				handler.WriteAppError(w, log.Logger, err)
				return
			}

			log.Debug().Str("admin", admin.Username).Msg("Admin authorized")

			l := logger.Ctx(r.Context()).WithAdmin(admin.ID)
			ctx := l.WithContext(r.Context())
			ctx = context.WithValue(ctx, handler.ContextKeyAdmin{}, admin)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
