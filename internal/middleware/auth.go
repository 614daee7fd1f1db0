package middleware

import (
	"context"
	"net/http"
	"strings"

	"bingo_caller/internal/model"
	"bingo_caller/internal/service"
	"bingo_caller/pkg/resp"

	"github.com/sirupsen/logrus"
)

type ctxKey struct{}

// HostFromContext Ведущий, прошедший проверку токена
func HostFromContext(ctx context.Context) (*model.Host, bool) {
	host, ok := ctx.Value(ctxKey{}).(*model.Host)
	return host, ok
}

// RequireHost пропускает только запросы с валидным Bearer токеном ведущего
func RequireHost(auth service.AuthService, logger *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			tok, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || tok == "" {
				resp.WriteError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			host, err := auth.Verify(tok)
			if err != nil {
				logger.Debugf("rejected token: %v", err)
				resp.WriteError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, host)))
		})
	}
}
