package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/soil2spoon/go-backend/internal/domain"
	"github.com/soil2spoon/go-backend/internal/usecase"
	"github.com/soil2spoon/go-backend/pkg/e"
	"github.com/soil2spoon/go-backend/pkg/logger"
	"github.com/soil2spoon/go-backend/pkg/token"
)

type ctxKey int

const principalKey ctxKey = iota

// Principal — аутентифицированный пользователь запроса.
type Principal struct {
	UserID int64
	Email  string
}

func PrincipalFromCtx(ctx context.Context) (*Principal, bool) {
	principal, ok := ctx.Value(principalKey).(*Principal)

	return principal, ok
}

// AuthMiddleware проверяет Bearer-токены и кладёт принципала в контекст.
type AuthMiddleware struct {
	tokens *token.Manager
	authUC usecase.AuthUC
	logger logger.Logger
}

func NewAuthMiddleware(tokens *token.Manager, authUC usecase.AuthUC, logger logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		tokens: tokens,
		authUC: authUC,
		logger: logger,
	}
}

// Require отклоняет запросы без валидного токена.
func (m *AuthMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, err := m.principal(r)
		if err != nil {
			WriteError(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(
			context.WithValue(r.Context(), principalKey, principal),
		))
	})
}

// Optional пропускает запрос в любом случае, но при валидном токене
// добавляет принципала в контекст.
func (m *AuthMiddleware) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if principal, err := m.principal(r); err == nil {
			r = r.WithContext(context.WithValue(r.Context(), principalKey, principal))
		}

		next.ServeHTTP(w, r)
	})
}

// RequireAdmin пускает дальше только пользователей с административной
// ролью. Применяется после Require.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := PrincipalFromCtx(r.Context())
		if !ok {
			WriteError(w, e.ErrUnauthenticated)
			return
		}

		user, err := m.authUC.GetUser(r.Context(), principal.UserID)
		if err != nil {
			m.logger.Warnf("Admin check failed: %v", err)
			WriteError(w, e.ErrUnauthenticated)
			return
		}

		if user.Role != domain.RoleAdmin {
			WriteError(w, e.ErrAdminOnly)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (m *AuthMiddleware) principal(r *http.Request) (*Principal, error) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return nil, e.ErrUnauthenticated
	}

	claims, err := m.tokens.Parse(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		return nil, err
	}

	return &Principal{
		UserID: claims.UserID,
		Email:  claims.Email,
	}, nil
}
