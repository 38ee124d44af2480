package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/soil2spoon/go-backend/internal/domain"
	"github.com/soil2spoon/go-backend/internal/usecase"
	"github.com/soil2spoon/go-backend/pkg/e"
	"github.com/soil2spoon/go-backend/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debugf(format string, args ...any)            {}
func (nopLogger) Infof(format string, args ...any)             {}
func (nopLogger) Warnf(format string, args ...any)             {}
func (nopLogger) Errorf(err error, format string, args ...any) {}

// fakeAuthUC реализует только GetUser, который нужен проверке роли.
type fakeAuthUC struct {
	users map[int64]usecase.UserRes
}

func (f *fakeAuthUC) Register(ctx context.Context, req *usecase.SignupReq) (*usecase.AuthRes, error) {
	return nil, e.ErrInternalServerError
}

func (f *fakeAuthUC) Login(ctx context.Context, req *usecase.LoginReq) (*usecase.AuthRes, error) {
	return nil, e.ErrInternalServerError
}

func (f *fakeAuthUC) GetUser(ctx context.Context, userID int64) (*usecase.UserRes, error) {
	user, ok := f.users[userID]
	if !ok {
		return nil, e.ErrUserNotFound
	}

	return &user, nil
}

func (f *fakeAuthUC) ForgotPassword(ctx context.Context, email string) (string, error) {
	return "", nil
}

func (f *fakeAuthUC) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	return nil
}

func newMiddlewareFixture(t *testing.T) (*AuthMiddleware, *token.Manager) {
	t.Helper()

	tokens, err := token.NewManager("0123456789abcdef0123456789abcdef", time.Hour)
	require.NoError(t, err)

	authUC := &fakeAuthUC{users: map[int64]usecase.UserRes{
		1: {ID: 1, Email: "admin@example.com", Role: domain.RoleAdmin},
		2: {ID: 2, Email: "asha@example.com", Role: domain.RoleUser},
	}}

	return NewAuthMiddleware(tokens, authUC, nopLogger{}), tokens
}

func principalEcho(t *testing.T, got **Principal) http.Handler {
	t.Helper()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if principal, ok := PrincipalFromCtx(r.Context()); ok {
			*got = principal
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireMiddleware(t *testing.T) {
	m, tokens := newMiddlewareFixture(t)

	t.Run("valid token passes principal", func(t *testing.T) {
		raw, err := tokens.Issue(2, "asha@example.com")
		require.NoError(t, err)

		var got *Principal
		req := httptest.NewRequest(http.MethodGet, "/cart", nil)
		req.Header.Set("Authorization", "Bearer "+raw)
		rec := httptest.NewRecorder()

		m.Require(principalEcho(t, &got)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, got)
		assert.Equal(t, int64(2), got.UserID)
		assert.Equal(t, "asha@example.com", got.Email)
	})

	t.Run("missing header rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/cart", nil)
		rec := httptest.NewRecorder()

		m.Require(principalEcho(t, new(*Principal))).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/cart", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		rec := httptest.NewRecorder()

		m.Require(principalEcho(t, new(*Principal))).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestOptionalMiddleware(t *testing.T) {
	m, tokens := newMiddlewareFixture(t)

	t.Run("anonymous request passes without principal", func(t *testing.T) {
		var got *Principal
		req := httptest.NewRequest(http.MethodGet, "/products/mango/reviews", nil)
		rec := httptest.NewRecorder()

		m.Optional(principalEcho(t, &got)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, got)
	})

	t.Run("valid token adds principal", func(t *testing.T) {
		raw, err := tokens.Issue(2, "asha@example.com")
		require.NoError(t, err)

		var got *Principal
		req := httptest.NewRequest(http.MethodGet, "/products/mango/reviews", nil)
		req.Header.Set("Authorization", "Bearer "+raw)
		rec := httptest.NewRecorder()

		m.Optional(principalEcho(t, &got)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, got)
		assert.Equal(t, int64(2), got.UserID)
	})
}

func TestRequireAdminMiddleware(t *testing.T) {
	m, tokens := newMiddlewareFixture(t)

	serve := func(userID int64, email string) *httptest.ResponseRecorder {
		raw, err := tokens.Issue(userID, email)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/admin/products", nil)
		req.Header.Set("Authorization", "Bearer "+raw)
		rec := httptest.NewRecorder()

		m.Require(m.RequireAdmin(principalEcho(t, new(*Principal)))).ServeHTTP(rec, req)

		return rec
	}

	assert.Equal(t, http.StatusOK, serve(1, "admin@example.com").Code)
	assert.Equal(t, http.StatusForbidden, serve(2, "asha@example.com").Code)
	// Неизвестный пользователь с валидным токеном тоже не проходит
	assert.Equal(t, http.StatusUnauthorized, serve(99, "ghost@example.com").Code)
}
