package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/soil2spoon/go-backend/internal/domain"
	"github.com/soil2spoon/go-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthFixture(t *testing.T, mailer *fakeMailer) (*AuthUseCase, *fakeUserRepo) {
	t.Helper()

	userRepo := newFakeUserRepo()
	uc := NewAuthUC(userRepo, fakeTokenIssuer{}, mailer, "https://soil2spoon.example", nopLogger{})

	return uc, userRepo
}

func TestRegister(t *testing.T) {
	uc, userRepo := newAuthFixture(t, &fakeMailer{})
	ctx := context.Background()

	res, err := uc.Register(ctx, &SignupReq{Name: "Asha Patel", Email: "  Asha@Example.COM ", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "token-1", res.Token)
	assert.Equal(t, "asha@example.com", res.User.Email)
	assert.Equal(t, domain.RoleUser, res.User.Role)

	// Пароль хранится только хэшем
	stored, err := userRepo.GetByID(ctx, res.User.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", stored.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret1")))

	t.Run("duplicate email", func(t *testing.T) {
		_, err := uc.Register(ctx, &SignupReq{Name: "Other", Email: "asha@example.com", Password: "secret1"})
		assert.ErrorIs(t, err, e.ErrEmailTaken)
	})

	t.Run("bad email", func(t *testing.T) {
		_, err := uc.Register(ctx, &SignupReq{Name: "Asha", Email: "not-an-email", Password: "secret1"})
		assert.ErrorIs(t, err, e.ErrInvalidCredentials)
	})

	t.Run("short password", func(t *testing.T) {
		_, err := uc.Register(ctx, &SignupReq{Name: "Asha", Email: "new@example.com", Password: "12345"})
		assert.ErrorIs(t, err, e.ErrPasswordTooShort)
	})

	t.Run("short name", func(t *testing.T) {
		_, err := uc.Register(ctx, &SignupReq{Name: " A ", Email: "new@example.com", Password: "secret1"})
		assert.ErrorIs(t, err, e.ErrNameTooShort)
	})
}

func TestLogin(t *testing.T) {
	uc, _ := newAuthFixture(t, &fakeMailer{})
	ctx := context.Background()

	_, err := uc.Register(ctx, &SignupReq{Name: "Asha Patel", Email: "asha@example.com", Password: "secret1"})
	require.NoError(t, err)

	res, err := uc.Login(ctx, &LoginReq{Email: "ASHA@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", res.User.Email)

	// Неверный пароль и неизвестный email неразличимы для вызывающего
	_, err = uc.Login(ctx, &LoginReq{Email: "asha@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, e.ErrInvalidCredentials)

	_, err = uc.Login(ctx, &LoginReq{Email: "ghost@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, e.ErrInvalidCredentials)
}

func TestForgotPasswordWithoutMailerReturnsLink(t *testing.T) {
	uc, userRepo := newAuthFixture(t, &fakeMailer{enabled: false})
	ctx := context.Background()

	_, err := uc.Register(ctx, &SignupReq{Name: "Asha Patel", Email: "asha@example.com", Password: "secret1"})
	require.NoError(t, err)

	link, err := uc.ForgotPassword(ctx, "asha@example.com")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(link, "https://soil2spoon.example/reset-password?token="))

	stored, err := userRepo.GetByEmail(ctx, "asha@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored.ResetToken)
	assert.Contains(t, link, *stored.ResetToken)
}

func TestForgotPasswordWithMailerSendsEmail(t *testing.T) {
	mailer := &fakeMailer{enabled: true}
	uc, _ := newAuthFixture(t, mailer)
	ctx := context.Background()

	_, err := uc.Register(ctx, &SignupReq{Name: "Asha Patel", Email: "asha@example.com", Password: "secret1"})
	require.NoError(t, err)

	link, err := uc.ForgotPassword(ctx, "asha@example.com")
	require.NoError(t, err)
	assert.Empty(t, link)
	require.Len(t, mailer.sentTo, 1)
	assert.Equal(t, "asha@example.com", mailer.sentTo[0])
}

func TestForgotPasswordUnknownEmailIsSilent(t *testing.T) {
	mailer := &fakeMailer{enabled: true}
	uc, _ := newAuthFixture(t, mailer)

	link, err := uc.ForgotPassword(context.Background(), "ghost@example.com")
	require.NoError(t, err)
	assert.Empty(t, link)
	assert.Empty(t, mailer.sentTo)
}

func TestResetPassword(t *testing.T) {
	uc, userRepo := newAuthFixture(t, &fakeMailer{})
	ctx := context.Background()

	res, err := uc.Register(ctx, &SignupReq{Name: "Asha Patel", Email: "asha@example.com", Password: "secret1"})
	require.NoError(t, err)

	link, err := uc.ForgotPassword(ctx, "asha@example.com")
	require.NoError(t, err)
	token := link[strings.Index(link, "token=")+len("token="):]

	require.NoError(t, uc.ResetPassword(ctx, token, "newsecret"))

	_, err = uc.Login(ctx, &LoginReq{Email: "asha@example.com", Password: "newsecret"})
	require.NoError(t, err)

	// Токен одноразовый
	err = uc.ResetPassword(ctx, token, "another1")
	assert.ErrorIs(t, err, e.ErrResetTokenInvalid)

	t.Run("expired token", func(t *testing.T) {
		expired := time.Now().Add(-time.Minute)
		require.NoError(t, userRepo.SetResetToken(ctx, res.User.ID, "expired-token", expired))

		err := uc.ResetPassword(ctx, "expired-token", "another1")
		assert.ErrorIs(t, err, e.ErrResetTokenInvalid)
	})

	t.Run("short password", func(t *testing.T) {
		err := uc.ResetPassword(ctx, "whatever", "123")
		assert.ErrorIs(t, err, e.ErrPasswordTooShort)
	})

	t.Run("unknown token", func(t *testing.T) {
		err := uc.ResetPassword(ctx, "no-such-token", "newsecret")
		assert.ErrorIs(t, err, e.ErrResetTokenInvalid)
	})
}
