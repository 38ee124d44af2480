package usecase

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/soil2spoon/go-backend/internal/domain"
	"github.com/soil2spoon/go-backend/pkg/e"
	"github.com/soil2spoon/go-backend/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLen = 6

	// Срок жизни токена сброса пароля.
	resetTokenTTL = time.Hour
)

// AuthUseCase отвечает за регистрацию, вход и восстановление пароля.
type AuthUseCase struct {
	userRepo     UserRepository
	tokens       TokenIssuer
	mailer       Mailer
	resetBaseURL string
	logger       logger.Logger
}

func NewAuthUC(
	userRepo UserRepository,
	tokens TokenIssuer,
	mailer Mailer,
	resetBaseURL string,
	logger logger.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:     userRepo,
		tokens:       tokens,
		mailer:       mailer,
		resetBaseURL: resetBaseURL,
		logger:       logger,
	}
}

// Register создаёт учётную запись и сразу выпускает токен доступа.
func (a *AuthUseCase) Register(ctx context.Context, req *SignupReq) (*AuthRes, error) {
	const op = "AuthUseCase.Register"

	email := normalizeEmail(req.Email)
	if err := validateCredentials(email, req.Password); err != nil {
		return nil, e.Wrap(op, err)
	}

	if len(strings.TrimSpace(req.Name)) < minNameLen {
		return nil, e.Wrap(op, e.ErrNameTooShort)
	}

	if _, err := a.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, e.Wrap(op, e.ErrEmailTaken)
	} else if !errors.Is(err, e.ErrUserNotFound) {
		return nil, e.Wrap(op, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	user, err := a.userRepo.Create(ctx, domain.NewUser(email, string(hash), strings.TrimSpace(req.Name)))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return a.authRes(user, op)
}

// Login проверяет учётные данные и выпускает токен доступа.
func (a *AuthUseCase) Login(ctx context.Context, req *LoginReq) (*AuthRes, error) {
	const op = "AuthUseCase.Login"

	user, err := a.userRepo.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, e.ErrUserNotFound) {
			return nil, e.Wrap(op, e.ErrInvalidCredentials)
		}

		return nil, e.Wrap(op, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, e.Wrap(op, e.ErrInvalidCredentials)
	}

	return a.authRes(user, op)
}

func (a *AuthUseCase) GetUser(ctx context.Context, userID int64) (*UserRes, error) {
	const op = "AuthUseCase.GetUser"

	user, err := a.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	res := NewUserRes(user)

	return &res, nil
}

// ForgotPassword выпускает одноразовый токен сброса пароля. Если
// настроена почта, ссылка уходит письмом и метод возвращает пустую
// строку; иначе ссылка возвращается вызывающему. Для неизвестного
// email метод отвечает так же, как для известного.
func (a *AuthUseCase) ForgotPassword(ctx context.Context, email string) (string, error) {
	const op = "AuthUseCase.ForgotPassword"

	user, err := a.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, e.ErrUserNotFound) {
			return "", nil
		}

		return "", e.Wrap(op, err)
	}

	token := uuid.NewString()
	if err := a.userRepo.SetResetToken(ctx, user.ID, token, time.Now().Add(resetTokenTTL)); err != nil {
		return "", e.Wrap(op, err)
	}

	link := a.resetBaseURL + "/reset-password?token=" + token

	if a.mailer != nil && a.mailer.Enabled() {
		if err := a.mailer.SendPasswordReset(ctx, user.Email, link); err != nil {
			return "", e.Wrap(op, err)
		}

		return "", nil
	}

	return link, nil
}

// ResetPassword меняет пароль по одноразовому токену и гасит токен.
func (a *AuthUseCase) ResetPassword(ctx context.Context, token, password string) error {
	const op = "AuthUseCase.ResetPassword"

	if len(password) < minPasswordLen {
		return e.Wrap(op, e.ErrPasswordTooShort)
	}

	user, err := a.userRepo.GetByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, e.ErrUserNotFound) {
			return e.Wrap(op, e.ErrResetTokenInvalid)
		}

		return e.Wrap(op, err)
	}

	if user.ResetTokenExpiry == nil || time.Now().After(*user.ResetTokenExpiry) {
		return e.Wrap(op, e.ErrResetTokenInvalid)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return e.Wrap(op, err)
	}

	if err := a.userRepo.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

func (a *AuthUseCase) authRes(user *domain.User, op string) (*AuthRes, error) {
	token, err := a.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return &AuthRes{
		Token: token,
		User:  NewUserRes(user),
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateCredentials(email, password string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return e.ErrInvalidCredentials
	}

	if len(password) < minPasswordLen {
		return e.ErrPasswordTooShort
	}

	return nil
}
