package http

import (
	"net/http"

	"github.com/soil2spoon/go-backend/internal/usecase"
	"github.com/soil2spoon/go-backend/pkg/e"
	"github.com/soil2spoon/go-backend/pkg/logger"
)

type AuthHandler struct {
	authUsecase usecase.AuthUC
	logger      logger.Logger
}

func NewAuthHandler(authUsecase usecase.AuthUC, logger logger.Logger) *AuthHandler {
	return &AuthHandler{authUsecase: authUsecase, logger: logger}
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

func newUserResponse(user *usecase.UserRes) userResponse {
	return userResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}
}

// signup
//
//	@Summary		Регистрация покупателя
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		signupRequest	true	"Данные регистрации"
//	@Success		201		{object}	authResponse
//	@Failure		400		{object}	ErrorResponse
//	@Router			/auth/signup [post]
func (a *AuthHandler) signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	res, err := a.authUsecase.Register(r.Context(), &usecase.SignupReq{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		a.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, authResponse{
		Token: res.Token,
		User:  newUserResponse(&res.User),
	})
}

// login
//
//	@Summary		Вход по email и паролю
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		loginRequest	true	"Учётные данные"
//	@Success		200		{object}	authResponse
//	@Failure		401		{object}	ErrorResponse
//	@Router			/auth/login [post]
func (a *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	res, err := a.authUsecase.Login(r.Context(), &usecase.LoginReq{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		a.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, authResponse{
		Token: res.Token,
		User:  newUserResponse(&res.User),
	})
}

// me
//
//	@Summary		Текущий пользователь
//	@Tags			auth
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	userResponse
//	@Failure		401	{object}	ErrorResponse
//	@Router			/auth/me [get]
func (a *AuthHandler) me(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromCtx(r.Context())
	if !ok {
		WriteError(w, e.ErrUnauthenticated)
		return
	}

	user, err := a.authUsecase.GetUser(r.Context(), principal.UserID)
	if err != nil {
		a.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newUserResponse(user))
}

// forgotPassword
//
//	@Summary		Запрос ссылки для сброса пароля
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body	forgotPasswordRequest	true	"Email"
//	@Success		200		{object}	map[string]interface{}
//	@Router			/auth/forgot-password [post]
func (a *AuthHandler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	link, err := a.authUsecase.ForgotPassword(r.Context(), req.Email)
	if err != nil {
		a.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	body := map[string]interface{}{"message": "if the email exists, a reset link has been issued"}
	if link != "" {
		// SMTP не настроен, ссылка возвращается напрямую
		body["resetLink"] = link
	}

	WriteSuccess(w, http.StatusOK, body)
}

// resetPassword
//
//	@Summary		Смена пароля по токену сброса
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body	resetPasswordRequest	true	"Токен и новый пароль"
//	@Success		200		{object}	map[string]interface{}
//	@Failure		400		{object}	ErrorResponse
//	@Router			/auth/reset-password [post]
func (a *AuthHandler) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	if err := a.authUsecase.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
		a.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, map[string]interface{}{"message": "password updated"})
}
