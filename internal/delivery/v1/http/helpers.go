package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/soil2spoon/go-backend/pkg/e"
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

func ToHTTPResponse(err error) (int, string) {
	switch {
	case errors.Is(err, e.ErrStatusBadRequest):
		return http.StatusBadRequest, e.ErrStatusBadRequest.Error()
	case errors.Is(err, e.ErrCartEmpty):
		return http.StatusBadRequest, e.ErrCartEmpty.Error()
	case errors.Is(err, e.ErrShippingRequired):
		return http.StatusBadRequest, e.ErrShippingRequired.Error()
	case errors.Is(err, e.ErrShippingFieldsRequired):
		return http.StatusBadRequest, e.ErrShippingFieldsRequired.Error()
	case errors.Is(err, e.ErrNameTooShort):
		return http.StatusBadRequest, e.ErrNameTooShort.Error()
	case errors.Is(err, e.ErrPhoneInvalid):
		return http.StatusBadRequest, e.ErrPhoneInvalid.Error()
	case errors.Is(err, e.ErrPincodeInvalid):
		return http.StatusBadRequest, e.ErrPincodeInvalid.Error()
	case errors.Is(err, e.ErrAddressLine1TooLong):
		return http.StatusBadRequest, e.ErrAddressLine1TooLong.Error()
	case errors.Is(err, e.ErrCityStateTooLong):
		return http.StatusBadRequest, e.ErrCityStateTooLong.Error()
	case errors.Is(err, e.ErrAddressUnverified):
		return http.StatusBadRequest, e.ErrAddressUnverified.Error()
	case errors.Is(err, e.ErrAddressNotInIndia):
		return http.StatusBadRequest, e.ErrAddressNotInIndia.Error()
	case errors.Is(err, e.ErrPincodeMismatch):
		return http.StatusBadRequest, e.ErrPincodeMismatch.Error()
	case errors.Is(err, e.ErrGeocodeUnavailable):
		return http.StatusBadRequest, e.ErrGeocodeUnavailable.Error()
	case errors.Is(err, e.ErrRatingOutOfRange):
		return http.StatusBadRequest, e.ErrRatingOutOfRange.Error()
	case errors.Is(err, e.ErrReviewTextRequired):
		return http.StatusBadRequest, e.ErrReviewTextRequired.Error()
	case errors.Is(err, e.ErrReviewTextTooLong):
		return http.StatusBadRequest, e.ErrReviewTextTooLong.Error()
	case errors.Is(err, e.ErrProductNameRequired):
		return http.StatusBadRequest, e.ErrProductNameRequired.Error()
	case errors.Is(err, e.ErrProductSlugRequired):
		return http.StatusBadRequest, e.ErrProductSlugRequired.Error()
	case errors.Is(err, e.ErrInvalidPrice):
		return http.StatusBadRequest, e.ErrInvalidPrice.Error()
	case errors.Is(err, e.ErrPricePrecision):
		return http.StatusBadRequest, e.ErrPricePrecision.Error()
	case errors.Is(err, e.ErrEmailTaken):
		return http.StatusBadRequest, e.ErrEmailTaken.Error()
	case errors.Is(err, e.ErrPasswordTooShort):
		return http.StatusBadRequest, e.ErrPasswordTooShort.Error()
	case errors.Is(err, e.ErrResetTokenInvalid):
		return http.StatusBadRequest, e.ErrResetTokenInvalid.Error()
	case errors.Is(err, e.ErrProductNotFound):
		return http.StatusBadRequest, e.ErrProductNotFound.Error()
	case errors.Is(err, e.ErrCategoryNotFound):
		return http.StatusBadRequest, e.ErrCategoryNotFound.Error()
	case errors.Is(err, e.ErrReviewNotFound):
		return http.StatusBadRequest, e.ErrReviewNotFound.Error()
	case errors.Is(err, e.ErrUserNotFound):
		return http.StatusBadRequest, e.ErrUserNotFound.Error()
	case errors.Is(err, e.ErrAddressNotFound):
		return http.StatusBadRequest, e.ErrAddressNotFound.Error()
	case errors.Is(err, e.ErrInvalidCredentials):
		return http.StatusUnauthorized, e.ErrInvalidCredentials.Error()
	case errors.Is(err, e.ErrUnauthenticated):
		return http.StatusUnauthorized, e.ErrUnauthenticated.Error()
	case errors.Is(err, e.ErrReviewNotOwned):
		return http.StatusForbidden, e.ErrReviewNotOwned.Error()
	case errors.Is(err, e.ErrAdminOnly):
		return http.StatusForbidden, e.ErrAdminOnly.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return e.ErrStatusBadRequest
	}

	return nil
}

func pathInt64(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, e.ErrStatusBadRequest
	}

	return id, nil
}

// parsePriceToPaise переводит цену в рупиях ("599.99" или "600") в пайсы.
func parsePriceToPaise(s string) (int64, error) {
	if strings.TrimSpace(s) == "" {
		return 0, e.ErrInvalidPrice
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, e.ErrInvalidPrice
	}

	if d.LessThanOrEqual(decimal.Zero) {
		return 0, e.ErrInvalidPrice
	}

	maxPrice := decimal.NewFromInt(1_000_000_000)
	if d.GreaterThan(maxPrice) {
		return 0, e.ErrInvalidPrice
	}

	if d.Exponent() < -2 {
		return 0, e.ErrPricePrecision
	}

	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}
