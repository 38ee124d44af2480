package http

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/soil2spoon/go-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriceToPaise(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr error
	}{
		{in: "599.99", want: 59999},
		{in: "600", want: 60000},
		{in: "0.01", want: 1},
		{in: "1000000000", want: 100_000_000_000},
		{in: " ", wantErr: e.ErrInvalidPrice},
		{in: "abc", wantErr: e.ErrInvalidPrice},
		{in: "0", wantErr: e.ErrInvalidPrice},
		{in: "-5", wantErr: e.ErrInvalidPrice},
		{in: "1000000001", wantErr: e.ErrInvalidPrice},
		{in: "599.999", wantErr: e.ErrPricePrecision},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parsePriceToPaise(tt.in)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToHTTPResponse(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{e.ErrCartEmpty, http.StatusBadRequest},
		{e.ErrProductNotFound, http.StatusBadRequest},
		{e.ErrGeocodeUnavailable, http.StatusBadRequest},
		{e.ErrInvalidCredentials, http.StatusUnauthorized},
		{e.ErrUnauthenticated, http.StatusUnauthorized},
		{e.ErrReviewNotOwned, http.StatusForbidden},
		{e.ErrAdminOnly, http.StatusForbidden},
		{fmt.Errorf("database exploded"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			code, msg := ToHTTPResponse(tt.err)

			assert.Equal(t, tt.code, code)
			assert.NotEmpty(t, msg)
		})
	}

	// Детали внутренних ошибок не утекают наружу
	_, msg := ToHTTPResponse(fmt.Errorf("database exploded"))
	assert.Equal(t, e.ErrInternalServerError.Error(), msg)

	// Обёрнутые ошибки разворачиваются до сентинела
	code, _ := ToHTTPResponse(e.Wrap("OrderUseCase.Checkout", e.ErrCartEmpty))
	assert.Equal(t, http.StatusBadRequest, code)
}
