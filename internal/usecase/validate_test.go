package usecase

import (
	"strings"
	"testing"

	"github.com/soil2spoon/go-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidPhone(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"9876543210", true},
		{"09876543210", true},
		{"919876543210", true},
		{"98765-43210", true},
		{"98765 43210", true},
		{"+91 98765 43210", true},
		{"19876543210", false},  // 11 цифр без ведущего нуля
		{"929876543210", false}, // 12 цифр с чужим кодом страны
		{"987654321", false},
		{"98765432109876", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			assert.Equal(t, tt.want, validPhone(tt.phone))
		})
	}
}

func TestValidateShippingFields(t *testing.T) {
	valid := func() (string, string, string, string, string, string) {
		return "Asha Patel", "9876543210", "12 MG Road", "Pune", "Maharashtra", "411001"
	}

	t.Run("valid address passes", func(t *testing.T) {
		name, phone, line1, city, state, pincode := valid()
		require.NoError(t, validateShippingFields(name, phone, line1, city, state, pincode))
	})

	t.Run("blank field", func(t *testing.T) {
		name, phone, line1, _, state, pincode := valid()
		err := validateShippingFields(name, phone, line1, "  ", state, pincode)
		assert.ErrorIs(t, err, e.ErrShippingFieldsRequired)
	})

	t.Run("name too short", func(t *testing.T) {
		_, phone, line1, city, state, pincode := valid()
		err := validateShippingFields("A", phone, line1, city, state, pincode)
		assert.ErrorIs(t, err, e.ErrNameTooShort)
	})

	t.Run("bad phone", func(t *testing.T) {
		name, _, line1, city, state, pincode := valid()
		err := validateShippingFields(name, "12345", line1, city, state, pincode)
		assert.ErrorIs(t, err, e.ErrPhoneInvalid)
	})

	t.Run("formatted phone and pincode pass", func(t *testing.T) {
		name, _, line1, city, state, _ := valid()
		require.NoError(t, validateShippingFields(name, "98765-43210", line1, city, state, "411 001"))
	})

	t.Run("pincode wrong length", func(t *testing.T) {
		name, phone, line1, city, state, _ := valid()
		err := validateShippingFields(name, phone, line1, city, state, "4110")
		assert.ErrorIs(t, err, e.ErrPincodeInvalid)
	})

	t.Run("pincode with letters", func(t *testing.T) {
		name, phone, line1, city, state, _ := valid()
		err := validateShippingFields(name, phone, line1, city, state, "41100a")
		assert.ErrorIs(t, err, e.ErrPincodeInvalid)
	})

	t.Run("address line too long", func(t *testing.T) {
		name, phone, _, city, state, pincode := valid()
		err := validateShippingFields(name, phone, strings.Repeat("x", maxAddressLine+1), city, state, pincode)
		assert.ErrorIs(t, err, e.ErrAddressLine1TooLong)
	})

	t.Run("city too long", func(t *testing.T) {
		name, phone, line1, _, state, pincode := valid()
		err := validateShippingFields(name, phone, line1, strings.Repeat("x", maxCityStateLen+1), state, pincode)
		assert.ErrorIs(t, err, e.ErrCityStateTooLong)
	})
}

func TestHasShippingData(t *testing.T) {
	assert.False(t, hasShippingData("", " ", "", "", "", ""))
	assert.True(t, hasShippingData("", "", "", "Pune", "", ""))
	assert.True(t, hasShippingData("Asha", "9876543210", "12 MG Road", "Pune", "Maharashtra", "411001"))
}
