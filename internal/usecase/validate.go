package usecase

import (
	"strings"

	"github.com/soil2spoon/go-backend/pkg/e"
)

const (
	minNameLen      = 2
	maxAddressLine  = 500
	maxCityStateLen = 100
	pincodeLen      = 6
)

// validateShippingFields проверяет поля адреса доставки по правилам
// индийских адресов: телефон из 10 цифр (допускается префикс 0 или 91),
// шестизначный пин-код. Телефон и пин-код сначала очищаются от
// форматирования — пробелы и дефисы не считаются ошибкой.
func validateShippingFields(name, phone, line1, city, state, pincode string) error {
	if strings.TrimSpace(name) == "" ||
		strings.TrimSpace(phone) == "" ||
		strings.TrimSpace(line1) == "" ||
		strings.TrimSpace(city) == "" ||
		strings.TrimSpace(state) == "" ||
		strings.TrimSpace(pincode) == "" {
		return e.ErrShippingFieldsRequired
	}

	if len(strings.TrimSpace(name)) < minNameLen {
		return e.ErrNameTooShort
	}

	if !validPhone(phone) {
		return e.ErrPhoneInvalid
	}

	if len(digits(pincode)) != pincodeLen {
		return e.ErrPincodeInvalid
	}

	if len(line1) > maxAddressLine {
		return e.ErrAddressLine1TooLong
	}

	if len(city) > maxCityStateLen || len(state) > maxCityStateLen {
		return e.ErrCityStateTooLong
	}

	return nil
}

// hasShippingData — признак того, что в запросе вообще передан адрес.
func hasShippingData(name, phone, line1, city, state, pincode string) bool {
	return strings.TrimSpace(name) != "" ||
		strings.TrimSpace(phone) != "" ||
		strings.TrimSpace(line1) != "" ||
		strings.TrimSpace(city) != "" ||
		strings.TrimSpace(state) != "" ||
		strings.TrimSpace(pincode) != ""
}

// validPhone принимает 10 цифр, 11 цифр с ведущим нулём либо 12 цифр
// с кодом страны 91. Нецифровые символы отбрасываются до проверки.
func validPhone(phone string) bool {
	d := digits(phone)

	switch len(d) {
	case 10:
		return true
	case 11:
		return d[0] == '0'
	case 12:
		return strings.HasPrefix(d, "91")
	default:
		return false
	}
}

// digits возвращает только цифры строки.
func digits(s string) string {
	var b strings.Builder
	for _, c := range s {
		if c >= '0' && c <= '9' {
			b.WriteRune(c)
		}
	}

	return b.String()
}
