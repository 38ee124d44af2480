package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// 400 Bad Request — корзина и оформление заказа
	ErrCartEmpty        = fmt.Errorf("cart is empty")
	ErrShippingRequired = fmt.Errorf("shipping address is required")

	// 400 Bad Request — валидация адреса доставки
	ErrShippingFieldsRequired = fmt.Errorf("name, phone, address line 1, city, state and pincode are required")
	ErrNameTooShort           = fmt.Errorf("name must be at least 2 characters")
	ErrPhoneInvalid           = fmt.Errorf("phone must be a valid 10-digit indian number")
	ErrPincodeInvalid         = fmt.Errorf("pincode must be exactly 6 digits")
	ErrAddressLine1TooLong    = fmt.Errorf("address line 1 is too long")
	ErrCityStateTooLong       = fmt.Errorf("city and state must be 100 characters or less")
	ErrAddressUnverified      = fmt.Errorf("address could not be verified, please check pincode, city and state")
	ErrAddressNotInIndia      = fmt.Errorf("address must be in india, please check city, state and pincode")
	ErrPincodeMismatch        = fmt.Errorf("pincode does not match the address, please check pincode, city and state")
	ErrGeocodeUnavailable     = fmt.Errorf("address verification is temporarily unavailable, please try again")

	// 400 Bad Request — отзывы
	ErrRatingOutOfRange   = fmt.Errorf("rating must be between 1 and 5")
	ErrReviewTextRequired = fmt.Errorf("review text is required")
	ErrReviewTextTooLong  = fmt.Errorf("review text must be at most 1000 characters")

	// 400 Bad Request — каталог (админ)
	ErrProductNameRequired = fmt.Errorf("product name is required")
	ErrProductSlugRequired = fmt.Errorf("product slug is required")
	ErrInvalidPrice        = fmt.Errorf("invalid price")
	ErrPricePrecision      = fmt.Errorf("price must have at most 2 decimal places")

	// 400 Bad Request — аутентификация
	ErrEmailTaken         = fmt.Errorf("email already registered")
	ErrInvalidCredentials = fmt.Errorf("invalid email or password")
	ErrPasswordTooShort   = fmt.Errorf("password must be at least 6 characters")
	ErrResetTokenInvalid  = fmt.Errorf("invalid or expired reset link")
	ErrStatusBadRequest   = fmt.Errorf("bad request")

	// 401 Unauthorized
	ErrUnauthenticated = fmt.Errorf("authentication required")

	// 403 Forbidden
	ErrReviewNotOwned = fmt.Errorf("you can only edit your own review")
	ErrAdminOnly      = fmt.Errorf("admin access required")

	// Отсутствующие сущности
	ErrProductNotFound  = fmt.Errorf("product not found")
	ErrCategoryNotFound = fmt.Errorf("category not found")
	ErrReviewNotFound   = fmt.Errorf("review not found")
	ErrUserNotFound     = fmt.Errorf("user not found")
	ErrAddressNotFound  = fmt.Errorf("address not found")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
