package usecase

import "context"

// AddressVerifier проверяет адрес доставки во внешнем геокодере.
type AddressVerifier interface {
	Verify(ctx context.Context, req *VerifyAddressReq) error
}

// MessageProducer публикует доменные события в брокер.
type MessageProducer interface {
	WriteRawMessage(ctx context.Context, req *WriteRawMessageReq) error
}

// Mailer отправляет письма пользователям.
type Mailer interface {
	Enabled() bool
	SendPasswordReset(ctx context.Context, email, resetLink string) error
}

// TokenIssuer выпускает токен доступа для аутентифицированного пользователя.
type TokenIssuer interface {
	Issue(userID int64, email string) (string, error)
}
