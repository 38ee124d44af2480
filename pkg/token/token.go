package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/soil2spoon/go-backend/pkg/e"
)

// Claims — полезная нагрузка токена доступа.
type Claims struct {
	UserID int64
	Email  string
}

// Manager выпускает и проверяет JWT (HS256).
// Секрет и время жизни передаются явно через конструктор.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

func NewManager(secret string, ttl time.Duration) (*Manager, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("jwt secret must be at least 32 bytes for HS256")
	}

	return &Manager{secret: []byte(secret), ttl: ttl}, nil
}

// Issue выпускает подписанный токен с email в subject и идентификатором пользователя.
func (m *Manager) Issue(userID int64, email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":     email,
		"user_id": userID,
		"iat":     now.Unix(),
		"exp":     now.Add(m.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.secret)
}

// Parse проверяет подпись и срок действия токена и возвращает его claims.
func (m *Manager) Parse(raw string) (*Claims, error) {
	parsed, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, e.ErrUnauthenticated
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, e.ErrUnauthenticated
	}

	email, _ := mapClaims["sub"].(string)
	userIDFloat, ok := mapClaims["user_id"].(float64)
	if !ok || email == "" {
		return nil, e.ErrUnauthenticated
	}

	return &Claims{UserID: int64(userIDFloat), Email: email}, nil
}
