package domain

import "time"

// Address — запись адресной книги пользователя.
// У пользователя не может быть больше одного адреса по умолчанию.
type Address struct {
	ID           int64
	UserID       int64
	Name         string
	Phone        string
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	Pincode      string
	IsDefault    bool
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}
