package domain

import "time"

// OrderStatus — статус заказа. Заказы создаются только в статусе PENDING,
// автоматика переходов не входит в ядро.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// Order — неизменяемый финансовый снимок оформленного заказа.
// Total и цены позиций фиксируются в момент оформления и не зависят
// от последующих изменений цен товаров. Поля доставки — копия адреса
// на момент оформления, а не ссылка на изменяемую запись адресной книги.
type Order struct {
	ID            int64
	UserID        int64
	Status        OrderStatus
	Total         int64
	ShippingName  string
	Phone         string
	AddressLine1  string
	AddressLine2  string
	City          string
	State         string
	Pincode       string
	PaymentMethod string
	CreatedAt     time.Time
	Items         []OrderItem
}

// OrderItem — позиция заказа. PriceAtOrder — цена за единицу, снятая при
// оформлении; источник истины для сумм, не связанный с Product.Price.
// Позиции принадлежат заказу и удаляются вместе с ним.
type OrderItem struct {
	ID           int64
	OrderID      int64
	ProductID    int64
	ProductName  string
	ProductSlug  string
	PriceAtOrder int64
	Quantity     int
}
