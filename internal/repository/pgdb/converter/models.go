package converter

import (
	"time"

	"github.com/google/uuid"
)

// ProductModel представляет запись таблицы products в PostgreSQL.
type ProductModel struct {
	ID            int64      `db:"id"`
	Slug          string     `db:"slug"`
	Name          string     `db:"name"`
	Description   string     `db:"description"`
	Price         int64      `db:"price"`
	OriginalPrice *int64     `db:"original_price"`
	Image         string     `db:"image"`
	CategoryID    string     `db:"category_id"`
	Rating        float64    `db:"rating"`
	ReviewCount   int        `db:"review_count"`
	Featured      bool       `db:"featured"`
	Trending      bool       `db:"trending"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     *time.Time `db:"updated_at"`
}

// CategoryModel представляет запись таблицы categories в PostgreSQL.
type CategoryModel struct {
	ID           string    `db:"id"`
	Name         string    `db:"name"`
	Image        string    `db:"image"`
	DisplayOrder int       `db:"display_order"`
	CreatedAt    time.Time `db:"created_at"`
}

// ReviewModel представляет запись таблицы reviews в PostgreSQL.
type ReviewModel struct {
	ID         int64     `db:"id"`
	ProductID  int64     `db:"product_id"`
	UserID     *int64    `db:"user_id"`
	Author     string    `db:"author"`
	Rating     int       `db:"rating"`
	Text       string    `db:"review_text"`
	ReviewDate time.Time `db:"review_date"`
	CreatedAt  time.Time `db:"created_at"`
}

// OrderModel представляет запись таблицы orders в PostgreSQL.
type OrderModel struct {
	ID            int64     `db:"id"`
	UserID        int64     `db:"user_id"`
	Status        string    `db:"status"`
	Total         int64     `db:"total"`
	ShippingName  string    `db:"shipping_name"`
	Phone         string    `db:"phone"`
	AddressLine1  string    `db:"address_line1"`
	AddressLine2  string    `db:"address_line2"`
	City          string    `db:"city"`
	State         string    `db:"state"`
	Pincode       string    `db:"pincode"`
	PaymentMethod string    `db:"payment_method"`
	CreatedAt     time.Time `db:"created_at"`
}

// OrderItemModel представляет запись таблицы order_items в PostgreSQL.
type OrderItemModel struct {
	ID           int64  `db:"id"`
	OrderID      int64  `db:"order_id"`
	ProductID    int64  `db:"product_id"`
	ProductName  string `db:"product_name"`
	ProductSlug  string `db:"product_slug"`
	PriceAtOrder int64  `db:"price_at_order"`
	Quantity     int    `db:"quantity"`
}

// UserModel представляет запись таблицы users в PostgreSQL.
type UserModel struct {
	ID               int64      `db:"id"`
	Email            string     `db:"email"`
	PasswordHash     string     `db:"password_hash"`
	Name             string     `db:"name"`
	Role             string     `db:"role"`
	ResetToken       *string    `db:"reset_token"`
	ResetTokenExpiry *time.Time `db:"reset_token_expiry"`
	CreatedAt        time.Time  `db:"created_at"`
	UpdatedAt        *time.Time `db:"updated_at"`
}

// AddressModel представляет запись таблицы addresses в PostgreSQL.
type AddressModel struct {
	ID           int64     `db:"id"`
	UserID       int64     `db:"user_id"`
	Name         string    `db:"name"`
	Phone        string    `db:"phone"`
	AddressLine1 string    `db:"address_line1"`
	AddressLine2 string    `db:"address_line2"`
	City         string    `db:"city"`
	State        string    `db:"state"`
	Pincode      string    `db:"pincode"`
	IsDefault    bool      `db:"is_default"`
	CreatedAt    time.Time `db:"created_at"`
}

// OutboxEventModel представляет запись таблицы outbox_events в PostgreSQL.
type OutboxEventModel struct {
	ID          int64      `db:"id"`
	EventID     uuid.UUID  `db:"event_id"`
	EventType   string     `db:"event_type"`
	OrderID     int64      `db:"order_id"`
	Payload     []byte     `db:"payload"`
	Status      string     `db:"status"`
	CreatedAt   time.Time  `db:"created_at"`
	ProcessedAt *time.Time `db:"processed_at"`
}
