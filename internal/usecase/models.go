package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/soil2spoon/go-backend/internal/domain"
)

// CATALOG USECASE

// ListProductsReq — запрос каталога с фильтром по категории и пагинацией.
type ListProductsReq struct {
	CategoryID string
	Limit      int
	Offset     int
}

// ListProductsRes — страница каталога.
type ListProductsRes struct {
	Products []ProductCard
	Total    int64
}

// ProductCard — DTO карточки товара для внешнего использования.
type ProductCard struct {
	ID            int64   `json:"id"`
	Slug          string  `json:"slug"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Price         int64   `json:"price"`
	OriginalPrice *int64  `json:"originalPrice,omitempty"`
	Image         string  `json:"image"`
	CategoryID    string  `json:"category"`
	Rating        float64 `json:"rating"`
	ReviewCount   int     `json:"reviewCount"`
	Featured      bool    `json:"featured"`
	Trending      bool    `json:"trending"`
}

// SaveProductReq — запрос на создание либо обновление товара (по slug).
type SaveProductReq struct {
	Slug          string
	Name          string
	Description   string
	Price         int64
	OriginalPrice *int64
	Image         string
	CategoryID    string
	Featured      bool
	Trending      bool
}

type CategoryRes struct {
	ID           string
	Name         string
	Image        string
	DisplayOrder int
}

// REVIEW USECASE

// CreateReviewReq — запрос на добавление отзыва. Rating nil — не передан,
// будет подставлено значение по умолчанию.
type CreateReviewReq struct {
	ProductID int64
	UserID    int64
	Rating    *int
	Text      string
}

// UpdateReviewReq — частичное обновление собственного отзыва.
type UpdateReviewReq struct {
	ProductID int64
	ReviewID  int64
	UserID    int64
	Rating    *int
	Text      *string
}

// ReviewRes — отзыв в выдаче товара.
type ReviewRes struct {
	ID                 int64
	Author             string
	Rating             int
	Date               string
	Text               string
	OwnedByCurrentUser bool
}

// CART USECASE

// CartLine — позиция корзины, обогащённая данными товара.
type CartLine struct {
	ProductID int64
	Name      string
	Slug      string
	Price     int64
	Image     string
	Quantity  int
}

// SetCartReq полностью замещает корзину пользователя.
type SetCartReq struct {
	UserID int64
	Items  []SetCartItem
}

type SetCartItem struct {
	ProductID int64
	Quantity  int
}

// ORDER USECASE

// CheckoutReq — оформление заказа из текущей корзины. PaymentMethod —
// необязательная справочная метка, платежи не обрабатываются.
type CheckoutReq struct {
	UserID        int64
	ShippingName  string
	Phone         string
	AddressLine1  string
	AddressLine2  string
	City          string
	State         string
	Pincode       string
	PaymentMethod string
}

type OrderRes struct {
	ID            int64
	Status        domain.OrderStatus
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
	Items         []OrderItemRes
}

// OrderItemRes — позиция заказа со снимком цены на момент оформления.
type OrderItemRes struct {
	ProductID int64
	Name      string
	Slug      string
	Price     int64
	Quantity  int
}

// ADDRESS USECASE

type SaveAddressReq struct {
	UserID       int64
	AddressID    int64
	Name         string
	Phone        string
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	Pincode      string
	IsDefault    bool
}

type AddressRes struct {
	ID           int64
	Name         string
	Phone        string
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	Pincode      string
	IsDefault    bool
}

// AUTH USECASE

type SignupReq struct {
	Name     string
	Email    string
	Password string
}

type LoginReq struct {
	Email    string
	Password string
}

type AuthRes struct {
	Token string
	User  UserRes
}

type UserRes struct {
	ID    int64
	Name  string
	Email string
	Role  string
}

// INFRASTRUCTURE

// VerifyAddressReq — адрес для проверки во внешнем геокодере.
type VerifyAddressReq struct {
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	Pincode      string
}

type WriteRawMessageReq struct {
	OrderID int64
	Payload []byte
}

// OUTBOX

type OutboxStatus string

const (
	Pending    OutboxStatus = "PENDING"
	Processing OutboxStatus = "PROCESSING"
	Processed  OutboxStatus = "PROCESSED"
)

type OutboxEventType string

const (
	OrderCreated OutboxEventType = "ORDER_CREATED"
)

// OutboxEvent — запись транзакционного outbox: создаётся в той же
// транзакции, что и заказ, и публикуется воркером после коммита.
type OutboxEvent struct {
	ID          int64
	EventID     uuid.UUID
	EventType   OutboxEventType
	OrderID     int64
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// OrderCreatedEvent — полезная нагрузка события о новом заказе.
type OrderCreatedEvent struct {
	OrderID   int64     `json:"orderId"`
	UserID    int64     `json:"userId"`
	Total     int64     `json:"total"`
	ItemCount int       `json:"itemCount"`
	CreatedAt time.Time `json:"createdAt"`
}

// MAPPERS

func NewProductCard(p *domain.Product) *ProductCard {
	return &ProductCard{
		ID:            p.ID,
		Slug:          p.Slug,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Image:         p.Image,
		CategoryID:    p.CategoryID,
		Rating:        p.Rating,
		ReviewCount:   p.ReviewCount,
		Featured:      p.Featured,
		Trending:      p.Trending,
	}
}

func NewProductCards(products []domain.Product) []ProductCard {
	cards := make([]ProductCard, 0, len(products))
	for i := range products {
		cards = append(cards, *NewProductCard(&products[i]))
	}

	return cards
}

func NewCategoryRes(c *domain.Category) CategoryRes {
	return CategoryRes{
		ID:           c.ID,
		Name:         c.Name,
		Image:        c.Image,
		DisplayOrder: c.DisplayOrder,
	}
}

func NewReviewRes(r *domain.Review, viewerID *int64) ReviewRes {
	owned := viewerID != nil && r.UserID != nil && *viewerID == *r.UserID

	return ReviewRes{
		ID:                 r.ID,
		Author:             r.Author,
		Rating:             r.Rating,
		Date:               r.ReviewDate.Format("2006-01-02"),
		Text:               r.Text,
		OwnedByCurrentUser: owned,
	}
}

func NewOrderRes(o *domain.Order) OrderRes {
	items := make([]OrderItemRes, 0, len(o.Items))
	for i := range o.Items {
		items = append(items, NewOrderItemRes(&o.Items[i]))
	}

	return OrderRes{
		ID:            o.ID,
		Status:        o.Status,
		Total:         o.Total,
		ShippingName:  o.ShippingName,
		Phone:         o.Phone,
		AddressLine1:  o.AddressLine1,
		AddressLine2:  o.AddressLine2,
		City:          o.City,
		State:         o.State,
		Pincode:       o.Pincode,
		PaymentMethod: o.PaymentMethod,
		CreatedAt:     o.CreatedAt,
		Items:         items,
	}
}

func NewOrderItemRes(item *domain.OrderItem) OrderItemRes {
	return OrderItemRes{
		ProductID: item.ProductID,
		Name:      item.ProductName,
		Slug:      item.ProductSlug,
		Price:     item.PriceAtOrder,
		Quantity:  item.Quantity,
	}
}

func NewAddressRes(a *domain.Address) AddressRes {
	return AddressRes{
		ID:           a.ID,
		Name:         a.Name,
		Phone:        a.Phone,
		AddressLine1: a.AddressLine1,
		AddressLine2: a.AddressLine2,
		City:         a.City,
		State:        a.State,
		Pincode:      a.Pincode,
		IsDefault:    a.IsDefault,
	}
}

func NewUserRes(u *domain.User) UserRes {
	return UserRes{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}

func NewVerifyAddressReq(req *CheckoutReq) *VerifyAddressReq {
	return &VerifyAddressReq{
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		State:        req.State,
		Pincode:      req.Pincode,
	}
}

func NewWriteRawMessageReq(orderID int64, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		OrderID: orderID,
		Payload: payload,
	}
}

func NewOutboxEvent(eventType OutboxEventType, orderID int64, payload []byte) *OutboxEvent {
	return &OutboxEvent{
		EventID:   uuid.New(),
		EventType: eventType,
		OrderID:   orderID,
		Payload:   payload,
		Status:    Pending,
		CreatedAt: time.Now(),
	}
}
