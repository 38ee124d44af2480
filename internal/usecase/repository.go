package usecase

import (
	"context"
	"time"

	"github.com/soil2spoon/go-backend/internal/domain"
)

// Tx — открытая транзакция хранилища.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
	IsActive() bool
}

// TxManager открывает транзакцию и кладёт её в контекст,
// откуда репозитории достают её для своих запросов.
type TxManager interface {
	Begin(ctx context.Context) (context.Context, Tx, error)
}

type ProductRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	// GetByIDForUpdate блокирует строку товара до конца транзакции,
	// сериализуя конкурентные пересчёты агрегата.
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Product, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
	ListByIDs(ctx context.Context, ids []int64) ([]domain.Product, error)
	List(ctx context.Context, categoryID string, limit, offset int) ([]domain.Product, int64, error)
	ListFeatured(ctx context.Context) ([]domain.Product, error)
	ListTrending(ctx context.Context) ([]domain.Product, error)
	Upsert(ctx context.Context, product *domain.Product) (*domain.Product, error)
	// UpdateRating записывает производные поля rating/review_count.
	UpdateRating(ctx context.Context, productID int64, rating float64, reviewCount int) error
	Delete(ctx context.Context, id int64) error
}

type CategoryRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) (*domain.Review, error)
	Update(ctx context.Context, review *domain.Review) (*domain.Review, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Review, error)
	GetByIDAndProduct(ctx context.Context, reviewID, productID int64) (*domain.Review, error)
	// ListByProduct возвращает отзывы от новых к старым; при равной дате —
	// в порядке добавления.
	ListByProduct(ctx context.Context, productID int64) ([]domain.Review, error)
	// RatingsByProduct возвращает оценки всех текущих отзывов товара —
	// источник для пересчёта агрегата.
	RatingsByProduct(ctx context.Context, productID int64) ([]int, error)
}

type CartRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]CartLine, error)
	// ListByUserForUpdate блокирует строки корзины пользователя (FOR UPDATE),
	// сериализуя оформление заказа и замену корзины по одному пользователю.
	ListByUserForUpdate(ctx context.Context, userID int64) ([]CartLine, error)
	CreateMany(ctx context.Context, items []domain.CartItem) error
	DeleteByUser(ctx context.Context, userID int64) error
}

type OrderRepository interface {
	// Create сохраняет заказ вместе с позициями.
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Order, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByResetToken(ctx context.Context, resetToken string) (*domain.User, error)
	SetResetToken(ctx context.Context, userID int64, resetToken string, expiry time.Time) error
	ClearResetToken(ctx context.Context, userID int64) error
	// UpdatePassword меняет хэш пароля и сбрасывает reset-токен.
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
}

type AddressRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]domain.Address, error)
	GetByID(ctx context.Context, id int64) (*domain.Address, error)
	Create(ctx context.Context, address *domain.Address) (*domain.Address, error)
	Update(ctx context.Context, address *domain.Address) (*domain.Address, error)
	Delete(ctx context.Context, id int64) error
	ClearDefaultByUser(ctx context.Context, userID int64) error
}

type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
}

type CacheRepository interface {
	GetProduct(ctx context.Context, slug string) (*ProductCard, error)
	SetProduct(ctx context.Context, card *ProductCard) error
	DeleteProducts(ctx context.Context, slugs []string) error
}
