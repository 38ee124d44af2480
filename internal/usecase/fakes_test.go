package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/soil2spoon/go-backend/internal/domain"
	"github.com/soil2spoon/go-backend/pkg/e"
)

type nopLogger struct{}

func (nopLogger) Debugf(format string, args ...any)            {}
func (nopLogger) Infof(format string, args ...any)             {}
func (nopLogger) Warnf(format string, args ...any)             {}
func (nopLogger) Errorf(err error, format string, args ...any) {}

type fakeTx struct {
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Commit(ctx context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	t.rolledBack = true
	return nil
}

func (t *fakeTx) IsActive() bool {
	return !t.committed && !t.rolledBack
}

type fakeTxManager struct {
	txs []*fakeTx
}

func (m *fakeTxManager) Begin(ctx context.Context) (context.Context, Tx, error) {
	tx := &fakeTx{}
	m.txs = append(m.txs, tx)

	return ctx, tx, nil
}

func (m *fakeTxManager) last() *fakeTx {
	if len(m.txs) == 0 {
		return nil
	}

	return m.txs[len(m.txs)-1]
}

type fakeProductRepo struct {
	products map[int64]*domain.Product
	nextID   int64
}

func newFakeProductRepo(products ...*domain.Product) *fakeProductRepo {
	repo := &fakeProductRepo{products: make(map[int64]*domain.Product)}
	for _, p := range products {
		if p.ID > repo.nextID {
			repo.nextID = p.ID
		}
		repo.products[p.ID] = p
	}

	return repo
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, e.ErrProductNotFound
	}

	copied := *p

	return &copied, nil
}

func (r *fakeProductRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeProductRepo) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	for _, p := range r.products {
		if p.Slug == slug {
			copied := *p
			return &copied, nil
		}
	}

	return nil, e.ErrProductNotFound
}

func (r *fakeProductRepo) ListByIDs(ctx context.Context, ids []int64) ([]domain.Product, error) {
	found := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			found = append(found, *p)
		}
	}

	return found, nil
}

func (r *fakeProductRepo) List(ctx context.Context, categoryID string, limit, offset int) ([]domain.Product, int64, error) {
	matched := make([]domain.Product, 0, len(r.products))
	for id := int64(1); id <= r.nextID; id++ {
		p, ok := r.products[id]
		if !ok {
			continue
		}
		if categoryID != "" && p.CategoryID != categoryID {
			continue
		}
		matched = append(matched, *p)
	}

	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}

	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}

	return matched, total, nil
}

func (r *fakeProductRepo) ListFeatured(ctx context.Context) ([]domain.Product, error) {
	return r.listFlagged(func(p *domain.Product) bool { return p.Featured })
}

func (r *fakeProductRepo) ListTrending(ctx context.Context) ([]domain.Product, error) {
	return r.listFlagged(func(p *domain.Product) bool { return p.Trending })
}

func (r *fakeProductRepo) listFlagged(match func(*domain.Product) bool) ([]domain.Product, error) {
	found := make([]domain.Product, 0)
	for id := int64(1); id <= r.nextID; id++ {
		if p, ok := r.products[id]; ok && match(p) {
			found = append(found, *p)
		}
	}

	return found, nil
}

func (r *fakeProductRepo) Upsert(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	for _, p := range r.products {
		if p.Slug == product.Slug {
			product.ID = p.ID
			product.Rating = p.Rating
			product.ReviewCount = p.ReviewCount
			copied := *product
			r.products[p.ID] = &copied

			return product, nil
		}
	}

	r.nextID++
	product.ID = r.nextID
	copied := *product
	r.products[product.ID] = &copied

	return product, nil
}

func (r *fakeProductRepo) UpdateRating(ctx context.Context, productID int64, rating float64, reviewCount int) error {
	p, ok := r.products[productID]
	if !ok {
		return e.ErrProductNotFound
	}

	p.Rating = rating
	p.ReviewCount = reviewCount

	return nil
}

func (r *fakeProductRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.products[id]; !ok {
		return e.ErrProductNotFound
	}

	delete(r.products, id)

	return nil
}

type fakeCategoryRepo struct {
	categories []domain.Category
}

func (r *fakeCategoryRepo) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	for i := range r.categories {
		if r.categories[i].ID == id {
			return &r.categories[i], nil
		}
	}

	return nil, e.ErrCategoryNotFound
}

func (r *fakeCategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	return r.categories, nil
}

type fakeReviewRepo struct {
	reviews map[int64]*domain.Review
	nextID  int64
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[int64]*domain.Review)}
}

func (r *fakeReviewRepo) Create(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	r.nextID++
	review.ID = r.nextID
	copied := *review
	r.reviews[review.ID] = &copied

	return review, nil
}

func (r *fakeReviewRepo) Update(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	if _, ok := r.reviews[review.ID]; !ok {
		return nil, e.ErrReviewNotFound
	}

	copied := *review
	r.reviews[review.ID] = &copied

	return review, nil
}

func (r *fakeReviewRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.reviews[id]; !ok {
		return e.ErrReviewNotFound
	}

	delete(r.reviews, id)

	return nil
}

func (r *fakeReviewRepo) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	review, ok := r.reviews[id]
	if !ok {
		return nil, e.ErrReviewNotFound
	}

	copied := *review

	return &copied, nil
}

func (r *fakeReviewRepo) GetByIDAndProduct(ctx context.Context, reviewID, productID int64) (*domain.Review, error) {
	review, ok := r.reviews[reviewID]
	if !ok || review.ProductID != productID {
		return nil, e.ErrReviewNotFound
	}

	copied := *review

	return &copied, nil
}

func (r *fakeReviewRepo) ListByProduct(ctx context.Context, productID int64) ([]domain.Review, error) {
	found := make([]domain.Review, 0)
	for id := int64(1); id <= r.nextID; id++ {
		if review, ok := r.reviews[id]; ok && review.ProductID == productID {
			found = append(found, *review)
		}
	}

	return found, nil
}

func (r *fakeReviewRepo) RatingsByProduct(ctx context.Context, productID int64) ([]int, error) {
	ratings := make([]int, 0)
	for id := int64(1); id <= r.nextID; id++ {
		if review, ok := r.reviews[id]; ok && review.ProductID == productID {
			ratings = append(ratings, review.Rating)
		}
	}

	return ratings, nil
}

// fakeCartRepo хранит строки корзины и обогащает их данными товаров
// из связанного fakeProductRepo, как это делает JOIN в настоящем репозитории.
type fakeCartRepo struct {
	items    map[int64][]domain.CartItem
	products *fakeProductRepo
}

func newFakeCartRepo(products *fakeProductRepo) *fakeCartRepo {
	return &fakeCartRepo{
		items:    make(map[int64][]domain.CartItem),
		products: products,
	}
}

func (r *fakeCartRepo) ListByUser(ctx context.Context, userID int64) ([]CartLine, error) {
	lines := make([]CartLine, 0)
	for _, item := range r.items[userID] {
		p, ok := r.products.products[item.ProductID]
		if !ok {
			continue
		}
		lines = append(lines, CartLine{
			ProductID: p.ID,
			Name:      p.Name,
			Slug:      p.Slug,
			Price:     p.Price,
			Image:     p.Image,
			Quantity:  item.Quantity,
		})
	}

	return lines, nil
}

func (r *fakeCartRepo) ListByUserForUpdate(ctx context.Context, userID int64) ([]CartLine, error) {
	return r.ListByUser(ctx, userID)
}

func (r *fakeCartRepo) CreateMany(ctx context.Context, items []domain.CartItem) error {
	for _, item := range items {
		r.items[item.UserID] = append(r.items[item.UserID], item)
	}

	return nil
}

func (r *fakeCartRepo) DeleteByUser(ctx context.Context, userID int64) error {
	delete(r.items, userID)

	return nil
}

type fakeOrderRepo struct {
	orders []domain.Order
	nextID int64
}

func (r *fakeOrderRepo) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	r.nextID++
	order.ID = r.nextID
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
	}
	r.orders = append(r.orders, *order)

	return order, nil
}

func (r *fakeOrderRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	found := make([]domain.Order, 0)
	for i := len(r.orders) - 1; i >= 0; i-- {
		if r.orders[i].UserID == userID {
			found = append(found, r.orders[i])
		}
	}

	return found, nil
}

type fakeUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[int64]*domain.User)}
	for _, u := range users {
		if u.ID > repo.nextID {
			repo.nextID = u.ID
		}
		repo.users[u.ID] = u
	}

	return repo
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return nil, e.ErrEmailTaken
		}
	}

	r.nextID++
	user.ID = r.nextID
	copied := *user
	r.users[user.ID] = &copied

	return user, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, e.ErrUserNotFound
	}

	copied := *user

	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}

	return nil, e.ErrUserNotFound
}

func (r *fakeUserRepo) GetByResetToken(ctx context.Context, resetToken string) (*domain.User, error) {
	for _, user := range r.users {
		if user.ResetToken != nil && *user.ResetToken == resetToken {
			copied := *user
			return &copied, nil
		}
	}

	return nil, e.ErrUserNotFound
}

func (r *fakeUserRepo) SetResetToken(ctx context.Context, userID int64, resetToken string, expiry time.Time) error {
	user, ok := r.users[userID]
	if !ok {
		return e.ErrUserNotFound
	}

	user.ResetToken = &resetToken
	user.ResetTokenExpiry = &expiry

	return nil
}

func (r *fakeUserRepo) ClearResetToken(ctx context.Context, userID int64) error {
	user, ok := r.users[userID]
	if !ok {
		return e.ErrUserNotFound
	}

	user.ResetToken = nil
	user.ResetTokenExpiry = nil

	return nil
}

func (r *fakeUserRepo) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	user, ok := r.users[userID]
	if !ok {
		return e.ErrUserNotFound
	}

	user.PasswordHash = passwordHash
	user.ResetToken = nil
	user.ResetTokenExpiry = nil

	return nil
}

type fakeAddressRepo struct {
	addresses map[int64]*domain.Address
	nextID    int64
}

func newFakeAddressRepo(addresses ...*domain.Address) *fakeAddressRepo {
	repo := &fakeAddressRepo{addresses: make(map[int64]*domain.Address)}
	for _, a := range addresses {
		if a.ID > repo.nextID {
			repo.nextID = a.ID
		}
		repo.addresses[a.ID] = a
	}

	return repo
}

func (r *fakeAddressRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Address, error) {
	found := make([]domain.Address, 0)
	for id := int64(1); id <= r.nextID; id++ {
		if a, ok := r.addresses[id]; ok && a.UserID == userID {
			found = append(found, *a)
		}
	}

	return found, nil
}

func (r *fakeAddressRepo) GetByID(ctx context.Context, id int64) (*domain.Address, error) {
	a, ok := r.addresses[id]
	if !ok {
		return nil, e.ErrAddressNotFound
	}

	copied := *a

	return &copied, nil
}

func (r *fakeAddressRepo) Create(ctx context.Context, address *domain.Address) (*domain.Address, error) {
	r.nextID++
	address.ID = r.nextID
	copied := *address
	r.addresses[address.ID] = &copied

	return address, nil
}

func (r *fakeAddressRepo) Update(ctx context.Context, address *domain.Address) (*domain.Address, error) {
	if _, ok := r.addresses[address.ID]; !ok {
		return nil, e.ErrAddressNotFound
	}

	copied := *address
	r.addresses[address.ID] = &copied

	return address, nil
}

func (r *fakeAddressRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.addresses[id]; !ok {
		return e.ErrAddressNotFound
	}

	delete(r.addresses, id)

	return nil
}

func (r *fakeAddressRepo) ClearDefaultByUser(ctx context.Context, userID int64) error {
	for _, a := range r.addresses {
		if a.UserID == userID {
			a.IsDefault = false
		}
	}

	return nil
}

type fakeOutboxRepo struct {
	events []*OutboxEvent
}

func (r *fakeOutboxRepo) Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error) {
	event.ID = int64(len(r.events) + 1)
	r.events = append(r.events, event)

	return event, nil
}

func (r *fakeOutboxRepo) GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error) {
	return nil, nil
}

func (r *fakeOutboxRepo) MarkAsProcessed(ctx context.Context, id int64) error {
	return nil
}

// fakeCacheRepo защищён мьютексом: инвалидация кэша выполняется
// в фоновой горутине.
type fakeCacheRepo struct {
	mu      sync.Mutex
	cards   map[string]*ProductCard
	deleted []string
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{cards: make(map[string]*ProductCard)}
}

func (r *fakeCacheRepo) GetProduct(ctx context.Context, slug string) (*ProductCard, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	card, ok := r.cards[slug]
	if !ok {
		return nil, nil
	}

	copied := *card

	return &copied, nil
}

func (r *fakeCacheRepo) SetProduct(ctx context.Context, card *ProductCard) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *card
	r.cards[card.Slug] = &copied

	return nil
}

func (r *fakeCacheRepo) DeleteProducts(ctx context.Context, slugs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, slug := range slugs {
		delete(r.cards, slug)
		r.deleted = append(r.deleted, slug)
	}

	return nil
}

type fakeVerifier struct {
	err   error
	calls int
}

func (v *fakeVerifier) Verify(ctx context.Context, req *VerifyAddressReq) error {
	v.calls++

	return v.err
}

type fakeMailer struct {
	enabled bool
	sendErr error
	sentTo  []string
	links   []string
}

func (m *fakeMailer) Enabled() bool {
	return m.enabled
}

func (m *fakeMailer) SendPasswordReset(ctx context.Context, email, resetLink string) error {
	if m.sendErr != nil {
		return m.sendErr
	}

	m.sentTo = append(m.sentTo, email)
	m.links = append(m.links, resetLink)

	return nil
}

type fakeTokenIssuer struct{}

func (fakeTokenIssuer) Issue(userID int64, email string) (string, error) {
	return fmt.Sprintf("token-%d", userID), nil
}
