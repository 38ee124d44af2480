package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/soil2spoon/go-backend/internal/domain"
	"github.com/soil2spoon/go-backend/pkg/e"
	"github.com/soil2spoon/go-backend/pkg/logger"
)

const (
	minRating = 1
	maxRating = 5

	// Оценка по умолчанию, если в запросе она не передана.
	defaultRating = 5

	maxReviewTextLen = 1000
)

// ReviewUseCase реализует жизненный цикл отзывов с поддержанием
// агрегированного рейтинга товара.
type ReviewUseCase struct {
	reviewRepo  ReviewRepository
	productRepo ProductRepository
	userRepo    UserRepository
	txm         TxManager
	cacheRepo   CacheRepository
	logger      logger.Logger
}

func NewReviewUC(
	reviewRepo ReviewRepository,
	productRepo ProductRepository,
	userRepo UserRepository,
	txm TxManager,
	cacheRepo CacheRepository,
	logger logger.Logger,
) *ReviewUseCase {
	return &ReviewUseCase{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		txm:         txm,
		cacheRepo:   cacheRepo,
		logger:      logger,
	}
}

// Create добавляет отзыв к товару и пересчитывает агрегированный рейтинг
// в той же транзакции.
func (r *ReviewUseCase) Create(ctx context.Context, req *CreateReviewReq) (*ReviewRes, error) {
	const op = "ReviewUseCase.Create"

	rating := defaultRating
	if req.Rating != nil {
		rating = *req.Rating
	}

	var err error
	err = validateReview(rating, req.Text)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	ctx, tx, err := r.txm.Begin(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()

	// Блокировка строки товара сериализует конкурентные изменения
	// отзывов одного товара.
	product, err := r.productRepo.GetByIDForUpdate(ctx, req.ProductID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	review := &domain.Review{
		ProductID:  req.ProductID,
		UserID:     &req.UserID,
		Author:     r.authorSnapshot(ctx, req.UserID),
		Rating:     rating,
		Text:       strings.TrimSpace(req.Text),
		ReviewDate: time.Now(),
	}

	created, err := r.reviewRepo.Create(ctx, review)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	err = r.refreshAggregate(ctx, req.ProductID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	err = tx.Commit(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	r.invalidateProduct(product.Slug)

	res := NewReviewRes(created, &req.UserID)

	return &res, nil
}

// Update меняет текст и/или оценку собственного отзыва. При изменении
// оценки агрегат товара пересчитывается в той же транзакции.
func (r *ReviewUseCase) Update(ctx context.Context, req *UpdateReviewReq) (*ReviewRes, error) {
	const op = "ReviewUseCase.Update"

	var err error
	ctx, tx, err := r.txm.Begin(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()

	product, err := r.productRepo.GetByIDForUpdate(ctx, req.ProductID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	review, err := r.reviewRepo.GetByIDAndProduct(ctx, req.ReviewID, req.ProductID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if review.UserID == nil || *review.UserID != req.UserID {
		err = e.ErrReviewNotOwned
		return nil, e.Wrap(op, err)
	}

	ratingChanged := false
	if req.Rating != nil && *req.Rating != review.Rating {
		review.Rating = *req.Rating
		ratingChanged = true
	}
	if req.Text != nil {
		review.Text = strings.TrimSpace(*req.Text)
	}

	err = validateReview(review.Rating, review.Text)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	updated, err := r.reviewRepo.Update(ctx, review)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if ratingChanged {
		err = r.refreshAggregate(ctx, req.ProductID)
		if err != nil {
			return nil, e.Wrap(op, err)
		}
	}

	err = tx.Commit(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if ratingChanged {
		r.invalidateProduct(product.Slug)
	}

	res := NewReviewRes(updated, &req.UserID)

	return &res, nil
}

// Delete удаляет собственный отзыв и пересчитывает агрегат товара.
func (r *ReviewUseCase) Delete(ctx context.Context, productID, reviewID, userID int64) error {
	const op = "ReviewUseCase.Delete"

	if err := r.delete(ctx, productID, reviewID, &userID); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// DeleteAsAdmin удаляет любой отзыв без проверки владельца.
// Доступ ограничивается на уровне маршрутов.
func (r *ReviewUseCase) DeleteAsAdmin(ctx context.Context, productID, reviewID int64) error {
	const op = "ReviewUseCase.DeleteAsAdmin"

	if err := r.delete(ctx, productID, reviewID, nil); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// delete удаляет отзыв и пересчитывает агрегат товара одной транзакцией.
// Непустой owner дополнительно требует, чтобы отзыв принадлежал ему.
func (r *ReviewUseCase) delete(ctx context.Context, productID, reviewID int64, owner *int64) error {
	var err error
	ctx, tx, err := r.txm.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()

	product, err := r.productRepo.GetByIDForUpdate(ctx, productID)
	if err != nil {
		return err
	}

	review, err := r.reviewRepo.GetByIDAndProduct(ctx, reviewID, productID)
	if err != nil {
		return err
	}

	if owner != nil && (review.UserID == nil || *review.UserID != *owner) {
		err = e.ErrReviewNotOwned
		return err
	}

	err = r.reviewRepo.Delete(ctx, reviewID)
	if err != nil {
		return err
	}

	err = r.refreshAggregate(ctx, productID)
	if err != nil {
		return err
	}

	err = tx.Commit(ctx)
	if err != nil {
		return err
	}

	r.invalidateProduct(product.Slug)

	return nil
}

// ListByProduct возвращает отзывы товара от новых к старым. viewerID
// используется только для пометки собственных отзывов читателя.
func (r *ReviewUseCase) ListByProduct(ctx context.Context, productID int64, viewerID *int64) ([]ReviewRes, error) {
	const op = "ReviewUseCase.ListByProduct"

	if _, err := r.productRepo.GetByID(ctx, productID); err != nil {
		return nil, e.Wrap(op, err)
	}

	reviews, err := r.reviewRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	res := make([]ReviewRes, 0, len(reviews))
	for i := range reviews {
		res = append(res, NewReviewRes(&reviews[i], viewerID))
	}

	return res, nil
}

// refreshAggregate пересчитывает rating/review_count товара по полному
// множеству его отзывов.
func (r *ReviewUseCase) refreshAggregate(ctx context.Context, productID int64) error {
	ratings, err := r.reviewRepo.RatingsByProduct(ctx, productID)
	if err != nil {
		return err
	}

	rating, count := AggregateRating(ratings)

	return r.productRepo.UpdateRating(ctx, productID, rating, count)
}

// authorSnapshot формирует отображаемое имя автора на момент создания
// отзыва: имя пользователя, иначе email, иначе "Customer".
func (r *ReviewUseCase) authorSnapshot(ctx context.Context, userID int64) string {
	user, err := r.userRepo.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, e.ErrUserNotFound) {
			r.logger.Warnf("Failed to load review author: %v", err)
		}

		return "Customer"
	}

	if name := strings.TrimSpace(user.Name); name != "" {
		return name
	}
	if user.Email != "" {
		return user.Email
	}

	return "Customer"
}

// invalidateProduct фоново удаляет карточку товара из кэша.
func (r *ReviewUseCase) invalidateProduct(slug string) {
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()

		if err := r.cacheRepo.DeleteProducts(bgCtx, []string{slug}); err != nil {
			r.logger.Warnf("Failed to delete product from cache: %v", err)
		}
	}()
}

func validateReview(rating int, text string) error {
	if rating < minRating || rating > maxRating {
		return e.ErrRatingOutOfRange
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return e.ErrReviewTextRequired
	}

	if len(text) > maxReviewTextLen {
		return e.ErrReviewTextTooLong
	}

	return nil
}
