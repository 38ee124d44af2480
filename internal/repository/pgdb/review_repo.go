package pgdb

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
	"github.com/soil2spoon/go-backend/internal/domain"
	"github.com/soil2spoon/go-backend/internal/repository/pgdb/converter"
	"github.com/soil2spoon/go-backend/pkg/e"
	"github.com/soil2spoon/go-backend/pkg/tr"
)

const reviewColumns = `
	id, product_id, user_id, author, rating, review_text, review_date, created_at
`

// ReviewRepo реализует репозиторий отзывов поверх PostgreSQL.
type ReviewRepo struct {
	pool *pgxpool.Pool
	conv converter.ReviewConverter
}

func NewReviewRepo(pool *pgxpool.Pool, conv converter.ReviewConverter) *ReviewRepo {
	return &ReviewRepo{pool: pool, conv: conv}
}

func (r *ReviewRepo) Create(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	model := r.conv.ToModel(review)
	query := `
		INSERT INTO reviews (product_id, user_id, author, rating, review_text, review_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + reviewColumns + `;
	`

	return r.scanOne(tx.QueryRow(ctx, query,
		model.ProductID, model.UserID, model.Author,
		model.Rating, model.Text, model.ReviewDate,
	))
}

func (r *ReviewRepo) Update(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		UPDATE reviews
		SET rating = $2, review_text = $3
		WHERE id = $1
		RETURNING ` + reviewColumns + `;
	`

	return r.scanOne(tx.QueryRow(ctx, query, review.ID, review.Rating, review.Text))
}

func (r *ReviewRepo) Delete(ctx context.Context, id int64) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM reviews WHERE id = $1;`, id)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if tag.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrReviewNotFound)
	}

	return nil
}

func (r *ReviewRepo) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1;`

	return r.scanOne(querier(ctx, r.pool).QueryRow(ctx, query, id))
}

func (r *ReviewRepo) GetByIDAndProduct(ctx context.Context, reviewID, productID int64) (*domain.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1 AND product_id = $2;`

	return r.scanOne(querier(ctx, r.pool).QueryRow(ctx, query, reviewID, productID))
}

// ListByProduct возвращает отзывы от новых к старым; при одинаковой дате —
// в порядке добавления.
func (r *ReviewRepo) ListByProduct(ctx context.Context, productID int64) ([]domain.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews
		WHERE product_id = $1
		ORDER BY review_date DESC, id ASC;
	`

	rows, err := querier(ctx, r.pool).Query(ctx, query, productID)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	reviews := make([]domain.Review, 0)
	for rows.Next() {
		var model converter.ReviewModel
		if err := rows.Scan(
			&model.ID, &model.ProductID, &model.UserID, &model.Author,
			&model.Rating, &model.Text, &model.ReviewDate, &model.CreatedAt,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		reviews = append(reviews, *r.conv.ToEntity(&model))
	}

	return reviews, rows.Err()
}

// RatingsByProduct отдаёт оценки всех текущих отзывов товара.
func (r *ReviewRepo) RatingsByProduct(ctx context.Context, productID int64) ([]int, error) {
	rows, err := querier(ctx, r.pool).Query(ctx,
		`SELECT rating FROM reviews WHERE product_id = $1;`, productID)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	ratings := make([]int, 0)
	for rows.Next() {
		var rating int
		if err := rows.Scan(&rating); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		ratings = append(ratings, rating)
	}

	return ratings, rows.Err()
}

func (r *ReviewRepo) scanOne(row pgx.Row) (*domain.Review, error) {
	var model converter.ReviewModel
	err := row.Scan(
		&model.ID, &model.ProductID, &model.UserID, &model.Author,
		&model.Rating, &model.Text, &model.ReviewDate, &model.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrReviewNotFound)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return r.conv.ToEntity(&model), nil
}
