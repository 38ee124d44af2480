package pgdb

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
	"github.com/soil2spoon/go-backend/internal/domain"
	"github.com/soil2spoon/go-backend/internal/usecase"
	"github.com/soil2spoon/go-backend/pkg/e"
	"github.com/soil2spoon/go-backend/pkg/tr"
)

// CartRepo реализует репозиторий корзин поверх PostgreSQL.
type CartRepo struct {
	pool *pgxpool.Pool
}

func NewCartRepo(pool *pgxpool.Pool) *CartRepo {
	return &CartRepo{pool: pool}
}

func (c *CartRepo) ListByUser(ctx context.Context, userID int64) ([]usecase.CartLine, error) {
	return c.list(ctx, userID, false)
}

// ListByUserForUpdate дополнительно блокирует строки корзины пользователя
// до конца транзакции.
func (c *CartRepo) ListByUserForUpdate(ctx context.Context, userID int64) ([]usecase.CartLine, error) {
	if _, err := tr.TxFromCtx(ctx); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.list(ctx, userID, true)
}

func (c *CartRepo) list(ctx context.Context, userID int64, forUpdate bool) ([]usecase.CartLine, error) {
	query := `
		SELECT ci.product_id, pr.name, pr.slug, pr.price, pr.image, ci.quantity
		FROM cart_items ci
		JOIN products pr ON pr.id = ci.product_id
		WHERE ci.user_id = $1
		ORDER BY ci.id
	`
	if forUpdate {
		query += ` FOR UPDATE OF ci`
	}
	query += `;`

	rows, err := querier(ctx, c.pool).Query(ctx, query, userID)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	lines := make([]usecase.CartLine, 0)
	for rows.Next() {
		var line usecase.CartLine
		if err := rows.Scan(
			&line.ProductID, &line.Name, &line.Slug,
			&line.Price, &line.Image, &line.Quantity,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		lines = append(lines, line)
	}

	return lines, rows.Err()
}

func (c *CartRepo) CreateMany(ctx context.Context, items []domain.CartItem) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO cart_items (user_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = EXCLUDED.quantity;
	`

	for _, item := range items {
		if _, err := tx.Exec(ctx, query, item.UserID, item.ProductID, item.Quantity); err != nil {
			return e.Wrap(whereami.WhereAmI(), err)
		}
	}

	return nil
}

func (c *CartRepo) DeleteByUser(ctx context.Context, userID int64) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1;`, userID); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}
