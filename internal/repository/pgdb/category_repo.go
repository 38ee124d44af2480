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
)

// CategoryRepo реализует репозиторий категорий поверх PostgreSQL.
type CategoryRepo struct {
	pool *pgxpool.Pool
	conv converter.CategoryConverter
}

func NewCategoryRepo(pool *pgxpool.Pool, conv converter.CategoryConverter) *CategoryRepo {
	return &CategoryRepo{pool: pool, conv: conv}
}

func (c *CategoryRepo) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	query := `
		SELECT id, name, image, display_order, created_at
		FROM categories
		WHERE id = $1;
	`

	var model converter.CategoryModel
	err := querier(ctx, c.pool).QueryRow(ctx, query, id).
		Scan(&model.ID, &model.Name, &model.Image, &model.DisplayOrder, &model.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrCategoryNotFound)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToEntity(&model), nil
}

func (c *CategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	query := `
		SELECT id, name, image, display_order, created_at
		FROM categories
		ORDER BY display_order, id;
	`

	rows, err := querier(ctx, c.pool).Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	categories := make([]domain.Category, 0)
	for rows.Next() {
		var model converter.CategoryModel
		if err := rows.Scan(&model.ID, &model.Name, &model.Image, &model.DisplayOrder, &model.CreatedAt); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		categories = append(categories, *c.conv.ToEntity(&model))
	}

	return categories, rows.Err()
}
