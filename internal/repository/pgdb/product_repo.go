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

const productColumns = `
	id, slug, name, description, price, original_price, image,
	category_id, rating, review_count, featured, trending,
	created_at, updated_at
`

// ProductRepo реализует репозиторий товаров поверх PostgreSQL.
type ProductRepo struct {
	pool *pgxpool.Pool
	conv converter.ProductConverter
}

func NewProductRepo(pool *pgxpool.Pool, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		pool: pool,
		conv: conv,
	}
}

func (p *ProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1;`

	return p.scanOne(querier(ctx, p.pool).QueryRow(ctx, query, id))
}

// GetByIDForUpdate блокирует строку товара до конца текущей транзакции.
func (p *ProductRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE;`

	return p.scanOne(tx.QueryRow(ctx, query, id))
}

func (p *ProductRepo) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE slug = $1;`

	return p.scanOne(querier(ctx, p.pool).QueryRow(ctx, query, slug))
}

func (p *ProductRepo) ListByIDs(ctx context.Context, ids []int64) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ANY($1);`

	rows, err := querier(ctx, p.pool).Query(ctx, query, ids)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	return p.scanMany(rows)
}

// List возвращает страницу каталога и общее число товаров под фильтром.
func (p *ProductRepo) List(ctx context.Context, categoryID string, limit, offset int) ([]domain.Product, int64, error) {
	query := `
		SELECT ` + productColumns + `, COUNT(*) OVER() AS total
		FROM products
		WHERE ($1 = '' OR category_id = $1)
		ORDER BY id
		LIMIT $2 OFFSET $3;
	`

	rows, err := querier(ctx, p.pool).Query(ctx, query, categoryID, limit, offset)
	if err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	var total int64
	for rows.Next() {
		var model converter.ProductModel
		if err := rows.Scan(
			&model.ID, &model.Slug, &model.Name, &model.Description,
			&model.Price, &model.OriginalPrice, &model.Image,
			&model.CategoryID, &model.Rating, &model.ReviewCount,
			&model.Featured, &model.Trending,
			&model.CreatedAt, &model.UpdatedAt, &total,
		); err != nil {
			return nil, 0, e.Wrap(whereami.WhereAmI(), err)
		}

		products = append(products, *p.conv.ToEntity(&model))
	}

	return products, total, nil
}

func (p *ProductRepo) ListFeatured(ctx context.Context) ([]domain.Product, error) {
	return p.listFlagged(ctx, `featured`)
}

func (p *ProductRepo) ListTrending(ctx context.Context) ([]domain.Product, error) {
	return p.listFlagged(ctx, `trending`)
}

func (p *ProductRepo) listFlagged(ctx context.Context, flag string) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE ` + flag + ` ORDER BY id;`

	rows, err := querier(ctx, p.pool).Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	return p.scanMany(rows)
}

// Upsert идемпотентно создаёт или обновляет товар по уникальному slug.
// Производные поля rating/review_count при обновлении не затрагиваются.
func (p *ProductRepo) Upsert(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	model := p.conv.ToModel(product)
	query := `
		INSERT INTO products (
			slug, name, description, price, original_price, image,
			category_id, featured, trending
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (slug)
		DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			price = EXCLUDED.price,
			original_price = EXCLUDED.original_price,
			image = EXCLUDED.image,
			category_id = EXCLUDED.category_id,
			featured = EXCLUDED.featured,
			trending = EXCLUDED.trending,
			updated_at = NOW()
		RETURNING ` + productColumns + `;
	`

	return p.scanOne(tx.QueryRow(ctx, query,
		model.Slug, model.Name, model.Description, model.Price,
		model.OriginalPrice, model.Image, model.CategoryID,
		model.Featured, model.Trending,
	))
}

// UpdateRating записывает пересчитанный агрегат отзывов товара.
func (p *ProductRepo) UpdateRating(ctx context.Context, productID int64, rating float64, reviewCount int) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		UPDATE products
		SET rating = $2, review_count = $3, updated_at = NOW()
		WHERE id = $1;
	`

	tag, err := tx.Exec(ctx, query, productID, rating, reviewCount)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if tag.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
	}

	return nil
}

func (p *ProductRepo) Delete(ctx context.Context, id int64) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM products WHERE id = $1;`, id)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if tag.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
	}

	return nil
}

func (p *ProductRepo) scanOne(row pgx.Row) (*domain.Product, error) {
	var model converter.ProductModel
	err := row.Scan(
		&model.ID, &model.Slug, &model.Name, &model.Description,
		&model.Price, &model.OriginalPrice, &model.Image,
		&model.CategoryID, &model.Rating, &model.ReviewCount,
		&model.Featured, &model.Trending,
		&model.CreatedAt, &model.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), nil
}

func (p *ProductRepo) scanMany(rows pgx.Rows) ([]domain.Product, error) {
	products := make([]domain.Product, 0)
	for rows.Next() {
		var model converter.ProductModel
		if err := rows.Scan(
			&model.ID, &model.Slug, &model.Name, &model.Description,
			&model.Price, &model.OriginalPrice, &model.Image,
			&model.CategoryID, &model.Rating, &model.ReviewCount,
			&model.Featured, &model.Trending,
			&model.CreatedAt, &model.UpdatedAt,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		products = append(products, *p.conv.ToEntity(&model))
	}

	return products, rows.Err()
}
