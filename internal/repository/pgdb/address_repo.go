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

const addressColumns = `
	id, user_id, name, phone, address_line1, address_line2,
	city, state, pincode, is_default, created_at
`

// AddressRepo реализует репозиторий адресов доставки поверх PostgreSQL.
type AddressRepo struct {
	pool *pgxpool.Pool
	conv converter.AddressConverter
}

func NewAddressRepo(pool *pgxpool.Pool, conv converter.AddressConverter) *AddressRepo {
	return &AddressRepo{pool: pool, conv: conv}
}

// ListByUser возвращает адреса пользователя, адрес по умолчанию первым.
func (a *AddressRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Address, error) {
	query := `
		SELECT ` + addressColumns + `
		FROM addresses
		WHERE user_id = $1
		ORDER BY is_default DESC, id;
	`

	rows, err := querier(ctx, a.pool).Query(ctx, query, userID)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	addresses := make([]domain.Address, 0)
	for rows.Next() {
		var model converter.AddressModel
		if err := a.scanModel(rows, &model); err != nil {
			return nil, err
		}

		addresses = append(addresses, *a.conv.ToEntity(&model))
	}

	return addresses, rows.Err()
}

func (a *AddressRepo) GetByID(ctx context.Context, id int64) (*domain.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM addresses WHERE id = $1;`

	return a.scanOne(querier(ctx, a.pool).QueryRow(ctx, query, id))
}

func (a *AddressRepo) Create(ctx context.Context, address *domain.Address) (*domain.Address, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	model := a.conv.ToModel(address)
	query := `
		INSERT INTO addresses (
			user_id, name, phone, address_line1, address_line2,
			city, state, pincode, is_default
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + addressColumns + `;
	`

	return a.scanOne(tx.QueryRow(ctx, query,
		model.UserID, model.Name, model.Phone,
		model.AddressLine1, model.AddressLine2,
		model.City, model.State, model.Pincode, model.IsDefault,
	))
}

func (a *AddressRepo) Update(ctx context.Context, address *domain.Address) (*domain.Address, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	model := a.conv.ToModel(address)
	query := `
		UPDATE addresses
		SET name = $2, phone = $3, address_line1 = $4, address_line2 = $5,
		    city = $6, state = $7, pincode = $8, is_default = $9
		WHERE id = $1
		RETURNING ` + addressColumns + `;
	`

	return a.scanOne(tx.QueryRow(ctx, query,
		model.ID, model.Name, model.Phone,
		model.AddressLine1, model.AddressLine2,
		model.City, model.State, model.Pincode, model.IsDefault,
	))
}

func (a *AddressRepo) Delete(ctx context.Context, id int64) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM addresses WHERE id = $1;`, id)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if tag.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrAddressNotFound)
	}

	return nil
}

// ClearDefaultByUser снимает признак адреса по умолчанию со всех адресов
// пользователя.
func (a *AddressRepo) ClearDefaultByUser(ctx context.Context, userID int64) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	query := `UPDATE addresses SET is_default = FALSE WHERE user_id = $1 AND is_default;`
	if _, err := tx.Exec(ctx, query, userID); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (a *AddressRepo) scanOne(row pgx.Row) (*domain.Address, error) {
	var model converter.AddressModel
	err := row.Scan(
		&model.ID, &model.UserID, &model.Name, &model.Phone,
		&model.AddressLine1, &model.AddressLine2,
		&model.City, &model.State, &model.Pincode,
		&model.IsDefault, &model.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrAddressNotFound)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return a.conv.ToEntity(&model), nil
}

func (a *AddressRepo) scanModel(rows pgx.Rows, model *converter.AddressModel) error {
	if err := rows.Scan(
		&model.ID, &model.UserID, &model.Name, &model.Phone,
		&model.AddressLine1, &model.AddressLine2,
		&model.City, &model.State, &model.Pincode,
		&model.IsDefault, &model.CreatedAt,
	); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}
