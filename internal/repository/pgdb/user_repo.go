package pgdb

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
	"github.com/soil2spoon/go-backend/internal/domain"
	"github.com/soil2spoon/go-backend/internal/repository/pgdb/converter"
	"github.com/soil2spoon/go-backend/pkg/e"
)

const userColumns = `
	id, email, password_hash, name, role,
	reset_token, reset_token_expiry, created_at, updated_at
`

// UserRepo реализует репозиторий пользователей поверх PostgreSQL.
type UserRepo struct {
	pool *pgxpool.Pool
	conv converter.UserConverter
}

func NewUserRepo(pool *pgxpool.Pool, conv converter.UserConverter) *UserRepo {
	return &UserRepo{pool: pool, conv: conv}
}

func (u *UserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
		INSERT INTO users (email, password_hash, name, role)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + userColumns + `;
	`

	row := querier(ctx, u.pool).QueryRow(ctx, query,
		user.Email, user.PasswordHash, user.Name, user.Role)

	created, err := u.scanOne(row)
	if err != nil {
		if postgresDuplicate(err) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrEmailTaken)
		}

		return nil, err
	}

	return created, nil
}

func (u *UserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1;`

	return u.scanOne(querier(ctx, u.pool).QueryRow(ctx, query, id))
}

func (u *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1;`

	return u.scanOne(querier(ctx, u.pool).QueryRow(ctx, query, email))
}

func (u *UserRepo) GetByResetToken(ctx context.Context, resetToken string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE reset_token = $1;`

	return u.scanOne(querier(ctx, u.pool).QueryRow(ctx, query, resetToken))
}

func (u *UserRepo) SetResetToken(ctx context.Context, userID int64, resetToken string, expiry time.Time) error {
	query := `
		UPDATE users
		SET reset_token = $2, reset_token_expiry = $3, updated_at = NOW()
		WHERE id = $1;
	`

	return u.exec(ctx, query, userID, resetToken, expiry)
}

func (u *UserRepo) ClearResetToken(ctx context.Context, userID int64) error {
	query := `
		UPDATE users
		SET reset_token = NULL, reset_token_expiry = NULL, updated_at = NOW()
		WHERE id = $1;
	`

	return u.exec(ctx, query, userID)
}

// UpdatePassword меняет хэш пароля и гасит токен сброса.
func (u *UserRepo) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	query := `
		UPDATE users
		SET password_hash = $2, reset_token = NULL, reset_token_expiry = NULL,
		    updated_at = NOW()
		WHERE id = $1;
	`

	return u.exec(ctx, query, userID, passwordHash)
}

func (u *UserRepo) exec(ctx context.Context, query string, args ...any) error {
	tag, err := querier(ctx, u.pool).Exec(ctx, query, args...)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if tag.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrUserNotFound)
	}

	return nil
}

func (u *UserRepo) scanOne(row pgx.Row) (*domain.User, error) {
	var model converter.UserModel
	err := row.Scan(
		&model.ID, &model.Email, &model.PasswordHash, &model.Name, &model.Role,
		&model.ResetToken, &model.ResetTokenExpiry, &model.CreatedAt, &model.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrUserNotFound)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return u.conv.ToEntity(&model), nil
}
