package pgdb

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/soil2spoon/go-backend/pkg/tr"
)

// db — общая поверхность pgx.Tx и pgxpool.Pool для запросов.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// querier возвращает транзакцию из контекста, если она открыта,
// иначе пул. Так чтение внутри транзакции видит её незакоммиченные
// изменения.
func querier(ctx context.Context, pool *pgxpool.Pool) db {
	if tx, err := tr.TxFromCtx(ctx); err == nil {
		return tx
	}

	return pool
}

// postgresDuplicate распознаёт нарушение уникального ограничения.
func postgresDuplicate(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
