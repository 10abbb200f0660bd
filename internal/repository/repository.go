package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Clark-Hu/movie-catalog/internal/store"
)

// ErrNotFound indicates the requested entity does not exist.
var ErrNotFound = errors.New("repository: not found")

// ErrMovieNotFound is returned when a write references a movie id that does
// not exist.
var ErrMovieNotFound = errors.New("repository: referenced movie does not exist")

// ErrValueTooLong is returned when a text value exceeds its column width.
var ErrValueTooLong = errors.New("repository: value too long")

const (
	pgStringDataRightTruncation = "22001"
	pgForeignKeyViolation       = "23503"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository aggregates all domain-specific repositories.
type Repository struct {
	Movies   *MoviesRepository
	Ratings  *RatingsRepository
	Comments *CommentsRepository
}

// New constructs a Repository backed by the provided store.
func New(st *store.Store) *Repository {
	pool := st.Pool()
	ratings := &RatingsRepository{db: pool}
	return &Repository{
		Movies:   &MoviesRepository{store: st, db: pool, ratings: ratings},
		Ratings:  ratings,
		Comments: &CommentsRepository{db: pool},
	}
}

// mapWriteError translates constraint failures into repository sentinels.
func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgStringDataRightTruncation:
		return fmt.Errorf("%w: %s", ErrValueTooLong, pgErr.Message)
	case pgForeignKeyViolation:
		return fmt.Errorf("%w: %s", ErrMovieNotFound, pgErr.Detail)
	default:
		return err
	}
}
