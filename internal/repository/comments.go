package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Clark-Hu/movie-catalog/internal/domain"
)

// CommentsRepository provides persistence helpers for movie comments.
type CommentsRepository struct {
	db *pgxpool.Pool
}

// Create stores a comment. Unknown movies yield ErrMovieNotFound and bodies
// wider than the column yield ErrValueTooLong; nothing is truncated.
func (r *CommentsRepository) Create(ctx context.Context, movieID int64, body string) (domain.Comment, error) {
	const query = `
        INSERT INTO comments (movie_id, comment_body)
        VALUES ($1,$2)
        RETURNING id, movie_id, comment_body
    `
	var c domain.Comment
	err := r.db.QueryRow(ctx, query, movieID, body).Scan(&c.ID, &c.MovieID, &c.Body)
	if err != nil {
		return domain.Comment{}, fmt.Errorf("insert comment: %w", mapWriteError(err))
	}
	return c, nil
}

// List returns comments ordered by id, restricted to one movie when movieID
// is non-nil.
func (r *CommentsRepository) List(ctx context.Context, movieID *int64) ([]domain.Comment, error) {
	query := `SELECT id, movie_id, comment_body FROM comments`
	args := make([]any, 0, 1)
	if movieID != nil {
		query += ` WHERE movie_id = $1`
		args = append(args, *movieID)
	}
	query += ` ORDER BY id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	comments := make([]domain.Comment, 0)
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ID, &c.MovieID, &c.Body); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return comments, nil
}

// Count returns the number of stored comments.
func (r *CommentsRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM comments`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count comments: %w", err)
	}
	return n, nil
}
