package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Clark-Hu/movie-catalog/internal/domain"
)

// RatingsRepository reads ratings. Ratings are only written as part of a
// movie create, see MoviesRepository.CreateWithRatings.
type RatingsRepository struct {
	db *pgxpool.Pool
}

// ListByMovie returns a movie's ratings in insertion order.
func (r *RatingsRepository) ListByMovie(ctx context.Context, movieID int64) ([]domain.Rating, error) {
	return r.listByMovie(ctx, r.db, movieID)
}

// Count returns the number of stored ratings.
func (r *RatingsRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM ratings`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count ratings: %w", err)
	}
	return n, nil
}

func (r *RatingsRepository) insert(ctx context.Context, q querier, movieID int64, rating domain.Rating) (domain.Rating, error) {
	const query = `
        INSERT INTO ratings (movie_id, source, value)
        VALUES ($1,$2,$3)
        RETURNING id, movie_id, source, value
    `
	var saved domain.Rating
	err := q.QueryRow(ctx, query, movieID, rating.Source, rating.Value).Scan(
		&saved.ID,
		&saved.MovieID,
		&saved.Source,
		&saved.Value,
	)
	if err != nil {
		return domain.Rating{}, fmt.Errorf("insert rating: %w", mapWriteError(err))
	}
	return saved, nil
}

func (r *RatingsRepository) listByMovie(ctx context.Context, q querier, movieID int64) ([]domain.Rating, error) {
	byMovie, err := r.listByMovies(ctx, q, []int64{movieID})
	if err != nil {
		return nil, err
	}
	if ratings := byMovie[movieID]; ratings != nil {
		return ratings, nil
	}
	return []domain.Rating{}, nil
}

func (r *RatingsRepository) listByMovies(ctx context.Context, q querier, movieIDs []int64) (map[int64][]domain.Rating, error) {
	out := make(map[int64][]domain.Rating, len(movieIDs))
	if len(movieIDs) == 0 {
		return out, nil
	}

	const query = `
        SELECT id, movie_id, source, value
        FROM ratings
        WHERE movie_id = ANY($1)
        ORDER BY movie_id, id
    `
	rows, err := q.Query(ctx, query, movieIDs)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rating domain.Rating
		if err := rows.Scan(&rating.ID, &rating.MovieID, &rating.Source, &rating.Value); err != nil {
			return nil, err
		}
		out[rating.MovieID] = append(out[rating.MovieID], rating)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
