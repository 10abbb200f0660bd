package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Clark-Hu/movie-catalog/internal/domain"
	"github.com/Clark-Hu/movie-catalog/internal/store"
)

// Order selects the id ordering of movie listings.
type Order int

const (
	OrderAscending Order = iota
	OrderDescending
)

// MoviesRepository provides persistence helpers for movie entities.
type MoviesRepository struct {
	store   *store.Store
	db      *pgxpool.Pool
	ratings *RatingsRepository
}

const movieColumns = `
    id,
    title,
    year,
    rated,
    released,
    runtime,
    genre,
    director,
    writer,
    actors,
    plot,
    language,
    country,
    awards,
    poster,
    metascore,
    imdb_rating,
    imdb_votes,
    imdb_id,
    type,
    dvd,
    box_office,
    production,
    website
`

// CreateWithRatings stores a movie and its ratings in one transaction. The
// title is re-checked inside the transaction; when a movie with the same
// title already exists it is returned with created=false and nothing is
// written.
func (r *MoviesRepository) CreateWithRatings(ctx context.Context, movie domain.Movie) (domain.Movie, bool, error) {
	var (
		stored  domain.Movie
		created bool
	)
	err := r.store.WithTx(ctx, func(tx pgx.Tx) error {
		existing, err := findByTitle(ctx, tx, movie.Title)
		switch {
		case err == nil:
			existing.Ratings, err = r.ratings.listByMovie(ctx, tx, existing.ID)
			if err != nil {
				return err
			}
			stored = existing
			return nil
		case !errors.Is(err, ErrNotFound):
			return err
		}

		stored, err = insertMovie(ctx, tx, movie)
		if err != nil {
			return err
		}
		stored.Ratings = make([]domain.Rating, 0, len(movie.Ratings))
		for _, rating := range movie.Ratings {
			saved, err := r.ratings.insert(ctx, tx, stored.ID, rating)
			if err != nil {
				return err
			}
			stored.Ratings = append(stored.Ratings, saved)
		}
		created = true
		return nil
	})
	if err != nil {
		return domain.Movie{}, false, err
	}
	return stored, created, nil
}

// GetByID fetches a movie with its ratings.
func (r *MoviesRepository) GetByID(ctx context.Context, id int64) (domain.Movie, error) {
	query := fmt.Sprintf(`SELECT %s FROM movies WHERE id = $1`, movieColumns)
	movie, err := scanMovie(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Movie{}, ErrNotFound
		}
		return domain.Movie{}, err
	}
	movie.Ratings, err = r.ratings.listByMovie(ctx, r.db, movie.ID)
	if err != nil {
		return domain.Movie{}, err
	}
	return movie, nil
}

// FindByTitle returns the movie whose title matches exactly, with ratings.
// If racing writers produced duplicates the oldest row wins.
func (r *MoviesRepository) FindByTitle(ctx context.Context, title string) (domain.Movie, error) {
	movie, err := findByTitle(ctx, r.db, title)
	if err != nil {
		return domain.Movie{}, err
	}
	movie.Ratings, err = r.ratings.listByMovie(ctx, r.db, movie.ID)
	if err != nil {
		return domain.Movie{}, err
	}
	return movie, nil
}

// Exists reports whether a movie with the given id is stored.
func (r *MoviesRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM movies WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("movie exists: %w", err)
	}
	return exists, nil
}

// List returns every movie with ratings, ordered by id.
func (r *MoviesRepository) List(ctx context.Context, order Order) ([]domain.Movie, error) {
	direction := "ASC"
	if order == OrderDescending {
		direction = "DESC"
	}
	query := fmt.Sprintf(`SELECT %s FROM movies ORDER BY id %s`, movieColumns, direction)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies := make([]domain.Movie, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, movie)
		ids = append(ids, movie.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	byMovie, err := r.ratings.listByMovies(ctx, r.db, ids)
	if err != nil {
		return nil, err
	}
	for i := range movies {
		movies[i].Ratings = byMovie[movies[i].ID]
		if movies[i].Ratings == nil {
			movies[i].Ratings = []domain.Rating{}
		}
	}
	return movies, nil
}

// Count returns the number of stored movies.
func (r *MoviesRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM movies`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count movies: %w", err)
	}
	return n, nil
}

// Delete removes a movie; its ratings and comments go with it.
func (r *MoviesRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete movie: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func findByTitle(ctx context.Context, q querier, title string) (domain.Movie, error) {
	query := fmt.Sprintf(`SELECT %s FROM movies WHERE title = $1 ORDER BY id LIMIT 1`, movieColumns)
	movie, err := scanMovie(q.QueryRow(ctx, query, title))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Movie{}, ErrNotFound
		}
		return domain.Movie{}, err
	}
	return movie, nil
}

func insertMovie(ctx context.Context, q querier, m domain.Movie) (domain.Movie, error) {
	query := fmt.Sprintf(`
        INSERT INTO movies (title, year, rated, released, runtime, genre, director, writer, actors, plot,
                            language, country, awards, poster, metascore, imdb_rating, imdb_votes, imdb_id,
                            type, dvd, box_office, production, website)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23)
        RETURNING %s
    `, movieColumns)

	row := q.QueryRow(ctx, query,
		m.Title, m.Year, m.Rated, m.Released, m.Runtime, m.Genre, m.Director, m.Writer, m.Actors, m.Plot,
		m.Language, m.Country, m.Awards, m.Poster, m.Metascore, m.IMDBRating, m.IMDBVotes, m.IMDBID,
		m.Type, m.DVD, m.BoxOffice, m.Production, m.Website,
	)
	movie, err := scanMovie(row)
	if err != nil {
		return domain.Movie{}, fmt.Errorf("insert movie: %w", mapWriteError(err))
	}
	return movie, nil
}

func scanMovie(row pgx.Row) (domain.Movie, error) {
	var m domain.Movie
	err := row.Scan(
		&m.ID,
		&m.Title,
		&m.Year,
		&m.Rated,
		&m.Released,
		&m.Runtime,
		&m.Genre,
		&m.Director,
		&m.Writer,
		&m.Actors,
		&m.Plot,
		&m.Language,
		&m.Country,
		&m.Awards,
		&m.Poster,
		&m.Metascore,
		&m.IMDBRating,
		&m.IMDBVotes,
		&m.IMDBID,
		&m.Type,
		&m.DVD,
		&m.BoxOffice,
		&m.Production,
		&m.Website,
	)
	if err != nil {
		return domain.Movie{}, err
	}
	return m, nil
}
