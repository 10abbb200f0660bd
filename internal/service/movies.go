package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Clark-Hu/movie-catalog/internal/domain"
	"github.com/Clark-Hu/movie-catalog/internal/omdb"
	"github.com/Clark-Hu/movie-catalog/internal/repository"
)

// OrderDescending is the only recognised value of the list order option.
const OrderDescending = "descending"

// MovieStore is the slice of the entity store the movie service needs.
type MovieStore interface {
	List(ctx context.Context, order repository.Order) ([]domain.Movie, error)
	FindByTitle(ctx context.Context, title string) (domain.Movie, error)
	CreateWithRatings(ctx context.Context, movie domain.Movie) (domain.Movie, bool, error)
}

// MovieService resolves titles against the local catalog, falling back to the
// metadata provider and caching what it returns.
type MovieService struct {
	movies   MovieStore
	provider omdb.Client
	logger   zerolog.Logger
}

// NewMovieService wires the service.
func NewMovieService(movies MovieStore, provider omdb.Client, logger zerolog.Logger) *MovieService {
	return &MovieService{
		movies:   movies,
		provider: provider,
		logger:   logger.With().Str("component", "movie_service").Logger(),
	}
}

// List returns all movies. An empty order means ascending id; "descending"
// reverses it; anything else is rejected.
func (s *MovieService) List(ctx context.Context, order string) ([]domain.Movie, error) {
	sort := repository.OrderAscending
	switch order {
	case "":
	case OrderDescending:
		sort = repository.OrderDescending
	default:
		return nil, validation(MsgInvalidOrder)
	}

	movies, err := s.movies.List(ctx, sort)
	if err != nil {
		return nil, internal(MsgStoreFailure, err)
	}
	return movies, nil
}

// FindOrFetch returns the stored movie for title, creating it from the
// provider on first sight. The provider's canonical Title is the dedup key.
//
// Two concurrent calls for an unseen title can both insert. The title is
// re-checked inside the insert transaction, which narrows that window only.
func (s *MovieService) FindOrFetch(ctx context.Context, title string) (domain.Movie, bool, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.Movie{}, false, validation(MsgTitleRequired)
	}

	result, err := s.provider.Fetch(ctx, title)
	switch {
	case errors.Is(err, omdb.ErrNotFound):
		return domain.Movie{}, false, noContent(MsgNoMovieWithTitle, err)
	case errors.Is(err, omdb.ErrUnavailable):
		return domain.Movie{}, false, internal(MsgProviderUnavailable, err)
	case err != nil:
		return domain.Movie{}, false, internal(MsgProviderPayload, err)
	case result == nil:
		return domain.Movie{}, false, noContent(MsgNoMovieWithTitle, nil)
	}

	candidate := result.Movie
	existing, err := s.movies.FindByTitle(ctx, candidate.Title)
	switch {
	case err == nil:
		s.logger.Debug().Str("title", candidate.Title).Int64("movie_id", existing.ID).Msg("cache hit")
		return existing, false, nil
	case !errors.Is(err, repository.ErrNotFound):
		return domain.Movie{}, false, internal(MsgStoreFailure, err)
	}

	if err := validateMovie(candidate); err != nil {
		return domain.Movie{}, false, internal(MsgProviderPayload, err)
	}

	stored, created, err := s.movies.CreateWithRatings(ctx, candidate)
	if err != nil {
		return domain.Movie{}, false, internal(MsgProviderPayload, err)
	}
	if created {
		s.logger.Info().Str("title", stored.Title).Int64("movie_id", stored.ID).Int("ratings", len(stored.Ratings)).Msg("movie cached")
	}
	return stored, created, nil
}
