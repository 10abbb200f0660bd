package service

import (
	"context"
	"errors"
	"sync"

	"github.com/Clark-Hu/movie-catalog/internal/domain"
	"github.com/Clark-Hu/movie-catalog/internal/omdb"
	"github.com/Clark-Hu/movie-catalog/internal/repository"
)

type fakeProvider struct {
	mu      sync.Mutex
	calls   int
	results map[string]*omdb.Result
	err     error
}

func (f *fakeProvider) Fetch(_ context.Context, title string) (*omdb.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	res, ok := f.results[title]
	if !ok {
		return nil, omdb.ErrNotFound
	}
	copied := *res
	return &copied, nil
}

type memoryMovies struct {
	mu      sync.Mutex
	nextID  int64
	movies  []domain.Movie
	writes  int
	listErr error
	findErr error
	saveErr error
}

func (m *memoryMovies) List(_ context.Context, order repository.Order) ([]domain.Movie, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]domain.Movie, 0, len(m.movies))
	if order == repository.OrderDescending {
		for i := len(m.movies) - 1; i >= 0; i-- {
			out = append(out, m.movies[i])
		}
		return out, nil
	}
	return append(out, m.movies...), nil
}

func (m *memoryMovies) FindByTitle(_ context.Context, title string) (domain.Movie, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return domain.Movie{}, m.findErr
	}
	for _, movie := range m.movies {
		if movie.Title == title {
			return movie, nil
		}
	}
	return domain.Movie{}, repository.ErrNotFound
}

func (m *memoryMovies) CreateWithRatings(_ context.Context, movie domain.Movie) (domain.Movie, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return domain.Movie{}, false, m.saveErr
	}
	for _, existing := range m.movies {
		if existing.Title == movie.Title {
			return existing, false, nil
		}
	}
	m.nextID++
	m.writes++
	movie.ID = m.nextID
	for i := range movie.Ratings {
		movie.Ratings[i].ID = int64(i + 1)
		movie.Ratings[i].MovieID = movie.ID
	}
	m.movies = append(m.movies, movie)
	return movie, true, nil
}

func (m *memoryMovies) Exists(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, movie := range m.movies {
		if movie.ID == id {
			return true, nil
		}
	}
	return false, nil
}

type memoryComments struct {
	mu        sync.Mutex
	comments  []domain.Comment
	createErr error
}

func (c *memoryComments) Create(_ context.Context, movieID int64, body string) (domain.Comment, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.createErr != nil {
		return domain.Comment{}, c.createErr
	}
	if len(body) > domain.MaxCommentBodyLength {
		return domain.Comment{}, repository.ErrValueTooLong
	}
	comment := domain.Comment{ID: int64(len(c.comments) + 1), MovieID: movieID, Body: body}
	c.comments = append(c.comments, comment)
	return comment, nil
}

func (c *memoryComments) List(_ context.Context, movieID *int64) ([]domain.Comment, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Comment, 0)
	for _, comment := range c.comments {
		if movieID == nil || comment.MovieID == *movieID {
			out = append(out, comment)
		}
	}
	return out, nil
}

var errBoom = errors.New("boom")

func ptr[T any](v T) *T { return &v }
