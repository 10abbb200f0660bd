package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Clark-Hu/movie-catalog/internal/domain"
	"github.com/Clark-Hu/movie-catalog/internal/repository"
)

// MovieChecker reports whether a movie id exists.
type MovieChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// CommentStore is the slice of the entity store the comment service needs.
type CommentStore interface {
	Create(ctx context.Context, movieID int64, body string) (domain.Comment, error)
	List(ctx context.Context, movieID *int64) ([]domain.Comment, error)
}

// CommentInput is the create request. Nil fields were absent.
type CommentInput struct {
	MovieID *int64
	Body    *string
}

// CommentService manages comments on cataloged movies.
type CommentService struct {
	movies   MovieChecker
	comments CommentStore
	logger   zerolog.Logger
}

// NewCommentService wires the service.
func NewCommentService(movies MovieChecker, comments CommentStore, logger zerolog.Logger) *CommentService {
	return &CommentService{
		movies:   movies,
		comments: comments,
		logger:   logger.With().Str("component", "comment_service").Logger(),
	}
}

// List returns all comments, or those of one movie when movieID is set. A
// movie without comments yields an empty list.
func (s *CommentService) List(ctx context.Context, movieID *int64) ([]domain.Comment, error) {
	if movieID != nil && *movieID <= 0 {
		return nil, validation(MsgInvalidMovieID)
	}
	comments, err := s.comments.List(ctx, movieID)
	if err != nil {
		return nil, internal(MsgStoreFailure, err)
	}
	return comments, nil
}

// Create stores a comment after confirming its movie exists. Body length is
// enforced by the store only, so an oversized body is an internal error.
func (s *CommentService) Create(ctx context.Context, in CommentInput) (domain.Comment, error) {
	if in.MovieID == nil || in.Body == nil || strings.TrimSpace(*in.Body) == "" {
		return domain.Comment{}, validation(MsgCommentFields)
	}
	if *in.MovieID <= 0 {
		return domain.Comment{}, validation(MsgNoMovieWithID)
	}

	exists, err := s.movies.Exists(ctx, *in.MovieID)
	if err != nil {
		return domain.Comment{}, internal(MsgStoreFailure, err)
	}
	if !exists {
		return domain.Comment{}, validation(MsgNoMovieWithID)
	}

	comment, err := s.comments.Create(ctx, *in.MovieID, *in.Body)
	switch {
	case err == nil:
		return comment, nil
	case errors.Is(err, repository.ErrMovieNotFound):
		// movie deleted between the existence check and the insert
		return domain.Comment{}, validation(MsgNoMovieWithID)
	default:
		return domain.Comment{}, internal(MsgCommentNotSaved, err)
	}
}
