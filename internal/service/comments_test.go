package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Clark-Hu/movie-catalog/internal/domain"
	"github.com/Clark-Hu/movie-catalog/internal/repository"
)

func newCommentFixture(t *testing.T) (*CommentService, *memoryMovies, *memoryComments) {
	t.Helper()
	movies := &memoryMovies{}
	_, _, err := movies.CreateWithRatings(context.Background(), domain.Movie{Title: "Batman"})
	require.NoError(t, err)
	comments := &memoryComments{}
	return NewCommentService(movies, comments, zerolog.Nop()), movies, comments
}

func TestCommentCreate(t *testing.T) {
	svc, _, comments := newCommentFixture(t)

	got, err := svc.Create(context.Background(), CommentInput{MovieID: ptr(int64(1)), Body: ptr("Great film")})
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.MovieID)
	assert.Equal(t, "Great film", got.Body)
	assert.Len(t, comments.comments, 1)
}

func TestCommentCreate_Validation(t *testing.T) {
	tests := []struct {
		name    string
		in      CommentInput
		wantMsg string
	}{
		{"missing movie", CommentInput{Body: ptr("hi")}, MsgCommentFields},
		{"missing body", CommentInput{MovieID: ptr(int64(1))}, MsgCommentFields},
		{"blank body", CommentInput{MovieID: ptr(int64(1)), Body: ptr("   ")}, MsgCommentFields},
		{"unknown movie", CommentInput{MovieID: ptr(int64(42)), Body: ptr("hi")}, MsgNoMovieWithID},
		{"non positive movie", CommentInput{MovieID: ptr(int64(0)), Body: ptr("hi")}, MsgNoMovieWithID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, comments := newCommentFixture(t)
			_, err := svc.Create(context.Background(), tt.in)
			require.Error(t, err)
			assert.Equal(t, KindValidation, KindOf(err))
			assert.Equal(t, tt.wantMsg, err.Error())
			assert.Empty(t, comments.comments)
		})
	}
}

func TestCommentCreate_TooLongIsInternal(t *testing.T) {
	svc, _, comments := newCommentFixture(t)

	_, err := svc.Create(context.Background(), CommentInput{
		MovieID: ptr(int64(1)),
		Body:    ptr(strings.Repeat("x", domain.MaxCommentBodyLength+1)),
	})
	require.Error(t, err)
	assert.Equal(t, KindInternal, KindOf(err))
	assert.ErrorIs(t, err, repository.ErrValueTooLong)
	assert.Empty(t, comments.comments)
}

func TestCommentCreate_ForeignKeyRaceIsValidation(t *testing.T) {
	svc, _, comments := newCommentFixture(t)
	comments.createErr = fmt.Errorf("insert comment: %w", repository.ErrMovieNotFound)

	_, err := svc.Create(context.Background(), CommentInput{MovieID: ptr(int64(1)), Body: ptr("hi")})
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestCommentList(t *testing.T) {
	svc, movies, _ := newCommentFixture(t)
	_, _, err := movies.CreateWithRatings(context.Background(), domain.Movie{Title: "Alien"})
	require.NoError(t, err)

	for _, in := range []CommentInput{
		{MovieID: ptr(int64(1)), Body: ptr("one")},
		{MovieID: ptr(int64(2)), Body: ptr("two")},
		{MovieID: ptr(int64(1)), Body: ptr("three")},
	} {
		_, err := svc.Create(context.Background(), in)
		require.NoError(t, err)
	}

	all, err := svc.List(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	forFirst, err := svc.List(context.Background(), ptr(int64(1)))
	require.NoError(t, err)
	assert.Len(t, forFirst, 2)

	none, err := svc.List(context.Background(), ptr(int64(99)))
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	_, err = svc.List(context.Background(), ptr(int64(-1)))
	assert.Equal(t, KindValidation, KindOf(err))
}
