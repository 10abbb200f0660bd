package httpserver

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMovieIDParam(t *testing.T) {
	tests := []struct {
		raw     string
		want    *int64
		wantErr bool
	}{
		{raw: "", want: nil},
		{raw: "movie_id=", want: nil},
		{raw: "movie_id=7", want: int64Ptr(7)},
		{raw: "movie_id=%207%20", want: int64Ptr(7)},
		{raw: "movie_id=-3", want: int64Ptr(-3)},
		{raw: "movie_id=abc", wantErr: true},
		{raw: "movie_id=1.5", wantErr: true},
		{raw: "movie_id=99999999999999999999", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			values, err := url.ParseQuery(tt.raw)
			require.NoError(t, err)

			got, err := parseMovieIDParam(values)
			if tt.wantErr {
				assert.ErrorIs(t, err, errInvalidMovieID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMovieIDFieldUnmarshal(t *testing.T) {
	var req commentCreateRequest
	require.NoError(t, json.Unmarshal([]byte(`{"movie_id":12}`), &req))
	require.NotNil(t, req.MovieID)
	assert.EqualValues(t, 12, *req.MovieID)

	req = commentCreateRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"movie_id":"12"}`), &req))
	require.NotNil(t, req.MovieID)
	assert.EqualValues(t, 12, *req.MovieID)

	req = commentCreateRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"movie_id":null}`), &req))
	assert.Nil(t, req.MovieID)

	req = commentCreateRequest{}
	err := json.Unmarshal([]byte(`{"movie_id":"twelve"}`), &req)
	assert.ErrorIs(t, err, errInvalidMovieID)
}

func int64Ptr(v int64) *int64 { return &v }
