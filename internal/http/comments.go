package httpserver

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Clark-Hu/movie-catalog/internal/domain"
	"github.com/Clark-Hu/movie-catalog/internal/service"
)

var errInvalidMovieID = errors.New("movie_id must be an integer")

// movieIDField accepts both 12 and "12".
type movieIDField int64

func (f *movieIDField) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return errInvalidMovieID
	}
	*f = movieIDField(id)
	return nil
}

type commentCreateRequest struct {
	CommentBody *string       `json:"comment_body"`
	MovieID     *movieIDField `json:"movie_id"`
}

type commentResponse struct {
	ID          int64  `json:"id"`
	CommentBody string `json:"comment_body"`
	MovieID     int64  `json:"movie_id"`
}

func (s *Server) handleListComments(w http.ResponseWriter, r *http.Request) {
	movieID, err := parseMovieIDParam(r.URL.Query())
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, service.MsgInvalidMovieID)
		return
	}

	comments, err := s.comments.List(r.Context(), movieID)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	resp := make([]commentResponse, 0, len(comments))
	for _, c := range comments {
		resp = append(resp, toCommentResponse(c))
	}
	s.respondJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	var req commentCreateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		if errors.Is(err, errInvalidMovieID) {
			s.respondError(w, r, http.StatusBadRequest, service.MsgNoMovieWithID)
			return
		}
		s.respondDecodeError(w, r, err)
		return
	}

	in := service.CommentInput{Body: req.CommentBody}
	if req.MovieID != nil {
		id := int64(*req.MovieID)
		in.MovieID = &id
	}

	comment, err := s.comments.Create(r.Context(), in)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusOK, toCommentResponse(comment))
}

// parseMovieIDParam reads the optional movie_id filter. An absent or empty
// parameter means no filter.
func parseMovieIDParam(query url.Values) (*int64, error) {
	raw := strings.TrimSpace(query.Get("movie_id"))
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, errInvalidMovieID
	}
	return &id, nil
}

func toCommentResponse(c domain.Comment) commentResponse {
	return commentResponse{ID: c.ID, CommentBody: c.Body, MovieID: c.MovieID}
}
