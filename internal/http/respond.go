package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/Clark-Hu/movie-catalog/internal/service"
)

const maxRequestBody = 1 << 20 // 1 MiB

type errorResponse struct {
	Error string `json:"Error"`
}

func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

func (s *Server) respondJSON(w http.ResponseWriter, r *http.Request, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
		}
	}
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	s.respondJSON(w, r, status, errorResponse{Error: message})
}

// respondServiceError maps a service failure onto the status-code convention:
// validation 400, no content 204, everything else 500.
func (s *Server) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	logger := zerolog.Ctx(r.Context())

	var se *service.Error
	if !errors.As(err, &se) {
		logger.Error().Err(err).Msg("unclassified error")
		s.respondError(w, r, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}

	switch se.Kind {
	case service.KindValidation:
		logger.Debug().Str("reason", se.Message).Msg("rejected request")
		s.respondError(w, r, http.StatusBadRequest, se.Message)
	case service.KindNoContent:
		// net/http refuses a body on 204
		logger.Info().Err(se.Err).Str("reason", se.Message).Msg("no content")
		w.WriteHeader(http.StatusNoContent)
	default:
		logger.Error().Err(se.Err).Str("kind", se.Kind.String()).Msg(se.Message)
		s.respondError(w, r, http.StatusInternalServerError, se.Message)
	}
}

func (s *Server) respondDecodeError(w http.ResponseWriter, r *http.Request, err error) {
	var syntaxError *json.SyntaxError
	var typeError *json.UnmarshalTypeError
	var maxBytesError *http.MaxBytesError
	switch {
	case errors.As(err, &syntaxError):
		s.respondError(w, r, http.StatusBadRequest, "Malformed JSON payload")
	case errors.As(err, &typeError):
		s.respondError(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid value for field %s", typeError.Field))
	case errors.As(err, &maxBytesError):
		s.respondError(w, r, http.StatusRequestEntityTooLarge, "Request body too large")
	case errors.Is(err, io.EOF):
		s.respondError(w, r, http.StatusBadRequest, "Request body cannot be empty")
	default:
		s.respondError(w, r, http.StatusBadRequest, "Unable to parse request body")
	}
}
