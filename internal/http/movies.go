package httpserver

import (
	"net/http"

	"github.com/Clark-Hu/movie-catalog/internal/domain"
)

type movieCreateRequest struct {
	Title *string `json:"title"`
}

type ratingResponse struct {
	Source string `json:"Source"`
	Value  string `json:"Value"`
}

type movieResponse struct {
	ID         int64            `json:"id"`
	Ratings    []ratingResponse `json:"Ratings"`
	Title      string           `json:"Title"`
	Year       string           `json:"Year"`
	Rated      string           `json:"Rated"`
	Released   string           `json:"Released"`
	Runtime    string           `json:"Runtime"`
	Genre      string           `json:"Genre"`
	Director   string           `json:"Director"`
	Writer     string           `json:"Writer"`
	Actors     string           `json:"Actors"`
	Plot       string           `json:"Plot"`
	Language   string           `json:"Language"`
	Country    string           `json:"Country"`
	Awards     string           `json:"Awards"`
	Poster     string           `json:"Poster"`
	Metascore  string           `json:"Metascore"`
	IMDBRating string           `json:"imdbRating"`
	IMDBVotes  string           `json:"imdbVotes"`
	IMDBID     string           `json:"imdbID"`
	Type       string           `json:"Type"`
	DVD        string           `json:"DVD"`
	BoxOffice  string           `json:"BoxOffice"`
	Production string           `json:"Production"`
	Website    string           `json:"Website"`
}

// handleListMovies returns every stored movie, ascending by id unless
// ?order=descending is given.
func (s *Server) handleListMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := s.movies.List(r.Context(), r.URL.Query().Get("order"))
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	resp := make([]movieResponse, 0, len(movies))
	for _, movie := range movies {
		resp = append(resp, toMovieResponse(movie))
	}
	s.respondJSON(w, r, http.StatusOK, resp)
}

// handleFindOrFetchMovie resolves a title through the provider and returns the
// stored record, persisting it first when it is new.
func (s *Server) handleFindOrFetchMovie(w http.ResponseWriter, r *http.Request) {
	var req movieCreateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, r, err)
		return
	}

	title := ""
	if req.Title != nil {
		title = *req.Title
	}

	movie, _, err := s.movies.FindOrFetch(r.Context(), title)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusOK, toMovieResponse(movie))
}

func toMovieResponse(movie domain.Movie) movieResponse {
	ratings := make([]ratingResponse, 0, len(movie.Ratings))
	for _, rating := range movie.Ratings {
		ratings = append(ratings, ratingResponse{Source: rating.Source, Value: rating.Value})
	}
	return movieResponse{
		ID:         movie.ID,
		Ratings:    ratings,
		Title:      movie.Title,
		Year:       movie.Year,
		Rated:      movie.Rated,
		Released:   movie.Released,
		Runtime:    movie.Runtime,
		Genre:      movie.Genre,
		Director:   movie.Director,
		Writer:     movie.Writer,
		Actors:     movie.Actors,
		Plot:       movie.Plot,
		Language:   movie.Language,
		Country:    movie.Country,
		Awards:     movie.Awards,
		Poster:     movie.Poster,
		Metascore:  movie.Metascore,
		IMDBRating: movie.IMDBRating,
		IMDBVotes:  movie.IMDBVotes,
		IMDBID:     movie.IMDBID,
		Type:       movie.Type,
		DVD:        movie.DVD,
		BoxOffice:  movie.BoxOffice,
		Production: movie.Production,
		Website:    movie.Website,
	}
}
