package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Clark-Hu/movie-catalog/internal/domain"
)

// ErrNotFound is returned when the provider has no movie for the title, either
// through a non-success status or an explicit Response:"False" payload.
var ErrNotFound = errors.New("omdb: not found")

// ErrUnavailable wraps transport failures such as refused connections and
// timeouts.
var ErrUnavailable = errors.New("omdb: provider unavailable")

const maxResponseBody = 1 << 20 // 1 MiB

// Client defines the contract for querying the metadata provider.
type Client interface {
	Fetch(ctx context.Context, title string) (*Result, error)
}

// Result is the provider's description of a movie.
type Result struct {
	Movie domain.Movie
}

// HTTPClient implements Client over HTTP.
type HTTPClient struct {
	baseURL *url.URL
	apiKey  string
	client  *http.Client
	logger  zerolog.Logger
}

// NewHTTPClient constructs a new HTTP-backed provider client.
func NewHTTPClient(baseURL, apiKey string, timeout time.Duration, logger zerolog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse omdb url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("parse omdb url: %q is not absolute", baseURL)
	}
	return &HTTPClient{
		baseURL: parsed,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   timeout,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout:   timeout,
				ResponseHeaderTimeout: timeout,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
		logger: logger.With().Str("component", "omdb").Logger(),
	}, nil
}

// Fetch performs one lookup by title. It never retries.
func (c *HTTPClient) Fetch(ctx context.Context, title string) (*Result, error) {
	endpoint := *c.baseURL
	if endpoint.Path == "" {
		endpoint.Path = "/"
	}
	q := endpoint.Query()
	q.Set("t", title)
	q.Set("type", "movie")
	q.Set("apikey", c.apiKey)
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn().Int("status", resp.StatusCode).Str("title", title).Msg("unexpected provider status")
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBody))
		return nil, ErrNotFound
	}

	var payload apiResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBody)).Decode(&payload); err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) {
			return nil, fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
		}
		return nil, fmt.Errorf("decode omdb response: %w", err)
	}
	if !strings.EqualFold(payload.Response, "True") {
		c.logger.Debug().Str("title", title).Str("provider_error", payload.Error).Msg("provider has no match")
		return nil, ErrNotFound
	}

	return convertToResult(payload), nil
}

type apiResponse struct {
	Response   string          `json:"Response"`
	Error      string          `json:"Error"`
	Title      string          `json:"Title"`
	Year       string          `json:"Year"`
	Rated      string          `json:"Rated"`
	Released   string          `json:"Released"`
	Runtime    string          `json:"Runtime"`
	Genre      string          `json:"Genre"`
	Director   string          `json:"Director"`
	Writer     string          `json:"Writer"`
	Actors     string          `json:"Actors"`
	Plot       string          `json:"Plot"`
	Language   string          `json:"Language"`
	Country    string          `json:"Country"`
	Awards     string          `json:"Awards"`
	Poster     string          `json:"Poster"`
	Ratings    []ratingPayload `json:"Ratings"`
	Metascore  string          `json:"Metascore"`
	IMDBRating string          `json:"imdbRating"`
	IMDBVotes  string          `json:"imdbVotes"`
	IMDBID     string          `json:"imdbID"`
	Type       string          `json:"Type"`
	DVD        string          `json:"DVD"`
	BoxOffice  string          `json:"BoxOffice"`
	Production string          `json:"Production"`
	Website    string          `json:"Website"`
}

type ratingPayload struct {
	Source string `json:"Source"`
	Value  string `json:"Value"`
}

func convertToResult(p apiResponse) *Result {
	ratings := make([]domain.Rating, 0, len(p.Ratings))
	for _, r := range p.Ratings {
		ratings = append(ratings, domain.Rating{Source: r.Source, Value: r.Value})
	}
	return &Result{
		Movie: domain.Movie{
			Title:      p.Title,
			Year:       p.Year,
			Rated:      p.Rated,
			Released:   p.Released,
			Runtime:    p.Runtime,
			Genre:      p.Genre,
			Director:   p.Director,
			Writer:     p.Writer,
			Actors:     p.Actors,
			Plot:       p.Plot,
			Language:   p.Language,
			Country:    p.Country,
			Awards:     p.Awards,
			Poster:     p.Poster,
			Metascore:  p.Metascore,
			IMDBRating: p.IMDBRating,
			IMDBVotes:  p.IMDBVotes,
			IMDBID:     p.IMDBID,
			Type:       p.Type,
			DVD:        p.DVD,
			BoxOffice:  p.BoxOffice,
			Production: p.Production,
			Website:    p.Website,
			Ratings:    ratings,
		},
	}
}
