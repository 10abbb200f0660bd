package main

import (
	"encoding/json"
	"flag"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// movieEntry is kept raw so the fixture is echoed exactly as written.
type movieEntry = json.RawMessage

func main() {
	var (
		port    = flag.String("port", "9099", "port to listen on")
		data    = flag.String("data", "mock-omdb.json", "path to mock data file keyed by title")
		apiKey  = flag.String("apikey", "", "reject requests whose apikey differs (empty accepts all)")
		logReqs = flag.Bool("log", false, "enable request logging")
	)
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Str("service", "omdb-mock").Logger()

	file, err := os.ReadFile(*data)
	if err != nil {
		logger.Fatal().Err(err).Msg("read mock data")
	}

	var payload map[string]movieEntry
	if err := json.Unmarshal(file, &payload); err != nil {
		logger.Fatal().Err(err).Msg("parse mock data")
	}
	byTitle := make(map[string]movieEntry, len(payload))
	for title, entry := range payload {
		byTitle[strings.ToLower(title)] = entry
	}

	r := chi.NewRouter()
	if *logReqs {
		r.Use(middleware.Logger)
	}
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if *apiKey != "" && r.URL.Query().Get("apikey") != *apiKey {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"Response":"False","Error":"Invalid API key!"}`))
			return
		}
		entry, ok := byTitle[strings.ToLower(strings.TrimSpace(r.URL.Query().Get("t")))]
		if !ok {
			_, _ = w.Write([]byte(`{"Response":"False","Error":"Movie not found!"}`))
			return
		}
		_, _ = w.Write(entry)
	})

	addr := ":" + *port
	logger.Info().Str("addr", addr).Int("entries", len(byTitle)).Msg("mock omdb listening")
	if err := http.ListenAndServe(addr, r); err != nil {
		logger.Fatal().Err(err).Msg("server error")
	}
}
