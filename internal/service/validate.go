package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Clark-Hu/movie-catalog/internal/domain"
)

const (
	shortField = 100
	longField  = 1000
)

// FieldError names the provider field that failed validation.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// validateMovie checks a provider payload against the stored schema before
// anything is written.
func validateMovie(m domain.Movie) error {
	if strings.TrimSpace(m.Title) == "" {
		return &FieldError{Field: "Title", Reason: "required"}
	}

	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"Title", m.Title, shortField},
		{"Year", m.Year, shortField},
		{"Rated", m.Rated, shortField},
		{"Released", m.Released, shortField},
		{"Runtime", m.Runtime, shortField},
		{"Genre", m.Genre, shortField},
		{"Director", m.Director, shortField},
		{"Writer", m.Writer, longField},
		{"Actors", m.Actors, longField},
		{"Plot", m.Plot, longField},
		{"Language", m.Language, shortField},
		{"Country", m.Country, shortField},
		{"Awards", m.Awards, shortField},
		{"Poster", m.Poster, longField},
		{"Metascore", m.Metascore, shortField},
		{"imdbRating", m.IMDBRating, shortField},
		{"imdbVotes", m.IMDBVotes, shortField},
		{"imdbID", m.IMDBID, shortField},
		{"Type", m.Type, shortField},
		{"DVD", m.DVD, shortField},
		{"BoxOffice", m.BoxOffice, shortField},
		{"Production", m.Production, shortField},
		{"Website", m.Website, shortField},
	}
	for _, f := range fields {
		if utf8.RuneCountInString(f.value) > f.max {
			return &FieldError{Field: f.name, Reason: fmt.Sprintf("longer than %d characters", f.max)}
		}
	}

	for i, r := range m.Ratings {
		name := fmt.Sprintf("Ratings[%d]", i)
		switch {
		case strings.TrimSpace(r.Source) == "":
			return &FieldError{Field: name + ".Source", Reason: "required"}
		case strings.TrimSpace(r.Value) == "":
			return &FieldError{Field: name + ".Value", Reason: "required"}
		case utf8.RuneCountInString(r.Source) > shortField:
			return &FieldError{Field: name + ".Source", Reason: fmt.Sprintf("longer than %d characters", shortField)}
		case utf8.RuneCountInString(r.Value) > shortField:
			return &FieldError{Field: name + ".Value", Reason: fmt.Sprintf("longer than %d characters", shortField)}
		}
	}
	return nil
}
