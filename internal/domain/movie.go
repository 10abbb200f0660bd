package domain

// Movie is a cataloged title with the descriptive fields reported by the
// metadata provider. All descriptive fields are free text.
type Movie struct {
	ID         int64
	Title      string
	Year       string
	Rated      string
	Released   string
	Runtime    string
	Genre      string
	Director   string
	Writer     string
	Actors     string
	Plot       string
	Language   string
	Country    string
	Awards     string
	Poster     string
	Metascore  string
	IMDBRating string
	IMDBVotes  string
	IMDBID     string
	Type       string
	DVD        string
	BoxOffice  string
	Production string
	Website    string
	Ratings    []Rating
}
